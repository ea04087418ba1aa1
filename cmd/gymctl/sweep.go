package main

import "github.com/spf13/cobra"

func newSweepCommand(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Reminder sweeps",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "run",
		Short: "Run the reminder sweep now instead of waiting for the schedule",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := c.session()
			if err != nil {
				return err
			}
			res, err := s.RunSweep(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), res)
		},
	})
	return cmd
}
