package main

import (
	"github.com/spf13/cobra"
)

func newQRCommand(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "qr",
		Short: "Issue temporal QR tokens",
	}

	var out string
	entrance := &cobra.Command{
		Use:   "entrance",
		Short: "Issue an entrance token; with --out, save it as a PNG for the kiosk",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := c.session()
			if err != nil {
				return err
			}
			if out == "" {
				res, err := s.IssueEntranceToken(cmd.Context())
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), res)
			}
			png, err := s.EntranceQRPNG(cmd.Context())
			if err != nil {
				return err
			}
			c.logger.Debug("writing entrance QR", "path", out, "bytes", len(png))
			return writeFileOrStdout(cmd, out, png)
		},
	}
	entrance.Flags().StringVarP(&out, "out", "o", "", "write a PNG to this path (- for stdout)")

	me := &cobra.Command{
		Use:   "me",
		Short: "Issue a personal token for the member in --token",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := c.session()
			if err != nil {
				return err
			}
			res, err := s.IssueMemberToken(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), res)
		},
	}

	cmd.AddCommand(entrance, me)
	return cmd
}
