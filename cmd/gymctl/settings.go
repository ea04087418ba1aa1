package main

import (
	"errors"

	"github.com/aussiebroadwan/gymtab/pkg/gymsdk"
	"github.com/spf13/cobra"
)

func newSettingsCommand(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change gym settings",
	}

	get := &cobra.Command{
		Use:   "get",
		Short: "Show current settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := c.session()
			if err != nil {
				return err
			}
			res, err := s.GetSettings(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), res)
		},
	}

	var (
		gymName                 string
		paymentReminder, alerts bool
	)
	set := &cobra.Command{
		Use:   "set",
		Short: "Update settings; only flags that are passed change",
		Example: `  gymctl settings set --gym-name "Iron Temple"
  gymctl settings set --payment-reminder=false`,
		RunE: func(cmd *cobra.Command, args []string) error {
			var req gymsdk.SettingsRequest
			flags := cmd.Flags()
			if flags.Changed("gym-name") {
				req.GymName = &gymName
			}
			if flags.Changed("payment-reminder") {
				req.NotifPaymentReminder = &paymentReminder
			}
			if flags.Changed("debt-alert") {
				req.NotifDebtAlert = &alerts
			}
			if req.GymName == nil && req.NotifPaymentReminder == nil && req.NotifDebtAlert == nil {
				return errors.New("nothing to update: pass at least one flag")
			}

			s, err := c.session()
			if err != nil {
				return err
			}
			res, err := s.UpdateSettings(cmd.Context(), req)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), res)
		},
	}
	set.Flags().StringVar(&gymName, "gym-name", "", "name used in reminder emails")
	set.Flags().BoolVar(&paymentReminder, "payment-reminder", true, "send reminders before the expiration day")
	set.Flags().BoolVar(&alerts, "debt-alert", true, "send alerts on the expiration day")

	cmd.AddCommand(get, set)
	return cmd
}
