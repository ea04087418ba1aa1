package main

import (
	"fmt"
	"time"

	"github.com/aussiebroadwan/gymtab/pkg/gymsdk"
	"github.com/spf13/cobra"
)

func newPaymentCommand(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "payment",
		Aliases: []string{"payments"},
		Short:   "Register and list membership payments",
	}

	var (
		req  gymsdk.PaymentRequest
		date string
	)
	register := &cobra.Command{
		Use:   "register",
		Short: "Record a payment and extend the member's expiration day",
		RunE: func(cmd *cobra.Command, args []string) error {
			if date != "" {
				d, err := time.Parse(gymsdk.DateLayout, date)
				if err != nil {
					return fmt.Errorf("--date: expected YYYY-MM-DD: %w", err)
				}
				req.PaymentDate = &d
			}
			s, err := c.session()
			if err != nil {
				return err
			}
			res, err := s.RegisterPayment(cmd.Context(), req)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), res)
		},
	}
	register.Flags().StringVar(&req.MemberID, "member", "", "member id")
	register.Flags().Int64Var(&req.Amount, "amount", 0, "amount in minor currency units")
	register.Flags().StringVar(&req.Concept, "concept", "", "what the payment is for")
	register.Flags().StringVar(&date, "date", "", "payment date YYYY-MM-DD (defaults to today)")
	_ = register.MarkFlagRequired("member")
	_ = register.MarkFlagRequired("amount")

	var params gymsdk.ListParams
	list := &cobra.Command{
		Use:   "list <member-id>",
		Short: "List a member's payments",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := c.session()
			if err != nil {
				return err
			}
			page, err := s.ListPayments(cmd.Context(), args[0], params)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), page)
		},
	}
	addListFlags(list, &params)

	cmd.AddCommand(register, list)
	return cmd
}
