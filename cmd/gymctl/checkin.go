package main

import (
	"github.com/aussiebroadwan/gymtab/pkg/gymsdk"
	"github.com/spf13/cobra"
)

func newCheckInCommand(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "checkin",
		Short: "Record attendance",
	}

	record := func(cmd *cobra.Command, req gymsdk.CheckInRequest) error {
		s, err := c.session()
		if err != nil {
			return err
		}
		res, err := s.CheckIn(cmd.Context(), req)
		if err != nil {
			return err
		}
		if !res.Counted {
			c.logger.Info("member already checked in today, visit recorded without a new day", "member_id", res.Member.ID)
		}
		return printJSON(cmd.OutOrStdout(), res)
	}

	var manualReq gymsdk.CheckInRequest
	manual := &cobra.Command{
		Use:   "manual",
		Short: "Check a member in at the front desk without a QR token",
		RunE: func(cmd *cobra.Command, args []string) error {
			manualReq.Method = gymsdk.MethodManual
			return record(cmd, manualReq)
		},
	}
	manual.Flags().StringVar(&manualReq.MemberID, "member", "", "member id")
	_ = manual.MarkFlagRequired("member")

	var scanReq gymsdk.CheckInRequest
	scan := &cobra.Command{
		Use:   "scan",
		Short: "Redeem a member code read at the desk (needs a staff --token)",
		RunE: func(cmd *cobra.Command, args []string) error {
			scanReq.Method = gymsdk.MethodQRScan
			return record(cmd, scanReq)
		},
	}
	scan.Flags().StringVar(&scanReq.Token, "code", "", "token read from the member's screen")
	scan.Flags().StringVar(&scanReq.MemberID, "member", "", "expected member id, checked against the code")
	_ = scan.MarkFlagRequired("code")

	cmd.AddCommand(manual, scan)
	return cmd
}
