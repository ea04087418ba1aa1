package main

import (
	"github.com/aussiebroadwan/gymtab/pkg/gymsdk"
	"github.com/spf13/cobra"
)

func newMemberCommand(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "member",
		Aliases: []string{"members"},
		Short:   "Manage gym members",
	}

	var req gymsdk.MemberRequest
	create := &cobra.Command{
		Use:   "create",
		Short: "Register a new member",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := c.session()
			if err != nil {
				return err
			}
			m, err := s.CreateMember(cmd.Context(), req)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), m)
		},
	}
	create.Flags().StringVar(&req.Name, "name", "", "first name")
	create.Flags().StringVar(&req.Lastname, "lastname", "", "last name")
	create.Flags().StringVar(&req.Email, "email", "", "email address for reminders")
	_ = create.MarkFlagRequired("name")
	_ = create.MarkFlagRequired("lastname")
	_ = create.MarkFlagRequired("email")

	get := &cobra.Command{
		Use:   "get <member-id>",
		Short: "Show a member and their standing",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := c.session()
			if err != nil {
				return err
			}
			m, err := s.GetMember(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), m)
		},
	}

	var params gymsdk.ListParams
	list := &cobra.Command{
		Use:   "list",
		Short: "List members, optionally filtered by billing state",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := c.session()
			if err != nil {
				return err
			}
			page, err := s.ListMembers(cmd.Context(), params)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), page)
		},
	}
	addListFlags(list, &params)
	list.Flags().StringVar(&params.State, "state", "", "billing state filter: OK, pending or defeated")

	attendance := &cobra.Command{
		Use:   "attendance <member-id>",
		Short: "List a member's check-ins",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := c.session()
			if err != nil {
				return err
			}
			page, err := s.ListAttendance(cmd.Context(), args[0], params)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), page)
		},
	}
	addListFlags(attendance, &params)

	cmd.AddCommand(create, get, list, attendance)
	return cmd
}

func addListFlags(cmd *cobra.Command, p *gymsdk.ListParams) {
	cmd.Flags().IntVar(&p.Limit, "limit", 0, "page size (server default when zero)")
	cmd.Flags().StringVar(&p.After, "after", "", "cursor from a previous page's next field")
}
