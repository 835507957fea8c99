// Copyright (c) 2026 Rentora. All rights reserved.
// Author: dev@rentora.app

package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rentora/rentora/internal/session"
)

func loginCmd() *cobra.Command {
	var password string

	cmd := &cobra.Command{
		Use:   "login [email]",
		Short: "Sign in to the marketplace",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if password == "" {
				var err error
				password, err = promptLine(cmd, "Password: ")
				if err != nil {
					return err
				}
			}

			active, err := app.sessions.Login(cmd.Context(), args[0], password)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Signed in as %s (%s)\n", active.Name, active.Role)
			return nil
		},
	}

	cmd.Flags().StringVarP(&password, "password", "p", "", "password (prompted when omitted)")
	return cmd
}

func registerCmd() *cobra.Command {
	var (
		name     string
		role     string
		password string
	)

	cmd := &cobra.Command{
		Use:   "register [email]",
		Short: "Create a marketplace account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if password == "" {
				var err error
				password, err = promptLine(cmd, "Password: ")
				if err != nil {
					return err
				}
			}

			result := app.sessions.Register(cmd.Context(), name, args[0], password, session.Role(role))
			if !result.Success {
				return fmt.Errorf("%s", result.Message)
			}

			fmt.Fprintln(cmd.OutOrStdout(), result.Message)
			return nil
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "full name")
	cmd.Flags().StringVarP(&role, "role", "r", string(session.RoleSeeker),
		fmt.Sprintf("account role (%q or %q)", session.RoleSeeker, session.RoleOwner))
	cmd.Flags().StringVarP(&password, "password", "p", "", "password (prompted when omitted)")
	return cmd
}

func logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Discard the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app.sessions.Logout()
			fmt.Fprintln(cmd.OutOrStdout(), "Signed out")
			return nil
		},
	}
}

func whoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			active := app.sessions.Current()
			if active == nil {
				fmt.Fprintln(cmd.OutOrStdout(), "Not signed in")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s <%s> (%s)\n", active.Name, active.Email, active.Role)
			return nil
		},
	}
}
