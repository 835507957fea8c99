// Copyright (c) 2026 Rentora. All rights reserved.
// Author: dev@rentora.app

package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rentora/rentora/internal/contact"
)

func contactCmd() *cobra.Command {
	var message contact.Message

	cmd := &cobra.Command{
		Use:   "contact",
		Short: "Send a message to the Rentora team",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if message.Message == "" {
				var err error
				message.Message, err = promptLine(cmd, "Message: ")
				if err != nil {
					return err
				}
			}

			if err := app.contacts.Send(cmd.Context(), message); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Message sent")
			return nil
		},
	}

	cmd.Flags().StringVar(&message.Name, "name", "", "your name")
	cmd.Flags().StringVar(&message.Email, "email", "", "your email")
	cmd.Flags().StringVar(&message.Phone, "phone", "", "your phone")
	cmd.Flags().StringVar(&message.Subject, "subject", "", "subject")
	cmd.Flags().StringVarP(&message.Message, "message", "m", "", "message body (prompted when omitted)")
	return cmd
}
