// Copyright (c) 2026 Rentora. All rights reserved.
// Author: dev@rentora.app

package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rentora/rentora/internal/contact"
)

func chatCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Negotiate a booking with the other party",
	}
	cmd.AddCommand(chatOpenCmd(), chatSendCmd(), chatOfferCmd(), chatAcceptCmd())
	return cmd
}

func chatOpenCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "open [booking id]",
		Short: "Open the chat for a booking",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			chat, err := app.contacts.OpenChat(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			printChat(cmd, chat)
			return nil
		},
	}
}

func chatSendCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "send [chat id] [message]",
		Short: "Send a chat message",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			active := app.sessions.Current()
			if active == nil {
				return fmt.Errorf("not signed in")
			}
			chat, err := app.contacts.SendChatMessage(cmd.Context(), args[0], active.UserID, args[1])
			if err != nil {
				return err
			}
			printChat(cmd, chat)
			return nil
		},
	}
}

func chatOfferCmd() *cobra.Command {
	var details contact.PurchaseDetails

	cmd := &cobra.Command{
		Use:   "offer [chat id]",
		Short: "Make or update a purchase offer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			chat, err := app.contacts.ProposePurchase(cmd.Context(), args[0], details)
			if err != nil {
				return err
			}
			printOffer(cmd, chat.PurchaseDetails)
			return nil
		},
	}

	cmd.Flags().StringVar(&details.FinalPrice, "price", "", "final monthly price")
	cmd.Flags().StringVar(&details.MoveInDate, "move-in", "", "move-in date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&details.SecurityDeposit, "deposit", "", "security deposit")
	cmd.Flags().StringVar(&details.AgreementDuration, "duration", "", "agreement duration")
	cmd.Flags().StringVar(&details.SpecialTerms, "terms", "", "special terms")
	return cmd
}

func chatAcceptCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "accept [booking id]",
		Short: "Accept the standing purchase offer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			chat, err := app.contacts.OpenChat(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			settled, err := app.contacts.ConfirmPurchase(cmd.Context(), chat.ID, chat.PurchaseDetails)
			if err != nil {
				return err
			}
			printOffer(cmd, settled.PurchaseDetails)
			return nil
		},
	}
}

func printChat(cmd *cobra.Command, chat *contact.Chat) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Chat %s (booking %s)\n", chat.ID, chat.BookingID)
	for _, message := range chat.Messages {
		fmt.Fprintf(out, "  [%s] %s\n", message.SenderID, message.Message)
	}
	if chat.PurchaseDetails != (contact.PurchaseDetails{}) {
		printOffer(cmd, chat.PurchaseDetails)
	}
}

func printOffer(cmd *cobra.Command, offer contact.PurchaseDetails) {
	out := cmd.OutOrStdout()
	status := "open"
	if offer.IsConfirmed {
		status = "confirmed"
	}
	fmt.Fprintf(out, "Offer (%s): price %s, move-in %s, deposit %s\n",
		status, offer.FinalPrice, offer.MoveInDate, offer.SecurityDeposit)
}
