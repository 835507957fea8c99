// Copyright (c) 2026 Rentora. All rights reserved.
// Author: dev@rentora.app

package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rentora/rentora/internal/booking"
)

func bookCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "book [property id or slug]",
		Short: "Book a property through the step-by-step flow",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			property, err := app.listings.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Booking %q, %.0f/month\n", property.Title, property.Price)
			fmt.Fprintf(out, "Platform charge due: %.2f\n", booking.PlatformCharge(property.Price))

			w := app.bookings.NewWizard(property.ID)
			if err := runWizard(cmd, w); err != nil {
				return err
			}

			confirmed, err := app.bookings.Submit(cmd.Context(), w)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Booking submitted (%s)\n", confirmed.ID)
			return nil
		},
	}
}
