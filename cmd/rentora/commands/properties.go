// Copyright (c) 2026 Rentora. All rights reserved.
// Author: dev@rentora.app

package commands

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/rentora/rentora/internal/listing"
)

func propertiesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "properties",
		Short: "Browse and publish listings",
	}
	cmd.AddCommand(propertiesListCmd(), propertiesShowCmd(), propertiesSyncCmd(),
		propertiesAddCmd(), propertiesMineCmd(), propertiesAgreementCmd())
	return cmd
}

func propertiesListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all published properties",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			listings, fromCache, err := app.listings.List(cmd.Context())
			if err != nil {
				return err
			}
			if fromCache {
				fmt.Fprintln(cmd.OutOrStdout(), "(marketplace unreachable, showing cached catalog)")
			}
			printListings(cmd, listings)
			return nil
		},
	}
}

func propertiesShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show [id or slug]",
		Short: "Show one property",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			property, err := app.listings.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			printProperty(cmd, property)
			return nil
		},
	}
}

func propertiesSyncCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Refresh the local catalog cache",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			listings, fromCache, err := app.listings.List(cmd.Context())
			if err != nil {
				return err
			}
			if fromCache {
				return fmt.Errorf("marketplace unreachable, cache left as-is")
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Cached %d listings\n", len(listings))
			return nil
		},
	}
}

func propertiesMineCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mine",
		Short: "List your own published properties",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			active := app.sessions.Current()
			if active == nil {
				return fmt.Errorf("not signed in")
			}
			listings, err := app.listings.OwnerListings(cmd.Context(), active.UserID)
			if err != nil {
				return err
			}
			printListings(cmd, listings)
			return nil
		},
	}
}

func propertiesAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add",
		Short: "Publish a property through the step-by-step flow",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := app.listings.NewWizard()
			if err := runWizard(cmd, w); err != nil {
				return err
			}

			created, err := app.listings.Submit(cmd.Context(), w)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Published %q (%s)\n", created.Title, created.ID)
			return nil
		},
	}
}

func propertiesAgreementCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "agreement [id or slug]",
		Short: "Request a rental agreement for a property",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			property, err := app.listings.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if err := app.listings.RequestRentalAgreement(cmd.Context(), property.ID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Rental agreement requested for %q\n", property.Title)
			return nil
		},
	}
}

// printListings renders the catalog as an aligned table.
func printListings(cmd *cobra.Command, listings []listing.Property) {
	writer := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(writer, "ID\tTITLE\tTYPE\tLOCATION\tRENT")
	for _, property := range listings {
		fmt.Fprintf(writer, "%s\t%s\t%s\t%s\t%.0f\n",
			property.ID, property.Title, property.Type, property.Location, property.Price)
	}
	writer.Flush()
}

// printProperty renders one listing in full.
func printProperty(cmd *cobra.Command, property *listing.Property) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s (%s)\n", property.Title, property.ID)
	fmt.Fprintf(out, "  %s in %s, %.0f/month\n", property.Type, property.Location, property.Price)
	fmt.Fprintf(out, "  %d bed / %d bath, %.0f %s, %s\n",
		property.Bedrooms, property.Bathrooms, property.Area, property.AreaUnit, property.Furnished)
	if len(property.Amenities) > 0 {
		fmt.Fprintf(out, "  Amenities: %s\n", strings.Join(property.Amenities, ", "))
	}
	if property.Description != "" {
		fmt.Fprintf(out, "  %s\n", property.Description)
	}
	if property.OwnerName != "" {
		fmt.Fprintf(out, "  Listed by %s\n", property.OwnerName)
	}
}
