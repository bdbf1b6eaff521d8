package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Veraticus/the-budget-must-balance/internal/cli"
	"github.com/Veraticus/the-budget-must-balance/internal/model"
)

func settingsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change display settings",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the current settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := openSession(cmd.Context())
			if err != nil {
				return err
			}
			defer s.close()

			keys, err := s.store.Keys(cmd.Context())
			if err != nil {
				return err
			}
			stored := "nothing yet"
			if len(keys) > 0 {
				stored = strings.Join(keys, ", ")
			}

			settings := s.tracker.Store.Settings()
			fmt.Fprintf(cmd.OutOrStdout(), "Currency:    %s (%s)\nDate format: %s\nDatabase:    %s\nStored:      %s\n",
				settings.Currency, s.formatter().Symbol(), settings.DateFormat, s.store.Path(), stored)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:       "currency <code>",
		Short:     "Set the display currency",
		Args:      cobra.ExactArgs(1),
		ValidArgs: currencyCodes(),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd.Context())
			if err != nil {
				return err
			}
			defer s.close()

			if err := s.tracker.Store.SetCurrency(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess("Currency set to "+string(s.tracker.Store.Settings().Currency)))
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "date-format <format>",
		Short: "Set the display date format (MM/DD/YYYY, DD/MM/YYYY or YYYY-MM-DD)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd.Context())
			if err != nil {
				return err
			}
			defer s.close()

			if err := s.tracker.Store.SetDateFormat(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess("Date format set to "+string(s.tracker.Store.Settings().DateFormat)))
			return nil
		},
	})

	return cmd
}

func currencyCodes() []string {
	codes := make([]string, len(model.Currencies))
	for i, c := range model.Currencies {
		codes[i] = string(c)
	}
	return codes
}
