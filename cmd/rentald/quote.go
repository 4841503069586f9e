package main

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"carrental/internal/config"
	"carrental/internal/domain/entities"
	"carrental/internal/pricing"
)

func newQuoteCmd() *cobra.Command {
	var (
		category string
		rate     string
		days     int
	)

	cmd := &cobra.Command{
		Use:   "quote",
		Short: "Price a rental with the configured rules and print the breakdown as JSON",
		Example: `  rentald quote --category luxury --rate 120 --days 9
  rentald quote --config rental.yaml --category economy --rate 49.99 --days 3`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			rules, err := cfg.RuleSet()
			if err != nil {
				return err
			}

			cat, err := entities.ParseCategory(category)
			if err != nil {
				return fmt.Errorf("--category %q: %w", category, err)
			}
			dailyRate, err := decimal.NewFromString(rate)
			if err != nil {
				return fmt.Errorf("--rate %q: %w", rate, entities.ErrInvalidRate)
			}

			cost, err := pricing.CalculateCost(cat, dailyRate, days, rules)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(cost)
		},
	}

	cmd.Flags().StringVar(&category, "category", string(entities.CategoryEconomy), "car category (economy, suv, luxury)")
	cmd.Flags().StringVar(&rate, "rate", "", "daily rate, e.g. 49.99")
	cmd.Flags().IntVar(&days, "days", 1, "rental duration in days")
	_ = cmd.MarkFlagRequired("rate")
	return cmd
}
