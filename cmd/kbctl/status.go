package main

import (
	"errors"
	"fmt"
	"strings"

	"catalog-assistant/internal/service"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show whether a knowledge base is trained",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		status := app.training.Status(cmd.Context())
		if !status.IsTrained {
			warn("Not trained (%s)", app.knowledgeRepo.Path())
			return
		}
		success("Trained with %d products", status.ProductsCount)
	},
}

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Summarize the trained knowledge base",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		summary, err := app.training.Summary(cmd.Context())
		if errors.Is(err, service.ErrNotTrained) {
			warn("Not trained (%s)", app.knowledgeRepo.Path())
			return nil
		}
		if err != nil {
			return err
		}

		section("Knowledge base")
		fmt.Printf("  %-12s %d\n", "products", summary.ProductsCount)
		fmt.Printf("  %-12s %s\n", "categories", strings.Join(summary.Categories, ", "))
		fmt.Printf("  %-12s %s\n", "faq topics", strings.Join(summary.FAQTopics, ", "))
		fmt.Printf("  %-12s %s\n", "created at", summary.CreatedAt)
		return nil
	},
}

var productsCmd = &cobra.Command{
	Use:   "products",
	Short: "Fetch the raw product list from Shopify without training",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		result := app.shopify.Fetch(cmd.Context())
		if !result.Success {
			failure("%s", result.Error)
			return errors.New(result.Error)
		}
		success("Fetched %d products", len(result.Products))
		for _, p := range result.Products {
			fmt.Printf("  %-16s %s\n", p.ID, p.Title)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd, summaryCmd, productsCmd)
}
