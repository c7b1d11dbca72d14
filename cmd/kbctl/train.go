package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"catalog-assistant/internal/dto"
	"catalog-assistant/internal/models"
	"catalog-assistant/internal/service"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	trainFile    string
	trainShopify bool
	trainForce   bool
)

var trainCmd = &cobra.Command{
	Use:   "train",
	Short: "Rebuild the knowledge base",
	Long: `Rebuild the knowledge base either from the configured Shopify store (--shopify)
or from a product export file (--file). An export whose content has not changed
since the last run is skipped unless --force is given.`,
	RunE: runTrain,
}

func init() {
	trainCmd.Flags().StringVarP(&trainFile, "file", "f", "", "JSON export: a product list or {\"products\": [...]}")
	trainCmd.Flags().BoolVar(&trainShopify, "shopify", false, "fetch products from the configured Shopify store")
	trainCmd.Flags().BoolVar(&trainForce, "force", false, "retrain even if the export is unchanged")
	trainCmd.MarkFlagsMutuallyExclusive("file", "shopify")
	trainCmd.MarkFlagsOneRequired("file", "shopify")
	rootCmd.AddCommand(trainCmd)
}

func runTrain(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Minute)
	defer cancel()

	var (
		resp *dto.TrainingResponse
		err  error
	)
	if trainShopify {
		info("Fetching products from %s", app.cfg.Shopify.StoreName)
		resp, err = app.training.FetchAndTrain(ctx)
	} else {
		resp, err = trainFromFile(ctx, trainFile, trainForce)
	}
	if err != nil {
		failure("Training failed: %v", err)
		return err
	}
	if resp == nil {
		return nil
	}

	success("%s", resp.Message)
	info("Categories: %s", strings.Join(resp.Categories, ", "))
	return nil
}

func trainFromFile(ctx context.Context, path string, force bool) (*dto.TrainingResponse, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	cache, err := loadTrainCache(app.cfg.KnowledgeBase.DataDir)
	if err != nil {
		app.logger.Warn("Failed to load train cache, retraining", zap.Error(err))
	}

	hash, err := fileHash(abs)
	if err != nil {
		return nil, err
	}
	current := app.knowledgeRepo.Current(ctx)
	if !current.IsTrained() {
		force = true
	}
	if cached, ok := cache.unchanged(abs, hash, currentCreatedAt(current)); ok && !force {
		warn("%s is unchanged since %s (%d products), use --force to retrain",
			path, cached.TrainedAt.Format(time.RFC3339), cached.Products)
		return nil, nil
	}

	data, err := os.ReadFile(abs)
	if err != nil {
		return nil, fmt.Errorf("failed to read export: %w", err)
	}
	products, err := models.DecodeRawProducts(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse export: %w", err)
	}

	resp, err := app.training.BuildAndSave(ctx, products)
	if err != nil {
		if errors.Is(err, service.ErrNoProducts) {
			return nil, fmt.Errorf("%s contains no products: %w", path, err)
		}
		return nil, err
	}

	cache.record(abs, hash, resp.ProcessedCount, currentCreatedAt(app.knowledgeRepo.Current(ctx)))
	if err := cache.save(); err != nil {
		app.logger.Warn("Failed to save train cache", zap.Error(err))
	}
	return resp, nil
}

func currentCreatedAt(kb *models.KnowledgeBase) time.Time {
	if kb == nil {
		return time.Time{}
	}
	return kb.CreatedAt
}
