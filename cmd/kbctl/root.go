package main

import (
	"fmt"

	"catalog-assistant/internal/repository"
	"catalog-assistant/internal/service"
	"catalog-assistant/pkg/config"
	"catalog-assistant/pkg/logger"
	"catalog-assistant/pkg/shopify"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	dataDir string
	verbose bool
	noColor bool
)

// deps is the wiring shared by every subcommand.
type deps struct {
	cfg           *config.Config
	logger        *zap.Logger
	knowledgeRepo *repository.KnowledgeRepository
	shopify       *shopify.Client
	training      *service.TrainingService
	chat          *service.ChatService
}

var app *deps

var rootCmd = &cobra.Command{
	Use:           "kbctl",
	Short:         "Manage the catalog assistant knowledge base",
	Long:          "kbctl trains the knowledge base from a storefront or a product export and lets you query it from the terminal.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		initUI(noColor)

		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if dataDir != "" {
			cfg.KnowledgeBase.DataDir = dataDir
		}

		level := "warn"
		if verbose {
			level = "debug"
		}
		log, err := logger.New(level)
		if err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		app = newDeps(cfg, log)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if app != nil {
			_ = app.logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&dataDir, "data-dir", "d", "", "knowledge base directory (overrides KB_DATA_DIR)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
}

func newDeps(cfg *config.Config, log *zap.Logger) *deps {
	repo := repository.NewKnowledgeRepository(cfg.KnowledgeBase.FilePath(), repository.NewKnowledgeState(), log)
	client := shopify.NewClient(&cfg.Shopify, log)
	return &deps{
		cfg:           cfg,
		logger:        log,
		knowledgeRepo: repo,
		shopify:       client,
		training:      service.NewTrainingService(client, service.NewKnowledgeBaseBuilder(log), repo, log),
		chat:          service.NewChatService(service.NewQueryEngine(), repo, log),
	}
}
