package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"calorielens/config"
	"calorielens/internal/domain"
	"calorielens/internal/infrastructure/cache"
	"calorielens/internal/infrastructure/catalog"
	"calorielens/internal/infrastructure/openfoodfacts"
	"calorielens/internal/infrastructure/usda"
	"calorielens/internal/usecase"
)

var (
	targetsPath string
	safewayPath string
	costcoPath  string
	outPath     string
	verbose     bool

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "calorielens",
	Short: "Enrich retail product dumps with calorie data",
	Long: `calorielens reads JSON product dumps from Target, Safeway, and Costco,
looks up calories per serving for each food item (OpenFoodFacts first,
USDA FoodData Central as fallback when USDA_API_KEY is set), and writes
a unified CSV.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		zapCfg := zap.NewProductionConfig()
		if verbose {
			zapCfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = zapCfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: runEnrich,
}

func init() {
	rootCmd.Flags().StringVar(&targetsPath, "targets", "", "path to the Target products JSON dump")
	rootCmd.Flags().StringVar(&safewayPath, "safeway", "", "path to the Safeway products JSON dump")
	rootCmd.Flags().StringVar(&costcoPath, "costco", "", "path to the Costco products JSON dump")
	rootCmd.Flags().StringVar(&outPath, "out", "instacart_with_calories.csv", "destination CSV path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	_ = rootCmd.MarkFlagRequired("targets")
	_ = rootCmd.MarkFlagRequired("safeway")
	_ = rootCmd.MarkFlagRequired("costco")
}

func runEnrich(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	sources := buildSources(cfg)
	lookupSvc := usecase.NewLookupService(
		sources,
		cache.NewMemoryCache(),
		usecase.LookupServiceConfig{CacheTTL: cfg.Lookup.CacheTTL},
		logger,
	)
	pipeline := usecase.NewPipeline(usecase.NewFoodClassifier(), lookupSvc, cfg.Lookup.Delay, logger)

	records, err := catalog.LoadAll(map[domain.Store]string{
		domain.StoreTarget:  targetsPath,
		domain.StoreSafeway: safewayPath,
		domain.StoreCostco:  costcoPath,
	})
	if err != nil {
		return err
	}
	logger.Info("catalogs loaded", zap.Int("records", len(records)))

	rows, err := pipeline.Run(cmd.Context(), records)
	if err != nil {
		return fmt.Errorf("enrichment aborted: %w", err)
	}

	if err := catalog.WriteFile(outPath, rows); err != nil {
		return err
	}

	logger.Info("output written",
		zap.String("path", outPath),
		zap.Int("rows", len(rows)))
	return nil
}

func buildSources(cfg *config.Config) []domain.NutritionSource {
	sources := []domain.NutritionSource{
		openfoodfacts.NewClient(openfoodfacts.Config{
			BaseURL:   cfg.OpenFoodFacts.BaseURL,
			UserAgent: cfg.HTTP.UserAgent,
			PageSize:  cfg.OpenFoodFacts.PageSize,
			Timeout:   cfg.HTTP.Timeout,
		}, logger),
	}

	// Without a key the USDA tier is never constructed, let alone queried.
	if cfg.USDA.APIKey != "" {
		sources = append(sources, usda.NewClient(usda.Config{
			APIKey:    cfg.USDA.APIKey,
			BaseURL:   cfg.USDA.BaseURL,
			UserAgent: cfg.HTTP.UserAgent,
			PageSize:  cfg.USDA.PageSize,
			Timeout:   cfg.HTTP.Timeout,
		}, logger))
		logger.Info("USDA fallback enabled", zap.String("base_url", cfg.USDA.BaseURL))
	} else {
		logger.Info("USDA fallback disabled (USDA_API_KEY not set)")
	}

	return sources
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
