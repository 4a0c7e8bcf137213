package main

import (
	"context"
	"os"
	"time"

	"wine-analysis/charts"
	"wine-analysis/config"
	"wine-analysis/models"
	"wine-analysis/services"
	"wine-analysis/storage"
	"wine-analysis/utils"
)

func main() {
	logger := utils.NewLogger()
	cfg := config.Load()
	logger.SetDebug(cfg.Debug)

	logger.Info("=== Wine survey analysis starting ===")
	logger.Info("Config: input %s | figures %s | dpi %d | workers %d",
		cfg.InputPath, cfg.FiguresDir, cfg.FigureDPI, cfg.RenderWorkers)

	table, err := storage.ReadResponses(cfg.InputPath)
	if err != nil {
		logger.Error("Failed to load survey: %v", err)
		os.Exit(1)
	}
	logger.Info("Loaded %d responses from %s", table.Len(), table.Source)

	if err := services.NewCleaner(logger).Clean(table); err != nil {
		logger.Error("Cleaning failed: %v", err)
		os.Exit(1)
	}

	report := services.NewAggregator(logger).Build(table)

	renderer := charts.NewRenderer(
		charts.DefaultRenderConfig(cfg.FiguresDir, cfg.FigureDPI, cfg.RenderWorkers), logger)
	if err := renderer.RenderAll(context.Background(), report); err != nil {
		logger.Error("Rendering failed: %v", err)
		os.Exit(1)
	}

	if err := export(cfg, logger, table); err != nil {
		logger.Error("Export failed: %v", err)
		os.Exit(1)
	}

	services.NewReporter(os.Stdout).Print(report)
}

// export writes the cleaned table to the configured optional backends.
func export(cfg *config.Config, logger *utils.Logger, table *models.ResponseTable) error {
	if cfg.CleanCSVPath != "" {
		w, err := storage.NewCSVWriter(cfg.CleanCSVPath)
		if err != nil {
			return err
		}
		if err := writeAndClose(w, table); err != nil {
			return err
		}
		logger.Info("Cleaned responses saved to %s", cfg.CleanCSVPath)
	}

	if cfg.StorePostgres {
		retry := &utils.RetryConfig{
			MaxAttempts: cfg.MaxRetries,
			BaseDelay:   2 * time.Second,
			Logger:      logger,
		}
		w, err := storage.NewPostgresWriter(cfg.DSN(), retry)
		if err != nil {
			return err
		}
		if err := writeAndClose(w, table); err != nil {
			return err
		}
		logger.Info("Cleaned responses stored in PostgreSQL (table: wine_responses)")
	}
	return nil
}

func writeAndClose(w storage.ResponseWriter, table *models.ResponseTable) error {
	if err := w.Write(table.Responses); err != nil {
		_ = w.Close()
		return err
	}
	return w.Close()
}
