package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/vkuzmenko/marketbrief/internal/adapters/commodities"
	"github.com/vkuzmenko/marketbrief/internal/adapters/config"
	"github.com/vkuzmenko/marketbrief/internal/adapters/crypto"
	"github.com/vkuzmenko/marketbrief/internal/adapters/news"
	"github.com/vkuzmenko/marketbrief/internal/adapters/quotes"
	"github.com/vkuzmenko/marketbrief/internal/adapters/sentiment"
	"github.com/vkuzmenko/marketbrief/internal/adapters/telegram"
	"github.com/vkuzmenko/marketbrief/internal/archive"
	"github.com/vkuzmenko/marketbrief/internal/briefing"
	"github.com/vkuzmenko/marketbrief/internal/output"
	"github.com/vkuzmenko/marketbrief/pkg/logger"
	"github.com/vkuzmenko/marketbrief/pkg/templates"
)

// One invocation produces one briefing. An external trigger (cron or
// similar) runs the binary on its schedule.
func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		fmt.Println("\nReceived interrupt signal, shutting down...")
		cancel()
	}()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.File); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer logger.Sync()

	logger.Info("market briefing run starting",
		zap.Bool("news_configured", cfg.News.APIKey != ""),
		zap.Bool("primary_quotes_configured", cfg.Quotes.APIKey != ""),
	)

	templateManager, err := templates.NewManager(cfg.Output.TemplatesDir, []string{"briefing.tmpl", "archive.tmpl"})
	if err != nil {
		return err
	}

	timeout := cfg.Quotes.RequestTimeout
	quoteChain := []quotes.Provider{
		quotes.NewFMPProvider(cfg.Quotes.APIKey, timeout),
		quotes.NewStooqProvider(timeout, cfg.Quotes.CSVRequestDelay),
		quotes.NewYahooProvider(timeout),
	}

	writer := output.NewWriter(cfg.Output.DataDir, cfg.Output.SiteDir)
	previous := writer.LoadPrevious(time.Now().UTC().Format("2006-01-02"))

	assembler := briefing.NewAssembler(
		sentiment.NewFearGreedClient(timeout),
		news.NewClient(cfg.News.APIKey, cfg.News.Country, cfg.News.PageSize, timeout),
		quoteChain,
		crypto.NewClient(timeout),
		commodities.NewClient(timeout, cfg.Quotes.CSVRequestDelay),
		previous,
	)

	record := assembler.Run(ctx)

	// Writing the record is the only fatal path; everything upstream has
	// already degraded to the baseline.
	if _, err := writer.WriteSnapshot(record); err != nil {
		return err
	}

	page, err := templateManager.ExecuteTemplate("briefing.tmpl", record)
	if err != nil {
		return err
	}
	if err := writer.WritePage(page, record.Date); err != nil {
		return err
	}

	if archivePage, err := templateManager.ExecuteTemplate("archive.tmpl", archive.List(cfg.Output.SiteDir)); err != nil {
		logger.Warn("failed to render archive page", zap.Error(err))
	} else if err := writer.WriteArchivePage(archivePage); err != nil {
		logger.Warn("failed to write archive page", zap.Error(err))
	}

	if cfg.TelegramEnabled() {
		notifier, err := telegram.NewNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID)
		if err != nil {
			logger.Warn("telegram delivery unavailable", zap.Error(err))
		} else if err := notifier.SendDigest(record); err != nil {
			logger.Warn("telegram delivery failed", zap.Error(err))
		}
	}

	logger.Info("market briefing run complete", zap.String("date", record.Date))

	return nil
}
