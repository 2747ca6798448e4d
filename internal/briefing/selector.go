package briefing

import (
	"context"

	"go.uber.org/zap"

	"github.com/vkuzmenko/marketbrief/internal/adapters/quotes"
	"github.com/vkuzmenko/marketbrief/pkg/logger"
)

// SelectQuotes tries quote providers in fixed priority order and accepts
// the first result carrying at least one real data point. Providers whose
// required credential is missing are skipped without a network call. When
// every candidate is rejected the category falls back to its static
// outline; the returned result is unavailable.
func SelectQuotes(ctx context.Context, providers []quotes.Provider) quotes.Result {
	for _, provider := range providers {
		if !provider.Available() {
			logger.Debug("quote provider not configured, skipping",
				zap.String("provider", provider.Name()),
			)
			continue
		}

		result := provider.Fetch(ctx)
		if result.Usable() {
			logger.Info("quote provider selected",
				zap.String("provider", provider.Name()),
				zap.Int("resolved", len(result.Changes)),
			)
			return result
		}

		logger.Warn("quote provider returned no usable data, falling through",
			zap.String("provider", provider.Name()),
		)
	}

	logger.Warn("all quote providers failed, using static outline")

	return quotes.Unavailable("none")
}
