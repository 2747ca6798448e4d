package briefing

import (
	"fmt"
	"strings"

	"github.com/vkuzmenko/marketbrief/internal/adapters/quotes"
	"github.com/vkuzmenko/marketbrief/internal/tone"
	"github.com/vkuzmenko/marketbrief/pkg/models"
)

// MergeSegment folds one provider's segment into the canonical list: the
// segment whose name matches is replaced, every other segment passes
// through unchanged. The fold is pure (a new slice is returned) and
// idempotent per name, so merging the same output twice equals merging
// once.
func MergeSegment(segments []models.Segment, updated models.Segment) []models.Segment {
	merged := make([]models.Segment, len(segments))
	for i, seg := range segments {
		if seg.Name == updated.Name {
			merged[i] = updated
		} else {
			merged[i] = seg
		}
	}
	return merged
}

// segmentFromQuotes builds the Global Markets segment from a usable quote
// result. Symbols the provider did not resolve stay placeholder entries.
func segmentFromQuotes(result quotes.Result) models.Segment {
	regions := make([]models.Region, 0, len(quotes.TrackedIndices))
	live := make([]float64, 0, len(quotes.TrackedIndices))

	for _, idx := range quotes.TrackedIndices {
		pct, ok := result.Changes[idx.Symbol]
		if !ok {
			direction := models.ToneFlat
			if idx.VolatilityStyle {
				direction = models.ToneSteady
			}
			regions = append(regions, models.Region{
				Label:             idx.Label,
				Direction:         direction,
				IsPlaceholder:     true,
				IsVolatilityStyle: idx.VolatilityStyle,
			})
			continue
		}

		change := pct
		regions = append(regions, models.Region{
			Label:             idx.Label,
			Direction:         tone.ClassifyValue(pct, idx.VolatilityStyle),
			ChangePct:         &change,
			IsVolatilityStyle: idx.VolatilityStyle,
		})
		if !idx.VolatilityStyle {
			live = append(live, pct)
		}
	}

	direction := models.ToneFlat
	description := outlineDescription
	if avg, ok := tone.Average(live); ok {
		direction = tone.ClassifyValue(avg, false)
		description = fmt.Sprintf("%d of %d tracked indices reporting; average move %+.2f%%.",
			len(live), len(quotes.TrackedIndices)-1, avg)
	}

	return models.Segment{
		Name:        SegGlobalMarkets,
		Direction:   direction,
		Description: description,
		Regions:     regions,
	}
}

// segmentFromTickers builds a ticker-bearing segment from a provider's
// priced instruments. Direction comes from the average change of priced
// entries; the description embeds each priced instrument.
func segmentFromTickers(name string, tickers []models.Ticker) models.Segment {
	live := make([]float64, 0, len(tickers))
	parts := make([]string, 0, len(tickers))

	for _, ticker := range tickers {
		if ticker.Price == nil {
			continue
		}
		if ticker.ChangePct != nil {
			live = append(live, *ticker.ChangePct)
			parts = append(parts, fmt.Sprintf("%s $%s (%+.2f%%)",
				ticker.Symbol, ticker.Price.StringFixed(2), *ticker.ChangePct))
		} else {
			parts = append(parts, fmt.Sprintf("%s $%s", ticker.Symbol, ticker.Price.StringFixed(2)))
		}
	}

	direction := models.ToneFlat
	if avg, ok := tone.Average(live); ok {
		direction = tone.ClassifyValue(avg, false)
	}

	description := outlineDescription
	if len(parts) > 0 {
		description = strings.Join(parts, ", ")
	}

	return models.Segment{
		Name:        name,
		Direction:   direction,
		Description: description,
		Tickers:     tickers,
	}
}
