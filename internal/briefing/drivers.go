package briefing

import (
	"fmt"
	"strings"

	"github.com/vkuzmenko/marketbrief/pkg/models"
)

const (
	maxDrivers          = 4
	maxDriverSummaryLen = 140
)

// placeholderPhrases mark descriptions that carry no real information; the
// drivers strip skips them.
var placeholderPhrases = []string{
	"unavailable",
	"awaiting",
	"appear once",
	"placeholder",
}

// DeriveDrivers picks up to four short labeled summaries from fixed
// segments (rates, tech-or-crypto, macro, FX) plus a volatility line from
// the sentiment index. Runs after all merges.
func DeriveDrivers(record *models.BriefingRecord) []models.MarketDriver {
	drivers := make([]models.MarketDriver, 0, maxDrivers+1)

	add := func(label, segmentName string) {
		if len(drivers) >= maxDrivers {
			return
		}
		seg := record.Segment(segmentName)
		if seg == nil || !usableSummary(seg.Description) {
			return
		}
		drivers = append(drivers, models.MarketDriver{
			Label:   label,
			Summary: seg.Description,
		})
	}

	add("Rates", SegBonds)

	// Tech when live, otherwise crypto
	if seg := record.Segment(SegTechnology); seg != nil && usableSummary(seg.Description) {
		add("Tech", SegTechnology)
	} else {
		add("Crypto", SegDigitalAssets)
	}

	add("Macro", SegGlobalMarkets)
	add("FX", SegCurrencies)

	drivers = append(drivers, models.MarketDriver{
		Label: "Volatility",
		Summary: fmt.Sprintf("Sentiment index at %d (%s).",
			record.SentimentIndex.Value, record.SentimentIndex.Label),
	})

	return drivers
}

// usableSummary rejects descriptions that are too long for the strip or
// that contain known placeholder phrasing.
func usableSummary(description string) bool {
	if description == "" || len(description) > maxDriverSummaryLen {
		return false
	}
	lower := strings.ToLower(description)
	for _, phrase := range placeholderPhrases {
		if strings.Contains(lower, phrase) {
			return false
		}
	}
	return true
}
