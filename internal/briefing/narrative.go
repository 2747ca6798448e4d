package briefing

import (
	"strings"

	"github.com/vkuzmenko/marketbrief/pkg/models"
)

// Keyword sets for the headline-derived direction heuristic. This is the
// lowest-priority fallback layer: it only colors a category whose quote
// providers all failed, and only when the headline feed produced data.
var (
	bullishWords = []string{"rally", "rallies", "surge", "soar", "rebound", "record high", "climb", "jump", "gain"}
	bearishWords = []string{"fall", "falls", "drop", "slump", "selloff", "sell-off", "plunge", "tumble", "slide", "sink"}
)

// categoryKeywords maps a segment name to the words that tie a headline to
// that category. Matching is case-insensitive.
var categoryKeywords = map[string][]string{
	SegGlobalMarkets: {"stocks", "equities", "wall street", "markets", "dow", "s&p", "nasdaq"},
	SegCurrencies:    {"dollar", "euro", "yen", "pound", "currency", "forex"},
	SegBonds:         {"treasury", "treasuries", "yields", "bond"},
	SegEnergy:        {"oil", "crude", "natural gas", "opec", "energy"},
	SegTechnology:    {"tech", "chip", "semiconductor", "software", " ai "},
}

// HeadlineTones derives coarse category directions from headline text. A
// category gets a tone from the first headline that both names it and
// carries a directional word; headlines without direction words are
// ignored.
func HeadlineTones(headlines []models.Headline) map[string]models.Tone {
	tones := make(map[string]models.Tone)

	for _, headline := range headlines {
		text := " " + strings.ToLower(headline.Title) + " "

		direction := models.ToneFlat
		if containsAny(text, bullishWords) {
			direction = models.ToneUp
		} else if containsAny(text, bearishWords) {
			direction = models.ToneDown
		} else {
			continue
		}

		for category, keywords := range categoryKeywords {
			if _, seen := tones[category]; seen {
				continue
			}
			if containsAny(text, keywords) {
				tones[category] = direction
			}
		}
	}

	return tones
}

func containsAny(text string, words []string) bool {
	for _, w := range words {
		if strings.Contains(text, w) {
			return true
		}
	}
	return false
}

// moodSentence opens the big picture narrative for a given market mood.
func moodSentence(mood string) string {
	switch mood {
	case models.MoodRiskOn:
		return "Risk appetite is firm"
	case models.MoodRiskOff:
		return "Caution dominates trading"
	default:
		return "Markets are mixed"
	}
}
