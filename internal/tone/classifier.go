package tone

import (
	"github.com/vkuzmenko/marketbrief/pkg/models"
)

// Threshold is the absolute percent change below which an instrument is
// considered unchanged. Values at exactly ±Threshold classify as flat.
const Threshold = 0.3

// Classify maps a percent change to the qualitative direction vocabulary.
// A nil change (no data) is flat. Volatility-style instruments invert
// sense relative to market risk: a rising fear gauge is "elevated".
func Classify(pct *float64, volatilityStyle bool) models.Tone {
	if pct == nil {
		if volatilityStyle {
			return models.ToneSteady
		}
		return models.ToneFlat
	}
	return ClassifyValue(*pct, volatilityStyle)
}

// ClassifyValue is Classify for a known-present change value.
func ClassifyValue(pct float64, volatilityStyle bool) models.Tone {
	switch {
	case pct > Threshold:
		if volatilityStyle {
			return models.ToneElevated
		}
		return models.ToneUp
	case pct < -Threshold:
		if volatilityStyle {
			return models.ToneSubdued
		}
		return models.ToneDown
	default:
		if volatilityStyle {
			return models.ToneSteady
		}
		return models.ToneFlat
	}
}

// Average returns the mean of the given changes, or false when empty.
func Average(pcts []float64) (float64, bool) {
	if len(pcts) == 0 {
		return 0, false
	}
	sum := 0.0
	for _, p := range pcts {
		sum += p
	}
	return sum / float64(len(pcts)), true
}
