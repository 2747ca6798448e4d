package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tone is the closed qualitative direction vocabulary. Standard instruments
// use up/down/flat; volatility-style instruments (fear gauges) use
// elevated/subdued/steady.
type Tone string

const (
	ToneUp   Tone = "up"
	ToneDown Tone = "down"
	ToneFlat Tone = "flat"

	ToneElevated Tone = "elevated"
	ToneSubdued  Tone = "subdued"
	ToneSteady   Tone = "steady"
)

// Market mood values derived from the sentiment index.
const (
	MoodRiskOn  = "Risk-on"
	MoodRiskOff = "Risk-off"
	MoodNeutral = "Neutral"
)

// FearGreed is the crypto fear & greed sentiment index reading.
type FearGreed struct {
	Value int    `json:"value"`
	Label string `json:"label"`
}

// Headline is one news item attributed to its outlet.
type Headline struct {
	Source string `json:"source"`
	Title  string `json:"title"`
}

// Region is one benchmark index inside an index-style segment.
// IsPlaceholder is true exactly when no real change was obtained.
type Region struct {
	Label             string   `json:"label"`
	Direction         Tone     `json:"direction"`
	ChangePct         *float64 `json:"change_pct,omitempty"`
	IsPlaceholder     bool     `json:"is_placeholder"`
	IsVolatilityStyle bool     `json:"is_volatility_style,omitempty"`
}

// Ticker is one priced instrument inside a non-index segment.
// A ticker without a price is rendered name-only.
type Ticker struct {
	Symbol    string           `json:"symbol"`
	Name      string           `json:"name"`
	Price     *decimal.Decimal `json:"price,omitempty"`
	ChangePct *float64         `json:"change_pct,omitempty"`
}

// Segment is one market category of the briefing. Name is the merge key and
// must be unique within a record. A segment carries either regions or
// tickers, never both with live data.
type Segment struct {
	Name        string   `json:"name"`
	Direction   Tone     `json:"direction"`
	Description string   `json:"description"`
	Regions     []Region `json:"regions,omitempty"`
	Tickers     []Ticker `json:"tickers,omitempty"`
}

// MarketDriver is one short labeled summary shown in the "what's moving
// markets" strip.
type MarketDriver struct {
	Label   string `json:"label"`
	Summary string `json:"summary"`
}

// BriefingRecord is the root artifact, rebuilt from scratch every run.
type BriefingRecord struct {
	BigPicture     string         `json:"big_picture"`
	MarketMood     string         `json:"market_mood"`
	SentimentIndex FearGreed      `json:"sentiment_index"`
	HeadlineDigest []string       `json:"headline_digest"`
	TopHeadlines   []Headline     `json:"top_headlines"`
	Segments       []Segment      `json:"segments"`
	MarketDrivers  []MarketDriver `json:"market_drivers,omitempty"`
	GeneratedAt    time.Time      `json:"generated_at"`
	Date           string         `json:"date"`
}

// Segment returns the segment with the given name, or nil.
func (r *BriefingRecord) Segment(name string) *Segment {
	for i := range r.Segments {
		if r.Segments[i].Name == name {
			return &r.Segments[i]
		}
	}
	return nil
}

// LiveRegionCount returns how many regions carry a real change value.
func (s *Segment) LiveRegionCount() int {
	n := 0
	for _, reg := range s.Regions {
		if !reg.IsPlaceholder {
			n++
		}
	}
	return n
}
