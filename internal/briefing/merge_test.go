package briefing

import (
	"reflect"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/vkuzmenko/marketbrief/internal/adapters/quotes"
	"github.com/vkuzmenko/marketbrief/pkg/models"
)

func TestMergeSegment_ReplacesOnlyMatch(t *testing.T) {
	segments := BaselineRecord(time.Now()).Segments
	before := make([]models.Segment, len(segments))
	copy(before, segments)

	price := decimal.NewFromFloat(64000.0)
	pct := 2.0
	updated := models.Segment{
		Name:        SegDigitalAssets,
		Direction:   models.ToneUp,
		Description: "BTC $64000.00 (+2.00%)",
		Tickers: []models.Ticker{
			{Symbol: "BTC", Name: "Bitcoin", Price: &price, ChangePct: &pct},
		},
	}

	merged := MergeSegment(segments, updated)

	if len(merged) != len(segments) {
		t.Fatalf("merged length = %d, want %d", len(merged), len(segments))
	}

	for i, seg := range merged {
		if seg.Name == SegDigitalAssets {
			if seg.Direction != models.ToneUp || len(seg.Tickers) != 1 {
				t.Errorf("updated segment not applied: %+v", seg)
			}
			continue
		}
		if !reflect.DeepEqual(seg, before[i]) {
			t.Errorf("segment %s was disturbed by unrelated merge", seg.Name)
		}
	}

	// Input slice must not be mutated
	if !reflect.DeepEqual(segments, before) {
		t.Error("MergeSegment mutated its input")
	}
}

func TestMergeSegment_IdempotentPerName(t *testing.T) {
	segments := BaselineRecord(time.Now()).Segments

	pct := 1.5
	updated := models.Segment{
		Name:        SegCommodities,
		Direction:   models.ToneUp,
		Description: "XAU $2400.00 (+1.50%)",
		Tickers: []models.Ticker{
			{Symbol: "XAU", Name: "Gold", ChangePct: &pct},
		},
	}

	once := MergeSegment(segments, updated)
	twice := MergeSegment(once, updated)

	if !reflect.DeepEqual(once, twice) {
		t.Error("merging the same output twice must equal merging once")
	}

	seg := twice[3] // Commodities position in canonical order
	if seg.Name != SegCommodities {
		t.Fatalf("canonical order broken: got %s at index 3", seg.Name)
	}
	if len(seg.Tickers) != 1 {
		t.Errorf("tickers accumulated duplicates: %d", len(seg.Tickers))
	}
}

func TestSegmentFromQuotes(t *testing.T) {
	result := quotes.Result{
		Provider: "secondary",
		Status:   quotes.StatusPartial,
		Changes: map[string]float64{
			"^SPX": 1.0,
			"^VIX": -2.1,
		},
	}

	seg := segmentFromQuotes(result)

	if seg.Name != SegGlobalMarkets {
		t.Fatalf("segment name = %s", seg.Name)
	}
	if len(seg.Regions) != len(quotes.TrackedIndices) {
		t.Fatalf("regions = %d, want %d", len(seg.Regions), len(quotes.TrackedIndices))
	}

	for _, region := range seg.Regions {
		switch region.Label {
		case "S&P 500":
			if region.IsPlaceholder {
				t.Error("S&P 500 should not be a placeholder")
			}
			if region.ChangePct == nil || *region.ChangePct != 1.0 {
				t.Errorf("S&P 500 change = %v, want 1.0", region.ChangePct)
			}
			if region.Direction != models.ToneUp {
				t.Errorf("S&P 500 direction = %s, want up", region.Direction)
			}
		case "VIX":
			if region.Direction != models.ToneSubdued {
				t.Errorf("VIX direction = %s, want subdued", region.Direction)
			}
		default:
			if !region.IsPlaceholder {
				t.Errorf("%s should be a placeholder", region.Label)
			}
			if region.ChangePct != nil {
				t.Errorf("%s placeholder must not carry a change", region.Label)
			}
		}
	}

	// VIX excluded from the average: only ^SPX counts, +1.0 => up
	if seg.Direction != models.ToneUp {
		t.Errorf("segment direction = %s, want up", seg.Direction)
	}
}

func TestSegmentFromTickers_NameOnlyEntries(t *testing.T) {
	price := decimal.NewFromFloat(3100.0)
	pct := -1.0
	tickers := []models.Ticker{
		{Symbol: "BTC", Name: "Bitcoin"}, // price missing: name-only
		{Symbol: "ETH", Name: "Ethereum", Price: &price, ChangePct: &pct},
	}

	seg := segmentFromTickers(SegDigitalAssets, tickers)

	if seg.Direction != models.ToneDown {
		t.Errorf("direction = %s, want down", seg.Direction)
	}
	if want := "ETH $3100.00 (-1.00%)"; seg.Description != want {
		t.Errorf("description = %q, want %q", seg.Description, want)
	}
}
