package briefing

import (
	"context"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/vkuzmenko/marketbrief/internal/adapters/quotes"
	"github.com/vkuzmenko/marketbrief/pkg/models"
)

type fakeSentiment struct {
	reading models.FearGreed
	ok      bool
}

func (f fakeSentiment) Fetch(ctx context.Context) (models.FearGreed, bool) {
	return f.reading, f.ok
}

type fakeHeadlines struct {
	headlines []models.Headline
	ok        bool
}

func (f fakeHeadlines) Fetch(ctx context.Context) ([]models.Headline, bool) {
	return f.headlines, f.ok
}

type fakeTickers struct {
	tickers []models.Ticker
	ok      bool
}

func (f fakeTickers) Fetch(ctx context.Context) ([]models.Ticker, bool) {
	return f.tickers, f.ok
}

func darkAssembler() *Assembler {
	return NewAssembler(
		fakeSentiment{},
		fakeHeadlines{},
		[]quotes.Provider{
			&fakeQuoteProvider{name: "primary", available: false},
			&fakeQuoteProvider{name: "secondary", available: true, result: quotes.Unavailable("secondary")},
			&fakeQuoteProvider{name: "tertiary", available: true, result: quotes.Unavailable("tertiary")},
		},
		fakeTickers{},
		fakeTickers{},
		nil,
	)
}

func TestAssembler_TotalFailureProducesValidRecord(t *testing.T) {
	record := darkAssembler().Run(context.Background())

	if record.MarketMood != models.MoodNeutral {
		t.Errorf("mood = %s, want Neutral", record.MarketMood)
	}
	if record.SentimentIndex.Value != 50 || record.SentimentIndex.Label == "" {
		t.Errorf("sentiment index = %+v, want baseline", record.SentimentIndex)
	}
	if record.BigPicture == "" {
		t.Error("big picture must never be empty")
	}
	if len(record.HeadlineDigest) == 0 {
		t.Error("headline digest must never be empty")
	}
	if record.TopHeadlines == nil {
		t.Error("top headlines must be present, even if empty")
	}
	if record.Date == "" || record.GeneratedAt.IsZero() {
		t.Error("record must be stamped with date and timestamp")
	}

	wantOrder := []string{
		SegGlobalMarkets, SegCurrencies, SegBonds, SegCommodities, SegEnergy,
		SegDigitalAssets, SegTechnology, SegSectorWatch, SegRealEstate, SegTopMovers,
	}
	if len(record.Segments) != len(wantOrder) {
		t.Fatalf("segments = %d, want %d", len(record.Segments), len(wantOrder))
	}
	for i, name := range wantOrder {
		seg := record.Segments[i]
		if seg.Name != name {
			t.Errorf("segment[%d] = %s, want %s", i, seg.Name, name)
		}
		if seg.Direction == "" || seg.Description == "" {
			t.Errorf("segment %s missing direction or description", seg.Name)
		}
		for _, region := range seg.Regions {
			if !region.IsPlaceholder {
				t.Errorf("region %s should be a placeholder with no live data", region.Label)
			}
		}
		for _, ticker := range seg.Tickers {
			if ticker.Price != nil {
				t.Errorf("ticker %s should be name-only with no live data", ticker.Symbol)
			}
		}
	}
}

func TestAssembler_SentimentDrivesMood(t *testing.T) {
	a := darkAssembler()
	a.sentiment = fakeSentiment{reading: models.FearGreed{Value: 72, Label: "Greed"}, ok: true}

	record := a.Run(context.Background())

	if record.MarketMood != models.MoodRiskOn {
		t.Errorf("mood = %s, want Risk-on", record.MarketMood)
	}
	if record.SentimentIndex.Value != 72 || record.SentimentIndex.Label != "Greed" {
		t.Errorf("sentiment = %+v, provider label must be preserved", record.SentimentIndex)
	}
}

func TestAssembler_SecondaryQuotesPopulateRegions(t *testing.T) {
	a := darkAssembler()
	a.quoteChain = []quotes.Provider{
		&fakeQuoteProvider{name: "primary", available: false},
		&fakeQuoteProvider{
			name:      "secondary",
			available: true,
			result:    usableResult("secondary", map[string]float64{"^SPX": 1.0}),
		},
	}

	record := a.Run(context.Background())

	seg := record.Segment(SegGlobalMarkets)
	if seg == nil {
		t.Fatal("Global Markets segment missing")
	}

	var spx *models.Region
	for i := range seg.Regions {
		if seg.Regions[i].Label == "S&P 500" {
			spx = &seg.Regions[i]
		}
	}
	if spx == nil {
		t.Fatal("S&P 500 region missing")
	}
	if spx.IsPlaceholder {
		t.Error("S&P 500 should carry live data")
	}
	if spx.ChangePct == nil || *spx.ChangePct != 1.0 {
		t.Errorf("S&P 500 change = %v, want 1.0", spx.ChangePct)
	}
	if spx.Direction != models.ToneUp {
		t.Errorf("S&P 500 direction = %s, want up", spx.Direction)
	}
}

func TestAssembler_CryptoAverageAndFormatting(t *testing.T) {
	btcPrice := decimal.NewFromFloat(64250.5)
	ethPrice := decimal.NewFromFloat(3120.0)
	btcPct := 2.0
	ethPct := -1.0

	a := darkAssembler()
	a.crypto = fakeTickers{
		tickers: []models.Ticker{
			{Symbol: "BTC", Name: "Bitcoin", Price: &btcPrice, ChangePct: &btcPct},
			{Symbol: "ETH", Name: "Ethereum", Price: &ethPrice, ChangePct: &ethPct},
		},
		ok: true,
	}

	record := a.Run(context.Background())

	seg := record.Segment(SegDigitalAssets)
	if seg == nil {
		t.Fatal("Digital Assets segment missing")
	}

	// Average of +2 and -1 is +0.5, above the up threshold
	if seg.Direction != models.ToneUp {
		t.Errorf("direction = %s, want up", seg.Direction)
	}
	if !strings.Contains(seg.Description, "+2.00%") || !strings.Contains(seg.Description, "-1.00%") {
		t.Errorf("description %q must embed both changes to two decimals", seg.Description)
	}
}

func TestAssembler_HeadlinesColorOutlineSegments(t *testing.T) {
	a := darkAssembler()
	a.headlines = fakeHeadlines{
		headlines: []models.Headline{
			{Source: "Reuters", Title: "Oil prices tumble as supply fears ease"},
			{Source: "Bloomberg", Title: "Treasury yields climb ahead of auction"},
		},
		ok: true,
	}

	record := a.Run(context.Background())

	if got := record.Segment(SegEnergy).Direction; got != models.ToneDown {
		t.Errorf("Energy direction = %s, want down (from headline)", got)
	}
	if got := record.Segment(SegBonds).Direction; got != models.ToneUp {
		t.Errorf("Bonds direction = %s, want up (from headline)", got)
	}
	if len(record.TopHeadlines) != 2 {
		t.Errorf("top headlines = %d, want 2", len(record.TopHeadlines))
	}
	if !strings.Contains(record.BigPicture, "Oil prices tumble") {
		t.Errorf("big picture %q should quote the lead headline", record.BigPicture)
	}
}

func TestAssembler_PreviousSnapshotSuppliesDefaults(t *testing.T) {
	a := darkAssembler()
	a.previous = &models.BriefingRecord{
		MarketMood:     models.MoodRiskOff,
		SentimentIndex: models.FearGreed{Value: 31, Label: "Fear"},
		BigPicture:     "Caution dominates trading. In focus: rate decision.",
	}

	record := a.Run(context.Background())

	if record.MarketMood != models.MoodRiskOff {
		t.Errorf("mood = %s, want previous day's Risk-off", record.MarketMood)
	}
	if record.SentimentIndex.Value != 31 {
		t.Errorf("sentiment value = %d, want previous day's 31", record.SentimentIndex.Value)
	}
	if record.BigPicture != a.previous.BigPicture {
		t.Errorf("big picture = %q, want previous day's", record.BigPicture)
	}
}
