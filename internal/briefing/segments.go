package briefing

import (
	"time"

	"github.com/vkuzmenko/marketbrief/internal/adapters/quotes"
	"github.com/vkuzmenko/marketbrief/pkg/models"
)

// Canonical segment names. The order of segmentBindings is the render
// order consumers rely on.
const (
	SegGlobalMarkets = "Global Markets"
	SegCurrencies    = "Currencies"
	SegBonds         = "Bonds"
	SegCommodities   = "Commodities"
	SegEnergy        = "Energy"
	SegDigitalAssets = "Digital Assets"
	SegTechnology    = "Technology"
	SegSectorWatch   = "Sector Watch"
	SegRealEstate    = "Real Estate"
	SegTopMovers     = "Top Movers"
)

// sourceKind identifies which provider category populates a segment.
type sourceKind int

const (
	sourceStatic sourceKind = iota
	sourceQuotes
	sourceCrypto
	sourceCommodities
)

// binding ties one segment to its single populating provider category.
// Exactly one source per segment keeps merges conflict-free.
type binding struct {
	name   string
	source sourceKind
}

var segmentBindings = []binding{
	{SegGlobalMarkets, sourceQuotes},
	{SegCurrencies, sourceStatic},
	{SegBonds, sourceStatic},
	{SegCommodities, sourceCommodities},
	{SegEnergy, sourceStatic},
	{SegDigitalAssets, sourceCrypto},
	{SegTechnology, sourceStatic},
	{SegSectorWatch, sourceStatic},
	{SegRealEstate, sourceStatic},
	{SegTopMovers, sourceStatic},
}

// outlineDescription is the visible phrasing for a category with no live
// data. The drivers filter recognizes and skips it.
const outlineDescription = "Live data unavailable; showing tracked instruments."

// staticOutlineTickers lists the named-only instruments shown while a
// category has no live data.
var staticOutlineTickers = map[string][]models.Ticker{
	SegCurrencies: {
		{Symbol: "EURUSD", Name: "Euro / US Dollar"},
		{Symbol: "USDJPY", Name: "US Dollar / Japanese Yen"},
		{Symbol: "GBPUSD", Name: "British Pound / US Dollar"},
		{Symbol: "DXY", Name: "US Dollar Index"},
	},
	SegBonds: {
		{Symbol: "US10Y", Name: "US 10-Year Treasury"},
		{Symbol: "US2Y", Name: "US 2-Year Treasury"},
		{Symbol: "DE10Y", Name: "German 10-Year Bund"},
	},
	SegCommodities: {
		{Symbol: "XAU", Name: "Gold"},
		{Symbol: "XAG", Name: "Silver"},
		{Symbol: "WTI", Name: "WTI Crude"},
		{Symbol: "BRN", Name: "Brent Crude"},
		{Symbol: "NG", Name: "Natural Gas"},
	},
	SegEnergy: {
		{Symbol: "XLE", Name: "Energy Select Sector"},
		{Symbol: "XOM", Name: "Exxon Mobil"},
		{Symbol: "CVX", Name: "Chevron"},
	},
	SegDigitalAssets: {
		{Symbol: "BTC", Name: "Bitcoin"},
		{Symbol: "ETH", Name: "Ethereum"},
	},
	SegTechnology: {
		{Symbol: "AAPL", Name: "Apple"},
		{Symbol: "MSFT", Name: "Microsoft"},
		{Symbol: "NVDA", Name: "NVIDIA"},
	},
	SegSectorWatch: {
		{Symbol: "XLF", Name: "Financials"},
		{Symbol: "XLV", Name: "Health Care"},
		{Symbol: "XLI", Name: "Industrials"},
	},
	SegRealEstate: {
		{Symbol: "VNQ", Name: "Vanguard Real Estate"},
		{Symbol: "IYR", Name: "iShares US Real Estate"},
	},
}

// outlineSegment builds the named-only fallback for one category.
func outlineSegment(name string) models.Segment {
	seg := models.Segment{
		Name:        name,
		Direction:   models.ToneFlat,
		Description: outlineDescription,
	}

	if name == SegGlobalMarkets {
		regions := make([]models.Region, 0, len(quotes.TrackedIndices))
		for _, idx := range quotes.TrackedIndices {
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
		}
		seg.Regions = regions
		return seg
	}

	if tickers, ok := staticOutlineTickers[name]; ok {
		seg.Tickers = append([]models.Ticker(nil), tickers...)
	}
	if name == SegTopMovers {
		seg.Description = "Top movers appear once live quotes are available."
	}

	return seg
}

// BaselineRecord is the hardcoded fallback briefing. It satisfies every
// downstream invariant on its own, so a run with zero network access still
// renders a complete page.
func BaselineRecord(now time.Time) models.BriefingRecord {
	segments := make([]models.Segment, 0, len(segmentBindings))
	for _, b := range segmentBindings {
		segments = append(segments, outlineSegment(b.name))
	}

	return models.BriefingRecord{
		BigPicture:     "Markets are mixed; live data feeds are temporarily unavailable.",
		MarketMood:     models.MoodNeutral,
		SentimentIndex: models.FearGreed{Value: 50, Label: "Neutral"},
		HeadlineDigest: []string{"Live headlines unavailable."},
		TopHeadlines:   []models.Headline{},
		Segments:       segments,
		GeneratedAt:    now.UTC(),
		Date:           now.UTC().Format("2006-01-02"),
	}
}
