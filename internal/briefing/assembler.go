package briefing

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/vkuzmenko/marketbrief/internal/adapters/quotes"
	"github.com/vkuzmenko/marketbrief/internal/adapters/sentiment"
	"github.com/vkuzmenko/marketbrief/pkg/logger"
	"github.com/vkuzmenko/marketbrief/pkg/models"
)

// SentimentSource provides the fear & greed index reading.
type SentimentSource interface {
	Fetch(ctx context.Context) (models.FearGreed, bool)
}

// HeadlineSource provides ordered top headlines.
type HeadlineSource interface {
	Fetch(ctx context.Context) ([]models.Headline, bool)
}

// TickerSource provides priced instruments for one ticker-bearing segment.
type TickerSource interface {
	Fetch(ctx context.Context) ([]models.Ticker, bool)
}

// Assembler orchestrates the provider fetches and merges their partial
// results into one briefing record. Independent fetches run concurrently;
// the quote fallback chain sequences internally. The merge step runs
// single-threaded after all fetches resolve.
type Assembler struct {
	sentiment   SentimentSource
	headlines   HeadlineSource
	quoteChain  []quotes.Provider
	crypto      TickerSource
	commodities TickerSource
	previous    *models.BriefingRecord
	now         func() time.Time
}

// NewAssembler wires the provider clients together. previous is the last
// run's record when readable, or nil; it only supplies defaults that live
// data overwrites.
func NewAssembler(
	sentimentSrc SentimentSource,
	headlineSrc HeadlineSource,
	quoteChain []quotes.Provider,
	cryptoSrc TickerSource,
	commoditiesSrc TickerSource,
	previous *models.BriefingRecord,
) *Assembler {
	return &Assembler{
		sentiment:   sentimentSrc,
		headlines:   headlineSrc,
		quoteChain:  quoteChain,
		crypto:      cryptoSrc,
		commodities: commoditiesSrc,
		previous:    previous,
		now:         time.Now,
	}
}

// Run produces the briefing record for this run. It always returns a
// well-formed record: total provider failure degrades to the baseline, it
// never aborts.
func (a *Assembler) Run(ctx context.Context) models.BriefingRecord {
	now := a.now()
	record := BaselineRecord(now)
	a.applyPreviousDefaults(&record)

	var (
		fearGreed   models.FearGreed
		fearGreedOK bool
		headlines   []models.Headline
		headlinesOK bool
		quoteResult quotes.Result
		cryptoTick  []models.Ticker
		cryptoOK    bool
		commodTick  []models.Ticker
		commodOK    bool
	)

	// Each goroutine writes only its own variables; reads happen after
	// the join.
	var wg sync.WaitGroup
	wg.Add(5)

	go func() {
		defer wg.Done()
		fearGreed, fearGreedOK = a.sentiment.Fetch(ctx)
	}()
	go func() {
		defer wg.Done()
		headlines, headlinesOK = a.headlines.Fetch(ctx)
	}()
	go func() {
		defer wg.Done()
		quoteResult = SelectQuotes(ctx, a.quoteChain)
	}()
	go func() {
		defer wg.Done()
		cryptoTick, cryptoOK = a.crypto.Fetch(ctx)
	}()
	go func() {
		defer wg.Done()
		commodTick, commodOK = a.commodities.Fetch(ctx)
	}()

	wg.Wait()

	if fearGreedOK {
		record.SentimentIndex = fearGreed
		record.MarketMood = sentiment.Mood(fearGreed)
	}

	if headlinesOK {
		record.TopHeadlines = headlines
		record.HeadlineDigest = digest(headlines)
	}
	record.BigPicture = a.bigPicture(record.MarketMood, headlines, headlinesOK)

	var headlineTones map[string]models.Tone
	if headlinesOK {
		headlineTones = HeadlineTones(headlines)
	}

	if quoteResult.Usable() {
		record.Segments = MergeSegment(record.Segments, segmentFromQuotes(quoteResult))
	} else {
		logger.Warn("index quotes: category total failure, outline retained")
	}

	if cryptoOK {
		record.Segments = MergeSegment(record.Segments, segmentFromTickers(SegDigitalAssets, cryptoTick))
	} else {
		logger.Warn("crypto: category total failure, outline retained")
	}

	if commodOK {
		record.Segments = MergeSegment(record.Segments, segmentFromTickers(SegCommodities, commodTick))
	} else {
		logger.Warn("commodities: category total failure, outline retained")
	}

	// Lowest-priority layer: headline keywords color categories that no
	// provider populated.
	a.applyHeadlineTones(&record, headlineTones, quoteResult.Usable())

	record.MarketDrivers = DeriveDrivers(&record)

	logger.Info("briefing assembled",
		zap.String("date", record.Date),
		zap.String("mood", record.MarketMood),
		zap.Int("headlines", len(record.TopHeadlines)),
		zap.Bool("quotes_live", quoteResult.Usable()),
	)

	return record
}

// applyPreviousDefaults seeds sentiment and narrative defaults from the
// previous run's record so a fully dark day still reads sensibly.
func (a *Assembler) applyPreviousDefaults(record *models.BriefingRecord) {
	if a.previous == nil {
		return
	}
	if a.previous.SentimentIndex.Value > 0 {
		record.SentimentIndex = a.previous.SentimentIndex
	}
	if a.previous.MarketMood != "" {
		record.MarketMood = a.previous.MarketMood
	}
}

// applyHeadlineTones colors segments left on their outline with directions
// inferred from headline text.
func (a *Assembler) applyHeadlineTones(record *models.BriefingRecord, tones map[string]models.Tone, quotesLive bool) {
	if len(tones) == 0 {
		return
	}

	for name, direction := range tones {
		if name == SegGlobalMarkets && quotesLive {
			continue
		}
		seg := record.Segment(name)
		if seg == nil || seg.Description != outlineDescription {
			continue
		}
		seg.Direction = direction
	}
}

// digest builds the short-form headline list.
func digest(headlines []models.Headline) []string {
	lines := make([]string, 0, len(headlines))
	for _, headline := range headlines {
		title := headline.Title
		if len(title) > 90 {
			title = title[:87] + "..."
		}
		lines = append(lines, title)
	}
	return lines
}

// bigPicture composes the one-line narrative summary.
func (a *Assembler) bigPicture(mood string, headlines []models.Headline, headlinesOK bool) string {
	if !headlinesOK || len(headlines) == 0 {
		if a.previous != nil && a.previous.BigPicture != "" {
			return a.previous.BigPicture
		}
		return fmt.Sprintf("%s; live headlines are unavailable.", moodSentence(mood))
	}
	return fmt.Sprintf("%s. In focus: %s", moodSentence(mood), headlines[0].Title)
}
