package briefing

import (
	"context"
	"testing"

	"github.com/vkuzmenko/marketbrief/internal/adapters/quotes"
)

type fakeQuoteProvider struct {
	name      string
	available bool
	result    quotes.Result
	calls     int
}

func (f *fakeQuoteProvider) Name() string    { return f.name }
func (f *fakeQuoteProvider) Available() bool { return f.available }
func (f *fakeQuoteProvider) Fetch(ctx context.Context) quotes.Result {
	f.calls++
	return f.result
}

func usableResult(provider string, changes map[string]float64) quotes.Result {
	return quotes.Result{Provider: provider, Status: quotes.StatusPartial, Changes: changes}
}

func TestSelectQuotes_PriorityOrder(t *testing.T) {
	primary := &fakeQuoteProvider{
		name:      "primary",
		available: true,
		result:    usableResult("primary", map[string]float64{"^SPX": 0.8}),
	}
	secondary := &fakeQuoteProvider{
		name:      "secondary",
		available: true,
		result:    usableResult("secondary", map[string]float64{"^SPX": 0.5}),
	}

	got := SelectQuotes(context.Background(), []quotes.Provider{primary, secondary})

	if got.Provider != "primary" {
		t.Errorf("selected provider = %s, want primary", got.Provider)
	}
	if secondary.calls != 0 {
		t.Error("secondary should not be called when primary is usable")
	}
}

func TestSelectQuotes_FallsThroughAllPlaceholder(t *testing.T) {
	// Primary resolved nothing: all entries would be placeholders
	primary := &fakeQuoteProvider{
		name:      "primary",
		available: true,
		result:    quotes.Unavailable("primary"),
	}
	secondary := &fakeQuoteProvider{
		name:      "secondary",
		available: true,
		result:    usableResult("secondary", map[string]float64{"^SPX": 1.0}),
	}

	got := SelectQuotes(context.Background(), []quotes.Provider{primary, secondary})

	if got.Provider != "secondary" {
		t.Errorf("selected provider = %s, want secondary", got.Provider)
	}
	if primary.calls != 1 {
		t.Errorf("primary calls = %d, want 1", primary.calls)
	}
}

func TestSelectQuotes_SkipsUnconfiguredWithoutCall(t *testing.T) {
	primary := &fakeQuoteProvider{
		name:      "primary",
		available: false,
		result:    usableResult("primary", map[string]float64{"^SPX": 0.8}),
	}
	secondary := &fakeQuoteProvider{
		name:      "secondary",
		available: true,
		result:    usableResult("secondary", map[string]float64{"^SPX": 0.5}),
	}

	got := SelectQuotes(context.Background(), []quotes.Provider{primary, secondary})

	if got.Provider != "secondary" {
		t.Errorf("selected provider = %s, want secondary", got.Provider)
	}
	if primary.calls != 0 {
		t.Error("unconfigured provider must not be fetched")
	}
}

func TestSelectQuotes_AllRejected(t *testing.T) {
	providers := []quotes.Provider{
		&fakeQuoteProvider{name: "primary", available: false},
		&fakeQuoteProvider{name: "secondary", available: true, result: quotes.Unavailable("secondary")},
		&fakeQuoteProvider{name: "tertiary", available: true, result: quotes.Unavailable("tertiary")},
	}

	got := SelectQuotes(context.Background(), providers)

	if got.Usable() {
		t.Error("result should not be usable when every candidate failed")
	}
}
