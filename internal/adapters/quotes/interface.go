package quotes

import (
	"context"
)

// Index is one tracked benchmark. Symbol is the canonical identifier used
// across providers; each provider maps it to its own ticker format.
type Index struct {
	Symbol          string
	Label           string
	VolatilityStyle bool
}

// TrackedIndices is the fixed symbol set every quote provider resolves:
// eight major indices plus the VIX. Order matters for rendering.
var TrackedIndices = []Index{
	{Symbol: "^SPX", Label: "S&P 500"},
	{Symbol: "^DJI", Label: "Dow Jones"},
	{Symbol: "^IXIC", Label: "Nasdaq"},
	{Symbol: "^FTSE", Label: "FTSE 100"},
	{Symbol: "^DAX", Label: "DAX"},
	{Symbol: "^NKX", Label: "Nikkei 225"},
	{Symbol: "^HSI", Label: "Hang Seng"},
	{Symbol: "^SHC", Label: "Shanghai Composite"},
	{Symbol: "^VIX", Label: "VIX", VolatilityStyle: true},
}

// Status describes how much of the tracked symbol set a provider resolved.
type Status int

const (
	StatusUnavailable Status = iota
	StatusPartial
	StatusFull
)

// Result is a provider's normalized output: canonical symbol to percent
// change. Symbols a provider could not resolve are simply absent; the
// merger flags them as placeholders.
type Result struct {
	Provider string
	Status   Status
	Changes  map[string]float64
}

// Usable reports whether this result carries at least one real data point.
// The fallback selector only accepts usable results.
func (r Result) Usable() bool {
	return r.Status != StatusUnavailable && len(r.Changes) > 0
}

// Unavailable builds the absence result for a provider.
func Unavailable(provider string) Result {
	return Result{Provider: provider, Status: StatusUnavailable}
}

// resultFor derives the tagged status from how many symbols resolved.
func resultFor(provider string, changes map[string]float64) Result {
	switch {
	case len(changes) == 0:
		return Unavailable(provider)
	case len(changes) < len(TrackedIndices):
		return Result{Provider: provider, Status: StatusPartial, Changes: changes}
	default:
		return Result{Provider: provider, Status: StatusFull, Changes: changes}
	}
}

// Provider is one index quote source. Fetch never returns a transport
// error: failures surface as an unavailable result and are logged inside
// the client.
type Provider interface {
	Name() string

	// Available reports whether the provider can be called at all
	// (e.g. its required API key is configured).
	Available() bool

	Fetch(ctx context.Context) Result
}
