package pipeline

import "strings"

// PageContext is read-only reference data about the page the user is
// currently viewing, supplied to response generation alongside the
// classified intent. The pipeline looks it up; it does not own or mutate it.
type PageContext struct {
	Path        string   `yaml:"path"`
	Title       string   `yaml:"title"`
	Description string   `yaml:"description"`
	Features    []string `yaml:"features"`
}

// ContextLookup resolves the current route path to its [PageContext].
// The front-end may supply its own implementation; [RouteTable] is the
// built-in one.
type ContextLookup interface {
	Lookup(path string) (PageContext, bool)
}

// RouteTable is a static ordered page-context table keyed by path.
// Read-only after construction; safe for concurrent use.
type RouteTable struct {
	pages []PageContext
}

// Compile-time interface check.
var _ ContextLookup = (*RouteTable)(nil)

// NewRouteTable builds a table over pages. Empty input falls back to
// [DefaultRoutes].
func NewRouteTable(pages []PageContext) *RouteTable {
	if len(pages) == 0 {
		pages = DefaultRoutes()
	}
	return &RouteTable{pages: pages}
}

// Lookup implements [ContextLookup]. Paths match exactly after trailing
// slashes are stripped; lookup misses, including the empty path, return
// ok=false, never an error.
func (t *RouteTable) Lookup(path string) (PageContext, bool) {
	if path == "" {
		return PageContext{}, false
	}
	p := strings.TrimRight(path, "/")
	if p == "" {
		p = "/"
	}
	for _, pc := range t.pages {
		if pc.Path == p {
			return pc, true
		}
	}
	return PageContext{}, false
}

// DefaultRoutes returns the built-in dashboard route table.
func DefaultRoutes() []PageContext {
	return []PageContext{
		{
			Path:        "/",
			Title:       "Home",
			Description: "GhostQuant overview with market highlights and quick links to every intelligence dashboard.",
			Features:    []string{"market summary", "watchlist", "dashboard navigation"},
		},
		{
			Path:        "/whale-intelligence",
			Title:       "Whale Intelligence",
			Description: "Tracks large-holder wallets and surfaces significant transfers, accumulation, and distribution patterns.",
			Features:    []string{"whale transfer feed", "wallet clustering", "accumulation alerts"},
		},
		{
			Path:        "/market-intelligence",
			Title:       "Market Intelligence",
			Description: "Aggregated market structure: order-book depth, funding rates, and cross-exchange flows.",
			Features:    []string{"order-book heatmap", "funding overview", "exchange flow charts"},
		},
		{
			Path:        "/trading-intelligence",
			Title:       "Trading Intelligence",
			Description: "Signals and analytics for active trading: momentum, liquidation levels, and volatility regimes.",
			Features:    []string{"signal feed", "liquidation map", "volatility dashboard"},
		},
		{
			Path:        "/wallet-profiler",
			Title:       "Wallet Profiler",
			Description: "Deep-dive analysis of a single wallet: holdings, history, and counterparties.",
			Features:    []string{"holdings breakdown", "transaction history", "counterparty graph"},
		},
		{
			Path:        "/alerts",
			Title:       "Alerts",
			Description: "Configure and review notifications for whale moves, price levels, and market events.",
			Features:    []string{"alert rules", "notification history"},
		},
	}
}
