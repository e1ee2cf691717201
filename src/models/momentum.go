package models

// -----------------------------------------------------------------------------
// Momentum classification over a security's rank history. Derived on demand,
// never persisted.
// -----------------------------------------------------------------------------

// Trend labels. A positive change means the rank number dropped, i.e. the
// security moved toward the top of the board.
const (
	TrendStrongUp     = "strong_up"
	TrendUp           = "up"
	TrendFlat         = "flat"
	TrendDown         = "down"
	TrendStrongDown   = "strong_down"
	TrendInsufficient = "insufficient_data"
)

// MRankPoint is one day of a security's rank history.
type MRankPoint struct {
	Date string `json:"date"`
	Rank int    `json:"rank"`
}

// -----------------------------------------------------------------------------

// MMomentumTrend is the windowed classification of a rank history.
// StartRank/EndRank are nil when the window holds fewer than 2 points.
type MMomentumTrend struct {
	Trend       string `json:"trend"`
	StartRank   *int   `json:"start_rank"`
	EndRank     *int   `json:"end_rank"`
	Change      int    `json:"change"`
	IsImproving bool   `json:"is_improving"`
	DataPoints  int    `json:"data_points"`
}

// -----------------------------------------------------------------------------

// MStockMomentum is one entry of the top-movers board.
type MStockMomentum struct {
	Code string `json:"code"`
	MMomentumTrend
	History []MRankPoint `json:"history"`
}
