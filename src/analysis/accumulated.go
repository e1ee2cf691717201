package analysis

import (
	"sort"

	"holdings-observer/src/models"
	"holdings-observer/src/series"
)

// -----------------------------------------------------------------------------
// AccumulatedAnalyzer
// -----------------------------------------------------------------------------

// AccumulatedAnalyzer answers per-day questions about the accumulated
// buy/sell dataset.
type AccumulatedAnalyzer struct {
	Store *series.Store[models.MAccumulatedHolding]
}

// -----------------------------------------------------------------------------

func NewAccumulatedAnalyzer(store *series.Store[models.MAccumulatedHolding]) *AccumulatedAnalyzer {
	return &AccumulatedAnalyzer{Store: store}
}

// -----------------------------------------------------------------------------

// TopSales returns the first limit holdings of a day, which are already in
// sell-quantity order (rank ascending). Empty date means the latest day.
// The resolved date comes back with the list; a missing day yields nil, "".
func (a *AccumulatedAnalyzer) TopSales(limit int, date string) ([]models.MAccumulatedHolding, string) {
	day, ok := a.Store.LatestOrFor(date)
	if !ok {
		return nil, ""
	}
	holdings := day.Holdings
	if limit > 0 && limit < len(holdings) {
		holdings = holdings[:limit]
	}
	out := make([]models.MAccumulatedHolding, len(holdings))
	copy(out, holdings)
	return out, day.Date
}

// -----------------------------------------------------------------------------

// AllByNet returns every holding of a day ordered by net position descending.
// Empty date means the latest day.
func (a *AccumulatedAnalyzer) AllByNet(date string) ([]models.MAccumulatedHolding, string) {
	day, ok := a.Store.LatestOrFor(date)
	if !ok {
		return nil, ""
	}
	out := make([]models.MAccumulatedHolding, len(day.Holdings))
	copy(out, day.Holdings)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Net > out[j].Net
	})
	return out, day.Date
}
