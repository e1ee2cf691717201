package analysis

import (
	"math"

	"holdings-observer/src/models"
	"holdings-observer/src/series"
)

// -----------------------------------------------------------------------------
// Cross-dataset join: accumulated flow enriched with settlement prices.
// -----------------------------------------------------------------------------

// PriceLookup resolves a closing price for (code, date). Implemented by
// ingest.PriceBook; used as a fallback when the settlement store has no row
// for the code on that date.
type PriceLookup interface {
	Lookup(code, date string) (float64, bool)
}

// Enricher joins the accumulated series with same-date settlement prices.
// Prices is optional and may be nil.
type Enricher struct {
	Accumulated *series.Store[models.MAccumulatedHolding]
	Settlement  *series.Store[models.MSettlementHolding]
	Prices      PriceLookup
}

// -----------------------------------------------------------------------------

func NewEnricher(acc *series.Store[models.MAccumulatedHolding], set *series.Store[models.MSettlementHolding], prices PriceLookup) *Enricher {
	return &Enricher{
		Accumulated: acc,
		Settlement:  set,
		Prices:      prices,
	}
}

// -----------------------------------------------------------------------------

// Enrich walks the accumulated series for code and attaches the settlement
// price observed on the same calendar date. Missing matches stay nil; the two
// datasets load independently and date misalignment is expected.
func (e *Enricher) Enrich(code string) []models.MEnrichedAccumulated {
	accSeries := e.Accumulated.SeriesFor(code)
	if len(accSeries) == 0 {
		return nil
	}

	out := make([]models.MEnrichedAccumulated, 0, len(accSeries))
	for _, dated := range accSeries {
		entry := models.MEnrichedAccumulated{
			Date:                dated.Date,
			MAccumulatedHolding: dated.Holding,
		}
		if price, ok := e.priceOn(code, dated.Date); ok {
			rounded := round2(price)
			entry.Price = &rounded
		}
		out = append(out, entry)
	}
	return out
}

// -----------------------------------------------------------------------------

func (e *Enricher) priceOn(code, date string) (float64, bool) {
	if day, ok := e.Settlement.LatestOrFor(date); ok {
		for _, h := range day.Holdings {
			if h.Code == code {
				return h.Price, true
			}
		}
	}
	if e.Prices != nil {
		if price, ok := e.Prices.Lookup(code, date); ok {
			return price, true
		}
	}
	return 0, false
}

// -----------------------------------------------------------------------------

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
