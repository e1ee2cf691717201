package models

// -----------------------------------------------------------------------------
// Daily snapshots. Dates are YYYY-MM-DD calendar strings everywhere; they are
// never converted to time.Time with a timezone attached.
// -----------------------------------------------------------------------------

// MDay is one dataset's snapshot for one calendar date, holdings sorted by
// rank ascending. Immutable once produced by the normalizer.
type MDay[H Holding] struct {
	Date     string `json:"date"`
	Holdings []H    `json:"holdings"`
}

// MDated pairs one holding with the date it was observed on.
type MDated[H Holding] struct {
	Date    string `json:"date"`
	Holding H      `json:"holding"`
}

type MSettlementDay = MDay[MSettlementHolding]

type MAccumulatedDay = MDay[MAccumulatedHolding]
