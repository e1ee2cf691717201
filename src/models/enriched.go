package models

// MEnrichedAccumulated is one accumulated-holdings day joined with the
// settlement closing price for the same calendar date. Price is nil when
// neither the settlement store nor the price book has a match — dates are
// never interpolated across.
type MEnrichedAccumulated struct {
	Date string `json:"date"`
	MAccumulatedHolding
	Price *float64 `json:"price"`
}
