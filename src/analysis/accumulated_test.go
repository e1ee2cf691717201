package analysis

import (
	"testing"

	"holdings-observer/src/models"
	"holdings-observer/src/series"
)

func accumulatedStore(t *testing.T, days []models.MAccumulatedDay) *series.Store[models.MAccumulatedHolding] {
	t.Helper()
	store := series.NewStore[models.MAccumulatedHolding]()
	if err := store.Load(days); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	return store
}

// -----------------------------------------------------------------------------

func TestTopSalesLatestDay(t *testing.T) {
	store := accumulatedStore(t, []models.MAccumulatedDay{
		{Date: "2024-01-03", Holdings: []models.MAccumulatedHolding{
			{Code: "OLD", Rank: 1, SellQty: 500},
		}},
		{Date: "2024-01-04", Holdings: []models.MAccumulatedHolding{
			{Code: "GARAN", Rank: 1, SellQty: 900},
			{Code: "THYAO", Rank: 2, SellQty: 700},
			{Code: "AKBNK", Rank: 3, SellQty: 100},
		}},
	})
	analyzer := NewAccumulatedAnalyzer(store)

	top, date := analyzer.TopSales(2, "")
	if date != "2024-01-04" {
		t.Fatalf("Expected latest day 2024-01-04, got %s", date)
	}
	if len(top) != 2 || top[0].Code != "GARAN" || top[1].Code != "THYAO" {
		t.Errorf("Expected top sellers GARAN, THYAO, got %v", top)
	}
}

func TestTopSalesSpecificAndMissingDay(t *testing.T) {
	store := accumulatedStore(t, []models.MAccumulatedDay{
		{Date: "2024-01-03", Holdings: []models.MAccumulatedHolding{
			{Code: "OLD", Rank: 1, SellQty: 500},
		}},
	})
	analyzer := NewAccumulatedAnalyzer(store)

	top, date := analyzer.TopSales(10, "2024-01-03")
	if date != "2024-01-03" || len(top) != 1 || top[0].Code != "OLD" {
		t.Errorf("Expected the 2024-01-03 snapshot, got %s with %d holdings", date, len(top))
	}

	top, date = analyzer.TopSales(10, "2024-01-09")
	if top != nil || date != "" {
		t.Errorf("Expected nil result for an absent day, got %v at %s", top, date)
	}
}

func TestTopSalesZeroLimitReturnsAll(t *testing.T) {
	store := accumulatedStore(t, []models.MAccumulatedDay{
		{Date: "2024-01-03", Holdings: []models.MAccumulatedHolding{
			{Code: "A", Rank: 1, SellQty: 3},
			{Code: "B", Rank: 2, SellQty: 2},
		}},
	})
	analyzer := NewAccumulatedAnalyzer(store)

	top, _ := analyzer.TopSales(0, "")
	if len(top) != 2 {
		t.Errorf("Expected the whole day with limit 0, got %d", len(top))
	}
}

func TestAllByNet(t *testing.T) {
	store := accumulatedStore(t, []models.MAccumulatedDay{
		{Date: "2024-01-03", Holdings: []models.MAccumulatedHolding{
			{Code: "SELLER", Rank: 1, SellQty: 900, Net: -400},
			{Code: "BUYER", Rank: 2, SellQty: 100, Net: 600},
			{Code: "EVEN", Rank: 3, SellQty: 50, Net: 0},
		}},
	})
	analyzer := NewAccumulatedAnalyzer(store)

	all, date := analyzer.AllByNet("")
	if date != "2024-01-03" || len(all) != 3 {
		t.Fatalf("Expected 3 holdings for 2024-01-03, got %d at %s", len(all), date)
	}
	if all[0].Code != "BUYER" || all[1].Code != "EVEN" || all[2].Code != "SELLER" {
		t.Errorf("Expected net-descending order BUYER, EVEN, SELLER, got %s, %s, %s",
			all[0].Code, all[1].Code, all[2].Code)
	}

	// The day order inside the store must be untouched.
	day, _ := store.LatestOrFor("")
	if day.Holdings[0].Code != "SELLER" {
		t.Error("Expected AllByNet to sort a copy, not the stored day")
	}
}
