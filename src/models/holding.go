package models

// -----------------------------------------------------------------------------
// Normalized per-security daily records, one variant per dataset kind.
// All numeric fields default to 0; Rank is assigned after the merge step.
// -----------------------------------------------------------------------------

// MSettlementHolding is one security's settlement/clearing figures for one day.
// Ranked by Value (1 = largest position).
type MSettlementHolding struct {
	Code       string  `json:"code"`
	Lot        float64 `json:"lot"`
	Price      float64 `json:"price"`
	Value      float64 `json:"value"`
	PctOfValue float64 `json:"pct_of_value"`
	Total      float64 `json:"total"`
	PctTotal   float64 `json:"pct_total"`
	TotalValue float64 `json:"total_value"`
	Rank       int     `json:"rank"`
}

// -----------------------------------------------------------------------------

// MAccumulatedHolding is one security's accumulated buy/sell flow for one day.
// Ranked by SellQty (1 = most sold).
type MAccumulatedHolding struct {
	Code       string  `json:"code"`
	BuyQty     float64 `json:"buy_qty"`
	BuyAvg     float64 `json:"buy_avg"`
	SellQty    float64 `json:"sell_qty"`
	SellAvg    float64 `json:"sell_avg"`
	GrossTotal float64 `json:"gross_total"`
	Net        float64 `json:"net"`
	AvgCost    float64 `json:"avg_cost"`
	NetPct     float64 `json:"net_pct"`
	Rank       int     `json:"rank"`
}

// -----------------------------------------------------------------------------
// Holding is satisfied by both dataset variants; the time-series store is
// generic over it.
// -----------------------------------------------------------------------------

type Holding interface {
	HoldingCode() string
	HoldingRank() int
}

func (h MSettlementHolding) HoldingCode() string { return h.Code }

func (h MSettlementHolding) HoldingRank() int { return h.Rank }

func (h MAccumulatedHolding) HoldingCode() string { return h.Code }

func (h MAccumulatedHolding) HoldingRank() int { return h.Rank }
