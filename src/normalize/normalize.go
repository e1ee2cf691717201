package normalize

import (
	"sort"

	"holdings-observer/src/identity"
	"holdings-observer/src/models"
)

// -----------------------------------------------------------------------------
// Snapshot normalization: filter raw rows, resolve identities, merge rows that
// land on the same canonical code, rank the result.
//
// Merging must run over raw rows exactly once per day: sums are not idempotent
// when re-applied to already-merged output.
// -----------------------------------------------------------------------------

// NormalizeSettlement builds one settlement day from raw sheet rows.
// Holdings come back sorted by Value descending with Rank = index+1.
// Empty or fully filtered input yields a day with no holdings.
func NormalizeSettlement(rows []models.MSettlementRow, date string) models.MSettlementDay {
	merged := make(map[string]*models.MSettlementHolding)
	var order []string

	for _, r := range rows {
		if !keepRow(r.Seq, r.Code) {
			continue
		}
		h := models.MSettlementHolding{
			Code:       identity.Resolve(r.Code),
			Lot:        ParseFloatOrZero(r.Lot),
			Price:      ParseFloatOrZero(r.Price),
			Value:      ParseFloatOrZero(r.Value),
			PctOfValue: ParseFloatOrZero(r.PctOfValue),
			Total:      ParseFloatOrZero(r.Total),
			PctTotal:   ParseFloatOrZero(r.PctTotal),
			TotalValue: ParseFloatOrZero(r.TotalValue),
		}
		if cur, ok := merged[h.Code]; ok {
			mergeSettlement(cur, h)
		} else {
			cp := h
			merged[h.Code] = &cp
			order = append(order, h.Code)
		}
	}

	holdings := make([]models.MSettlementHolding, 0, len(order))
	for _, code := range order {
		holdings = append(holdings, *merged[code])
	}

	// Stable: ties keep input order.
	sort.SliceStable(holdings, func(i, j int) bool {
		return holdings[i].Value > holdings[j].Value
	})
	for i := range holdings {
		holdings[i].Rank = i + 1
	}

	return models.MSettlementDay{Date: date, Holdings: holdings}
}

// -----------------------------------------------------------------------------

// mergeSettlement folds src into dst. Weights for the price average are
// snapshotted before any sum is folded; using the running Value total here
// would double-count dst's earlier members.
func mergeSettlement(dst *models.MSettlementHolding, src models.MSettlementHolding) {
	wDst, wSrc := dst.Value, src.Value

	dst.Lot += src.Lot
	dst.Value += src.Value
	dst.PctOfValue += src.PctOfValue
	dst.Total += src.Total
	dst.PctTotal += src.PctTotal
	dst.TotalValue += src.TotalValue

	if wDst+wSrc > 0 {
		dst.Price = (dst.Price*wDst + src.Price*wSrc) / (wDst + wSrc)
	}
	// Zero combined weight: keep dst's price unchanged.
}

// -----------------------------------------------------------------------------

// NormalizeAccumulated builds one accumulated-holdings day from raw sheet
// rows. Holdings come back sorted by SellQty descending with Rank = index+1.
func NormalizeAccumulated(rows []models.MAccumulatedRow, date string) models.MAccumulatedDay {
	merged := make(map[string]*models.MAccumulatedHolding)
	var order []string

	for _, r := range rows {
		if !keepRow(r.Seq, r.Code) {
			continue
		}
		h := models.MAccumulatedHolding{
			Code:       identity.Resolve(r.Code),
			BuyQty:     ParseFloatOrZero(r.BuyQty),
			BuyAvg:     ParseFloatOrZero(r.BuyAvg),
			SellQty:    ParseFloatOrZero(r.SellQty),
			SellAvg:    ParseFloatOrZero(r.SellAvg),
			GrossTotal: ParseFloatOrZero(r.GrossTotal),
			Net:        ParseFloatOrZero(r.Net),
			AvgCost:    ParseFloatOrZero(r.AvgCost),
			NetPct:     ParseFloatOrZero(r.NetPct),
		}
		if cur, ok := merged[h.Code]; ok {
			mergeAccumulated(cur, h)
		} else {
			cp := h
			merged[h.Code] = &cp
			order = append(order, h.Code)
		}
	}

	holdings := make([]models.MAccumulatedHolding, 0, len(order))
	for _, code := range order {
		holdings = append(holdings, *merged[code])
	}

	sort.SliceStable(holdings, func(i, j int) bool {
		return holdings[i].SellQty > holdings[j].SellQty
	})
	for i := range holdings {
		holdings[i].Rank = i + 1
	}

	return models.MAccumulatedDay{Date: date, Holdings: holdings}
}

// -----------------------------------------------------------------------------

// mergeAccumulated folds src into dst. Each average keeps its own pre-merge
// weight pair: buy average by buy quantity, sell average by sell quantity,
// average cost by gross total.
func mergeAccumulated(dst *models.MAccumulatedHolding, src models.MAccumulatedHolding) {
	wBuyDst, wBuySrc := dst.BuyQty, src.BuyQty
	wSellDst, wSellSrc := dst.SellQty, src.SellQty
	wGrossDst, wGrossSrc := dst.GrossTotal, src.GrossTotal

	dst.BuyQty += src.BuyQty
	dst.SellQty += src.SellQty
	dst.GrossTotal += src.GrossTotal
	dst.Net += src.Net
	dst.NetPct += src.NetPct

	if wBuyDst+wBuySrc > 0 {
		dst.BuyAvg = (dst.BuyAvg*wBuyDst + src.BuyAvg*wBuySrc) / (wBuyDst + wBuySrc)
	}
	if wSellDst+wSellSrc > 0 {
		dst.SellAvg = (dst.SellAvg*wSellDst + src.SellAvg*wSellSrc) / (wSellDst + wSellSrc)
	}
	if wGrossDst+wGrossSrc > 0 {
		dst.AvgCost = (dst.AvgCost*wGrossDst + src.AvgCost*wGrossSrc) / (wGrossDst + wGrossSrc)
	}
}
