package models

// -----------------------------------------------------------------------------
// Raw spreadsheet rows, one variant per dataset kind. Cells are carried as the
// untrimmed strings read from the sheet; any cell may be empty or non-numeric.
// The normalizer owns all parsing and defaulting.
// -----------------------------------------------------------------------------

// MSettlementRow mirrors the settlement sheet column order:
// No, Senet, Lot, Fiyat, TL, YuzdeTL, Toplam, Yuzde, ToplamTL.
type MSettlementRow struct {
	Seq        string
	Code       string
	Lot        string
	Price      string
	Value      string
	PctOfValue string
	Total      string
	PctTotal   string
	TotalValue string
}

// -----------------------------------------------------------------------------

// MAccumulatedRow mirrors the accumulated sheet column order:
// No, Senet, AlisMiktar, AlisOrtalama, SatisMiktar, SatisOrtalama,
// Toplam, Net, Maliyet, NetYuzde.
type MAccumulatedRow struct {
	Seq        string
	Code       string
	BuyQty     string
	BuyAvg     string
	SellQty    string
	SellAvg    string
	GrossTotal string
	Net        string
	AvgCost    string
	NetPct     string
}
