package ingest

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"

	"holdings-observer/src/identity"
	"holdings-observer/src/normalize"
)

// -----------------------------------------------------------------------------
// Closing-price book, loaded from a CSV export (symbol, price, date). Used as
// a fallback for the cross-dataset price join when the settlement store has
// no row for a code on a given date.
// -----------------------------------------------------------------------------

// BIST50 is the index universe the price export covers.
var BIST50 = []string{
	"AEFES", "AKBNK", "ALARK", "ARCLK", "ASELS", "ASTOR", "BIMAS", "BRSAN",
	"CCOLA", "CIMSA", "DOAS", "DOHOL", "DSTKF", "EKGYO", "ENKAI", "EREGL",
	"FROTO", "GARAN", "GUBRF", "HALKB", "HEKTS", "ISCTR", "KCHOL", "KONTR",
	"KOZAA", "KOZAL", "KRDMD", "KUYAS", "MAVI", "MGROS", "MIATK", "OYAKC",
	"PETKM", "PGSUS", "SAHOL", "SASA", "SISE", "SOKM", "TAVHL", "TCELL",
	"THYAO", "TKFEN", "TOASO", "TSKB", "TTKOM", "TUPRS", "ULKER", "VAKBN",
	"VESTL", "YKBNK",
}

var bist50Set = func() map[string]struct{} {
	set := make(map[string]struct{}, len(BIST50))
	for _, sym := range BIST50 {
		// Resolve so legacy index members land on their canonical code.
		set[identity.Resolve(sym)] = struct{}{}
	}
	return set
}()

// -----------------------------------------------------------------------------

// PriceBook indexes closing prices by canonical code and calendar date.
type PriceBook struct {
	prices map[string]map[string]float64 // code -> date -> price
}

// -----------------------------------------------------------------------------

// LoadPriceBook reads the CSV export. Expected columns: symbol, price, date
// (YYYY-MM-DD); prices may carry quoted comma decimals. Symbols outside the
// BIST50 universe are ignored, values are rounded to 2 decimals.
func LoadPriceBook(path string) (*PriceBook, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open prices file '%s': %w", path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse prices file '%s': %w", path, err)
	}

	book := &PriceBook{prices: make(map[string]map[string]float64)}
	for i, record := range records {
		if i == 0 || len(record) < 3 {
			// Header or short row.
			continue
		}
		code := identity.Resolve(record[0])
		date := record[2]
		if code == "" || date == "" {
			continue
		}
		if _, ok := bist50Set[code]; !ok {
			continue
		}
		price := normalize.ParseFloatOrZero(record[1])
		if book.prices[code] == nil {
			book.prices[code] = make(map[string]float64)
		}
		book.prices[code][date] = math.Round(price*100) / 100
	}
	return book, nil
}

// -----------------------------------------------------------------------------

// Lookup returns the closing price for (code, date).
func (b *PriceBook) Lookup(code, date string) (float64, bool) {
	if byDate, ok := b.prices[identity.Resolve(code)]; ok {
		price, ok := byDate[date]
		return price, ok
	}
	return 0, false
}

// -----------------------------------------------------------------------------

// Len returns the number of (code, date) entries loaded.
func (b *PriceBook) Len() int {
	n := 0
	for _, byDate := range b.prices {
		n += len(byDate)
	}
	return n
}
