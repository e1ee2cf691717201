package normalize

import (
	"strconv"
	"strings"
)

// -----------------------------------------------------------------------------
// Cell parsing. Source sheets mix dot and comma decimals and occasionally
// carry text where a number belongs; a bad cell never fails the pipeline.
// -----------------------------------------------------------------------------

// ParseFloatOrZero parses a sheet cell as float64. Empty, missing or
// non-numeric cells become 0. Comma decimals ("25,50") and dotted thousands
// ("1.234,56") are normalized before parsing.
func ParseFloatOrZero(cell string) float64 {
	s := strings.TrimSpace(cell)
	if s == "" {
		return 0
	}
	if strings.Contains(s, ",") {
		// Comma is the decimal mark; dots, if any, group thousands.
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

// -----------------------------------------------------------------------------

// isNumericSeq reports whether a sequence cell holds a number. Header rows and
// footer notes carry text here and are dropped by the row filter.
func isNumericSeq(cell string) bool {
	s := strings.TrimSpace(cell)
	if s == "" {
		return false
	}
	_, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64)
	return err == nil
}

// Header tokens that show up in the code column when a sheet's header row
// slips past the range filter.
var headerTokens = map[string]struct{}{
	"no":    {},
	"sıra":  {},
	"sira":  {},
	"senet": {},
}

func isHeaderToken(cell string) bool {
	_, ok := headerTokens[strings.ToLower(strings.TrimSpace(cell))]
	return ok
}

// keepRow applies the shared row filter: numeric sequence cell, non-empty
// code cell, and neither cell a stray header token.
func keepRow(seq, code string) bool {
	if !isNumericSeq(seq) {
		return false
	}
	c := strings.TrimSpace(code)
	if c == "" {
		return false
	}
	return !isHeaderToken(c)
}
