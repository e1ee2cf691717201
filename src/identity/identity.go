package identity

import "strings"

// -----------------------------------------------------------------------------
// Security identity resolution. A small closed set of securities changed
// ticker after restructuring; rows reported under the legacy code belong to
// the same identity as rows under the current one and must merge with them.
// -----------------------------------------------------------------------------

// legacy ticker -> current canonical ticker
var aliases = map[string]string{
	"KOZAL": "TRALT",
	"KOZAA": "TRMET",
	"IPEKE": "TRENJ",
}

// Resolve trims and upper-cases code and maps legacy tickers to their current
// canonical form. Unknown codes pass through unchanged.
func Resolve(code string) string {
	upper := strings.ToUpper(strings.TrimSpace(code))
	if canonical, ok := aliases[upper]; ok {
		return canonical
	}
	return upper
}

// -----------------------------------------------------------------------------
// Delisted symbols are kept out of every serving-layer response. They still
// ingest normally so historical series stay intact.
// -----------------------------------------------------------------------------

var delisted = map[string]struct{}{
	"APMDLF": {},
	"GLDTRF": {},
	"GMSTRF": {},
	"OPT25F": {},
	"OPTGYF": {},
	"QTEMZF": {},
	"USDTRF": {},
	"Z30KEF": {},
	"Z30KPF": {},
	"ZGOLDF": {},
	"ZPLIBF": {},
	"ZPT10F": {},
	"ZPX30F": {},
	"ZRE20F": {},
	"ZTM25F": {},
}

// IsDelisted reports whether code is on the delisted board.
func IsDelisted(code string) bool {
	_, ok := delisted[strings.ToUpper(strings.TrimSpace(code))]
	return ok
}

// FilterDelistedCodes returns codes with delisted symbols removed, preserving
// order.
func FilterDelistedCodes(codes []string) []string {
	kept := make([]string, 0, len(codes))
	for _, c := range codes {
		if !IsDelisted(c) {
			kept = append(kept, c)
		}
	}
	return kept
}
