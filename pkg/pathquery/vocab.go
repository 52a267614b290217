package pathquery

import "strings"

// Fixed vocabularies for inner-path classification. Order matters for
// rate/agg/finaliser matching: tokens are claimed by iterating the
// vocabulary, so keep these lists stable.
var (
	allowedFrequencies = map[string]struct{}{
		"d": {},
		"w": {},
		"m": {},
		"q": {},
		"a": {},
	}

	allowedRates = []string{"rog", "yoy", "base"}

	allowedAggregators = []string{"eop", "avg"}

	allowedFinalisers = []string{"info", "csv", "json", "pandas", "list", "xlsx"}
)

// DefaultFin is the output format used when the path names none.
const DefaultFin = "json"

// Frequencies returns the allowed frequency tokens.
func Frequencies() []string {
	return []string{"d", "w", "m", "q", "a"}
}

// Rates returns the allowed rate-suffix tokens.
func Rates() []string {
	return append([]string(nil), allowedRates...)
}

// Aggregators returns the allowed aggregation-suffix tokens.
func Aggregators() []string {
	return append([]string(nil), allowedAggregators...)
}

// Finalisers returns the allowed output-format tokens.
func Finalisers() []string {
	return append([]string(nil), allowedFinalisers...)
}

// normalizeFin folds historical finaliser aliases into their canonical
// form. "pandas" and "list" predate the json finaliser and mean the
// same thing.
func normalizeFin(fin string) string {
	switch strings.TrimSpace(fin) {
	case "pandas", "list":
		return "json"
	default:
		return strings.TrimSpace(fin)
	}
}
