// Package pathquery decomposes slash-delimited time-series query paths
// like "api/oil/series/BRENT/m/eop/2015/2017/csv" into a structured
// parameter set for a data-store lookup.
//
// The first five segments are positional: the literal "api", the
// domain, the literal "series", the series name and the frequency.
// Everything after them is an unordered token bag from which year
// bounds, a rate or aggregation suffix, an output finaliser and a
// free-form unit are claimed by vocabulary membership. The claim order
// (years, finaliser, rate, aggregator, leftover-as-unit) is part of the
// contract and must not change.
package pathquery

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// PathQuery is the decoded form of one series query path. Dates are
// ISO "YYYY-MM-DD" strings; optional fields are empty when the path
// does not set them.
type PathQuery struct {
	Domain  string
	VarName string
	Freq    string

	// Unit is a free-form measurement-unit suffix. When the inner path
	// carries no leftover token but names a rate, Unit equals Rate and
	// the rate token doubles as the lookup-name suffix.
	Unit string

	Rate string
	Agg  string
	Fin  string

	StartDate string
	EndDate   string
}

// Decompose parses a raw path beginning with the literal "api" prefix.
// It fails with one of the package sentinel errors when the path
// violates the grammar; there are no partial results.
func Decompose(path string) (PathQuery, error) {
	tokens := splitTokens(path)
	if len(tokens) < 5 {
		return PathQuery{}, fmt.Errorf("%w: want api/{domain}/series/{varname}/{freq}, got %q", ErrMissingToken, path)
	}
	if tokens[0] != "api" {
		return PathQuery{}, fmt.Errorf("%w: path must begin with \"api\", got %q", ErrMissingToken, tokens[0])
	}
	if tokens[2] != "series" {
		return PathQuery{}, fmt.Errorf("%w: expected literal \"series\" at position 2, got %q", ErrMissingToken, tokens[2])
	}
	return build(tokens[1], tokens[3], tokens[4], tokens[5:])
}

// FromSegments is the already-routed variant of Decompose: the HTTP
// router supplies domain, varname and freq as split parameters and the
// remaining inner path as one string (any order, slash separated).
func FromSegments(domain, varname, freq, inner string) (PathQuery, error) {
	domain = strings.TrimSpace(domain)
	varname = strings.TrimSpace(varname)
	if domain == "" || varname == "" {
		return PathQuery{}, fmt.Errorf("%w: domain and varname are required", ErrMissingToken)
	}
	return build(domain, varname, strings.TrimSpace(freq), splitTokens(inner))
}

func build(domain, varname, freq string, inner []string) (PathQuery, error) {
	if _, ok := allowedFrequencies[freq]; !ok {
		return PathQuery{}, fmt.Errorf("%w: %q is not one of d/w/m/q/a", ErrInvalidFrequency, freq)
	}
	q := PathQuery{
		Domain:  domain,
		VarName: varname,
		Freq:    freq,
	}
	if err := q.claimInner(inner); err != nil {
		return PathQuery{}, err
	}
	return q, nil
}

// claimInner walks the inner-path token bag in the contractual order,
// removing each claimed token so later steps never re-match it.
func (q *PathQuery) claimInner(tokens []string) error {
	bag := append([]string(nil), tokens...)

	var err error
	if bag, err = q.claimYears(bag); err != nil {
		return err
	}

	fin, bag, err := claimVocab(bag, allowedFinalisers)
	if err != nil {
		return err
	}
	q.Rate, bag, err = claimVocab(bag, allowedRates)
	if err != nil {
		return err
	}
	q.Agg, bag, err = claimVocab(bag, allowedAggregators)
	if err != nil {
		return err
	}
	if q.Rate != "" && q.Agg != "" {
		return fmt.Errorf("%w: got rate=%q agg=%q", ErrConflictingSuffix, q.Rate, q.Agg)
	}

	switch len(bag) {
	case 0:
		// Historical quirk, kept for compatibility: with nothing left in
		// the bag the rate token doubles as the unit suffix.
		q.Unit = q.Rate
	case 1:
		q.Unit = bag[0]
	default:
		return fmt.Errorf("%w: %s", ErrTrailingTokens, strings.Join(bag, ", "))
	}

	q.Fin = normalizeFin(fin)
	if q.Fin == "" {
		q.Fin = DefaultFin
	}
	return nil
}

// claimYears takes the first integer token as the start year and the
// second as the end year. A third integer is a grammar violation.
func (q *PathQuery) claimYears(bag []string) ([]string, error) {
	var years []string
	rest := bag[:0:0]
	for _, tok := range bag {
		if isInteger(tok) && len(years) < 2 {
			years = append(years, tok)
			continue
		}
		if isInteger(tok) {
			return nil, fmt.Errorf("%w: at most two calendar years allowed", ErrTooManyYears)
		}
		rest = append(rest, tok)
	}
	if len(years) >= 1 {
		d, err := yearDate(years[0], time.January, 1)
		if err != nil {
			return nil, err
		}
		q.StartDate = d
	}
	if len(years) == 2 {
		d, err := yearDate(years[1], time.December, 31)
		if err != nil {
			return nil, err
		}
		q.EndDate = d
	}
	return rest, nil
}

// claimVocab finds entries of vocab in the bag. Zero matches is fine,
// one match is claimed and removed, more than one is ambiguous. The
// scan iterates the vocabulary, so a token repeated in the path is
// claimed once and the duplicate falls through to the unit slot.
func claimVocab(bag []string, vocab []string) (string, []string, error) {
	var found []string
	for _, v := range vocab {
		for _, tok := range bag {
			if tok == v {
				found = append(found, v)
				break
			}
		}
	}
	switch len(found) {
	case 0:
		return "", bag, nil
	case 1:
		return found[0], removeFirst(bag, found[0]), nil
	default:
		return "", nil, fmt.Errorf("%w: %s", ErrAmbiguousSuffix, strings.Join(found, ", "))
	}
}

// LookupParams builds the query parameters for the data-store
// datapoints call: name (unit-suffixed when a unit is present), freq
// and the optional date bounds.
func (q PathQuery) LookupParams() url.Values {
	name := q.VarName
	if q.Unit != "" {
		name = name + "_" + q.Unit
	}
	params := url.Values{}
	params.Set("name", name)
	params.Set("freq", q.Freq)
	if q.StartDate != "" {
		params.Set("start_date", q.StartDate)
	}
	if q.EndDate != "" {
		params.Set("end_date", q.EndDate)
	}
	return params
}

// CanonicalPath reconstructs the query as a normalized path. Feeding
// the result back through Decompose yields an equal PathQuery.
func (q PathQuery) CanonicalPath() string {
	segs := []string{"api", q.Domain, "series", q.VarName, q.Freq}
	if q.Unit != "" && q.Unit != q.Rate {
		segs = append(segs, q.Unit)
	}
	if q.Rate != "" {
		segs = append(segs, q.Rate)
	} else if q.Agg != "" {
		segs = append(segs, q.Agg)
	}
	if q.StartDate != "" {
		segs = append(segs, q.StartDate[:4])
	}
	if q.EndDate != "" {
		segs = append(segs, q.EndDate[:4])
	}
	if q.Fin != "" {
		segs = append(segs, q.Fin)
	}
	return strings.Join(segs, "/")
}

func splitTokens(path string) []string {
	parts := strings.Split(path, "/")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}

func isInteger(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func yearDate(year string, month time.Month, day int) (string, error) {
	y, err := strconv.Atoi(year)
	if err != nil || y < 1 || y > 9999 {
		return "", fmt.Errorf("invalid calendar year %q", year)
	}
	return time.Date(y, month, day, 0, 0, 0, 0, time.UTC).Format("2006-01-02"), nil
}

func removeFirst(bag []string, tok string) []string {
	out := make([]string, 0, len(bag))
	removed := false
	for _, t := range bag {
		if !removed && t == tok {
			removed = true
			continue
		}
		out = append(out, t)
	}
	return out
}
