package pathquery

import (
	"errors"
	"testing"
)

func TestDecompose_FullInnerPath(t *testing.T) {
	q, err := Decompose("api/oil/series/BRENT/m/eop/2015/2017/csv")
	if err != nil {
		t.Fatalf("Decompose: %v", err)
	}
	if q.Domain != "oil" || q.VarName != "BRENT" || q.Freq != "m" {
		t.Fatalf("fixed part: %+v", q)
	}
	if q.Agg != "eop" || q.Rate != "" {
		t.Fatalf("agg=%q rate=%q", q.Agg, q.Rate)
	}
	if q.Fin != "csv" {
		t.Fatalf("fin=%q", q.Fin)
	}
	if q.StartDate != "2015-01-01" || q.EndDate != "2017-12-31" {
		t.Fatalf("dates: start=%q end=%q", q.StartDate, q.EndDate)
	}
	if q.Unit != "" {
		t.Fatalf("unit=%q", q.Unit)
	}
}

func TestDecompose_UnitOnly(t *testing.T) {
	q, err := Decompose("api/ru/series/EXPORT_GOODS/m/bln_rub")
	if err != nil {
		t.Fatalf("Decompose: %v", err)
	}
	if q.Unit != "bln_rub" {
		t.Fatalf("unit=%q", q.Unit)
	}
	if q.Rate != "" || q.Agg != "" || q.StartDate != "" || q.EndDate != "" {
		t.Fatalf("expected empty modifiers: %+v", q)
	}
	if q.Fin != DefaultFin {
		t.Fatalf("fin default=%q", q.Fin)
	}
}

func TestDecompose_FinaliserOnly(t *testing.T) {
	q, err := Decompose("api/ru/series/USDRUR_CB/d/xlsx")
	if err != nil {
		t.Fatalf("Decompose: %v", err)
	}
	if q.Fin != "xlsx" {
		t.Fatalf("fin=%q", q.Fin)
	}
	if q.Unit != "" || q.StartDate != "" || q.EndDate != "" {
		t.Fatalf("expected no unit/dates: %+v", q)
	}
}

func TestDecompose_LeadingSlashAndBlanks(t *testing.T) {
	q, err := Decompose("/api/ru/series/CPI/ m /2016/")
	if err != nil {
		t.Fatalf("Decompose: %v", err)
	}
	if q.Freq != "m" || q.StartDate != "2016-01-01" || q.EndDate != "" {
		t.Fatalf("got %+v", q)
	}
}

func TestDecompose_FinAliases(t *testing.T) {
	for _, alias := range []string{"list", "pandas", "json"} {
		q, err := Decompose("api/ru/series/CPI/m/" + alias)
		if err != nil {
			t.Fatalf("alias %q: %v", alias, err)
		}
		if q.Fin != "json" {
			t.Fatalf("alias %q fin=%q", alias, q.Fin)
		}
	}
}

func TestDecompose_UnitFallsBackToRate(t *testing.T) {
	q, err := Decompose("api/ru/series/CPI/m/rog")
	if err != nil {
		t.Fatalf("Decompose: %v", err)
	}
	if q.Rate != "rog" || q.Unit != "rog" {
		t.Fatalf("rate=%q unit=%q", q.Rate, q.Unit)
	}
	if got := q.LookupParams().Get("name"); got != "CPI_rog" {
		t.Fatalf("lookup name=%q", got)
	}
}

func TestDecompose_Errors(t *testing.T) {
	cases := []struct {
		path string
		want error
	}{
		{"api/oil/series/BRENT/z/", ErrInvalidFrequency},
		{"api/oil/series/BRENT/q/rog/eop", ErrConflictingSuffix},
		{"api/oil/series/BRENT/q/rog/yoy", ErrAmbiguousSuffix},
		{"api/oil/series/BRENT/q/csv/json", ErrAmbiguousSuffix},
		{"api/oil/series/BRENT", ErrMissingToken},
		{"api/oil/points/BRENT/m", ErrMissingToken},
		{"data/oil/series/BRENT/m", ErrMissingToken},
		{"api/oil/series/BRENT/m/2000/2005/2010", ErrTooManyYears},
		{"api/oil/series/BRENT/m/usd/eur", ErrTrailingTokens},
	}
	for _, tc := range cases {
		_, err := Decompose(tc.path)
		if !errors.Is(err, tc.want) {
			t.Fatalf("path %q: err=%v want %v", tc.path, err, tc.want)
		}
	}
}

func TestDecompose_RateAggExclusiveInvariant(t *testing.T) {
	paths := []string{
		"api/oil/series/BRENT/m/eop/2015/2017/csv",
		"api/ru/series/EXPORT_GOODS/m/bln_rub",
		"api/ru/series/USDRUR_CB/d/xlsx",
		"api/ru/series/CPI/m/yoy",
		"api/ru/series/CPI/a/avg/2000/info",
	}
	for _, p := range paths {
		q, err := Decompose(p)
		if err != nil {
			t.Fatalf("path %q: %v", p, err)
		}
		if q.Rate != "" && q.Agg != "" {
			t.Fatalf("path %q: rate=%q and agg=%q both set", p, q.Rate, q.Agg)
		}
	}
}

func TestFromSegments(t *testing.T) {
	q, err := FromSegments("oil", "BRENT", "m", "eop/2015/2017/csv")
	if err != nil {
		t.Fatalf("FromSegments: %v", err)
	}
	raw, err := Decompose("api/oil/series/BRENT/m/eop/2015/2017/csv")
	if err != nil {
		t.Fatalf("Decompose: %v", err)
	}
	if q != raw {
		t.Fatalf("segment and raw variants differ: %+v vs %+v", q, raw)
	}

	if _, err := FromSegments("", "BRENT", "m", ""); !errors.Is(err, ErrMissingToken) {
		t.Fatalf("empty domain err=%v", err)
	}
	if _, err := FromSegments("oil", "BRENT", "mm", ""); !errors.Is(err, ErrInvalidFrequency) {
		t.Fatalf("bad freq err=%v", err)
	}
}

func TestLookupParams(t *testing.T) {
	q, err := Decompose("api/oil/series/BRENT/m/eop/2015/2017/csv")
	if err != nil {
		t.Fatalf("Decompose: %v", err)
	}
	params := q.LookupParams()
	if got := params.Get("name"); got != "BRENT" {
		t.Fatalf("name=%q", got)
	}
	if got := params.Get("freq"); got != "m" {
		t.Fatalf("freq=%q", got)
	}
	if got := params.Get("start_date"); got != "2015-01-01" {
		t.Fatalf("start_date=%q", got)
	}
	if got := params.Get("end_date"); got != "2017-12-31" {
		t.Fatalf("end_date=%q", got)
	}

	q, err = Decompose("api/ru/series/EXPORT_GOODS/m/bln_rub")
	if err != nil {
		t.Fatalf("Decompose: %v", err)
	}
	params = q.LookupParams()
	if got := params.Get("name"); got != "EXPORT_GOODS_bln_rub" {
		t.Fatalf("name=%q", got)
	}
	if params.Has("start_date") || params.Has("end_date") {
		t.Fatalf("unexpected date params: %v", params)
	}
}

func TestCanonicalPath_Idempotent(t *testing.T) {
	paths := []string{
		"api/oil/series/BRENT/m/eop/2015/2017/csv",
		"api/ru/series/EXPORT_GOODS/m/bln_rub",
		"api/ru/series/USDRUR_CB/d/xlsx",
		"api/ru/series/CPI/m/rog/2010",
		"api/ru/series/CPI/m/2017/csv/bln_rub/2014/yoy",
	}
	for _, p := range paths {
		q, err := Decompose(p)
		if err != nil {
			t.Fatalf("path %q: %v", p, err)
		}
		again, err := Decompose(q.CanonicalPath())
		if err != nil {
			t.Fatalf("canonical %q: %v", q.CanonicalPath(), err)
		}
		if q != again {
			t.Fatalf("not idempotent: %+v vs %+v (canonical %q)", q, again, q.CanonicalPath())
		}
	}
}
