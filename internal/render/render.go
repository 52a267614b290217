// Package render serializes a fetched series in the format named by
// the query finaliser.
package render

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/mini-kep/series-gateway/pkg/datapoints"
	"github.com/mini-kep/series-gateway/pkg/pathquery"
)

const (
	ContentTypeJSON = "application/json; charset=utf-8"
	ContentTypeCSV  = "text/csv; charset=utf-8"
	// Legacy Excel content type: the xlsx finaliser ships tab-separated
	// values, which Excel opens directly.
	ContentTypeExcel = "application/vnd.ms-excel"
)

// queryInfo is the response body of the "info" finaliser.
type queryInfo struct {
	Query struct {
		Domain    string `json:"domain"`
		VarName   string `json:"varname"`
		Freq      string `json:"freq"`
		Unit      string `json:"unit,omitempty"`
		Rate      string `json:"rate,omitempty"`
		Agg       string `json:"agg,omitempty"`
		Fin       string `json:"fin"`
		StartDate string `json:"start_date,omitempty"`
		EndDate   string `json:"end_date,omitempty"`
	} `json:"query"`
	CanonicalPath string            `json:"canonical_path"`
	LookupParams  map[string]string `json:"lookup_params"`
	Points        int               `json:"points"`
	FirstDate     string            `json:"first_date,omitempty"`
	LastDate      string            `json:"last_date,omitempty"`
}

// Body serializes points per the query finaliser and returns the
// content type alongside the encoded body.
func Body(q pathquery.PathQuery, points []datapoints.Datapoint) (string, []byte, error) {
	switch q.Fin {
	case "json":
		b, err := json.Marshal(points)
		return ContentTypeJSON, b, err
	case "csv":
		b, err := tabular(points, ',')
		return ContentTypeCSV, b, err
	case "xlsx":
		b, err := tabular(points, '\t')
		return ContentTypeExcel, b, err
	case "info":
		b, err := info(q, points)
		return ContentTypeJSON, b, err
	default:
		return "", nil, fmt.Errorf("unknown finaliser %q", q.Fin)
	}
}

func tabular(points []datapoints.Datapoint, sep rune) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	w.Comma = sep
	if err := w.Write([]string{"date", "value"}); err != nil {
		return nil, err
	}
	for _, p := range points {
		if err := w.Write([]string{p.Date, strconv.FormatFloat(p.Value, 'f', -1, 64)}); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

func info(q pathquery.PathQuery, points []datapoints.Datapoint) ([]byte, error) {
	var out queryInfo
	out.Query.Domain = q.Domain
	out.Query.VarName = q.VarName
	out.Query.Freq = q.Freq
	out.Query.Unit = q.Unit
	out.Query.Rate = q.Rate
	out.Query.Agg = q.Agg
	out.Query.Fin = q.Fin
	out.Query.StartDate = q.StartDate
	out.Query.EndDate = q.EndDate
	out.CanonicalPath = q.CanonicalPath()

	out.LookupParams = map[string]string{}
	for k, vals := range q.LookupParams() {
		out.LookupParams[k] = strings.Join(vals, ",")
	}
	out.Points = len(points)
	if len(points) > 0 {
		out.FirstDate = points[0].Date
		out.LastDate = points[len(points)-1].Date
	}
	return json.Marshal(out)
}
