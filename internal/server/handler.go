package server

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mini-kep/series-gateway/internal/render"
	"github.com/mini-kep/series-gateway/pkg/pathquery"
	"github.com/mini-kep/series-gateway/pkg/transform"
)

// makeSeriesHandler decomposes the routed path, checks the domain,
// fetches the series from the data store, applies the rate/agg suffix
// and renders per the finaliser. Decomposition either fully succeeds
// or the request fails with 400; there are no partial results.
func makeSeriesHandler(st *state) gin.HandlerFunc {
	return func(c *gin.Context) {
		q, err := pathquery.FromSegments(
			c.Param("domain"),
			c.Param("varname"),
			c.Param("freq"),
			c.Param("inner"),
		)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		setQueryLogFields(c, q)

		if !st.Domains().Allowed(q.Domain) {
			c.JSON(http.StatusNotFound, gin.H{"error": "unknown domain: " + q.Domain})
			return
		}

		points, err := st.Upstream().Fetch(c.Request.Context(), q.LookupParams())
		if err != nil {
			c.Set("sgw.upstream_status", "error")
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
			return
		}
		c.Set("sgw.upstream_status", strconv.Itoa(http.StatusOK))

		points, err = transform.Apply(q, points)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.Set("sgw.points", len(points))

		contentType, body, err := render.Body(q, points)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.Data(http.StatusOK, contentType, body)
	}
}

func setQueryLogFields(c *gin.Context, q pathquery.PathQuery) {
	c.Set("sgw.domain", q.Domain)
	c.Set("sgw.varname", q.VarName)
	c.Set("sgw.freq", q.Freq)
	c.Set("sgw.fin", q.Fin)
	if q.Unit != "" {
		c.Set("sgw.unit", q.Unit)
	}
	if q.Rate != "" {
		c.Set("sgw.rate", q.Rate)
	}
	if q.Agg != "" {
		c.Set("sgw.agg", q.Agg)
	}
	if q.StartDate != "" {
		c.Set("sgw.start_date", q.StartDate)
	}
	if q.EndDate != "" {
		c.Set("sgw.end_date", q.EndDate)
	}
}
