package server

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mini-kep/series-gateway/internal/logx"
	"github.com/mini-kep/series-gateway/pkg/config"
	"github.com/mini-kep/series-gateway/pkg/pathquery"
	"github.com/mini-kep/series-gateway/pkg/requestid"
)

func NewRouter(
	cfg *config.Config,
	st *state,
	accessLogger *log.Logger,
	accessLoggerColor bool,
	requestIDHeaderKey string,
	accessFormatter *logx.AccessLogFormatter,
) *gin.Engine {
	resolvedRequestIDHeaderKey := requestid.ResolveHeaderKey(requestIDHeaderKey)
	r := gin.New()
	r.Use(requestIDMiddleware(resolvedRequestIDHeaderKey))
	if cfg.Logging.AccessLog {
		r.Use(requestLoggerWithColor(accessLogger, accessLoggerColor, resolvedRequestIDHeaderKey, accessFormatter))
	}
	r.Use(gin.Recovery())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	r.GET("/admin/domains", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"domains": st.Domains().List(),
		})
	})
	r.GET("/admin/vocab", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"domains":     st.Domains().List(),
			"frequencies": pathquery.Frequencies(),
			"rates":       pathquery.Rates(),
			"aggregators": pathquery.Aggregators(),
			"finalisers":  pathquery.Finalisers(),
		})
	})

	// The wildcard swallows everything after freq; the handler splits
	// it back into the inner-path token bag.
	r.GET("/api/:domain/series/:varname/:freq/*inner", makeSeriesHandler(st))

	return r
}
