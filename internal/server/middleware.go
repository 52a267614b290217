package server

import (
	"log"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mini-kep/series-gateway/internal/logx"
	"github.com/mini-kep/series-gateway/pkg/requestid"
)

type contextFieldSpec struct {
	ctxKey string
	logKey string
}

var accessLogContextFieldSpecs = []contextFieldSpec{
	{ctxKey: "sgw.domain", logKey: "domain"},
	{ctxKey: "sgw.varname", logKey: "varname"},
	{ctxKey: "sgw.freq", logKey: "freq"},
	{ctxKey: "sgw.unit", logKey: "unit"},
	{ctxKey: "sgw.rate", logKey: "rate"},
	{ctxKey: "sgw.agg", logKey: "agg"},
	{ctxKey: "sgw.fin", logKey: "fin"},
	{ctxKey: "sgw.start_date", logKey: "start_date"},
	{ctxKey: "sgw.end_date", logKey: "end_date"},
	{ctxKey: "sgw.upstream_status", logKey: "upstream_status"},
	{ctxKey: "sgw.points", logKey: "points"},
}

func requestIDMiddleware(headerKey string) gin.HandlerFunc {
	headerKey = requestid.ResolveHeaderKey(headerKey)
	return func(c *gin.Context) {
		id := strings.TrimSpace(c.GetHeader(headerKey))
		if id == "" {
			id = requestid.Gen()
		}
		c.Header(headerKey, id)
		c.Set(headerKey, id)
		c.Next()
	}
}

func requestLoggerWithColor(l *log.Logger, color bool, requestIDHeaderKey string, accessFormatter *logx.AccessLogFormatter) gin.HandlerFunc {
	requestIDHeaderKey = requestid.ResolveHeaderKey(requestIDHeaderKey)
	if l == nil {
		l = log.New(os.Stdout, "", log.LstdFlags)
	}
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		latency := time.Since(start)
		fields := collectAccessLogFields(c, requestIDHeaderKey)

		ts := time.Now()
		if accessFormatter != nil {
			l.Println(accessFormatter.Format(ts, status, latency, c.ClientIP(), c.Request.Method, c.Request.URL.Path, fields, color))
			return
		}
		l.Println(logx.FormatRequestLineWithColor(ts, status, latency, c.ClientIP(), c.Request.Method, c.Request.URL.Path, fields, color))
	}
}

func collectAccessLogFields(c *gin.Context, requestIDHeaderKey string) map[string]any {
	out := make(map[string]any, len(accessLogContextFieldSpecs)+2)
	if v := strings.TrimSpace(c.GetString(requestIDHeaderKey)); v != "" {
		out["request_id"] = v
	}
	for _, s := range accessLogContextFieldSpecs {
		if v, ok := c.Get(s.ctxKey); ok {
			out[s.logKey] = v
		}
	}
	return out
}
