package server

import (
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mini-kep/series-gateway/pkg/config"
)

func TestNewHTTPServer_WiresConfiguredTimeouts(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cfg, err := config.Load("/nonexistent/seriesgw.yaml")
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	cfg.Server.Listen = ":7061"
	cfg.Server.ReadTimeoutMs = 1500
	cfg.Server.WriteTimeoutMs = 2500

	srv := newHTTPServer(cfg, gin.New())
	if srv.Addr != ":7061" {
		t.Fatalf("addr=%q", srv.Addr)
	}
	if srv.ReadTimeout != 1500*time.Millisecond {
		t.Fatalf("read timeout=%v", srv.ReadTimeout)
	}
	if srv.WriteTimeout != 2500*time.Millisecond {
		t.Fatalf("write timeout=%v", srv.WriteTimeout)
	}
	if srv.Handler == nil {
		t.Fatalf("handler must be set")
	}
}
