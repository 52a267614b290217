package server

import (
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/mini-kep/series-gateway/internal/logx"
	"github.com/mini-kep/series-gateway/pkg/config"
	"github.com/mini-kep/series-gateway/pkg/datapoints"
	"github.com/mini-kep/series-gateway/pkg/domains"
	"github.com/mini-kep/series-gateway/pkg/requestid"
)

func Run(cfgPath string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	accessLogger, accessClose, accessColor, err := openAccessLogger(cfg)
	if err != nil {
		return fmt.Errorf("init access log: %w", err)
	}
	if accessClose != nil {
		defer func() { _ = accessClose.Close() }()
	}

	pidCleanup, err := writePIDFile(cfg)
	if err != nil {
		return fmt.Errorf("write pid file: %w", err)
	}
	if pidCleanup != nil {
		defer func() { _ = pidCleanup.Close() }()
	}

	reg := domains.NewRegistry()
	if err := reg.ReloadFromFile(cfg.Domains.File); err != nil {
		return fmt.Errorf("load domains file %q: %w", cfg.Domains.File, err)
	}
	log.Printf("domains loaded: file=%q domains=%s", cfg.Domains.File, strings.Join(reg.List(), ","))

	st := &state{
		domains: reg,
		upstream: &datapoints.Client{
			BaseURL: cfg.Upstream.BaseURL,
			HTTP: &http.Client{
				Timeout: time.Duration(cfg.Upstream.TimeoutMs) * time.Millisecond,
			},
		},
	}

	reloadMu := &sync.Mutex{}
	installReloadSignalHandler(cfg, reg, reloadMu)
	autoReloadClose, err := installDomainsAutoReload(cfg, reg, reloadMu)
	if err != nil {
		return fmt.Errorf("init domains auto reload: %w", err)
	}
	if autoReloadClose != nil {
		defer func() { _ = autoReloadClose.Close() }()
	}

	accessFormat, err := logx.ResolveAccessLogFormat(cfg.Logging.AccessLogFormat, cfg.Logging.AccessLogFormatPreset)
	if err != nil {
		return fmt.Errorf("resolve access log format: %w", err)
	}
	accessFormatter, err := logx.CompileAccessLogFormat(accessFormat)
	if err != nil {
		return fmt.Errorf("compile access_log_format: %w", err)
	}
	engine := NewRouter(cfg, st, accessLogger, accessColor, requestid.DefaultHeaderKey, accessFormatter)
	srv := newHTTPServer(cfg, engine)

	log.Printf("series-gateway listening on %s (upstream %s)", cfg.Server.Listen, cfg.Upstream.BaseURL)
	if err := srv.ListenAndServe(); err != nil {
		return fmt.Errorf("run: %w", err)
	}
	return nil
}

func newHTTPServer(cfg *config.Config, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:         cfg.Server.Listen,
		Handler:      handler,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeoutMs) * time.Millisecond,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeoutMs) * time.Millisecond,
	}
}

func openAccessLogger(cfg *config.Config) (*log.Logger, io.Closer, bool, error) {
	if cfg == nil || !cfg.Logging.AccessLog {
		return nil, nil, false, nil
	}

	path := strings.TrimSpace(cfg.Logging.AccessLogPath)
	if path == "" {
		// default: stdout, colored when attached to a terminal
		return log.New(os.Stdout, "", log.LstdFlags), nil, logx.ColorEnabled(), nil
	}

	dir := filepath.Dir(path)
	if strings.TrimSpace(dir) != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, nil, false, err
		}
	}
	// #nosec G304 -- access_log_path comes from trusted config/env.
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, nil, false, err
	}
	return log.New(f, "", log.LstdFlags), f, false, nil
}

type closerFunc func() error

func (c closerFunc) Close() error { return c() }

func writePIDFile(cfg *config.Config) (io.Closer, error) {
	if cfg == nil {
		return nil, nil
	}
	path := strings.TrimSpace(cfg.Server.PidFile)
	if path == "" {
		return nil, nil
	}
	dir := filepath.Dir(path)
	if strings.TrimSpace(dir) != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, err
		}
	}

	tmp := path + ".tmp"
	pid := strconv.Itoa(os.Getpid()) + "\n"
	// #nosec G304 -- pid_file comes from trusted config/env.
	if err := os.WriteFile(tmp, []byte(pid), 0o600); err != nil {
		return nil, err
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return nil, err
	}
	return closerFunc(func() error { return os.Remove(path) }), nil
}

func installReloadSignalHandler(cfg *config.Config, reg *domains.Registry, mu *sync.Mutex) {
	if cfg == nil || reg == nil || mu == nil {
		return
	}
	ch := make(chan os.Signal, 2)
	signal.Notify(ch, syscall.SIGHUP)
	go func() {
		for range ch {
			mu.Lock()
			err := reg.ReloadFromFile(cfg.Domains.File)
			mu.Unlock()
			if err != nil {
				log.Printf("domains reload failed (signal): %v", err)
				continue
			}
			log.Printf("domains reload ok (signal): file=%q domains=%s", cfg.Domains.File, strings.Join(reg.List(), ","))
		}
	}()
}
