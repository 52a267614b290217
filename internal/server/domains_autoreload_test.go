package server

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/mini-kep/series-gateway/pkg/config"
	"github.com/mini-kep/series-gateway/pkg/domains"
)

func TestShouldTriggerDomainsReload(t *testing.T) {
	const file = "/etc/seriesgw/domains.yaml"

	t.Run("empty name", func(t *testing.T) {
		if shouldTriggerDomainsReload(fsnotify.Event{Name: "", Op: fsnotify.Write}, file) {
			t.Fatalf("expected false for empty event name")
		}
	})

	t.Run("unsupported op", func(t *testing.T) {
		if shouldTriggerDomainsReload(fsnotify.Event{Name: file, Op: 0}, file) {
			t.Fatalf("expected false for unsupported op")
		}
	})

	t.Run("other file in dir", func(t *testing.T) {
		if shouldTriggerDomainsReload(fsnotify.Event{Name: "/etc/seriesgw/other.yaml", Op: fsnotify.Write}, file) {
			t.Fatalf("expected false for unrelated file")
		}
	})

	t.Run("write", func(t *testing.T) {
		if !shouldTriggerDomainsReload(fsnotify.Event{Name: file, Op: fsnotify.Write}, file) {
			t.Fatalf("expected true for write")
		}
	})

	t.Run("rename-replace", func(t *testing.T) {
		if !shouldTriggerDomainsReload(fsnotify.Event{Name: file, Op: fsnotify.Rename}, file) {
			t.Fatalf("expected true for rename")
		}
	})
}

func TestInstallDomainsAutoReload_ReloadsAfterWrite(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "domains.yaml")
	if err := os.WriteFile(file, []byte("domains:\n  - ru\n"), 0o600); err != nil {
		t.Fatalf("seed domains file: %v", err)
	}

	cfg, err := config.Load("/nonexistent/seriesgw.yaml")
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	cfg.Domains.File = file
	cfg.Domains.AutoReload.Enabled = true
	cfg.Domains.AutoReload.DebounceMs = 50

	reg := domains.NewRegistry()
	if err := reg.ReloadFromFile(file); err != nil {
		t.Fatalf("initial reload: %v", err)
	}

	closer, err := installDomainsAutoReload(cfg, reg, &sync.Mutex{})
	if err != nil {
		t.Fatalf("install: %v", err)
	}
	if closer == nil {
		t.Fatalf("expected a closer for enabled auto reload")
	}
	defer func() { _ = closer.Close() }()

	if err := os.WriteFile(file, []byte("domains:\n  - ru\n  - gas\n"), 0o600); err != nil {
		t.Fatalf("rewrite domains file: %v", err)
	}

	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if reg.Allowed("gas") {
			return
		}
		time.Sleep(20 * time.Millisecond)
	}
	t.Fatalf("registry never picked up the new domain, have %v", reg.List())
}

func TestInstallDomainsAutoReload_DisabledReturnsNil(t *testing.T) {
	cfg, err := config.Load("/nonexistent/seriesgw.yaml")
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	cfg.Domains.AutoReload.Enabled = false

	closer, err := installDomainsAutoReload(cfg, domains.NewRegistry(), &sync.Mutex{})
	if err != nil {
		t.Fatalf("install: %v", err)
	}
	if closer != nil {
		t.Fatalf("expected nil closer when auto reload is disabled")
	}
}
