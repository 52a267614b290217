package server

import (
	"io"
	"log"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/mini-kep/series-gateway/pkg/config"
	"github.com/mini-kep/series-gateway/pkg/domains"
)

// installDomainsAutoReload watches the directory holding the domains
// file and reloads the registry after a debounce window. Watching the
// directory instead of the file survives editors that replace the file
// by rename.
func installDomainsAutoReload(cfg *config.Config, reg *domains.Registry, mu *sync.Mutex) (io.Closer, error) {
	if cfg == nil || reg == nil || mu == nil {
		return nil, nil
	}
	if !cfg.Domains.AutoReload.Enabled {
		return nil, nil
	}

	file := strings.TrimSpace(cfg.Domains.File)
	if file == "" {
		return nil, nil
	}
	debounce := time.Duration(cfg.Domains.AutoReload.DebounceMs) * time.Millisecond

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := watcher.Add(filepath.Dir(file)); err != nil {
		_ = watcher.Close()
		return nil, err
	}

	stopCh := make(chan struct{})
	doneCh := make(chan struct{})

	go func() {
		defer close(doneCh)
		var (
			timer  *time.Timer
			timerC <-chan time.Time
		)
		resetTimer := func() {
			if timer == nil {
				timer = time.NewTimer(debounce)
				timerC = timer.C
				return
			}
			if !timer.Stop() {
				select {
				case <-timer.C:
				default:
				}
			}
			timer.Reset(debounce)
			timerC = timer.C
		}
		runReload := func() {
			mu.Lock()
			err := reg.ReloadFromFile(file)
			mu.Unlock()
			if err != nil {
				log.Printf("domains reload failed (auto): %v", err)
				return
			}
			log.Printf("domains reload ok (auto): file=%q domains=%s", file, strings.Join(reg.List(), ","))
		}

		for {
			select {
			case <-stopCh:
				if timer != nil {
					timer.Stop()
				}
				return
			case <-timerC:
				timerC = nil
				runReload()
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.Printf("domains auto-reload watcher error: %v", err)
			case evt, ok := <-watcher.Events:
				if !ok {
					return
				}
				if shouldTriggerDomainsReload(evt, file) {
					resetTimer()
				}
			}
		}
	}()

	log.Printf("domains auto-reload enabled: file=%q debounce_ms=%d", file, cfg.Domains.AutoReload.DebounceMs)
	return closerFunc(func() error {
		close(stopCh)
		_ = watcher.Close()
		<-doneCh
		return nil
	}), nil
}

func shouldTriggerDomainsReload(evt fsnotify.Event, file string) bool {
	if strings.TrimSpace(evt.Name) == "" {
		return false
	}
	if evt.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
		return false
	}
	return filepath.Base(evt.Name) == filepath.Base(file)
}
