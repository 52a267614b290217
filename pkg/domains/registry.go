// Package domains holds the allowed-domain set for series queries. The
// set is open and extensible: it is loaded from a yaml file and can be
// swapped at runtime (SIGHUP or file-watch reload).
package domains

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// Builtin is the domain set used when no domains file exists.
var Builtin = []string{"ru", "oil", "all"}

type domainsFile struct {
	Domains []string `yaml:"domains"`
}

// Registry answers "is this domain allowed" under concurrent reloads.
type Registry struct {
	mu  sync.RWMutex
	set map[string]struct{}
}

// NewRegistry returns a registry seeded with the built-in domains.
func NewRegistry() *Registry {
	r := &Registry{}
	r.replace(Builtin)
	return r
}

// ReloadFromFile replaces the domain set with the file contents. A
// missing file resets to the built-in set; a present but empty or
// malformed file is an error and leaves the current set untouched.
func (r *Registry) ReloadFromFile(path string) error {
	path = strings.TrimSpace(path)
	if path == "" {
		r.replace(Builtin)
		return nil
	}
	// #nosec G304 -- domains file path comes from trusted config/env.
	b, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		r.replace(Builtin)
		return nil
	}
	if err != nil {
		return fmt.Errorf("read domains file %q: %w", path, err)
	}
	var f domainsFile
	if err := yaml.Unmarshal(b, &f); err != nil {
		return fmt.Errorf("parse domains file %q: %w", path, err)
	}
	names := make([]string, 0, len(f.Domains))
	for _, d := range f.Domains {
		if v := strings.ToLower(strings.TrimSpace(d)); v != "" {
			names = append(names, v)
		}
	}
	if len(names) == 0 {
		return fmt.Errorf("domains file %q lists no domains", path)
	}
	r.replace(names)
	return nil
}

// Allowed reports whether domain is in the current set.
func (r *Registry) Allowed(domain string) bool {
	d := strings.ToLower(strings.TrimSpace(domain))
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.set[d]
	return ok
}

// List returns the current domains, sorted.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.set))
	for d := range r.set {
		out = append(out, d)
	}
	sort.Strings(out)
	return out
}

func (r *Registry) replace(names []string) {
	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		set[n] = struct{}{}
	}
	r.mu.Lock()
	r.set = set
	r.mu.Unlock()
}
