package server

import (
	"github.com/mini-kep/series-gateway/pkg/datapoints"
	"github.com/mini-kep/series-gateway/pkg/domains"
)

// state carries the runtime pieces handlers need. The registry handles
// its own locking; the client is immutable after startup.
type state struct {
	domains  *domains.Registry
	upstream *datapoints.Client
}

func (s *state) Domains() *domains.Registry { return s.domains }

func (s *state) Upstream() *datapoints.Client { return s.upstream }
