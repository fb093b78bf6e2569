// Package session carries the explicit, non-global state a run of the
// daemon needs: the station registry, the tuner handle, and the
// configuration that shaped both. It replaces the process-global
// variables the original C program kept (frequencyDivider,
// minFrequency/currentFrequency/maxFrequency, the static station table).
package session

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/mlang/fmrds/config"
	"github.com/mlang/fmrds/registry"
	"github.com/mlang/fmrds/tuner"
)

// Session is constructed once at startup and threaded through the RDS
// decoder and the input loop. It is owned by the RDS goroutine; the
// audio regime never touches it directly (see the concurrency note in
// the resample package).
type Session struct {
	Config   config.Config
	Registry *registry.Registry
	Tuner    tuner.Controller
	Log      *log.Logger
}

// New wires a Session around an already-opened tuner backend.
func New(cfg config.Config, t tuner.Controller, logger *log.Logger) *Session {
	return &Session{
		Config:   cfg,
		Registry: registry.New(),
		Tuner:    t,
		Log:      logger,
	}
}

// Close releases the tuner handle. The registry holds no OS resources.
func (s *Session) Close() error {
	if err := s.Tuner.Close(); err != nil {
		return fmt.Errorf("session: closing tuner: %w", err)
	}
	return nil
}

// Summary renders the most recently discovered stations (by first
// appearance in the registry) for the control service's query response,
// newest last.
func (s *Session) Summary(maxStations int) []registry.ProgramData {
	stations := s.Registry.Stations()
	if len(stations) > maxStations {
		stations = stations[len(stations)-maxStations:]
	}
	out := make([]registry.ProgramData, len(stations))
	for i, p := range stations {
		out[i] = *p
	}
	return out
}
