// Package control implements the optional local control service: a
// small read-only TCP query endpoint announced via mDNS/DNS-SD, adapted
// from the teacher stack's own KISS-over-TCP announcement.
package control

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"net"

	"github.com/brutella/dnssd"

	"github.com/mlang/fmrds/registry"
)

// ServiceType is the DNS-SD service type this daemon announces itself
// under, mirroring the teacher stack's own "_kiss-tnc._tcp" convention.
const ServiceType = "_fmrds-ctl._tcp"

// StationSummary is the JSON shape returned to a control-service query:
// current tuning state plus the most recently seen stations.
type StationSummary struct {
	CurrentFrequency float64              `json:"current_frequency"`
	CurrentName      string               `json:"current_name,omitempty"`
	CurrentPTY       int                  `json:"current_pty"`
	RecentStations   []registry.ProgramData `json:"recent_stations"`
}

// QuerySource supplies the live data a query response is built from.
type QuerySource func() StationSummary

// Serve listens on addr and answers every connection with one JSON
// StationSummary line before closing it, until ctx is cancelled.
func Serve(ctx context.Context, addr string, source QuerySource) error {
	lc := net.ListenConfig{}
	ln, err := lc.Listen(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("control: listen %s: %w", addr, err)
	}
	return serveLoop(ctx, ln, source)
}

// serveLoop runs the accept loop against an already-open listener; split
// out from Serve so tests can exercise it against a listener bound
// without a context (net.ListenConfig requires one).
func serveLoop(ctx context.Context, ln net.Listener, source QuerySource) error {
	go func() {
		<-ctx.Done()
		ln.Close()
	}()

	for {
		conn, err := ln.Accept()
		if err != nil {
			select {
			case <-ctx.Done():
				return nil
			default:
				return fmt.Errorf("control: accept: %w", err)
			}
		}
		go respond(conn, source())
	}
}

func respond(conn net.Conn, summary StationSummary) {
	defer conn.Close()
	w := bufio.NewWriter(conn)
	defer w.Flush()
	enc := json.NewEncoder(w)
	enc.Encode(summary)
}

// Announce publishes the control service under ServiceType via
// mDNS/DNS-SD, matching the teacher stack's dns_sd_announce pattern. It
// logs via the returned error and is a no-op responder goroutine that
// runs until ctx is cancelled.
func Announce(ctx context.Context, name string, port int) error {
	cfg := dnssd.Config{
		Name: name,
		Type: ServiceType,
		Port: port,
	}

	sv, err := dnssd.NewService(cfg)
	if err != nil {
		return fmt.Errorf("control: dnssd.NewService: %w", err)
	}

	rp, err := dnssd.NewResponder()
	if err != nil {
		return fmt.Errorf("control: dnssd.NewResponder: %w", err)
	}

	if _, err := rp.Add(sv); err != nil {
		return fmt.Errorf("control: adding service to responder: %w", err)
	}

	go func() {
		if err := rp.Respond(ctx); err != nil && ctx.Err() == nil {
			_ = err // responder errors after a clean cancellation are expected
		}
	}()

	return nil
}
