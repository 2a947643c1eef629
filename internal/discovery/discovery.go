// ABOUTME: Discovery loop advertising this peer and reacting to resolutions
// ABOUTME: Turns each resolved peer address into a queued announcement
package discovery

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/harperreed/peerdisco/internal/config"
	"github.com/harperreed/peerdisco/internal/protocol"
	"github.com/harperreed/peerdisco/internal/version"
)

// eventPacing is the delay observed after each event before awaiting
// the next one. A simple debounce, not a correctness requirement.
const eventPacing = 500 * time.Millisecond

// ErrStreamClosed is returned by Run when the daemon's event
// subscription ends.
var ErrStreamClosed = errors.New("resolution event stream closed")

// Discovery advertises this peer and consumes resolution events.
type Discovery struct {
	cfg    config.Config
	daemon Daemon
	port   int
	logger *log.Logger
}

// New creates a Discovery advertising on the transport's bound port.
func New(cfg config.Config, daemon Daemon, port int, logger *log.Logger) *Discovery {
	return &Discovery{cfg: cfg, daemon: daemon, port: port, logger: logger}
}

// record builds the advertised identity once: configured properties
// plus a generated peer-id and the build version.
func (d *Discovery) record() Record {
	txt := append(d.cfg.TXT(),
		"peer-id="+uuid.New().String(),
		"ver="+version.Version,
	)
	return Record{
		Instance: d.cfg.Instance,
		Service:  d.cfg.Service,
		Domain:   d.cfg.Domain,
		Port:     d.port,
		TXT:      txt,
	}
}

// Run registers the service record, browses for peers of the same
// service type, and enqueues one announcement per resolved peer
// address. It returns on registration failure, stream closure, or
// context cancellation, never nil.
func (d *Discovery) Run(ctx context.Context, outbound chan<- protocol.Message) error {
	rec := d.record()
	d.logger.Info("registering service", "fullname", rec.FullName(), "port", rec.Port)

	reg, err := d.daemon.Register(rec)
	if err != nil {
		return err
	}
	defer reg.Shutdown()

	events, err := d.daemon.Browse(ctx, d.cfg.Service, d.cfg.Domain)
	if err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				return ErrStreamClosed
			}
			if err := d.handle(ctx, ev, outbound); err != nil {
				return err
			}
		}

		// Pace the loop before awaiting the next event.
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(eventPacing):
		}
	}
}

// handle turns one resolved event into one queued message per IPv4
// address. Other event kinds are deliberately ignored.
func (d *Discovery) handle(ctx context.Context, ev Event, outbound chan<- protocol.Message) error {
	if ev.Kind != EventResolved {
		d.logger.Debug("ignoring event", "kind", ev.Kind.String(), "peer", ev.Name)
		return nil
	}

	d.logger.Info("peer resolved", "peer", ev.Name, "addrs", len(ev.Addrs), "port", ev.Port)

	for _, ip := range ev.Addrs {
		dest := net.UDPAddr{IP: ip, Port: ev.Port}
		msg, err := protocol.Announce(d.cfg.Instance, ev.Name, dest)
		if err != nil {
			return fmt.Errorf("failed to build announcement for %s: %w", ev.Name, err)
		}

		// Blocks when the queue is full, throttling discovery until
		// the transport catches up.
		select {
		case outbound <- msg:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}
