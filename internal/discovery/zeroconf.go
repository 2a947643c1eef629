// ABOUTME: Production Daemon backed by grandcat/zeroconf
// ABOUTME: Adapts zeroconf service entries into resolution events
package discovery

import (
	"context"
	"fmt"

	"github.com/grandcat/zeroconf"
)

// zeroconfDaemon implements Daemon on top of the zeroconf library.
type zeroconfDaemon struct {
	resolver *zeroconf.Resolver
}

// NewDaemon initializes the mDNS stack. Fails if the platform's
// multicast sockets cannot be opened.
func NewDaemon() (Daemon, error) {
	resolver, err := zeroconf.NewResolver(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize mDNS resolver: %w", err)
	}
	return &zeroconfDaemon{resolver: resolver}, nil
}

func (d *zeroconfDaemon) Register(rec Record) (Registration, error) {
	// nil interfaces lets the library pick addresses from every usable
	// interface, the addr-auto behavior the record relies on.
	server, err := zeroconf.Register(rec.Instance, rec.Service, rec.Domain, rec.Port, rec.TXT, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to register %s: %w", rec.FullName(), err)
	}
	return server, nil
}

func (d *zeroconfDaemon) Browse(ctx context.Context, service, domain string) (<-chan Event, error) {
	entries := make(chan *zeroconf.ServiceEntry, 10)
	if err := d.resolver.Browse(ctx, service, domain, entries); err != nil {
		return nil, fmt.Errorf("failed to browse for %s.%s: %w", service, domain, err)
	}

	// The library closes entries when the subscription ends; mirror
	// that on the events channel.
	events := make(chan Event)
	go func() {
		defer close(events)
		for entry := range entries {
			ev := Event{
				Kind:  EventResolved,
				Name:  entry.ServiceInstanceName(),
				Addrs: entry.AddrIPv4,
				Port:  entry.Port,
			}
			if entry.TTL == 0 {
				ev.Kind = EventExpired
			}
			select {
			case events <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	return events, nil
}
