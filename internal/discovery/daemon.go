// ABOUTME: Collaborator contract for the mDNS stack
// ABOUTME: Defines the service record, resolution events, and daemon interface
package discovery

import (
	"context"
	"net"
)

// EventKind discriminates resolution events from the daemon.
type EventKind int

const (
	// EventResolved reports a peer whose address and port are known.
	EventResolved EventKind = iota
	// EventExpired reports a peer whose record aged out. Ignored by the
	// event loop.
	EventExpired
)

func (k EventKind) String() string {
	switch k {
	case EventResolved:
		return "resolved"
	case EventExpired:
		return "expired"
	default:
		return "unknown"
	}
}

// Event is a single peer-resolution notification. Addrs holds the
// peer's IPv4 addresses; there may be several, or none.
type Event struct {
	Kind  EventKind
	Name  string // fully-qualified instance name
	Addrs []net.IP
	Port  int
}

// Record is the advertised identity of this peer. Built once from
// configuration and the transport's bound port, immutable afterwards.
// The advertised addresses are filled in by the daemon from the best
// local interface, not hardcoded here.
type Record struct {
	Instance string
	Service  string
	Domain   string
	Port     int
	TXT      []string
}

// FullName returns "<instance>.<service>.<domain>".
func (r Record) FullName() string {
	return r.Instance + "." + r.Service + "." + r.Domain
}

// Registration is a live service advertisement.
type Registration interface {
	// Shutdown withdraws the advertisement.
	Shutdown()
}

// Daemon is the external mDNS collaborator. It owns the entire wire
// protocol: record caching, TTL refresh, and conflict resolution.
type Daemon interface {
	// Register advertises rec. Fails on name conflict or transport error.
	Register(rec Record) (Registration, error)

	// Browse subscribes to resolution events for the given service
	// type. The returned channel closes when the subscription ends.
	Browse(ctx context.Context, service, domain string) (<-chan Event, error)
}
