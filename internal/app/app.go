// ABOUTME: Application wiring for the peerdisco experiment
// ABOUTME: Joins the transport and discovery loops fail-fast over one queue
package app

import (
	"context"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/harperreed/peerdisco/internal/config"
	"github.com/harperreed/peerdisco/internal/discovery"
	"github.com/harperreed/peerdisco/internal/protocol"
	"github.com/harperreed/peerdisco/internal/transport"
)

// queueSize bounds the outbound queue between discovery and transport.
// A full queue blocks discovery until the transport drains it.
const queueSize = 10

// App owns the two long-running components. The transport binds before
// discovery is built so the advertised port is the socket's real port.
type App struct {
	transport *transport.Transport
	discovery *discovery.Discovery
	logger    *log.Logger
}

// New wires an App from an already-bound transport and an mDNS daemon.
func New(cfg config.Config, daemon discovery.Daemon, tr *transport.Transport, logger *log.Logger) *App {
	return &App{
		transport: tr,
		discovery: discovery.New(cfg, daemon, tr.Port(), logger),
		logger:    logger,
	}
}

// Start binds the transport, initializes the real mDNS daemon, and
// returns the assembled App.
func Start(cfg config.Config, logger *log.Logger) (*App, error) {
	tr, err := transport.Bind(cfg.Port, logger)
	if err != nil {
		return nil, err
	}

	daemon, err := discovery.NewDaemon()
	if err != nil {
		return nil, err
	}

	return New(cfg, daemon, tr, logger), nil
}

// Run drives both loops until one fails; the first failure cancels the
// sibling and is returned. Run never returns nil.
func (a *App) Run(ctx context.Context) error {
	outbound := make(chan protocol.Message, queueSize)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return a.transport.Run(ctx, outbound) })
	g.Go(func() error { return a.discovery.Run(ctx, outbound) })

	return g.Wait()
}

// Transport exposes the bound transport, mainly for observability.
func (a *App) Transport() *transport.Transport {
	return a.transport
}
