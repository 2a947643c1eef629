// ABOUTME: UDP transport owning the peer socket
// ABOUTME: Runs concurrent send/receive loops joined fail-fast
package transport

import (
	"context"
	"errors"
	"fmt"
	"net"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/harperreed/peerdisco/internal/protocol"
)

// ErrQueueClosed is returned by Run when the outbound queue's sending
// side goes away.
var ErrQueueClosed = errors.New("outbound queue closed")

// Handler observes inbound datagrams. The payload slice is only valid
// for the duration of the call.
type Handler func(src *net.UDPAddr, payload []byte)

// Transport owns the UDP socket shared by the send and receive loops.
// The two loops use independent directions of the same socket and never
// mutate it concurrently.
type Transport struct {
	conn    *net.UDPConn
	logger  *log.Logger
	handler Handler
}

// Bind selects a local private IPv4 address and binds a UDP socket on
// it. Port 0 asks the OS for an ephemeral port.
func Bind(port int, logger *log.Logger) (*Transport, error) {
	ip, err := localIPv4()
	if err != nil {
		return nil, err
	}

	conn, err := net.ListenUDP("udp4", &net.UDPAddr{IP: ip, Port: port})
	if err != nil {
		return nil, fmt.Errorf("failed to bind UDP socket on %s: %w", ip, err)
	}

	logger.Info("transport bound", "addr", conn.LocalAddr().String())
	return New(conn, logger), nil
}

// New wraps an already-bound socket. Tests use this with a loopback
// socket instead of the interface-selection policy in Bind.
func New(conn *net.UDPConn, logger *log.Logger) *Transport {
	return &Transport{conn: conn, logger: logger}
}

// SetHandler installs an inbound-datagram observer. Must be called
// before Run.
func (t *Transport) SetHandler(h Handler) {
	t.handler = h
}

// Port returns the locally bound UDP port.
func (t *Transport) Port() int {
	return t.conn.LocalAddr().(*net.UDPAddr).Port
}

// LocalAddr returns the locally bound address.
func (t *Transport) LocalAddr() *net.UDPAddr {
	return t.conn.LocalAddr().(*net.UDPAddr)
}

// Run drives the send and receive loops until one fails. The first
// error cancels the sibling loop and is returned. Run never returns nil.
func (t *Transport) Run(ctx context.Context, outbound <-chan protocol.Message) error {
	g, ctx := errgroup.WithContext(ctx)

	// Closing the socket is the only way to unwind a blocked read.
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			t.conn.Close()
		case <-done:
		}
	}()

	g.Go(func() error { return t.sendLoop(ctx, outbound) })
	g.Go(func() error { return t.recvLoop(ctx) })

	return g.Wait()
}

// sendLoop drains the outbound queue and writes each message to its
// destination.
func (t *Transport) sendLoop(ctx context.Context, outbound <-chan protocol.Message) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-outbound:
			if !ok {
				return ErrQueueClosed
			}
			if _, err := t.conn.WriteToUDP(msg.Payload(), &msg.Dest); err != nil {
				return fmt.Errorf("failed to send to %s: %w", msg.Dest.String(), err)
			}
			t.logger.Debug("sent datagram", "to", msg.Dest.String(), "bytes", msg.Len())
		}
	}
}

// recvLoop reads datagrams into a fixed buffer and logs them.
// Datagrams larger than protocol.MaxPayload are silently truncated.
func (t *Transport) recvLoop(ctx context.Context) error {
	buf := make([]byte, protocol.MaxPayload)
	for {
		n, src, err := t.conn.ReadFromUDP(buf)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return fmt.Errorf("failed to receive: %w", err)
		}

		t.logger.Info("received datagram", "from", src.String(), "payload", string(buf[:n]))
		if t.handler != nil {
			t.handler(src, buf[:n])
		}
	}
}
