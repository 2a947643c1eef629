// ABOUTME: Bounds-checked writer over a fixed-capacity datagram buffer
// ABOUTME: Formats the self-announcing payload sent to resolved peers
package protocol

import (
	"fmt"
	"net"
)

// Builder accumulates payload bytes into a fixed-capacity buffer. It
// implements io.Writer and fails with ErrPayloadTooLarge on overflow
// rather than writing past the end.
type Builder struct {
	buf [MaxPayload]byte
	n   int
}

// Write appends p to the buffer. A write that would overflow returns
// ErrPayloadTooLarge and leaves the buffer unchanged.
func (b *Builder) Write(p []byte) (int, error) {
	if b.n+len(p) > MaxPayload {
		return 0, fmt.Errorf("%w (%d + %d > %d bytes)",
			ErrPayloadTooLarge, b.n, len(p), MaxPayload)
	}
	b.n += copy(b.buf[b.n:], p)
	return len(p), nil
}

// Len returns the number of bytes written so far.
func (b *Builder) Len() int {
	return b.n
}

// Message seals the accumulated bytes into a Message for dest.
func (b *Builder) Message(dest net.UDPAddr) Message {
	m := Message{Dest: dest, n: b.n}
	copy(m.buf[:], b.buf[:b.n])
	return m
}

// Announce builds the self-announcing message sent to a freshly
// resolved peer: "MESSAGE <instance> Resolved <peer-fullname> END".
func Announce(instance, peerFullName string, dest net.UDPAddr) (Message, error) {
	var b Builder
	if _, err := fmt.Fprintf(&b, "MESSAGE %s Resolved %s END", instance, peerFullName); err != nil {
		return Message{}, fmt.Errorf("building announcement for %s: %w", dest.String(), err)
	}
	return b.Message(dest), nil
}
