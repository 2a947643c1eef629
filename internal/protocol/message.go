// ABOUTME: Outbound UDP message type with a fixed-capacity payload
// ABOUTME: Bounds-checked construction replaces unchecked buffer appends
package protocol

import (
	"errors"
	"fmt"
	"net"
)

// MaxPayload is the datagram payload cap. Inbound datagrams larger than
// this are truncated by the receiver; outbound payloads larger than this
// are rejected at construction time.
const MaxPayload = 1024

// ErrPayloadTooLarge is returned when a payload would exceed MaxPayload.
var ErrPayloadTooLarge = errors.New("payload exceeds maximum datagram size")

// Message is a single outbound datagram: a destination and the valid
// byte range of a fixed-capacity buffer. The zero Message is empty.
type Message struct {
	Dest net.UDPAddr

	buf [MaxPayload]byte
	n   int
}

// NewMessage builds a Message for dest carrying payload. It fails with
// ErrPayloadTooLarge instead of silently truncating.
func NewMessage(dest net.UDPAddr, payload []byte) (Message, error) {
	m := Message{Dest: dest}
	if len(payload) > MaxPayload {
		return Message{}, fmt.Errorf("message to %s: %w (%d > %d bytes)",
			dest.String(), ErrPayloadTooLarge, len(payload), MaxPayload)
	}
	m.n = copy(m.buf[:], payload)
	return m, nil
}

// Payload returns the valid bytes of the message.
func (m *Message) Payload() []byte {
	return m.buf[:m.n]
}

// Len returns the number of valid payload bytes.
func (m *Message) Len() int {
	return m.n
}
