// ABOUTME: Tests for bounded message construction
// ABOUTME: Covers the payload capacity invariant and overflow failures
package protocol

import (
	"bytes"
	"errors"
	"net"
	"strings"
	"testing"
)

var testDest = net.UDPAddr{IP: net.IPv4(192, 168, 1, 20), Port: 8090}

func TestNewMessage(t *testing.T) {
	payload := []byte("hello peer")
	msg, err := NewMessage(testDest, payload)
	if err != nil {
		t.Fatalf("NewMessage: %v", err)
	}
	if !bytes.Equal(msg.Payload(), payload) {
		t.Errorf("payload = %q, want %q", msg.Payload(), payload)
	}
	if msg.Len() != len(payload) {
		t.Errorf("len = %d, want %d", msg.Len(), len(payload))
	}
	if msg.Dest.String() != "192.168.1.20:8090" {
		t.Errorf("dest = %s", msg.Dest.String())
	}
}

func TestNewMessageAtCapacity(t *testing.T) {
	payload := bytes.Repeat([]byte{'x'}, MaxPayload)
	msg, err := NewMessage(testDest, payload)
	if err != nil {
		t.Fatalf("NewMessage at exactly %d bytes: %v", MaxPayload, err)
	}
	if msg.Len() != MaxPayload {
		t.Errorf("len = %d, want %d", msg.Len(), MaxPayload)
	}
}

func TestNewMessageOverCapacity(t *testing.T) {
	payload := bytes.Repeat([]byte{'x'}, MaxPayload+1)
	_, err := NewMessage(testDest, payload)
	if !errors.Is(err, ErrPayloadTooLarge) {
		t.Fatalf("expected ErrPayloadTooLarge, got %v", err)
	}
}

func TestBuilderOverflow(t *testing.T) {
	var b Builder
	if _, err := b.Write(bytes.Repeat([]byte{'a'}, MaxPayload)); err != nil {
		t.Fatalf("fill to capacity: %v", err)
	}
	if _, err := b.Write([]byte{'b'}); !errors.Is(err, ErrPayloadTooLarge) {
		t.Fatalf("expected ErrPayloadTooLarge, got %v", err)
	}
	// A failed write must not corrupt what was already written.
	if b.Len() != MaxPayload {
		t.Errorf("len after failed write = %d, want %d", b.Len(), MaxPayload)
	}
}

func TestBuilderMessage(t *testing.T) {
	var b Builder
	b.Write([]byte("part one "))
	b.Write([]byte("part two"))
	msg := b.Message(testDest)
	if got := string(msg.Payload()); got != "part one part two" {
		t.Errorf("payload = %q", got)
	}
}

func TestAnnounce(t *testing.T) {
	msg, err := Announce("kitchen", "den._example._udp.local.", testDest)
	if err != nil {
		t.Fatalf("Announce: %v", err)
	}
	want := "MESSAGE kitchen Resolved den._example._udp.local. END"
	if got := string(msg.Payload()); got != want {
		t.Errorf("payload = %q, want %q", got, want)
	}
}

func TestAnnounceOversizedName(t *testing.T) {
	longName := strings.Repeat("n", MaxPayload)
	_, err := Announce("kitchen", longName, testDest)
	if !errors.Is(err, ErrPayloadTooLarge) {
		t.Fatalf("expected ErrPayloadTooLarge, got %v", err)
	}
}
