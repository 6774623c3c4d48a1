// Package transport implements the ack-based byte-stream flow control
// spec.md §6 describes for the host<->device link: after every N received
// octets the receiver transmits 0xFF followed by a little-endian 32-bit
// credit count, and the sender must not transmit further until that ack
// arrives. The wire framing above this (command/response packets) is
// explicitly out of scope per spec.md §1; this package only implements the
// byte-at-a-time ack protocol itself.
//
// Grounded on the teacher's node/p2p/envelope.go: an explicit ReadError
// type (here it wraps only the underlying stream error, and every such
// error is terminal), and io.ReadFull for exact
// reads, adapted here from length-prefixed P2P messages to a continuous
// ack-windowed byte stream.
package transport

import (
	"encoding/binary"
	"fmt"
	"io"
)

// InitialCredit is the receive window, in octets, before the first ack is
// due, per spec.md §6.
const InitialCredit = 16

// AckByte prefixes every credit acknowledgement on the wire.
const AckByte = 0xFF

// ReadError reports a stream fault. Per spec.md §7, stream read errors are
// terminal: the caller must abandon the in-flight operation.
type ReadError struct {
	Err error
}

func (e *ReadError) Error() string {
	if e == nil || e.Err == nil {
		return ""
	}
	return fmt.Sprintf("transport: read error: %s", e.Err)
}

func (e *ReadError) Unwrap() error { return e.Err }

// Link wraps one io.ReadWriter with the ack-based credit protocol. It
// satisfies io.Reader and io.Writer so the core's stream consumers
// (txsign, a command dispatcher) never need to know about the ack
// mechanics.
type Link struct {
	rw io.ReadWriter

	// recvCredit is the number of octets the peer may still send before
	// another ack is due from us.
	recvCredit uint32
	// nextCredit is the window size granted in the next ack; spec.md §6
	// says the host may change N on subsequent acks.
	nextCredit uint32

	// sendCredit is how many more octets we may write before the peer's
	// ack must arrive.
	sendCredit uint32
}

// NewLink wraps rw, starting both directions' credit at InitialCredit.
func NewLink(rw io.ReadWriter) *Link {
	return &Link{
		rw:         rw,
		recvCredit: InitialCredit,
		nextCredit: InitialCredit,
		sendCredit: InitialCredit,
	}
}

// SetNextCredit changes the window size this Link grants in its next ack,
// per spec.md §6's "subsequently set by the acknowledgement".
func (l *Link) SetNextCredit(n uint32) { l.nextCredit = n }

// GetByte reads one octet, sending an ack once recvCredit is exhausted.
func (l *Link) GetByte() (byte, error) {
	var buf [1]byte
	if _, err := io.ReadFull(l.rw, buf[:]); err != nil {
		return 0, &ReadError{Err: err}
	}
	l.recvCredit--
	if l.recvCredit == 0 {
		if err := l.sendAck(); err != nil {
			return 0, &ReadError{Err: err}
		}
	}
	return buf[0], nil
}

// Read implements io.Reader over GetByte, for callers (e.g. txsign.Parser)
// that want a standard stream interface.
func (l *Link) Read(p []byte) (int, error) {
	for i := range p {
		b, err := l.GetByte()
		if err != nil {
			return i, err
		}
		p[i] = b
	}
	return len(p), nil
}

func (l *Link) sendAck() error {
	var frame [5]byte
	frame[0] = AckByte
	binary.LittleEndian.PutUint32(frame[1:], l.nextCredit)
	if _, err := l.rw.Write(frame[:]); err != nil {
		return err
	}
	l.recvCredit = l.nextCredit
	return nil
}

// PutByte writes one octet, blocking for a fresh ack once sendCredit is
// exhausted. The sender "must not transmit further until an ack arrives"
// (spec.md §6); WaitAck implements that block.
func (l *Link) PutByte(b byte) error {
	if l.sendCredit == 0 {
		if err := l.WaitAck(); err != nil {
			return err
		}
	}
	if _, err := l.rw.Write([]byte{b}); err != nil {
		return err
	}
	l.sendCredit--
	return nil
}

// Write implements io.Writer over PutByte.
func (l *Link) Write(p []byte) (int, error) {
	for i, b := range p {
		if err := l.PutByte(b); err != nil {
			return i, err
		}
	}
	return len(p), nil
}

// WaitAck blocks for one ack frame (0xFF followed by a little-endian u32
// credit count) and installs the credit it grants.
func (l *Link) WaitAck() error {
	var frame [5]byte
	if _, err := io.ReadFull(l.rw, frame[:1]); err != nil {
		return &ReadError{Err: err}
	}
	if frame[0] != AckByte {
		return &ReadError{Err: fmt.Errorf("expected ack byte 0x%02x, got 0x%02x", AckByte, frame[0])}
	}
	if _, err := io.ReadFull(l.rw, frame[1:]); err != nil {
		return &ReadError{Err: err}
	}
	l.sendCredit = binary.LittleEndian.Uint32(frame[1:])
	return nil
}
