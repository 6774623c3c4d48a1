package txsign

import (
	"encoding/binary"
	"io"

	"ironkey.dev/walletcore/hashcore"
)

// cursor is the checkpointing reader spec.md §4.8 describes: every byte
// pulled from the underlying stream feeds the sig-hash accumulator, while
// the transaction-hash accumulator receives every byte except those inside
// an input's script (toggled via suppressTx around that one read).
type cursor struct {
	r          io.Reader
	remaining  int
	sigState   hashcore.State
	txState    hashcore.State
	suppressTx bool
}

func newCursor(r io.Reader, declaredLength int) *cursor {
	return &cursor{
		r:         r,
		remaining: declaredLength,
		sigState:  hashcore.NewSHA256(),
		txState:   hashcore.NewSHA256(),
	}
}

// readN reads exactly n bytes. A genuine I/O fault maps to ReadError, which
// spec.md §4.8 says supersedes every other error; running past the
// declared length or hitting EOF mid-read is InvalidFormat truncation.
func (c *cursor) readN(n int) ([]byte, error) {
	if n > c.remaining {
		return nil, txerr(InvalidFormat, "read past declared transaction length")
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(c.r, buf); err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return nil, txerr(InvalidFormat, "unexpected end of transaction stream")
		}
		return nil, txerr(ReadError, err.Error())
	}
	c.remaining -= n
	c.sigState.Write(buf)
	if !c.suppressTx {
		c.txState.Write(buf)
	}
	return buf, nil
}

// readVarBytes reads n octets where n itself came from an attacker-supplied
// varint, bounding it against the still-remaining declared length before
// the uint64-to-int conversion so an oversized n is rejected rather than
// wrapping to a negative length.
func (c *cursor) readVarBytes(n uint64) ([]byte, error) {
	if n > uint64(c.remaining) {
		return nil, txerr(InvalidFormat, "length exceeds remaining transaction bytes")
	}
	return c.readN(int(n))
}

func (c *cursor) readByte() (byte, error) {
	b, err := c.readN(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (c *cursor) readU32LE() (uint32, error) {
	b, err := c.readN(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

func (c *cursor) readU64LE() (uint64, error) {
	b, err := c.readN(8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b), nil
}

// readVarint reads a Bitcoin CompactSize integer, rejecting non-minimal
// encodings as InvalidFormat -- the same tag scheme as a one-shot
// in-memory CompactSize reader, adapted to pull from the streaming cursor.
func (c *cursor) readVarint() (uint64, error) {
	tag, err := c.readByte()
	if err != nil {
		return 0, err
	}
	switch {
	case tag < 0xfd:
		return uint64(tag), nil
	case tag == 0xfd:
		b, err := c.readN(2)
		if err != nil {
			return 0, err
		}
		v := binary.LittleEndian.Uint16(b)
		if v < 0xfd {
			return 0, txerr(InvalidFormat, "non-minimal varint (0xfd)")
		}
		return uint64(v), nil
	case tag == 0xfe:
		v, err := c.readU32LE()
		if err != nil {
			return 0, err
		}
		if v <= 0xffff {
			return 0, txerr(InvalidFormat, "non-minimal varint (0xfe)")
		}
		return uint64(v), nil
	default: // 0xff
		v, err := c.readU64LE()
		if err != nil {
			return 0, err
		}
		if v <= 0xffffffff {
			return 0, txerr(InvalidFormat, "non-minimal varint (0xff)")
		}
		return v, nil
	}
}

func (c *cursor) finished() bool { return c.remaining == 0 }

// sigHash finalises the sig-hash accumulator: double-SHA-256 of every byte
// the cursor has read.
func (c *cursor) sigHash() [32]byte {
	first := c.sigState.Sum(nil)
	return hashcore.Sum256(first)
}

// txHash finalises the transaction-hash accumulator: double-SHA-256 of
// every byte except input scripts, matching the ordinary Bitcoin txid
// construction (spec.md only says "finalise"; this package follows the
// standard double-hash convention, consistent with the sig-hash side).
func (c *cursor) txHash() [32]byte {
	first := c.txState.Sum(nil)
	return hashcore.Sum256(first)
}
