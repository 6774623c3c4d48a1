// Package nvstore implements the encrypted, random-access non-volatile
// storage view spec.md §4.7 (C7) describes: an AES-128-XEX tweakable block
// cipher wrapper over a flat, partitioned byte medium, with sub-block
// read-modify-write and a narrow status model instead of Go errors (the
// original firmware's calling convention spec.md §9 preserves deliberately,
// since callers across the wire need a stable, serialisable status code,
// not an error string).
package nvstore

import "ironkey.dev/walletcore/aes128"

// Partition identifies one of the two fixed areas of the non-volatile
// address space spec.md §3 defines.
type Partition int

const (
	PartitionGlobal Partition = iota
	PartitionAccounts
)

// BlockSize is the XEX block granularity; partition sizes and all
// addresses/lengths this package is asked to handle must be multiples of
// it at the partition-size level (per-call address/length need not be
// block-aligned -- that's what the sub-block read-modify-write is for).
const BlockSize = 16

// Status mirrors spec.md §4.7's narrow status model.
type Status int

const (
	NoError Status = iota
	InvalidAddress
	IoError
)

func (s Status) String() string {
	switch s {
	case NoError:
		return "NoError"
	case InvalidAddress:
		return "InvalidAddress"
	case IoError:
		return "IoError"
	default:
		return "Unknown"
	}
}

// Medium is the byte-addressable, block-erase-like non-volatile device
// spec.md §6 describes. The core does not depend on the medium's physical
// block size: correctness only requires read-after-write-and-flush.
type Medium interface {
	PartitionSize(p Partition) uint32
	ReadAt(p Partition, offset uint32, buf []byte) error
	WriteAt(p Partition, offset uint32, buf []byte) error
}

// Key is the 32-octet session encryption key: the low 16 octets are the
// AES-128 data-encryption key, the high 16 octets are the AES-128 tweak
// key XEX derives its per-block Δ from.
type Key [32]byte

func (k Key) dataKeyBytes() [16]byte {
	var out [16]byte
	copy(out[:], k[0:16])
	return out
}

func (k Key) tweakKeyBytes() [16]byte {
	var out [16]byte
	copy(out[:], k[16:32])
	return out
}

// DataKeyBytes exposes the primary AES-128 data-encryption half of k, for
// callers outside this package (walletrec's inner key-wrap) that need to
// derive a related key from the same session secret without reaching into
// k's raw bytes directly.
func (k Key) DataKeyBytes() [16]byte { return k.dataKeyBytes() }

// IsZero reports whether k is the all-zero key (spec.md's
// is_encryption_key_nonzero, inverted).
func (k Key) IsZero() bool {
	for _, b := range k {
		if b != 0 {
			return false
		}
	}
	return true
}

// Store is the encrypted storage view over one Medium, holding the
// session's mutable encryption key the way spec.md §5 ("Shared resources")
// describes: process-scope, mutable, non-reentrant, no locking.
type Store struct {
	medium Medium
	key    Key
}

// NewStore creates a Store with a zero (cleared) encryption key.
func NewStore(medium Medium) *Store {
	return &Store{medium: medium}
}

// SetEncryptionKey installs the session key used by subsequent
// EncryptedRead/EncryptedWrite calls.
func (s *Store) SetEncryptionKey(k Key) { s.key = k }

// EncryptionKey returns the currently installed session key.
func (s *Store) EncryptionKey() Key { return s.key }

// ClearEncryptionKey zeroes the session key.
func (s *Store) ClearEncryptionKey() { s.key = Key{} }

// IsEncryptionKeyNonzero reports whether a session key is installed.
func (s *Store) IsEncryptionKeyNonzero() bool { return !s.key.IsZero() }

func (s *Store) expandedKeys() (dataKey, tweakKey aes128.ExpandedKey) {
	dk := s.key.dataKeyBytes()
	tk := s.key.tweakKeyBytes()
	return aes128.ExpandKey(dk), aes128.ExpandKey(tk)
}
