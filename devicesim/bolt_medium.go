// Package devicesim is the host-side integration-test harness for the
// otherwise out-of-scope collaborators spec.md §1 and §6 name: the raw
// non-volatile medium driver, the hardware noise source, and the
// confirmation UI. None of these are implemented by the core; devicesim
// gives tests (and cmd/walletcore-sim) a complete, runnable stand-in for
// all three, the way the teacher's node/store + cmd/rubin-node pairing
// gives its own consensus/crypto packages a runnable host.
package devicesim

import (
	"encoding/binary"
	"fmt"

	bolt "go.etcd.io/bbolt"

	"ironkey.dev/walletcore/nvstore"
)

var bucketNames = [2][]byte{
	nvstore.PartitionGlobal:   []byte("partition_global"),
	nvstore.PartitionAccounts: []byte("partition_accounts"),
}

// BoltMedium implements nvstore.Medium over a bbolt database, one bucket
// per partition, keyed by block-aligned offset -- the pack's idiomatic
// embedded-KV backing (grounded on the teacher's node/store/db.go bucket
// layout) standing in for spec.md §6's raw non-volatile medium driver.
type BoltMedium struct {
	db    *bolt.DB
	sizes [2]uint32
}

// OpenBoltMedium opens (creating if necessary) a bbolt database at path
// with the given fixed partition sizes.
func OpenBoltMedium(path string, globalSize, accountsSize uint32) (*BoltMedium, error) {
	db, err := bolt.Open(path, 0o600, nil)
	if err != nil {
		return nil, fmt.Errorf("devicesim: open bbolt: %w", err)
	}
	if err := db.Update(func(tx *bolt.Tx) error {
		for _, b := range bucketNames {
			if _, err := tx.CreateBucketIfNotExists(b); err != nil {
				return fmt.Errorf("create bucket %s: %w", string(b), err)
			}
		}
		return nil
	}); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &BoltMedium{db: db, sizes: [2]uint32{globalSize, accountsSize}}, nil
}

// Close closes the underlying bbolt database.
func (m *BoltMedium) Close() error {
	if m == nil || m.db == nil {
		return nil
	}
	return m.db.Close()
}

// PartitionSize implements nvstore.Medium.
func (m *BoltMedium) PartitionSize(p nvstore.Partition) uint32 { return m.sizes[p] }

func blockKey(offset uint32) []byte {
	var k [4]byte
	binary.BigEndian.PutUint32(k[:], offset)
	return k[:]
}

// ReadAt implements nvstore.Medium, reading one or more contiguous
// block-aligned regions. Unwritten blocks read back as all-zero, matching
// a freshly erased non-volatile medium.
func (m *BoltMedium) ReadAt(p nvstore.Partition, offset uint32, buf []byte) error {
	return m.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketNames[p])
		for i := 0; i < len(buf); i += nvstore.BlockSize {
			v := b.Get(blockKey(offset + uint32(i)))
			n := nvstore.BlockSize
			if i+n > len(buf) {
				n = len(buf) - i
			}
			if v == nil {
				continue // zero-filled: already the buf's initial state
			}
			copy(buf[i:i+n], v)
		}
		return nil
	})
}

// WriteAt implements nvstore.Medium.
func (m *BoltMedium) WriteAt(p nvstore.Partition, offset uint32, buf []byte) error {
	return m.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketNames[p])
		for i := 0; i < len(buf); i += nvstore.BlockSize {
			n := nvstore.BlockSize
			if i+n > len(buf) {
				n = len(buf) - i
			}
			block := make([]byte, nvstore.BlockSize)
			copy(block, buf[i:i+n])
			if err := b.Put(blockKey(offset+uint32(i)), block); err != nil {
				return err
			}
		}
		return nil
	})
}
