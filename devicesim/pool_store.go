package devicesim

import "ironkey.dev/walletcore/nvstore"

// Global partition layout, per spec.md §6: bytes 0..63 reserved, 64..95
// entropy pool, 96..127 pool checksum, 128..143 device UUID.
const (
	GlobalReservedSize = 64
	poolOffset         = 64
	poolChecksumOffset = 96
	uuidOffset         = 128
	uuidSize           = 16

	// MinGlobalPartitionSize is the smallest global partition that fits
	// the fixed layout above.
	MinGlobalPartitionSize = uuidOffset + uuidSize
)

// globalPoolStore adapts nvstore.Store's encrypted partition view to
// entropy.PoolStore, persisting the pool and its checksum at their fixed
// global-partition offsets.
type globalPoolStore struct {
	store *nvstore.Store
}

func (s *globalPoolStore) LoadPool() (pool [32]byte, checksum [32]byte, err error) {
	if st := s.store.EncryptedRead(nvstore.PartitionGlobal, poolOffset, pool[:]); st != nvstore.NoError {
		return pool, checksum, errStatus(st)
	}
	if st := s.store.EncryptedRead(nvstore.PartitionGlobal, poolChecksumOffset, checksum[:]); st != nvstore.NoError {
		return pool, checksum, errStatus(st)
	}
	return pool, checksum, nil
}

func (s *globalPoolStore) SavePool(pool [32]byte, checksum [32]byte) error {
	if st := s.store.EncryptedWrite(nvstore.PartitionGlobal, poolOffset, pool[:]); st != nvstore.NoError {
		return errStatus(st)
	}
	if st := s.store.EncryptedWrite(nvstore.PartitionGlobal, poolChecksumOffset, checksum[:]); st != nvstore.NoError {
		return errStatus(st)
	}
	return nil
}

type statusError struct{ status nvstore.Status }

func (e statusError) Error() string { return "devicesim: nvstore " + e.status.String() }

func errStatus(st nvstore.Status) error { return statusError{status: st} }
