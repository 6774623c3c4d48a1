// Package entropy implements the PRNG frontend spec.md §4.6 (C6) describes:
// a persisted, checksummed pool mixed with an HMAC_DRBG and hardware noise
// for GetRandom256, and a BIP32-like deterministic KDF for
// GenerateDeterministic256.
//
// The pool/checksum/fatal-on-mismatch shape has no direct analogue
// elsewhere in the retrieved pack, so this package borrows the teacher's
// crypto.HSMMonitor structure (clients/go/crypto/hsm_monitor.go): an
// explicit small state type and a narrow, mockable dependency (here,
// PoolStore and HardwareSource) rather than reaching for a global.
package entropy

import (
	"errors"

	"ironkey.dev/walletcore/hashcore"
	"ironkey.dev/walletcore/hmacdrbg"
)

// SafetyFactor is the multiplier spec.md applies to the target entropy
// (256 bits) before the hardware noise source is considered drained.
const SafetyFactor = 2

// ErrPoolChecksumMismatch is returned by GetRandom256 when the persisted
// pool fails its double-SHA-256 checksum; callers must treat this as a
// fatal, wallet-unsafe condition and refuse to produce key material.
var ErrPoolChecksumMismatch = errors.New("entropy: persistent pool checksum mismatch")

// PoolStore persists the 32-octet entropy pool and its checksum in the
// device's global partition. Implementations are expected to be backed by
// nvstore in production and an in-memory map in tests/simulation.
type PoolStore interface {
	LoadPool() (pool [32]byte, checksum [32]byte, err error)
	SavePool(pool [32]byte, checksum [32]byte) error
}

// HardwareSource is the device's physical noise source. Sample returns one
// sample of raw noise plus this implementation's estimate, in bits, of the
// min-entropy that sample contributes.
type HardwareSource interface {
	Sample() (sample []byte, entropyBits int)
}

// Generator is the PRNG frontend: a PoolStore, a HardwareSource, and the
// long-lived DRBG state they feed.
type Generator struct {
	store PoolStore
	hw    HardwareSource
	drbg  *hmacdrbg.State
}

// NewGenerator instantiates the DRBG from seedMaterial (e.g. a boot-time
// hardware sample) and wires it to store and hw.
func NewGenerator(store PoolStore, hw HardwareSource, seedMaterial []byte) *Generator {
	return &Generator{
		store: store,
		hw:    hw,
		drbg:  hmacdrbg.Instantiate(seedMaterial),
	}
}

// GetRandom256 implements spec.md §4.6's get_random_256: verify the
// persisted pool's checksum, mix in one DRBG block, drain the hardware
// noise source (each sample reseeding and additionally mixed through the
// DRBG) until 256*SafetyFactor bits of estimated entropy have been
// consumed, then persist and return the resulting accumulator.
func (g *Generator) GetRandom256() ([32]byte, error) {
	pool, checksum, err := g.store.LoadPool()
	if err != nil {
		return [32]byte{}, err
	}
	if hashcore.DoubleSHA256(pool[:]) != checksum {
		return [32]byte{}, ErrPoolChecksumMismatch
	}

	accumulator := pool

	var drbgBlock [32]byte
	g.drbg.Generate(drbgBlock[:], nil)
	xorInto(accumulator[:], drbgBlock[:])

	collected := 0
	for collected < 256*SafetyFactor {
		sample, bits := g.hw.Sample()
		g.drbg.Reseed(sample)
		var mixed [32]byte
		g.drbg.Generate(mixed[:], sample)
		xorInto(accumulator[:], mixed[:])
		collected += bits
	}

	newChecksum := hashcore.DoubleSHA256(accumulator[:])
	if err := g.store.SavePool(accumulator, newChecksum); err != nil {
		return [32]byte{}, err
	}

	return accumulator, nil
}

// PoolInitialised reports whether store holds a pool that already passes
// its own double-SHA-256 checksum -- the step-1 invariant GetRandom256
// requires. A freshly erased (or never-formatted) medium reads back as an
// unrelated (pool, checksum) pair and fails this check.
func PoolInitialised(store PoolStore) (bool, error) {
	pool, checksum, err := store.LoadPool()
	if err != nil {
		return false, err
	}
	return hashcore.DoubleSHA256(pool[:]) == checksum, nil
}

// Format seeds a fresh, checksummed pool and persists it, establishing
// GetRandom256's step-1 invariant on a device that has none yet. It mixes
// one hardware sample through the DRBG the same way GetRandom256's drain
// loop does, rather than trusting the DRBG's boot seed alone, matching
// spec.md §6's "format" command: a device leaves formatting with a usable
// entropy pool, not merely an erased one.
func (g *Generator) Format() error {
	sample, _ := g.hw.Sample()
	g.drbg.Reseed(sample)
	var seed [32]byte
	g.drbg.Generate(seed[:], sample)

	checksum := hashcore.DoubleSHA256(seed[:])
	return g.store.SavePool(seed, checksum)
}

func xorInto(dst, src []byte) {
	for i := range dst {
		dst[i] ^= src[i]
	}
}
