// Package walletrec implements C10 ("Wallet record glue"): keypair records
// keyed by a small integer handle, persisted through nvstore's encrypted
// storage view, with a two-tier key hierarchy mirroring the original
// firmware's main-key/per-wallet-key split. spec.md places record
// *contents* outside its scope but names C10 in the overview table; this
// package (an expansion, see DESIGN.md) gives that table entry a minimal,
// concrete shape rather than leaving it unimplemented.
//
// Structurally grounded on the teacher's node/store/manifest.go (a
// versioned, fixed-shape on-disk record) and node/keymgr.go's keystore
// lifecycle commands, adapted from JSON-on-filesystem to a binary,
// XEX-encrypted record inside nvstore's accounts partition.
package walletrec

import (
	"ironkey.dev/walletcore/entropy"
	"ironkey.dev/walletcore/memsan"
	"ironkey.dev/walletcore/nvstore"
)

// Handle identifies one wallet record slot.
type Handle int

// DefaultMaxWallets bounds the number of wallet records the accounts
// partition holds; spec.md leaves this unspecified, see DESIGN.md.
const DefaultMaxWallets = 8

// LoadedWallet is the decrypted, in-memory form of the currently active
// wallet record. It implements memsan.Sensitive so Manager.Unload can wipe
// it the way spec.md §5 requires on wallet-unload.
type LoadedWallet struct {
	Handle    Handle
	Name      string
	WalletKey [32]byte
	Seed      [64]byte
}

// Sanitise overwrites w's secret fields per spec.md §5.
func (w *LoadedWallet) Sanitise() {
	if w == nil {
		return
	}
	memsan.Sanitise(w.WalletKey[:])
	memsan.Sanitise(w.Seed[:])
}

var _ memsan.Sensitive = (*LoadedWallet)(nil)

// Manager implements Create/Load/Unload/ChangeName/Delete over a
// nvstore.Store, generating fresh wallet keys and KDF seeds from an
// entropy.Generator. Only one wallet may be loaded at a time, matching
// spec.md §5's single-threaded, run-to-completion device model.
type Manager struct {
	store      *nvstore.Store
	gen        *entropy.Generator
	maxWallets int
	loaded     *LoadedWallet
}

// NewManager builds a Manager. maxWallets <= 0 selects DefaultMaxWallets.
func NewManager(store *nvstore.Store, gen *entropy.Generator, maxWallets int) *Manager {
	if maxWallets <= 0 {
		maxWallets = DefaultMaxWallets
	}
	return &Manager{store: store, gen: gen, maxWallets: maxWallets}
}

func (m *Manager) handleAddress(h Handle) (uint32, error) {
	if h < 0 || int(h) >= m.maxWallets {
		return 0, walleterr(InvalidHandle, "handle out of range")
	}
	return uint32(h) * RecordSize, nil
}

func (m *Manager) readRecord(h Handle) (record, error) {
	addr, err := m.handleAddress(h)
	if err != nil {
		return record{}, err
	}
	var buf [RecordSize]byte
	if st := m.store.EncryptedRead(nvstore.PartitionAccounts, addr, buf[:]); st != nvstore.NoError {
		return record{}, walleterr(ReadError, st.String())
	}
	return decodeRecord(buf), nil
}

func (m *Manager) writeRecord(h Handle, r record) error {
	addr, err := m.handleAddress(h)
	if err != nil {
		return err
	}
	buf := encodeRecord(r)
	if st := m.store.EncryptedWrite(nvstore.PartitionAccounts, addr, buf[:]); st != nvstore.NoError {
		return walleterr(WriteError, st.String())
	}
	return nil
}

// Create allocates the first free handle, generates a fresh wallet key and
// KDF seed from the entropy generator, and persists the new record.
func (m *Manager) Create(name string) (Handle, error) {
	if len(name) > MaxNameLen {
		return 0, walleterr(InvalidOperation, "name too long")
	}
	for h := Handle(0); int(h) < m.maxWallets; h++ {
		r, err := m.readRecord(h)
		if err != nil {
			return 0, err
		}
		if r.valid {
			continue
		}

		walletKey, err := m.gen.GetRandom256()
		if err != nil {
			return 0, walleterr(RngFailure, err.Error())
		}
		var seed [64]byte
		seedLo, err := m.gen.GetRandom256()
		if err != nil {
			return 0, walleterr(RngFailure, err.Error())
		}
		seedHi, err := m.gen.GetRandom256()
		if err != nil {
			return 0, walleterr(RngFailure, err.Error())
		}
		copy(seed[0:32], seedLo[:])
		copy(seed[32:64], seedHi[:])

		wrapped := wrapWalletKey(m.store.EncryptionKey(), walletKey)
		if err := m.writeRecord(h, record{valid: true, name: name, wrappedKey: wrapped, seed: seed}); err != nil {
			return 0, err
		}
		return h, nil
	}
	return 0, walleterr(Full, "no free wallet slot")
}

// Load decrypts the record at h into the session's LoadedWallet, replacing
// (and sanitising) whatever was loaded before.
func (m *Manager) Load(h Handle) (*LoadedWallet, error) {
	r, err := m.readRecord(h)
	if err != nil {
		return nil, err
	}
	if !r.valid {
		return nil, walleterr(NotThere, "no wallet at handle")
	}

	if m.loaded != nil {
		m.loaded.Sanitise()
	}

	lw := &LoadedWallet{
		Handle:    h,
		Name:      r.name,
		WalletKey: unwrapWalletKey(m.store.EncryptionKey(), r.wrappedKey),
		Seed:      r.seed,
	}
	m.loaded = lw
	return lw, nil
}

// Loaded returns the currently loaded wallet, or nil if none is loaded.
func (m *Manager) Loaded() *LoadedWallet { return m.loaded }

// Unload sanitises and clears the currently loaded wallet, per spec.md §5.
func (m *Manager) Unload() {
	if m.loaded == nil {
		return
	}
	m.loaded.Sanitise()
	m.loaded = nil
}

// ChangeName rewrites h's stored name, matching spec.md §6's "change-name"
// command kind.
func (m *Manager) ChangeName(h Handle, newName string) error {
	if len(newName) > MaxNameLen {
		return walleterr(InvalidOperation, "name too long")
	}
	r, err := m.readRecord(h)
	if err != nil {
		return err
	}
	if !r.valid {
		return walleterr(NotThere, "no wallet at handle")
	}
	r.name = newName
	if err := m.writeRecord(h, r); err != nil {
		return err
	}
	if m.loaded != nil && m.loaded.Handle == h {
		m.loaded.Name = newName
	}
	return nil
}

// Delete invalidates the record at h, unloading it first if it is the
// currently active wallet.
func (m *Manager) Delete(h Handle) error {
	r, err := m.readRecord(h)
	if err != nil {
		return err
	}
	if !r.valid {
		return walleterr(NotThere, "no wallet at handle")
	}
	if m.loaded != nil && m.loaded.Handle == h {
		m.Unload()
	}
	return m.writeRecord(h, record{})
}

// DeriveKey runs the loaded wallet's KDF seed through
// entropy.GenerateDeterministic256 for the given counter, per spec.md
// §4.6's BIP32-like inner derivation. It fails with NotLoaded if no wallet
// is currently loaded.
func (m *Manager) DeriveKey(counter uint32) ([32]byte, error) {
	if m.loaded == nil {
		return [32]byte{}, walleterr(NotLoaded, "no wallet loaded")
	}
	return entropy.GenerateDeterministic256(m.loaded.Seed, counter), nil
}
