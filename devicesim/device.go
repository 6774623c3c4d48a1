package devicesim

import (
	"crypto/rand"
	"fmt"
	"io"

	"golang.org/x/crypto/sha3"

	"ironkey.dev/walletcore/bigfield"
	"ironkey.dev/walletcore/confirm"
	"ironkey.dev/walletcore/entropy"
	"ironkey.dev/walletcore/nvstore"
	"ironkey.dev/walletcore/txsign"
	"ironkey.dev/walletcore/walletrec"
)

// Device wires the independent core packages together into one runnable
// simulated appliance, the way the teacher's cmd/rubin-node main.go wires
// consensus + store + crypto: a BoltMedium-backed nvstore.Store, an
// entropy.Generator mixing InMemoryHardwareSource with the global
// partition's persisted pool, a walletrec.Manager, a txsign.Parser, and a
// scriptable confirm.Callbacks.
type Device struct {
	Medium    *BoltMedium
	Store     *nvstore.Store
	Generator *entropy.Generator
	Wallets   *walletrec.Manager
	Parser    *txsign.Parser
	Callbacks confirm.Callbacks

	UUID [16]byte
}

// Config parameterises NewDevice; zero values select spec.md's defaults.
type Config struct {
	GlobalPartitionSize   uint32
	AccountsPartitionSize uint32
	MaxWallets            int
	Callbacks             confirm.Callbacks
}

// NewDevice opens (or initialises) a simulated device backed by a bbolt
// file at path.
func NewDevice(path string, cfg Config) (*Device, error) {
	if cfg.GlobalPartitionSize == 0 {
		cfg.GlobalPartitionSize = MinGlobalPartitionSize
	}
	if cfg.GlobalPartitionSize < MinGlobalPartitionSize {
		return nil, fmt.Errorf("devicesim: global partition too small for fixed layout (need >= %d)", MinGlobalPartitionSize)
	}
	if cfg.AccountsPartitionSize == 0 {
		cfg.AccountsPartitionSize = uint32(walletrec.DefaultMaxWallets) * walletrec.RecordSize
	}
	if cfg.Callbacks == nil {
		cfg.Callbacks = NewScriptedCallbacks()
	}

	medium, err := OpenBoltMedium(path, cfg.GlobalPartitionSize, cfg.AccountsPartitionSize)
	if err != nil {
		return nil, err
	}

	store := nvstore.NewStore(medium)

	d := &Device{
		Medium:    medium,
		Store:     store,
		Parser:    txsign.NewParser(0, 0),
		Callbacks: cfg.Callbacks,
	}
	return d, nil
}

// Close releases the underlying medium.
func (d *Device) Close() error { return d.Medium.Close() }

// Unlock installs the session encryption key, instantiates the PRNG
// frontend and wallet manager against it, and ensures a device UUID is
// persisted, mirroring the firmware's "wallet load" sequence (spec.md §3
// "Encryption key").
func (d *Device) Unlock(key nvstore.Key) error {
	d.Store.SetEncryptionKey(key)

	pool := &globalPoolStore{store: d.Store}
	hw := &InMemoryHardwareSource{}
	var bootSeed [32]byte
	_, _ = rand.Read(bootSeed[:])
	d.Generator = entropy.NewGenerator(pool, hw, bootSeed[:])
	d.Wallets = walletrec.NewManager(d.Store, d.Generator, 0)

	if err := d.ensurePoolFormatted(pool); err != nil {
		return err
	}

	return d.ensureUUID()
}

// ensurePoolFormatted runs Generator.Format once against a device that has
// never had a valid persisted entropy pool, mirroring spec.md §6's "format"
// command kind: a freshly erased medium reads back as an unrelated
// (pool, checksum) pair (bolt_medium.go's unwritten blocks are all-zero
// ciphertext), which must never be mistaken for a usable pool.
func (d *Device) ensurePoolFormatted(pool *globalPoolStore) error {
	ok, err := entropy.PoolInitialised(pool)
	if err != nil {
		return err
	}
	if ok {
		return nil
	}
	return d.Generator.Format()
}

// Format reformats the device: on user approval, it unloads any active
// wallet and re-seeds the persisted entropy pool from fresh hardware noise,
// the explicit, user-triggered counterpart of the auto-init Unlock performs
// on a never-formatted device. Declining aborts with ErrUserDenied.
func (d *Device) Format() error {
	if d.Callbacks.UserDenied(confirm.Format) {
		return ErrUserDenied
	}
	if d.Wallets != nil {
		d.Wallets.Unload()
	}
	return d.Generator.Format()
}

// Lock clears the session encryption key and unloads any active wallet,
// sanitising secret material per spec.md §5.
func (d *Device) Lock() {
	if d.Wallets != nil {
		d.Wallets.Unload()
	}
	d.Store.ClearEncryptionKey()
}

func (d *Device) ensureUUID() error {
	var existing [16]byte
	if st := d.Store.EncryptedRead(nvstore.PartitionGlobal, uuidOffset, existing[:]); st != nvstore.NoError {
		return errStatus(st)
	}
	if existing != ([16]byte{}) {
		d.UUID = existing
		return nil
	}
	var seed [32]byte
	_, _ = rand.Read(seed[:])
	digest := sha3.Sum256(seed[:])
	var uuid [16]byte
	copy(uuid[:], digest[:16])
	if st := d.Store.EncryptedWrite(nvstore.PartitionGlobal, uuidOffset, uuid[:]); st != nvstore.NoError {
		return errStatus(st)
	}
	d.UUID = uuid
	return nil
}

// SignedTransaction is the result of a successful SignTransaction call.
type SignedTransaction struct {
	Tx        *txsign.Transaction
	Signature []byte
}

// ErrUserDenied reports that the confirmation dialogue was cancelled.
var ErrUserDenied = fmt.Errorf("devicesim: permission denied by user")

// SignTransaction implements the end-to-end spec.md §4.8/§6 flow: parse
// the transaction, present each output to the confirmation callbacks in
// parse order, and -- only once every output has been accepted -- derive
// the signing key and produce the DER signature. A user cancellation
// aborts with ErrUserDenied and no partial signature, per spec.md §5.
func (d *Device) SignTransaction(r io.Reader, declaredLength int, keyCounter uint32, hashType byte) (*SignedTransaction, error) {
	if d.Wallets == nil || d.Wallets.Loaded() == nil {
		return nil, &walletrec.Error{Code: walletrec.NotLoaded, Msg: "no wallet loaded"}
	}
	tx, err := d.Parser.Parse(r, declaredLength)
	if err != nil {
		return nil, err
	}

	d.Callbacks.ClearOutputsSeen()
	for _, out := range tx.Outputs {
		if d.Callbacks.NewOutputSeen(out.AmountText, out.AddressText) {
			return nil, &txsign.Error{Code: txsign.TooManyOutputs, Msg: "outputs buffer overflow during confirmation"}
		}
	}

	if d.Callbacks.UserDenied(confirm.SignTransaction) {
		return nil, ErrUserDenied
	}

	privKeyBytes, err := d.Wallets.DeriveKey(keyCounter)
	if err != nil {
		return nil, err
	}

	sig, err := txsign.Sign(tx.SigHash, bigfield.U256(privKeyBytes), d.Generator, hashType)
	if err != nil {
		return nil, err
	}

	return &SignedTransaction{Tx: tx, Signature: sig}, nil
}
