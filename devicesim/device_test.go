package devicesim

import (
	"bytes"
	"encoding/hex"
	"path/filepath"
	"testing"

	"ironkey.dev/walletcore/confirm"
	"ironkey.dev/walletcore/nvstore"
)

// canonicalTxHex has the layout and amounts of txsign's own canonical
// single-input/two-output test vector (see txsign/parser_test.go): one
// input with a placeholder scriptSig, two standard P2PKH outputs. Its two
// output HASH160s differ from that vector's.
const canonicalTxHex = "0100000001000102030405060708090a0b0c0d0e0f101112131415161718191a1b1c1d1e1f0000000003aabbccffffffff020046c323000000001976a91400112233445566778899aabbccddeeff1021324388ac87d61200000000001976a914071a2d405366798c9fb2c5d8ebfe1124374a5d7088ac0000000001000000"

func newTestDevice(t *testing.T) *Device {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "device.bolt")
	d, err := NewDevice(dbPath, Config{})
	if err != nil {
		t.Fatalf("NewDevice() error = %v", err)
	}
	t.Cleanup(func() { _ = d.Close() })

	var key nvstore.Key
	for i := range key {
		key[i] = byte(i * 3)
	}
	if err := d.Unlock(key); err != nil {
		t.Fatalf("Unlock() error = %v", err)
	}
	return d
}

func TestUnlockFormatsPoolOnFreshDevice(t *testing.T) {
	d := newTestDevice(t)
	if _, err := d.Generator.GetRandom256(); err != nil {
		t.Fatalf("GetRandom256() on a freshly unlocked device error = %v", err)
	}
}

func TestUnlockAssignsStableUUID(t *testing.T) {
	d := newTestDevice(t)
	first := d.UUID
	if first == ([16]byte{}) {
		t.Fatalf("UUID is all-zero after Unlock")
	}
	if err := d.Unlock(d.Store.EncryptionKey()); err != nil {
		t.Fatalf("second Unlock() error = %v", err)
	}
	if d.UUID != first {
		t.Errorf("UUID changed across Unlock calls: %x != %x", d.UUID, first)
	}
}

func TestSignTransactionRequiresLoadedWallet(t *testing.T) {
	d := newTestDevice(t)
	raw, _ := hex.DecodeString(canonicalTxHex)
	_, err := d.SignTransaction(bytes.NewReader(raw), len(raw), 0, 0x01)
	if err == nil {
		t.Fatalf("SignTransaction() with no wallet loaded succeeded, want error")
	}
}

func TestSignTransactionEndToEnd(t *testing.T) {
	d := newTestDevice(t)
	h, err := d.Wallets.Create("primary")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if _, err := d.Wallets.Load(h); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	raw, err := hex.DecodeString(canonicalTxHex)
	if err != nil {
		t.Fatalf("hex.DecodeString: %v", err)
	}

	signed, err := d.SignTransaction(bytes.NewReader(raw), len(raw), 0, 0x01)
	if err != nil {
		t.Fatalf("SignTransaction() error = %v", err)
	}
	if len(signed.Tx.Outputs) != 2 {
		t.Fatalf("len(Outputs) = %d, want 2", len(signed.Tx.Outputs))
	}
	if len(signed.Signature) == 0 {
		t.Fatalf("empty signature")
	}
	if signed.Signature[0] != 0x30 {
		t.Errorf("signature does not start with DER SEQUENCE tag: %x", signed.Signature[0])
	}

	cb := d.Callbacks.(*ScriptedCallbacks)
	if len(cb.Outputs) != 2 {
		t.Errorf("callbacks recorded %d outputs, want 2", len(cb.Outputs))
	}
}

func TestFormatRotatesPool(t *testing.T) {
	d := newTestDevice(t)
	before, err := d.Generator.GetRandom256()
	if err != nil {
		t.Fatalf("GetRandom256() before Format() error = %v", err)
	}

	if err := d.Format(); err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	after, err := d.Generator.GetRandom256()
	if err != nil {
		t.Fatalf("GetRandom256() after Format() error = %v", err)
	}
	if before == after {
		t.Errorf("Format() did not change the entropy pool's output")
	}
}

func TestFormatAbortsOnUserDenial(t *testing.T) {
	d := newTestDevice(t)
	d.Callbacks.(*ScriptedCallbacks).Deny[confirm.Format] = true
	if err := d.Format(); err != ErrUserDenied {
		t.Fatalf("Format() error = %v, want ErrUserDenied", err)
	}
}

func TestSignTransactionAbortsOnUserDenial(t *testing.T) {
	d := newTestDevice(t)
	h, _ := d.Wallets.Create("primary")
	if _, err := d.Wallets.Load(h); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	d.Callbacks.(*ScriptedCallbacks).Deny[confirm.SignTransaction] = true

	raw, _ := hex.DecodeString(canonicalTxHex)
	_, err := d.SignTransaction(bytes.NewReader(raw), len(raw), 0, 0x01)
	if err != ErrUserDenied {
		t.Fatalf("SignTransaction() error = %v, want ErrUserDenied", err)
	}
}
