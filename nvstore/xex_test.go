package nvstore

import (
	"testing"

	"ironkey.dev/walletcore/aes128"
)

func TestGfDoubleOfZeroIsZero(t *testing.T) {
	var zero [16]byte
	got := gfDouble(zero)
	if got != zero {
		t.Fatalf("gfDouble(0) = %x, want 0", got)
	}
}

func TestGfDoubleReducesOnTopBitOverflow(t *testing.T) {
	var v [16]byte
	v[15] = 0x80 // top bit of the 128-bit little-endian value set
	got := gfDouble(v)
	want := [16]byte{0x87}
	if got != want {
		t.Fatalf("gfDouble(top-bit-set) = %x, want %x", got, want)
	}
}

func TestGfDoubleNoReductionWithoutOverflow(t *testing.T) {
	var v [16]byte
	v[0] = 0x01
	got := gfDouble(v)
	want := [16]byte{0x02}
	if got != want {
		t.Fatalf("gfDouble(1) = %x, want %x", got, want)
	}
}

func TestXexEncryptDecryptInverts(t *testing.T) {
	var dataKeyBytes, tweakKeyBytes [16]byte
	for i := range dataKeyBytes {
		dataKeyBytes[i] = byte(i)
		tweakKeyBytes[i] = byte(255 - i)
	}
	dataKey := aes128.ExpandKey(dataKeyBytes)
	tweakKey := aes128.ExpandKey(tweakKeyBytes)

	var plain [16]byte
	copy(plain[:], []byte("sixteen byte msg"))

	enc := xexEncryptBlock(dataKey, tweakKey, 0, plain)
	if enc == plain {
		t.Fatalf("xexEncryptBlock returned the plaintext unchanged")
	}
	dec := xexDecryptBlock(dataKey, tweakKey, 0, enc)
	if dec != plain {
		t.Fatalf("xexDecryptBlock(xexEncryptBlock(p)) = %x, want %x", dec, plain)
	}
}

func TestXexDeltaVariesWithBlockAddress(t *testing.T) {
	var tweakKeyBytes [16]byte
	for i := range tweakKeyBytes {
		tweakKeyBytes[i] = byte(i)
	}
	tweakKey := aes128.ExpandKey(tweakKeyBytes)

	d0 := blockDelta(tweakKey, 0, 1)
	d16 := blockDelta(tweakKey, 16, 1)
	if d0 == d16 {
		t.Fatalf("blockDelta produced identical Δ for different block addresses")
	}
}
