package nvstore

import (
	"encoding/binary"

	"ironkey.dev/walletcore/aes128"
)

// gfDouble doubles a 128-bit value (little-endian byte order, matching the
// little-endian tweak construction below) in GF(2^128) reduced by
// x^128 + x^7 + x^2 + x + 1 (0x87).
func gfDouble(v [16]byte) [16]byte {
	var out [16]byte
	topBitSet := v[15]&0x80 != 0
	var carry byte
	for i := 0; i < 16; i++ {
		out[i] = (v[i] << 1) | carry
		carry = v[i] >> 7
	}
	if topBitSet {
		out[0] ^= 0x87
	}
	return out
}

// blockDelta computes Δ for the block at address blockAddr (must be
// block-aligned), applying the GF(2^128) doubling seq times -- spec.md
// §4.7 fixes seq to 1 for storage, so this doubles exactly once there, but
// the parameter is kept general since other XEX call sites (none in this
// spec) would vary it.
func blockDelta(tweakKey aes128.ExpandedKey, blockAddr uint32, seq int) [16]byte {
	var n [16]byte
	binary.LittleEndian.PutUint32(n[0:4], blockAddr)

	var delta [16]byte
	aes128.Encrypt(&delta, &n, &tweakKey)
	for i := 0; i < seq; i++ {
		delta = gfDouble(delta)
	}
	return delta
}

func xorBlock16(a, b [16]byte) [16]byte {
	var out [16]byte
	for i := range out {
		out[i] = a[i] ^ b[i]
	}
	return out
}

// xexEncryptBlock encrypts one 16-octet plaintext block at blockAddr.
func xexEncryptBlock(dataKey, tweakKey aes128.ExpandedKey, blockAddr uint32, plaintext [16]byte) [16]byte {
	delta := blockDelta(tweakKey, blockAddr, 1)
	xored := xorBlock16(plaintext, delta)
	var enc [16]byte
	aes128.Encrypt(&enc, &xored, &dataKey)
	return xorBlock16(enc, delta)
}

// xexDecryptBlock inverts xexEncryptBlock.
func xexDecryptBlock(dataKey, tweakKey aes128.ExpandedKey, blockAddr uint32, ciphertext [16]byte) [16]byte {
	delta := blockDelta(tweakKey, blockAddr, 1)
	xored := xorBlock16(ciphertext, delta)
	var dec [16]byte
	aes128.Decrypt(&dec, &xored, &dataKey)
	return xorBlock16(dec, delta)
}
