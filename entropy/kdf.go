package entropy

import (
	"encoding/binary"

	"ironkey.dev/walletcore/aes128"
	"ironkey.dev/walletcore/hashcore"
)

// GenerateDeterministic256 implements spec.md §4.6's BIP32-like inner KDF:
// H := SHA-256(seed[32:64] || 0x00000000 || counter_be), then the two
// 16-octet AES-128 keys taken from seed[0:16] and seed[16:32] each encrypt
// one half of H, and the two ciphertext blocks are concatenated with the
// first-encrypted half in the low position.
func GenerateDeterministic256(seed [64]byte, counter uint32) [32]byte {
	var msg [40]byte
	copy(msg[:32], seed[32:64])
	binary.BigEndian.PutUint32(msg[36:40], counter)
	h := hashcore.Sum256(msg[:])

	var rawKey1, rawKey2 [16]byte
	copy(rawKey1[:], seed[0:16])
	copy(rawKey2[:], seed[16:32])
	key1 := aes128.ExpandKey(rawKey1)
	key2 := aes128.ExpandKey(rawKey2)

	var block1, block2 [16]byte
	copy(block1[:], h[0:16])
	copy(block2[:], h[16:32])

	var enc1, enc2 [16]byte
	aes128.Encrypt(&enc1, &block1, &key1)
	aes128.Encrypt(&enc2, &block2, &key2)

	var out [32]byte
	copy(out[0:16], enc1[:])
	copy(out[16:32], enc2[:])
	return out
}
