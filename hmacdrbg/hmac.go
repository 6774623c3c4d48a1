// Package hmacdrbg implements HMAC (FIPS 198) over the hashcore hash family
// and HMAC_DRBG (NIST SP 800-90A, no prediction resistance, fixed 256-bit
// security strength, reseed counter not tracked) per spec.md §4.4 (C4).
package hmacdrbg

import "ironkey.dev/walletcore/hashcore"

func hmacCore(newHash func() hashcore.State, blockSize int, key, data []byte) []byte {
	if len(key) > blockSize {
		h := newHash()
		_, _ = h.Write(key)
		key = h.Sum(nil)
	}
	padded := make([]byte, blockSize)
	copy(padded, key)

	ipad := make([]byte, blockSize)
	opad := make([]byte, blockSize)
	for i := 0; i < blockSize; i++ {
		ipad[i] = padded[i] ^ 0x36
		opad[i] = padded[i] ^ 0x5c
	}

	inner := newHash()
	_, _ = inner.Write(ipad)
	_, _ = inner.Write(data)
	innerSum := inner.Sum(nil)

	outer := newHash()
	_, _ = outer.Write(opad)
	_, _ = outer.Write(innerSum)
	return outer.Sum(nil)
}

// HMACSHA256 computes HMAC-SHA-256 with block size 64.
func HMACSHA256(key, data []byte) [32]byte {
	sum := hmacCore(func() hashcore.State { return hashcore.NewSHA256() }, 64, key, data)
	var out [32]byte
	copy(out[:], sum)
	return out
}

// HMACSHA512 computes HMAC-SHA-512 with block size 128.
func HMACSHA512(key, data []byte) [64]byte {
	sum := hmacCore(func() hashcore.State { return hashcore.NewSHA512() }, 128, key, data)
	var out [64]byte
	copy(out[:], sum)
	return out
}
