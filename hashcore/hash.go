// Package hashcore implements the hash family spec.md §4.3 (C3) requires:
// SHA-256 (FIPS 180-4) including its double-hash form, RIPEMD-160
// (Dobbertin/Bosselaers/Preneel), and SHA-512 (FIPS 180-4), each a separate
// type behind the common State interface, with the algorithm fixed at
// construction time. Each type carries its own padding/finalisation routine
// (finish); no padding driver is shared between them.
//
// As with aes128, this is hand-rolled rather than built on crypto/sha256 or
// crypto/sha512: the hash family itself is the specified artifact.
package hashcore

// State is the common interface every hash in this package implements:
// repeated Write calls followed by one Sum.
type State interface {
	Write(p []byte) (int, error)
	// Sum appends the finalised digest to b and returns the resulting slice.
	// Sum finalises a copy of the running state and leaves the State itself
	// unchanged, so further Write calls continue the same message.
	Sum(b []byte) []byte
	// Size returns the digest length in bytes.
	Size() int
	// BlockSize returns the size, in bytes, of the hash's internal block.
	BlockSize() int
}

// DoubleSHA256 computes SHA-256(SHA-256(data)), the "sig-hash" construction
// spec.md's GLOSSARY and §4.8 rely on.
func DoubleSHA256(data []byte) [32]byte {
	first := Sum256(data)
	return Sum256(first[:])
}

// Sum256 is a convenience one-shot SHA-256.
func Sum256(data []byte) [32]byte {
	h := NewSHA256()
	_, _ = h.Write(data)
	var out [32]byte
	copy(out[:], h.Sum(nil))
	return out
}

// Sum160 is a convenience one-shot RIPEMD-160.
func Sum160(data []byte) [20]byte {
	h := NewRIPEMD160()
	_, _ = h.Write(data)
	var out [20]byte
	copy(out[:], h.Sum(nil))
	return out
}

// Sum512 is a convenience one-shot SHA-512.
func Sum512(data []byte) [64]byte {
	h := NewSHA512()
	_, _ = h.Write(data)
	var out [64]byte
	copy(out[:], h.Sum(nil))
	return out
}

// HASH160 computes RIPEMD-160(SHA-256(data)), the 20-octet digest spec.md's
// GLOSSARY defines and C9's address formatting consumes.
func HASH160(data []byte) [20]byte {
	sha := Sum256(data)
	return Sum160(sha[:])
}

func putUint64BE(b []byte, v uint64) {
	b[0] = byte(v >> 56)
	b[1] = byte(v >> 48)
	b[2] = byte(v >> 40)
	b[3] = byte(v >> 32)
	b[4] = byte(v >> 24)
	b[5] = byte(v >> 16)
	b[6] = byte(v >> 8)
	b[7] = byte(v)
}

func putUint64LE(b []byte, v uint64) {
	b[0] = byte(v)
	b[1] = byte(v >> 8)
	b[2] = byte(v >> 16)
	b[3] = byte(v >> 24)
	b[4] = byte(v >> 32)
	b[5] = byte(v >> 40)
	b[6] = byte(v >> 48)
	b[7] = byte(v >> 56)
}

func rotr32(x uint32, n uint) uint32 { return (x >> n) | (x << (32 - n)) }
func rotl32(x uint32, n uint) uint32 { return (x << n) | (x >> (32 - n)) }
func rotr64(x uint64, n uint) uint64 { return (x >> n) | (x << (64 - n)) }
