package hashcore

// Sha256State implements SHA-256 per FIPS 180-4, big-endian chaining words
// and big-endian length suffix.
type Sha256State struct {
	h        [8]uint32
	buf      [64]byte
	bufLen   int
	totalLen uint64
}

var sha256IV = [8]uint32{
	0x6a09e667, 0xbb67ae85, 0x3c6ef372, 0xa54ff53a,
	0x510e527f, 0x9b05688c, 0x1f83d9ab, 0x5be0cd19,
}

var sha256K = [64]uint32{
	0x428a2f98, 0x71374491, 0xb5c0fbcf, 0xe9b5dba5, 0x3956c25b, 0x59f111f1, 0x923f82a4, 0xab1c5ed5,
	0xd807aa98, 0x12835b01, 0x243185be, 0x550c7dc3, 0x72be5d74, 0x80deb1fe, 0x9bdc06a7, 0xc19bf174,
	0xe49b69c1, 0xefbe4786, 0x0fc19dc6, 0x240ca1cc, 0x2de92c6f, 0x4a7484aa, 0x5cb0a9dc, 0x76f988da,
	0x983e5152, 0xa831c66d, 0xb00327c8, 0xbf597fc7, 0xc6e00bf3, 0xd5a79147, 0x06ca6351, 0x14292967,
	0x27b70a85, 0x2e1b2138, 0x4d2c6dfc, 0x53380d13, 0x650a7354, 0x766a0abb, 0x81c2c92e, 0x92722c85,
	0xa2bfe8a1, 0xa81a664b, 0xc24b8b70, 0xc76c51a3, 0xd192e819, 0xd6990624, 0xf40e3585, 0x106aa070,
	0x19a4c116, 0x1e376c08, 0x2748774c, 0x34b0bcb5, 0x391c0cb3, 0x4ed8aa4a, 0x5b9cca4f, 0x682e6ff3,
	0x748f82ee, 0x78a5636f, 0x84c87814, 0x8cc70208, 0x90befffa, 0xa4506ceb, 0xbef9a3f7, 0xc67178f2,
}

// NewSHA256 creates a fresh SHA-256 hashing session.
func NewSHA256() *Sha256State {
	s := &Sha256State{}
	s.h = sha256IV
	return s
}

func (s *Sha256State) BlockSize() int { return 64 }
func (s *Sha256State) Size() int      { return 32 }

func (s *Sha256State) Write(p []byte) (int, error) {
	n := len(p)
	s.totalLen += uint64(n)
	for len(p) > 0 {
		copied := copy(s.buf[s.bufLen:], p)
		s.bufLen += copied
		p = p[copied:]
		if s.bufLen == 64 {
			s.compress(s.buf[:])
			s.bufLen = 0
		}
	}
	return n, nil
}

func (s *Sha256State) compress(block []byte) {
	var w [64]uint32
	for i := 0; i < 16; i++ {
		w[i] = uint32(block[i*4])<<24 | uint32(block[i*4+1])<<16 | uint32(block[i*4+2])<<8 | uint32(block[i*4+3])
	}
	for i := 16; i < 64; i++ {
		s0 := rotr32(w[i-15], 7) ^ rotr32(w[i-15], 18) ^ (w[i-15] >> 3)
		s1 := rotr32(w[i-2], 17) ^ rotr32(w[i-2], 19) ^ (w[i-2] >> 10)
		w[i] = w[i-16] + s0 + w[i-7] + s1
	}

	a, b, c, d, e, f, g, h := s.h[0], s.h[1], s.h[2], s.h[3], s.h[4], s.h[5], s.h[6], s.h[7]
	for i := 0; i < 64; i++ {
		S1 := rotr32(e, 6) ^ rotr32(e, 11) ^ rotr32(e, 25)
		ch := (e & f) ^ (^e & g)
		temp1 := h + S1 + ch + sha256K[i] + w[i]
		S0 := rotr32(a, 2) ^ rotr32(a, 13) ^ rotr32(a, 22)
		maj := (a & b) ^ (a & c) ^ (b & c)
		temp2 := S0 + maj

		h = g
		g = f
		f = e
		e = d + temp1
		d = c
		c = b
		b = a
		a = temp1 + temp2
	}

	s.h[0] += a
	s.h[1] += b
	s.h[2] += c
	s.h[3] += d
	s.h[4] += e
	s.h[5] += f
	s.h[6] += g
	s.h[7] += h
}

// Sum finalises a copy of the running state (padding, length suffix) and
// appends the 32-octet digest to b.
func (s *Sha256State) Sum(b []byte) []byte {
	clone := *s
	clone.finish()
	digest := writeDigestBE(clone.h[:])
	return append(b, digest...)
}

func (s *Sha256State) finish() {
	totalBits := s.totalLen * 8
	s.buf[s.bufLen] = 0x80
	s.bufLen++
	if s.bufLen > 56 {
		for s.bufLen < 64 {
			s.buf[s.bufLen] = 0
			s.bufLen++
		}
		s.compress(s.buf[:])
		s.bufLen = 0
	}
	for s.bufLen < 56 {
		s.buf[s.bufLen] = 0
		s.bufLen++
	}
	var lenBytes [8]byte
	putUint64BE(lenBytes[:], totalBits)
	copy(s.buf[56:64], lenBytes[:])
	s.compress(s.buf[:])
}

func writeDigestBE(h []uint32) []byte {
	out := make([]byte, len(h)*4)
	for i, word := range h {
		out[i*4] = byte(word >> 24)
		out[i*4+1] = byte(word >> 16)
		out[i*4+2] = byte(word >> 8)
		out[i*4+3] = byte(word)
	}
	return out
}
