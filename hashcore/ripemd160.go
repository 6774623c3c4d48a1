package hashcore

// Ripemd160State implements RIPEMD-160 (Dobbertin/Bosselaers/Preneel): two
// parallel lines of five rounds of sixteen steps each, mixed together at the
// end of every 512-bit block, little-endian chaining words and little-endian
// length suffix, per spec.md §4.3.
type Ripemd160State struct {
	h        [5]uint32
	buf      [64]byte
	bufLen   int
	totalLen uint64
}

var ripemd160IV = [5]uint32{0x67452301, 0xefcdab89, 0x98badcfe, 0x10325476, 0xc3d2e1f0}

var ripemdRLeft = [80]int{
	0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15,
	7, 4, 13, 1, 10, 6, 15, 3, 12, 0, 9, 5, 2, 14, 11, 8,
	3, 10, 14, 4, 9, 15, 8, 1, 2, 7, 0, 6, 13, 11, 5, 12,
	1, 9, 11, 10, 0, 8, 12, 4, 13, 3, 7, 15, 14, 5, 6, 2,
	4, 0, 5, 9, 7, 12, 2, 10, 14, 1, 3, 8, 11, 6, 15, 13,
}

var ripemdRRight = [80]int{
	5, 14, 7, 0, 9, 2, 11, 4, 13, 6, 15, 8, 1, 10, 3, 12,
	6, 11, 3, 7, 0, 13, 5, 10, 14, 15, 8, 12, 4, 9, 1, 2,
	15, 5, 1, 3, 7, 14, 6, 9, 11, 8, 12, 2, 10, 0, 4, 13,
	8, 6, 4, 1, 3, 11, 15, 0, 5, 12, 2, 13, 9, 7, 10, 14,
	12, 15, 10, 4, 1, 5, 8, 7, 6, 2, 13, 14, 0, 3, 9, 11,
}

var ripemdSLeft = [80]uint{
	11, 14, 15, 12, 5, 8, 7, 9, 11, 13, 14, 15, 6, 7, 9, 8,
	7, 6, 8, 13, 11, 9, 7, 15, 7, 12, 15, 9, 11, 7, 13, 12,
	11, 13, 6, 7, 14, 9, 13, 15, 14, 8, 13, 6, 5, 12, 7, 5,
	11, 12, 14, 15, 14, 15, 9, 8, 9, 14, 5, 6, 8, 6, 5, 12,
	9, 15, 5, 11, 6, 8, 13, 12, 5, 12, 13, 14, 11, 8, 5, 6,
}

var ripemdSRight = [80]uint{
	8, 9, 9, 11, 13, 15, 15, 5, 7, 7, 8, 11, 14, 14, 12, 6,
	9, 13, 15, 7, 12, 8, 9, 11, 7, 7, 12, 7, 6, 15, 13, 11,
	9, 7, 15, 11, 8, 6, 6, 14, 12, 13, 5, 14, 13, 13, 7, 5,
	15, 5, 8, 11, 14, 14, 6, 14, 6, 9, 12, 9, 12, 5, 15, 8,
	8, 5, 12, 9, 12, 5, 14, 6, 8, 13, 6, 5, 15, 13, 11, 11,
}

var ripemdKLeft = [5]uint32{0x00000000, 0x5a827999, 0x6ed9eba1, 0x8f1bbcdc, 0xa953fd4e}
var ripemdKRight = [5]uint32{0x50a28be6, 0x5c4dd124, 0x6d703ef3, 0x7a6d76e9, 0x00000000}

func ripemdF(group int, x, y, z uint32) uint32 {
	switch group {
	case 0:
		return x ^ y ^ z
	case 1:
		return (x & y) | (^x & z)
	case 2:
		return (x | ^y) ^ z
	case 3:
		return (x & z) | (y &^ z)
	default:
		return x ^ (y | ^z)
	}
}

// NewRIPEMD160 creates a fresh RIPEMD-160 hashing session.
func NewRIPEMD160() *Ripemd160State {
	s := &Ripemd160State{}
	s.h = ripemd160IV
	return s
}

func (s *Ripemd160State) BlockSize() int { return 64 }
func (s *Ripemd160State) Size() int      { return 20 }

func (s *Ripemd160State) Write(p []byte) (int, error) {
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

func (s *Ripemd160State) compress(block []byte) {
	var x [16]uint32
	for i := 0; i < 16; i++ {
		x[i] = uint32(block[i*4]) | uint32(block[i*4+1])<<8 | uint32(block[i*4+2])<<16 | uint32(block[i*4+3])<<24
	}

	a, b, c, d, e := s.h[0], s.h[1], s.h[2], s.h[3], s.h[4]
	aa, bb, cc, dd, ee := s.h[0], s.h[1], s.h[2], s.h[3], s.h[4]

	for j := 0; j < 80; j++ {
		group := j / 16
		t := rotl32(a+ripemdF(group, b, c, d)+x[ripemdRLeft[j]]+ripemdKLeft[group], ripemdSLeft[j]) + e
		a, e, d, c, b = e, d, rotl32(c, 10), b, t

		rGroup := 4 - group
		tt := rotl32(aa+ripemdF(rGroup, bb, cc, dd)+x[ripemdRRight[j]]+ripemdKRight[group], ripemdSRight[j]) + ee
		aa, ee, dd, cc, bb = ee, dd, rotl32(cc, 10), bb, tt
	}

	t := s.h[1] + c + dd
	s.h[1] = s.h[2] + d + ee
	s.h[2] = s.h[3] + e + aa
	s.h[3] = s.h[4] + a + bb
	s.h[4] = s.h[0] + b + cc
	s.h[0] = t
}

func (s *Ripemd160State) Sum(b []byte) []byte {
	clone := *s
	clone.finish()
	out := make([]byte, 20)
	for i, word := range clone.h {
		out[i*4] = byte(word)
		out[i*4+1] = byte(word >> 8)
		out[i*4+2] = byte(word >> 16)
		out[i*4+3] = byte(word >> 24)
	}
	return append(b, out...)
}

func (s *Ripemd160State) finish() {
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
	putUint64LE(lenBytes[:], totalBits)
	copy(s.buf[56:64], lenBytes[:])
	s.compress(s.buf[:])
}
