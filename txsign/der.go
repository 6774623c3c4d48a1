package txsign

import "ironkey.dev/walletcore/bigfield"

// derInteger encodes a 32-octet big-endian unsigned integer as a minimal
// DER INTEGER: spec.md §4.8 describes this as reserving a 0x21-length field
// with a leading 0x00 pad and then stripping that pad "as long as doing so
// would not make the sign bit of the next byte 1" -- the loop below
// computes the same canonical result directly rather than reserving and
// then shrinking.
func derInteger(be [32]byte) []byte {
	b := be[:]
	for len(b) > 1 && b[0] == 0x00 && b[1]&0x80 == 0 {
		b = b[1:]
	}
	if b[0]&0x80 != 0 {
		padded := make([]byte, 0, len(b)+1)
		padded = append(padded, 0x00)
		padded = append(padded, b...)
		b = padded
	}
	out := make([]byte, 0, 2+len(b))
	out = append(out, 0x02, byte(len(b)))
	out = append(out, b...)
	return out
}

// EncodeDER builds a DER-encoded ECDSA signature with the one-octet
// hash-type appended, from r and s in this package's little-endian
// bigfield.U256 convention.
func EncodeDER(r, s bigfield.U256, hashType byte) []byte {
	rEnc := derInteger(reverse32(r))
	sEnc := derInteger(reverse32(s))

	body := make([]byte, 0, len(rEnc)+len(sEnc))
	body = append(body, rEnc...)
	body = append(body, sEnc...)

	out := make([]byte, 0, 2+len(body)+1)
	out = append(out, 0x30, byte(len(body)))
	out = append(out, body...)
	out = append(out, hashType)
	return out
}

func reverse32(u bigfield.U256) [32]byte {
	var out [32]byte
	for i := 0; i < 32; i++ {
		out[i] = u[31-i]
	}
	return out
}

func leFromBE(be [32]byte) bigfield.U256 {
	var out bigfield.U256
	for i := 0; i < 32; i++ {
		out[i] = be[31-i]
	}
	return out
}
