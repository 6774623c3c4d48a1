package secp256k1

import "ironkey.dev/walletcore/bigfield"

// Sign implements spec.md §4.5's ECDSA signing algorithm: Q := k*G,
// r := Q.x mod n, s := k^-1*(hash + r*privateKey) mod n. hash, privateKey
// and k are all in this package's native little-endian U256 convention;
// callers deriving hash from a big-endian digest (e.g. a sig-hash) must
// byte-reverse it first.
//
// ok is false when r or s comes out zero, per spec.md; the caller must
// retry with a fresh k. No low-s normalisation is performed.
func Sign(hash, privateKey, k bigfield.U256) (r, s bigfield.U256, ok bool) {
	q := PointMultiply(G(), k)

	FieldN.Modulo(&r, &q.X)
	if bigfield.IsZero(r[:]) {
		return r, s, false
	}

	var rTimesPriv bigfield.U256
	FieldN.MulMod(&rTimesPriv, &r, &privateKey)

	var numerator bigfield.U256
	FieldN.AddMod(&numerator, &hash, &rTimesPriv)

	var kInv bigfield.U256
	FieldN.Invert(&kInv, &k)

	FieldN.MulMod(&s, &kInv, &numerator)
	if bigfield.IsZero(s[:]) {
		return r, s, false
	}

	return r, s, true
}
