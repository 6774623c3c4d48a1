package txsign

import (
	"ironkey.dev/walletcore/bigfield"
	"ironkey.dev/walletcore/secp256k1"
)

// NonceSource supplies the per-signature secret nonce k; entropy.Generator
// satisfies this via its GetRandom256.
type NonceSource interface {
	GetRandom256() ([32]byte, error)
}

// Sign produces a DER-encoded signature (with trailing hash-type octet)
// over sigHash using privateKey, drawing a fresh nonce from nonces and
// retrying whenever secp256k1.Sign reports a degenerate nonce (zero r or
// s), per spec.md §4.8.
func Sign(sigHash [32]byte, privateKey bigfield.U256, nonces NonceSource, hashType byte) ([]byte, error) {
	hash := leFromBE(sigHash)
	for {
		kBytes, err := nonces.GetRandom256()
		if err != nil {
			return nil, err
		}
		k := leFromBE(kBytes)
		r, s, ok := secp256k1.Sign(hash, privateKey, k)
		if !ok {
			continue
		}
		return EncodeDER(r, s, hashType), nil
	}
}
