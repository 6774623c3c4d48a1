// Package btcaddr implements spec.md §4.9 (C9): Base-58Check address
// encoding from a 20-octet HASH160, and fixed-point BTC amount text
// formatting. Neither input is secret, so unlike bigfield/aes128/secp256k1
// there is no constant-time requirement here -- this is formatting of
// already-public transaction-output data for display.
package btcaddr

import (
	"math/big"

	"ironkey.dev/walletcore/hashcore"
)

const base58Alphabet = "123456789ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz"

// Base58CheckEncode encodes version||hash with a 4-octet double-SHA-256
// checksum appended, per spec.md §4.9. version is the single address-version
// octet (0x00 for mainnet P2PKH, the only kind C8 produces).
func Base58CheckEncode(version byte, hash [20]byte) string {
	payload := make([]byte, 0, 1+20+4)
	payload = append(payload, version)
	payload = append(payload, hash[:]...)
	checksum := hashcore.DoubleSHA256(payload)
	payload = append(payload, checksum[:4]...)
	return base58Encode(payload)
}

// base58Encode is plain (non-constant-time) big-integer base conversion:
// fine here since payload is public data, never a secret. math/big is the
// standard library's own bignum type -- appropriate now that the arithmetic
// involved is ordinary positive-integer division/modulo over public bytes,
// not the constant-time modular field arithmetic bigfield exists for.
func base58Encode(payload []byte) string {
	zeroCount := 0
	for _, b := range payload {
		if b != 0 {
			break
		}
		zeroCount++
	}

	n := new(big.Int).SetBytes(payload)
	base := big.NewInt(58)
	mod := new(big.Int)
	var digits []byte
	for n.Sign() > 0 {
		n.DivMod(n, base, mod)
		digits = append(digits, base58Alphabet[mod.Int64()])
	}

	out := make([]byte, 0, zeroCount+len(digits))
	for i := 0; i < zeroCount; i++ {
		out = append(out, base58Alphabet[0])
	}
	for i := len(digits) - 1; i >= 0; i-- {
		out = append(out, digits[i])
	}
	return string(out)
}

// AmountText renders satoshis as a decimal BTC string: the integer part is
// satoshis/1e8, the fractional part is satoshis%1e8 rendered as 8 digits
// with trailing zeroes trimmed. When trimming leaves no fractional digits
// at all, the decimal point is omitted entirely (an exact-BTC amount like
// 600000000 satoshis renders as "6", not "6.0" or "6."), matching spec.md
// §8's worked example over its own more general prose.
func AmountText(satoshis uint64) string {
	const satsPerBTC = 100000000

	intPart := satoshis / satsPerBTC
	fracPart := satoshis % satsPerBTC

	intStr := uitoa(intPart)
	if fracPart == 0 {
		return intStr
	}

	var frac [8]byte
	v := fracPart
	for i := 7; i >= 0; i-- {
		frac[i] = byte('0' + v%10)
		v /= 10
	}
	end := 8
	for end > 1 && frac[end-1] == '0' {
		end--
	}
	return intStr + "." + string(frac[:end])
}

func uitoa(v uint64) string {
	if v == 0 {
		return "0"
	}
	var buf [20]byte
	i := len(buf)
	for v > 0 {
		i--
		buf[i] = byte('0' + v%10)
		v /= 10
	}
	return string(buf[i:])
}
