package btcaddr

import (
	"math/big"
	"testing"

	"ironkey.dev/walletcore/hashcore"
)

// TestBase58CheckEncodeRoundTripsChecksum derives version||hash||checksum by
// hand and checks that decoding the produced string (via the same base-58
// alphabet, inverted) reproduces the same bytes -- a self-consistent vector
// rather than a literal address string.
func TestBase58CheckEncodeRoundTripsChecksum(t *testing.T) {
	var hash [20]byte
	for i := range hash {
		hash[i] = byte(i * 13)
	}

	addr := Base58CheckEncode(0x00, hash)
	if len(addr) == 0 {
		t.Fatalf("Base58CheckEncode returned empty string")
	}

	decoded := base58Decode(addr)
	if len(decoded) != 1+20+4 {
		t.Fatalf("decoded length = %d, want 25", len(decoded))
	}
	if decoded[0] != 0x00 {
		t.Fatalf("decoded version = %#x, want 0x00", decoded[0])
	}
	var gotHash [20]byte
	copy(gotHash[:], decoded[1:21])
	if gotHash != hash {
		t.Fatalf("decoded hash = %x, want %x", gotHash, hash)
	}

	payload := decoded[:21]
	wantChecksum := hashcore.DoubleSHA256(payload)
	var gotChecksum [4]byte
	copy(gotChecksum[:], decoded[21:25])
	if gotChecksum != [4]byte{wantChecksum[0], wantChecksum[1], wantChecksum[2], wantChecksum[3]} {
		t.Fatalf("decoded checksum = %x, want %x", gotChecksum, wantChecksum[:4])
	}
}

func TestBase58CheckEncodeLeadingZeroVersionPreservesLeadingOne(t *testing.T) {
	var hash [20]byte
	addr := Base58CheckEncode(0x00, hash)
	if addr[0] != '1' {
		t.Fatalf("Base58CheckEncode(0x00, zero-hash)[0] = %c, want '1' (leading zero octet)", addr[0])
	}
}

func TestBase58CheckEncodeDiffersByVersion(t *testing.T) {
	var hash [20]byte
	for i := range hash {
		hash[i] = byte(i)
	}
	a := Base58CheckEncode(0x00, hash)
	b := Base58CheckEncode(0x05, hash)
	if a == b {
		t.Fatalf("different version octets produced the same address")
	}
}

func TestAmountTextExactBTCOmitsDecimalPoint(t *testing.T) {
	got := AmountText(600000000)
	if got != "6" {
		t.Fatalf("AmountText(600000000) = %q, want %q", got, "6")
	}
}

func TestAmountTextTrimsTrailingZeroesWithFraction(t *testing.T) {
	got := AmountText(1234567)
	if got != "0.01234567" {
		t.Fatalf("AmountText(1234567) = %q, want %q", got, "0.01234567")
	}
}

func TestAmountTextCases(t *testing.T) {
	cases := []struct {
		sats uint64
		want string
	}{
		{0, "0"},
		{1, "0.00000001"},
		{100000000, "1"},
		{150000000, "1.5"},
		{123456789, "1.23456789"},
		{100000010, "1.0000001"},
		{2100000000000000, "21000000"},
	}
	for _, c := range cases {
		got := AmountText(c.sats)
		if got != c.want {
			t.Errorf("AmountText(%d) = %q, want %q", c.sats, got, c.want)
		}
	}
}

// base58Decode inverts base58Encode; used only by this test file to check
// Base58CheckEncode's round trip without asserting a literal address string.
func base58Decode(s string) []byte {
	var idx [256]int8
	for i := range idx {
		idx[i] = -1
	}
	for i := 0; i < len(base58Alphabet); i++ {
		idx[base58Alphabet[i]] = int8(i)
	}

	zeroCount := 0
	for i := 0; i < len(s) && s[i] == base58Alphabet[0]; i++ {
		zeroCount++
	}

	n := new(big.Int)
	base := big.NewInt(58)
	for i := zeroCount; i < len(s); i++ {
		d := idx[s[i]]
		n.Mul(n, base)
		n.Add(n, big.NewInt(int64(d)))
	}

	body := n.Bytes()
	out := make([]byte, 0, zeroCount+len(body))
	for i := 0; i < zeroCount; i++ {
		out = append(out, 0)
	}
	out = append(out, body...)
	return out
}
