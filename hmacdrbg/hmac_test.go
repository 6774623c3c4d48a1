package hmacdrbg

import (
	"bytes"
	"encoding/hex"
	"testing"
)

func mustHex(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	if err != nil {
		t.Fatalf("bad hex literal: %v", err)
	}
	return b
}

// RFC 4231 test cases 1, 2 and 6 (two keys shorter than the block size, then
// a 131-byte key longer than the block size).
func TestHMACSHA256RFC4231(t *testing.T) {
	cases := []struct {
		key, data, want string
	}{
		{
			"0b0b0b0b0b0b0b0b0b0b0b0b0b0b0b0b0b0b0b0b",
			"4869205468657265",
			"b0344c61d8db38535ca8afceaf0bf12b881dc200c9833da726e9376c2e32cff7",
		},
		{
			"4a656665",
			"7768617420646f2079612077616e7420666f72206e6f7468696e673f",
			"5bdcc146bf60754e6a042426089575c75a003f089d2739839dec58b964ec3843",
		},
		{
			hexRepeat("aa", 131),
			"54657374205573696e67204c6172676572205468616e20426c6f636b2d53697a65204b6579202d2048617368204b6579204669727374",
			"60e431591ee0b67f0d8a26aacbf5b77f8e0bc6213728c5140546040f0ee37f54",
		},
	}
	for i, c := range cases {
		got := HMACSHA256(mustHex(t, c.key), mustHex(t, c.data))
		want := mustHex(t, c.want)
		if !bytes.Equal(got[:], want) {
			t.Errorf("case %d: HMACSHA256 = %x, want %x", i, got, want)
		}
	}
}

func TestHMACSHA512RFC4231(t *testing.T) {
	cases := []struct {
		key, data, want string
	}{
		{
			"0b0b0b0b0b0b0b0b0b0b0b0b0b0b0b0b0b0b0b0b",
			"4869205468657265",
			"87aa7cdea5ef619d4ff0b4241a1d6cb02379f4e2ce4ec2787ad0b30545e17cdedaa833b7d6b8a702038b274eaea3f4e4be9d914eeb61f1702e696c203a126854",
		},
		{
			"4a656665",
			"7768617420646f2079612077616e7420666f72206e6f7468696e673f",
			"164b7a7bfcf819e2e395fbe73b56e0a387bd64222e831fd610270cd7ea2505549758bf75c05a994a6d034f65f8f0e6fdcaeab1a34d4a6b4b636e070a38bce737",
		},
		{
			hexRepeat("aa", 131),
			"54657374205573696e67204c6172676572205468616e20426c6f636b2d53697a65204b6579202d2048617368204b6579204669727374",
			"80b24263c7c1a3ebb71493c1dd7be8b49b46d1f41b4aeec1121b013783f8f3526b56d037e05f2598bd0fd2215d6a1e5295e64f73f63f0aec8b915a985d786598",
		},
	}
	for i, c := range cases {
		got := HMACSHA512(mustHex(t, c.key), mustHex(t, c.data))
		want := mustHex(t, c.want)
		if !bytes.Equal(got[:], want) {
			t.Errorf("case %d: HMACSHA512 = %x, want %x", i, got, want)
		}
	}
}

func hexRepeat(pair string, count int) string {
	out := make([]byte, 0, len(pair)*count)
	for i := 0; i < count; i++ {
		out = append(out, pair...)
	}
	return string(out)
}
