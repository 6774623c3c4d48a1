package secp256k1

import (
	"bytes"
	"testing"

	"ironkey.dev/walletcore/bigfield"
)

func scalarFromHex(t *testing.T, s string) bigfield.U256 {
	t.Helper()
	// pad to 64 hex chars (32 bytes), left-padding with zeroes
	for len(s) < 64 {
		s = "0" + s
	}
	return mustLEFromHex(s)
}

func TestPointMultiplyKnownAnswers(t *testing.T) {
	cases := []struct {
		k    string
		x, y string
	}{
		{
			"1",
			"79be667ef9dcbbac55a06295ce870b07029bfcdb2dce28d959f2815b16f81798"[:64],
			"483ada7726a3c4655da4fbfc0e1108a8fd17b448a68554199c47d08ffb10d4b8"[:64],
		},
		{
			"2",
			"c6047f9441ed7d6d3045406e95c07cd85c778e4b8cef3ca7abac09b95c709ee5",
			"1ae168fea63dc339a3c58419466ceaeef7f632653266d0e1236431a950cfe52a"[:64],
		},
		{
			"5",
			"2f8bde4d1a07209355b4a7250a5c5128e88b84bddc619ab7cba8d569b240efe4"[:64],
			"d8ac222636e5e3d6d4dba9dda6c9c426f788271bab0d6840dca87d3aa6ac62d6"[:64],
		},
		{
			"c0ffee1234567890abcdef",
			"d5c9b2b593257c8ae5386baa82dfe4a9c7ab06af70e455eab4b0cdf2bccfa98e"[:64],
			"1f79a27ffab507d9f09d61860e586b4850f56daa8386b80df420b5e4404b813e"[:64],
		},
	}

	for _, c := range cases {
		k := scalarFromHex(t, c.k)
		got := PointMultiply(G(), k)
		wantX := scalarFromHex(t, c.x)
		wantY := scalarFromHex(t, c.y)
		if !bytes.Equal(got.X[:], wantX[:]) {
			t.Errorf("k=%s: X = %x, want %x", c.k, got.X, wantX)
		}
		if !bytes.Equal(got.Y[:], wantY[:]) {
			t.Errorf("k=%s: Y = %x, want %x", c.k, got.Y, wantY)
		}
	}
}

func TestPointMultiplyOneIsIdentity(t *testing.T) {
	k := bigfield.U256{1}
	got := PointMultiply(G(), k)
	if got.X != baseG.X || got.Y != baseG.Y {
		t.Fatalf("1*G != G")
	}
}

func TestPointMultiplyByOrderIsInfinity(t *testing.T) {
	got := PointMultiply(G(), FieldN.N)
	// affine sentinel for infinity is (0,0); see toAffine's doc comment.
	if !bigfield.IsZero(got.X[:]) || !bigfield.IsZero(got.Y[:]) {
		t.Fatalf("n*G did not map to the infinity sentinel: got (%x, %x)", got.X, got.Y)
	}
}

func TestPointDoubleMatchesAddToSelf(t *testing.T) {
	one := bigfield.U256{1}
	base := JacobianPoint{X: baseG.X, Y: baseG.Y, Z: one}
	doubled := pointDouble(base)
	added := pointAdd(base, base)
	if doubled.X != added.X || doubled.Y != added.Y || doubled.Z != added.Z {
		t.Fatalf("pointDouble(G) != pointAdd(G, G)")
	}
}
