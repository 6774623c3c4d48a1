package bigfield

import "testing"

// secp256k1's field prime p = 2^256 - 2^32 - 977.
var testP = U256{
	0x2F, 0xFC, 0xFF, 0xFF, 0xFE, 0xFF, 0xFF, 0xFF,
	0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF,
	0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF,
	0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF,
}

func mustParams(t *testing.T, n U256) *Params {
	t.Helper()
	p, err := NewParams(n)
	if err != nil {
		t.Fatalf("NewParams: %v", err)
	}
	return p
}

func TestCompareTotalOrder(t *testing.T) {
	a := U256{1}
	b := U256{2}
	if Compare(a[:], b[:]) != Less {
		t.Fatalf("expected Less")
	}
	if Compare(b[:], a[:]) != Greater {
		t.Fatalf("expected Greater")
	}
	if Compare(a[:], a[:]) != Equal {
		t.Fatalf("expected Equal")
	}
}

func TestIsZero(t *testing.T) {
	var z U256
	if !IsZero(z[:]) {
		t.Fatalf("expected zero")
	}
	z[17] = 1
	if IsZero(z[:]) {
		t.Fatalf("expected nonzero")
	}
}

func TestAddSubModRoundtrip(t *testing.T) {
	p := mustParams(t, testP)
	a := U256{0x10, 0x20, 0x30}
	b := U256{0x01, 0x02, 0x03}

	var sum, back U256
	p.AddMod(&sum, &a, &b)
	p.SubMod(&back, &sum, &b)
	if back != a {
		t.Fatalf("AddMod/SubMod roundtrip mismatch: got %x want %x", back, a)
	}
}

func TestMulModAgainstDirectReduction(t *testing.T) {
	p := mustParams(t, testP)
	a := U256{0x02}
	b := U256{0x03}

	var got U256
	p.MulMod(&got, &a, &b)
	want := U256{0x06}
	if got != want {
		t.Fatalf("2*3 mod p = %x, want %x", got, want)
	}
}

func TestInvertIsMultiplicativeInverse(t *testing.T) {
	p := mustParams(t, testP)
	a := U256{0x07}

	var inv, product U256
	p.Invert(&inv, &a)
	p.MulMod(&product, &a, &inv)

	one := U256{1}
	if product != one {
		t.Fatalf("a * invert(a) mod p = %x, want 1", product)
	}
}

func TestModuloSingleSubtraction(t *testing.T) {
	p := mustParams(t, testP)
	// p + 5 is < 2p and >= p, forcing the conditional subtraction path.
	a := testP
	a[0] += 5
	var got U256
	p.Modulo(&got, &a)
	want := U256{5}
	if got != want {
		t.Fatalf("Modulo(p+5) = %x, want %x", got, want)
	}
}

func TestNewParamsRejectsSmallModulus(t *testing.T) {
	var small U256
	small[31] = 0x7F // top bit clear -> <= 2^255
	if _, err := NewParams(small); err == nil {
		t.Fatalf("expected error for modulus <= 2^255")
	}
}

func TestNewParamsRejectsLowOctetBelowTwo(t *testing.T) {
	n := testP
	n[0] = 1
	if _, err := NewParams(n); err == nil {
		t.Fatalf("expected error for least-significant octet < 2")
	}
}
