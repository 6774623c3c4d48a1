package secp256k1

import "testing"

func TestSignKnownAnswer(t *testing.T) {
	d := scalarFromHex(t, "1234567890abcdef1234567890abcdef1234567890abcdef1234567890abcdef")
	k := scalarFromHex(t, "00a1b2c3d4e5f60718293a4b5c6d7e8f9a1b2c3d4e5f60718293a4b5c6d7e8f9")
	z := scalarFromHex(t, "0101010101010101010101010101010101010101010101010101010101010101")
	wantR := scalarFromHex(t, "c3003ccd0586298f2eaf9c9364718b116eecd3e12b7081fd2bb393f61997ce3b")
	wantS := scalarFromHex(t, "6e367cfcdeb0e40f23ff75a34a768ab1535773133ef44aa2f6705844d0bab65e")

	r, s, ok := Sign(z, d, k)
	if !ok {
		t.Fatalf("Sign reported failure (r or s zero) on a known-good vector")
	}
	if r != wantR {
		t.Errorf("r = %x, want %x", r, wantR)
	}
	if s != wantS {
		t.Errorf("s = %x, want %x", s, wantS)
	}
}

func TestSignRejectsZeroK(t *testing.T) {
	var zeroK [32]byte
	d := scalarFromHex(t, "1234567890abcdef1234567890abcdef1234567890abcdef1234567890abcdef")
	z := scalarFromHex(t, "0101010101010101010101010101010101010101010101010101010101010101")
	_, _, ok := Sign(z, d, zeroK)
	if ok {
		t.Fatalf("Sign succeeded with k=0, which maps Q to infinity and r to 0")
	}
}
