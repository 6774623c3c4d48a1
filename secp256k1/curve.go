// Package secp256k1 implements the secp256k1 curve operations spec.md §4.5
// (C5) needs on top of bigfield: base-point scalar multiplication via a
// branch-free double-and-always-add Jacobian ladder, and ECDSA signing.
//
// The field-parameter toggling the original firmware does with
// set_field_to_p/set_field_to_n becomes, in idiomatic Go, two distinct
// *bigfield.Params values (FieldP, FieldN) passed explicitly to whichever
// arithmetic the caller needs -- no hidden global "current field" state.
package secp256k1

import (
	"encoding/hex"

	"ironkey.dev/walletcore/bigfield"
)

// FieldP is secp256k1's base field, modulus p = 2^256 - 2^32 - 977.
// FieldN is the group order n.
var (
	FieldP *bigfield.Params
	FieldN *bigfield.Params
)

// AffinePoint is a curve point in affine coordinates.
type AffinePoint struct {
	X, Y bigfield.U256
}

// JacobianPoint is a curve point in Jacobian projective coordinates; Z==0
// represents the point at infinity.
type JacobianPoint struct {
	X, Y, Z bigfield.U256
}

var baseG AffinePoint

// G returns the secp256k1 base point.
func G() AffinePoint { return baseG }

func init() {
	p := mustLEFromHex("FFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFEFFFFFC2F")
	n := mustLEFromHex("FFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFEBAAEDCE6AF48A03BBFD25E8CD0364141")

	var err error
	FieldP, err = bigfield.NewParams(p)
	if err != nil {
		panic("secp256k1: invalid p: " + err.Error())
	}
	FieldN, err = bigfield.NewParams(n)
	if err != nil {
		panic("secp256k1: invalid n: " + err.Error())
	}

	baseG = AffinePoint{
		X: mustLEFromHex("79BE667EF9DCBBAC55A06295CE870B07029BFCDB2DCE28D959F2815B16F81798"),
		Y: mustLEFromHex("483ADA7726A3C4655DA4FBFC0E1108A8FD17B448A68554199C47D08FFB10D4B8"),
	}
}

// mustLEFromHex decodes a 64-character big-endian hex literal into a
// little-endian U256; used only at init time with constant literals.
func mustLEFromHex(s string) bigfield.U256 {
	b, err := hex.DecodeString(s)
	if err != nil || len(b) != 32 {
		panic("secp256k1: bad constant literal " + s)
	}
	var out bigfield.U256
	for i := 0; i < 32; i++ {
		out[i] = b[31-i]
	}
	return out
}

func mulP(a, b bigfield.U256) bigfield.U256 {
	var r bigfield.U256
	FieldP.MulMod(&r, &a, &b)
	return r
}

func addP(a, b bigfield.U256) bigfield.U256 {
	var r bigfield.U256
	FieldP.AddMod(&r, &a, &b)
	return r
}

func subP(a, b bigfield.U256) bigfield.U256 {
	var r bigfield.U256
	FieldP.SubMod(&r, &a, &b)
	return r
}

func sqrP(a bigfield.U256) bigfield.U256 { return mulP(a, a) }

// timesSmall computes k*a for a small non-secret compile-time constant k via
// repeated doubling/addition; the loop trip count never depends on secret
// data, only on the fixed curve-formula constant passed at each call site.
func timesSmall(a bigfield.U256, k int) bigfield.U256 {
	r := bigfield.U256{}
	for i := 0; i < k; i++ {
		r = addP(r, a)
	}
	return r
}

func mask(cond bool) byte {
	if cond {
		return 0xFF
	}
	return 0x00
}

func selectU256(sel byte, a, b bigfield.U256) bigfield.U256 {
	var out bigfield.U256
	for i := range out {
		out[i] = (a[i] &^ sel) | (b[i] & sel)
	}
	return out
}

func selectPoint(sel byte, a, b JacobianPoint) JacobianPoint {
	return JacobianPoint{
		X: selectU256(sel, a.X, b.X),
		Y: selectU256(sel, a.Y, b.Y),
		Z: selectU256(sel, a.Z, b.Z),
	}
}

// pointDouble computes 2*p on a curve with a==0 (secp256k1's b=7, a=0),
// using the dbl-2009-l formulas. Z3 := 2*Y1*Z1 vanishes naturally whenever
// p is already the point at infinity (Z1==0), so no separate infinity check
// is needed here.
func pointDouble(p JacobianPoint) JacobianPoint {
	a := sqrP(p.X)
	b := sqrP(p.Y)
	c := sqrP(b)
	xPlusB := addP(p.X, b)
	d := timesSmall(subP(subP(sqrP(xPlusB), a), c), 2)
	e := timesSmall(a, 3)
	f := sqrP(e)
	x3 := subP(f, timesSmall(d, 2))
	y3 := subP(mulP(e, subP(d, x3)), timesSmall(c, 8))
	z3 := timesSmall(mulP(p.Y, p.Z), 2)
	return JacobianPoint{X: x3, Y: y3, Z: z3}
}

// pointAdd computes p1+p2 in Jacobian coordinates using the standard
// add-1998-cmo formulas, then branch-free-selects the point-at-infinity
// operand cases (either input is infinity, or the inputs are equal, or
// the inputs are inverses of one another) instead of branching on them,
// per spec.md §4.5's "folded into constant-time branch-free selection"
// requirement.
func pointAdd(p1, p2 JacobianPoint) JacobianPoint {
	z1z1 := sqrP(p1.Z)
	z2z2 := sqrP(p2.Z)
	u1 := mulP(p1.X, z2z2)
	u2 := mulP(p2.X, z1z1)
	z1Cubed := mulP(z1z1, p1.Z)
	z2Cubed := mulP(z2z2, p2.Z)
	s1 := mulP(p1.Y, z2Cubed)
	s2 := mulP(p2.Y, z1Cubed)

	h := subP(u2, u1)
	r := subP(s2, s1)

	hh := sqrP(h)
	hhh := mulP(hh, h)
	u1hh := mulP(u1, hh)

	x3 := subP(subP(sqrP(r), hhh), timesSmall(u1hh, 2))
	y3 := subP(mulP(r, subP(u1hh, x3)), mulP(s1, hhh))
	z3 := mulP(mulP(h, p1.Z), p2.Z)

	added := JacobianPoint{X: x3, Y: y3, Z: z3}
	doubled := pointDouble(p1)
	infinity := JacobianPoint{}

	sameX := bigfield.IsZero(h[:])
	sameY := bigfield.IsZero(r[:])
	z1Inf := bigfield.IsZero(p1.Z[:])
	z2Inf := bigfield.IsZero(p2.Z[:])

	result := selectPoint(mask(sameX && !sameY), added, infinity)
	result = selectPoint(mask(sameX && sameY), result, doubled)
	result = selectPoint(mask(z2Inf), result, p1)
	result = selectPoint(mask(z1Inf), result, p2)
	return result
}

// toAffine converts a Jacobian point to affine coordinates. A Jacobian
// infinity (Z==0) maps to the sentinel affine point (0,0): FieldP.Invert
// of zero is zero by this package's Fermat-ladder convention, which makes
// the resulting X and Y both zero -- exactly the "r == 0" signal
// PointMultiply callers must already check for.
func toAffine(p JacobianPoint) AffinePoint {
	var zInv bigfield.U256
	FieldP.Invert(&zInv, &p.Z)
	zInv2 := sqrP(zInv)
	zInv3 := mulP(zInv2, zInv)
	return AffinePoint{X: mulP(p.X, zInv2), Y: mulP(p.Y, zInv3)}
}

// PointMultiply computes k*pt via a left-to-right, branch-free
// double-and-always-add ladder over Jacobian coordinates: every bit of k
// causes exactly one doubling and one addition, with the addition's result
// discarded (via constant-time select) rather than skipped when the bit is
// zero, per spec.md §4.5.
func PointMultiply(pt AffinePoint, k bigfield.U256) AffinePoint {
	one := bigfield.U256{1}
	base := JacobianPoint{X: pt.X, Y: pt.Y, Z: one}
	acc := JacobianPoint{} // point at infinity

	for bit := 255; bit >= 0; bit-- {
		acc = pointDouble(acc)
		added := pointAdd(acc, base)
		byteIdx := bit / 8
		bitIdx := uint(bit % 8)
		b := (k[byteIdx] >> bitIdx) & 1
		acc = selectPoint(mask(b == 1), acc, added)
	}
	return toAffine(acc)
}
