package hmacdrbg

// State holds the running HMAC_DRBG chaining values. Security strength is
// fixed at 256 bits (SHA-256); prediction resistance is never requested and
// the reseed counter is not tracked, matching spec.md §4.4's narrowed
// instantiate/reseed/generate trio.
type State struct {
	K [32]byte
	V [32]byte
}

// Instantiate seeds a new DRBG state from seedMaterial, which must be
// non-absent (pass an empty, non-nil slice rather than nil if the caller
// genuinely has no seed material beyond the implicit K/V reset).
func Instantiate(seedMaterial []byte) *State {
	s := &State{}
	for i := range s.K {
		s.K[i] = 0x00
	}
	for i := range s.V {
		s.V[i] = 0x01
	}
	if seedMaterial == nil {
		seedMaterial = []byte{}
	}
	s.update(seedMaterial)
	return s
}

// Reseed mixes reseedMaterial into the running state via the update function.
func (s *State) Reseed(reseedMaterial []byte) {
	if reseedMaterial == nil {
		reseedMaterial = []byte{}
	}
	s.update(reseedMaterial)
}

// Generate fills out with pseudo-random bytes, applying the update function
// before and after the output loop.
//
// additionalInput follows NIST SP 800-90A's absent/empty distinction: pass
// nil for "no additional input was supplied" and a non-nil, possibly
// zero-length slice for "the caller explicitly supplied empty additional
// input" -- the two are not equivalent. A nil additionalInput skips the
// pre-output update step but the post-output update still runs (per the
// generate algorithm's unconditional step 3), contributing no data either
// way.
func (s *State) Generate(out []byte, additionalInput []byte) {
	if additionalInput != nil {
		s.update(additionalInput)
	}
	produced := 0
	for produced < len(out) {
		s.V = HMACSHA256(s.K[:], s.V[:])
		produced += copy(out[produced:], s.V[:])
	}
	s.update(additionalInput)
}

// update implements the HMAC_DRBG update function: K := HMAC_K(V||0x00||data);
// V := HMAC_K(V); if data is non-absent, K := HMAC_K(V||0x01||data);
// V := HMAC_K(V).
func (s *State) update(providedData []byte) {
	buf := make([]byte, 0, 32+1+len(providedData))
	buf = append(buf, s.V[:]...)
	buf = append(buf, 0x00)
	buf = append(buf, providedData...)
	s.K = HMACSHA256(s.K[:], buf)
	s.V = HMACSHA256(s.K[:], s.V[:])

	if providedData == nil {
		return
	}

	buf = buf[:0]
	buf = append(buf, s.V[:]...)
	buf = append(buf, 0x01)
	buf = append(buf, providedData...)
	s.K = HMACSHA256(s.K[:], buf)
	s.V = HMACSHA256(s.K[:], s.V[:])
}
