// Package memsan implements spec.md §5's memory-sanitisation requirement:
// on wallet-unload, the writable region holding secret material is
// overwritten with 0xFF then 0x00. A hosted Go process has no single BSS
// base and stack pointer to sweep the way the original firmware's bare-
// metal target does, so this package acts on exactly the caller-identified
// secret buffer instead, bracketed by an mlock/munlock pair so the pages
// backing it cannot be paged out to swap while they still hold a key.
package memsan

import "golang.org/x/sys/unix"

// Sanitise overwrites b in place with 0xFF then 0x00. The mlock/munlock
// calls are best-effort: some sandboxes deny CAP_IPC_LOCK, and a failure
// there must not prevent the overwrite itself from happening.
func Sanitise(b []byte) {
	if len(b) == 0 {
		return
	}
	_ = unix.Mlock(b)
	for i := range b {
		b[i] = 0xFF
	}
	for i := range b {
		b[i] = 0x00
	}
	_ = unix.Munlock(b)
}

// Sensitive is implemented by types that hold secret material and know how
// to wipe it; callers managing a Sensitive's lifetime call Sanitise instead
// of reaching into its fields directly.
type Sensitive interface {
	Sanitise()
}
