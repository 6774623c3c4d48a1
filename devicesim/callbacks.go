package devicesim

import "ironkey.dev/walletcore/confirm"

// OutputEvent records one NewOutputSeen call, for tests to assert on.
type OutputEvent struct {
	AmountText  string
	AddressText string
}

// ScriptedCallbacks is an in-memory confirm.Callbacks for tests and
// cmd/walletcore-sim: it records every displayed output and OTP string
// and answers UserDenied from a pre-scripted, per-CommandKind decision,
// defaulting to "approved" for anything not scripted.
type ScriptedCallbacks struct {
	Deny         map[confirm.CommandKind]bool
	MaxOutputs   int
	Outputs      []OutputEvent
	OTP          []string
	AddressShown []string
}

// NewScriptedCallbacks builds a ScriptedCallbacks that approves every
// command by default.
func NewScriptedCallbacks() *ScriptedCallbacks {
	return &ScriptedCallbacks{Deny: map[confirm.CommandKind]bool{}}
}

// NewOutputSeen implements confirm.Callbacks.
func (c *ScriptedCallbacks) NewOutputSeen(amountText, addressText string) bool {
	if c.MaxOutputs > 0 && len(c.Outputs) >= c.MaxOutputs {
		return true
	}
	c.Outputs = append(c.Outputs, OutputEvent{AmountText: amountText, AddressText: addressText})
	return false
}

// ClearOutputsSeen implements confirm.Callbacks.
func (c *ScriptedCallbacks) ClearOutputsSeen() { c.Outputs = nil }

// UserDenied implements confirm.Callbacks.
func (c *ScriptedCallbacks) UserDenied(kind confirm.CommandKind) bool { return c.Deny[kind] }

// DisplayAddress implements confirm.Callbacks.
func (c *ScriptedCallbacks) DisplayAddress(text string, numSigs, numPubkeys int) {
	c.AddressShown = append(c.AddressShown, text)
}

// DisplayOTP implements confirm.Callbacks.
func (c *ScriptedCallbacks) DisplayOTP(command confirm.CommandKind, text string) {
	c.OTP = append(c.OTP, text)
}

// ClearOTP implements confirm.Callbacks.
func (c *ScriptedCallbacks) ClearOTP() { c.OTP = nil }

// GetString and GetStringLength implement confirm.Callbacks with a trivial
// lookup table; production hosts supply their own device-resident text.
func (c *ScriptedCallbacks) GetString(set confirm.StringSet, spec confirm.StringSpec, pos int) string {
	return ""
}

func (c *ScriptedCallbacks) GetStringLength(set confirm.StringSet, spec confirm.StringSpec) int {
	return 0
}

var _ confirm.Callbacks = (*ScriptedCallbacks)(nil)
