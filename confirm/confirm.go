// Package confirm declares the human-in-the-loop collaborator spec.md §6
// names but places out of scope: the physical accept/cancel buttons, the
// LCD/OLED strings, and the output-list display. The core (txsign,
// walletrec) only ever consumes a confirm.Callbacks; it never implements
// one. Production hosts and this repo's devicesim test harness each
// supply their own.
package confirm

// CommandKind enumerates the command kinds spec.md §6's user_denied
// callback discriminates between, matching the taxonomy named there.
type CommandKind int

const (
	NewWallet CommandKind = iota
	NewAddress
	SignTransaction
	Format
	ChangeName
	Backup
	Restore
	ChangeKey
	GetMasterKey
	DeleteWallet
)

func (k CommandKind) String() string {
	switch k {
	case NewWallet:
		return "new-wallet"
	case NewAddress:
		return "new-address"
	case SignTransaction:
		return "sign-transaction"
	case Format:
		return "format"
	case ChangeName:
		return "change-name"
	case Backup:
		return "backup"
	case Restore:
		return "restore"
	case ChangeKey:
		return "change-key"
	case GetMasterKey:
		return "get-master-key"
	case DeleteWallet:
		return "delete-wallet"
	default:
		return "unknown"
	}
}

// StringSet and StringSpec parameterise the Get*String* callbacks:
// spec.md §6 describes these as an opaque (set, spec, pos) lookup into
// device-resident text the core never owns.
type StringSet int

type StringSpec int

// Callbacks is the confirmation/display collaborator spec.md §6 defines.
// The core calls these synchronously; NewOutputSeen and UserDenied are the
// only two whose return values it inspects.
type Callbacks interface {
	// NewOutputSeen presents one parsed (amount, address) pair to the user
	// and reports true if the outputs buffer has overflowed.
	NewOutputSeen(amountText, addressText string) (overflow bool)

	// ClearOutputsSeen resets the display's output list between
	// confirmation dialogues.
	ClearOutputsSeen()

	// UserDenied blocks until the user accepts or cancels the named
	// operation, reporting true when the user cancelled.
	UserDenied(kind CommandKind) (denied bool)

	// DisplayAddress shows a receive address alongside its signature/
	// pubkey-count multisig parameters (always 1/1 for this spec's
	// single-signature scope).
	DisplayAddress(text string, numSigs, numPubkeys int)

	// DisplayOTP and ClearOTP drive the one-time-passcode confirmation
	// used by operations spec.md §6 classes as needing an extra factor.
	DisplayOTP(command CommandKind, text string)
	ClearOTP()

	// GetString and GetStringLength look up device-resident display text
	// (error messages, menu strings) by (set, spec, pos).
	GetString(set StringSet, spec StringSpec, pos int) string
	GetStringLength(set StringSet, spec StringSpec) int
}
