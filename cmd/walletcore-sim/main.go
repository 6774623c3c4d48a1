// Command walletcore-sim is the operator-facing harness that wires the
// whole device core together: open a simulated device, create or load a
// wallet, parse a transaction, run the confirmation dialogue, and sign.
// Grounded on the pack's cobra+logrus CLI idiom (zcash-lightwalletd's
// cmd/root.go) rather than the teacher's own hand-rolled flag.FlagSet
// subcommands, per SPEC_FULL.md §2.
package main

import (
	"os"

	"github.com/sirupsen/logrus"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		logrus.WithError(err).Error("walletcore-sim exited with an error")
		os.Exit(1)
	}
}
