package main

import (
	"encoding/hex"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"ironkey.dev/walletcore/nvstore"
)

var log = logrus.New()

var (
	dbPath string
	keyHex string
)

var rootCmd = &cobra.Command{
	Use:   "walletcore-sim",
	Short: "Simulated hardware Bitcoin wallet core",
	Long: `walletcore-sim drives the device-side signing core (crypto
primitives, encrypted storage, transaction parser/signer, PRNG) against a
bbolt-backed simulated non-volatile medium, standing in for the physical
appliance and its out-of-scope collaborators.`,
}

func init() {
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "./walletcore-sim.bolt", "path to the simulated non-volatile medium file")
	rootCmd.PersistentFlags().StringVar(&keyHex, "key-hex", "", "64 hex chars: 32-byte session encryption key (AES-128 data key || tweak key)")

	rootCmd.AddCommand(newWalletCmd)
	rootCmd.AddCommand(loadWalletCmd)
	rootCmd.AddCommand(parseTxCmd)
	rootCmd.AddCommand(signCmd)
}

func sessionKey() (nvstore.Key, error) {
	if keyHex == "" {
		return nvstore.Key{}, fmt.Errorf("--key-hex is required")
	}
	raw, err := hex.DecodeString(keyHex)
	if err != nil {
		return nvstore.Key{}, fmt.Errorf("--key-hex: %w", err)
	}
	if len(raw) != 32 {
		return nvstore.Key{}, fmt.Errorf("--key-hex must decode to 32 bytes, got %d", len(raw))
	}
	var k nvstore.Key
	copy(k[:], raw)
	return k, nil
}
