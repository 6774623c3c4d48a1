package main

import (
	"bytes"
	"encoding/hex"
	"strconv"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"ironkey.dev/walletcore/devicesim"
	"ironkey.dev/walletcore/walletrec"
)

func openDevice() (*devicesim.Device, error) {
	return devicesim.NewDevice(dbPath, devicesim.Config{})
}

func unlockDevice(d *devicesim.Device) error {
	key, err := sessionKey()
	if err != nil {
		return err
	}
	return d.Unlock(key)
}

func parseHandle(s string) (walletrec.Handle, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	return walletrec.Handle(n), nil
}

var newWalletCmd = &cobra.Command{
	Use:   "new-wallet <name>",
	Short: "Create a new wallet record and print its handle",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := openDevice()
		if err != nil {
			return err
		}
		defer d.Close()
		if err := unlockDevice(d); err != nil {
			return err
		}

		h, err := d.Wallets.Create(args[0])
		if err != nil {
			return err
		}
		log.WithFields(logrus.Fields{
			"handle": int(h),
			"name":   args[0],
		}).Info("wallet created")
		return nil
	},
}

var loadWalletCmd = &cobra.Command{
	Use:   "load <handle>",
	Short: "Load a wallet record by handle",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		h, err := parseHandle(args[0])
		if err != nil {
			return err
		}

		d, err := openDevice()
		if err != nil {
			return err
		}
		defer d.Close()
		if err := unlockDevice(d); err != nil {
			return err
		}

		w, err := d.Wallets.Load(h)
		if err != nil {
			return err
		}
		log.WithFields(logrus.Fields{
			"handle": int(w.Handle),
			"name":   w.Name,
		}).Info("wallet loaded")
		return nil
	},
}

var parseTxCmd = &cobra.Command{
	Use:   "parse-tx <hex>",
	Short: "Parse a raw transaction and print its outputs",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, err := hex.DecodeString(args[0])
		if err != nil {
			return err
		}

		d, err := openDevice()
		if err != nil {
			return err
		}
		defer d.Close()

		tx, err := d.Parser.Parse(bytes.NewReader(raw), len(raw))
		if err != nil {
			return err
		}
		for i, out := range tx.Outputs {
			log.WithFields(logrus.Fields{
				"index":   i,
				"amount":  out.AmountText,
				"address": out.AddressText,
			}).Info("output")
		}
		return nil
	},
}

var signCmd = &cobra.Command{
	Use:   "sign <handle> <tx-hex>",
	Short: "Load a wallet, parse a transaction, confirm and sign it",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		h, err := parseHandle(args[0])
		if err != nil {
			return err
		}
		raw, err := hex.DecodeString(args[1])
		if err != nil {
			return err
		}

		d, err := openDevice()
		if err != nil {
			return err
		}
		defer d.Close()
		if err := unlockDevice(d); err != nil {
			return err
		}
		if _, err := d.Wallets.Load(h); err != nil {
			return err
		}

		signed, err := d.SignTransaction(bytes.NewReader(raw), len(raw), 0, 0x01)
		if err != nil {
			return err
		}
		log.WithFields(logrus.Fields{
			"signature": hex.EncodeToString(signed.Signature),
			"outputs":   len(signed.Tx.Outputs),
		}).Info("transaction signed")
		return nil
	},
}
