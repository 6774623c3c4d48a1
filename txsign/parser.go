// Package txsign implements the streaming transaction parser/signer
// spec.md §4.8 (C8): grammar validation over a checkpointing reader feeding
// dual SHA-256 accumulators, per-output amount/address formatting, and
// DER-encoded ECDSA signing of the resulting sig-hash.
package txsign

import (
	"fmt"
	"io"

	"ironkey.dev/walletcore/btcaddr"
)

// MaxTransactionBytes is the default cap on total transaction length,
// matching the original firmware's fixed parser-scratch budget (spec.md
// §9, Open Question (a)); NewParser lets callers override it.
const MaxTransactionBytes = 200000

// MaxOutputsBuffer is the default size of the small, fixed-capacity
// outputs buffer the confirmation dialogue holds in volatile memory
// (spec.md §3's "small fixed maximum", left unspecified numerically --
// resolved here, see DESIGN.md).
const MaxOutputsBuffer = 32

const (
	// Version and hash type are the octets 01 00 00 00 on the wire, which
	// readU32LE decodes as 1.
	expectedVersion  = 1
	p2pkhScriptLen   = 0x19
	expectedLocktime = 0
	expectedHashType = 1

	// maxSatoshiSupply is 21,000,000 BTC in satoshis: the ordinary Bitcoin
	// consensus ceiling, used here to bound InvalidAmount (spec.md's
	// taxonomy lists the code but does not spell out its trigger).
	maxSatoshiSupply = 21_000_000 * 100_000_000
)

// Output is one parsed transaction output: the raw amount and hash, plus
// the display text C9 derives from them.
type Output struct {
	AmountSatoshis uint64
	AmountText     string
	AddressText    string
	Hash160        [20]byte
}

// Transaction is the result of a successful Parse: the accepted outputs,
// plus the two finalised accumulator hashes.
type Transaction struct {
	Outputs []Output
	SigHash [32]byte
	TxHash  [32]byte
}

// Parser validates and streams one standard transaction per spec.md §4.8's
// grammar.
type Parser struct {
	maxLen     int
	maxOutputs int
}

// NewParser builds a Parser. maxLen <= 0 selects MaxTransactionBytes;
// maxOutputs <= 0 selects MaxOutputsBuffer.
func NewParser(maxLen, maxOutputs int) *Parser {
	if maxLen <= 0 {
		maxLen = MaxTransactionBytes
	}
	if maxOutputs <= 0 {
		maxOutputs = MaxOutputsBuffer
	}
	return &Parser{maxLen: maxLen, maxOutputs: maxOutputs}
}

// Parse reads exactly declaredLength bytes from r, validating the full
// grammar, and returns the resulting Transaction.
func (p *Parser) Parse(r io.Reader, declaredLength int) (*Transaction, error) {
	if declaredLength < 0 || declaredLength > p.maxLen {
		return nil, txerr(TooLarge, fmt.Sprintf("declared length %d exceeds cap %d", declaredLength, p.maxLen))
	}

	c := newCursor(r, declaredLength)

	version, err := c.readU32LE()
	if err != nil {
		return nil, err
	}
	if version != expectedVersion {
		return nil, txerr(InvalidFormat, "bad version magic")
	}

	inputCount, err := c.readVarint()
	if err != nil {
		return nil, err
	}
	if inputCount < 1 || inputCount > 0xFFFE {
		return nil, txerr(TooManyInputs, "input count out of range")
	}

	for i := uint64(0); i < inputCount; i++ {
		prevRef, err := c.readN(36)
		if err != nil {
			return nil, err
		}
		if isNullOutpoint(prevRef) {
			return nil, txerr(InvalidReference, "null previous-output reference")
		}

		scriptLen, err := c.readVarint()
		if err != nil {
			return nil, err
		}
		c.suppressTx = true
		_, err = c.readVarBytes(scriptLen)
		c.suppressTx = false
		if err != nil {
			return nil, err
		}

		if _, err := c.readU32LE(); err != nil { // sequence
			return nil, err
		}
	}

	outputCountByte, err := c.readByte()
	if err != nil {
		return nil, err
	}
	outputCount := int(outputCountByte)
	if outputCount < 1 || outputCount > 0xFC {
		return nil, txerr(TooManyOutputs, "output count out of range")
	}

	outputs := make([]Output, 0, outputCount)
	for i := 0; i < outputCount; i++ {
		amount, err := c.readU64LE()
		if err != nil {
			return nil, err
		}
		if amount > maxSatoshiSupply {
			return nil, txerr(InvalidAmount, "amount exceeds maximum possible supply")
		}

		scriptLen, err := c.readVarint()
		if err != nil {
			return nil, err
		}
		if scriptLen != p2pkhScriptLen {
			return nil, txerr(NonStandard, "output script length is not the standard P2PKH length")
		}
		script, err := c.readN(25)
		if err != nil {
			return nil, err
		}
		hash160, ok := parseP2PKHScript(script)
		if !ok {
			return nil, txerr(NonStandard, "output script is not OP_DUP OP_HASH160 <20> OP_EQUALVERIFY OP_CHECKSIG")
		}

		if len(outputs) >= p.maxOutputs {
			return nil, txerr(TooManyOutputs, "outputs buffer full")
		}

		outputs = append(outputs, Output{
			AmountSatoshis: amount,
			AmountText:     btcaddr.AmountText(amount),
			AddressText:    btcaddr.Base58CheckEncode(0x00, hash160),
			Hash160:        hash160,
		})
	}

	locktime, err := c.readU32LE()
	if err != nil {
		return nil, err
	}
	if locktime != expectedLocktime {
		return nil, txerr(NonStandard, "nonzero locktime")
	}

	hashType, err := c.readU32LE()
	if err != nil {
		return nil, err
	}
	if hashType != expectedHashType {
		return nil, txerr(NonStandard, "unsupported hash type")
	}

	if !c.finished() {
		return nil, txerr(InvalidFormat, "trailing bytes after declared length")
	}

	return &Transaction{
		Outputs: outputs,
		SigHash: c.sigHash(),
		TxHash:  c.txHash(),
	}, nil
}

// isNullOutpoint reports whether the 36-octet previous-output reference is
// the coinbase marker (all-zero txid, index 0xFFFFFFFF) -- invalid for a
// transaction this wallet is asked to sign, since it can only ever be
// spending a real prior output.
func isNullOutpoint(ref []byte) bool {
	for _, b := range ref[:32] {
		if b != 0 {
			return false
		}
	}
	return ref[32] == 0xFF && ref[33] == 0xFF && ref[34] == 0xFF && ref[35] == 0xFF
}

// parseP2PKHScript checks script against the one standard pattern spec.md
// §1's Non-goals permit (0x76 0xA9 0x14 <20 octets> 0x88 0xAC) and, on
// match, returns the embedded HASH160.
func parseP2PKHScript(script []byte) (hash [20]byte, ok bool) {
	if len(script) != 25 {
		return hash, false
	}
	if script[0] != 0x76 || script[1] != 0xA9 || script[2] != 0x14 {
		return hash, false
	}
	if script[23] != 0x88 || script[24] != 0xAC {
		return hash, false
	}
	copy(hash[:], script[3:23])
	return hash, true
}
