package walletrec

import (
	"ironkey.dev/walletcore/aes128"
	"ironkey.dev/walletcore/nvstore"
)

// MaxNameLen is the longest wallet name a record can hold.
const MaxNameLen = 31

// RecordSize is the fixed on-disk size of one wallet record: 1 valid flag
// + 1 name length + 31 name bytes + 32 wrapped wallet key + 64 KDF seed,
// padded to the next XEX block boundary.
const RecordSize = 144

const (
	offValid      = 0
	offNameLen    = 1
	offName       = 2
	offWrappedKey = offName + MaxNameLen
	offSeed       = offWrappedKey + 32
)

// record is the raw on-disk layout of one wallet record, keyed by Handle.
type record struct {
	valid      bool
	name       string
	wrappedKey [32]byte
	seed       [64]byte
}

func encodeRecord(r record) [RecordSize]byte {
	var buf [RecordSize]byte
	if r.valid {
		buf[offValid] = 1
	}
	nameBytes := []byte(r.name)
	if len(nameBytes) > MaxNameLen {
		nameBytes = nameBytes[:MaxNameLen]
	}
	buf[offNameLen] = byte(len(nameBytes))
	copy(buf[offName:offName+MaxNameLen], nameBytes)
	copy(buf[offWrappedKey:offWrappedKey+32], r.wrappedKey[:])
	copy(buf[offSeed:offSeed+64], r.seed[:])
	return buf
}

func decodeRecord(buf [RecordSize]byte) record {
	var r record
	// encodeRecord writes the valid flag as exactly 1 and leaves the padding
	// after the seed zero. A slot that was never written decrypts to
	// pseudo-random bytes, fails this check and so reads as empty.
	r.valid = buf[offValid] == 1
	for _, b := range buf[offSeed+64:] {
		if b != 0 {
			r.valid = false
		}
	}
	n := int(buf[offNameLen])
	if n > MaxNameLen {
		n = MaxNameLen
	}
	r.name = string(buf[offName : offName+n])
	copy(r.wrappedKey[:], buf[offWrappedKey:offWrappedKey+32])
	copy(r.seed[:], buf[offSeed:offSeed+64])
	return r
}

// wrapWalletKey implements the two-tier key hierarchy spec.md §3 describes
// for wallet records: the session key (already protecting every record via
// nvstore's outer XEX layer) additionally wraps the per-wallet key in
// place, as two independent AES-128-ECB blocks, the way the original
// firmware's main key decrypts the currently loaded wallet's per-wallet
// key. This is a second, inner application of the session key, distinct
// from the outer XEX pass nvstore.Store already performs on every byte of
// the record.
func wrapWalletKey(session nvstore.Key, plain [32]byte) [32]byte {
	key := aes128.ExpandKey(session.DataKeyBytes())
	var b1, b2, o1, o2 [16]byte
	copy(b1[:], plain[0:16])
	copy(b2[:], plain[16:32])
	aes128.Encrypt(&o1, &b1, &key)
	aes128.Encrypt(&o2, &b2, &key)
	var out [32]byte
	copy(out[0:16], o1[:])
	copy(out[16:32], o2[:])
	return out
}

func unwrapWalletKey(session nvstore.Key, wrapped [32]byte) [32]byte {
	key := aes128.ExpandKey(session.DataKeyBytes())
	var b1, b2, o1, o2 [16]byte
	copy(b1[:], wrapped[0:16])
	copy(b2[:], wrapped[16:32])
	aes128.Decrypt(&o1, &b1, &key)
	aes128.Decrypt(&o2, &b2, &key)
	var out [32]byte
	copy(out[0:16], o1[:])
	copy(out[16:32], o2[:])
	return out
}
