package wspend

import "bytes"

// Spend is the data signed by the [DerivedSecretKey] of the value being spent.
// It is immutable once constructed.
type Spend struct {
	// UniquePubkey of the value this spend is proving to be consumed.
	UniquePubkey UniquePubkey `msgpack:"unique_pubkey"`

	// The transaction consuming the value.
	SpentTx Transaction `msgpack:"spent_tx"`

	// Opaque tag recording why the value was spent.
	Reason Hash `msgpack:"reason"`

	// The amount of the value being spent.
	Token NanoTokens `msgpack:"token"`

	// The transaction that created the value in the first place.
	CreationTx Transaction `msgpack:"creation_tx"`
}

// AppendBytes appends the signable byte form of s to dst.
//
// The field order here is the signing contract shared by
// spenders and verifiers; it can never change.
// There is no inverse: the transactions appear only as hashes.
func (s Spend) AppendBytes(dst []byte) []byte {
	dst = append(dst, s.UniquePubkey[:]...)

	spentHash := s.SpentTx.Hash()
	dst = append(dst, spentHash[:]...)

	dst = append(dst, s.Reason[:]...)
	dst = s.Token.AppendBytes(dst)

	creationHash := s.CreationTx.Hash()
	dst = append(dst, creationHash[:]...)

	return dst
}

// ToBytes returns the signable byte form of s.
func (s Spend) ToBytes() []byte {
	return s.AppendBytes(nil)
}

// Hash returns the content-addressing handle for s.
// It is not a substitute for the signable bytes.
func (s Spend) Hash() Hash {
	return HashBytes(s.ToBytes())
}

// SignedSpend is a [Spend] together with the derived key's signature over it.
// It is immutable; once admitted it is stored unchanged, forever,
// as append-only evidence.
type SignedSpend struct {
	Spend Spend `msgpack:"spend"`

	// The derived key's signature over the spend's signable bytes.
	DerivedKeySig Signature `msgpack:"derived_key_sig"`
}

// SignSpend signs s with the derived secret key of the value being spent.
func SignSpend(s Spend, key DerivedSecretKey) SignedSpend {
	return SignedSpend{
		Spend:         s,
		DerivedKeySig: key.Sign(s.ToBytes()),
	}
}

// UniquePubkey returns the key of the value this spend consumes.
func (ss SignedSpend) UniquePubkey() UniquePubkey {
	return ss.Spend.UniquePubkey
}

// SpentTxHash returns the hash of the transaction the value is spent in.
func (ss SignedSpend) SpentTxHash() Hash {
	return ss.Spend.SpentTx.Hash()
}

// CreationTxHash returns the hash of the transaction the value was created in.
func (ss SignedSpend) CreationTxHash() Hash {
	return ss.Spend.CreationTx.Hash()
}

// Token returns the amount being spent.
func (ss SignedSpend) Token() NanoTokens {
	return ss.Spend.Token
}

// Reason returns the spend's opaque reason tag.
func (ss SignedSpend) Reason() Hash {
	return ss.Spend.Reason
}

// ToBytes returns the full byte representation of ss:
// the spend's signable bytes followed by the signature bytes.
// This is the identity used for hashing and deduplication,
// not the stored record payload.
func (ss SignedSpend) ToBytes() []byte {
	b := ss.Spend.AppendBytes(nil)
	return append(b, ss.DerivedKeySig...)
}

// Hash returns the hash of the full byte representation of ss.
func (ss SignedSpend) Hash() Hash {
	return HashBytes(ss.ToBytes())
}

// Equal reports whether ss and o have identical full byte representations.
// Two signed spends for the same key but different transactions
// are not equal, which is exactly what lets the storage layer
// keep both as double-spend evidence.
func (ss SignedSpend) Equal(o SignedSpend) bool {
	return bytes.Equal(ss.ToBytes(), o.ToBytes())
}

// Compare orders signed spends by unique pubkey alone,
// ignoring signatures and transaction content.
// The storage layer relies on this to group spends by key
// regardless of which transaction produced them.
func (ss SignedSpend) Compare(o SignedSpend) int {
	return ss.Spend.UniquePubkey.Compare(o.Spend.UniquePubkey)
}

// Verify checks that ss is internally valid
// for the transaction identified by spentTxHash.
//
// Two independent checks must both pass, each with a distinct error:
// the embedded spent-transaction hash must equal spentTxHash
// (otherwise a valid spend could be rebound to a different transaction),
// and the signature must validate over the spend's signable bytes
// under the spend's own unique pubkey.
//
// Verify says nothing about double spending;
// a conflicting-but-valid spend for the same key passes too,
// and flagging the conflict is the storage layer's job.
func (ss SignedSpend) Verify(spentTxHash Hash) error {
	if spentTxHash != ss.SpentTxHash() {
		return ErrInvalidTransactionHash
	}

	if !ss.Spend.UniquePubkey.Verify(ss.DerivedKeySig, ss.Spend.ToBytes()) {
		return InvalidSpendSignatureError{Key: ss.Spend.UniquePubkey}
	}

	return nil
}
