package wspend

import "encoding/binary"

// Input is a transaction input: a spendable value being consumed.
type Input struct {
	UniquePubkey UniquePubkey `msgpack:"unique_pubkey"`
	Amount       NanoTokens   `msgpack:"amount"`
}

// Output is a transaction output: a new spendable value being created.
type Output struct {
	UniquePubkey UniquePubkey `msgpack:"unique_pubkey"`
	Amount       NanoTokens   `msgpack:"amount"`
}

// Transaction moves value from a set of inputs to a set of outputs.
//
// Spend records never embed transactions in their signable bytes;
// they embed the transaction hash,
// keeping the signed payload size independent of transaction size.
type Transaction struct {
	Inputs  []Input  `msgpack:"inputs"`
	Outputs []Output `msgpack:"outputs"`
}

// AppendBytes appends the canonical byte form of t to dst.
// Both lists are length-prefixed so that no two distinct
// transactions share a byte representation.
func (t Transaction) AppendBytes(dst []byte) []byte {
	dst = binary.BigEndian.AppendUint32(dst, uint32(len(t.Inputs)))
	for _, in := range t.Inputs {
		dst = append(dst, in.UniquePubkey[:]...)
		dst = in.Amount.AppendBytes(dst)
	}

	dst = binary.BigEndian.AppendUint32(dst, uint32(len(t.Outputs)))
	for _, out := range t.Outputs {
		dst = append(dst, out.UniquePubkey[:]...)
		dst = out.Amount.AppendBytes(dst)
	}

	return dst
}

// Hash returns the hash of the canonical byte form of t.
func (t Transaction) Hash() Hash {
	return HashBytes(t.AppendBytes(nil))
}
