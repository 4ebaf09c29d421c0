package wspend

import "errors"

// ErrInvalidTransactionHash is returned by [SignedSpend.Verify] when the
// spend's embedded transaction hash does not match the hash being
// verified against.
// The spend is rejected for this context only;
// it may still be valid against a different transaction,
// so by itself this is not fraud evidence.
var ErrInvalidTransactionHash = errors.New("spend transaction hash does not match the expected transaction hash")

// InvalidSpendSignatureError is returned by [SignedSpend.Verify]
// when the signature does not validate.
// The spend is rejected outright.
type InvalidSpendSignatureError struct {
	Key UniquePubkey
}

func (e InvalidSpendSignatureError) Error() string {
	return "invalid spend signature for " + e.Key.String()
}
