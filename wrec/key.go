package wrec

import "encoding/hex"

// PrettyKey renders a raw record key for logs:
// the full hex is noisy, so only a short prefix and suffix are kept.
func PrettyKey(key []byte) string {
	const keep = 4

	if len(key) <= 2*keep {
		return hex.EncodeToString(key)
	}

	return hex.EncodeToString(key[:keep]) + ".." + hex.EncodeToString(key[len(key)-keep:])
}
