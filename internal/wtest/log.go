// Package wtest contains helpers shared by tests across the module.
package wtest

import (
	"log/slog"
	"testing"

	"github.com/neilotoole/slogt"
)

// NewLogger returns a logger that routes through t.Log,
// so output is associated with the right (sub)test.
func NewLogger(t *testing.T) *slog.Logger {
	t.Helper()
	return slogt.New(t)
}
