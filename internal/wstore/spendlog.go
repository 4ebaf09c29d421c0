// Package wstore holds the reference spend store used by the node core
// and its tests.
//
// The network-facing storage layer is free to use its own store;
// anything keeping the same grouping contract
// (spends grouped under their unique pubkey, plurality preserved)
// can stand in for this one.
package wstore

import (
	"log/slog"
	"slices"
	"sync"

	"github.com/wrennet/wren/wspend"
)

// SpendLog is an append-only, in-memory log of admitted signed spends,
// grouped by unique pubkey.
//
// Holding more than one distinct spend for a key is not an error:
// that plurality is the evidence of a double-spend attempt,
// and the log's whole purpose is to preserve it.
type SpendLog struct {
	log *slog.Logger

	// Unlike the kernel-owned bootstrap state,
	// the log is shared by concurrent record admissions,
	// so it guards itself.
	mu     sync.Mutex
	spends map[wspend.UniquePubkey][]wspend.SignedSpend
}

// NewSpendLog returns an empty log.
func NewSpendLog(log *slog.Logger) *SpendLog {
	return &SpendLog{
		log: log,

		spends: make(map[wspend.UniquePubkey][]wspend.SignedSpend),
	}
}

// Add records ss, deduplicating by full-bytes equality.
//
// It reports whether the key now holds more than one distinct spend,
// i.e. whether this key shows double-spend evidence.
// Spends are never rejected here; Add only ever grows the log.
func (l *SpendLog) Add(ss wspend.SignedSpend) (doubleSpend bool, err error) {
	key := ss.UniquePubkey()

	l.mu.Lock()
	defer l.mu.Unlock()

	existing := l.spends[key]
	dup := slices.ContainsFunc(existing, ss.Equal)
	if !dup {
		l.spends[key] = append(existing, ss)
	}

	if len(l.spends[key]) > 1 {
		l.log.Warn(
			"Multiple distinct spends recorded for one key; double spend attempted",
			"unique_pubkey", key.Hex(),
			"spend_count", len(l.spends[key]),
		)
		return true, nil
	}

	return false, nil
}

// Get returns the spends recorded for key.
// A result longer than one is double-spend evidence.
func (l *SpendLog) Get(key wspend.UniquePubkey) []wspend.SignedSpend {
	l.mu.Lock()
	defer l.mu.Unlock()

	return slices.Clone(l.spends[key])
}

// All returns every recorded spend,
// sorted by the key-only spend ordering.
func (l *SpendLog) All() []wspend.SignedSpend {
	l.mu.Lock()
	defer l.mu.Unlock()

	var out []wspend.SignedSpend
	for _, group := range l.spends {
		out = append(out, group...)
	}

	slices.SortStableFunc(out, wspend.SignedSpend.Compare)
	return out
}

// Len returns the total number of distinct spends recorded.
func (l *SpendLog) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	n := 0
	for _, group := range l.spends {
		n += len(group)
	}
	return n
}
