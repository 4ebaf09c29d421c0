package wstore_test

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/wrennet/wren/internal/wstore"
	"github.com/wrennet/wren/internal/wtest"
	"github.com/wrennet/wren/wspend"
)

func signedSpend(t *testing.T, key wspend.DerivedSecretKey, amount wspend.NanoTokens) wspend.SignedSpend {
	t.Helper()

	u := key.UniquePubkey()
	return wspend.SignSpend(wspend.Spend{
		UniquePubkey: u,
		SpentTx: wspend.Transaction{
			Inputs: []wspend.Input{{UniquePubkey: u, Amount: amount}},
		},
		Token: amount,
		CreationTx: wspend.Transaction{
			Outputs: []wspend.Output{{UniquePubkey: u, Amount: amount}},
		},
	}, key)
}

func TestSpendLog_addAndGet(t *testing.T) {
	t.Parallel()

	l := wstore.NewSpendLog(wtest.NewLogger(t))

	key, err := wspend.GenerateDerivedKey()
	require.NoError(t, err)

	ss := signedSpend(t, key, 5)

	doubleSpend, err := l.Add(ss)
	require.NoError(t, err)
	require.False(t, doubleSpend)

	got := l.Get(key.UniquePubkey())
	require.Len(t, got, 1)
	require.True(t, got[0].Equal(ss))
	require.Equal(t, 1, l.Len())
}

func TestSpendLog_duplicateAddIsIdempotent(t *testing.T) {
	t.Parallel()

	l := wstore.NewSpendLog(wtest.NewLogger(t))

	key, err := wspend.GenerateDerivedKey()
	require.NoError(t, err)

	ss := signedSpend(t, key, 5)

	for range 3 {
		doubleSpend, err := l.Add(ss)
		require.NoError(t, err)
		require.False(t, doubleSpend)
	}

	// Re-offering the same spend is not double-spend evidence.
	require.Len(t, l.Get(key.UniquePubkey()), 1)
}

func TestSpendLog_doubleSpendEvidence(t *testing.T) {
	t.Parallel()

	l := wstore.NewSpendLog(wtest.NewLogger(t))

	key, err := wspend.GenerateDerivedKey()
	require.NoError(t, err)

	a := signedSpend(t, key, 5)
	b := signedSpend(t, key, 6)

	doubleSpend, err := l.Add(a)
	require.NoError(t, err)
	require.False(t, doubleSpend)

	// A second, distinct spend for the same key is kept,
	// and its arrival is flagged.
	doubleSpend, err = l.Add(b)
	require.NoError(t, err)
	require.True(t, doubleSpend)

	got := l.Get(key.UniquePubkey())
	require.Len(t, got, 2)
}

func TestSpendLog_allGroupsByKey(t *testing.T) {
	t.Parallel()

	l := wstore.NewSpendLog(wtest.NewLogger(t))

	for range 3 {
		key, err := wspend.GenerateDerivedKey()
		require.NoError(t, err)

		_, err = l.Add(signedSpend(t, key, 1))
		require.NoError(t, err)
		_, err = l.Add(signedSpend(t, key, 2))
		require.NoError(t, err)
	}

	all := l.All()
	require.Len(t, all, 6)
	require.True(t, slices.IsSortedFunc(all, wspend.SignedSpend.Compare))

	// Each key's two spends end up adjacent.
	for i := 0; i < len(all); i += 2 {
		require.Equal(t, all[i].UniquePubkey(), all[i+1].UniquePubkey())
	}
}
