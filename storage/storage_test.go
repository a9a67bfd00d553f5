package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kellybook/models"
)

func TestBankrollStore_DefaultOnMissingFile(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "bankroll.json")
	store := NewBankrollStore(path, 3000)

	got, err := store.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3000.0, got)

	// The file should now exist holding the default.
	got, err = store.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3000.0, got)
	_, statErr := os.Stat(path)
	assert.NoError(t, statErr)
}

func TestBankrollStore_SetAndGet(t *testing.T) {
	ctx := context.Background()
	store := NewBankrollStore(filepath.Join(t.TempDir(), "bankroll.json"), 3000)

	require.NoError(t, store.Set(ctx, 2750.5))

	got, err := store.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2750.5, got)
}

func TestBankrollStore_DefaultOnCorruptFile(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "bankroll.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	store := NewBankrollStore(path, 3000)
	got, err := store.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3000.0, got)
}

func TestBetStore_EmptyOnMissingOrCorrupt(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	store := NewBetStore(filepath.Join(dir, "bets.json"))
	bets, err := store.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, bets)

	corrupt := filepath.Join(dir, "corrupt.json")
	require.NoError(t, os.WriteFile(corrupt, []byte("[{"), 0o644))
	store = NewBetStore(corrupt)
	bets, err = store.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, bets)
}

func TestBetStore_CreateFindUpdate(t *testing.T) {
	ctx := context.Background()
	store := NewBetStore(filepath.Join(t.TempDir(), "bets.json"))

	bet := models.Bet{
		ID:        "AB12C",
		Bookmaker: "Bet365",
		Sport:     "Football",
		BetName:   "Arsenal to win",
		BackOdds:  2.1,
		FairOdds:  1.9,
		Stake:     10,
		Status:    models.BetStatusPending,
		CreatedAt: time.Now().UTC().Truncate(time.Second),
	}
	require.NoError(t, store.Create(ctx, bet))

	found, err := store.Find(ctx, "AB12C")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, bet.BetName, found.BetName)

	missing, err := store.Find(ctx, "ZZZZZ")
	require.NoError(t, err)
	assert.Nil(t, missing)

	pl := 11.0
	found.Status = models.BetStatusWin
	found.ProfitLoss = &pl
	require.NoError(t, store.Update(ctx, *found))

	updated, err := store.Find(ctx, "AB12C")
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, models.BetStatusWin, updated.Status)
	require.NotNil(t, updated.ProfitLoss)
	assert.Equal(t, 11.0, *updated.ProfitLoss)
}

func TestBetStore_CreateDuplicateID(t *testing.T) {
	ctx := context.Background()
	store := NewBetStore(filepath.Join(t.TempDir(), "bets.json"))

	bet := models.Bet{ID: "AB12C", Status: models.BetStatusPending}
	require.NoError(t, store.Create(ctx, bet))
	assert.Error(t, store.Create(ctx, bet))
}

func TestBetStore_UpdateUnknownID(t *testing.T) {
	ctx := context.Background()
	store := NewBetStore(filepath.Join(t.TempDir(), "bets.json"))

	err := store.Update(ctx, models.Bet{ID: "NOPE1"})
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestBetStore_OmitsUnsetOptionalFields(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "bets.json")
	store := NewBetStore(path)

	require.NoError(t, store.Create(ctx, models.Bet{ID: "AB12C", Status: models.BetStatusPending}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "profitLoss")
	assert.NotContains(t, string(data), "partialReturn")
	assert.NotContains(t, string(data), "commission")
}

func TestAliasStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewAliasStore(filepath.Join(t.TempDir(), "aliases.json"), "bookmaker")

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, loaded)

	aliases := map[string]string{"B365": "Bet365", "PP": "Paddy Power"}
	require.NoError(t, store.Save(ctx, aliases))

	loaded, err = store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, aliases, loaded)
}
