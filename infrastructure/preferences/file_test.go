package preferences

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexandrechoske/uniq-adu-portal-sub000/internal/filter"
)

func TestFileStore_RoundTrip(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "prefs")
	store, err := NewFileStore(dir)
	require.NoError(t, err)

	ctx := context.Background()

	_, err = store.Load(ctx, "faturamento")
	assert.True(t, errors.Is(err, ErrNotFound))

	saved := &Preferences{
		AutoRefreshEnabled:  true,
		LoopIntervalSeconds: 600,
		Filters:             filter.Values{"year": int64(2024)},
	}
	require.NoError(t, store.Save(ctx, "faturamento", saved))

	loaded, err := store.Load(ctx, "faturamento")
	require.NoError(t, err)
	assert.True(t, loaded.AutoRefreshEnabled)
	assert.Equal(t, 600, loaded.LoopIntervalSeconds)
	assert.Equal(t, float64(2024), loaded.Filters["year"])

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1, "nenhum arquivo temporário deve sobrar")
	assert.Equal(t, "faturamento.json", entries[0].Name())
}

func TestFileStore_RejectsUnsafeNames(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	for _, name := range []string{"", "../etc", "a/b", `a\b`} {
		err := store.Save(context.Background(), name, &Preferences{})
		assert.Error(t, err, name)
	}
}

func TestFileStore_CorruptedFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "rh.json"), []byte("{"), 0o644))

	store, err := NewFileStore(dir)
	require.NoError(t, err)

	_, err = store.Load(context.Background(), "rh")
	assert.Error(t, err)
	assert.False(t, errors.Is(err, ErrNotFound))
}
