package tokenstore

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yndnr/shopfront-go/internal/telemetry/logger"
)

func openTestBadger(t *testing.T, dir string) *Badger {
	t.Helper()
	b, err := OpenBadger(dir, logger.Nop())
	require.NoError(t, err)
	return b
}

func TestStores_Contract(t *testing.T) {
	stores := map[string]func(t *testing.T) Store{
		"memory": func(t *testing.T) Store { return NewMemory("") },
		"badger": func(t *testing.T) Store {
			b := openTestBadger(t, t.TempDir())
			t.Cleanup(func() { _ = b.Close() })
			return b
		},
	}

	for name, open := range stores {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			s := open(t)

			token, err := s.Get(ctx)
			require.NoError(t, err)
			assert.Empty(t, token)

			require.NoError(t, s.Set(ctx, "abc123"))
			token, err = s.Get(ctx)
			require.NoError(t, err)
			assert.Equal(t, "abc123", token)

			require.NoError(t, s.Set(ctx, "def456"))
			token, _ = s.Get(ctx)
			assert.Equal(t, "def456", token)

			require.NoError(t, s.Clear(ctx))
			token, err = s.Get(ctx)
			require.NoError(t, err)
			assert.Empty(t, token)

			// Clearing twice is harmless.
			require.NoError(t, s.Clear(ctx))
		})
	}
}

func TestNewMemory_Seeded(t *testing.T) {
	token, err := NewMemory("seed").Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "seed", token)
}

func TestMemory_Concurrent(t *testing.T) {
	ctx := context.Background()
	m := NewMemory("")

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_ = m.Set(ctx, "tok")
		}()
		go func() {
			defer wg.Done()
			_, _ = m.Get(ctx)
			_ = m.Clear(ctx)
		}()
	}
	wg.Wait()
}

func TestBadger_PersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	b := openTestBadger(t, dir)
	require.NoError(t, b.Set(ctx, "persisted"))
	require.NoError(t, b.Close())

	b = openTestBadger(t, dir)
	defer b.Close()

	token, err := b.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "persisted", token)
}

func TestBadger_SetEmptyClears(t *testing.T) {
	ctx := context.Background()
	b := openTestBadger(t, t.TempDir())
	defer b.Close()

	require.NoError(t, b.Set(ctx, "abc"))
	require.NoError(t, b.Set(ctx, ""))

	token, err := b.Get(ctx)
	require.NoError(t, err)
	assert.Empty(t, token)
}

func TestBadger_Closed(t *testing.T) {
	ctx := context.Background()
	b := openTestBadger(t, t.TempDir())
	require.NoError(t, b.Close())

	_, err := b.Get(ctx)
	assert.ErrorIs(t, err, ErrClosed)
	assert.ErrorIs(t, b.Set(ctx, "x"), ErrClosed)
	assert.ErrorIs(t, b.Clear(ctx), ErrClosed)
}

func TestOpenBadger_RequiresDir(t *testing.T) {
	_, err := OpenBadger("", nil)
	assert.Error(t, err)
}
