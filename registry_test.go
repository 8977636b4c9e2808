package sesskit_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sesskit/sesskit"
	"github.com/sesskit/sesskit/store"
)

func TestRegistry(t *testing.T) {
	t.Parallel()

	t.Run("unknown type fails", func(t *testing.T) {
		t.Parallel()
		reg := sesskit.NewRegistry()
		_, err := reg.Open("nope", time.Minute)
		assert.ErrorIs(t, err, sesskit.ErrUnknownStore)
	})

	t.Run("names are case-insensitive", func(t *testing.T) {
		t.Parallel()
		reg := sesskit.NewRegistry()
		reg.Register("Custom", func(timeout time.Duration) (store.Store, error) {
			return store.NewMemoryStore(timeout), nil
		})

		st, err := reg.Open("CUSTOM", time.Minute)
		require.NoError(t, err)
		assert.NotNil(t, st)
	})

	t.Run("later registration replaces earlier", func(t *testing.T) {
		t.Parallel()
		first := store.NewMemoryStore(time.Minute)
		second := store.NewMemoryStore(time.Minute)

		reg := sesskit.NewRegistry()
		reg.Register("mem", func(time.Duration) (store.Store, error) { return first, nil })
		reg.Register("mem", func(time.Duration) (store.Store, error) { return second, nil })

		st, err := reg.Open("mem", time.Minute)
		require.NoError(t, err)
		assert.Same(t, second, st)
	})
}

func TestDefaultRegistry(t *testing.T) {
	t.Parallel()

	st, err := sesskit.DefaultRegistry().Open("memory", time.Minute)
	require.NoError(t, err)
	assert.IsType(t, &store.MemoryStore{}, st)
}
