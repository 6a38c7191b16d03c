package memory

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigStore_SetAndGet(t *testing.T) {
	store := NewConfigStore()

	require.NoError(t, store.Set("search.min_stars", 50))
	require.NoError(t, store.Set("search.min_stars", 75))

	val, ok := store.Get("search.min_stars")
	assert.True(t, ok)
	assert.Equal(t, 75, val)

	_, ok = store.Get("missing")
	assert.False(t, ok)
}

func TestConfigStore_TypedGetters(t *testing.T) {
	store := NewConfigStore()
	_ = store.Set("str", "value")
	_ = store.Set("int", 42)
	_ = store.Set("int64", int64(7))
	_ = store.Set("float", 0.25)
	_ = store.Set("bool", true)
	_ = store.Set("slice", []any{"c", 3, "rust"})

	assert.Equal(t, "value", store.GetString("str"))
	assert.Equal(t, 42, store.GetInt("int"))
	assert.Equal(t, 7, store.GetInt("int64"))
	assert.Equal(t, 0, store.GetInt("float"))
	assert.Equal(t, 0.25, store.GetFloat("float"))
	assert.Equal(t, 42.0, store.GetFloat("int"))
	assert.True(t, store.GetBool("bool"))
	assert.Equal(t, []string{"c", "rust"}, store.GetStringSlice("slice"))

	assert.Equal(t, "", store.GetString("int"))
	assert.False(t, store.GetBool("str"))
	assert.Nil(t, store.GetStringSlice("str"))
}

func TestConfigStore_Keys(t *testing.T) {
	store := NewConfigStore()
	_ = store.Set("search.extra_languages.firmware", []string{"assembly"})
	_ = store.Set("search.extra_languages.RTOS", []string{"rust"})
	_ = store.Set("search.min_stars", 10)

	assert.Equal(t,
		[]string{"search.extra_languages.RTOS", "search.extra_languages.firmware"},
		store.Keys("search.extra_languages."))
	assert.Empty(t, store.Keys("output."))
}

func TestConfigStore_NoOpPersistence(t *testing.T) {
	store := NewConfigStore()

	assert.NoError(t, store.Save())
	assert.NoError(t, store.Load())
	assert.Equal(t, ":memory:", store.Path())
}

func TestConfigStore_Concurrency(t *testing.T) {
	store := NewConfigStore()
	var wg sync.WaitGroup

	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			key := "run.k" + string(rune('a'+id))
			_ = store.Set(key, id)
			_ = store.GetInt(key)
			_ = store.Keys("run.")
		}(i)
	}
	wg.Wait()

	assert.Len(t, store.Keys("run."), 20)
}
