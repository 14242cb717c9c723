package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustGet(t *testing.T, kv ReadOnlyKVStore, key []byte) []byte {
	t.Helper()
	v, err := kv.Get(key)
	require.NoError(t, err)
	return v
}

func mustHas(t *testing.T, kv ReadOnlyKVStore, key []byte) bool {
	t.Helper()
	ok, err := kv.Has(key)
	require.NoError(t, err)
	return ok
}

// TestBTreeCacheGetSet does basic sanity checks on our cache
func TestBTreeCacheGetSet(t *testing.T) {
	base := MemStore().CacheWrap()

	k, v := []byte("french"), []byte("fry")
	assert.Nil(t, mustGet(t, base, k))
	assert.False(t, mustHas(t, base, k))
	require.NoError(t, base.Set(k, v))
	assert.Equal(t, v, mustGet(t, base, k))
	assert.True(t, mustHas(t, base, k))

	// now layer another btree on top and make sure that we get
	// base data
	cache := base.CacheWrap()
	assert.Equal(t, v, mustGet(t, cache, k))

	// writing more data is only visible in the cache
	k2, v2 := []byte("LA"), []byte("Dodgers")
	require.NoError(t, cache.Set(k2, v2))
	assert.Equal(t, v2, mustGet(t, cache, k2))
	assert.Nil(t, mustGet(t, base, k2))
	assert.False(t, mustHas(t, base, k2))

	// we can write the cache to the base layer...
	require.NoError(t, cache.Write())
	assert.Equal(t, v, mustGet(t, base, k))
	assert.Equal(t, v2, mustGet(t, base, k2))

	// we can discard one
	k3, v3 := []byte("Bayern"), []byte("Munich")
	c2 := base.CacheWrap()
	require.NoError(t, c2.Set(k3, v3))
	c2.Discard()
	assert.Nil(t, mustGet(t, base, k3))

	// and commit another with a delete
	c3 := base.CacheWrap()
	require.NoError(t, c3.Delete(k))
	assert.False(t, mustHas(t, c3, k))
	assert.True(t, mustHas(t, base, k))
	require.NoError(t, c3.Write())

	assert.Nil(t, mustGet(t, base, k))
	assert.Equal(t, v2, mustGet(t, base, k2))
}

func TestBTreeCacheIterator(t *testing.T) {
	base := MemStore().CacheWrap()
	for _, k := range []string{"a", "b", "c", "d", "e"} {
		require.NoError(t, base.Set([]byte(k), []byte("base-"+k)))
	}

	cache := base.CacheWrap()
	require.NoError(t, cache.Set([]byte("b"), []byte("cache-b")))
	require.NoError(t, cache.Delete([]byte("c")))
	require.NoError(t, cache.Set([]byte("ca"), []byte("cache-ca")))
	require.NoError(t, cache.Set([]byte("f"), []byte("cache-f")))

	cases := map[string]struct {
		start, end []byte
		reverse    bool
		want       []Model
	}{
		"full range": {
			want: []Model{
				{[]byte("a"), []byte("base-a")},
				{[]byte("b"), []byte("cache-b")},
				{[]byte("ca"), []byte("cache-ca")},
				{[]byte("d"), []byte("base-d")},
				{[]byte("e"), []byte("base-e")},
				{[]byte("f"), []byte("cache-f")},
			},
		},
		"bounded": {
			start: []byte("b"),
			end:   []byte("e"),
			want: []Model{
				{[]byte("b"), []byte("cache-b")},
				{[]byte("ca"), []byte("cache-ca")},
				{[]byte("d"), []byte("base-d")},
			},
		},
		"open start": {
			end: []byte("c"),
			want: []Model{
				{[]byte("a"), []byte("base-a")},
				{[]byte("b"), []byte("cache-b")},
			},
		},
		"reverse with open end": {
			start:   []byte("d"),
			reverse: true,
			want: []Model{
				{[]byte("f"), []byte("cache-f")},
				{[]byte("e"), []byte("base-e")},
				{[]byte("d"), []byte("base-d")},
			},
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var (
				it  Iterator
				err error
			)
			if tc.reverse {
				it, err = cache.ReverseIterator(tc.start, tc.end)
			} else {
				it, err = cache.Iterator(tc.start, tc.end)
			}
			require.NoError(t, err)
			defer it.Close()

			var got []Model
			for ; it.Valid(); require.NoError(t, it.Next()) {
				got = append(got, Model{Key: it.Key(), Value: it.Value()})
			}
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestNonAtomicBatch(t *testing.T) {
	base := MemStore()
	b := NewNonAtomicBatch(base)
	require.NoError(t, b.Set([]byte("k"), []byte("v")))
	require.NoError(t, b.Delete([]byte("gone")))
	assert.Len(t, b.ShowOps(), 2)

	// nothing visible before the write
	assert.Nil(t, mustGet(t, base, []byte("k")))
	require.NoError(t, b.Write())
	assert.Equal(t, []byte("v"), mustGet(t, base, []byte("k")))
	assert.Empty(t, b.ShowOps())
}
