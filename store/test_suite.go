package store

import (
	"bytes"
	"testing"

	"github.com/iov-one/multiclique/mctest/assert"
)

// TestStoreConstructor returns a fresh store and a function to release it.
type TestStoreConstructor func() (base CacheableKVStore, cleanup func())

// RunSuite verifies that a CacheableKVStore implementation and the cache
// wraps it creates behave consistently. Every store package runs it against
// its own constructor.
func RunSuite(t *testing.T, makeBase TestStoreConstructor) {
	t.Run("cache layering", func(t *testing.T) { testCacheLayering(t, makeBase) })
	t.Run("cache conflicts", func(t *testing.T) { testCacheConflicts(t, makeBase) })
	t.Run("cache iteration", func(t *testing.T) { testCacheIteration(t, makeBase) })
}

func testCacheLayering(t *testing.T, makeBase TestStoreConstructor) {
	base, cleanup := makeBase()
	defer cleanup()

	alice, bob, carol := []byte("alice"), []byte("bob"), []byte("carol")

	AssertGetHas(t, base, alice, nil)
	assert.Nil(t, base.Set(alice, []byte("signer")))
	AssertGetHas(t, base, alice, []byte("signer"))

	// A cache sees the parent, the parent does not see the cache until
	// it is written.
	cache := base.CacheWrap()
	AssertGetHas(t, cache, alice, []byte("signer"))
	assert.Nil(t, cache.Set(bob, []byte("cosigner")))
	AssertGetHas(t, cache, bob, []byte("cosigner"))
	AssertGetHas(t, base, bob, nil)
	assert.Nil(t, cache.Write())
	AssertGetHas(t, base, bob, []byte("cosigner"))

	discarded := base.CacheWrap()
	assert.Nil(t, discarded.Set(carol, []byte("stranger")))
	assert.Nil(t, discarded.Delete(alice))
	AssertGetHas(t, discarded, carol, []byte("stranger"))
	AssertGetHas(t, discarded, alice, nil)
	discarded.Discard()
	AssertGetHas(t, base, carol, nil)
	AssertGetHas(t, base, alice, []byte("signer"))

	removal := base.CacheWrap()
	assert.Nil(t, removal.Delete(alice))
	assert.Nil(t, removal.Write())
	AssertGetHas(t, base, alice, nil)
	AssertGetHas(t, base, bob, []byte("cosigner"))
}

func testCacheConflicts(t *testing.T, makeBase TestStoreConstructor) {
	cases := map[string]struct {
		parent     []Op
		child      []Op
		wantParent map[string]string
		wantChild  map[string]string
	}{
		"overwrite one, delete another, add a third": {
			parent:     []Op{SetOp([]byte("k1"), []byte("v1")), SetOp([]byte("k2"), []byte("v2"))},
			child:      []Op{SetOp([]byte("k1"), []byte("v4")), SetOp([]byte("k3"), []byte("v3")), DelOp([]byte("k2"))},
			wantParent: map[string]string{"k1": "v1", "k2": "v2", "k3": ""},
			wantChild:  map[string]string{"k1": "v4", "k2": "", "k3": "v3"},
		},
		"delete and set again": {
			parent:     []Op{SetOp([]byte("k0"), []byte("v0"))},
			child:      []Op{DelOp([]byte("k0")), SetOp([]byte("k0"), []byte("v3"))},
			wantParent: map[string]string{"k0": "v0"},
			wantChild:  map[string]string{"k0": "v3"},
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			parent, cleanup := makeBase()
			defer cleanup()

			applyOps(t, parent, tc.parent)
			child := parent.CacheWrap()
			applyOps(t, child, tc.child)

			assertContent(t, parent, tc.wantParent)
			assertContent(t, child, tc.wantChild)

			assert.Nil(t, child.Write())
			assertContent(t, parent, tc.wantChild)
		})
	}
}

func testCacheIteration(t *testing.T, makeBase TestStoreConstructor) {
	set := func(kv ...string) []Op {
		var ops []Op
		for i := 0; i < len(kv); i += 2 {
			ops = append(ops, SetOp([]byte(kv[i]), []byte(kv[i+1])))
		}
		return ops
	}
	del := func(keys ...string) []Op {
		var ops []Op
		for _, k := range keys {
			ops = append(ops, DelOp([]byte(k)))
		}
		return ops
	}

	type query struct {
		start, end string
		reverse    bool
		want       []string
	}

	cases := map[string]struct {
		parent  []Op
		child   []Op
		queries []query
	}{
		"child only": {
			child: set("a", "1", "b", "1", "c", "1"),
			queries: []query{
				{want: []string{"a=1", "b=1", "c=1"}},
				{start: "b", end: "c", want: []string{"b=1"}},
				{reverse: true, want: []string{"c=1", "b=1", "a=1"}},
				{start: "b", reverse: true, want: []string{"c=1", "b=1"}},
			},
		},
		"parent only": {
			parent: set("a", "1", "b", "1", "c", "1"),
			queries: []query{
				{want: []string{"a=1", "b=1", "c=1"}},
				{start: "b", end: "c", want: []string{"b=1"}},
				{reverse: true, want: []string{"c=1", "b=1", "a=1"}},
			},
		},
		"parent and child combined": {
			parent: set("a", "1", "b", "1"),
			child:  set("c", "1"),
			queries: []query{
				{want: []string{"a=1", "b=1", "c=1"}},
				{start: "b", end: "c", want: []string{"b=1"}},
				{reverse: true, want: []string{"c=1", "b=1", "a=1"}},
			},
		},
		"child values shadow parent values": {
			parent: set("a", "1", "b", "1", "c", "1"),
			child:  set("a", "2", "b", "2", "d", "1"),
			queries: []query{
				{want: []string{"a=2", "b=2", "c=1", "d=1"}},
				{start: "b", end: "d", want: []string{"b=2", "c=1"}},
				{reverse: true, want: []string{"d=1", "c=1", "b=2", "a=2"}},
			},
		},
		"deleted entries are skipped": {
			parent: set("a", "1", "c", "1", "d", "1"),
			child:  del("a", "b", "d"),
			queries: []query{
				{want: []string{"c=1"}},
				{reverse: true, want: []string{"c=1"}},
				{end: "c", want: nil},
			},
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			base, cleanup := makeBase()
			defer cleanup()

			applyOps(t, base, tc.parent)
			child := base.CacheWrap()
			applyOps(t, child, tc.child)

			for _, q := range tc.queries {
				var (
					iter Iterator
					err  error
				)
				if q.reverse {
					iter, err = child.ReverseIterator(optKey(q.start), optKey(q.end))
				} else {
					iter, err = child.Iterator(optKey(q.start), optKey(q.end))
				}
				assert.Nil(t, err)

				var got []string
				for ; iter.Valid(); assert.Nil(t, iter.Next()) {
					got = append(got, string(iter.Key())+"="+string(iter.Value()))
				}
				iter.Close()
				assert.Equal(t, q.want, got)
			}
		})
	}
}

// AssertGetHas ensures that both Get and Has agree on the value stored under
// the key. A nil value means the key must be absent.
func AssertGetHas(t testing.TB, kv ReadOnlyKVStore, key, want []byte) {
	t.Helper()
	got, err := kv.Get(key)
	assert.Nil(t, err)
	if !bytes.Equal(want, got) {
		t.Fatalf("want %q value for %q key, got %q", want, key, got)
	}
	has, err := kv.Has(key)
	assert.Nil(t, err)
	assert.Equal(t, want != nil, has)
}

func assertContent(t testing.TB, kv ReadOnlyKVStore, want map[string]string) {
	t.Helper()
	for k, v := range want {
		AssertGetHas(t, kv, []byte(k), optKey(v))
	}
}

func applyOps(t testing.TB, kv SetDeleter, ops []Op) {
	t.Helper()
	for _, op := range ops {
		assert.Nil(t, op.Apply(kv))
	}
}

// optKey maps an empty string to nil, which stands for an open range bound
// or a missing value.
func optKey(s string) []byte {
	if s == "" {
		return nil
	}
	return []byte(s)
}
