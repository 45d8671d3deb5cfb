package signers

import (
	"context"
	"testing"

	"github.com/iov-one/multiclique"
	"github.com/iov-one/multiclique/crypto"
	"github.com/iov-one/multiclique/errors"
	"github.com/iov-one/multiclique/gconf"
	"github.com/iov-one/multiclique/mctest"
	"github.com/iov-one/multiclique/mctest/assert"
	"github.com/iov-one/multiclique/store"
)

func TestInitialize(t *testing.T) {
	a := mctest.Key(1).PublicKey()
	b := mctest.Key(2).PublicKey()
	c := mctest.Key(3).PublicKey()

	cases := map[string]struct {
		Signers   []crypto.PublicKey
		Threshold uint32
		Conf      *Configuration
		WantErr   *errors.Error
	}{
		"threshold equal to the number of signers": {
			Signers:   []crypto.PublicKey{a, b},
			Threshold: 2,
		},
		"zero threshold": {
			Signers: []crypto.PublicKey{a},
		},
		"no signers": {},
		"threshold greater than the number of signers": {
			Signers:   []crypto.PublicKey{a, b},
			Threshold: 3,
			WantErr:   ErrInvalidThreshold,
		},
		"duplicated signer": {
			Signers:   []crypto.PublicKey{a, b, a},
			Threshold: 1,
			WantErr:   ErrSignerAlreadyAdded,
		},
		"invalid public key": {
			Signers: []crypto.PublicKey{a, crypto.PublicKey("short")},
			WantErr: errors.ErrInput,
		},
		"too many signers": {
			Signers: []crypto.PublicKey{a, b, c},
			Conf:    &Configuration{MaxSigners: 2, KeepAlive: 10},
			WantErr: ErrSignerLimitExceeded,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			if tc.Conf != nil {
				assert.Nil(t, gconf.Save(db, packageName, tc.Conf))
			}
			err := Initialize(context.Background(), db, tc.Signers, tc.Threshold)
			if !tc.WantErr.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}

			signers, err := Signers(db)
			assert.Nil(t, err)
			threshold, err := DefaultThreshold(db)
			assert.Nil(t, err)
			if tc.WantErr != nil {
				assert.Equal(t, 0, len(signers))
				assert.Equal(t, uint32(0), threshold)
				return
			}
			assert.Equal(t, len(tc.Signers), len(signers))
			for i := range tc.Signers {
				assert.Equal(t, tc.Signers[i], signers[i])
			}
			assert.Equal(t, tc.Threshold, threshold)
		})
	}
}

func TestInitializeOnlyOnce(t *testing.T) {
	db := store.MemStore()
	a := mctest.Key(1).PublicKey()
	ctx := context.Background()

	assert.Nil(t, Initialize(ctx, db, []crypto.PublicKey{a}, 1))
	if err := Initialize(ctx, db, []crypto.PublicKey{a}, 1); !ErrAlreadyInitialized.Is(err) {
		t.Fatalf("unexpected error: %+v", err)
	}
	if err := Initialize(ctx, db, nil, 0); !ErrAlreadyInitialized.Is(err) {
		t.Fatalf("unexpected error: %+v", err)
	}
}

func TestUninitializedRegistry(t *testing.T) {
	db := store.MemStore()
	signers, err := Signers(db)
	assert.Nil(t, err)
	assert.Equal(t, 0, len(signers))
	threshold, err := DefaultThreshold(db)
	assert.Nil(t, err)
	assert.Equal(t, uint32(0), threshold)

	if err := AddSigner(context.Background(), db, mctest.Key(1).PublicKey()); !errors.ErrNotFound.Is(err) {
		t.Fatalf("unexpected error: %+v", err)
	}
	assert.Nil(t, KeepAlive(context.Background(), db))
}

func TestAddSigner(t *testing.T) {
	a := mctest.Key(1).PublicKey()
	b := mctest.Key(2).PublicKey()
	c := mctest.Key(3).PublicKey()

	cases := map[string]struct {
		Add         crypto.PublicKey
		Conf        *Configuration
		WantErr     *errors.Error
		WantSigners []crypto.PublicKey
	}{
		"new signer is appended": {
			Add:         c,
			WantSigners: []crypto.PublicKey{a, b, c},
		},
		"duplicated signer": {
			Add:         b,
			WantErr:     ErrSignerAlreadyAdded,
			WantSigners: []crypto.PublicKey{a, b},
		},
		"signer limit reached": {
			Add:         c,
			Conf:        &Configuration{MaxSigners: 2},
			WantErr:     ErrSignerLimitExceeded,
			WantSigners: []crypto.PublicKey{a, b},
		},
		"invalid key": {
			Add:         crypto.PublicKey{0x01},
			WantErr:     errors.ErrInput,
			WantSigners: []crypto.PublicKey{a, b},
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			ctx := context.Background()
			assert.Nil(t, Initialize(ctx, db, []crypto.PublicKey{a, b}, 1))
			if tc.Conf != nil {
				assert.Nil(t, gconf.Save(db, packageName, tc.Conf))
			}

			if err := AddSigner(ctx, db, tc.Add); !tc.WantErr.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}
			signers, err := Signers(db)
			assert.Nil(t, err)
			assert.Equal(t, tc.WantSigners, signers)
		})
	}
}

func TestRemoveSigner(t *testing.T) {
	a := mctest.Key(1).PublicKey()
	b := mctest.Key(2).PublicKey()
	c := mctest.Key(3).PublicKey()

	cases := map[string]struct {
		Threshold   uint32
		Remove      crypto.PublicKey
		WantErr     *errors.Error
		WantSigners []crypto.PublicKey
	}{
		"signer removed, order preserved": {
			Threshold:   1,
			Remove:      a,
			WantSigners: []crypto.PublicKey{b},
		},
		"unknown signer": {
			Threshold:   1,
			Remove:      c,
			WantErr:     ErrSignerDoesNotExist,
			WantSigners: []crypto.PublicKey{a, b},
		},
		"threshold would not be reachable": {
			Threshold:   2,
			Remove:      b,
			WantErr:     ErrInvalidThreshold,
			WantSigners: []crypto.PublicKey{a, b},
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			ctx := context.Background()
			assert.Nil(t, Initialize(ctx, db, []crypto.PublicKey{a, b}, tc.Threshold))

			if err := RemoveSigner(ctx, db, tc.Remove); !tc.WantErr.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}
			signers, err := Signers(db)
			assert.Nil(t, err)
			assert.Equal(t, tc.WantSigners, signers)
		})
	}
}

func TestSetDefaultThreshold(t *testing.T) {
	keys := mctest.PublicKeys(mctest.Key(1), mctest.Key(2))

	cases := map[string]struct {
		Threshold uint32
		WantErr   *errors.Error
		Want      uint32
	}{
		"maximum value": {Threshold: 2, Want: 2},
		"zero":          {Threshold: 0, Want: 0},
		"out of range":  {Threshold: 3, WantErr: ErrInvalidThreshold, Want: 1},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			ctx := context.Background()
			assert.Nil(t, Initialize(ctx, db, keys, 1))

			if err := SetDefaultThreshold(ctx, db, tc.Threshold); !tc.WantErr.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}
			got, err := DefaultThreshold(db)
			assert.Nil(t, err)
			assert.Equal(t, tc.Want, got)
		})
	}
}

func TestKeepAliveIsRefreshed(t *testing.T) {
	db := store.MemStore()
	keys := mctest.PublicKeys(mctest.Key(1), mctest.Key(2))
	assert.Nil(t, gconf.Save(db, packageName, &Configuration{MaxSigners: 5, KeepAlive: 100}))

	assert.Nil(t, Initialize(multiclique.WithHeight(context.Background(), 10), db, keys, 1))
	r, err := NewRegistryBucket().Load(db)
	assert.Nil(t, err)
	assert.Equal(t, int64(110), r.ExpiresAt)

	assert.Nil(t, SetDefaultThreshold(multiclique.WithHeight(context.Background(), 50), db, 2))
	r, err = NewRegistryBucket().Load(db)
	assert.Nil(t, err)
	assert.Equal(t, int64(150), r.ExpiresAt)

	assert.Nil(t, KeepAlive(multiclique.WithHeight(context.Background(), 70), db))
	r, err = NewRegistryBucket().Load(db)
	assert.Nil(t, err)
	assert.Equal(t, int64(170), r.ExpiresAt)
}

func TestLoadConfiguration(t *testing.T) {
	db := store.MemStore()
	conf, err := LoadConfiguration(db)
	assert.Nil(t, err)
	assert.Equal(t, DefaultConfiguration(), conf)

	assert.Nil(t, gconf.Save(db, packageName, &Configuration{MaxSigners: 3}))
	conf, err = LoadConfiguration(db)
	assert.Nil(t, err)
	assert.Equal(t, Configuration{MaxSigners: 3}, conf)
}
