package spendlimit

import (
	"context"
	"testing"

	"github.com/iov-one/multiclique"
	"github.com/iov-one/multiclique/errors"
	"github.com/iov-one/multiclique/mctest"
	"github.com/iov-one/multiclique/mctest/assert"
	"github.com/iov-one/multiclique/store"
)

type router map[string]multiclique.Handler

func (r router) Handle(path string, h multiclique.Handler) {
	r[path] = h
}

func TestHandlers(t *testing.T) {
	token := mctest.NewAddress()

	cases := map[string]struct {
		Uninitialized bool
		Msg           multiclique.Msg
		Conditions    []multiclique.Condition
		WantErr       *errors.Error
		WantLimit     int64
		WantSpent     int64
	}{
		"set limit": {
			Msg:        &SetLimitMsg{Target: token, Limit: 42},
			Conditions: []multiclique.Condition{multiclique.AccountCondition()},
			WantLimit:  42,
			WantSpent:  300,
		},
		"set limit requires account authorization": {
			Msg:        &SetLimitMsg{Target: token, Limit: 42},
			Conditions: []multiclique.Condition{mctest.NewCondition()},
			WantErr:    errors.ErrUnauthorized,
			WantLimit:  1000,
			WantSpent:  300,
		},
		"negative limit": {
			Msg:        &SetLimitMsg{Target: token, Limit: -1},
			Conditions: []multiclique.Condition{multiclique.AccountCondition()},
			WantErr:    errors.ErrInput,
			WantLimit:  1000,
			WantSpent:  300,
		},
		"set limit of an uninitialized policy": {
			Uninitialized: true,
			Msg:           &SetLimitMsg{Target: token, Limit: 42},
			Conditions:    []multiclique.Condition{multiclique.AccountCondition()},
			WantErr:       errors.ErrNotFound,
		},
		"reset": {
			Msg:        &ResetLimitMsg{Target: token},
			Conditions: []multiclique.Condition{multiclique.AccountCondition()},
			WantLimit:  1000,
			WantSpent:  0,
		},
		"reset requires account authorization": {
			Msg:       &ResetLimitMsg{Target: token},
			WantErr:   errors.ErrUnauthorized,
			WantLimit: 1000,
			WantSpent: 300,
		},
		"reset of an invalid target": {
			Msg:        &ResetLimitMsg{Target: []byte("short")},
			Conditions: []multiclique.Condition{multiclique.AccountCondition()},
			WantErr:    errors.ErrInput,
			WantLimit:  1000,
			WantSpent:  300,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			if !tc.Uninitialized {
				ctx := context.Background()
				assert.Nil(t, Init(ctx, db, testConfiguration()))
				assert.Nil(t, SetLimit(ctx, db, token, 1000))
				assert.Nil(t, NewSpentBucket().SetAmount(db, token, 300))
			}

			auth := &mctest.CtxAuth{Key: "auth"}
			ctx := auth.SetConditions(context.Background(), tc.Conditions...)
			r := make(router)
			RegisterRoutes(r, auth)
			h := r[tc.Msg.Path()]
			tx := &mctest.Tx{Msg: tc.Msg}

			cache := db.CacheWrap()
			if _, err := h.Check(ctx, cache, tx); !tc.WantErr.Is(err) {
				t.Fatalf("unexpected check error: %+v", err)
			}
			cache.Discard()
			if _, err := h.Deliver(ctx, db, tx); !tc.WantErr.Is(err) {
				t.Fatalf("unexpected deliver error: %+v", err)
			}

			limit, err := Limit(db, token)
			assert.Nil(t, err)
			assert.Equal(t, tc.WantLimit, limit)
			spent, err := Spent(db, token)
			assert.Nil(t, err)
			assert.Equal(t, tc.WantSpent, spent)
		})
	}
}
