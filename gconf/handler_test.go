package gconf

import (
	"context"
	"testing"

	"github.com/iov-one/multiclique"
	"github.com/iov-one/multiclique/errors"
	"github.com/iov-one/multiclique/mctest"
	"github.com/iov-one/multiclique/mctest/assert"
	"github.com/iov-one/multiclique/store"
)

func TestUpdateConfigurationHandler(t *testing.T) {
	cases := map[string]struct {
		// If Init is provided, initialize the database before running
		// handler code. Use nil to not provide initial state.
		Init *myconfig

		Msg            multiclique.Msg
		MsgConditions  []multiclique.Condition
		WantCheckErr   *errors.Error
		WantDeliverErr *errors.Error

		// When not nil database state will be tested to contain the
		// exact version of the configuration.
		WantConfig *myconfig
	}{
		"success": {
			Init:          &myconfig{Num: 5125, Str: "foobar"},
			Msg:           &myconfigMsg{Patch: &myconfig{Num: 333, Str: "boing!"}},
			MsgConditions: []multiclique.Condition{multiclique.AccountCondition()},
			WantConfig:    &myconfig{Num: 333, Str: "boing!"},
		},
		"message must be authorized by the account": {
			Init:           &myconfig{Num: 5125, Str: "foobar"},
			Msg:            &myconfigMsg{Patch: &myconfig{Num: 333}},
			MsgConditions:  []multiclique.Condition{mctest.NewCondition()},
			WantCheckErr:   errors.ErrUnauthorized,
			WantDeliverErr: errors.ErrUnauthorized,
			WantConfig:     &myconfig{Num: 5125, Str: "foobar"},
		},
		"zero values are not updating the configuration": {
			Init:          &myconfig{Num: 5125, Str: "foobar"},
			Msg:           &myconfigMsg{Patch: &myconfig{Str: "boing!"}},
			MsgConditions: []multiclique.Condition{multiclique.AccountCondition()},
			WantConfig:    &myconfig{Num: 5125, Str: "boing!"},
		},
		"missing configuration is created": {
			Msg:           &myconfigMsg{Patch: &myconfig{Num: 1}},
			MsgConditions: []multiclique.Condition{multiclique.AccountCondition()},
			WantConfig:    &myconfig{Num: 1},
		},
		"invalid patch result is rejected": {
			Init:           &myconfig{Num: 5125},
			Msg:            &myconfigMsg{Patch: &myconfig{Num: -3}},
			MsgConditions:  []multiclique.Condition{multiclique.AccountCondition()},
			WantCheckErr:   errors.ErrModel,
			WantDeliverErr: errors.ErrModel,
			WantConfig:     &myconfig{Num: 5125},
		},
		"patch is required": {
			Init:           &myconfig{Num: 5125},
			Msg:            &myconfigMsg{},
			MsgConditions:  []multiclique.Condition{multiclique.AccountCondition()},
			WantCheckErr:   errors.ErrEmpty,
			WantDeliverErr: errors.ErrEmpty,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			if tc.Init != nil {
				assert.Nil(t, Save(db, "mypkg", tc.Init))
			}

			auth := &mctest.CtxAuth{Key: "auth"}
			ctx := auth.SetConditions(context.Background(), tc.MsgConditions...)
			h := NewUpdateConfigurationHandler("mypkg", &myconfig{}, auth)
			tx := &mctest.Tx{Msg: tc.Msg}

			cache := db.CacheWrap()
			if _, err := h.Check(ctx, cache, tx); !tc.WantCheckErr.Is(err) {
				t.Fatalf("unexpected check error: %s", err)
			}
			cache.Discard()

			if _, err := h.Deliver(ctx, db, tx); !tc.WantDeliverErr.Is(err) {
				t.Fatalf("unexpected deliver error: %s", err)
			}

			if tc.WantConfig != nil {
				var got myconfig
				assert.Nil(t, Load(db, "mypkg", &got))
				assert.Equal(t, *tc.WantConfig, got)
			}
		})
	}
}
