package policy

import (
	"context"
	"testing"

	"github.com/iov-one/multiclique"
	"github.com/iov-one/multiclique/errors"
	"github.com/iov-one/multiclique/mctest"
	"github.com/iov-one/multiclique/mctest/assert"
	"github.com/iov-one/multiclique/store"
	"github.com/iov-one/multiclique/x/signers"
)

type router map[string]multiclique.Handler

func (r router) Handle(path string, h multiclique.Handler) {
	r[path] = h
}

func TestHandlers(t *testing.T) {
	policyA := mctest.NewAddress()
	bound := mctest.NewAddress()
	free := mctest.NewAddress()

	cases := map[string]struct {
		Msg            multiclique.Msg
		Conditions     []multiclique.Condition
		WantCheckErr   *errors.Error
		WantDeliverErr *errors.Error
		WantBound      []multiclique.Address
	}{
		"attach": {
			Msg:        &AttachPolicyMsg{Policy: policyA, Contexts: []multiclique.Address{free}},
			Conditions: []multiclique.Condition{multiclique.AccountCondition()},
			WantBound:  []multiclique.Address{policyA, policyA},
		},
		"attach requires account authorization": {
			Msg:            &AttachPolicyMsg{Policy: policyA, Contexts: []multiclique.Address{free}},
			Conditions:     []multiclique.Condition{mctest.NewCondition()},
			WantCheckErr:   errors.ErrUnauthorized,
			WantDeliverErr: errors.ErrUnauthorized,
			WantBound:      []multiclique.Address{policyA},
		},
		"attach to a bound context": {
			Msg:            &AttachPolicyMsg{Policy: policyA, Contexts: []multiclique.Address{bound}},
			Conditions:     []multiclique.Condition{multiclique.AccountCondition()},
			WantCheckErr:   ErrContractPolicyExists,
			WantDeliverErr: ErrContractPolicyExists,
			WantBound:      []multiclique.Address{policyA},
		},
		"attach without contexts": {
			Msg:            &AttachPolicyMsg{Policy: policyA},
			Conditions:     []multiclique.Condition{multiclique.AccountCondition()},
			WantCheckErr:   errors.ErrEmpty,
			WantDeliverErr: errors.ErrEmpty,
			WantBound:      []multiclique.Address{policyA},
		},
		"detach": {
			Msg:        &DetachPolicyMsg{Contexts: []multiclique.Address{bound}},
			Conditions: []multiclique.Condition{multiclique.AccountCondition()},
			WantBound:  []multiclique.Address{},
		},
		"detach requires account authorization": {
			Msg:            &DetachPolicyMsg{Contexts: []multiclique.Address{bound}},
			WantCheckErr:   errors.ErrUnauthorized,
			WantDeliverErr: errors.ErrUnauthorized,
			WantBound:      []multiclique.Address{policyA},
		},
		"detach unbound context": {
			Msg:            &DetachPolicyMsg{Contexts: []multiclique.Address{free}},
			Conditions:     []multiclique.Condition{multiclique.AccountCondition()},
			WantCheckErr:   ErrContractPolicyDoesNotExist,
			WantDeliverErr: ErrContractPolicyDoesNotExist,
			WantBound:      []multiclique.Address{policyA},
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			assert.Nil(t, Attach(context.Background(), db, policyA, []multiclique.Address{bound}))

			auth := &mctest.CtxAuth{Key: "auth"}
			ctx := auth.SetConditions(context.Background(), tc.Conditions...)
			r := make(router)
			RegisterRoutes(r, auth)
			h := r[tc.Msg.Path()]
			tx := &mctest.Tx{Msg: tc.Msg}

			cache := db.CacheWrap()
			if _, err := h.Check(ctx, cache, tx); !tc.WantCheckErr.Is(err) {
				t.Fatalf("unexpected check error: %+v", err)
			}
			cache.Discard()
			if _, err := h.Deliver(ctx, db, tx); !tc.WantDeliverErr.Is(err) {
				t.Fatalf("unexpected deliver error: %+v", err)
			}

			got, err := Lookup(db, []multiclique.Address{bound, free})
			assert.Nil(t, err)
			assert.Equal(t, tc.WantBound, got)
		})
	}
}

func TestHandlerRefreshesKeepAlive(t *testing.T) {
	db := store.MemStore()
	keys := mctest.PublicKeys(mctest.Key(1))
	assert.Nil(t, signers.Initialize(multiclique.WithHeight(context.Background(), 1), db, keys, 1))

	auth := &mctest.CtxAuth{Key: "auth"}
	ctx := auth.SetConditions(multiclique.WithHeight(context.Background(), 1000), multiclique.AccountCondition())
	tx := &mctest.Tx{Msg: &AttachPolicyMsg{
		Policy:   mctest.NewAddress(),
		Contexts: []multiclique.Address{mctest.NewAddress()},
	}}
	_, err := AttachPolicyHandler{auth: auth}.Deliver(ctx, db, tx)
	assert.Nil(t, err)

	r, err := signers.NewRegistryBucket().Load(db)
	assert.Nil(t, err)
	assert.Equal(t, int64(1000+signers.DefaultKeepAlive), r.ExpiresAt)
}
