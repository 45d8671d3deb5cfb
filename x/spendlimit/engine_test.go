package spendlimit

import (
	"context"
	"crypto/sha256"
	"testing"

	"github.com/iov-one/multiclique"
	"github.com/iov-one/multiclique/crypto"
	"github.com/iov-one/multiclique/mctest"
	"github.com/iov-one/multiclique/mctest/assert"
	"github.com/iov-one/multiclique/store"
	"github.com/iov-one/multiclique/x/clique"
	"github.com/iov-one/multiclique/x/policy"
	"github.com/iov-one/multiclique/x/signers"
)

func TestAuthorizationWithSpendLimit(t *testing.T) {
	db := store.MemStore()
	ctx := context.Background()
	keys := []crypto.PrivateKey{mctest.Key(1), mctest.Key(2), mctest.Key(3), mctest.Key(4)}
	conf := testConfiguration()
	token := mctest.NewAddress()

	assert.Nil(t, signers.Initialize(ctx, db, mctest.PublicKeys(keys...), 4))
	assert.Nil(t, Init(ctx, db, conf))
	assert.Nil(t, SetLimit(ctx, db, token, 1000))
	assert.Nil(t, policy.Attach(ctx, db, Address(), []multiclique.Address{token, conf.Core}))

	resolver := policy.NewRouter()
	resolver.Register(Address(), Policy{})
	engine := clique.NewEngine(resolver)

	authorize := func(signed int, contexts ...clique.AuthContext) error {
		h := sha256.Sum256([]byte("tx"))
		req := clique.AuthorizationRequest{Payload: h[:], Contexts: contexts}
		for _, k := range keys[:signed] {
			req.Signatures = append(req.Signatures, clique.Sign(k, h[:]))
		}
		return engine.CheckAuthorization(ctx, db, &req)
	}
	xfer := func(amount int64) clique.AuthContext {
		return clique.AuthContext{Invocation: &clique.Invocation{
			Target:   token,
			Function: "xfer",
			Args:     [][]byte{conf.Account, mctest.NewAddress(), EncodeAmount(amount)},
		}}
	}

	// Thresholds are relative to the presented signatures, so the limit
	// is what guards the token.
	assert.Nil(t, authorize(1, xfer(400)))
	assert.Nil(t, authorize(2, xfer(400)))
	assert.IsErr(t, ErrSpendLimitExceeded, authorize(4, xfer(400)))

	spent, err := Spent(db, token)
	assert.Nil(t, err)
	assert.Equal(t, int64(800), spent)

	// A rejected context rolls back the accounting of the earlier ones.
	assert.Nil(t, ResetLimit(ctx, db, token))
	assert.IsErr(t, ErrSpendLimitExceeded, authorize(2, xfer(600), xfer(600)))
	spent, err = Spent(db, token)
	assert.Nil(t, err)
	assert.Equal(t, int64(0), spent)

	destroy := clique.AuthContext{Invocation: &clique.Invocation{Target: conf.Core, Function: "destroy_dao"}}
	assert.Nil(t, authorize(2, destroy))

	// Unbound contracts fall back to the default threshold.
	other := clique.AuthContext{Invocation: &clique.Invocation{Target: conf.Votes, Function: "fault_proposal"}}
	assert.IsErr(t, clique.ErrDefaultThresholdNotMet, authorize(3, other))
	assert.Nil(t, authorize(4, other))
}
