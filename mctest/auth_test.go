package mctest

import (
	"context"
	"testing"

	"github.com/iov-one/multiclique"
	"github.com/iov-one/multiclique/mctest/assert"
)

func TestAuth(t *testing.T) {
	c1 := NewCondition()
	c2 := NewCondition()
	c3 := NewCondition()

	a := &Auth{Signer: c1, Signers: []multiclique.Condition{c2}}
	ctx := context.Background()
	assert.Equal(t, true, a.HasAddress(ctx, c1.Address()))
	assert.Equal(t, true, a.HasAddress(ctx, c2.Address()))
	assert.Equal(t, false, a.HasAddress(ctx, c3.Address()))

	ca := &CtxAuth{Key: "auth"}
	assert.Equal(t, false, ca.HasAddress(ctx, c1.Address()))
	ctx = ca.SetConditions(ctx, c1, c3)
	assert.Equal(t, true, ca.HasAddress(ctx, c3.Address()))
	assert.Equal(t, []multiclique.Condition{c1, c3}, ca.GetConditions(ctx))

	assert.Equal(t, true, AccountAuth().HasAddress(ctx, multiclique.AccountAddress()))
}

func TestKeysAreDeterministic(t *testing.T) {
	assert.Equal(t, Key(1).PublicKey(), Key(1).PublicKey())
	if Key(1).PublicKey().Equals(Key(2).PublicKey()) {
		t.Fatal("different seeds must produce different keys")
	}
	assert.Equal(t, 2, len(PublicKeys(Key(1), Key(2))))
}
