package mctest

import (
	"context"
	"fmt"

	"github.com/iov-one/multiclique"
)

// Auth is an x.Authenticator that grants a fixed set of conditions: Signer
// and all of Signers.
type Auth struct {
	Signer  multiclique.Condition
	Signers []multiclique.Condition
}

func (a *Auth) GetConditions(multiclique.Context) []multiclique.Condition {
	if a.Signer == nil {
		return a.Signers
	}
	conds := make([]multiclique.Condition, 0, len(a.Signers)+1)
	conds = append(conds, a.Signers...)
	return append(conds, a.Signer)
}

func (a *Auth) HasAddress(ctx multiclique.Context, addr multiclique.Address) bool {
	return hasAddress(a.GetConditions(ctx), addr)
}

// AccountAuth returns an authenticator that always grants the account
// condition. Use it to call governance handlers directly.
func AccountAuth() *Auth {
	return &Auth{Signer: multiclique.AccountCondition()}
}

// CtxAuth is an x.Authenticator that reads the granted conditions from the
// context, where they are stored by SetConditions under Key.
type CtxAuth struct {
	Key string
}

func (a *CtxAuth) SetConditions(ctx multiclique.Context, conds ...multiclique.Condition) multiclique.Context {
	return context.WithValue(ctx, a.Key, conds)
}

func (a *CtxAuth) GetConditions(ctx multiclique.Context) []multiclique.Condition {
	switch val := ctx.Value(a.Key).(type) {
	case nil:
		return nil
	case []multiclique.Condition:
		return val
	default:
		panic(fmt.Sprintf("context %q key holds %T", a.Key, val))
	}
}

func (a *CtxAuth) HasAddress(ctx multiclique.Context, addr multiclique.Address) bool {
	return hasAddress(a.GetConditions(ctx), addr)
}

func hasAddress(conds []multiclique.Condition, addr multiclique.Address) bool {
	for _, c := range conds {
		if addr.Equals(c.Address()) {
			return true
		}
	}
	return false
}
