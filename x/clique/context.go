package clique

import (
	"context"

	"github.com/iov-one/multiclique"
	"github.com/iov-one/multiclique/x"
)

type contextKey int // local to the clique module

const (
	contextKeyAccount contextKey = iota
)

// withAccount is a private method, as only this module can grant the
// account condition.
func withAccount(ctx multiclique.Context) multiclique.Context {
	return context.WithValue(ctx, contextKeyAccount, multiclique.AccountCondition())
}

// Authenticate gets the account condition granted by the Decorator.
type Authenticate struct{}

var _ x.Authenticator = Authenticate{}

// GetConditions returns the account condition if the request was authorized.
func (Authenticate) GetConditions(ctx multiclique.Context) []multiclique.Condition {
	// (val, ok) form to return nil instead of panic if unset
	val, _ := ctx.Value(contextKeyAccount).(multiclique.Condition)
	if val == nil {
		return nil
	}
	return []multiclique.Condition{val}
}

// HasAddress returns true iff this address is in GetConditions
func (a Authenticate) HasAddress(ctx multiclique.Context, addr multiclique.Address) bool {
	for _, c := range a.GetConditions(ctx) {
		if addr.Equals(c.Address()) {
			return true
		}
	}
	return false
}
