package x

import (
	"github.com/iov-one/multiclique"
	"github.com/iov-one/multiclique/errors"
)

// Authenticator reveals which conditions were satisfied for the request
// carried by the context. Handlers receive it in their constructor, so tests
// can replace the clique engine with a static set of signers.
type Authenticator interface {
	GetConditions(multiclique.Context) []multiclique.Condition
	HasAddress(multiclique.Context, multiclique.Address) bool
}

// IsAccount returns true if the account itself authorized the request in
// this context.
func IsAccount(ctx multiclique.Context, auth Authenticator) bool {
	return auth.HasAddress(ctx, multiclique.AccountAddress())
}

// RequireAccount returns errors.ErrUnauthorized unless the account authorized
// the request.
func RequireAccount(ctx multiclique.Context, auth Authenticator) error {
	if IsAccount(ctx, auth) {
		return nil
	}
	return errors.Wrap(errors.ErrUnauthorized, "account authorization required")
}
