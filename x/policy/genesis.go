package policy

import (
	"context"

	"github.com/iov-one/multiclique"
	"github.com/iov-one/multiclique/errors"
)

// Initializer fulfils the Initializer interface to load data from the genesis
// file
type Initializer struct{}

var _ multiclique.Initializer = (*Initializer)(nil)

// FromGenesis binds the policies declared in the "policies" section.
func (*Initializer) FromGenesis(opts multiclique.Options, db multiclique.KVStore) error {
	var policies []struct {
		Policy   multiclique.Address   `json:"policy"`
		Contexts []multiclique.Address `json:"contexts"`
	}
	if err := opts.ReadOptions("policies", &policies); err != nil {
		return err
	}
	for i, p := range policies {
		if err := Attach(context.Background(), db, p.Policy, p.Contexts); err != nil {
			return errors.Wrapf(err, "policy %d", i)
		}
	}
	return nil
}
