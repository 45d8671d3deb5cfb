package spendlimit

import (
	"context"

	"github.com/iov-one/multiclique"
	"github.com/iov-one/multiclique/errors"
)

// Initializer fulfils the Initializer interface to load data from the genesis
// file
type Initializer struct{}

var _ multiclique.Initializer = (*Initializer)(nil)

// FromGenesis initializes the policy from the "spendlimit" section. Genesis
// without that section leaves the policy uninitialized.
func (*Initializer) FromGenesis(opts multiclique.Options, db multiclique.KVStore) error {
	if _, ok := opts["spendlimit"]; !ok {
		return nil
	}
	var state struct {
		Configuration
		Limits []struct {
			Target multiclique.Address `json:"target"`
			Limit  int64               `json:"limit"`
		} `json:"limits"`
	}
	if err := opts.ReadOptions("spendlimit", &state); err != nil {
		return err
	}

	ctx := context.Background()
	if err := Init(ctx, db, state.Configuration); err != nil {
		return errors.Wrap(err, "init")
	}
	for i, l := range state.Limits {
		msg := SetLimitMsg{Target: l.Target, Limit: l.Limit}
		if err := msg.Validate(); err != nil {
			return errors.Wrapf(err, "limit %d", i)
		}
		if err := SetLimit(ctx, db, l.Target, l.Limit); err != nil {
			return errors.Wrapf(err, "limit %d", i)
		}
	}
	return nil
}
