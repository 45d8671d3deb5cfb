package signers

import (
	"context"

	"github.com/iov-one/multiclique"
	"github.com/iov-one/multiclique/crypto"
	"github.com/iov-one/multiclique/errors"
	"github.com/iov-one/multiclique/gconf"
)

// Initializer fulfils the Initializer interface to load data from the genesis
// file
type Initializer struct{}

var _ multiclique.Initializer = (*Initializer)(nil)

// FromGenesis stores the optional configuration and creates the registry.
// Genesis without a signers section leaves the registry uninitialized.
func (*Initializer) FromGenesis(opts multiclique.Options, db multiclique.KVStore) error {
	switch err := gconf.InitConfig(db, opts, packageName, &Configuration{}); {
	case err == nil:
	case errors.ErrNotFound.Is(err):
		// Default configuration is used.
	default:
		return errors.Wrap(err, "configuration")
	}

	var state struct {
		Signers          []crypto.PublicKey `json:"signers"`
		DefaultThreshold uint32             `json:"default_threshold"`
	}
	if _, ok := opts["signers"]; !ok {
		return nil
	}
	if err := opts.ReadOptions("signers", &state); err != nil {
		return err
	}
	if err := Initialize(context.Background(), db, state.Signers, state.DefaultThreshold); err != nil {
		return errors.Wrap(err, "initialize registry")
	}
	return nil
}
