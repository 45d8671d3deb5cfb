package policy

import (
	"github.com/iov-one/multiclique"
	"github.com/iov-one/multiclique/errors"
)

// Attach binds the policy to all given contexts. No context can be bound
// already and the same context cannot be given twice. Nothing is written
// unless the whole batch is valid.
func Attach(ctx multiclique.Context, db multiclique.KVStore, policy multiclique.Address, contexts []multiclique.Address) error {
	if err := policy.Validate(); err != nil {
		return errors.Wrap(err, "policy")
	}
	bucket := NewBindingBucket()
	for i, c := range contexts {
		if err := c.Validate(); err != nil {
			return errors.Wrapf(err, "context %d", i)
		}
		for _, prev := range contexts[:i] {
			if prev.Equals(c) {
				return errors.Wrapf(ErrContractPolicyExists, "context %s given twice", c)
			}
		}
		ok, err := bucket.Has(db, c)
		if err != nil {
			return err
		}
		if ok {
			return errors.Wrapf(ErrContractPolicyExists, "context %s", c)
		}
	}

	for _, c := range contexts {
		if err := bucket.Bind(db, c, policy); err != nil {
			return errors.Wrapf(err, "bind %s", c)
		}
		multiclique.GetLogger(ctx).Info("policy/added",
			"context", c.String(),
			"policy", policy.String())
	}
	return nil
}

// Detach removes the bindings of all given contexts. Every context must be
// bound. Nothing is removed unless the whole batch is valid.
func Detach(ctx multiclique.Context, db multiclique.KVStore, contexts []multiclique.Address) error {
	bucket := NewBindingBucket()
	for _, c := range contexts {
		ok, err := bucket.Has(db, c)
		if err != nil {
			return err
		}
		if !ok {
			return errors.Wrapf(ErrContractPolicyDoesNotExist, "context %s", c)
		}
	}

	for _, c := range contexts {
		if err := bucket.Delete(db, c); err != nil {
			return errors.Wrapf(err, "unbind %s", c)
		}
		multiclique.GetLogger(ctx).Info("policy/removed", "context", c.String())
	}
	return nil
}

// Lookup returns the policies bound to given contexts, in the request order.
// Unbound contexts are omitted.
func Lookup(db multiclique.ReadOnlyKVStore, contexts []multiclique.Address) ([]multiclique.Address, error) {
	bucket := NewBindingBucket()
	res := make([]multiclique.Address, 0, len(contexts))
	for _, c := range contexts {
		b, err := bucket.GetBinding(db, c)
		if err != nil {
			return nil, err
		}
		if b != nil {
			res = append(res, b.Policy)
		}
	}
	return res, nil
}

// PolicyOf returns the policy bound to given context. The second value is
// false if the context is not bound.
func PolicyOf(db multiclique.ReadOnlyKVStore, context multiclique.Address) (multiclique.Address, bool, error) {
	b, err := NewBindingBucket().GetBinding(db, context)
	if err != nil || b == nil {
		return nil, false, err
	}
	return b.Policy, true, nil
}

// All returns every binding, ordered by the context address.
func All(db multiclique.ReadOnlyKVStore) ([]Bound, error) {
	return NewBindingBucket().AllBindings(db)
}
