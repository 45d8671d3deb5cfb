package clique

import (
	"github.com/iov-one/multiclique"
	"github.com/iov-one/multiclique/crypto"
	"github.com/iov-one/multiclique/errors"
	"github.com/iov-one/multiclique/store"
	"github.com/iov-one/multiclique/x/policy"
	"github.com/iov-one/multiclique/x/signers"
)

// Engine decides authorization requests.
type Engine struct {
	resolver policy.Resolver
}

// NewEngine returns an engine that uses given resolver to find the
// implementation of bound policies.
func NewEngine(resolver policy.Resolver) *Engine {
	return &Engine{resolver: resolver}
}

// CheckAuthorization returns nil if the request is authorized. Policy state
// changes are written to db only in that case, any failure leaves db
// untouched.
func (e *Engine) CheckAuthorization(ctx multiclique.Context, db multiclique.KVStore, req *AuthorizationRequest) error {
	if err := req.Validate(); err != nil {
		return errors.Wrap(err, "invalid request")
	}

	cache := cacheWrap(db)
	if err := e.check(ctx, cache, req); err != nil {
		cache.Discard()
		return err
	}
	if err := cache.Write(); err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return nil
}

func cacheWrap(db multiclique.KVStore) multiclique.KVCacheWrap {
	if c, ok := db.(multiclique.CacheableKVStore); ok {
		return c.CacheWrap()
	}
	return store.NewBTreeCacheWrap(db, db.NewBatch(), nil)
}

func (e *Engine) check(ctx multiclique.Context, db multiclique.KVStore, req *AuthorizationRequest) error {
	registry, err := signers.NewRegistryBucket().Load(db)
	if err != nil {
		return errors.Wrap(err, "signer registry")
	}

	// The same signer may be presented more than once and every
	// presentation is counted.
	for i, sig := range req.Signatures {
		if !registry.Contains(sig.PublicKey) {
			return errors.Wrapf(ErrUnknownSigner, "signature %d: %s", i, sig.PublicKey)
		}
		if !sig.PublicKey.Verify(req.Payload, sig.Signature) {
			return errors.Wrapf(ErrInvalidSignature, "signature %d: %s", i, sig.PublicKey)
		}
	}
	numSigners := uint32(len(req.Signatures))

	for i, c := range req.Contexts {
		switch {
		case c.Invocation != nil:
			if err := e.checkInvocation(ctx, db, *c.Invocation, registry.DefaultThreshold, numSigners, registry.Signers); err != nil {
				return errors.Wrapf(err, "context %d", i)
			}
		case c.ContractCreation != nil:
			// Contract creation is not guarded by any threshold.
		}
	}
	return nil
}

func (e *Engine) checkInvocation(
	ctx multiclique.Context,
	db multiclique.KVStore,
	inv Invocation,
	defaultThreshold uint32,
	numSigners uint32,
	registered []crypto.PublicKey,
) error {
	policyID, ok, err := policy.PolicyOf(db, inv.Target)
	if err != nil {
		return errors.Wrap(err, "policy lookup")
	}
	if !ok {
		if defaultThreshold > numSigners {
			return errors.Wrapf(ErrDefaultThresholdNotMet, "%d of %d signatures", numSigners, defaultThreshold)
		}
		return nil
	}

	capability, err := e.resolver.Capability(policyID)
	if err != nil {
		return errors.Wrap(err, "resolve policy")
	}
	required, err := capability.Threshold(ctx, db, inv, numSigners, registered)
	if err != nil {
		return errors.Wrap(err, "policy threshold")
	}
	if required > numSigners {
		return errors.Wrapf(ErrPolicyThresholdNotMet, "%d of %d signatures", numSigners, required)
	}
	if err := capability.Run(ctx, db, inv, numSigners, registered); err != nil {
		return errors.Wrap(err, "run policy")
	}
	return nil
}
