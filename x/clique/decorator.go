package clique

import (
	"github.com/iov-one/multiclique"
	"github.com/iov-one/multiclique/errors"
	"github.com/iov-one/multiclique/x/policy"
)

// AuthTx is implemented by transactions that ask the account to authorize
// them.
type AuthTx interface {
	// GetAuthorization returns the request or nil if the transaction
	// does not carry one.
	GetAuthorization() (*AuthorizationRequest, error)
}

// Decorator runs the authorization decision before calling down the stack.
// The decision always includes the self invocation of the carried message,
// so the account condition is granted only when the rules of the account
// itself accept that message.
type Decorator struct {
	engine *Engine
}

var _ multiclique.Decorator = Decorator{}

// NewDecorator returns a decorator using given resolver for bound policies.
func NewDecorator(resolver policy.Resolver) Decorator {
	return Decorator{engine: NewEngine(resolver)}
}

// Check authorizes the transaction before calling down the stack.
func (d Decorator) Check(ctx multiclique.Context, store multiclique.KVStore, tx multiclique.Tx, next multiclique.Checker) (*multiclique.CheckResult, error) {
	ctx, err := d.authorize(ctx, store, tx)
	if err != nil {
		return nil, err
	}
	return next.Check(ctx, store, tx)
}

// Deliver authorizes the transaction before calling down the stack.
func (d Decorator) Deliver(ctx multiclique.Context, store multiclique.KVStore, tx multiclique.Tx, next multiclique.Deliverer) (*multiclique.DeliverResult, error) {
	ctx, err := d.authorize(ctx, store, tx)
	if err != nil {
		return nil, err
	}
	return next.Deliver(ctx, store, tx)
}

func (d Decorator) authorize(ctx multiclique.Context, store multiclique.KVStore, tx multiclique.Tx) (multiclique.Context, error) {
	atx, ok := tx.(AuthTx)
	if !ok {
		return ctx, nil
	}
	req, err := atx.GetAuthorization()
	if err != nil {
		return ctx, errors.Wrap(err, "authorization request")
	}
	if req == nil {
		return ctx, nil
	}
	msg, err := tx.GetMsg()
	if err != nil {
		return ctx, errors.Wrap(err, "authorized message")
	}
	if msg == nil {
		return ctx, errors.Wrap(errors.ErrEmpty, "authorized message")
	}
	req = req.ForMessage(msg.Path())

	log := multiclique.GetLogger(ctx)
	if err := d.engine.CheckAuthorization(ctx, store, req); err != nil {
		log.Debug("authorization rejected",
			"path", multiclique.GetPath(tx),
			"err", err.Error())
		return ctx, err
	}
	log.Debug("authorization granted",
		"path", multiclique.GetPath(tx),
		"signatures", len(req.Signatures),
		"contexts", len(req.Contexts))
	return withAccount(ctx), nil
}
