package spendlimit

import (
	"github.com/iov-one/multiclique"
	"github.com/iov-one/multiclique/errors"
	"github.com/iov-one/multiclique/x"
)

// RegisterRoutes will instantiate and register all handlers in this package.
func RegisterRoutes(r multiclique.Registry, auth x.Authenticator) {
	r.Handle(pathSetLimitMsg, SetLimitHandler{auth: auth})
	r.Handle(pathResetLimitMsg, ResetLimitHandler{auth: auth})
}

// authorize returns an error unless the configured account authorized the
// request. The policy must be initialized.
func authorize(ctx multiclique.Context, db multiclique.ReadOnlyKVStore, auth x.Authenticator) error {
	if _, err := LoadConfiguration(db); err != nil {
		return err
	}
	return x.RequireAccount(ctx, auth)
}

// SetLimitHandler processes SetLimitMsg.
type SetLimitHandler struct {
	auth x.Authenticator
}

var _ multiclique.Handler = SetLimitHandler{}

func (h SetLimitHandler) Check(ctx multiclique.Context, db multiclique.KVStore, tx multiclique.Tx) (*multiclique.CheckResult, error) {
	if err := h.apply(ctx, db, tx); err != nil {
		return nil, err
	}
	return &multiclique.CheckResult{}, nil
}

func (h SetLimitHandler) Deliver(ctx multiclique.Context, db multiclique.KVStore, tx multiclique.Tx) (*multiclique.DeliverResult, error) {
	if err := h.apply(ctx, db, tx); err != nil {
		return nil, err
	}
	return &multiclique.DeliverResult{}, nil
}

func (h SetLimitHandler) apply(ctx multiclique.Context, db multiclique.KVStore, tx multiclique.Tx) error {
	var msg *SetLimitMsg
	if err := multiclique.LoadMsg(tx, &msg); err != nil {
		return errors.Wrap(err, "load msg")
	}
	if err := authorize(ctx, db, h.auth); err != nil {
		return err
	}
	return SetLimit(ctx, db, msg.Target, msg.Limit)
}

// ResetLimitHandler processes ResetLimitMsg.
type ResetLimitHandler struct {
	auth x.Authenticator
}

var _ multiclique.Handler = ResetLimitHandler{}

func (h ResetLimitHandler) Check(ctx multiclique.Context, db multiclique.KVStore, tx multiclique.Tx) (*multiclique.CheckResult, error) {
	if err := h.apply(ctx, db, tx); err != nil {
		return nil, err
	}
	return &multiclique.CheckResult{}, nil
}

func (h ResetLimitHandler) Deliver(ctx multiclique.Context, db multiclique.KVStore, tx multiclique.Tx) (*multiclique.DeliverResult, error) {
	if err := h.apply(ctx, db, tx); err != nil {
		return nil, err
	}
	return &multiclique.DeliverResult{}, nil
}

func (h ResetLimitHandler) apply(ctx multiclique.Context, db multiclique.KVStore, tx multiclique.Tx) error {
	var msg *ResetLimitMsg
	if err := multiclique.LoadMsg(tx, &msg); err != nil {
		return errors.Wrap(err, "load msg")
	}
	if err := authorize(ctx, db, h.auth); err != nil {
		return err
	}
	return ResetLimit(ctx, db, msg.Target)
}
