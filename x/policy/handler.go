package policy

import (
	"github.com/iov-one/multiclique"
	"github.com/iov-one/multiclique/errors"
	"github.com/iov-one/multiclique/x"
	"github.com/iov-one/multiclique/x/signers"
)

// RegisterRoutes will instantiate and register all handlers in this package.
func RegisterRoutes(r multiclique.Registry, auth x.Authenticator) {
	r.Handle(pathAttachPolicyMsg, AttachPolicyHandler{auth: auth})
	r.Handle(pathDetachPolicyMsg, DetachPolicyHandler{auth: auth})
}

// AttachPolicyHandler processes AttachPolicyMsg.
type AttachPolicyHandler struct {
	auth x.Authenticator
}

var _ multiclique.Handler = AttachPolicyHandler{}

func (h AttachPolicyHandler) Check(ctx multiclique.Context, db multiclique.KVStore, tx multiclique.Tx) (*multiclique.CheckResult, error) {
	if err := h.apply(ctx, db, tx); err != nil {
		return nil, err
	}
	return &multiclique.CheckResult{}, nil
}

func (h AttachPolicyHandler) Deliver(ctx multiclique.Context, db multiclique.KVStore, tx multiclique.Tx) (*multiclique.DeliverResult, error) {
	if err := h.apply(ctx, db, tx); err != nil {
		return nil, err
	}
	return &multiclique.DeliverResult{}, nil
}

func (h AttachPolicyHandler) apply(ctx multiclique.Context, db multiclique.KVStore, tx multiclique.Tx) error {
	var msg *AttachPolicyMsg
	if err := multiclique.LoadMsg(tx, &msg); err != nil {
		return errors.Wrap(err, "load msg")
	}
	if err := x.RequireAccount(ctx, h.auth); err != nil {
		return err
	}
	if err := Attach(ctx, db, msg.Policy, msg.Contexts); err != nil {
		return err
	}
	return signers.KeepAlive(ctx, db)
}

// DetachPolicyHandler processes DetachPolicyMsg.
type DetachPolicyHandler struct {
	auth x.Authenticator
}

var _ multiclique.Handler = DetachPolicyHandler{}

func (h DetachPolicyHandler) Check(ctx multiclique.Context, db multiclique.KVStore, tx multiclique.Tx) (*multiclique.CheckResult, error) {
	if err := h.apply(ctx, db, tx); err != nil {
		return nil, err
	}
	return &multiclique.CheckResult{}, nil
}

func (h DetachPolicyHandler) Deliver(ctx multiclique.Context, db multiclique.KVStore, tx multiclique.Tx) (*multiclique.DeliverResult, error) {
	if err := h.apply(ctx, db, tx); err != nil {
		return nil, err
	}
	return &multiclique.DeliverResult{}, nil
}

func (h DetachPolicyHandler) apply(ctx multiclique.Context, db multiclique.KVStore, tx multiclique.Tx) error {
	var msg *DetachPolicyMsg
	if err := multiclique.LoadMsg(tx, &msg); err != nil {
		return errors.Wrap(err, "load msg")
	}
	if err := x.RequireAccount(ctx, h.auth); err != nil {
		return err
	}
	if err := Detach(ctx, db, msg.Contexts); err != nil {
		return err
	}
	return signers.KeepAlive(ctx, db)
}
