package signers

import (
	"github.com/iov-one/multiclique"
	"github.com/iov-one/multiclique/errors"
	"github.com/iov-one/multiclique/gconf"
	"github.com/iov-one/multiclique/x"
)

// RegisterRoutes will instantiate and register all handlers in this package.
func RegisterRoutes(r multiclique.Registry, auth x.Authenticator) {
	r.Handle(pathAddSignerMsg, &AddSignerHandler{auth: auth})
	r.Handle(pathRemoveSignerMsg, &RemoveSignerHandler{auth: auth})
	r.Handle(pathSetDefaultThresholdMsg, &SetDefaultThresholdHandler{auth: auth})
	r.Handle(pathUpdateConfigurationMsg, gconf.NewUpdateConfigurationHandler(packageName, &Configuration{}, auth))
}

// authorize returns an error unless the account itself authorized the
// request.
func authorize(ctx multiclique.Context, auth x.Authenticator) error {
	return x.RequireAccount(ctx, auth)
}

// AddSignerHandler processes AddSignerMsg.
type AddSignerHandler struct {
	auth x.Authenticator
}

var _ multiclique.Handler = (*AddSignerHandler)(nil)

func (h *AddSignerHandler) Check(ctx multiclique.Context, db multiclique.KVStore, tx multiclique.Tx) (*multiclique.CheckResult, error) {
	msg, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	if err := AddSigner(ctx, db, msg.PublicKey); err != nil {
		return nil, err
	}
	return &multiclique.CheckResult{}, nil
}

func (h *AddSignerHandler) Deliver(ctx multiclique.Context, db multiclique.KVStore, tx multiclique.Tx) (*multiclique.DeliverResult, error) {
	msg, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	if err := AddSigner(ctx, db, msg.PublicKey); err != nil {
		return nil, err
	}
	return &multiclique.DeliverResult{}, nil
}

func (h *AddSignerHandler) validate(ctx multiclique.Context, tx multiclique.Tx) (*AddSignerMsg, error) {
	var msg *AddSignerMsg
	if err := multiclique.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if err := authorize(ctx, h.auth); err != nil {
		return nil, err
	}
	return msg, nil
}

// RemoveSignerHandler processes RemoveSignerMsg.
type RemoveSignerHandler struct {
	auth x.Authenticator
}

var _ multiclique.Handler = (*RemoveSignerHandler)(nil)

func (h *RemoveSignerHandler) Check(ctx multiclique.Context, db multiclique.KVStore, tx multiclique.Tx) (*multiclique.CheckResult, error) {
	msg, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	if err := RemoveSigner(ctx, db, msg.PublicKey); err != nil {
		return nil, err
	}
	return &multiclique.CheckResult{}, nil
}

func (h *RemoveSignerHandler) Deliver(ctx multiclique.Context, db multiclique.KVStore, tx multiclique.Tx) (*multiclique.DeliverResult, error) {
	msg, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	if err := RemoveSigner(ctx, db, msg.PublicKey); err != nil {
		return nil, err
	}
	return &multiclique.DeliverResult{}, nil
}

func (h *RemoveSignerHandler) validate(ctx multiclique.Context, tx multiclique.Tx) (*RemoveSignerMsg, error) {
	var msg *RemoveSignerMsg
	if err := multiclique.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if err := authorize(ctx, h.auth); err != nil {
		return nil, err
	}
	return msg, nil
}

// SetDefaultThresholdHandler processes SetDefaultThresholdMsg.
type SetDefaultThresholdHandler struct {
	auth x.Authenticator
}

var _ multiclique.Handler = (*SetDefaultThresholdHandler)(nil)

func (h *SetDefaultThresholdHandler) Check(ctx multiclique.Context, db multiclique.KVStore, tx multiclique.Tx) (*multiclique.CheckResult, error) {
	msg, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	if err := SetDefaultThreshold(ctx, db, msg.Threshold); err != nil {
		return nil, err
	}
	return &multiclique.CheckResult{}, nil
}

func (h *SetDefaultThresholdHandler) Deliver(ctx multiclique.Context, db multiclique.KVStore, tx multiclique.Tx) (*multiclique.DeliverResult, error) {
	msg, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	if err := SetDefaultThreshold(ctx, db, msg.Threshold); err != nil {
		return nil, err
	}
	return &multiclique.DeliverResult{}, nil
}

func (h *SetDefaultThresholdHandler) validate(ctx multiclique.Context, tx multiclique.Tx) (*SetDefaultThresholdMsg, error) {
	var msg *SetDefaultThresholdMsg
	if err := multiclique.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if err := authorize(ctx, h.auth); err != nil {
		return nil, err
	}
	return msg, nil
}
