package mctest

import "github.com/iov-one/multiclique"

// Handler is a mock implementation of the multiclique.Handler interface.
//
// Set CheckErr or DeliverErr to force error response for corresponding
// method. Each method call is counted.
type Handler struct {
	checkCall   int
	CheckResult multiclique.CheckResult
	CheckErr    error

	deliverCall   int
	DeliverResult multiclique.DeliverResult
	DeliverErr    error

	// OnCall if set is called with the context of every call. It can
	// be used to inspect the context prepared by a decorator.
	OnCall func(ctx multiclique.Context, db multiclique.KVStore)
}

var _ multiclique.Handler = (*Handler)(nil)

func (h *Handler) Check(ctx multiclique.Context, db multiclique.KVStore, tx multiclique.Tx) (*multiclique.CheckResult, error) {
	h.checkCall++
	if h.OnCall != nil {
		h.OnCall(ctx, db)
	}
	if h.CheckErr != nil {
		return nil, h.CheckErr
	}
	res := h.CheckResult
	return &res, nil
}

func (h *Handler) Deliver(ctx multiclique.Context, db multiclique.KVStore, tx multiclique.Tx) (*multiclique.DeliverResult, error) {
	h.deliverCall++
	if h.OnCall != nil {
		h.OnCall(ctx, db)
	}
	if h.DeliverErr != nil {
		return nil, h.DeliverErr
	}
	res := h.DeliverResult
	return &res, nil
}

func (h *Handler) CheckCallCount() int {
	return h.checkCall
}

func (h *Handler) DeliverCallCount() int {
	return h.deliverCall
}

func (h *Handler) CallCount() int {
	return h.checkCall + h.deliverCall
}

// Decorate returns a handler that calls given decorator before the handler.
func Decorate(h multiclique.Handler, d multiclique.Decorator) multiclique.Handler {
	return &decoratedHandler{hn: h, dc: d}
}

type decoratedHandler struct {
	hn multiclique.Handler
	dc multiclique.Decorator
}

var _ multiclique.Handler = (*decoratedHandler)(nil)

func (d *decoratedHandler) Check(ctx multiclique.Context, db multiclique.KVStore, tx multiclique.Tx) (*multiclique.CheckResult, error) {
	return d.dc.Check(ctx, db, tx, d.hn)
}

func (d *decoratedHandler) Deliver(ctx multiclique.Context, db multiclique.KVStore, tx multiclique.Tx) (*multiclique.DeliverResult, error) {
	return d.dc.Deliver(ctx, db, tx, d.hn)
}
