package utils

import (
	"github.com/iov-one/multiclique"
	"github.com/iov-one/multiclique/errors"
)

// Recovery converts a panic raised anywhere down the stack into an
// errors.ErrPanic result. The panic is logged with the path of the message
// being processed.
type Recovery struct{}

var _ multiclique.Decorator = Recovery{}

func NewRecovery() Recovery {
	return Recovery{}
}

func (r Recovery) Check(ctx multiclique.Context, store multiclique.KVStore, tx multiclique.Tx, next multiclique.Checker) (res *multiclique.CheckResult, err error) {
	defer r.recover(ctx, tx, &err)
	return next.Check(ctx, store, tx)
}

func (r Recovery) Deliver(ctx multiclique.Context, store multiclique.KVStore, tx multiclique.Tx, next multiclique.Deliverer) (res *multiclique.DeliverResult, err error) {
	defer r.recover(ctx, tx, &err)
	return next.Deliver(ctx, store, tx)
}

func (Recovery) recover(ctx multiclique.Context, tx multiclique.Tx, err *error) {
	p := recover()
	if p == nil {
		return
	}
	*err = errors.Wrapf(errors.ErrPanic, "%v", p)
	multiclique.GetLogger(ctx).Error("recovered from panic", "path", txPath(tx), "panic", p)
}

func txPath(tx multiclique.Tx) string {
	if tx == nil {
		return "<nil>"
	}
	msg, err := tx.GetMsg()
	if err != nil || msg == nil {
		return "<invalid>"
	}
	return msg.Path()
}
