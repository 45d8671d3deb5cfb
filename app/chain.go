package app

import (
	"reflect"

	"github.com/iov-one/multiclique"
)

// Decorators is an ordered list of decorators that is not yet bound to a
// handler. The first decorator is the outermost one and runs first.
//
//   app.ChainDecorators(
//     utils.NewLogging(),
//     utils.NewRecovery(),
//     clique.NewDecorator(resolver),
//     utils.NewSavepoint().OnDeliver(),
//   ).WithHandler(router)
type Decorators []multiclique.Decorator

// ChainDecorators returns the given decorators in order. Nil values are
// skipped, so optional decorators can be passed without a check.
func ChainDecorators(chain ...multiclique.Decorator) Decorators {
	return Decorators(nil).Chain(chain...)
}

// Chain returns a copy with the decorators appended.
func (d Decorators) Chain(chain ...multiclique.Decorator) Decorators {
	res := make(Decorators, len(d), len(d)+len(chain))
	copy(res, d)
	for _, dec := range chain {
		if dec == nil {
			continue
		}
		if v := reflect.ValueOf(dec); v.Kind() == reflect.Ptr && v.IsNil() {
			continue
		}
		res = append(res, dec)
	}
	return res
}

// WithHandler binds the chain to the final handler.
func (d Decorators) WithHandler(h multiclique.Handler) multiclique.Handler {
	for i := len(d) - 1; i >= 0; i-- {
		h = decorated{dec: d[i], next: h}
	}
	return h
}

type decorated struct {
	dec  multiclique.Decorator
	next multiclique.Handler
}

func (s decorated) Check(ctx multiclique.Context, store multiclique.KVStore, tx multiclique.Tx) (*multiclique.CheckResult, error) {
	return s.dec.Check(ctx, store, tx, s.next)
}

func (s decorated) Deliver(ctx multiclique.Context, store multiclique.KVStore, tx multiclique.Tx) (*multiclique.DeliverResult, error) {
	return s.dec.Deliver(ctx, store, tx, s.next)
}
