package app

import (
	"reflect"

	"github.com/tokenswap/swapper"
)

// Decorators holds a chain of decorators, not yet resolved by a Handler
type Decorators struct {
	chain []swapper.Decorator
}

/*
ChainDecorators takes a chain of decorators,
and upon adding a final Handler (often a Router),
returns a Handler that will execute this whole stack.

  app.ChainDecorators(
    utils.NewLogging(),
    utils.NewRecovery(),
    sigs.NewDecorator(),
    utils.NewSavepoint().OnCheck().OnDeliver(),
  ).WithHandler(
    app.NewRouter(),
  )
*/
func ChainDecorators(chain ...swapper.Decorator) Decorators {
	return Decorators{}.Chain(chain...)
}

// Chain allows us to keep adding more Decorators to the chain.
// Nil decorators, including typed nil pointers, are skipped.
func (d Decorators) Chain(chain ...swapper.Decorator) Decorators {
	next := make([]swapper.Decorator, 0, len(d.chain)+len(chain))
	next = append(next, d.chain...)
	for _, dec := range chain {
		if isNil(dec) {
			continue
		}
		next = append(next, dec)
	}
	return Decorators{chain: next}
}

func isNil(d swapper.Decorator) bool {
	if d == nil {
		return true
	}
	v := reflect.ValueOf(d)
	return v.Kind() == reflect.Ptr && v.IsNil()
}

// WithHandler resolves the stack and returns a concrete Handler
// that will pass through the chain of decorators before calling
// the final Handler.
func (d Decorators) WithHandler(h swapper.Handler) swapper.Handler {
	// the first decorator in the chain is the outermost one
	for i := len(d.chain) - 1; i >= 0; i-- {
		h = step{d: d.chain[i], next: h}
	}
	return h
}

// step binds one decorator to the handler it wraps.
type step struct {
	d    swapper.Decorator
	next swapper.Handler
}

var _ swapper.Handler = step{}

func (s step) Check(ctx swapper.Context, store swapper.KVStore, tx swapper.Tx) (*swapper.CheckResult, error) {
	return s.d.Check(ctx, store, tx, s.next)
}

func (s step) Deliver(ctx swapper.Context, store swapper.KVStore, tx swapper.Tx) (*swapper.DeliverResult, error) {
	return s.d.Deliver(ctx, store, tx, s.next)
}
