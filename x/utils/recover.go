package utils

import (
	"github.com/tokenswap/swapper"
	"github.com/tokenswap/swapper/errors"
)

// Recovery stops a panic raised further down the stack from taking the node
// down. The panic is returned as an ErrPanic error and logged together with
// the path of the transaction that caused it.
type Recovery struct{}

var _ swapper.Decorator = Recovery{}

func NewRecovery() Recovery {
	return Recovery{}
}

func (Recovery) Check(ctx swapper.Context, store swapper.KVStore, tx swapper.Tx, next swapper.Checker) (res *swapper.CheckResult, err error) {
	defer contain(ctx, tx, &err)
	return next.Check(ctx, store, tx)
}

func (Recovery) Deliver(ctx swapper.Context, store swapper.KVStore, tx swapper.Tx, next swapper.Deliverer) (res *swapper.DeliverResult, err error) {
	defer contain(ctx, tx, &err)
	return next.Deliver(ctx, store, tx)
}

// contain must be deferred directly, recover has no effect otherwise.
func contain(ctx swapper.Context, tx swapper.Tx, err *error) {
	cause := recover()
	if cause == nil {
		return
	}
	*err = errors.Wrapf(errors.ErrPanic, "%v", cause)
	swapper.GetLogger(ctx).Error("transaction panicked",
		"path", swapper.GetPath(tx),
		"panic", cause)
}
