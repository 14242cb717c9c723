package swaptest

import "github.com/tokenswap/swapper"

// Handler is a mock implementation of the swapper.Handler interface.
// It returns the configured result and counts every call.
type Handler struct {
	checkCall   int
	CheckResult swapper.CheckResult
	CheckErr    error

	deliverCall   int
	DeliverResult swapper.DeliverResult
	DeliverErr    error
}

var _ swapper.Handler = (*Handler)(nil)

func (h *Handler) Check(ctx swapper.Context, db swapper.KVStore, tx swapper.Tx) (*swapper.CheckResult, error) {
	h.checkCall++
	res := h.CheckResult
	return &res, h.CheckErr
}

func (h *Handler) Deliver(ctx swapper.Context, db swapper.KVStore, tx swapper.Tx) (*swapper.DeliverResult, error) {
	h.deliverCall++
	res := h.DeliverResult
	return &res, h.DeliverErr
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

// Decorate wraps a handler with a decorator for tests.
func Decorate(h swapper.Handler, d swapper.Decorator) swapper.Handler {
	return &decoratedHandler{hn: h, dc: d}
}

type decoratedHandler struct {
	hn swapper.Handler
	dc swapper.Decorator
}

var _ swapper.Handler = (*decoratedHandler)(nil)

func (d *decoratedHandler) Check(ctx swapper.Context, db swapper.KVStore, tx swapper.Tx) (*swapper.CheckResult, error) {
	return d.dc.Check(ctx, db, tx, d.hn)
}

func (d *decoratedHandler) Deliver(ctx swapper.Context, db swapper.KVStore, tx swapper.Tx) (*swapper.DeliverResult, error) {
	return d.dc.Deliver(ctx, db, tx, d.hn)
}
