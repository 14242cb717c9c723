package app

import (
	"fmt"
	"regexp"

	"github.com/tokenswap/swapper"
	"github.com/tokenswap/swapper/errors"
)

// ErrNoSuchPath is returned when no handler is registered for the path
// of a message.
var ErrNoSuchPath = errors.Register(10, "path not registered")

// isPath is the RegExp to ensure valid message paths
var isPath = regexp.MustCompile(`^[a-zA-Z0-9_/]+$`).MatchString

// Router allows us to register many handlers with different paths and
// dispatches every transaction to the one registered for its message.
type Router struct {
	routes map[string]swapper.Handler
}

var _ swapper.Registry = (*Router)(nil)
var _ swapper.Handler = (*Router)(nil)

// NewRouter returns a new empty router.
func NewRouter() *Router {
	return &Router{
		routes: make(map[string]swapper.Handler),
	}
}

// Handle registers a handler for the path of given message.
//
// Handle panics when the path is malformed or already registered.
func (r *Router) Handle(m swapper.Msg, h swapper.Handler) {
	path := m.Path()
	if !isPath(path) {
		panic(fmt.Sprintf("invalid path: %q", path))
	}
	if _, ok := r.routes[path]; ok {
		panic(fmt.Sprintf("re-registering route: %s", path))
	}
	r.routes[path] = h
}

// handler returns the handler registered for given path, or a handler
// that always fails with ErrNoSuchPath.
func (r *Router) handler(path string) swapper.Handler {
	if h, ok := r.routes[path]; ok {
		return h
	}
	return notFoundHandler(path)
}

// Check dispatches to the handler registered for the message path.
func (r *Router) Check(ctx swapper.Context, store swapper.KVStore, tx swapper.Tx) (*swapper.CheckResult, error) {
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, errors.Wrap(err, "cannot load msg")
	}
	return r.handler(msg.Path()).Check(ctx, store, tx)
}

// Deliver dispatches to the handler registered for the message path.
func (r *Router) Deliver(ctx swapper.Context, store swapper.KVStore, tx swapper.Tx) (*swapper.DeliverResult, error) {
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, errors.Wrap(err, "cannot load msg")
	}
	return r.handler(msg.Path()).Deliver(ctx, store, tx)
}

type notFoundHandler string

func (path notFoundHandler) Check(swapper.Context, swapper.KVStore, swapper.Tx) (*swapper.CheckResult, error) {
	return nil, errors.Wrap(ErrNoSuchPath, string(path))
}

func (path notFoundHandler) Deliver(swapper.Context, swapper.KVStore, swapper.Tx) (*swapper.DeliverResult, error) {
	return nil, errors.Wrap(ErrNoSuchPath, string(path))
}
