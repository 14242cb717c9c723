package utils

import (
	"github.com/tokenswap/swapper"
	"github.com/tokenswap/swapper/errors"
)

// Savepoint will isolate all data inside of the call,
// and commit/rollback to savepoint based on if error
type Savepoint struct {
	onCheck   bool
	onDeliver bool
}

var _ swapper.Decorator = Savepoint{}

// NewSavepoint creates a Savepoint decorator,
// but you must call OnCheck/OnDeliver so it will be triggered
func NewSavepoint() Savepoint {
	return Savepoint{}
}

// OnCheck returns a savepoint that will trigger on CheckTx
func (s Savepoint) OnCheck() Savepoint {
	s.onCheck = true
	return s
}

// OnDeliver returns a savepoint that will trigger on DeliverTx
func (s Savepoint) OnDeliver() Savepoint {
	s.onDeliver = true
	return s
}

// Check will optionally set a checkpoint
func (s Savepoint) Check(ctx swapper.Context, store swapper.KVStore, tx swapper.Tx, next swapper.Checker) (*swapper.CheckResult, error) {
	cache, ok := cacheWrap(store, s.onCheck)
	if !ok {
		return next.Check(ctx, store, tx)
	}
	res, err := next.Check(ctx, cache, tx)
	if err := settle(cache, err); err != nil {
		return nil, err
	}
	return res, nil
}

// Deliver will optionally set a checkpoint
func (s Savepoint) Deliver(ctx swapper.Context, store swapper.KVStore, tx swapper.Tx, next swapper.Deliverer) (*swapper.DeliverResult, error) {
	cache, ok := cacheWrap(store, s.onDeliver)
	if !ok {
		return next.Deliver(ctx, store, tx)
	}
	res, err := next.Deliver(ctx, cache, tx)
	if err := settle(cache, err); err != nil {
		return nil, err
	}
	return res, nil
}

func cacheWrap(store swapper.KVStore, active bool) (swapper.KVCacheWrap, bool) {
	if !active {
		return nil, false
	}
	cstore, ok := store.(swapper.CacheableKVStore)
	if !ok {
		return nil, false
	}
	return cstore.CacheWrap(), true
}

// settle discards all changes if the call failed, otherwise writes them
// to the parent store.
func settle(cache swapper.KVCacheWrap, callErr error) error {
	if callErr != nil {
		cache.Discard()
		return callErr
	}
	if err := cache.Write(); err != nil {
		return errors.Wrap(err, "writing savepoint")
	}
	return nil
}
