package app

import (
	"context"
	"fmt"
	"sync"

	"github.com/tendermint/tendermint/libs/log"
	"github.com/tokenswap/swapper"
	"github.com/tokenswap/swapper/errors"
)

// App processes raw transactions against a committed store.
//
// Delivered transactions accumulate in a deliver cache until Commit flushes
// them into the next version of the committed store. Checked transactions
// run against a separate cache that is dropped on every Commit. All calls
// are serialized, so two transactions never observe each other half way.
type App struct {
	mu sync.Mutex

	logger    log.Logger
	committed swapper.CommitKVStore
	deliver   swapper.KVCacheWrap
	check     swapper.KVCacheWrap

	decoder swapper.TxDecoder
	handler swapper.Handler

	// chainID is loaded from the store, or set once by InitChain
	chainID string
	// height is the version of the last commit
	height int64
}

// NewApp loads the latest version of the committed store and prepares the
// caches for processing transactions.
func NewApp(committed swapper.CommitKVStore, decoder swapper.TxDecoder, handler swapper.Handler, logger log.Logger) (*App, error) {
	if err := committed.LoadLatestVersion(); err != nil {
		return nil, errors.Wrap(err, "load latest version")
	}
	info, err := committed.LatestVersion()
	if err != nil {
		return nil, errors.Wrap(err, "latest version")
	}
	if logger == nil {
		logger = log.NewNopLogger()
	}
	a := &App{
		logger:    logger,
		committed: committed,
		deliver:   committed.CacheWrap(),
		check:     committed.CacheWrap(),
		decoder:   decoder,
		handler:   handler,
		height:    info.Version,
	}
	chainID, err := loadChainID(committed)
	if err != nil {
		return nil, err
	}
	a.chainID = chainID
	return a, nil
}

// ChainID returns the chain id, or an empty string if the chain was not
// initialized yet.
func (a *App) ChainID() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.chainID
}

// Height returns the version of the last commit.
func (a *App) Height() int64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.height
}

// Logger returns the application base logger
func (a *App) Logger() log.Logger {
	return a.logger
}

// InitChain stores the chain id and runs the initializer over the genesis
// state. It can be called only once for a given store. Changes become
// durable on the next Commit.
func (a *App) InitChain(gen Genesis, init swapper.Initializer) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.chainID != "" {
		return errors.Wrapf(errors.ErrInvalidInput, "chain %s already initialized", a.chainID)
	}
	if !swapper.IsValidChainID(gen.ChainID) {
		return errors.Wrapf(errors.ErrInvalidInput, "chain id: %q", gen.ChainID)
	}

	cache := a.deliver.CacheWrap()
	if err := saveChainID(cache, gen.ChainID); err != nil {
		cache.Discard()
		return err
	}
	if err := init.FromGenesis(gen.AppState, cache); err != nil {
		cache.Discard()
		return errors.Wrap(err, "genesis")
	}
	if err := cache.Write(); err != nil {
		return errors.Wrap(err, "write genesis")
	}
	a.chainID = gen.ChainID
	a.logger.Info("Chain initialized", "chain_id", gen.ChainID)
	return nil
}

// DeliverTx decodes and executes a transaction. On success its changes
// are part of the next Commit.
func (a *App) DeliverTx(txBytes []byte) (*swapper.DeliverResult, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	tx, err := a.loadTx(txBytes)
	if err != nil {
		return nil, err
	}
	ctx, err := a.context("deliver_tx", tx)
	if err != nil {
		return nil, err
	}
	return a.handler.Deliver(ctx, a.deliver, tx)
}

// CheckTx decodes and validates a transaction without modifying the
// state visible to DeliverTx.
func (a *App) CheckTx(txBytes []byte) (*swapper.CheckResult, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	tx, err := a.loadTx(txBytes)
	if err != nil {
		return nil, err
	}
	ctx, err := a.context("check_tx", tx)
	if err != nil {
		return nil, err
	}
	return a.handler.Check(ctx, a.check, tx)
}

// Commit flushes all delivered transactions into a new version of the
// committed store and resets the caches.
func (a *App) Commit() (swapper.CommitID, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if err := a.deliver.Write(); err != nil {
		return swapper.CommitID{}, errors.Wrap(err, "flush deliver cache")
	}
	a.check.Discard()

	id, err := a.committed.Commit()
	if err != nil {
		return id, errors.Wrap(err, "commit")
	}
	a.deliver = a.committed.CacheWrap()
	a.check = a.committed.CacheWrap()
	a.height = id.Version

	a.logger.Debug("Commit synced",
		"height", id.Version,
		"hash", fmt.Sprintf("%X", id.Hash),
	)
	return id, nil
}

// View runs fn against the latest state, including delivered but not yet
// committed transactions.
func (a *App) View(fn func(db swapper.ReadOnlyKVStore) error) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return fn(a.deliver)
}

func (a *App) context(call string, tx swapper.Tx) (swapper.Context, error) {
	if a.chainID == "" {
		return nil, errors.Wrap(errors.ErrNotFound, "chain not initialized")
	}
	ctx := context.Background()
	ctx = swapper.WithChainID(ctx, a.chainID)
	ctx = swapper.WithHeight(ctx, a.height+1)
	ctx = swapper.WithLogger(ctx, a.logger.With(
		"call", call,
		"path", swapper.GetPath(tx),
	))
	return ctx, nil
}

// loadTx calls the decoder, and capture any panics
func (a *App) loadTx(txBytes []byte) (tx swapper.Tx, err error) {
	defer errors.Recover(&err)
	tx, err = a.decoder(txBytes)
	if err != nil {
		return nil, errors.Wrap(err, "decode tx")
	}
	return tx, nil
}

// _sw: is a prefix for application internal data
var chainIDKey = []byte("_sw:chainID")

func loadChainID(db interface{ Get([]byte) ([]byte, error) }) (string, error) {
	raw, err := db.Get(chainIDKey)
	if err != nil {
		return "", errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return string(raw), nil
}

func saveChainID(db swapper.KVStore, chainID string) error {
	if err := db.Set(chainIDKey, []byte(chainID)); err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return nil
}
