package app

import (
	"context"

	"github.com/iov-one/multiclique"
	"github.com/iov-one/multiclique/errors"
	"github.com/tendermint/tendermint/libs/log"
)

// Application keeps the state of the account and processes transactions
// against it.
//
// Check runs against a scratch copy of the state that is dropped on every
// commit, Deliver modifies the state persisted by the next Commit. Each
// transaction is atomic, changes of a failed transaction are discarded.
type Application struct {
	logger log.Logger

	// Database state (committed, check, deliver....)
	store *CommitStore

	handler     multiclique.Handler
	initializer multiclique.Initializer

	// chainID is loaded from db in initialization
	// saved once in InitChain
	chainID string

	// height of the last commit
	height int64
}

// NewApplication returns an application using given store. State
// initialization from genesis is done by the initializer.
func NewApplication(store multiclique.CommitKVStore, handler multiclique.Handler, initializer multiclique.Initializer) (*Application, error) {
	cs, err := NewCommitStore(store)
	if err != nil {
		return nil, err
	}
	chainID, err := loadChainID(cs.DeliverStore())
	if err != nil {
		return nil, err
	}
	info, err := cs.CommitInfo()
	if err != nil {
		return nil, errors.Wrap(err, "commit info")
	}
	return &Application{
		logger:      log.NewNopLogger(),
		store:       cs,
		handler:     handler,
		initializer: initializer,
		chainID:     chainID,
		height:      info.Version,
	}, nil
}

// WithLogger sets the logger on the app
func (a *Application) WithLogger(logger log.Logger) *Application {
	a.logger = logger
	return a
}

// ChainID returns the chain id the state was initialized with, or an empty
// string before InitChain.
func (a *Application) ChainID() string {
	return a.chainID
}

// Height returns the height of the last commit.
func (a *Application) Height() int64 {
	return a.height
}

// InitChain initializes the state from the genesis and commits it. It can be
// called only once for the lifetime of the state.
func (a *Application) InitChain(gen Genesis) (multiclique.CommitID, error) {
	if a.chainID != "" {
		return multiclique.CommitID{}, errors.Wrapf(errors.ErrState, "already initialized with chain %q", a.chainID)
	}
	db := a.store.DeliverStore()
	if err := saveChainID(db, gen.ChainID); err != nil {
		return multiclique.CommitID{}, err
	}
	if err := a.initializer.FromGenesis(gen.AppState, db); err != nil {
		return multiclique.CommitID{}, errors.Wrap(err, "initialize state")
	}
	a.chainID = gen.ChainID
	a.logger.Info("state initialized", "chain_id", gen.ChainID)
	return a.Commit()
}

// Check validates the transaction against the check state.
func (a *Application) Check(tx multiclique.Tx) (*multiclique.CheckResult, error) {
	ctx, err := a.Context()
	if err != nil {
		return nil, err
	}
	cache := a.store.CheckStore().CacheWrap()
	res, err := a.handler.Check(ctx, cache, tx)
	if err != nil {
		cache.Discard()
		return nil, err
	}
	if err := cache.Write(); err != nil {
		return nil, errors.Wrap(err, "write check cache")
	}
	return res, nil
}

// Deliver executes the transaction against the deliver state. Changes are
// persisted by the next Commit.
func (a *Application) Deliver(tx multiclique.Tx) (*multiclique.DeliverResult, error) {
	ctx, err := a.Context()
	if err != nil {
		return nil, err
	}
	cache := a.store.DeliverStore().CacheWrap()
	res, err := a.handler.Deliver(ctx, cache, tx)
	if err != nil {
		cache.Discard()
		return nil, err
	}
	if err := cache.Write(); err != nil {
		return nil, errors.Wrap(err, "write deliver cache")
	}
	return res, nil
}

// Commit persists all delivered transactions.
func (a *Application) Commit() (multiclique.CommitID, error) {
	res, err := a.store.Commit()
	if err != nil {
		return res, errors.Wrap(err, "commit")
	}
	a.height = res.Version
	a.logger.Debug("commit synced", "height", res.Version)
	return res, nil
}

// ReadStore returns the state including delivered but not yet committed
// transactions. Use it for queries.
func (a *Application) ReadStore() multiclique.ReadOnlyKVStore {
	return a.store.DeliverStore()
}

// CacheWrap returns a scratch copy of the deliver state. Writing it makes
// the changes part of the next Commit.
func (a *Application) CacheWrap() multiclique.KVCacheWrap {
	return a.store.DeliverStore().CacheWrap()
}

// Context returns the context a transaction of the next block is processed
// with.
func (a *Application) Context() (multiclique.Context, error) {
	if a.chainID == "" {
		return nil, errors.Wrap(errors.ErrState, "state not initialized")
	}
	ctx := context.Background()
	ctx = multiclique.WithChainID(ctx, a.chainID)
	ctx = multiclique.WithHeight(ctx, a.height+1)
	ctx = multiclique.WithLogger(ctx, a.logger.With("height", a.height+1))
	return ctx, nil
}
