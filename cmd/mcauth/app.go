package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/iov-one/multiclique"
	"github.com/iov-one/multiclique/app"
	"github.com/iov-one/multiclique/store/iavl"
	"github.com/iov-one/multiclique/x/clique"
	"github.com/iov-one/multiclique/x/policy"
	"github.com/iov-one/multiclique/x/signers"
	"github.com/iov-one/multiclique/x/spendlimit"
	"github.com/iov-one/multiclique/x/utils"
	"github.com/tendermint/tendermint/libs/log"
)

// resolver returns the implementations of all policies known to this
// program.
func resolver() *policy.Router {
	r := policy.NewRouter()
	r.Register(spendlimit.Address(), spendlimit.Policy{})
	return r
}

// router returns a router with the handlers of all extensions.
func router() *app.Router {
	r := app.NewRouter()
	auth := clique.Authenticate{}
	signers.RegisterRoutes(r, auth)
	policy.RegisterRoutes(r, auth)
	spendlimit.RegisterRoutes(r, auth)
	return r
}

// msgTypes returns all messages that can be carried by a transaction.
func msgTypes() app.MsgTypes {
	types := make(app.MsgTypes)
	types.Register(func() multiclique.Msg { return &signers.AddSignerMsg{} })
	types.Register(func() multiclique.Msg { return &signers.RemoveSignerMsg{} })
	types.Register(func() multiclique.Msg { return &signers.SetDefaultThresholdMsg{} })
	types.Register(func() multiclique.Msg { return &signers.UpdateConfigurationMsg{} })
	types.Register(func() multiclique.Msg { return &policy.AttachPolicyMsg{} })
	types.Register(func() multiclique.Msg { return &policy.DetachPolicyMsg{} })
	types.Register(func() multiclique.Msg { return &spendlimit.SetLimitMsg{} })
	types.Register(func() multiclique.Msg { return &spendlimit.ResetLimitMsg{} })
	return types
}

// stack returns the handler processing all transactions.
func stack() multiclique.Handler {
	return app.ChainDecorators(
		utils.NewLogging(),
		utils.NewRecovery(),
		clique.NewDecorator(resolver()),
		utils.NewSavepoint().OnDeliver(),
	).WithHandler(router())
}

// initializer returns the initializer of all extensions.
func initializer() multiclique.Initializer {
	return multiclique.ChainInitializers(
		&signers.Initializer{},
		&policy.Initializer{},
		&spendlimit.Initializer{},
	)
}

// stateFlags registers the flags common to all commands that access the
// account state.
type stateFlags struct {
	db      *string
	genesis *string
	debug   *bool
}

func addStateFlags(fl *flag.FlagSet) stateFlags {
	return stateFlags{
		db: fl.String("db", env("MCAUTH_DB", ""),
			"Path to the directory of the persistent state. When empty, an in-memory state initialized from the genesis is used. You can use MCAUTH_DB environment variable to set it."),
		genesis: fl.String("genesis", env("MCAUTH_GENESIS", ""),
			"Path to the genesis file the state is initialized with. Required for a new state. You can use MCAUTH_GENESIS environment variable to set it."),
		debug: fl.Bool("debug", false, "Write debug logs to stderr."),
	}
}

// open returns an application with the state described by the flags. The
// returned function must be called to release the state.
func (f stateFlags) open() (*app.Application, func(), error) {
	var (
		store   iavl.CommitStore
		cleanup = func() {}
	)
	if *f.db == "" {
		store = iavl.MockCommitStore()
	} else {
		store = iavl.NewCommitStore(*f.db, "mcauth")
		cleanup = store.Close
	}

	logger := log.NewNopLogger()
	if *f.debug {
		logger = log.NewTMLogger(log.NewSyncWriter(os.Stderr))
	}

	a, err := app.NewApplication(store, stack(), initializer())
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	a.WithLogger(logger)

	if a.ChainID() == "" {
		if *f.genesis == "" {
			cleanup()
			return nil, nil, fmt.Errorf("state is not initialized, genesis file is required")
		}
		gen, err := app.LoadGenesis(*f.genesis)
		if err != nil {
			cleanup()
			return nil, nil, fmt.Errorf("cannot load genesis: %s", err)
		}
		if _, err := a.InitChain(*gen); err != nil {
			cleanup()
			return nil, nil, fmt.Errorf("cannot initialize state: %s", err)
		}
	}
	return a, cleanup, nil
}
