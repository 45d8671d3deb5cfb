package main

import (
	"flag"
	"fmt"
	"io"

	"github.com/iov-one/multiclique"
	"github.com/iov-one/multiclique/crypto"
	"github.com/iov-one/multiclique/errors"
	"github.com/iov-one/multiclique/x/policy"
	"github.com/iov-one/multiclique/x/signers"
	"github.com/iov-one/multiclique/x/spendlimit"
)

func cmdSigners(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Print out the signers of the account together with the default threshold.
`)
		fl.PrintDefaults()
	}
	state := addStateFlags(fl)
	fl.Parse(args)

	a, cleanup, err := state.open()
	if err != nil {
		return err
	}
	defer cleanup()

	res := struct {
		Signers          []crypto.PublicKey `json:"signers"`
		DefaultThreshold uint32             `json:"default_threshold"`
		ExpiresAt        int64              `json:"expires_at"`
	}{
		Signers: []crypto.PublicKey{},
	}
	switch r, err := signers.NewRegistryBucket().Load(a.ReadStore()); {
	case err == nil:
		res.Signers = append(res.Signers, r.Signers...)
		res.DefaultThreshold = r.DefaultThreshold
		res.ExpiresAt = r.ExpiresAt
	case errors.ErrNotFound.Is(err):
		// Uninitialized registry.
	default:
		return fmt.Errorf("cannot load registry: %s", err)
	}
	return writeJSON(output, res)
}

func cmdPolicies(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Print out all contexts that are bound to a policy.
`)
		fl.PrintDefaults()
	}
	state := addStateFlags(fl)
	fl.Parse(args)

	a, cleanup, err := state.open()
	if err != nil {
		return err
	}
	defer cleanup()

	bound, err := policy.All(a.ReadStore())
	if err != nil {
		return fmt.Errorf("cannot list bindings: %s", err)
	}
	if bound == nil {
		bound = []policy.Bound{}
	}
	return writeJSON(output, bound)
}

func cmdSpent(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Print out the spend limit of a token contract and the amount already spent.
`)
		fl.PrintDefaults()
	}
	var (
		state    = addStateFlags(fl)
		targetFl = flAddress(fl, "target", "", "Address of the token contract.")
	)
	fl.Parse(args)

	if err := targetFl.Validate(); err != nil {
		return fmt.Errorf("invalid target: %s", err)
	}

	a, cleanup, err := state.open()
	if err != nil {
		return err
	}
	defer cleanup()

	db := a.ReadStore()
	limit, err := spendlimit.Limit(db, *targetFl)
	if err != nil {
		return fmt.Errorf("cannot load limit: %s", err)
	}
	spent, err := spendlimit.Spent(db, *targetFl)
	if err != nil {
		return fmt.Errorf("cannot load spent amount: %s", err)
	}
	return writeJSON(output, struct {
		Target multiclique.Address `json:"target"`
		Limit  int64               `json:"limit"`
		Spent  int64               `json:"spent"`
	}{
		Target: *targetFl,
		Limit:  limit,
		Spent:  spent,
	})
}
