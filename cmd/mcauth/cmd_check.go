package main

import (
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/iov-one/multiclique/x/clique"
)

func cmdCheck(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Read a signed transaction from standard input and check whether its
authorization request is accepted by the account. The carried message is not
executed.

Policies can update the state when authorizing, for example the spend limit
policy counts the spent amount. Those changes are discarded unless -commit is
used.
`)
		fl.PrintDefaults()
	}
	var (
		state    = addStateFlags(fl)
		commitFl = fl.Bool("commit", false, "Persist state changes made by the policies.")
	)
	fl.Parse(args)

	tx, err := readTx(input)
	if err != nil {
		return err
	}
	req, err := tx.GetAuthorization()
	if err != nil {
		return fmt.Errorf("invalid authorization: %s", err)
	}
	if req == nil {
		return errors.New("transaction is not signed")
	}

	a, cleanup, err := state.open()
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, err := a.Context()
	if err != nil {
		return err
	}
	cache := a.CacheWrap()
	if err := clique.NewEngine(resolver()).CheckAuthorization(ctx, cache, req); err != nil {
		cache.Discard()
		return fmt.Errorf("not authorized: %s", err)
	}
	if !*commitFl {
		cache.Discard()
		fmt.Fprintln(output, "authorized")
		return nil
	}
	if err := cache.Write(); err != nil {
		return fmt.Errorf("cannot write state: %s", err)
	}
	if _, err := a.Commit(); err != nil {
		return fmt.Errorf("cannot commit: %s", err)
	}
	fmt.Fprintln(output, "authorized")
	return nil
}
