package main

import (
	"flag"
	"fmt"
	"io"

	"github.com/iov-one/multiclique/errors"
)

func cmdSubmit(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Read a transaction from standard input, execute it against the account state
and commit the result.

Make sure to collect enough signatures before submitting the transaction.
`)
		fl.PrintDefaults()
	}
	state := addStateFlags(fl)
	fl.Parse(args)

	tx, err := readTx(input)
	if err != nil {
		return err
	}

	a, cleanup, err := state.open()
	if err != nil {
		return err
	}
	defer cleanup()

	if _, err := a.Deliver(tx); err != nil {
		code, log := errors.Info(err, *state.debug)
		return fmt.Errorf("transaction failed with code %d: %s", code, log)
	}
	cid, err := a.Commit()
	if err != nil {
		return fmt.Errorf("cannot commit: %s", err)
	}
	fmt.Fprintf(output, "committed %s at height %d\n", tx.Msg.Path(), cid.Version)
	return nil
}
