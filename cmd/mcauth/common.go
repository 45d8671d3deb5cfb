package main

import (
	"errors"
	"fmt"
	"io"
	"io/ioutil"

	"github.com/iov-one/multiclique"
	"github.com/iov-one/multiclique/app"
)

// readTx decodes a JSON serialized transaction.
func readTx(r io.Reader) (*app.Tx, error) {
	raw, err := ioutil.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("cannot read transaction: %s", err)
	}
	if len(raw) == 0 {
		return nil, errors.New("no input data")
	}
	tx, err := msgTypes().Decode(raw)
	if err != nil {
		return nil, fmt.Errorf("cannot deserialize transaction: %s", err)
	}
	return tx, nil
}

// writeTx serializes the transaction using JSON. Output of one command can
// be used as the input of another.
func writeTx(w io.Writer, tx *app.Tx) error {
	raw, err := tx.Marshal()
	if err != nil {
		return fmt.Errorf("cannot serialize transaction: %s", err)
	}
	_, err = fmt.Fprintln(w, string(raw))
	return err
}

// writeMsg validates given message and writes out an unsigned transaction
// that carries it.
func writeMsg(w io.Writer, msg multiclique.Msg) error {
	if err := msg.Validate(); err != nil {
		return fmt.Errorf("invalid message: %s", err)
	}
	return writeTx(w, &app.Tx{Msg: msg})
}
