package main

import (
	"flag"
	"fmt"
	"io"

	"github.com/iov-one/multiclique/app"
	"github.com/iov-one/multiclique/x/clique"
)

func cmdSign(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Sign given transaction on behalf of the account. This is decoding a
transaction from standard input, adds a signature to its authorization
request and writes back to standard output the signed transaction.

Signing a transaction without an authorization request creates one. The
request contexts are taken from the -invoke flags. The account always
authorizes the invocation of itself with the function named after the
message path, so that context must not be given.
`)
		fl.PrintDefaults()
	}
	var (
		seedFl = fl.String("seed", env("MCAUTH_SEED", ""),
			"Hex encoded seed of the signer key. You can use MCAUTH_SEED environment variable to set it.")
		invokeFl = flInvocations(fl, "invoke",
			"Invocation to authorize, in the format function@address[,hexarg...]. Can be given many times.")
	)
	fl.Parse(args)

	key, err := privateKey(*seedFl)
	if err != nil {
		return fmt.Errorf("cannot load private key: %s", err)
	}
	tx, err := readTx(input)
	if err != nil {
		return err
	}

	if tx.Authorization == nil {
		req, err := newAuthorization(tx, *invokeFl)
		if err != nil {
			return err
		}
		tx.Authorization = req
	} else if len(*invokeFl) != 0 {
		return fmt.Errorf("transaction is already authorizing %d contexts", len(tx.Authorization.Contexts))
	}

	tx.Authorization.Signatures = append(tx.Authorization.Signatures, clique.Sign(key, tx.Authorization.Payload))
	return writeTx(output, tx)
}

// newAuthorization returns an unsigned authorization request of given
// transaction message.
func newAuthorization(tx *app.Tx, invocations []clique.Invocation) (*clique.AuthorizationRequest, error) {
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, err
	}
	payload, err := app.Payload(msg)
	if err != nil {
		return nil, fmt.Errorf("cannot compute payload: %s", err)
	}
	req := &clique.AuthorizationRequest{Payload: payload}
	for i := range invocations {
		req.Contexts = append(req.Contexts, clique.AuthContext{Invocation: &invocations[i]})
	}
	return req, nil
}
