package main

import (
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/iov-one/multiclique/crypto"
	"github.com/iov-one/multiclique/x/policy"
	"github.com/iov-one/multiclique/x/signers"
	"github.com/iov-one/multiclique/x/spendlimit"
)

func cmdAddSigner(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Create a transaction adding a new signer to the account.
`)
		fl.PrintDefaults()
	}
	var (
		keyFl = fl.String("key", "", "Hex encoded public key of the new signer.")
	)
	fl.Parse(args)

	key, err := crypto.ParsePublicKey(*keyFl)
	if err != nil {
		return fmt.Errorf("invalid key: %s", err)
	}
	return writeMsg(output, &signers.AddSignerMsg{PublicKey: key})
}

func cmdRemoveSigner(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Create a transaction removing a signer from the account.
`)
		fl.PrintDefaults()
	}
	var (
		keyFl = fl.String("key", "", "Hex encoded public key of the removed signer.")
	)
	fl.Parse(args)

	key, err := crypto.ParsePublicKey(*keyFl)
	if err != nil {
		return fmt.Errorf("invalid key: %s", err)
	}
	return writeMsg(output, &signers.RemoveSignerMsg{PublicKey: key})
}

func cmdSetThreshold(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Create a transaction changing the default threshold of the account. The
threshold must not be greater than the number of signers.
`)
		fl.PrintDefaults()
	}
	var (
		thresholdFl = fl.Uint("threshold", 0, "New default threshold.")
	)
	fl.Parse(args)

	return writeMsg(output, &signers.SetDefaultThresholdMsg{Threshold: uint32(*thresholdFl)})
}

func cmdAttachPolicy(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Create a transaction binding a policy to a list of contexts. A context is the
address of a contract whose invocations are authorized by the policy instead
of the default threshold.
`)
		fl.PrintDefaults()
	}
	var (
		policyFl   = flAddress(fl, "policy", spendlimit.Address().String(), "Address of the policy. Spend limit policy is used by default.")
		contextsFl = flAddresses(fl, "contexts", "Comma separated list of context addresses.")
	)
	fl.Parse(args)

	if len(*contextsFl) == 0 {
		return errors.New("at least one context is required")
	}
	return writeMsg(output, &policy.AttachPolicyMsg{
		Policy:   *policyFl,
		Contexts: *contextsFl,
	})
}

func cmdDetachPolicy(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Create a transaction removing the policy bindings of a list of contexts.
`)
		fl.PrintDefaults()
	}
	var (
		contextsFl = flAddresses(fl, "contexts", "Comma separated list of context addresses.")
	)
	fl.Parse(args)

	if len(*contextsFl) == 0 {
		return errors.New("at least one context is required")
	}
	return writeMsg(output, &policy.DetachPolicyMsg{Contexts: *contextsFl})
}

func cmdSetLimit(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Create a transaction setting the spend limit of a token contract.
`)
		fl.PrintDefaults()
	}
	var (
		targetFl = flAddress(fl, "target", "", "Address of the token contract.")
		limitFl  = fl.Int64("limit", 0, "Maximum amount that can be spent by the account.")
	)
	fl.Parse(args)

	return writeMsg(output, &spendlimit.SetLimitMsg{
		Target: *targetFl,
		Limit:  *limitFl,
	})
}

func cmdResetLimit(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Create a transaction zeroing the amount spent from a token contract.
`)
		fl.PrintDefaults()
	}
	var (
		targetFl = flAddress(fl, "target", "", "Address of the token contract.")
	)
	fl.Parse(args)

	return writeMsg(output, &spendlimit.ResetLimitMsg{Target: *targetFl})
}
