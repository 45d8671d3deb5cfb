package main

import (
	"encoding/hex"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/iov-one/multiclique"
	"github.com/iov-one/multiclique/x/clique"
)

// flAddress returns a value that is being initialized with given default value
// and optionally overwritten by a command line argument if provided. This
// function follows Go's flag package convention.
// If given value cannot be deserialized to required type, process is
// terminated.
func flAddress(fl *flag.FlagSet, name, defaultVal, usage string) *multiclique.Address {
	var a multiclique.Address
	if defaultVal != "" {
		var err error
		a, err = multiclique.ParseAddress(defaultVal)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Cannot parse %q address flag value. %s", name, err)
			os.Exit(2)
		}
	}
	fl.Var((*flagaddr)(&a), name, usage)
	return &a
}

type flagaddr multiclique.Address

func (a flagaddr) String() string {
	return multiclique.Address(a).String()
}

func (a *flagaddr) Set(raw string) error {
	addr, err := multiclique.ParseAddress(raw)
	if err != nil {
		return err
	}
	*a = flagaddr(addr)
	return nil
}

// flAddresses returns a list of addresses that can be given as a comma
// separated value.
func flAddresses(fl *flag.FlagSet, name, usage string) *[]multiclique.Address {
	var addrs []multiclique.Address
	fl.Var((*flagaddrs)(&addrs), name, usage)
	return &addrs
}

type flagaddrs []multiclique.Address

func (a flagaddrs) String() string {
	s := make([]string, len(a))
	for i, addr := range a {
		s[i] = addr.String()
	}
	return strings.Join(s, ",")
}

func (a *flagaddrs) Set(raw string) error {
	for _, chunk := range strings.Split(raw, ",") {
		addr, err := multiclique.ParseAddress(chunk)
		if err != nil {
			return err
		}
		*a = append(*a, addr)
	}
	return nil
}

// flInvocations returns a list of invocations. The flag can be given many
// times, each time with a single invocation in the format
//
//   function@address[,hexarg...]
//
func flInvocations(fl *flag.FlagSet, name, usage string) *[]clique.Invocation {
	var inv []clique.Invocation
	fl.Var((*flaginvocations)(&inv), name, usage)
	return &inv
}

type flaginvocations []clique.Invocation

func (inv flaginvocations) String() string {
	s := make([]string, len(inv))
	for i, in := range inv {
		s[i] = in.Function + "@" + in.Target.String()
		for _, arg := range in.Args {
			s[i] += "," + hex.EncodeToString(arg)
		}
	}
	return strings.Join(s, " ")
}

func (inv *flaginvocations) Set(raw string) error {
	in, err := parseInvocation(raw)
	if err != nil {
		return err
	}
	*inv = append(*inv, in)
	return nil
}

func parseInvocation(raw string) (clique.Invocation, error) {
	chunks := strings.SplitN(raw, "@", 2)
	if len(chunks) != 2 || chunks[0] == "" {
		return clique.Invocation{}, fmt.Errorf("invalid invocation %q, want function@address", raw)
	}
	args := strings.Split(chunks[1], ",")
	target, err := multiclique.ParseAddress(args[0])
	if err != nil {
		return clique.Invocation{}, fmt.Errorf("invalid invocation target: %s", err)
	}
	in := clique.Invocation{Target: target, Function: chunks[0]}
	for _, a := range args[1:] {
		b, err := hex.DecodeString(a)
		if err != nil {
			return clique.Invocation{}, fmt.Errorf("invalid invocation argument: %s", err)
		}
		in.Args = append(in.Args, b)
	}
	return in, nil
}
