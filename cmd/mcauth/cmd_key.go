package main

import (
	"encoding/hex"
	"encoding/json"
	"flag"
	"fmt"
	"io"

	"github.com/iov-one/multiclique/crypto"
	"github.com/stellar/go/exp/crypto/derivation"
)

func cmdKeygen(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Generate a new signer key and print out its hex encoded seed, public key and
address.

When -master is given, the key is derived from the master seed using the
-path derivation path instead of being random.
`)
		fl.PrintDefaults()
	}
	var (
		masterFl = fl.String("master", "", "Hex encoded master seed, for example a BIP39 seed.")
		pathFl   = fl.String("path", "m/44'/234'/0'", "SLIP-0010 derivation path used with -master.")
	)
	fl.Parse(args)

	var key crypto.PrivateKey
	if *masterFl == "" {
		key = crypto.GenPrivKeyEd25519()
	} else {
		k, err := deriveKey(*masterFl, *pathFl)
		if err != nil {
			return err
		}
		key = k
	}
	return writeKey(output, key)
}

// deriveKey returns the ed25519 key derived from a hex encoded master seed.
func deriveKey(masterHex, path string) (crypto.PrivateKey, error) {
	master, err := hex.DecodeString(masterHex)
	if err != nil {
		return nil, fmt.Errorf("cannot decode master seed: %s", err)
	}
	k, err := derivation.DeriveForPath(path, master)
	if err != nil {
		return nil, fmt.Errorf("cannot derive key using path %q: %s", path, err)
	}
	return crypto.PrivKeyEd25519FromSeed(k.Key)
}

func cmdKeyaddr(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Print out the public key and the address of a signer key.
`)
		fl.PrintDefaults()
	}
	var (
		seedFl = fl.String("seed", env("MCAUTH_SEED", ""),
			"Hex encoded seed of the signer key. You can use MCAUTH_SEED environment variable to set it.")
	)
	fl.Parse(args)

	key, err := privateKey(*seedFl)
	if err != nil {
		return err
	}
	return writeKey(output, key)
}

// privateKey returns the key for a hex encoded seed.
func privateKey(seedHex string) (crypto.PrivateKey, error) {
	if seedHex == "" {
		return nil, fmt.Errorf("seed is required")
	}
	seed, err := hex.DecodeString(seedHex)
	if err != nil {
		return nil, fmt.Errorf("cannot decode seed: %s", err)
	}
	return crypto.PrivKeyEd25519FromSeed(seed)
}

func writeKey(output io.Writer, key crypto.PrivateKey) error {
	pub := key.PublicKey()
	bech, err := pub.Address().Bech32()
	if err != nil {
		return err
	}
	return writeJSON(output, struct {
		Seed      string           `json:"seed"`
		PublicKey crypto.PublicKey `json:"public_key"`
		Address   string           `json:"address"`
		Bech32    string           `json:"bech32"`
	}{
		Seed:      hex.EncodeToString(key[:crypto.SeedSize]),
		PublicKey: pub,
		Address:   pub.Address().String(),
		Bech32:    bech,
	})
}

func writeJSON(output io.Writer, v interface{}) error {
	raw, err := json.MarshalIndent(v, "", "\t")
	if err != nil {
		return fmt.Errorf("cannot serialize: %s", err)
	}
	_, err = fmt.Fprintln(output, string(raw))
	return err
}
