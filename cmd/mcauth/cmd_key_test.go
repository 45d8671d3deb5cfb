package main

import (
	"encoding/json"
	"testing"

	"github.com/iov-one/multiclique/crypto"
)

type keyOutput struct {
	Seed      string           `json:"seed"`
	PublicKey crypto.PublicKey `json:"public_key"`
	Address   string           `json:"address"`
	Bech32    string           `json:"bech32"`
}

func TestKeygenDerivation(t *testing.T) {
	// SLIP-0010 ed25519 test vector 1, chain m/0H.
	out := runCmd(t, cmdKeygen, "",
		"-master", "000102030405060708090a0b0c0d0e0f",
		"-path", "m/0'")

	var key keyOutput
	if err := json.Unmarshal([]byte(out), &key); err != nil {
		t.Fatalf("cannot decode key: %s", err)
	}
	const wantSeed = "68e0fe46dfb67e368c75379acec591dad19df3cde26e63b93a8e704f1dade7a3"
	if key.Seed != wantSeed {
		t.Fatalf("unexpected seed: %s", key.Seed)
	}
	const wantPub = "8C8A13DF77A28F3445213A0F432FDE644ACAA215FC72DCDF300D5EFAA85D350C"
	if key.PublicKey.String() != wantPub {
		t.Fatalf("unexpected public key: %s", key.PublicKey)
	}

	var addr keyOutput
	if err := json.Unmarshal([]byte(runCmd(t, cmdKeyaddr, "", "-seed", key.Seed)), &addr); err != nil {
		t.Fatalf("cannot decode key: %s", err)
	}
	if addr.Address != key.Address || addr.Bech32 != key.Bech32 {
		t.Fatalf("keyaddr %+v does not match keygen %+v", addr, key)
	}
}

func TestKeygenRandom(t *testing.T) {
	var a, b keyOutput
	if err := json.Unmarshal([]byte(runCmd(t, cmdKeygen, "")), &a); err != nil {
		t.Fatalf("cannot decode key: %s", err)
	}
	if err := json.Unmarshal([]byte(runCmd(t, cmdKeygen, "")), &b); err != nil {
		t.Fatalf("cannot decode key: %s", err)
	}
	if a.Seed == b.Seed {
		t.Fatal("random keys must differ")
	}
}
