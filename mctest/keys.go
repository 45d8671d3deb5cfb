package mctest

import (
	"bytes"
	"sync/atomic"

	"github.com/iov-one/multiclique"
	"github.com/iov-one/multiclique/crypto"
)

// Key returns a private key deterministically derived from given seed byte.
// Different seeds produce different keys.
func Key(seed byte) crypto.PrivateKey {
	key, err := crypto.PrivKeyEd25519FromSeed(bytes.Repeat([]byte{seed}, crypto.SeedSize))
	if err != nil {
		panic(err)
	}
	return key
}

// PublicKeys returns the public keys of given private keys, in order.
func PublicKeys(keys ...crypto.PrivateKey) []crypto.PublicKey {
	res := make([]crypto.PublicKey, len(keys))
	for i, k := range keys {
		res[i] = k.PublicKey()
	}
	return res
}

var sequence uint64

// NewCondition returns a valid condition, unique within the test run.
func NewCondition() multiclique.Condition {
	n := atomic.AddUint64(&sequence, 1)
	data := []byte{byte(n >> 24), byte(n >> 16), byte(n >> 8), byte(n)}
	return multiclique.NewCondition("test", "mock", data)
}

// NewAddress returns a valid address, unique within the test run.
func NewAddress() multiclique.Address {
	return NewCondition().Address()
}
