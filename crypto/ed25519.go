package crypto

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"strings"

	"github.com/iov-one/multiclique"
	"github.com/iov-one/multiclique/errors"
	"golang.org/x/crypto/ed25519"
)

// ExtensionName is used for the conditions we get from signatures
const ExtensionName = "sigs"

const (
	// PublicKeySize is the length of an Ed25519 public key.
	PublicKeySize = ed25519.PublicKeySize
	// SignatureSize is the length of an Ed25519 signature.
	SignatureSize = ed25519.SignatureSize
	// SeedSize is the length of the seed a private key is derived from.
	SeedSize = ed25519.SeedSize
)

// PublicKey is an Ed25519 public key identifying a signer.
type PublicKey []byte

// Validate returns an error if the key does not have the Ed25519 size.
func (p PublicKey) Validate() error {
	if len(p) != PublicKeySize {
		return errors.Wrapf(errors.ErrInput, "public key must be %d bytes, got %d", PublicKeySize, len(p))
	}
	return nil
}

// Verify verifies the signature was created with this message and public key
func (p PublicKey) Verify(message []byte, sig []byte) bool {
	if len(p) != PublicKeySize || len(sig) != SignatureSize {
		return false
	}
	return ed25519.Verify(ed25519.PublicKey(p), message, sig)
}

// Condition encodes the public key into a condition
func (p PublicKey) Condition() multiclique.Condition {
	return multiclique.NewCondition(ExtensionName, "ed25519", p)
}

// Address returns the address of the public key condition.
func (p PublicKey) Address() multiclique.Address {
	return p.Condition().Address()
}

// Equals checks if two keys are the same.
func (p PublicKey) Equals(o PublicKey) bool {
	return bytes.Equal(p, o)
}

// String returns the upper case hex encoding of the key.
func (p PublicKey) String() string {
	return strings.ToUpper(hex.EncodeToString(p))
}

// MarshalJSON encodes the key as hex instead of the default base64.
func (p PublicKey) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.String())
}

// UnmarshalJSON decodes a hex encoded key.
func (p *PublicKey) UnmarshalJSON(raw []byte) error {
	var enc string
	if err := json.Unmarshal(raw, &enc); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	key, err := ParsePublicKey(enc)
	if err != nil {
		return err
	}
	*p = key
	return nil
}

// ParsePublicKey decodes a hex encoded public key and ensures it has the
// right size.
func ParsePublicKey(enc string) (PublicKey, error) {
	raw, err := hex.DecodeString(enc)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "cannot decode hex: %s", err)
	}
	key := PublicKey(raw)
	if err := key.Validate(); err != nil {
		return nil, err
	}
	return key, nil
}

// PrivateKey is an Ed25519 private key. It is used to produce signatures in
// tests and by the command line tool. Never use it with a key that protects
// real value.
type PrivateKey []byte

// Sign returns a matching signature for this private key
func (p PrivateKey) Sign(message []byte) []byte {
	return ed25519.Sign(ed25519.PrivateKey(p), message)
}

// PublicKey returns the corresponding PublicKey
func (p PrivateKey) PublicKey() PublicKey {
	pub := ed25519.PrivateKey(p).Public().(ed25519.PublicKey)
	return PublicKey(pub)
}

// GenPrivKeyEd25519 returns a random new private key
func GenPrivKeyEd25519() PrivateKey {
	_, priv, err := ed25519.GenerateKey(nil)
	if err != nil {
		panic(err)
	}
	return PrivateKey(priv)
}

// PrivKeyEd25519FromSeed will deterministically generate a private key from
// a given seed. Use if you have a strong source of external randomness,
// or for deterministic keys in test cases.
func PrivKeyEd25519FromSeed(seed []byte) (PrivateKey, error) {
	if len(seed) != SeedSize {
		return nil, errors.Wrapf(errors.ErrInput, "seed must be %d bytes, got %d", SeedSize, len(seed))
	}
	return PrivateKey(ed25519.NewKeyFromSeed(seed)), nil
}
