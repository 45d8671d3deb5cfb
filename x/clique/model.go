package clique

import (
	"fmt"

	"github.com/iov-one/multiclique"
	"github.com/iov-one/multiclique/crypto"
	"github.com/iov-one/multiclique/errors"
	"github.com/iov-one/multiclique/x/policy"
)

// PayloadSize is the size of the digest that is signed.
const PayloadSize = 32

// Invocation is a call of a target contract function.
type Invocation = policy.Invocation

// ContractCreation is the creation of a new contract by the account. No
// threshold applies to it.
type ContractCreation struct{}

func (ContractCreation) Marshal() ([]byte, error) {
	return []byte{}, nil
}

func (*ContractCreation) Unmarshal([]byte) error {
	return nil
}

// AuthContext is a single operation to authorize. Exactly one of the fields
// must be set.
type AuthContext struct {
	Invocation       *Invocation       `json:"invocation,omitempty"`
	ContractCreation *ContractCreation `json:"contract_creation,omitempty"`
}

func (c AuthContext) Marshal() ([]byte, error) {
	var e multiclique.ProtoEncoder
	if c.Invocation != nil {
		if err := e.Message(1, c.Invocation); err != nil {
			return nil, err
		}
	}
	if c.ContractCreation != nil {
		if err := e.Message(2, c.ContractCreation); err != nil {
			return nil, err
		}
	}
	return e.Result(), nil
}

func (c *AuthContext) Unmarshal(raw []byte) error {
	*c = AuthContext{}
	d := multiclique.NewProtoDecoder(raw)
	for d.Next() {
		switch d.Field() {
		case 1:
			c.Invocation = &Invocation{}
			d.Message(c.Invocation)
		case 2:
			c.ContractCreation = &ContractCreation{}
			d.Message(c.ContractCreation)
		default:
			d.Skip()
		}
	}
	return d.Err()
}

func (c *AuthContext) Validate() error {
	switch {
	case c.Invocation != nil && c.ContractCreation != nil:
		return errors.Wrap(errors.ErrInput, "only one context kind can be set")
	case c.Invocation != nil:
		return errors.Wrap(c.Invocation.Validate(), "invocation")
	case c.ContractCreation != nil:
		return nil
	default:
		return errors.Wrap(errors.ErrEmpty, "context kind required")
	}
}

// SignedMessage is a signature of the request payload.
type SignedMessage struct {
	PublicKey crypto.PublicKey     `json:"public_key"`
	Signature multiclique.HexBytes `json:"signature"`
}

func (s SignedMessage) Marshal() ([]byte, error) {
	var e multiclique.ProtoEncoder
	e.Bytes(1, s.PublicKey)
	e.Bytes(2, s.Signature)
	return e.Result(), nil
}

func (s *SignedMessage) Unmarshal(raw []byte) error {
	*s = SignedMessage{}
	d := multiclique.NewProtoDecoder(raw)
	for d.Next() {
		switch d.Field() {
		case 1:
			s.PublicKey = d.Bytes()
		case 2:
			s.Signature = d.Bytes()
		default:
			d.Skip()
		}
	}
	return d.Err()
}

func (s *SignedMessage) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "PublicKey", s.PublicKey.Validate())
	if len(s.Signature) == 0 {
		errs = errors.AppendField(errs, "Signature", errors.ErrEmpty)
	}
	return errs
}

// Sign returns the signature of given payload created with the key.
func Sign(key crypto.PrivateKey, payload []byte) SignedMessage {
	return SignedMessage{
		PublicKey: key.PublicKey(),
		Signature: key.Sign(payload),
	}
}

// SelfInvocation is the invocation of the account itself that every
// transaction carrying a message at given path must authorize.
func SelfInvocation(path string) Invocation {
	return Invocation{Target: multiclique.AccountAddress(), Function: path}
}

// AuthorizationRequest asks the account to authorize the contexts.
type AuthorizationRequest struct {
	Payload    multiclique.HexBytes `json:"payload"`
	Signatures []SignedMessage      `json:"signatures"`
	Contexts   []AuthContext        `json:"contexts"`
}

func (r AuthorizationRequest) Marshal() ([]byte, error) {
	var e multiclique.ProtoEncoder
	e.Bytes(1, r.Payload)
	for i := range r.Signatures {
		if err := e.Message(2, r.Signatures[i]); err != nil {
			return nil, err
		}
	}
	for i := range r.Contexts {
		if err := e.Message(3, r.Contexts[i]); err != nil {
			return nil, err
		}
	}
	return e.Result(), nil
}

func (r *AuthorizationRequest) Unmarshal(raw []byte) error {
	*r = AuthorizationRequest{}
	d := multiclique.NewProtoDecoder(raw)
	for d.Next() {
		switch d.Field() {
		case 1:
			r.Payload = d.Bytes()
		case 2:
			var s SignedMessage
			d.Message(&s)
			r.Signatures = append(r.Signatures, s)
		case 3:
			var c AuthContext
			d.Message(&c)
			r.Contexts = append(r.Contexts, c)
		default:
			d.Skip()
		}
	}
	return d.Err()
}

func (r *AuthorizationRequest) Validate() error {
	var errs error
	if len(r.Payload) != PayloadSize {
		errs = errors.AppendField(errs, "Payload", errors.Wrapf(errors.ErrInput, "must be %d bytes", PayloadSize))
	}
	for i := range r.Signatures {
		errs = errors.AppendField(errs, fmt.Sprintf("Signatures.%d", i), r.Signatures[i].Validate())
	}
	for i := range r.Contexts {
		errs = errors.AppendField(errs, fmt.Sprintf("Contexts.%d", i), r.Contexts[i].Validate())
	}
	return errs
}

// ForMessage returns a copy of the request whose first context is the self
// invocation of given message path. Copies of that context supplied with
// the request are dropped, any other context is kept in order. The
// authorization of a message always includes the rules of the account
// itself, whatever the request lists.
func (r *AuthorizationRequest) ForMessage(path string) *AuthorizationRequest {
	self := SelfInvocation(path)
	contexts := make([]AuthContext, 0, len(r.Contexts)+1)
	contexts = append(contexts, AuthContext{Invocation: &self})
	for _, c := range r.Contexts {
		if c.Invocation != nil && c.ContractCreation == nil && isSelf(*c.Invocation, self) {
			continue
		}
		contexts = append(contexts, c)
	}
	return &AuthorizationRequest{
		Payload:    r.Payload,
		Signatures: r.Signatures,
		Contexts:   contexts,
	}
}

func isSelf(inv, self Invocation) bool {
	return inv.Target.Equals(self.Target) && inv.Function == self.Function && len(inv.Args) == 0
}
