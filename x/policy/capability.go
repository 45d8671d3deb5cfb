package policy

import (
	"github.com/iov-one/multiclique"
	"github.com/iov-one/multiclique/crypto"
	"github.com/iov-one/multiclique/errors"
)

// Invocation is a call of a target contract function that the account is
// asked to authorize.
type Invocation struct {
	Target   multiclique.Address `json:"target"`
	Function string              `json:"function"`
	Args     [][]byte            `json:"args"`
}

func (i Invocation) Marshal() ([]byte, error) {
	var e multiclique.ProtoEncoder
	e.Bytes(1, i.Target)
	e.String(2, i.Function)
	e.RepeatedBytes(3, i.Args)
	return e.Result(), nil
}

func (i *Invocation) Unmarshal(raw []byte) error {
	*i = Invocation{}
	d := multiclique.NewProtoDecoder(raw)
	for d.Next() {
		switch d.Field() {
		case 1:
			i.Target = d.Bytes()
		case 2:
			i.Function = d.String()
		case 3:
			i.Args = append(i.Args, d.Bytes())
		default:
			d.Skip()
		}
	}
	return d.Err()
}

func (i *Invocation) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Target", i.Target.Validate())
	if i.Function == "" {
		errs = errors.AppendField(errs, "Function", errors.ErrEmpty)
	}
	return errs
}

// Capability is implemented by a policy. Both methods receive the same
// arguments: the invocation being authorized, the number of presented
// signatures and all signers of the registry.
type Capability interface {
	// Threshold returns the number of signatures required to authorize
	// given invocation. It must not modify the state.
	Threshold(ctx multiclique.Context, db multiclique.ReadOnlyKVStore, inv Invocation, numSigners uint32, signers []crypto.PublicKey) (uint32, error)

	// Run is called after the threshold was met. It may update the
	// state of the policy or reject the invocation.
	Run(ctx multiclique.Context, db multiclique.KVStore, inv Invocation, numSigners uint32, signers []crypto.PublicKey) error
}

// Resolver returns the implementation of a policy.
type Resolver interface {
	// Capability returns ErrNotFound if the policy is not known.
	Capability(policyID multiclique.Address) (Capability, error)
}

// Router is an in-process Resolver.
type Router struct {
	caps map[string]Capability
}

var _ Resolver = (*Router)(nil)

// NewRouter returns a resolver without any policy registered.
func NewRouter() *Router {
	return &Router{caps: make(map[string]Capability)}
}

// Register makes the capability available under given policy address. It
// panics if the address is already taken.
func (r *Router) Register(policyID multiclique.Address, c Capability) {
	key := string(policyID)
	if _, ok := r.caps[key]; ok {
		panic("policy " + policyID.String() + " already registered")
	}
	r.caps[key] = c
}

func (r *Router) Capability(policyID multiclique.Address) (Capability, error) {
	c, ok := r.caps[string(policyID)]
	if !ok {
		return nil, errors.Wrapf(errors.ErrNotFound, "policy %s", policyID)
	}
	return c, nil
}
