package policy

import (
	"fmt"

	"github.com/iov-one/multiclique"
	"github.com/iov-one/multiclique/errors"
)

const (
	pathAttachPolicyMsg = "policy/attach"
	pathDetachPolicyMsg = "policy/detach"
)

var _ multiclique.Msg = (*AttachPolicyMsg)(nil)

// AttachPolicyMsg binds a policy to a list of contexts.
type AttachPolicyMsg struct {
	Policy   multiclique.Address   `json:"policy"`
	Contexts []multiclique.Address `json:"contexts"`
}

func (AttachPolicyMsg) Path() string {
	return pathAttachPolicyMsg
}

func (m AttachPolicyMsg) Marshal() ([]byte, error) {
	var e multiclique.ProtoEncoder
	e.Bytes(1, m.Policy)
	e.RepeatedBytes(2, addressesToBytes(m.Contexts))
	return e.Result(), nil
}

func (m *AttachPolicyMsg) Unmarshal(raw []byte) error {
	*m = AttachPolicyMsg{}
	d := multiclique.NewProtoDecoder(raw)
	for d.Next() {
		switch d.Field() {
		case 1:
			m.Policy = d.Bytes()
		case 2:
			m.Contexts = append(m.Contexts, d.Bytes())
		default:
			d.Skip()
		}
	}
	return d.Err()
}

func (m *AttachPolicyMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Policy", m.Policy.Validate())
	errs = errors.Append(errs, validateContexts(m.Contexts))
	return errs
}

var _ multiclique.Msg = (*DetachPolicyMsg)(nil)

// DetachPolicyMsg removes the bindings of a list of contexts.
type DetachPolicyMsg struct {
	Contexts []multiclique.Address `json:"contexts"`
}

func (DetachPolicyMsg) Path() string {
	return pathDetachPolicyMsg
}

func (m DetachPolicyMsg) Marshal() ([]byte, error) {
	var e multiclique.ProtoEncoder
	e.RepeatedBytes(1, addressesToBytes(m.Contexts))
	return e.Result(), nil
}

func (m *DetachPolicyMsg) Unmarshal(raw []byte) error {
	*m = DetachPolicyMsg{}
	d := multiclique.NewProtoDecoder(raw)
	for d.Next() {
		switch d.Field() {
		case 1:
			m.Contexts = append(m.Contexts, d.Bytes())
		default:
			d.Skip()
		}
	}
	return d.Err()
}

func (m *DetachPolicyMsg) Validate() error {
	return validateContexts(m.Contexts)
}

func validateContexts(contexts []multiclique.Address) error {
	if len(contexts) == 0 {
		return errors.Field("Contexts", errors.ErrEmpty, "at least one context required")
	}
	var errs error
	for i, c := range contexts {
		errs = errors.AppendField(errs, fmt.Sprintf("Contexts.%d", i), c.Validate())
	}
	return errs
}

func addressesToBytes(addrs []multiclique.Address) [][]byte {
	res := make([][]byte, len(addrs))
	for i, a := range addrs {
		res[i] = a
	}
	return res
}
