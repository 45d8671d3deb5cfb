package spendlimit

import (
	"github.com/iov-one/multiclique"
	"github.com/iov-one/multiclique/errors"
)

const (
	pathSetLimitMsg   = "spendlimit/set"
	pathResetLimitMsg = "spendlimit/reset"
)

var _ multiclique.Msg = (*SetLimitMsg)(nil)

// SetLimitMsg configures the spend limit of a token contract.
type SetLimitMsg struct {
	Target multiclique.Address `json:"target"`
	Limit  int64               `json:"limit"`
}

func (SetLimitMsg) Path() string {
	return pathSetLimitMsg
}

func (m SetLimitMsg) Marshal() ([]byte, error) {
	var e multiclique.ProtoEncoder
	e.Bytes(1, m.Target)
	e.Int64(2, m.Limit)
	return e.Result(), nil
}

func (m *SetLimitMsg) Unmarshal(raw []byte) error {
	*m = SetLimitMsg{}
	d := multiclique.NewProtoDecoder(raw)
	for d.Next() {
		switch d.Field() {
		case 1:
			m.Target = d.Bytes()
		case 2:
			m.Limit = d.Int64()
		default:
			d.Skip()
		}
	}
	return d.Err()
}

func (m *SetLimitMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Target", m.Target.Validate())
	if m.Limit < 0 {
		errs = errors.AppendField(errs, "Limit", errors.ErrInput)
	}
	return errs
}

var _ multiclique.Msg = (*ResetLimitMsg)(nil)

// ResetLimitMsg clears the amount spent from a token contract.
type ResetLimitMsg struct {
	Target multiclique.Address `json:"target"`
}

func (ResetLimitMsg) Path() string {
	return pathResetLimitMsg
}

func (m ResetLimitMsg) Marshal() ([]byte, error) {
	var e multiclique.ProtoEncoder
	e.Bytes(1, m.Target)
	return e.Result(), nil
}

func (m *ResetLimitMsg) Unmarshal(raw []byte) error {
	*m = ResetLimitMsg{}
	d := multiclique.NewProtoDecoder(raw)
	for d.Next() {
		switch d.Field() {
		case 1:
			m.Target = d.Bytes()
		default:
			d.Skip()
		}
	}
	return d.Err()
}

func (m *ResetLimitMsg) Validate() error {
	return errors.Field("Target", m.Target.Validate(), "")
}
