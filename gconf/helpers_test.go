package gconf

import (
	"github.com/iov-one/multiclique"
	"github.com/iov-one/multiclique/errors"
)

type myconfig struct {
	Num int64
	Str string
}

func (c myconfig) Marshal() ([]byte, error) {
	var e multiclique.ProtoEncoder
	e.Int64(1, c.Num)
	e.String(2, c.Str)
	return e.Result(), nil
}

func (c *myconfig) Unmarshal(raw []byte) error {
	*c = myconfig{}
	d := multiclique.NewProtoDecoder(raw)
	for d.Next() {
		switch d.Field() {
		case 1:
			c.Num = d.Int64()
		case 2:
			c.Str = d.String()
		default:
			d.Skip()
		}
	}
	return d.Err()
}

func (c *myconfig) Validate() error {
	if c.Num < 0 {
		return errors.Field("Num", errors.ErrModel, "must not be negative")
	}
	return nil
}

type myconfigMsg struct {
	Patch *myconfig
}

var _ multiclique.Msg = (*myconfigMsg)(nil)

func (*myconfigMsg) Path() string { return "gconf/update" }

func (m myconfigMsg) Marshal() ([]byte, error) {
	var e multiclique.ProtoEncoder
	if m.Patch != nil {
		if err := e.Message(1, m.Patch); err != nil {
			return nil, err
		}
	}
	return e.Result(), nil
}

func (m *myconfigMsg) Unmarshal(raw []byte) error {
	*m = myconfigMsg{}
	d := multiclique.NewProtoDecoder(raw)
	for d.Next() {
		switch d.Field() {
		case 1:
			m.Patch = &myconfig{}
			d.Message(m.Patch)
		default:
			d.Skip()
		}
	}
	return d.Err()
}

func (m *myconfigMsg) Validate() error {
	if m.Patch == nil {
		return errors.Wrap(errors.ErrEmpty, "patch")
	}
	return nil
}
