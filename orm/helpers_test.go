package orm

import (
	"github.com/iov-one/multiclique"
	"github.com/iov-one/multiclique/errors"
)

// counter is a minimal model used by the tests of this package.
type counter struct {
	Count int64
}

func (c counter) Marshal() ([]byte, error) {
	var e multiclique.ProtoEncoder
	e.Int64(1, c.Count)
	return e.Result(), nil
}

func (c *counter) Unmarshal(raw []byte) error {
	*c = counter{}
	d := multiclique.NewProtoDecoder(raw)
	for d.Next() {
		switch d.Field() {
		case 1:
			c.Count = d.Int64()
		default:
			d.Skip()
		}
	}
	return d.Err()
}

func (c *counter) Validate() error {
	if c.Count < 0 {
		return errors.Wrap(errors.ErrModel, "negative count")
	}
	return nil
}

// other is a model of a different type than counter.
type other struct {
	counter
}
