package spendlimit

import (
	"github.com/iov-one/multiclique"
	"github.com/iov-one/multiclique/errors"
	"github.com/iov-one/multiclique/orm"
)

// Configuration holds the addresses the policy dispatches on.
type Configuration struct {
	// Account is the multiclique account. Transfers from it are
	// accounted and it is the only one allowed to change the limits.
	Account multiclique.Address `json:"account"`
	Core    multiclique.Address `json:"core"`
	Votes   multiclique.Address `json:"votes"`
	Asset   multiclique.Address `json:"asset"`
}

func (c Configuration) Marshal() ([]byte, error) {
	var e multiclique.ProtoEncoder
	e.Bytes(1, c.Account)
	e.Bytes(2, c.Core)
	e.Bytes(3, c.Votes)
	e.Bytes(4, c.Asset)
	return e.Result(), nil
}

func (c *Configuration) Unmarshal(raw []byte) error {
	*c = Configuration{}
	d := multiclique.NewProtoDecoder(raw)
	for d.Next() {
		switch d.Field() {
		case 1:
			c.Account = d.Bytes()
		case 2:
			c.Core = d.Bytes()
		case 3:
			c.Votes = d.Bytes()
		case 4:
			c.Asset = d.Bytes()
		default:
			d.Skip()
		}
	}
	return d.Err()
}

func (c *Configuration) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Account", c.Account.Validate())
	errs = errors.AppendField(errs, "Core", c.Core.Validate())
	errs = errors.AppendField(errs, "Votes", c.Votes.Validate())
	errs = errors.AppendField(errs, "Asset", c.Asset.Validate())
	return errs
}

// Amount is a non negative token amount.
type Amount struct {
	Amount int64
}

var _ orm.Model = (*Amount)(nil)

func (a Amount) Marshal() ([]byte, error) {
	var e multiclique.ProtoEncoder
	e.Int64(1, a.Amount)
	return e.Result(), nil
}

func (a *Amount) Unmarshal(raw []byte) error {
	*a = Amount{}
	d := multiclique.NewProtoDecoder(raw)
	for d.Next() {
		switch d.Field() {
		case 1:
			a.Amount = d.Int64()
		default:
			d.Skip()
		}
	}
	return d.Err()
}

func (a *Amount) Validate() error {
	if a.Amount < 0 {
		return errors.Field("Amount", errors.ErrModel, "must not be negative")
	}
	return nil
}

// AmountBucket stores one amount per token contract.
type AmountBucket struct {
	orm.ModelBucket
}

// NewLimitBucket returns the bucket of the configured limits.
func NewLimitBucket() AmountBucket {
	return AmountBucket{ModelBucket: orm.NewModelBucket("spendlim", &Amount{})}
}

// NewSpentBucket returns the bucket of the amounts spent since the last
// reset.
func NewSpentBucket() AmountBucket {
	return AmountBucket{ModelBucket: orm.NewModelBucket("spent", &Amount{})}
}

// Amount returns the amount stored for the target. The second value is false
// if nothing is stored.
func (b AmountBucket) Amount(db multiclique.ReadOnlyKVStore, target multiclique.Address) (int64, bool, error) {
	var a Amount
	switch err := b.One(db, target, &a); {
	case err == nil:
		return a.Amount, true, nil
	case errors.ErrNotFound.Is(err):
		return 0, false, nil
	default:
		return 0, false, err
	}
}

// SetAmount stores the amount for the target.
func (b AmountBucket) SetAmount(db multiclique.KVStore, target multiclique.Address, amount int64) error {
	return b.Put(db, target, &Amount{Amount: amount})
}
