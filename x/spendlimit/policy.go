package spendlimit

import (
	"bytes"
	"encoding/binary"

	"github.com/iov-one/multiclique"
	"github.com/iov-one/multiclique/crypto"
	"github.com/iov-one/multiclique/errors"
	"github.com/iov-one/multiclique/gconf"
	"github.com/iov-one/multiclique/x/policy"
	"github.com/iov-one/multiclique/x/signers"
)

// packageName is used as the gconf configuration key.
const packageName = "spendlimit"

// Address returns the policy address this policy is registered under.
func Address() multiclique.Address {
	return multiclique.NewCondition("spendlim", "policy", []byte("dao")).Address()
}

// Init stores the configuration. This can be done only once.
func Init(ctx multiclique.Context, db multiclique.KVStore, conf Configuration) error {
	var existing Configuration
	switch err := gconf.Load(db, packageName, &existing); {
	case err == nil:
		return errors.Wrap(signers.ErrAlreadyInitialized, "spend limit policy")
	case !errors.ErrNotFound.Is(err):
		return err
	}
	if err := gconf.Save(db, packageName, &conf); err != nil {
		return err
	}
	multiclique.GetLogger(ctx).Info("spendlimit/init",
		"account", conf.Account.String(),
		"core", conf.Core.String(),
		"votes", conf.Votes.String(),
		"asset", conf.Asset.String())
	return nil
}

// LoadConfiguration returns the configuration saved by Init.
func LoadConfiguration(db multiclique.ReadOnlyKVStore) (*Configuration, error) {
	var conf Configuration
	if err := gconf.Load(db, packageName, &conf); err != nil {
		return nil, errors.Wrap(err, "spend limit policy configuration")
	}
	return &conf, nil
}

// SetLimit configures the spend limit of a token contract.
func SetLimit(ctx multiclique.Context, db multiclique.KVStore, target multiclique.Address, limit int64) error {
	if err := NewLimitBucket().SetAmount(db, target, limit); err != nil {
		return err
	}
	multiclique.GetLogger(ctx).Info("spendlimit/set", "target", target.String(), "limit", limit)
	return nil
}

// ResetLimit sets the amount spent from a token contract back to zero. The
// limit stays as it was.
func ResetLimit(ctx multiclique.Context, db multiclique.KVStore, target multiclique.Address) error {
	if err := NewSpentBucket().SetAmount(db, target, 0); err != nil {
		return err
	}
	multiclique.GetLogger(ctx).Info("spendlimit/reset", "target", target.String())
	return nil
}

// Limit returns the spend limit of the target, zero if none is configured.
func Limit(db multiclique.ReadOnlyKVStore, target multiclique.Address) (int64, error) {
	limit, _, err := NewLimitBucket().Amount(db, target)
	return limit, err
}

// Spent returns the amount spent since the last reset.
func Spent(db multiclique.ReadOnlyKVStore, target multiclique.Address) (int64, error) {
	spent, _, err := NewSpentBucket().Amount(db, target)
	return spent, err
}

// Policy implements the policy capability.
type Policy struct{}

var _ policy.Capability = Policy{}

// Threshold returns the number of required signatures. Percentages are
// rounded down.
func (Policy) Threshold(ctx multiclique.Context, db multiclique.ReadOnlyKVStore, inv policy.Invocation, numSigners uint32, _ []crypto.PublicKey) (uint32, error) {
	if numSigners < 2 {
		return 1, nil
	}
	conf, err := LoadConfiguration(db)
	if err != nil {
		return 0, err
	}
	switch {
	case inv.Target.Equals(conf.Core):
		switch inv.Function {
		case "destroy_dao", "change_owner":
			return percent(numSigners, 80), nil
		}
		return percent(numSigners, 66), nil
	case inv.Target.Equals(conf.Votes):
		switch inv.Function {
		case "fault_proposal":
			return 1, nil
		case "mark_implemented":
			return percent(numSigners, 50), nil
		}
		return percent(numSigners, 66), nil
	case inv.Target.Equals(conf.Asset):
		switch inv.Function {
		case "set_owner", "set_core_address":
			return percent(numSigners, 80), nil
		}
		return percent(numSigners, 50), nil
	}

	_, limited, err := NewLimitBucket().Amount(db, inv.Target)
	if err != nil {
		return 0, err
	}
	if limited {
		return percent(numSigners, 50), nil
	}
	return numSigners, nil
}

func percent(n uint32, p uint32) uint32 {
	return n * p / 100
}

// Run accounts transfers from the account on token contracts with a
// configured limit. The argument list of a transfer is (from, to, amount),
// the amount being a big endian encoded int64.
func (Policy) Run(ctx multiclique.Context, db multiclique.KVStore, inv policy.Invocation, _ uint32, _ []crypto.PublicKey) error {
	limit, limited, err := NewLimitBucket().Amount(db, inv.Target)
	if err != nil || !limited {
		return err
	}
	if inv.Function != "xfer" && inv.Function != "incr_allowance" {
		return nil
	}
	if len(inv.Args) < 3 {
		return errors.Wrapf(errors.ErrInput, "%s requires 3 arguments, got %d", inv.Function, len(inv.Args))
	}
	conf, err := LoadConfiguration(db)
	if err != nil {
		return err
	}
	if !bytes.Equal(inv.Args[0], conf.Account) {
		return nil
	}
	amount, err := decodeAmount(inv.Args[2])
	if err != nil {
		return err
	}

	spent, err := Spent(db, inv.Target)
	if err != nil {
		return err
	}
	if amount > limit-spent {
		return errors.Wrapf(ErrSpendLimitExceeded, "spent %d, limit %d, requested %d", spent, limit, amount)
	}
	if err := NewSpentBucket().SetAmount(db, inv.Target, spent+amount); err != nil {
		return err
	}
	multiclique.GetLogger(ctx).Info("spendlimit/spent",
		"target", inv.Target.String(),
		"spent", spent+amount)
	return nil
}

// EncodeAmount returns the transfer argument representation of an amount.
func EncodeAmount(amount int64) []byte {
	raw := make([]byte, 8)
	binary.BigEndian.PutUint64(raw, uint64(amount))
	return raw
}

func decodeAmount(raw []byte) (int64, error) {
	if len(raw) != 8 {
		return 0, errors.Wrapf(errors.ErrInput, "amount must be 8 bytes, got %d", len(raw))
	}
	amount := int64(binary.BigEndian.Uint64(raw))
	if amount < 0 {
		return 0, errors.Wrap(errors.ErrInput, "negative amount")
	}
	return amount, nil
}
