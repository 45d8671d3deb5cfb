package signers

import (
	"github.com/iov-one/multiclique"
	"github.com/iov-one/multiclique/crypto"
	"github.com/iov-one/multiclique/errors"
	"github.com/iov-one/multiclique/gconf"
)

// packageName is used as the gconf configuration key.
const packageName = "signers"

// LoadConfiguration returns the configuration of this extension, or the
// default configuration if none was saved.
func LoadConfiguration(db multiclique.ReadOnlyKVStore) (Configuration, error) {
	var c Configuration
	switch err := gconf.Load(db, packageName, &c); {
	case err == nil:
		return c, nil
	case errors.ErrNotFound.Is(err):
		return DefaultConfiguration(), nil
	default:
		return c, errors.Wrap(err, "load configuration")
	}
}

// Initialize creates the registry. This can be done only once.
//
// The threshold must not be greater than the number of signers, signers must
// be unique and there can be no more than the configured maximum.
func Initialize(ctx multiclique.Context, db multiclique.KVStore, signers []crypto.PublicKey, threshold uint32) error {
	bucket := NewRegistryBucket()
	switch err := bucket.Has(db, []byte(registryKey)); {
	case err == nil:
		return errors.Wrap(ErrAlreadyInitialized, "registry")
	case !errors.ErrNotFound.Is(err):
		return err
	}

	if int(threshold) > len(signers) {
		return errors.Wrapf(ErrInvalidThreshold, "threshold %d with %d signers", threshold, len(signers))
	}
	conf, err := LoadConfiguration(db)
	if err != nil {
		return err
	}
	r := Registry{DefaultThreshold: threshold}
	for i, key := range signers {
		if err := key.Validate(); err != nil {
			return errors.Wrapf(err, "signer %d", i)
		}
		if r.Contains(key) {
			return errors.Wrapf(ErrSignerAlreadyAdded, "signer %s", key)
		}
		r.Signers = append(r.Signers, key)
	}
	if len(r.Signers) > int(conf.MaxSigners) {
		return errors.Wrapf(ErrSignerLimitExceeded, "%d signers, maximum is %d", len(r.Signers), conf.MaxSigners)
	}

	if err := save(ctx, db, &r, conf); err != nil {
		return err
	}
	multiclique.GetLogger(ctx).Info("gov/init",
		"signers", len(r.Signers),
		"threshold", r.DefaultThreshold)
	return nil
}

// AddSigner appends a new signer to the registry.
func AddSigner(ctx multiclique.Context, db multiclique.KVStore, key crypto.PublicKey) error {
	if err := key.Validate(); err != nil {
		return err
	}
	r, err := NewRegistryBucket().Load(db)
	if err != nil {
		return errors.Wrap(err, "registry")
	}
	conf, err := LoadConfiguration(db)
	if err != nil {
		return err
	}
	if r.Contains(key) {
		return errors.Wrapf(ErrSignerAlreadyAdded, "signer %s", key)
	}
	if len(r.Signers) >= int(conf.MaxSigners) {
		return errors.Wrapf(ErrSignerLimitExceeded, "maximum is %d", conf.MaxSigners)
	}
	r.Signers = append(r.Signers, key)

	if err := save(ctx, db, r, conf); err != nil {
		return err
	}
	multiclique.GetLogger(ctx).Info("signer/added", "signer", key.String())
	return nil
}

// RemoveSigner removes a signer from the registry. A signer cannot be removed
// if the remaining signers would not be able to reach the default threshold.
func RemoveSigner(ctx multiclique.Context, db multiclique.KVStore, key crypto.PublicKey) error {
	r, err := NewRegistryBucket().Load(db)
	if err != nil {
		return errors.Wrap(err, "registry")
	}
	conf, err := LoadConfiguration(db)
	if err != nil {
		return err
	}
	i := r.indexOf(key)
	if i < 0 {
		return errors.Wrapf(ErrSignerDoesNotExist, "signer %s", key)
	}
	if len(r.Signers)-1 < int(r.DefaultThreshold) {
		return errors.Wrapf(ErrInvalidThreshold, "%d signers would remain for threshold %d", len(r.Signers)-1, r.DefaultThreshold)
	}
	r.Signers = append(r.Signers[:i], r.Signers[i+1:]...)

	if err := save(ctx, db, r, conf); err != nil {
		return err
	}
	multiclique.GetLogger(ctx).Info("signer/removed", "signer", key.String())
	return nil
}

// SetDefaultThreshold changes the default threshold.
func SetDefaultThreshold(ctx multiclique.Context, db multiclique.KVStore, threshold uint32) error {
	r, err := NewRegistryBucket().Load(db)
	if err != nil {
		return errors.Wrap(err, "registry")
	}
	conf, err := LoadConfiguration(db)
	if err != nil {
		return err
	}
	if int(threshold) > len(r.Signers) {
		return errors.Wrapf(ErrInvalidThreshold, "threshold %d with %d signers", threshold, len(r.Signers))
	}
	r.DefaultThreshold = threshold

	if err := save(ctx, db, r, conf); err != nil {
		return err
	}
	multiclique.GetLogger(ctx).Info("gov/changed", "threshold", threshold)
	return nil
}

// Signers returns all registered signers in the order they were added. An
// uninitialized registry has no signers.
func Signers(db multiclique.ReadOnlyKVStore) ([]crypto.PublicKey, error) {
	r, err := NewRegistryBucket().Load(db)
	switch {
	case err == nil:
		return r.Signers, nil
	case errors.ErrNotFound.Is(err):
		return nil, nil
	default:
		return nil, err
	}
}

// DefaultThreshold returns the default threshold, zero if it was never set.
func DefaultThreshold(db multiclique.ReadOnlyKVStore) (uint32, error) {
	r, err := NewRegistryBucket().Load(db)
	switch {
	case err == nil:
		return r.DefaultThreshold, nil
	case errors.ErrNotFound.Is(err):
		return 0, nil
	default:
		return 0, err
	}
}

// KeepAlive moves the expiration of the registry state forward. It is a no
// op for an uninitialized registry.
func KeepAlive(ctx multiclique.Context, db multiclique.KVStore) error {
	r, err := NewRegistryBucket().Load(db)
	switch {
	case err == nil:
	case errors.ErrNotFound.Is(err):
		return nil
	default:
		return err
	}
	conf, err := LoadConfiguration(db)
	if err != nil {
		return err
	}
	return save(ctx, db, r, conf)
}

func save(ctx multiclique.Context, db multiclique.KVStore, r *Registry, conf Configuration) error {
	height, _ := multiclique.GetHeight(ctx)
	r.ExpiresAt = height + conf.KeepAlive
	if err := NewRegistryBucket().Save(db, r); err != nil {
		return errors.Wrap(err, "save registry")
	}
	return nil
}
