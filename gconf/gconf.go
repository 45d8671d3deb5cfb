package gconf

import (
	"github.com/iov-one/multiclique"
	"github.com/iov-one/multiclique/errors"
)

// Configuration is implemented by the configuration of an extension.
type Configuration interface {
	Marshal() ([]byte, error)
	Unmarshal([]byte) error
	Validate() error
}

// ReadStore is the part of multiclique.ReadOnlyKVStore that Load uses.
type ReadStore interface {
	Get([]byte) ([]byte, error)
}

// Store is the part of multiclique.KVStore that Save uses.
type Store interface {
	ReadStore
	Set([]byte, []byte) error
}

// key returns the key the configuration of a package is stored under. There
// is only one configuration per package.
func key(pkg string) []byte {
	return []byte("_c:" + pkg)
}

// Save validates the configuration and stores it as the configuration of the
// package, replacing the previous one.
func Save(db Store, pkg string, src Configuration) error {
	k := key(pkg)
	if err := src.Validate(); err != nil {
		return errors.Wrapf(err, "validate %q", k)
	}
	raw, err := src.Marshal()
	if err != nil {
		return errors.Wrapf(err, "marshal %q", k)
	}
	return db.Set(k, raw)
}

// Load reads the configuration of the package into dst. ErrNotFound is
// returned if the configuration was never saved.
func Load(db ReadStore, pkg string, dst Configuration) error {
	k := key(pkg)
	raw, err := db.Get(k)
	switch {
	case err != nil:
		return errors.Wrap(errors.ErrDatabase, err.Error())
	case raw == nil:
		return errors.Wrapf(errors.ErrNotFound, "key %q", k)
	}
	if err := dst.Unmarshal(raw); err != nil {
		return errors.Wrapf(err, "unmarshal %q", k)
	}
	return nil
}

// InitConfig saves the configuration of the package found in the "conf"
// section of the genesis, under the package name. ErrNotFound is returned if
// the genesis has none.
func InitConfig(db Store, opts multiclique.Options, pkg string, conf Configuration) error {
	var section multiclique.Options
	if err := opts.ReadOptions("conf", &section); err != nil {
		return errors.Wrap(err, "read conf")
	}
	if section[pkg] == nil {
		return errors.Wrapf(errors.ErrNotFound, "no %q configuration in genesis", pkg)
	}
	if err := section.ReadOptions(pkg, conf); err != nil {
		return errors.Wrapf(err, "read %q configuration", pkg)
	}
	if err := Save(db, pkg, conf); err != nil {
		return errors.Wrapf(err, "save %q configuration", pkg)
	}
	return nil
}
