package signers

import (
	"fmt"

	"github.com/iov-one/multiclique"
	"github.com/iov-one/multiclique/crypto"
	"github.com/iov-one/multiclique/errors"
	"github.com/iov-one/multiclique/orm"
)

const (
	// BucketName is where the registry singleton is stored.
	BucketName = "signers"

	// registryKey is the only key used in the bucket.
	registryKey = "registry"
)

// Registry holds the signers of the account and the default threshold.
type Registry struct {
	Signers          []crypto.PublicKey
	DefaultThreshold uint32
	// ExpiresAt is the height until which the registry state is kept
	// alive. It is refreshed by every governance change.
	ExpiresAt int64
}

var _ orm.Model = (*Registry)(nil)

func (r Registry) Marshal() ([]byte, error) {
	var e multiclique.ProtoEncoder
	keys := make([][]byte, len(r.Signers))
	for i, k := range r.Signers {
		keys[i] = k
	}
	e.RepeatedBytes(1, keys)
	e.Uint64(2, uint64(r.DefaultThreshold))
	e.Int64(3, r.ExpiresAt)
	return e.Result(), nil
}

func (r *Registry) Unmarshal(raw []byte) error {
	*r = Registry{}
	d := multiclique.NewProtoDecoder(raw)
	for d.Next() {
		switch d.Field() {
		case 1:
			r.Signers = append(r.Signers, d.Bytes())
		case 2:
			r.DefaultThreshold = d.Uint32()
		case 3:
			r.ExpiresAt = d.Int64()
		default:
			d.Skip()
		}
	}
	return d.Err()
}

func (r *Registry) Validate() error {
	var errs error
	for i, k := range r.Signers {
		if err := k.Validate(); err != nil {
			errs = errors.AppendField(errs, fmt.Sprintf("Signers.%d", i), err)
		}
		if r.indexOf(k) != i {
			errs = errors.AppendField(errs, fmt.Sprintf("Signers.%d", i), errors.ErrDuplicate)
		}
	}
	if int(r.DefaultThreshold) > len(r.Signers) {
		errs = errors.AppendField(errs, "DefaultThreshold", errors.ErrModel)
	}
	if r.ExpiresAt < 0 {
		errs = errors.AppendField(errs, "ExpiresAt", errors.ErrModel)
	}
	return errs
}

// indexOf returns the position of the first occurrence of given key or -1.
func (r *Registry) indexOf(key crypto.PublicKey) int {
	for i, k := range r.Signers {
		if k.Equals(key) {
			return i
		}
	}
	return -1
}

// Contains returns true if given key is one of the signers.
func (r *Registry) Contains(key crypto.PublicKey) bool {
	return r.indexOf(key) >= 0
}

// Configuration of the signers extension, stored with gconf.
type Configuration struct {
	// MaxSigners is the maximum size of the signer set.
	MaxSigners uint32 `json:"max_signers"`
	// KeepAlive is the number of blocks the registry is kept alive after
	// each change.
	KeepAlive int64 `json:"keep_alive"`
}

const (
	DefaultMaxSigners = 20
	// DefaultKeepAlive is about one year of blocks.
	DefaultKeepAlive = 6312000
)

// DefaultConfiguration is used when no configuration was saved.
func DefaultConfiguration() Configuration {
	return Configuration{
		MaxSigners: DefaultMaxSigners,
		KeepAlive:  DefaultKeepAlive,
	}
}

func (c Configuration) Marshal() ([]byte, error) {
	var e multiclique.ProtoEncoder
	e.Uint64(1, uint64(c.MaxSigners))
	e.Int64(2, c.KeepAlive)
	return e.Result(), nil
}

func (c *Configuration) Unmarshal(raw []byte) error {
	*c = Configuration{}
	d := multiclique.NewProtoDecoder(raw)
	for d.Next() {
		switch d.Field() {
		case 1:
			c.MaxSigners = d.Uint32()
		case 2:
			c.KeepAlive = d.Int64()
		default:
			d.Skip()
		}
	}
	return d.Err()
}

func (c *Configuration) Validate() error {
	var errs error
	if c.MaxSigners == 0 {
		errs = errors.AppendField(errs, "MaxSigners", errors.ErrEmpty)
	}
	if c.KeepAlive < 0 {
		errs = errors.AppendField(errs, "KeepAlive", errors.ErrInput)
	}
	return errs
}

// RegistryBucket stores the registry singleton.
type RegistryBucket struct {
	orm.ModelBucket
}

// NewRegistryBucket returns a bucket for the registry singleton.
func NewRegistryBucket() *RegistryBucket {
	return &RegistryBucket{
		ModelBucket: orm.NewModelBucket(BucketName, &Registry{}),
	}
}

// Load returns the registry. ErrNotFound is returned when the registry was
// never initialized.
func (b *RegistryBucket) Load(db multiclique.ReadOnlyKVStore) (*Registry, error) {
	var r Registry
	if err := b.One(db, []byte(registryKey), &r); err != nil {
		return nil, err
	}
	return &r, nil
}

// Save validates and writes the registry.
func (b *RegistryBucket) Save(db multiclique.KVStore, r *Registry) error {
	return b.Put(db, []byte(registryKey), r)
}
