package policy

import (
	"github.com/iov-one/multiclique"
	"github.com/iov-one/multiclique/errors"
	"github.com/iov-one/multiclique/orm"
)

// BucketName is where the bindings are stored.
const BucketName = "policy"

// Binding is the policy bound to a context. The context address is the key.
type Binding struct {
	Policy multiclique.Address
}

var _ orm.Model = (*Binding)(nil)

func (b Binding) Marshal() ([]byte, error) {
	var e multiclique.ProtoEncoder
	e.Bytes(1, b.Policy)
	return e.Result(), nil
}

func (b *Binding) Unmarshal(raw []byte) error {
	*b = Binding{}
	d := multiclique.NewProtoDecoder(raw)
	for d.Next() {
		switch d.Field() {
		case 1:
			b.Policy = d.Bytes()
		default:
			d.Skip()
		}
	}
	return d.Err()
}

func (b *Binding) Validate() error {
	return errors.Field("Policy", b.Policy.Validate(), "")
}

// Bound is a binding together with the context it is bound to.
type Bound struct {
	Context multiclique.Address `json:"context"`
	Policy  multiclique.Address `json:"policy"`
}

// BindingBucket stores the bindings, one per context.
type BindingBucket struct {
	orm.Bucket
}

// NewBindingBucket returns a bucket for the policy bindings.
func NewBindingBucket() BindingBucket {
	return BindingBucket{
		Bucket: orm.NewBucket(BucketName, orm.NewSimpleObj(nil, &Binding{})),
	}
}

// GetBinding returns the binding of given context, or nil if there is none.
func (b BindingBucket) GetBinding(db multiclique.ReadOnlyKVStore, context multiclique.Address) (*Binding, error) {
	obj, err := b.Get(db, context)
	if err != nil {
		return nil, err
	}
	if obj == nil || obj.Value() == nil {
		return nil, nil
	}
	binding, ok := obj.Value().(*Binding)
	if !ok {
		return nil, errors.WithType(errors.ErrModel, obj.Value())
	}
	return binding, nil
}

// Bind saves the binding of given context.
func (b BindingBucket) Bind(db multiclique.KVStore, context, policy multiclique.Address) error {
	return b.Save(db, orm.NewSimpleObj(context, &Binding{Policy: policy}))
}

// AllBindings returns every binding, ordered by the context address.
func (b BindingBucket) AllBindings(db multiclique.ReadOnlyKVStore) ([]Bound, error) {
	objs, err := b.All(db)
	if err != nil {
		return nil, err
	}
	res := make([]Bound, 0, len(objs))
	for _, obj := range objs {
		binding, ok := obj.Value().(*Binding)
		if !ok {
			return nil, errors.WithType(errors.ErrModel, obj.Value())
		}
		res = append(res, Bound{Context: obj.Key(), Policy: binding.Policy})
	}
	return res, nil
}
