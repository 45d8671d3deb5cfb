package gconf

import (
	"reflect"

	"github.com/iov-one/multiclique"
	"github.com/iov-one/multiclique/errors"
	"github.com/iov-one/multiclique/x"
)

type UpdateConfigurationHandler struct {
	pkg string
	// We require this type to load the data.
	config Configuration
	auth   x.Authenticator
}

var _ multiclique.Handler = (*UpdateConfigurationHandler)(nil)

// NewUpdateConfigurationHandler returns a message handler that process
// configuration patch message.
//
// The configuration belongs to the account, so each message must be
// authorized by the account itself. A missing configuration is created from
// the patch.
func NewUpdateConfigurationHandler(pkg string, config Configuration, auth x.Authenticator) UpdateConfigurationHandler {
	return UpdateConfigurationHandler{
		pkg:    pkg,
		config: config,
		auth:   auth,
	}
}

func (h UpdateConfigurationHandler) Check(ctx multiclique.Context, store multiclique.KVStore, tx multiclique.Tx) (*multiclique.CheckResult, error) {
	if err := h.applyTx(ctx, store, tx); err != nil {
		return nil, err
	}
	return &multiclique.CheckResult{}, nil
}

func (h UpdateConfigurationHandler) Deliver(ctx multiclique.Context, store multiclique.KVStore, tx multiclique.Tx) (*multiclique.DeliverResult, error) {
	if err := h.applyTx(ctx, store, tx); err != nil {
		return nil, err
	}
	multiclique.GetLogger(ctx).Info("configuration updated", "pkg", h.pkg)
	return &multiclique.DeliverResult{}, nil
}

func (h UpdateConfigurationHandler) applyTx(ctx multiclique.Context, store multiclique.KVStore, tx multiclique.Tx) error {
	if err := x.RequireAccount(ctx, h.auth); err != nil {
		return err
	}

	switch err := Load(store, h.pkg, h.config); {
	case err == nil:
	case errors.ErrNotFound.Is(err):
		// Configuration was not created via genesis and the patch
		// is going to be its first version.
		cval := reflect.ValueOf(h.config).Elem()
		cval.Set(reflect.Zero(cval.Type()))
	default:
		return errors.Wrap(err, "load current configuration")
	}

	payload, err := patchPayload(tx)
	if err != nil {
		return errors.Wrap(err, "cannot get message payload")
	}
	if err := patch(h.config, payload); err != nil {
		return errors.Wrap(err, "cannot patch config with message payload")
	}

	if err := Save(store, h.pkg, h.config); err != nil {
		return errors.Wrap(err, "cannot save updated config")
	}
	return nil
}

func patch(config Configuration, payload Configuration) error {
	pType := reflect.TypeOf(payload)
	cType := reflect.TypeOf(config)
	if pType != cType {
		return errors.Wrap(errors.ErrMsg, "config in message doesn't match store")
	}

	cval := reflect.ValueOf(config).Elem()
	pval := reflect.ValueOf(payload).Elem()

	for i := 0; i < cval.NumField(); i++ {
		got := pval.Field(i)

		// Zero values keep the current value.
		if isZero(got) {
			continue
		}

		cval.Field(i).Set(got)
	}

	return nil
}

// isZero returns true if given value represents a zero value of a given type.
func isZero(val reflect.Value) bool {
	zero := reflect.Zero(val.Type()).Interface()
	return reflect.DeepEqual(val.Interface(), zero)
}

// patchPayload expects the transaction to have a message with "Patch" field of
// the same type as the configuration. Content of this field is extracted and
// returned.
func patchPayload(tx multiclique.Tx) (Configuration, error) {
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, err
	}
	if err := msg.Validate(); err != nil {
		return nil, err
	}

	pval := reflect.ValueOf(msg)
	if pval.Kind() != reflect.Ptr || pval.Elem().Kind() != reflect.Struct {
		return nil, errors.Wrapf(errors.ErrInput, "invalid message container value: %T", msg)
	}
	field := pval.Elem().FieldByName("Patch")
	if !field.IsValid() {
		return nil, errors.Wrapf(errors.ErrInput, "%T has no \"Patch\" field", msg)
	}
	if field.Kind() != reflect.Ptr || field.IsNil() {
		return nil, errors.Wrap(errors.ErrState, `"Patch" field is required`)
	}
	payload, ok := field.Interface().(Configuration)
	if !ok {
		return nil, errors.Wrap(errors.ErrInput, `"Patch" field is of a wrong type`)
	}
	return payload, nil
}
