package signers

import (
	"github.com/iov-one/multiclique"
	"github.com/iov-one/multiclique/crypto"
	"github.com/iov-one/multiclique/errors"
)

const (
	pathAddSignerMsg           = "signers/add"
	pathRemoveSignerMsg        = "signers/remove"
	pathSetDefaultThresholdMsg = "signers/threshold"
	pathUpdateConfigurationMsg = "signers/update_configuration"
)

var _ multiclique.Msg = (*AddSignerMsg)(nil)

// AddSignerMsg adds a new signer to the registry.
type AddSignerMsg struct {
	PublicKey crypto.PublicKey `json:"public_key"`
}

func (AddSignerMsg) Path() string {
	return pathAddSignerMsg
}

func (m AddSignerMsg) Marshal() ([]byte, error) {
	return marshalKey(m.PublicKey), nil
}

func (m *AddSignerMsg) Unmarshal(raw []byte) error {
	key, err := unmarshalKey(raw)
	m.PublicKey = key
	return err
}

func (m *AddSignerMsg) Validate() error {
	return errors.Field("PublicKey", m.PublicKey.Validate(), "")
}

var _ multiclique.Msg = (*RemoveSignerMsg)(nil)

// RemoveSignerMsg removes a signer from the registry.
type RemoveSignerMsg struct {
	PublicKey crypto.PublicKey `json:"public_key"`
}

func (RemoveSignerMsg) Path() string {
	return pathRemoveSignerMsg
}

func (m RemoveSignerMsg) Marshal() ([]byte, error) {
	return marshalKey(m.PublicKey), nil
}

func (m *RemoveSignerMsg) Unmarshal(raw []byte) error {
	key, err := unmarshalKey(raw)
	m.PublicKey = key
	return err
}

func (m *RemoveSignerMsg) Validate() error {
	return errors.Field("PublicKey", m.PublicKey.Validate(), "")
}

func marshalKey(key crypto.PublicKey) []byte {
	var e multiclique.ProtoEncoder
	e.Bytes(1, key)
	return e.Result()
}

func unmarshalKey(raw []byte) (crypto.PublicKey, error) {
	var key crypto.PublicKey
	d := multiclique.NewProtoDecoder(raw)
	for d.Next() {
		switch d.Field() {
		case 1:
			key = d.Bytes()
		default:
			d.Skip()
		}
	}
	return key, d.Err()
}

var _ multiclique.Msg = (*SetDefaultThresholdMsg)(nil)

// SetDefaultThresholdMsg changes the default threshold of the registry.
type SetDefaultThresholdMsg struct {
	Threshold uint32 `json:"threshold"`
}

func (SetDefaultThresholdMsg) Path() string {
	return pathSetDefaultThresholdMsg
}

func (m SetDefaultThresholdMsg) Marshal() ([]byte, error) {
	var e multiclique.ProtoEncoder
	e.Uint64(1, uint64(m.Threshold))
	return e.Result(), nil
}

func (m *SetDefaultThresholdMsg) Unmarshal(raw []byte) error {
	*m = SetDefaultThresholdMsg{}
	d := multiclique.NewProtoDecoder(raw)
	for d.Next() {
		switch d.Field() {
		case 1:
			m.Threshold = d.Uint32()
		default:
			d.Skip()
		}
	}
	return d.Err()
}

// Validate always succeeds, the threshold range depends on the registry
// state.
func (m *SetDefaultThresholdMsg) Validate() error {
	return nil
}

var _ multiclique.Msg = (*UpdateConfigurationMsg)(nil)

// UpdateConfigurationMsg patches the configuration of this extension. Zero
// fields of the patch are ignored.
type UpdateConfigurationMsg struct {
	Patch *Configuration `json:"patch"`
}

func (UpdateConfigurationMsg) Path() string {
	return pathUpdateConfigurationMsg
}

func (m UpdateConfigurationMsg) Marshal() ([]byte, error) {
	var e multiclique.ProtoEncoder
	if m.Patch != nil {
		if err := e.Message(1, m.Patch); err != nil {
			return nil, err
		}
	}
	return e.Result(), nil
}

func (m *UpdateConfigurationMsg) Unmarshal(raw []byte) error {
	*m = UpdateConfigurationMsg{}
	d := multiclique.NewProtoDecoder(raw)
	for d.Next() {
		switch d.Field() {
		case 1:
			m.Patch = &Configuration{}
			d.Message(m.Patch)
		default:
			d.Skip()
		}
	}
	return d.Err()
}

func (m *UpdateConfigurationMsg) Validate() error {
	if m.Patch == nil {
		return errors.Field("Patch", errors.ErrEmpty, "required")
	}
	if m.Patch.KeepAlive < 0 {
		return errors.Field("Patch.KeepAlive", errors.ErrInput, "must not be negative")
	}
	return nil
}
