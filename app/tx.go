package app

import (
	"bytes"
	"crypto/sha256"
	"encoding/json"
	"fmt"

	"github.com/iov-one/multiclique"
	"github.com/iov-one/multiclique/errors"
	"github.com/iov-one/multiclique/x/clique"
)

// MsgTypes maps a message path to a constructor of that message. It is used
// to decode transactions.
type MsgTypes map[string]func() multiclique.Msg

// Register adds a message type. The path is taken from the message itself.
// It panics if the path is already registered.
func (t MsgTypes) Register(newMsg func() multiclique.Msg) {
	path := newMsg().Path()
	if _, ok := t[path]; ok {
		panic(fmt.Sprintf("message path %q already registered", path))
	}
	t[path] = newMsg
}

// Decode unmarshals a serialized transaction.
func (t MsgTypes) Decode(raw []byte) (*Tx, error) {
	tx := t.NewTx()
	if err := tx.Unmarshal(raw); err != nil {
		return nil, err
	}
	return tx, nil
}

// NewTx returns an empty transaction that can decode registered messages.
func (t MsgTypes) NewTx() *Tx {
	return &Tx{types: t}
}

// Tx carries a single message and optionally the authorization request of
// the account. A transaction authorized by the account is processed with the
// account condition granted.
type Tx struct {
	Msg           multiclique.Msg
	Authorization *clique.AuthorizationRequest

	types MsgTypes
}

var (
	_ multiclique.Tx = (*Tx)(nil)
	_ clique.AuthTx  = (*Tx)(nil)
)

// GetMsg returns the carried message.
func (tx *Tx) GetMsg() (multiclique.Msg, error) {
	if tx.Msg == nil {
		return nil, errors.Wrap(errors.ErrEmpty, "no message")
	}
	return tx.Msg, nil
}

// GetAuthorization returns the authorization request. The request must sign
// the payload of the carried message, so that signatures cannot be reused
// for another message. The returned request always authorizes the self
// invocation of the message, see clique.AuthorizationRequest.ForMessage.
func (tx *Tx) GetAuthorization() (*clique.AuthorizationRequest, error) {
	if tx.Authorization == nil {
		return nil, nil
	}
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, err
	}
	payload, err := Payload(msg)
	if err != nil {
		return nil, err
	}
	if !bytes.Equal(payload, tx.Authorization.Payload) {
		return nil, errors.Wrap(errors.ErrInput, "authorization payload does not match the message")
	}
	return tx.Authorization.ForMessage(msg.Path()), nil
}

// Payload returns the digest that signers of a message sign. It is the
// sha256 of the message path and its binary representation.
func Payload(msg multiclique.Msg) ([]byte, error) {
	raw, err := msg.Marshal()
	if err != nil {
		return nil, errors.Wrap(err, "marshal message")
	}
	h := sha256.New()
	_, _ = h.Write([]byte(msg.Path()))
	_, _ = h.Write([]byte{0})
	_, _ = h.Write(raw)
	return h.Sum(nil), nil
}

// txJSON is the serialized form of the transaction.
type txJSON struct {
	Path          string                       `json:"path"`
	Msg           json.RawMessage              `json:"msg"`
	Authorization *clique.AuthorizationRequest `json:"authorization,omitempty"`
}

// Marshal returns the JSON representation of the transaction.
func (tx *Tx) Marshal() ([]byte, error) {
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, err
	}
	raw, err := json.Marshal(msg)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrMsg, "cannot marshal message: %s", err)
	}
	return json.Marshal(txJSON{
		Path:          msg.Path(),
		Msg:           raw,
		Authorization: tx.Authorization,
	})
}

// Unmarshal decodes the JSON representation of the transaction. Only
// registered message types can be decoded.
func (tx *Tx) Unmarshal(raw []byte) error {
	if tx.types == nil {
		return errors.Wrap(errors.ErrHuman, "transaction without message types")
	}
	var env txJSON
	if err := json.Unmarshal(raw, &env); err != nil {
		return errors.Wrapf(errors.ErrInput, "cannot decode transaction: %s", err)
	}
	newMsg, ok := tx.types[env.Path]
	if !ok {
		return errors.Wrapf(errors.ErrNotFound, "unknown message path %q", env.Path)
	}
	msg := newMsg()
	if len(env.Msg) != 0 {
		if err := json.Unmarshal(env.Msg, msg); err != nil {
			return errors.Wrapf(errors.ErrInput, "cannot decode %q message: %s", env.Path, err)
		}
	}
	tx.Msg = msg
	tx.Authorization = env.Authorization
	return nil
}
