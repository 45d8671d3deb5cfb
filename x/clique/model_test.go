package clique

import (
	"encoding/json"
	"testing"

	"github.com/iov-one/multiclique"
	"github.com/iov-one/multiclique/errors"
	"github.com/iov-one/multiclique/mctest"
	"github.com/iov-one/multiclique/mctest/assert"
)

func TestAuthorizationRequestSerialization(t *testing.T) {
	msg := payload("serialize me")
	req := AuthorizationRequest{
		Payload:    msg,
		Signatures: []SignedMessage{Sign(mctest.Key(1), msg), Sign(mctest.Key(2), msg)},
		Contexts: []AuthContext{
			{Invocation: &Invocation{
				Target:   mctest.NewAddress(),
				Function: "xfer",
				Args:     [][]byte{{1}, {2, 3}},
			}},
			{ContractCreation: &ContractCreation{}},
		},
	}
	assert.Nil(t, req.Validate())

	raw, err := req.Marshal()
	assert.Nil(t, err)
	var got AuthorizationRequest
	assert.Nil(t, got.Unmarshal(raw))
	assert.Equal(t, req, got)

	js, err := json.Marshal(req)
	assert.Nil(t, err)
	var fromJSON AuthorizationRequest
	assert.Nil(t, json.Unmarshal(js, &fromJSON))
	assert.Equal(t, req, fromJSON)
}

func TestAuthorizationRequestValidate(t *testing.T) {
	msg := payload("validate me")
	req := AuthorizationRequest{
		Payload: msg[:31],
		Signatures: []SignedMessage{
			Sign(mctest.Key(1), msg),
			{PublicKey: mctest.Key(2).PublicKey()},
		},
		Contexts: []AuthContext{
			{},
			{Invocation: &Invocation{Function: "xfer"}, ContractCreation: &ContractCreation{}},
		},
	}
	err := req.Validate()
	assert.FieldError(t, err, "Payload", errors.ErrInput)
	assert.FieldError(t, err, "Signatures.0", nil)
	assert.FieldError(t, err, "Signatures.1", errors.ErrEmpty)
	assert.FieldError(t, err, "Contexts.0", errors.ErrEmpty)
	assert.FieldError(t, err, "Contexts.1", errors.ErrInput)
}

func TestAuthorizationRequestForMessage(t *testing.T) {
	self := SelfInvocation("signers/add")
	other := invoke(mctest.NewAddress(), "xfer")
	withArgs := AuthContext{Invocation: &Invocation{
		Target:   multiclique.AccountAddress(),
		Function: "signers/add",
		Args:     [][]byte{[]byte("arg")},
	}}

	cases := map[string]struct {
		Contexts []AuthContext
		Want     []AuthContext
	}{
		"no contexts": {
			Want: []AuthContext{{Invocation: &self}},
		},
		"contract creation only": {
			Contexts: []AuthContext{{ContractCreation: &ContractCreation{}}},
			Want:     []AuthContext{{Invocation: &self}, {ContractCreation: &ContractCreation{}}},
		},
		"self invocation is not repeated": {
			Contexts: []AuthContext{other, {Invocation: &self}},
			Want:     []AuthContext{{Invocation: &self}, other},
		},
		"self invocation of another message is kept": {
			Contexts: []AuthContext{invoke(multiclique.AccountAddress(), "signers/remove")},
			Want:     []AuthContext{{Invocation: &self}, invoke(multiclique.AccountAddress(), "signers/remove")},
		},
		"invocation with arguments is kept": {
			Contexts: []AuthContext{withArgs},
			Want:     []AuthContext{{Invocation: &self}, withArgs},
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			req := &AuthorizationRequest{Payload: payload("msg"), Contexts: tc.Contexts}
			got := req.ForMessage("signers/add")
			assert.Equal(t, tc.Want, got.Contexts)
			assert.Equal(t, req.Payload, got.Payload)
			// The request itself is not modified.
			assert.Equal(t, tc.Contexts, req.Contexts)
		})
	}
}
