package policy

import (
	"encoding/json"
	"testing"

	"github.com/iov-one/multiclique"
	"github.com/iov-one/multiclique/errors"
	"github.com/iov-one/multiclique/mctest"
	"github.com/iov-one/multiclique/mctest/assert"
	"github.com/iov-one/multiclique/store"
)

func TestGenesis(t *testing.T) {
	policyA := mctest.NewAddress()
	c1 := mctest.NewAddress()
	c2 := mctest.NewAddress()

	genesis := `{"policies": [
		{"policy": "` + policyA.String() + `", "contexts": ["` + c1.String() + `", "` + c2.String() + `"]}
	]}`
	var opts multiclique.Options
	assert.Nil(t, json.Unmarshal([]byte(genesis), &opts))

	db := store.MemStore()
	var ini Initializer
	assert.Nil(t, ini.FromGenesis(opts, db))

	got, err := Lookup(db, []multiclique.Address{c1, c2})
	assert.Nil(t, err)
	assert.Equal(t, []multiclique.Address{policyA, policyA}, got)

	// Loading the same bindings again must fail.
	if err := ini.FromGenesis(opts, db); !ErrContractPolicyExists.Is(err) {
		t.Fatalf("unexpected error: %+v", err)
	}
}

func TestGenesisWithoutPolicies(t *testing.T) {
	db := store.MemStore()
	var ini Initializer
	assert.Nil(t, ini.FromGenesis(multiclique.Options{}, db))
	bindings, err := All(db)
	assert.Nil(t, err)
	assert.Equal(t, 0, len(bindings))
}

func TestMsgValidate(t *testing.T) {
	msg := AttachPolicyMsg{
		Policy:   mctest.NewAddress(),
		Contexts: []multiclique.Address{mctest.NewAddress(), multiclique.Address("x")},
	}
	err := msg.Validate()
	assert.FieldError(t, err, "Policy", nil)
	assert.FieldError(t, err, "Contexts.0", nil)
	assert.FieldError(t, err, "Contexts.1", errors.ErrInput)

	detach := DetachPolicyMsg{}
	assert.FieldError(t, detach.Validate(), "Contexts", errors.ErrEmpty)
}
