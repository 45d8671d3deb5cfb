package app

import (
	"encoding/json"
	"io/ioutil"

	"github.com/iov-one/multiclique"
	"github.com/iov-one/multiclique/errors"
)

// Genesis file format. Each extension reads its own section of the
// AppState.
type Genesis struct {
	ChainID  string              `json:"chain_id"`
	AppState multiclique.Options `json:"app_state"`
}

// LoadGenesis tries to load a given file into a Genesis struct
func LoadGenesis(filePath string) (*Genesis, error) {
	raw, err := ioutil.ReadFile(filePath)
	if err != nil {
		return nil, errors.Wrap(errors.ErrInput, err.Error())
	}
	var gen Genesis
	if err := json.Unmarshal(raw, &gen); err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "cannot unmarshal genesis file: %s", err)
	}
	return &gen, nil
}
