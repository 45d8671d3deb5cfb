package multiclique

import (
	"encoding/hex"
	"encoding/json"
	"strings"

	"github.com/iov-one/multiclique/errors"
)

// HexBytes is a byte slice that is represented in JSON as an upper case hex
// string instead of the default base64.
type HexBytes []byte

func (h HexBytes) MarshalJSON() ([]byte, error) {
	return marshalHex(h)
}

func (h *HexBytes) UnmarshalJSON(raw []byte) error {
	return unmarshalHex((*[]byte)(h), raw)
}

// String returns the upper case hex representation.
func (h HexBytes) String() string {
	return strings.ToUpper(hex.EncodeToString(h))
}

func unmarshalHex(dst *[]byte, src []byte) error {
	var s string
	if err := json.Unmarshal(src, &s); err != nil {
		return errors.Wrapf(errors.ErrInput, "parse string: %s", err)
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return errors.Wrapf(errors.ErrInput, "decode hex: %s", err)
	}
	if len(b) == 0 {
		b = nil
	}
	*dst = b
	return nil
}

func marshalHex(bytes []byte) ([]byte, error) {
	s := strings.ToUpper(hex.EncodeToString(bytes))
	return json.Marshal(s)
}
