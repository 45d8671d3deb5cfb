package multiclique

import (
	"testing"

	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/multiclique/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type protoModel struct {
	Name   string
	Count  int64
	Items  [][]byte
	Nested *protoModel
}

func (m protoModel) Marshal() ([]byte, error) {
	var e ProtoEncoder
	e.String(1, m.Name)
	e.Int64(2, m.Count)
	e.RepeatedBytes(3, m.Items)
	if m.Nested != nil {
		if err := e.Message(4, m.Nested); err != nil {
			return nil, err
		}
	}
	return e.Result(), nil
}

func (m *protoModel) Unmarshal(raw []byte) error {
	*m = protoModel{}
	d := NewProtoDecoder(raw)
	for d.Next() {
		switch d.Field() {
		case 1:
			m.Name = d.String()
		case 2:
			m.Count = d.Int64()
		case 3:
			m.Items = append(m.Items, d.Bytes())
		case 4:
			m.Nested = &protoModel{}
			d.Message(m.Nested)
		default:
			d.Skip()
		}
	}
	return d.Err()
}

func TestProtoEncodingMatchesWireFormat(t *testing.T) {
	m := protoModel{Name: "abc", Count: 300, Items: [][]byte{[]byte("x"), nil}}
	got, err := m.Marshal()
	require.NoError(t, err)

	want := proto.NewBuffer(nil)
	require.NoError(t, want.EncodeVarint(1<<3|proto.WireBytes))
	require.NoError(t, want.EncodeRawBytes([]byte("abc")))
	require.NoError(t, want.EncodeVarint(2<<3|proto.WireVarint))
	require.NoError(t, want.EncodeVarint(300))
	require.NoError(t, want.EncodeVarint(3<<3|proto.WireBytes))
	require.NoError(t, want.EncodeRawBytes([]byte("x")))
	require.NoError(t, want.EncodeVarint(3<<3|proto.WireBytes))
	require.NoError(t, want.EncodeRawBytes(nil))

	assert.Equal(t, want.Bytes(), got)
}

func TestProtoRoundTrip(t *testing.T) {
	cases := map[string]protoModel{
		"empty": {},
		"negative count": {
			Name:  "neg",
			Count: -42,
		},
		"nested": {
			Name:   "outer",
			Items:  [][]byte{[]byte("a"), []byte("bb")},
			Nested: &protoModel{Name: "inner", Count: 7},
		},
	}
	for testName, m := range cases {
		t.Run(testName, func(t *testing.T) {
			raw, err := m.Marshal()
			require.NoError(t, err)
			var got protoModel
			require.NoError(t, got.Unmarshal(raw))
			assert.Equal(t, m, got)
		})
	}
}

func TestProtoDecoderSkipsUnknownFields(t *testing.T) {
	var e ProtoEncoder
	e.String(1, "known")
	e.Uint64(9, 12345)
	e.Bytes(10, []byte("unknown"))
	e.Int64(2, 5)

	var got protoModel
	require.NoError(t, got.Unmarshal(e.Result()))
	assert.Equal(t, protoModel{Name: "known", Count: 5}, got)
}

func TestProtoDecoderSkipsFixedFields(t *testing.T) {
	raw := proto.NewBuffer(nil)
	require.NoError(t, raw.EncodeVarint(7<<3|proto.WireFixed64))
	require.NoError(t, raw.EncodeFixed64(1<<60))
	require.NoError(t, raw.EncodeVarint(8<<3|proto.WireFixed32))
	require.NoError(t, raw.EncodeFixed32(1<<30))
	require.NoError(t, raw.EncodeVarint(1<<3|proto.WireBytes))
	require.NoError(t, raw.EncodeStringBytes("after"))

	var got protoModel
	require.NoError(t, got.Unmarshal(raw.Bytes()))
	assert.Equal(t, protoModel{Name: "after"}, got)
}

func TestProtoDecoderMalformedData(t *testing.T) {
	cases := map[string][]byte{
		"truncated bytes":   {1<<3 | proto.WireBytes, 10, 'a'},
		"truncated varint":  {2<<3 | proto.WireVarint, 0xff},
		"wrong wire type":   {1<<3 | proto.WireVarint, 1},
		"zero field":        {0, 1},
		"truncated fixed64": {7<<3 | proto.WireFixed64, 1, 2, 3},
		"truncated fixed32": {8<<3 | proto.WireFixed32, 1},
	}
	for testName, raw := range cases {
		t.Run(testName, func(t *testing.T) {
			var got protoModel
			err := got.Unmarshal(raw)
			if !errors.ErrModel.Is(err) {
				t.Fatalf("want model error, got %+v", err)
			}
		})
	}
}

func TestProtoDecoderUint32Overflow(t *testing.T) {
	var e ProtoEncoder
	e.Uint64(1, 1<<32)

	d := NewProtoDecoder(e.Result())
	require.True(t, d.Next())
	assert.Equal(t, uint32(0), d.Uint32())
	if !errors.ErrModel.Is(d.Err()) {
		t.Fatalf("want model error, got %+v", d.Err())
	}

	e = ProtoEncoder{}
	e.Uint64(1, 7)
	d = NewProtoDecoder(e.Result())
	require.True(t, d.Next())
	assert.Equal(t, uint32(7), d.Uint32())
	require.NoError(t, d.Err())
}
