package multiclique

import (
	"math"

	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/multiclique/errors"
)

// ProtoEncoder writes a message in the protobuf 3 wire format. Fields are
// written in the order of calls. Scalar fields holding the zero value are
// omitted, as required by the proto3 encoding.
//
// The schema of every persisted model is declared in the codec.proto file
// of the owning package.
type ProtoEncoder struct {
	buf proto.Buffer
}

func (e *ProtoEncoder) key(field int, wire int) {
	_ = e.buf.EncodeVarint(uint64(field)<<3 | uint64(wire))
}

// Bytes writes a length delimited field, unless it is empty.
func (e *ProtoEncoder) Bytes(field int, b []byte) {
	if len(b) == 0 {
		return
	}
	e.bytes(field, b)
}

func (e *ProtoEncoder) bytes(field int, b []byte) {
	e.key(field, proto.WireBytes)
	_ = e.buf.EncodeRawBytes(b)
}

// RepeatedBytes writes every element, including the empty ones.
func (e *ProtoEncoder) RepeatedBytes(field int, list [][]byte) {
	for _, b := range list {
		e.bytes(field, b)
	}
}

// String writes a string field, unless it is empty.
func (e *ProtoEncoder) String(field int, s string) {
	if s == "" {
		return
	}
	e.key(field, proto.WireBytes)
	_ = e.buf.EncodeStringBytes(s)
}

// Uint64 writes a varint field, unless it is zero.
func (e *ProtoEncoder) Uint64(field int, v uint64) {
	if v == 0 {
		return
	}
	e.key(field, proto.WireVarint)
	_ = e.buf.EncodeVarint(v)
}

// Int64 writes a varint field, unless it is zero. Negative values take ten
// bytes, same as the int64 protobuf type.
func (e *ProtoEncoder) Int64(field int, v int64) {
	e.Uint64(field, uint64(v))
}

// Message writes a nested message. The message is always written, so that
// repeated message fields keep their length.
func (e *ProtoEncoder) Message(field int, m Marshaller) error {
	raw, err := m.Marshal()
	if err != nil {
		return errors.Wrapf(err, "field %d", field)
	}
	e.bytes(field, raw)
	return nil
}

// Result returns the serialized message. It is never nil, so that a model
// with only zero values is still stored.
func (e *ProtoEncoder) Result() []byte {
	if raw := e.buf.Bytes(); raw != nil {
		return raw
	}
	return []byte{}
}

// ProtoDecoder reads a message serialized in the protobuf 3 wire format.
// It keeps its own read offset, which proto.Buffer does not expose, to tell
// the end of the message apart from truncated data.
//
//   d := NewProtoDecoder(raw)
//   for d.Next() {
//     switch d.Field() {
//     case 1:
//       m.Name = d.String()
//     default:
//       d.Skip()
//     }
//   }
//   return d.Err()
type ProtoDecoder struct {
	buf   []byte
	field int
	wire  int
	err   error
}

// NewProtoDecoder returns a decoder reading given serialized message.
func NewProtoDecoder(raw []byte) *ProtoDecoder {
	return &ProtoDecoder{buf: raw}
}

// Next reads the next field key. It returns false when there are no more
// fields or the data is malformed.
func (d *ProtoDecoder) Next() bool {
	if d.err != nil || len(d.buf) == 0 {
		return false
	}
	k := d.varint()
	if d.err != nil {
		return false
	}
	d.field = int(k >> 3)
	d.wire = int(k & 0x7)
	if d.field == 0 {
		d.fail("invalid field number")
		return false
	}
	return true
}

// Field returns the number of the current field.
func (d *ProtoDecoder) Field() int {
	return d.field
}

// Bytes returns a copy of the current length delimited field.
func (d *ProtoDecoder) Bytes() []byte {
	if !d.expect(proto.WireBytes) {
		return nil
	}
	n := d.varint()
	if d.err != nil {
		return nil
	}
	if uint64(len(d.buf)) < n {
		d.fail("unexpected end of data")
		return nil
	}
	res := make([]byte, n)
	copy(res, d.buf[:n])
	d.buf = d.buf[n:]
	return res
}

// String returns the current field as a string.
func (d *ProtoDecoder) String() string {
	return string(d.Bytes())
}

// Uint64 returns the current varint field.
func (d *ProtoDecoder) Uint64() uint64 {
	if !d.expect(proto.WireVarint) {
		return 0
	}
	return d.varint()
}

// Uint32 returns the current varint field. Values that do not fit in 32
// bits are a decoding failure.
func (d *ProtoDecoder) Uint32() uint32 {
	v := d.Uint64()
	if v > math.MaxUint32 {
		d.fail("value overflows uint32")
		return 0
	}
	return uint32(v)
}

// Int64 returns the current varint field as a signed value.
func (d *ProtoDecoder) Int64() int64 {
	return int64(d.Uint64())
}

// Message decodes the current length delimited field into given message.
func (d *ProtoDecoder) Message(m Persistent) {
	raw := d.Bytes()
	if d.err != nil {
		return
	}
	if err := m.Unmarshal(raw); err != nil {
		d.err = errors.Wrapf(err, "field %d", d.field)
	}
}

// Skip ignores the current field. Use it for unknown fields.
func (d *ProtoDecoder) Skip() {
	switch d.wire {
	case proto.WireVarint:
		d.varint()
	case proto.WireBytes:
		d.Bytes()
	case proto.WireFixed64:
		d.fixed((*proto.Buffer).DecodeFixed64, 8)
	case proto.WireFixed32:
		d.fixed((*proto.Buffer).DecodeFixed32, 4)
	default:
		d.fail("unsupported wire type")
	}
}

// Err returns the first decoding failure, if any.
func (d *ProtoDecoder) Err() error {
	return d.err
}

func (d *ProtoDecoder) expect(wire int) bool {
	if d.err != nil {
		return false
	}
	if d.wire != wire {
		d.fail("unexpected wire type")
		return false
	}
	return true
}

func (d *ProtoDecoder) varint() uint64 {
	v, n := proto.DecodeVarint(d.buf)
	if n == 0 {
		d.fail("malformed varint")
		return 0
	}
	d.buf = d.buf[n:]
	return v
}

// fixed reads a fixed size value of n bytes.
func (d *ProtoDecoder) fixed(decode func(*proto.Buffer) (uint64, error), n int) {
	if _, err := decode(proto.NewBuffer(d.buf)); err != nil {
		d.fail("unexpected end of data")
		return
	}
	d.buf = d.buf[n:]
}

func (d *ProtoDecoder) fail(reason string) {
	d.err = errors.Wrapf(errors.ErrModel, "field %d: %s", d.field, reason)
}
