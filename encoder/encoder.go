package encoder

import "errors"

// OpKind tags every value stored in a memtable with the operation that produced it.
type OpKind uint8

const (
	OpKindDelete OpKind = iota
	OpKindSet
)

var ErrEmptyValue = errors.New("encoded value has no op kind")

type Encoder struct{}

func NewEncoder() *Encoder {
	return &Encoder{}
}

// EncodedValue is a decoded memtable value: the op kind and the raw user value.
type EncodedValue struct {
	val    []byte
	opKind OpKind
}

// Encode prepends the op kind byte to val: opKind (1B)|val
func (e *Encoder) Encode(opKind OpKind, val []byte) []byte {
	buf := make([]byte, len(val)+1)
	buf[0] = byte(opKind)
	copy(buf[1:], val)
	return buf
}

// Parse splits an encoded value back into op kind and user value. The user value is copied,
// so the caller may keep it after the memtable entry is replaced.
func (e *Encoder) Parse(val []byte) (*EncodedValue, error) {
	if len(val) == 0 {
		return nil, ErrEmptyValue
	}
	buf := make([]byte, len(val)-1)
	copy(buf, val[1:])
	return &EncodedValue{val: buf, opKind: OpKind(val[0])}, nil
}

func (ev *EncodedValue) Value() []byte {
	return ev.val
}

func (ev *EncodedValue) Kind() OpKind {
	return ev.opKind
}

func (ev *EncodedValue) IsTombstone() bool {
	return ev.opKind == OpKindDelete
}
