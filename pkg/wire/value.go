package wire

import (
	"strconv"

	"github.com/pkg/errors"
)

// errors
var (
	ErrTypeMismatch = errors.New("value type mismatch")
	ErrValueTooBig  = errors.New("value does not fit the expected type")
)

// Kind designates which payload a Value is carrying
// NOTE: only these three scalar kinds ever occur on the wire
type Kind uint8

const (
	KindInvalid Kind = iota
	KindString
	KindUint64
	KindUint32
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindUint64:
		return "uint64"
	case KindUint32:
		return "uint32"
	default:
		return "invalid"
	}
}

// Value is a closed tagged union of the scalar payloads
// allowed inside a result mapping
type Value struct {
	Kind Kind   `json:"kind"`
	Str  string `json:"str,omitempty"`
	U64  uint64 `json:"u64,omitempty"`
	U32  uint32 `json:"u32,omitempty"`
}

// NewString wraps a string payload
func NewString(s string) Value {
	return Value{Kind: KindString, Str: s}
}

// NewUint64 wraps an unsigned 64-bit payload
func NewUint64(v uint64) Value {
	return Value{Kind: KindUint64, U64: v}
}

// NewUint32 wraps an unsigned 32-bit payload
func NewUint32(v uint32) Value {
	return Value{Kind: KindUint32, U32: v}
}

// StringVal returns the string payload
func (v Value) StringVal() (string, error) {
	if v.Kind != KindString {
		return "", errors.Wrapf(ErrTypeMismatch, "expected string, got %s", v.Kind)
	}

	return v.Str, nil
}

// Uint64Val returns an unsigned 64-bit payload;
// a uint32 payload is promoted without loss
func (v Value) Uint64Val() (uint64, error) {
	switch v.Kind {
	case KindUint64:
		return v.U64, nil
	case KindUint32:
		return uint64(v.U32), nil
	default:
		return 0, errors.Wrapf(ErrTypeMismatch, "expected uint64, got %s", v.Kind)
	}
}

// Uint32Val returns an unsigned 32-bit payload; a uint64 payload
// is accepted as long as it fits (JSON decoding produces uint64s)
func (v Value) Uint32Val() (uint32, error) {
	switch v.Kind {
	case KindUint32:
		return v.U32, nil
	case KindUint64:
		if v.U64 > 1<<32-1 {
			return 0, errors.Wrapf(ErrValueTooBig, "%d overflows uint32", v.U64)
		}

		return uint32(v.U64), nil
	default:
		return 0, errors.Wrapf(ErrTypeMismatch, "expected uint32, got %s", v.Kind)
	}
}

func (v Value) String() string {
	switch v.Kind {
	case KindString:
		return v.Str
	case KindUint64:
		return strconv.FormatUint(v.U64, 10)
	case KindUint32:
		return strconv.FormatUint(uint64(v.U32), 10)
	default:
		return ""
	}
}
