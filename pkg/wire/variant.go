package wire

import (
	"bytes"
	stdjson "encoding/json"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// errors
var (
	ErrUnknownShape   = errors.New("unknown envelope shape")
	ErrMalformedTuple = errors.New("tuple envelope must wrap exactly one mapping")
)

// Shape designates the outer envelope structure wrapping a result mapping
type Shape uint8

const (
	ShapeInvalid Shape = iota

	// ShapeDict is a bare mapping of string keys to scalar values
	ShapeDict

	// ShapeTuple is a 1-tuple wrapping the mapping,
	// produced by detail-style calls
	ShapeTuple

	// ShapeKeyed maps a single record ID onto the inner mapping
	ShapeKeyed
)

func (s Shape) String() string {
	switch s {
	case ShapeDict:
		return "a{sv}"
	case ShapeTuple:
		return "(a{sv})"
	case ShapeKeyed:
		return "{sa{sv}}"
	default:
		return "unknown shape"
	}
}

// Variant is a result mapping together with its envelope shape;
// for ShapeKeyed the record ID travels outside the mapping itself
type Variant struct {
	Shape Shape  `json:"shape"`
	ID    string `json:"id,omitempty"`
	Pairs KV     `json:"pairs"`
}

// NewDict wraps a key-value sequence into a bare mapping envelope
func NewDict(kv KV) Variant {
	return Variant{Shape: ShapeDict, Pairs: kv}
}

// NewTuple wraps a key-value sequence into a 1-tuple envelope
func NewTuple(kv KV) Variant {
	return Variant{Shape: ShapeTuple, Pairs: kv}
}

// NewKeyed wraps a key-value sequence into an id-keyed envelope
func NewKeyed(id string, kv KV) Variant {
	return Variant{Shape: ShapeKeyed, ID: id, Pairs: kv}
}

// MarshalJSON renders the envelope in its natural JSON form:
// a mapping for ShapeDict, a single-element array for ShapeTuple
// and a single-entry object for ShapeKeyed; mapping keys keep
// the sequence order
func (v Variant) MarshalJSON() ([]byte, error) {
	switch v.Shape {
	case ShapeDict:
		return v.marshalDict()
	case ShapeTuple:
		inner, err := v.marshalDict()
		if err != nil {
			return nil, err
		}

		buf := bytes.NewBufferString("[")
		buf.Write(inner)
		buf.WriteString("]")

		return buf.Bytes(), nil
	case ShapeKeyed:
		inner, err := v.marshalDict()
		if err != nil {
			return nil, err
		}

		id, err := json.Marshal(v.ID)
		if err != nil {
			return nil, err
		}

		buf := bytes.NewBufferString("{")
		buf.Write(id)
		buf.WriteString(":")
		buf.Write(inner)
		buf.WriteString("}")

		return buf.Bytes(), nil
	default:
		return nil, ErrUnknownShape
	}
}

func (v Variant) marshalDict() ([]byte, error) {
	buf := bytes.NewBufferString("{")

	for i, p := range v.Pairs {
		if i > 0 {
			buf.WriteString(",")
		}

		key, err := json.Marshal(p.Key)
		if err != nil {
			return nil, err
		}

		buf.Write(key)
		buf.WriteString(":")

		switch p.Value.Kind {
		case KindString:
			payload, err := json.Marshal(p.Value.Str)
			if err != nil {
				return nil, err
			}

			buf.Write(payload)
		case KindUint64, KindUint32:
			buf.WriteString(p.Value.String())
		default:
			return nil, errors.Wrapf(ErrTypeMismatch, "key %s holds an invalid value", p.Key)
		}
	}

	buf.WriteString("}")

	return buf.Bytes(), nil
}

// UnmarshalJSON recognizes the three accepted envelope shapes by
// their outer JSON structure; anything else fails with ErrUnknownShape
// NOTE: mapping values are always scalars on the wire, so a single
// object-valued entry unambiguously designates the id-keyed shape
func (v *Variant) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return ErrUnknownShape
	}

	switch data[0] {
	case '[':
		var items []stdjson.RawMessage
		if err := json.Unmarshal(data, &items); err != nil {
			return errors.Wrap(err, "failed to unwrap tuple envelope")
		}

		if len(items) != 1 {
			return ErrMalformedTuple
		}

		pairs, err := unmarshalDict(items[0])
		if err != nil {
			return err
		}

		*v = NewTuple(pairs)

		return nil
	case '{':
		var raw map[string]stdjson.RawMessage
		if err := json.Unmarshal(data, &raw); err != nil {
			return errors.Wrap(err, "failed to unwrap mapping envelope")
		}

		// a single object-valued entry means the outer key is a record ID
		if len(raw) == 1 {
			for id, inner := range raw {
				if innerTrimmed := bytes.TrimSpace(inner); len(innerTrimmed) > 0 && innerTrimmed[0] == '{' {
					pairs, err := unmarshalDict(inner)
					if err != nil {
						return err
					}

					*v = NewKeyed(id, pairs)

					return nil
				}
			}
		}

		pairs, err := unmarshalDict(data)
		if err != nil {
			return err
		}

		*v = NewDict(pairs)

		return nil
	default:
		return ErrUnknownShape
	}
}

func unmarshalDict(data []byte) (pairs KV, err error) {
	var raw map[string]stdjson.RawMessage
	if err = json.Unmarshal(data, &raw); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal result mapping")
	}

	for key, payload := range raw {
		payload = bytes.TrimSpace(payload)
		if len(payload) == 0 {
			continue
		}

		switch payload[0] {
		case '"':
			var s string
			if err = json.Unmarshal(payload, &s); err != nil {
				return nil, errors.Wrapf(err, "failed to unmarshal string value of %s", key)
			}

			pairs.AddString(key, s)
		default:
			var n uint64
			if err = json.Unmarshal(payload, &n); err != nil {
				// a non-scalar value cannot belong to a result mapping;
				// skipping the entry instead of failing the envelope
				continue
			}

			pairs.AddUint64(key, n)
		}
	}

	return pairs, nil
}
