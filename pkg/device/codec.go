package device

import (
	"github.com/agubarev/firmtown/pkg/wire"
	"github.com/pkg/errors"
)

// ToWire serializes the record into an ordered key-value sequence,
// skipping every field that is unset: lists are set when non-empty
// and travel comma-joined, strings are set when non-null (an empty
// string is still emitted), numerics are set when non-zero
//
// the output key order is fixed and matches field declaration order;
// it matters only for human inspection since the destination is a mapping
func (d *Device) ToWire() (kv wire.KV) {
	if len(d.guids) > 0 {
		kv.AddString(wire.KeyGUID, wire.JoinList(d.guids))
	}

	if d.name != nil {
		kv.AddString(wire.KeyName, *d.name)
	}

	if d.vendor != nil {
		kv.AddString(wire.KeyVendor, *d.vendor)
	}

	if d.flags > 0 {
		kv.AddUint64(wire.KeyFlags, d.flags)
	}

	if d.created > 0 {
		kv.AddUint64(wire.KeyCreated, d.created)
	}

	if d.modified > 0 {
		kv.AddUint64(wire.KeyModified, d.modified)
	}

	if d.description != nil {
		kv.AddString(wire.KeyDescription, *d.description)
	}

	if len(d.checksums) > 0 {
		kv.AddString(wire.KeyChecksum, wire.JoinList(d.checksums))
	}

	if d.provider != nil {
		kv.AddString(wire.KeyPlugin, *d.provider)
	}

	if d.version != nil {
		kv.AddString(wire.KeyVersion, *d.version)
	}

	if d.versionLowest != nil {
		kv.AddString(wire.KeyVersionLowest, *d.versionLowest)
	}

	if d.versionBootloader != nil {
		kv.AddString(wire.KeyVersionBootloader, *d.versionBootloader)
	}

	if d.flashesLeft > 0 {
		kv.AddUint32(wire.KeyFlashesLeft, d.flashesLeft)
	}

	return kv
}

// ToVariant wraps the serialized record into a given envelope shape
func (d *Device) ToVariant(shape wire.Shape) (wire.Variant, error) {
	switch shape {
	case wire.ShapeDict:
		return wire.NewDict(d.ToWire()), nil
	case wire.ShapeTuple:
		return wire.NewTuple(d.ToWire()), nil
	case wire.ShapeKeyed:
		return wire.NewKeyed(d.ID(), d.ToWire()), nil
	default:
		return wire.Variant{}, errors.Wrapf(wire.ErrUnknownShape, "shape %d", shape)
	}
}

// ApplyKeyValue dispatches a single wire entry onto the record;
// unrecognized keys are forward/backward-compatibility noise and
// are ignored without an error, a recognized key carrying a payload
// of the wrong type fails softly for that key alone
func (d *Device) ApplyKeyValue(key string, v wire.Value) error {
	switch key {
	case wire.KeyFlags:
		n, err := v.Uint64Val()
		if err != nil {
			return errors.Wrap(err, key)
		}

		d.SetFlags(n)
	case wire.KeyCreated:
		n, err := v.Uint64Val()
		if err != nil {
			return errors.Wrap(err, key)
		}

		d.SetCreated(n)
	case wire.KeyModified:
		n, err := v.Uint64Val()
		if err != nil {
			return errors.Wrap(err, key)
		}

		d.SetModified(n)
	case wire.KeyGUID:
		s, err := v.StringVal()
		if err != nil {
			return errors.Wrap(err, key)
		}

		// re-adding through AddGUID keeps the list deduplicated
		for _, guid := range wire.SplitList(s) {
			d.AddGUID(guid)
		}
	case wire.KeyName:
		s, err := v.StringVal()
		if err != nil {
			return errors.Wrap(err, key)
		}

		d.SetName(s)
	case wire.KeySummary:
		s, err := v.StringVal()
		if err != nil {
			return errors.Wrap(err, key)
		}

		d.SetSummary(s)
	case wire.KeyVendor:
		s, err := v.StringVal()
		if err != nil {
			return errors.Wrap(err, key)
		}

		d.SetVendor(s)
	case wire.KeyHomepage:
		s, err := v.StringVal()
		if err != nil {
			return errors.Wrap(err, key)
		}

		d.SetHomepage(s)
	case wire.KeyDescription:
		s, err := v.StringVal()
		if err != nil {
			return errors.Wrap(err, key)
		}

		d.SetDescription(s)
	case wire.KeyChecksum:
		s, err := v.StringVal()
		if err != nil {
			return errors.Wrap(err, key)
		}

		for _, checksum := range wire.SplitList(s) {
			d.AddChecksum(checksum)
		}
	case wire.KeyPlugin:
		s, err := v.StringVal()
		if err != nil {
			return errors.Wrap(err, key)
		}

		d.SetProvider(s)
	case wire.KeyVersion:
		s, err := v.StringVal()
		if err != nil {
			return errors.Wrap(err, key)
		}

		d.SetVersion(s)
	case wire.KeyVersionLowest:
		s, err := v.StringVal()
		if err != nil {
			return errors.Wrap(err, key)
		}

		d.SetVersionLowest(s)
	case wire.KeyVersionBootloader:
		s, err := v.StringVal()
		if err != nil {
			return errors.Wrap(err, key)
		}

		d.SetVersionBootloader(s)
	case wire.KeyFlashesLeft:
		n, err := v.Uint32Val()
		if err != nil {
			return errors.Wrap(err, key)
		}

		d.SetFlashesLeft(n)
	}

	return nil
}

// FromWire reconstructs a record from a wire envelope; only an
// unrecognized envelope shape is an error, individual bad entries
// are skipped so the rest of the mapping still applies
func FromWire(v wire.Variant) (*Device, error) {
	d := New()

	switch v.Shape {
	case wire.ShapeDict, wire.ShapeTuple:
		// same mapping, the tuple is just a detail-call wrapping
	case wire.ShapeKeyed:
		// the outer key carries the record ID
		d.SetID(v.ID)
	default:
		return nil, errors.Wrapf(wire.ErrUnknownShape, "shape %d", v.Shape)
	}

	for _, p := range v.Pairs {
		// a recognized key with a mismatched payload is dropped softly;
		// the caller may log the returned error if it cares
		_ = d.ApplyKeyValue(p.Key, p.Value)
	}

	return d, nil
}
