package device_test

import (
	"testing"

	"github.com/agubarev/firmtown/pkg/device"
	"github.com/agubarev/firmtown/pkg/wire"
	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func testDevice() *device.Device {
	d := device.New()
	d.SetID("USB:foo")
	d.AddGUID("2082b5e0-7a64-478a-b1b2-e3404fab6dad")
	d.AddGUID("00000000-0000-0000-0000-000000000000")
	d.SetName("ColorHug2")
	d.SetVendor("Hughski")
	d.SetFlags(uint64(device.FlagUpdatable | device.FlagRequireAC))
	d.SetCreated(1500000000)
	d.SetModified(1500000001)
	d.SetDescription("A colorimeter")
	d.AddChecksum("beefdead")
	d.SetProvider("colorhug")
	d.SetVersion("2.0.3")
	d.SetVersionLowest("2.0.0")
	d.SetVersionBootloader("0.4.2")
	d.SetFlashesLeft(3)

	return d
}

func TestToWireOrder(t *testing.T) {
	a := assert.New(t)

	kv := testDevice().ToWire()

	// the serializer key order is fixed for wire compatibility
	a.Equal([]string{
		wire.KeyGUID,
		wire.KeyName,
		wire.KeyVendor,
		wire.KeyFlags,
		wire.KeyCreated,
		wire.KeyModified,
		wire.KeyDescription,
		wire.KeyChecksum,
		wire.KeyPlugin,
		wire.KeyVersion,
		wire.KeyVersionLowest,
		wire.KeyVersionBootloader,
		wire.KeyFlashesLeft,
	}, kv.Keys())

	guids, ok := kv.Get(wire.KeyGUID)
	a.True(ok)
	a.Equal("2082b5e0-7a64-478a-b1b2-e3404fab6dad,00000000-0000-0000-0000-000000000000", guids.Str)
}

func TestToWireOmission(t *testing.T) {
	a := assert.New(t)

	// a blank record serializes into an empty sequence
	a.Empty(device.New().ToWire())

	// an empty string is a set value and must still travel
	d := device.New()
	d.SetName("")

	kv := d.ToWire()
	a.Len(kv, 1)

	name, ok := kv.Get(wire.KeyName)
	a.True(ok)
	a.Equal(wire.NewString(""), name)

	// zero numerics stay unset
	d = device.New()
	d.SetFlags(0)
	d.SetCreated(0)
	d.SetFlashesLeft(0)
	a.Empty(d.ToWire())
}

func TestRoundTrip(t *testing.T) {
	a := assert.New(t)

	orig := testDevice()

	for _, shape := range []wire.Shape{wire.ShapeDict, wire.ShapeTuple, wire.ShapeKeyed} {
		v, err := orig.ToVariant(shape)
		a.NoError(err)

		d, err := device.FromWire(v)
		a.NoError(err)

		a.Equal(orig.GUIDs(), d.GUIDs())
		a.Equal(orig.Name(), d.Name())
		a.Equal(orig.Vendor(), d.Vendor())
		a.Equal(orig.Flags(), d.Flags())
		a.Equal(orig.Created(), d.Created())
		a.Equal(orig.Modified(), d.Modified())
		a.Equal(orig.Description(), d.Description())
		a.Equal(orig.Checksums(), d.Checksums())
		a.Equal(orig.Provider(), d.Provider())
		a.Equal(orig.Version(), d.Version())
		a.Equal(orig.VersionLowest(), d.VersionLowest())
		a.Equal(orig.VersionBootloader(), d.VersionBootloader())
		a.Equal(orig.FlashesLeft(), d.FlashesLeft())

		// only the id-keyed envelope carries the identifier
		if shape == wire.ShapeKeyed {
			a.Equal(orig.ID(), d.ID())
		} else {
			a.False(d.HasID())
		}

		// a second pass through the codec must change nothing
		again, err := d.ToVariant(shape)
		a.NoError(err)
		a.Equal(v, again)
	}
}

func TestFromWireEnvelopeEquivalence(t *testing.T) {
	a := assert.New(t)

	kv := testDevice().ToWire()

	fromDict, err := device.FromWire(wire.NewDict(kv))
	a.NoError(err)

	fromTuple, err := device.FromWire(wire.NewTuple(kv))
	a.NoError(err)

	// the tuple is just a detail-call wrapping of the same mapping
	a.Equal(fromDict, fromTuple)
}

func TestFromWireKeyedID(t *testing.T) {
	a := assert.New(t)

	var v wire.Variant
	a.NoError(json.Unmarshal([]byte(`{"dev-1":{"Name":"ColorHug2"}}`), &v))

	d, err := device.FromWire(v)
	a.NoError(err)
	a.Equal("dev-1", d.ID())
	a.Equal("ColorHug2", d.Name())
}

func TestFromWireUnknownShape(t *testing.T) {
	a := assert.New(t)

	_, err := device.FromWire(wire.Variant{Shape: wire.ShapeInvalid})
	a.Error(err)
	a.Equal(wire.ErrUnknownShape, errors.Cause(err))
}

func TestApplyKeyValueUnknownKey(t *testing.T) {
	a := assert.New(t)

	// unrecognized keys are compatibility noise, not errors
	d := device.New()
	a.NoError(d.ApplyKeyValue("SomeFutureKey", wire.NewString("whatever")))
	a.Empty(d.ToWire())
}

func TestApplyKeyValueTypeMismatch(t *testing.T) {
	a := assert.New(t)

	d := device.New()

	// a recognized key with a wrong payload fails for that key alone
	err := d.ApplyKeyValue(wire.KeyFlags, wire.NewString("not a number"))
	a.Error(err)
	a.Equal(wire.ErrTypeMismatch, errors.Cause(err))
	a.Zero(d.Flags())

	err = d.ApplyKeyValue(wire.KeyName, wire.NewUint64(42))
	a.Error(err)
	a.Empty(d.Name())
}

func TestFromWireSkipsBadEntries(t *testing.T) {
	a := assert.New(t)

	var kv wire.KV
	kv.Add(wire.KeyFlags, wire.NewString("not a number"))
	kv.AddString(wire.KeyName, "ColorHug2")

	// the bad entry is dropped, the rest of the mapping still applies
	d, err := device.FromWire(wire.NewDict(kv))
	a.NoError(err)
	a.Zero(d.Flags())
	a.Equal("ColorHug2", d.Name())
}

func TestFromWireRedundantGUIDs(t *testing.T) {
	a := assert.New(t)

	var kv wire.KV
	kv.AddString(wire.KeyGUID, "aaa,bbb,aaa,ccc,bbb")

	d, err := device.FromWire(wire.NewDict(kv))
	a.NoError(err)
	a.Equal([]string{"aaa", "bbb", "ccc"}, d.GUIDs())
}

func TestFlashesLeftOverflow(t *testing.T) {
	a := assert.New(t)

	d := device.New()

	// json decoding always produces uint64 payloads
	a.NoError(d.ApplyKeyValue(wire.KeyFlashesLeft, wire.NewUint64(3)))
	a.Equal(uint32(3), d.FlashesLeft())

	err := d.ApplyKeyValue(wire.KeyFlashesLeft, wire.NewUint64(1<<40))
	a.Error(err)
	a.Equal(wire.ErrValueTooBig, errors.Cause(err))
	a.Equal(uint32(3), d.FlashesLeft())
}

func TestJSONEnvelopeEndToEnd(t *testing.T) {
	a := assert.New(t)

	orig := testDevice()

	v, err := orig.ToVariant(wire.ShapeKeyed)
	a.NoError(err)

	payload, err := json.Marshal(v)
	a.NoError(err)

	var decoded wire.Variant
	a.NoError(json.Unmarshal(payload, &decoded))
	a.Equal(wire.ShapeKeyed, decoded.Shape)
	a.Equal("USB:foo", decoded.ID)

	d, err := device.FromWire(decoded)
	a.NoError(err)
	a.Equal(orig.ID(), d.ID())
	a.Equal(orig.GUIDs(), d.GUIDs())
	a.Equal(orig.Name(), d.Name())
	a.Equal(orig.Flags(), d.Flags())
	a.Equal(orig.FlashesLeft(), d.FlashesLeft())
}
