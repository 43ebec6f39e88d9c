package wire_test

import (
	"testing"

	"github.com/agubarev/firmtown/pkg/wire"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestValueString(t *testing.T) {
	a := assert.New(t)

	v := wire.NewString("ColorHug2")
	a.Equal(wire.KindString, v.Kind)

	s, err := v.StringVal()
	a.NoError(err)
	a.Equal("ColorHug2", s)

	// wrong accessor must fail with a type mismatch
	_, err = v.Uint64Val()
	a.Error(err)
	a.Equal(wire.ErrTypeMismatch, errors.Cause(err))

	_, err = v.Uint32Val()
	a.Error(err)
	a.Equal(wire.ErrTypeMismatch, errors.Cause(err))
}

func TestValueUint64(t *testing.T) {
	a := assert.New(t)

	v := wire.NewUint64(1234567890)

	n, err := v.Uint64Val()
	a.NoError(err)
	a.Equal(uint64(1234567890), n)

	_, err = v.StringVal()
	a.Error(err)
	a.Equal(wire.ErrTypeMismatch, errors.Cause(err))
}

func TestValueUint32Promotion(t *testing.T) {
	a := assert.New(t)

	// a uint32 payload promotes into uint64 without loss
	n64, err := wire.NewUint32(42).Uint64Val()
	a.NoError(err)
	a.Equal(uint64(42), n64)

	// a uint64 payload narrows into uint32 as long as it fits
	n32, err := wire.NewUint64(42).Uint32Val()
	a.NoError(err)
	a.Equal(uint32(42), n32)

	// anything beyond 32 bits must be rejected
	_, err = wire.NewUint64(1 << 33).Uint32Val()
	a.Error(err)
	a.Equal(wire.ErrValueTooBig, errors.Cause(err))
}

func TestValueStringer(t *testing.T) {
	a := assert.New(t)

	a.Equal("2.0.3", wire.NewString("2.0.3").String())
	a.Equal("1500000000", wire.NewUint64(1500000000).String())
	a.Equal("3", wire.NewUint32(3).String())
	a.Equal("", wire.Value{}.String())
}

func TestKV(t *testing.T) {
	a := assert.New(t)

	var kv wire.KV
	kv.AddString("Name", "ColorHug2")
	kv.AddUint64("Created", 1500000000)
	kv.AddUint32("FlashesLeft", 3)

	a.Len(kv, 3)
	a.Equal([]string{"Name", "Created", "FlashesLeft"}, kv.Keys())

	v, ok := kv.Get("Name")
	a.True(ok)
	a.Equal(wire.NewString("ColorHug2"), v)

	_, ok = kv.Get("Vendor")
	a.False(ok)
}
