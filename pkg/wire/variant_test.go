package wire_test

import (
	"testing"

	"github.com/agubarev/firmtown/pkg/wire"
	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func testPairs() wire.KV {
	var kv wire.KV
	kv.AddString("Name", "ColorHug2")
	kv.AddUint64("Created", 1500000000)

	return kv
}

func TestVariantMarshalDict(t *testing.T) {
	a := assert.New(t)

	payload, err := json.Marshal(wire.NewDict(testPairs()))
	a.NoError(err)
	a.Equal(`{"Name":"ColorHug2","Created":1500000000}`, string(payload))
}

func TestVariantMarshalTuple(t *testing.T) {
	a := assert.New(t)

	payload, err := json.Marshal(wire.NewTuple(testPairs()))
	a.NoError(err)
	a.Equal(`[{"Name":"ColorHug2","Created":1500000000}]`, string(payload))
}

func TestVariantMarshalKeyed(t *testing.T) {
	a := assert.New(t)

	payload, err := json.Marshal(wire.NewKeyed("dev-1", testPairs()))
	a.NoError(err)
	a.Equal(`{"dev-1":{"Name":"ColorHug2","Created":1500000000}}`, string(payload))
}

func TestVariantUnmarshalDict(t *testing.T) {
	a := assert.New(t)

	var v wire.Variant
	a.NoError(json.Unmarshal([]byte(`{"Name":"ColorHug2","Created":1500000000}`), &v))
	a.Equal(wire.ShapeDict, v.Shape)
	a.Empty(v.ID)
	a.Len(v.Pairs, 2)

	name, ok := v.Pairs.Get("Name")
	a.True(ok)
	a.Equal(wire.NewString("ColorHug2"), name)

	created, ok := v.Pairs.Get("Created")
	a.True(ok)

	n, err := created.Uint64Val()
	a.NoError(err)
	a.Equal(uint64(1500000000), n)
}

func TestVariantUnmarshalTuple(t *testing.T) {
	a := assert.New(t)

	var v wire.Variant
	a.NoError(json.Unmarshal([]byte(`[{"Name":"ColorHug2"}]`), &v))
	a.Equal(wire.ShapeTuple, v.Shape)
	a.Len(v.Pairs, 1)
}

func TestVariantUnmarshalKeyed(t *testing.T) {
	a := assert.New(t)

	var v wire.Variant
	a.NoError(json.Unmarshal([]byte(`{"dev-1":{"Name":"ColorHug2"}}`), &v))
	a.Equal(wire.ShapeKeyed, v.Shape)
	a.Equal("dev-1", v.ID)

	name, ok := v.Pairs.Get("Name")
	a.True(ok)
	a.Equal("ColorHug2", name.Str)
}

func TestVariantUnmarshalMalformedTuple(t *testing.T) {
	a := assert.New(t)

	// an empty tuple carries no mapping
	var v wire.Variant
	err := json.Unmarshal([]byte(`[]`), &v)
	a.Error(err)
	a.Equal(wire.ErrMalformedTuple, errors.Cause(err))

	// a tuple must wrap exactly one mapping
	err = json.Unmarshal([]byte(`[{"Name":"a"},{"Name":"b"}]`), &v)
	a.Error(err)
	a.Equal(wire.ErrMalformedTuple, errors.Cause(err))
}

func TestVariantUnmarshalUnknownShape(t *testing.T) {
	a := assert.New(t)

	var v wire.Variant
	err := json.Unmarshal([]byte(`"not an envelope"`), &v)
	a.Error(err)
}

func TestVariantUnmarshalSkipsNonScalars(t *testing.T) {
	a := assert.New(t)

	// nested structures cannot belong to a result mapping and are dropped
	var v wire.Variant
	a.NoError(json.Unmarshal([]byte(`{"Name":"ColorHug2","Junk":[1,2,3],"Created":1500000000}`), &v))
	a.Equal(wire.ShapeDict, v.Shape)
	a.Len(v.Pairs, 2)

	_, ok := v.Pairs.Get("Junk")
	a.False(ok)
}

func TestListJoinSplit(t *testing.T) {
	a := assert.New(t)

	guids := []string{"2082b5e0-7a64-478a-b1b2-e3404fab6dad", "00000000-0000-0000-0000-000000000000"}
	joined := wire.JoinList(guids)
	a.Equal("2082b5e0-7a64-478a-b1b2-e3404fab6dad,00000000-0000-0000-0000-000000000000", joined)
	a.Equal(guids, wire.SplitList(joined))

	a.Equal("", wire.JoinList(nil))
	a.Nil(wire.SplitList(""))
}
