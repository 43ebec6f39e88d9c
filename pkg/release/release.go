package release

import (
	"strings"

	"github.com/agubarev/firmtown/pkg/checksum"
	"github.com/agubarev/firmtown/pkg/wire"
	"github.com/pkg/errors"
)

// errors
var (
	ErrNilRelease = errors.New("release is nil")
)

// Release is the metadata of a single firmware update offered for a
// device; it is a sibling record kind of device.Device and follows
// the same wire codec contract, sharing the result-key vocabulary
type Release struct {
	appstreamID *string
	remoteID    *string
	name        *string
	summary     *string
	description *string
	version     *string
	filename    *string
	uri         *string
	homepage    *string
	license     *string
	vendor      *string
	size        uint64
	checksums   []string
}

// New creates an empty release record
func New() *Release {
	return &Release{
		checksums: make([]string, 0),
	}
}

func (r *Release) AppstreamID() string        { return strOrEmpty(r.appstreamID) }
func (r *Release) SetAppstreamID(s string)    { r.appstreamID = &s }
func (r *Release) RemoteID() string           { return strOrEmpty(r.remoteID) }
func (r *Release) SetRemoteID(s string)       { r.remoteID = &s }
func (r *Release) Name() string               { return strOrEmpty(r.name) }
func (r *Release) SetName(s string)           { r.name = &s }
func (r *Release) Summary() string            { return strOrEmpty(r.summary) }
func (r *Release) SetSummary(s string)        { r.summary = &s }
func (r *Release) Description() string        { return strOrEmpty(r.description) }
func (r *Release) SetDescription(s string)    { r.description = &s }
func (r *Release) Version() string            { return strOrEmpty(r.version) }
func (r *Release) SetVersion(s string)        { r.version = &s }
func (r *Release) Filename() string           { return strOrEmpty(r.filename) }
func (r *Release) SetFilename(s string)       { r.filename = &s }
func (r *Release) URI() string                { return strOrEmpty(r.uri) }
func (r *Release) SetURI(s string)            { r.uri = &s }
func (r *Release) Homepage() string           { return strOrEmpty(r.homepage) }
func (r *Release) SetHomepage(s string)       { r.homepage = &s }
func (r *Release) License() string            { return strOrEmpty(r.license) }
func (r *Release) SetLicense(s string)        { r.license = &s }
func (r *Release) Vendor() string             { return strOrEmpty(r.vendor) }
func (r *Release) SetVendor(s string)         { r.vendor = &s }
func (r *Release) Size() uint64               { return r.size }
func (r *Release) SetSize(size uint64)        { r.size = size }
func (r *Release) Checksums() []string        { return r.checksums }

// HasChecksum finds out if the release carries this specific checksum
func (r *Release) HasChecksum(c string) bool {
	for _, tmp := range r.checksums {
		if tmp == c {
			return true
		}
	}

	return false
}

// AddChecksum adds the checksum unless it is already present
func (r *Release) AddChecksum(c string) {
	if r.HasChecksum(c) {
		return
	}

	r.checksums = append(r.checksums, c)
}

// ToWire serializes the record into an ordered key-value sequence,
// with the same omission rules the device codec follows
func (r *Release) ToWire() (kv wire.KV) {
	if r.appstreamID != nil {
		kv.AddString(wire.KeyAppstreamID, *r.appstreamID)
	}

	if r.name != nil {
		kv.AddString(wire.KeyName, *r.name)
	}

	if r.summary != nil {
		kv.AddString(wire.KeySummary, *r.summary)
	}

	if r.description != nil {
		kv.AddString(wire.KeyDescription, *r.description)
	}

	if r.version != nil {
		kv.AddString(wire.KeyVersion, *r.version)
	}

	if r.filename != nil {
		kv.AddString(wire.KeyFilename, *r.filename)
	}

	if len(r.checksums) > 0 {
		kv.AddString(wire.KeyChecksum, wire.JoinList(r.checksums))
	}

	if r.license != nil {
		kv.AddString(wire.KeyLicense, *r.license)
	}

	if r.size > 0 {
		kv.AddUint64(wire.KeySize, r.size)
	}

	if r.uri != nil {
		kv.AddString(wire.KeyURI, *r.uri)
	}

	if r.homepage != nil {
		kv.AddString(wire.KeyHomepage, *r.homepage)
	}

	if r.vendor != nil {
		kv.AddString(wire.KeyVendor, *r.vendor)
	}

	if r.remoteID != nil {
		kv.AddString(wire.KeyRemoteID, *r.remoteID)
	}

	return kv
}

// ApplyKeyValue dispatches a single wire entry onto the record;
// unrecognized keys are ignored, mismatched payloads fail softly
func (r *Release) ApplyKeyValue(key string, v wire.Value) error {
	switch key {
	case wire.KeySize:
		n, err := v.Uint64Val()
		if err != nil {
			return errors.Wrap(err, key)
		}

		r.SetSize(n)
	case wire.KeyChecksum:
		s, err := v.StringVal()
		if err != nil {
			return errors.Wrap(err, key)
		}

		for _, c := range wire.SplitList(s) {
			r.AddChecksum(c)
		}
	case wire.KeyAppstreamID, wire.KeyRemoteID, wire.KeyName, wire.KeySummary,
		wire.KeyDescription, wire.KeyVersion, wire.KeyFilename, wire.KeyURI,
		wire.KeyHomepage, wire.KeyLicense, wire.KeyVendor:
		s, err := v.StringVal()
		if err != nil {
			return errors.Wrap(err, key)
		}

		switch key {
		case wire.KeyAppstreamID:
			r.SetAppstreamID(s)
		case wire.KeyRemoteID:
			r.SetRemoteID(s)
		case wire.KeyName:
			r.SetName(s)
		case wire.KeySummary:
			r.SetSummary(s)
		case wire.KeyDescription:
			r.SetDescription(s)
		case wire.KeyVersion:
			r.SetVersion(s)
		case wire.KeyFilename:
			r.SetFilename(s)
		case wire.KeyURI:
			r.SetURI(s)
		case wire.KeyHomepage:
			r.SetHomepage(s)
		case wire.KeyLicense:
			r.SetLicense(s)
		case wire.KeyVendor:
			r.SetVendor(s)
		}
	}

	return nil
}

// FromWire reconstructs a release from a wire envelope; releases
// never travel id-keyed, so only the bare and tupled shapes apply
func FromWire(v wire.Variant) (*Release, error) {
	switch v.Shape {
	case wire.ShapeDict, wire.ShapeTuple:
	default:
		return nil, errors.Wrapf(wire.ErrUnknownShape, "shape %d", v.Shape)
	}

	r := New()
	for _, p := range v.Pairs {
		_ = r.ApplyKeyValue(p.Key, p.Value)
	}

	return r, nil
}

// String builds a padded, human-readable report of every set field
func (r *Release) String() string {
	b := &strings.Builder{}

	pad := func(key string, value *string) {
		if value == nil {
			return
		}

		b.WriteString("  ")
		b.WriteString(key)
		b.WriteString(": ")

		for i := len(key); i < 20; i++ {
			b.WriteString(" ")
		}

		b.WriteString(*value)
		b.WriteString("\n")
	}

	pad(wire.KeyAppstreamID, r.appstreamID)
	pad(wire.KeyName, r.name)
	pad(wire.KeySummary, r.summary)
	pad(wire.KeyDescription, r.description)
	pad(wire.KeyVersion, r.version)
	pad(wire.KeyFilename, r.filename)

	for _, c := range r.checksums {
		display := checksum.FormatForDisplay(c)
		pad(wire.KeyChecksum, &display)
	}

	pad(wire.KeyLicense, r.license)

	if r.size > 0 {
		size := wire.NewUint64(r.size).String()
		pad(wire.KeySize, &size)
	}

	pad(wire.KeyURI, r.uri)
	pad(wire.KeyHomepage, r.homepage)
	pad(wire.KeyVendor, r.vendor)
	pad(wire.KeyRemoteID, r.remoteID)

	return b.String()
}

func strOrEmpty(s *string) string {
	if s == nil {
		return ""
	}

	return *s
}
