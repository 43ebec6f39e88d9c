package device

import (
	"bytes"

	"github.com/asaskevich/govalidator"
	"github.com/cespare/xxhash"
	"github.com/pkg/errors"
)

// Device represents a single hardware device known to the service:
// its identity, versioning, capability flags and metadata
//
// optional string fields are pointers: only absence means "unset",
// an empty string is a legal set value; numeric fields use zero as
// the unset sentinel, so a genuine zero is indistinguishable from
// an unset value
type Device struct {
	id                *string
	created           uint64
	modified          uint64
	flags             uint64
	guids             []string
	name              *string
	summary           *string
	description       *string
	vendor            *string
	homepage          *string
	provider          *string
	version           *string
	versionLowest     *string
	versionBootloader *string
	checksums         []string
	flashesLeft       uint32
}

// New creates an empty device record
func New() *Device {
	return &Device{
		guids:     make([]string, 0),
		checksums: make([]string, 0),
	}
}

//---------------------------------------------------------------------------
// plain accessors; getters return the type's zero value when unset,
// setters replace unconditionally without validating content
//---------------------------------------------------------------------------

// ID returns the unique identifier, e.g. "USB:foo"
func (d *Device) ID() string { return strOrEmpty(d.id) }

// SetID sets the unique identifier
func (d *Device) SetID(id string) { d.id = &id }

// HasID reports whether the identifier has been set
func (d *Device) HasID() bool { return d.id != nil }

// Name returns the device name, e.g. "ColorHug2"
func (d *Device) Name() string { return strOrEmpty(d.name) }

// SetName sets the device name
func (d *Device) SetName(name string) { d.name = &name }

// Summary returns the one-line device summary
func (d *Device) Summary() string { return strOrEmpty(d.summary) }

// SetSummary sets the one-line device summary
func (d *Device) SetSummary(summary string) { d.summary = &summary }

// Description returns the device description
func (d *Device) Description() string { return strOrEmpty(d.description) }

// SetDescription sets the device description
func (d *Device) SetDescription(description string) { d.description = &description }

// Vendor returns the device vendor
func (d *Device) Vendor() string { return strOrEmpty(d.vendor) }

// SetVendor sets the device vendor
func (d *Device) SetVendor(vendor string) { d.vendor = &vendor }

// Homepage returns the vendor homepage URL
func (d *Device) Homepage() string { return strOrEmpty(d.homepage) }

// SetHomepage sets the vendor homepage URL
func (d *Device) SetHomepage(homepage string) { d.homepage = &homepage }

// Provider returns the name of the backend plugin providing this device
func (d *Device) Provider() string { return strOrEmpty(d.provider) }

// SetProvider sets the name of the backend plugin providing this device
func (d *Device) SetProvider(provider string) { d.provider = &provider }

// Version returns the current firmware version
func (d *Device) Version() string { return strOrEmpty(d.version) }

// SetVersion sets the current firmware version
func (d *Device) SetVersion(version string) { d.version = &version }

// VersionLowest returns the lowest firmware version the device accepts
func (d *Device) VersionLowest() string { return strOrEmpty(d.versionLowest) }

// SetVersionLowest sets the lowest firmware version the device accepts
func (d *Device) SetVersionLowest(version string) { d.versionLowest = &version }

// VersionBootloader returns the bootloader version
func (d *Device) VersionBootloader() string { return strOrEmpty(d.versionBootloader) }

// SetVersionBootloader sets the bootloader version
func (d *Device) SetVersionBootloader(version string) { d.versionBootloader = &version }

// Created returns the UNIX time the device was created, 0 if unset
func (d *Device) Created() uint64 { return d.created }

// SetCreated sets the UNIX time the device was created
func (d *Device) SetCreated(created uint64) { d.created = created }

// Modified returns the UNIX time the device was modified, 0 if unset
func (d *Device) Modified() uint64 { return d.modified }

// SetModified sets the UNIX time the device was modified
func (d *Device) SetModified(modified uint64) { d.modified = modified }

// FlashesLeft returns the number of flash cycles left, 0 if unknown
func (d *Device) FlashesLeft() uint32 { return d.flashesLeft }

// SetFlashesLeft sets the number of flash cycles left
func (d *Device) SetFlashesLeft(flashesLeft uint32) { d.flashesLeft = flashesLeft }

//---------------------------------------------------------------------------
// flags
//---------------------------------------------------------------------------

// Flags returns the raw capability bitmask, 0 if unset
func (d *Device) Flags() uint64 { return d.flags }

// SetFlags replaces the whole capability bitmask
func (d *Device) SetFlags(flags uint64) { d.flags = flags }

// AddFlag adds a specific flag to the device
func (d *Device) AddFlag(f Flag) { d.flags |= uint64(f) }

// RemoveFlag removes a specific flag from the device
func (d *Device) RemoveFlag(f Flag) { d.flags &^= uint64(f) }

// HasFlag finds out whether the device has a specific flag
func (d *Device) HasFlag(f Flag) bool { return d.flags&uint64(f) > 0 }

//---------------------------------------------------------------------------
// ordered list fields; insertion order is preserved and duplicates are
// rejected on insert, so deserialization re-adding through the same
// path keeps the lists unique
//---------------------------------------------------------------------------

// GUIDs returns the device GUIDs, which may be empty
func (d *Device) GUIDs() []string { return d.guids }

// HasGUID finds out whether the device has this specific GUID
func (d *Device) HasGUID(guid string) bool {
	for _, g := range d.guids {
		if g == guid {
			return true
		}
	}

	return false
}

// AddGUID adds the GUID unless it is already present
func (d *Device) AddGUID(guid string) {
	if d.HasGUID(guid) {
		return
	}

	d.guids = append(d.guids, guid)
}

// GUIDDefault returns the first-inserted GUID, considered primary
// by convention, or an empty string if there are none
func (d *Device) GUIDDefault() string {
	if len(d.guids) == 0 {
		return ""
	}

	return d.guids[0]
}

// Checksums returns the device checksums, which may be empty
func (d *Device) Checksums() []string { return d.checksums }

// HasChecksum finds out whether the device has this specific checksum
func (d *Device) HasChecksum(checksum string) bool {
	for _, c := range d.checksums {
		if c == checksum {
			return true
		}
	}

	return false
}

// AddChecksum adds the checksum unless it is already present
func (d *Device) AddChecksum(checksum string) {
	if d.HasChecksum(checksum) {
		return
	}

	d.checksums = append(d.checksums, checksum)
}

//---------------------------------------------------------------------------
// validation and integrity; the codec itself never validates content,
// this is for the registry layer to call before storing
//---------------------------------------------------------------------------

// Validate performs a self-check before the record is stored
func (d *Device) Validate() error {
	if d == nil {
		return ErrNilDevice
	}

	if !d.HasID() || d.ID() == "" {
		return ErrEmptyDeviceID
	}

	if d.homepage != nil && !govalidator.IsRequestURL(*d.homepage) {
		return errors.Wrap(ErrInvalidHomepage, *d.homepage)
	}

	for _, g := range d.guids {
		if !govalidator.IsUUID(g) {
			return errors.Wrap(ErrInvalidGUID, g)
		}
	}

	return nil
}

// Checksum computes a non-cryptographic integrity checksum over the
// identity and wire form of the record, in declaration order
func (d *Device) Checksum() uint64 {
	buf := new(bytes.Buffer)

	buf.WriteString(d.ID())

	for _, p := range d.ToWire() {
		buf.WriteString(p.Key)
		buf.WriteString(p.Value.String())
	}

	return xxhash.Sum64(buf.Bytes())
}

func strOrEmpty(s *string) string {
	if s == nil {
		return ""
	}

	return *s
}
