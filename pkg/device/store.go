package device

import (
	"context"
	"database/sql"
	"sync"

	"github.com/agubarev/firmtown/pkg/wire"
)

// Store represents a device storage backend contract
type Store interface {
	UpsertDevice(ctx context.Context, d *Device) (*Device, error)
	FetchDeviceByID(ctx context.Context, id string) (*Device, error)
	FetchDeviceByGUID(ctx context.Context, guid string) (*Device, error)
	FetchAllDevices(ctx context.Context) ([]*Device, error)
	DeleteDeviceByID(ctx context.Context, id string) error
}

// deviceRow is the flat database shape of a record; list fields are
// persisted comma-joined, the same encoding the wire codec uses
type deviceRow struct {
	ID                string         `db:"id"`
	Created           uint64         `db:"created_at"`
	Modified          uint64         `db:"modified_at"`
	Flags             uint64         `db:"flags"`
	GUIDs             string         `db:"guids"`
	Name              sql.NullString `db:"name"`
	Summary           sql.NullString `db:"summary"`
	Description       sql.NullString `db:"description"`
	Vendor            sql.NullString `db:"vendor"`
	Homepage          sql.NullString `db:"homepage"`
	Provider          sql.NullString `db:"provider"`
	Version           sql.NullString `db:"version"`
	VersionLowest     sql.NullString `db:"version_lowest"`
	VersionBootloader sql.NullString `db:"version_bootloader"`
	Checksums         string         `db:"checksums"`
	FlashesLeft       uint32         `db:"flashes_left"`
	Checksum          uint64         `db:"checksum"`
}

func rowFromDevice(d *Device) deviceRow {
	nullable := func(s *string) sql.NullString {
		if s == nil {
			return sql.NullString{}
		}

		return sql.NullString{String: *s, Valid: true}
	}

	return deviceRow{
		ID:                d.ID(),
		Created:           d.Created(),
		Modified:          d.Modified(),
		Flags:             d.Flags(),
		GUIDs:             wire.JoinList(d.GUIDs()),
		Name:              nullable(d.name),
		Summary:           nullable(d.summary),
		Description:       nullable(d.description),
		Vendor:            nullable(d.vendor),
		Homepage:          nullable(d.homepage),
		Provider:          nullable(d.provider),
		Version:           nullable(d.version),
		VersionLowest:     nullable(d.versionLowest),
		VersionBootloader: nullable(d.versionBootloader),
		Checksums:         wire.JoinList(d.Checksums()),
		FlashesLeft:       d.FlashesLeft(),
		Checksum:          d.Checksum(),
	}
}

func (r deviceRow) device() *Device {
	d := New()
	d.SetID(r.ID)
	d.SetCreated(r.Created)
	d.SetModified(r.Modified)
	d.SetFlags(r.Flags)
	d.SetFlashesLeft(r.FlashesLeft)

	if r.GUIDs != "" {
		for _, guid := range wire.SplitList(r.GUIDs) {
			d.AddGUID(guid)
		}
	}

	if r.Checksums != "" {
		for _, c := range wire.SplitList(r.Checksums) {
			d.AddChecksum(c)
		}
	}

	assign := func(set func(string), v sql.NullString) {
		if v.Valid {
			set(v.String)
		}
	}

	assign(d.SetName, r.Name)
	assign(d.SetSummary, r.Summary)
	assign(d.SetDescription, r.Description)
	assign(d.SetVendor, r.Vendor)
	assign(d.SetHomepage, r.Homepage)
	assign(d.SetProvider, r.Provider)
	assign(d.SetVersion, r.Version)
	assign(d.SetVersionLowest, r.VersionLowest)
	assign(d.SetVersionBootloader, r.VersionBootloader)

	return d
}

// memoryStore keeps flat rows and rehydrates a fresh record on every
// fetch, so callers never share a pointer with the stored state
type memoryStore struct {
	devices map[string]deviceRow
	sync.RWMutex
}

// NewMemoryStore returns a transient in-memory device store,
// mainly useful for testing and single-run inspection
func NewMemoryStore() Store {
	return &memoryStore{
		devices: make(map[string]deviceRow),
	}
}

func (s *memoryStore) UpsertDevice(ctx context.Context, d *Device) (*Device, error) {
	if d == nil {
		return nil, ErrNilDevice
	}

	if d.ID() == "" {
		return nil, ErrEmptyDeviceID
	}

	s.Lock()
	s.devices[d.ID()] = rowFromDevice(d)
	s.Unlock()

	return d, nil
}

func (s *memoryStore) FetchDeviceByID(ctx context.Context, id string) (*Device, error) {
	s.RLock()
	r, ok := s.devices[id]
	s.RUnlock()

	if ok {
		return r.device(), nil
	}

	return nil, ErrDeviceNotFound
}

func (s *memoryStore) FetchDeviceByGUID(ctx context.Context, guid string) (*Device, error) {
	s.RLock()
	defer s.RUnlock()

	for _, r := range s.devices {
		for _, g := range wire.SplitList(r.GUIDs) {
			if g == guid {
				return r.device(), nil
			}
		}
	}

	return nil, ErrDeviceNotFound
}

func (s *memoryStore) FetchAllDevices(ctx context.Context) ([]*Device, error) {
	s.RLock()
	defer s.RUnlock()

	ds := make([]*Device, 0, len(s.devices))
	for id := range s.devices {
		ds = append(ds, s.devices[id].device())
	}

	return ds, nil
}

func (s *memoryStore) DeleteDeviceByID(ctx context.Context, id string) error {
	s.Lock()
	delete(s.devices, id)
	s.Unlock()

	return nil
}
