package device

import (
	"context"

	"github.com/go-sql-driver/mysql"
	"github.com/gocraft/dbr/v2"
)

// MySQLStore is a device store backed by MySQL via dbr
type MySQLStore struct {
	db *dbr.Connection
}

// NewMySQLStore returns a device store with mysql used as a backend
func NewMySQLStore(db *dbr.Connection) (Store, error) {
	if db == nil {
		return nil, ErrNilDatabase
	}

	return &MySQLStore{db}, nil
}

//? BEGIN ->>>----------------------------------------------------------------
//? unexported utility functions

func (s *MySQLStore) get(ctx context.Context, q string, args ...interface{}) (*Device, error) {
	var r deviceRow

	err := s.db.NewSession(nil).
		SelectBySql(q, args...).
		LoadOneContext(ctx, &r)

	if err != nil {
		if err == dbr.ErrNotFound {
			return nil, ErrDeviceNotFound
		}

		return nil, err
	}

	return r.device(), nil
}

func (s *MySQLStore) getMany(ctx context.Context, q string, args ...interface{}) ([]*Device, error) {
	var rs []deviceRow

	if _, err := s.db.NewSession(nil).SelectBySql(q, args...).LoadContext(ctx, &rs); err != nil {
		return nil, err
	}

	ds := make([]*Device, 0, len(rs))
	for i := range rs {
		ds = append(ds, rs[i].device())
	}

	return ds, nil
}

//? unexported utility functions
//? END ---<<<----------------------------------------------------------------

// UpsertDevice stores a device, replacing a previous record with the same id
func (s *MySQLStore) UpsertDevice(ctx context.Context, d *Device) (*Device, error) {
	if d == nil {
		return nil, ErrNilDevice
	}

	if !d.HasID() || d.ID() == "" {
		return nil, ErrEmptyDeviceID
	}

	r := rowFromDevice(d)

	_, err := s.db.NewSession(nil).
		InsertInto("device").
		Columns("id", "created_at", "modified_at", "flags", "guids", "name",
			"summary", "description", "vendor", "homepage", "provider",
			"version", "version_lowest", "version_bootloader", "checksums",
			"flashes_left", "checksum").
		Record(&r).
		ExecContext(ctx)

	// replacing the existing record on a duplicate id
	if err != nil {
		if myerr, ok := err.(*mysql.MySQLError); ok && myerr.Number == 1062 {
			return s.update(ctx, r)
		}

		return d, err
	}

	return d, nil
}

func (s *MySQLStore) update(ctx context.Context, r deviceRow) (*Device, error) {
	updates := map[string]interface{}{
		"modified_at":        r.Modified,
		"flags":              r.Flags,
		"guids":              r.GUIDs,
		"name":               r.Name,
		"summary":            r.Summary,
		"description":        r.Description,
		"vendor":             r.Vendor,
		"homepage":           r.Homepage,
		"provider":           r.Provider,
		"version":            r.Version,
		"version_lowest":     r.VersionLowest,
		"version_bootloader": r.VersionBootloader,
		"checksums":          r.Checksums,
		"flashes_left":       r.FlashesLeft,
		"checksum":           r.Checksum,
	}

	_, err := s.db.NewSession(nil).
		Update("device").
		SetMap(updates).
		Where("id = ?", r.ID).
		ExecContext(ctx)

	if err != nil {
		return nil, err
	}

	return r.device(), nil
}

// FetchDeviceByID fetches a device by its unique identifier
func (s *MySQLStore) FetchDeviceByID(ctx context.Context, id string) (*Device, error) {
	return s.get(ctx, "SELECT * FROM `device` WHERE id = ? LIMIT 1", id)
}

// FetchDeviceByGUID fetches the first device carrying a given GUID
func (s *MySQLStore) FetchDeviceByGUID(ctx context.Context, guid string) (*Device, error) {
	return s.get(
		ctx,
		"SELECT * FROM `device` WHERE guids = ? OR guids LIKE ? OR guids LIKE ? OR guids LIKE ? LIMIT 1",
		guid, guid+",%", "%,"+guid, "%,"+guid+",%",
	)
}

// FetchAllDevices fetches every known device
func (s *MySQLStore) FetchAllDevices(ctx context.Context) ([]*Device, error) {
	return s.getMany(ctx, "SELECT * FROM `device` ORDER BY id")
}

// DeleteDeviceByID deletes a device by its unique identifier
func (s *MySQLStore) DeleteDeviceByID(ctx context.Context, id string) error {
	_, err := s.db.NewSession(nil).
		DeleteFrom("device").
		Where("id = ?", id).
		ExecContext(ctx)

	return err
}
