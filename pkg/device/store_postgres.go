package device

import (
	"context"

	"github.com/jackc/pgx"
	"github.com/pkg/errors"
)

// PostgreSQLStore is a device store backed by PostgreSQL
type PostgreSQLStore struct {
	db *pgx.Conn
}

// NewPostgreSQLStore returns a device store with postgres as a backend
func NewPostgreSQLStore(db *pgx.Conn) (Store, error) {
	if db == nil {
		return nil, ErrNilDatabase
	}

	return &PostgreSQLStore{db}, nil
}

const deviceColumns = `id, created_at, modified_at, flags, guids, name, summary, description,
	vendor, homepage, provider, version, version_lowest, version_bootloader,
	checksums, flashes_left, checksum`

func scanDevice(row interface {
	Scan(dest ...interface{}) error
}) (*Device, error) {
	var r deviceRow

	err := row.Scan(&r.ID, &r.Created, &r.Modified, &r.Flags, &r.GUIDs, &r.Name,
		&r.Summary, &r.Description, &r.Vendor, &r.Homepage, &r.Provider,
		&r.Version, &r.VersionLowest, &r.VersionBootloader, &r.Checksums,
		&r.FlashesLeft, &r.Checksum)
	if err != nil {
		return nil, err
	}

	return r.device(), nil
}

func (s *PostgreSQLStore) oneDevice(ctx context.Context, q string, args ...interface{}) (*Device, error) {
	d, err := scanDevice(s.db.QueryRowEx(ctx, q, nil, args...))

	switch err {
	case nil:
		return d, nil
	case pgx.ErrNoRows:
		return nil, ErrDeviceNotFound
	default:
		return nil, errors.Wrap(err, "failed to scan device")
	}
}

func (s *PostgreSQLStore) manyDevices(ctx context.Context, q string, args ...interface{}) (ds []*Device, err error) {
	ds = make([]*Device, 0)

	rows, err := s.db.QueryEx(ctx, q, nil, args...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to fetch devices")
	}
	defer rows.Close()

	for rows.Next() {
		d, err := scanDevice(rows)
		if err != nil {
			return ds, errors.Wrap(err, "failed to scan devices")
		}

		ds = append(ds, d)
	}

	return ds, nil
}

// UpsertDevice creates a new database record or updates an existing one
func (s *PostgreSQLStore) UpsertDevice(ctx context.Context, d *Device) (*Device, error) {
	if d == nil {
		return nil, ErrNilDevice
	}

	if !d.HasID() || d.ID() == "" {
		return nil, ErrEmptyDeviceID
	}

	q := `
	INSERT INTO device(` + deviceColumns + `)
	VALUES($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
	ON CONFLICT (id)
	DO UPDATE
		SET modified_at        = EXCLUDED.modified_at,
			flags              = EXCLUDED.flags,
			guids              = EXCLUDED.guids,
			name               = EXCLUDED.name,
			summary            = EXCLUDED.summary,
			description        = EXCLUDED.description,
			vendor             = EXCLUDED.vendor,
			homepage           = EXCLUDED.homepage,
			provider           = EXCLUDED.provider,
			version            = EXCLUDED.version,
			version_lowest     = EXCLUDED.version_lowest,
			version_bootloader = EXCLUDED.version_bootloader,
			checksums          = EXCLUDED.checksums,
			flashes_left       = EXCLUDED.flashes_left,
			checksum           = EXCLUDED.checksum`

	r := rowFromDevice(d)

	cmd, err := s.db.ExecEx(
		ctx,
		q,
		nil,
		r.ID, r.Created, r.Modified, r.Flags, r.GUIDs, r.Name, r.Summary,
		r.Description, r.Vendor, r.Homepage, r.Provider, r.Version,
		r.VersionLowest, r.VersionBootloader, r.Checksums, r.FlashesLeft,
		r.Checksum,
	)

	switch err {
	case nil:
		if cmd.RowsAffected() == 0 {
			return d, ErrNothingChanged
		}

		return d, nil
	default:
		if pgerr, ok := err.(pgx.PgError); ok && pgerr.Code == "23505" {
			return d, ErrDuplicateDevice
		}

		return d, errors.Wrap(err, "failed to upsert device")
	}
}

// FetchDeviceByID fetches a device by its unique identifier
func (s *PostgreSQLStore) FetchDeviceByID(ctx context.Context, id string) (*Device, error) {
	q := `SELECT ` + deviceColumns + ` FROM device WHERE id = $1 LIMIT 1`

	return s.oneDevice(ctx, q, id)
}

// FetchDeviceByGUID fetches the first device carrying a given GUID
// NOTE: guids are stored comma-joined, hence the substring match on
// exact list positions
func (s *PostgreSQLStore) FetchDeviceByGUID(ctx context.Context, guid string) (*Device, error) {
	q := `SELECT ` + deviceColumns + ` FROM device
	WHERE guids = $1
		OR guids LIKE $2
		OR guids LIKE $3
		OR guids LIKE $4
	LIMIT 1`

	return s.oneDevice(ctx, q, guid, guid+",%", "%,"+guid, "%,"+guid+",%")
}

// FetchAllDevices fetches every known device
func (s *PostgreSQLStore) FetchAllDevices(ctx context.Context) ([]*Device, error) {
	q := `SELECT ` + deviceColumns + ` FROM device ORDER BY id`

	return s.manyDevices(ctx, q)
}

// DeleteDeviceByID deletes a device by its unique identifier
func (s *PostgreSQLStore) DeleteDeviceByID(ctx context.Context, id string) error {
	_, err := s.db.ExecEx(ctx, `DELETE FROM device WHERE id = $1`, nil, id)
	if err != nil {
		return errors.Wrap(err, "failed to delete device")
	}

	return nil
}
