package device

import (
	"context"
	"time"

	"github.com/agubarev/firmtown/pkg/wire"
	"github.com/allegro/bigcache"
	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/r3labs/diff"
	"go.uber.org/zap"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Manager is the registry of known devices; it owns a storage
// backend and a read cache of wire-encoded records
type Manager struct {
	store  Store
	cache  *bigcache.BigCache
	logger *zap.Logger
}

// NewManager initializes a device manager over a given store
func NewManager(s Store) (*Manager, error) {
	if s == nil {
		return nil, ErrNilStore
	}

	cache, err := bigcache.NewBigCache(bigcache.DefaultConfig(10 * time.Minute))
	if err != nil {
		return nil, errors.Wrap(err, "failed to initialize device cache")
	}

	return &Manager{
		store: s,
		cache: cache,
	}, nil
}

// Store returns the storage backend
func (m *Manager) Store() (Store, error) {
	if m.store == nil {
		return nil, ErrNilStore
	}

	return m.store, nil
}

// SetLogger assigns a primary logger for the manager
func (m *Manager) SetLogger(logger *zap.Logger) error {
	if logger != nil {
		logger = logger.Named("[device]")
	}

	m.logger = logger

	return nil
}

// Logger returns the primary logger if is set, otherwise initializing
// and returning a new default logger
// NOTE: will panic if it finally fails to obtain a logger
func (m *Manager) Logger() *zap.Logger {
	if m.logger == nil {
		l, err := zap.NewDevelopment()
		if err != nil {
			panic(errors.Wrap(err, "failed to initialize device manager logger"))
		}

		m.logger = l
	}

	return m.logger
}

// RegisterDevice validates and stores a new device record,
// stamping creation and modification times if unset
func (m *Manager) RegisterDevice(ctx context.Context, d *Device) (*Device, error) {
	l := m.Logger()

	if d == nil {
		return nil, ErrNilDevice
	}

	if err := d.Validate(); err != nil {
		return nil, err
	}

	now := uint64(time.Now().Unix())
	if d.Created() == 0 {
		d.SetCreated(now)
	}
	if d.Modified() == 0 {
		d.SetModified(now)
	}

	store, err := m.Store()
	if err != nil {
		return nil, err
	}

	d, err = store.UpsertDevice(ctx, d)
	if err != nil {
		return nil, err
	}

	l.Info("registered device",
		zap.String("id", d.ID()),
		zap.String("name", d.Name()),
		zap.Uint64("checksum", d.Checksum()),
	)

	return d, m.recache(d)
}

// UpdateDevice fetches a device, applies a mutator function and
// stores the result if anything actually changed
func (m *Manager) UpdateDevice(ctx context.Context, id string, fn func(ctx context.Context, d *Device) error) (*Device, error) {
	l := m.Logger()

	store, err := m.Store()
	if err != nil {
		return nil, err
	}

	d, err := store.FetchDeviceByID(ctx, id)
	if err != nil {
		return nil, err
	}

	before := d.ToWire()

	if err = fn(ctx, d); err != nil {
		return nil, errors.Wrap(err, "device mutator failed")
	}

	if err = d.Validate(); err != nil {
		return nil, err
	}

	// comparing wire forms to find out whether anything has changed
	changelog, err := diff.Diff(before, d.ToWire())
	if err != nil {
		return nil, errors.Wrap(err, "failed to calculate changelog")
	}

	if len(changelog) == 0 {
		return d, ErrNothingChanged
	}

	d.SetModified(uint64(time.Now().Unix()))

	d, err = store.UpsertDevice(ctx, d)
	if err != nil {
		return nil, err
	}

	l.Info("updated device",
		zap.String("id", d.ID()),
		zap.Int("changes", len(changelog)),
	)

	return d, m.recache(d)
}

// DeviceByID returns a device by its unique identifier,
// trying the cache before hitting the store
func (m *Manager) DeviceByID(ctx context.Context, id string) (*Device, error) {
	if entry, err := m.cache.Get(id); err == nil {
		var v wire.Variant
		if err := json.Unmarshal(entry, &v); err == nil {
			return FromWire(v)
		}

		// the cached payload is unusable, dropping it
		_ = m.cache.Delete(id)
	}

	store, err := m.Store()
	if err != nil {
		return nil, err
	}

	d, err := store.FetchDeviceByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return d, m.recache(d)
}

// DeviceByGUID returns the device carrying a given GUID
func (m *Manager) DeviceByGUID(ctx context.Context, guid string) (*Device, error) {
	store, err := m.Store()
	if err != nil {
		return nil, err
	}

	return store.FetchDeviceByGUID(ctx, guid)
}

// Devices returns every known device
func (m *Manager) Devices(ctx context.Context) ([]*Device, error) {
	store, err := m.Store()
	if err != nil {
		return nil, err
	}

	return store.FetchAllDevices(ctx)
}

// UnregisterDevice deletes a device from the registry
func (m *Manager) UnregisterDevice(ctx context.Context, id string) error {
	l := m.Logger()

	store, err := m.Store()
	if err != nil {
		return err
	}

	if err = store.DeleteDeviceByID(ctx, id); err != nil {
		return err
	}

	if err := m.cache.Delete(id); err != nil && err != bigcache.ErrEntryNotFound {
		l.Warn("failed to drop cached device", zap.String("id", id), zap.Error(err))
	}

	l.Info("unregistered device", zap.String("id", id))

	return nil
}

// recache stores the id-keyed wire form of a record in the read cache
func (m *Manager) recache(d *Device) error {
	v, err := d.ToVariant(wire.ShapeKeyed)
	if err != nil {
		return err
	}

	entry, err := json.Marshal(v)
	if err != nil {
		return errors.Wrap(err, "failed to marshal device for caching")
	}

	return errors.Wrapf(m.cache.Set(d.ID(), entry), "failed to cache device %s", d.ID())
}
