package device

import (
	"bytes"
	"context"
	"encoding/gob"

	"github.com/dgraph-io/badger"
	"github.com/pkg/errors"
)

// BadgerStore is an embedded device store, useful when the service
// runs standalone without an external database
type BadgerStore struct {
	db *badger.DB
}

// NewBadgerStore returns a device store with badger as a backend
func NewBadgerStore(db *badger.DB) (Store, error) {
	if db == nil {
		return nil, ErrNilDatabase
	}

	return &BadgerStore{db}, nil
}

func deviceKey(id string) []byte {
	return []byte("device:" + id)
}

func guidKey(guid string) []byte {
	return []byte("guid:" + guid)
}

// UpsertDevice stores a device, keeping a guid index pointing
// back at the primary key
func (s *BadgerStore) UpsertDevice(ctx context.Context, d *Device) (*Device, error) {
	if d == nil {
		return nil, ErrNilDevice
	}

	if !d.HasID() || d.ID() == "" {
		return nil, ErrEmptyDeviceID
	}

	return d, s.db.Update(func(tx *badger.Txn) error {
		// serializing the flat row shape using gob
		var data bytes.Buffer
		if err := gob.NewEncoder(&data).Encode(rowFromDevice(d)); err != nil {
			return errors.Wrap(err, "failed to encode device")
		}

		// storing primary value
		key := deviceKey(d.ID())
		if err := tx.Set(key, data.Bytes()); err != nil {
			return errors.Wrapf(err, "failed to store device %s", key)
		}

		// storing guid indices with the primary key as value
		for _, guid := range d.GUIDs() {
			if err := tx.Set(guidKey(guid), key); err != nil {
				return errors.Wrapf(err, "failed to store guid index %s", guid)
			}
		}

		return nil
	})
}

func (s *BadgerStore) fetch(tx *badger.Txn, key []byte) (*Device, error) {
	item, err := tx.Get(key)
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, ErrDeviceNotFound
		}

		return nil, err
	}

	var d *Device

	err = item.Value(func(val []byte) error {
		var r deviceRow
		if err := gob.NewDecoder(bytes.NewReader(val)).Decode(&r); err != nil {
			return errors.Wrap(err, "failed to decode device")
		}

		d = r.device()

		return nil
	})

	return d, err
}

// FetchDeviceByID fetches a device by its unique identifier
func (s *BadgerStore) FetchDeviceByID(ctx context.Context, id string) (d *Device, err error) {
	err = s.db.View(func(tx *badger.Txn) error {
		d, err = s.fetch(tx, deviceKey(id))
		return err
	})

	return d, err
}

// FetchDeviceByGUID fetches a device through the guid index
func (s *BadgerStore) FetchDeviceByGUID(ctx context.Context, guid string) (d *Device, err error) {
	err = s.db.View(func(tx *badger.Txn) error {
		item, err := tx.Get(guidKey(guid))
		if err != nil {
			if err == badger.ErrKeyNotFound {
				return ErrDeviceNotFound
			}

			return err
		}

		key, err := item.ValueCopy(nil)
		if err != nil {
			return err
		}

		d, err = s.fetch(tx, key)

		return err
	})

	return d, err
}

// FetchAllDevices fetches every known device in key order
func (s *BadgerStore) FetchAllDevices(ctx context.Context) (ds []*Device, err error) {
	ds = make([]*Device, 0)

	err = s.db.View(func(tx *badger.Txn) error {
		it := tx.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefix := []byte("device:")
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			err := it.Item().Value(func(val []byte) error {
				var r deviceRow
				if err := gob.NewDecoder(bytes.NewReader(val)).Decode(&r); err != nil {
					return errors.Wrap(err, "failed to decode device")
				}

				ds = append(ds, r.device())

				return nil
			})

			if err != nil {
				return err
			}
		}

		return nil
	})

	return ds, err
}

// DeleteDeviceByID deletes a device and its guid indices
func (s *BadgerStore) DeleteDeviceByID(ctx context.Context, id string) error {
	return s.db.Update(func(tx *badger.Txn) error {
		d, err := s.fetch(tx, deviceKey(id))
		if err != nil {
			if err == ErrDeviceNotFound {
				return nil
			}

			return err
		}

		for _, guid := range d.GUIDs() {
			if err := tx.Delete(guidKey(guid)); err != nil {
				return errors.Wrapf(err, "failed to delete guid index %s", guid)
			}
		}

		return tx.Delete(deviceKey(id))
	})
}
