package device_test

import (
	"context"
	"testing"

	"github.com/agubarev/firmtown/pkg/device"
	"github.com/stretchr/testify/assert"
)

func TestMemoryStoreIsolation(t *testing.T) {
	a := assert.New(t)
	ctx := context.Background()

	s := device.NewMemoryStore()

	d := registeredDevice()
	_, err := s.UpsertDevice(ctx, d)
	a.NoError(err)

	// mutating the caller's record after the write must not leak into the store
	d.SetVersion("9.9.9")

	fetched, err := s.FetchDeviceByID(ctx, "USB:foo")
	a.NoError(err)
	a.Equal("2.0.3", fetched.Version())

	// mutating a fetched record must not leak back either
	fetched.SetVendor("Acme")
	fetched.AddGUID("ffffffff-ffff-ffff-ffff-ffffffffffff")

	again, err := s.FetchDeviceByID(ctx, "USB:foo")
	a.NoError(err)
	a.Equal("Hughski", again.Vendor())
	a.Len(again.GUIDs(), 1)

	byGUID, err := s.FetchDeviceByGUID(ctx, "2082b5e0-7a64-478a-b1b2-e3404fab6dad")
	a.NoError(err)
	byGUID.SetName("renamed")

	all, err := s.FetchAllDevices(ctx)
	a.NoError(err)
	a.Len(all, 1)
	a.Equal("ColorHug2", all[0].Name())
}
