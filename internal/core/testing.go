package core

import (
	"github.com/agubarev/firmtown/pkg/device"
	"github.com/agubarev/firmtown/pkg/util"
)

// NewDeviceManagerForTesting returns a device manager backed
// by an in-memory store, for testing
func NewDeviceManagerForTesting() (*device.Manager, error) {
	dm, err := device.NewManager(device.NewMemoryStore())
	if err != nil {
		return nil, err
	}

	logger, err := util.DefaultLogger(false, "")
	if err != nil {
		return nil, err
	}

	if err := dm.SetLogger(logger); err != nil {
		return nil, err
	}

	return dm, nil
}

// NewCoreForTesting returns a fully initialized core for testing
func NewCoreForTesting() (*Core, error) {
	dm, err := NewDeviceManagerForTesting()
	if err != nil {
		return nil, err
	}

	return New(dm)
}
