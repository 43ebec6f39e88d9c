package core

import (
	"context"
	"fmt"

	"github.com/agubarev/firmtown/pkg/device"
	"go.uber.org/zap"
)

// Core represents an aggregate of the registry's top-level functionality
type Core struct {
	devices *device.Manager
	logger  *zap.Logger
}

// New initializes a new core around a device manager
func New(dm *device.Manager) (*Core, error) {
	if dm == nil {
		return nil, device.ErrNilManager
	}

	c := &Core{
		devices: dm,
	}

	return c, nil
}

// Init initializes the core
func (c *Core) Init(ctx context.Context) error {
	if err := c.Validate(); err != nil {
		return err
	}

	l := c.Logger().Named("[firmtown]")
	l.Info("initializing the core")

	//---------------------------------------------------------------------------
	// warming the device cache
	//---------------------------------------------------------------------------
	l.Info("fetching registered devices from the store")
	ds, err := c.devices.Devices(ctx)
	if err != nil {
		return err
	}

	l.Info("device registry is ready", zap.Int("devices_found", len(ds)))

	return nil
}

// DeviceManager returns the device manager object
func (c *Core) DeviceManager() *device.Manager {
	if c.devices == nil {
		panic(device.ErrNilManager)
	}

	return c.devices
}

// Validate validates the current core
func (c *Core) Validate() error {
	if c.devices == nil {
		return device.ErrNilManager
	}

	return nil
}

// SetLogger setting a primary logger for the core
func (c *Core) SetLogger(logger *zap.Logger) error {
	// if logger is set, then giving it a name
	// to know the log context
	if logger != nil {
		logger = logger.Named("[firmtown]")
	}

	c.logger = logger

	return nil
}

// Logger returns primary logger if is set, otherwise initializing and returning
// a new default emergency logger
// NOTE: will panic if it finally fails to obtain a logger
func (c *Core) Logger() *zap.Logger {
	if c.logger == nil {
		l, err := zap.NewDevelopment()
		if err != nil {
			// having a working logger is crucial, thus must panic() if initialization fails
			panic(fmt.Errorf("failed to initialize core logger: %s", err))
		}

		c.logger = l
	}

	return c.logger
}
