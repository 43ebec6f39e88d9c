package device

import (
	"net/http"

	"github.com/agubarev/firmtown/internal/core"
	"github.com/agubarev/firmtown/pkg/device"
	"github.com/agubarev/firmtown/pkg/wire"
	"github.com/go-chi/chi"
	"github.com/pkg/errors"
)

func Get(c *core.Core, w http.ResponseWriter, r *http.Request) (result interface{}, code int, err error) {
	d, err := c.DeviceManager().DeviceByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Cause(err) == device.ErrDeviceNotFound {
			return nil, http.StatusNotFound, err
		}

		return nil, http.StatusInternalServerError, err
	}

	v, err := d.ToVariant(wire.ShapeKeyed)
	if err != nil {
		return nil, http.StatusInternalServerError, err
	}

	return v, http.StatusOK, nil
}

func GetByGUID(c *core.Core, w http.ResponseWriter, r *http.Request) (result interface{}, code int, err error) {
	d, err := c.DeviceManager().DeviceByGUID(r.Context(), chi.URLParam(r, "guid"))
	if err != nil {
		if errors.Cause(err) == device.ErrDeviceNotFound {
			return nil, http.StatusNotFound, err
		}

		return nil, http.StatusInternalServerError, err
	}

	v, err := d.ToVariant(wire.ShapeKeyed)
	if err != nil {
		return nil, http.StatusInternalServerError, err
	}

	return v, http.StatusOK, nil
}
