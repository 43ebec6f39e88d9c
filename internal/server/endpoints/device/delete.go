package device

import (
	"net/http"

	"github.com/agubarev/firmtown/internal/core"
	"github.com/agubarev/firmtown/pkg/device"
	"github.com/go-chi/chi"
	"github.com/pkg/errors"
)

func Delete(c *core.Core, w http.ResponseWriter, r *http.Request) (result interface{}, code int, err error) {
	id := chi.URLParam(r, "id")

	if err := c.DeviceManager().UnregisterDevice(r.Context(), id); err != nil {
		if errors.Cause(err) == device.ErrDeviceNotFound {
			return nil, http.StatusNotFound, err
		}

		return nil, http.StatusInternalServerError, err
	}

	return id, http.StatusOK, nil
}
