package device

import (
	"net/http"
	"strconv"

	"github.com/agubarev/firmtown/internal/core"
	"github.com/agubarev/firmtown/pkg/device"
	"github.com/go-chi/chi"
	"github.com/pkg/errors"
)

// Dump renders a device as a plain text report, the way the
// command line client prints it
func Dump(c *core.Core, w http.ResponseWriter, r *http.Request) (result interface{}, code int, err error) {
	d, err := c.DeviceManager().DeviceByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Cause(err) == device.ErrDeviceNotFound {
			return nil, http.StatusNotFound, err
		}

		return nil, http.StatusInternalServerError, err
	}

	payload := []byte(d.String())

	// responding directly with plain text, bypassing the json envelope
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Length", strconv.Itoa(len(payload)))
	w.WriteHeader(http.StatusOK)
	w.Write(payload)

	return nil, 0, nil
}
