package device

import (
	"io/ioutil"
	"net/http"

	"github.com/agubarev/firmtown/internal/core"
	"github.com/agubarev/firmtown/pkg/device"
	"github.com/agubarev/firmtown/pkg/wire"
	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Post registers a device from its wire rendition; any of the
// supported envelope shapes is accepted
func Post(c *core.Core, w http.ResponseWriter, r *http.Request) (result interface{}, code int, err error) {
	body, err := ioutil.ReadAll(r.Body)
	if err != nil {
		return nil, http.StatusBadRequest, errors.Wrap(err, "failed to read request body")
	}

	var v wire.Variant
	if err := json.Unmarshal(body, &v); err != nil {
		return nil, http.StatusBadRequest, errors.Wrap(err, "failed to unmarshal device payload")
	}

	d, err := device.FromWire(v)
	if err != nil {
		return nil, http.StatusBadRequest, err
	}

	d, err = c.DeviceManager().RegisterDevice(r.Context(), d)
	if err != nil {
		if errors.Cause(err) == device.ErrDuplicateDevice {
			return nil, http.StatusConflict, err
		}

		return nil, http.StatusUnprocessableEntity, err
	}

	out, err := d.ToVariant(wire.ShapeKeyed)
	if err != nil {
		return nil, http.StatusInternalServerError, err
	}

	return out, http.StatusCreated, nil
}
