package device

import (
	"net/http"

	"github.com/agubarev/firmtown/internal/core"
	"github.com/agubarev/firmtown/pkg/wire"
)

func List(c *core.Core, w http.ResponseWriter, r *http.Request) (result interface{}, code int, err error) {
	ds, err := c.DeviceManager().Devices(r.Context())
	if err != nil {
		return nil, http.StatusInternalServerError, err
	}

	vs := make([]wire.Variant, 0, len(ds))
	for _, d := range ds {
		v, err := d.ToVariant(wire.ShapeKeyed)
		if err != nil {
			return nil, http.StatusInternalServerError, err
		}

		vs = append(vs, v)
	}

	return vs, http.StatusOK, nil
}
