package server

import (
	"context"
	"net/http"

	"github.com/agubarev/firmtown/internal/core"
	"github.com/agubarev/firmtown/internal/server/endpoints"
	epdevice "github.com/agubarev/firmtown/internal/server/endpoints/device"
	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
)

// Run starts the registry HTTP server and blocks until it fails
func Run(ctx context.Context, c *core.Core, addr string) (err error) {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	//---------------------------------------------------------------------------
	// API ROUTING (V1)
	//---------------------------------------------------------------------------
	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/device", func(r chi.Router) {
			r.Method(http.MethodGet, "/", endpoints.NewEndpoint("list_devices", c, epdevice.List))
			r.Method(http.MethodPost, "/", endpoints.NewEndpoint("post_device", c, epdevice.Post))
			r.Method(http.MethodGet, "/{id}", endpoints.NewEndpoint("get_device", c, epdevice.Get))
			r.Method(http.MethodDelete, "/{id}", endpoints.NewEndpoint("delete_device", c, epdevice.Delete))
			r.Method(http.MethodGet, "/{id}/dump", endpoints.NewEndpoint("dump_device", c, epdevice.Dump))
			r.Method(http.MethodGet, "/guid/{guid}", endpoints.NewEndpoint("get_device_by_guid", c, epdevice.GetByGUID))
		})
	})

	c.Logger().Info("starting http server")

	return http.ListenAndServe(addr, r)
}
