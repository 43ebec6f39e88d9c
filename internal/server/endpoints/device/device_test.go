package device_test

import (
	"bytes"
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/agubarev/firmtown/internal/core"
	"github.com/agubarev/firmtown/internal/server/endpoints"
	epdevice "github.com/agubarev/firmtown/internal/server/endpoints/device"
	"github.com/agubarev/firmtown/pkg/wire"
	"github.com/go-chi/chi"
	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func testServer(t *testing.T) *httptest.Server {
	c, err := core.NewCoreForTesting()
	if err != nil {
		t.Fatal(err)
	}

	r := chi.NewRouter()
	r.Route("/api/v1/device", func(r chi.Router) {
		r.Method(http.MethodGet, "/", endpoints.NewEndpoint("list_devices", c, epdevice.List))
		r.Method(http.MethodPost, "/", endpoints.NewEndpoint("post_device", c, epdevice.Post))
		r.Method(http.MethodGet, "/{id}", endpoints.NewEndpoint("get_device", c, epdevice.Get))
		r.Method(http.MethodDelete, "/{id}", endpoints.NewEndpoint("delete_device", c, epdevice.Delete))
		r.Method(http.MethodGet, "/{id}/dump", endpoints.NewEndpoint("dump_device", c, epdevice.Dump))
		r.Method(http.MethodGet, "/guid/{guid}", endpoints.NewEndpoint("get_device_by_guid", c, epdevice.GetByGUID))
	})

	return httptest.NewServer(r)
}

func decodeResult(t *testing.T, body []byte) wire.Variant {
	var response struct {
		Result wire.Variant `json:"result"`
		Error  string       `json:"error"`
	}

	if err := json.Unmarshal(body, &response); err != nil {
		t.Fatalf("failed to decode response: %s", err)
	}

	return response.Result
}

func TestDeviceEndpoints(t *testing.T) {
	a := assert.New(t)

	ts := testServer(t)
	defer ts.Close()

	payload := `{"USB-foo":{"Guid":"2082b5e0-7a64-478a-b1b2-e3404fab6dad","Name":"ColorHug2","Version":"2.0.3","Flags":6}}`

	//---------------------------------------------------------------------------
	// registering a device from an id-keyed envelope
	//---------------------------------------------------------------------------
	res, err := http.Post(ts.URL+"/api/v1/device", "application/json", bytes.NewBufferString(payload))
	a.NoError(err)

	body, err := ioutil.ReadAll(res.Body)
	a.NoError(res.Body.Close())
	a.NoError(err)
	a.Equal(http.StatusCreated, res.StatusCode)

	v := decodeResult(t, body)
	a.Equal(wire.ShapeKeyed, v.Shape)
	a.Equal("USB-foo", v.ID)

	//---------------------------------------------------------------------------
	// fetching it back by id and by guid
	//---------------------------------------------------------------------------
	res, err = http.Get(ts.URL + "/api/v1/device/USB-foo")
	a.NoError(err)

	body, err = ioutil.ReadAll(res.Body)
	a.NoError(res.Body.Close())
	a.NoError(err)
	a.Equal(http.StatusOK, res.StatusCode)

	v = decodeResult(t, body)
	a.Equal("USB-foo", v.ID)

	name, ok := v.Pairs.Get(wire.KeyName)
	a.True(ok)
	a.Equal("ColorHug2", name.Str)

	res, err = http.Get(ts.URL + "/api/v1/device/guid/2082b5e0-7a64-478a-b1b2-e3404fab6dad")
	a.NoError(err)

	body, err = ioutil.ReadAll(res.Body)
	a.NoError(res.Body.Close())
	a.NoError(err)
	a.Equal(http.StatusOK, res.StatusCode)
	a.Equal("USB-foo", decodeResult(t, body).ID)

	//---------------------------------------------------------------------------
	// the plain text report
	//---------------------------------------------------------------------------
	res, err = http.Get(ts.URL + "/api/v1/device/USB-foo/dump")
	a.NoError(err)

	body, err = ioutil.ReadAll(res.Body)
	a.NoError(res.Body.Close())
	a.NoError(err)
	a.Equal(http.StatusOK, res.StatusCode)
	a.Contains(res.Header.Get("Content-Type"), "text/plain")
	a.Contains(string(body), "2.0.3")
	a.Contains(string(body), "updatable|only-offline")
	a.Contains(string(body), "2082b5e0-7a64-478a-b1b2-e3404fab6dad")

	//---------------------------------------------------------------------------
	// unregistering
	//---------------------------------------------------------------------------
	req, err := http.NewRequest(http.MethodDelete, ts.URL+"/api/v1/device/USB-foo", nil)
	a.NoError(err)

	res, err = http.DefaultClient.Do(req)
	a.NoError(err)
	a.NoError(res.Body.Close())
	a.Equal(http.StatusOK, res.StatusCode)

	res, err = http.Get(ts.URL + "/api/v1/device/USB-foo")
	a.NoError(err)
	a.NoError(res.Body.Close())
	a.Equal(http.StatusNotFound, res.StatusCode)
}

func TestDeviceEndpointPostBadPayload(t *testing.T) {
	a := assert.New(t)

	ts := testServer(t)
	defer ts.Close()

	// an unrecognized envelope shape is a hard error
	res, err := http.Post(ts.URL+"/api/v1/device", "application/json", bytes.NewBufferString(`"garbage"`))
	a.NoError(err)
	a.NoError(res.Body.Close())
	a.Equal(http.StatusBadRequest, res.StatusCode)

	// a record without an identifier cannot be registered
	res, err = http.Post(ts.URL+"/api/v1/device", "application/json", bytes.NewBufferString(`{"Name":"ColorHug2"}`))
	a.NoError(err)
	a.NoError(res.Body.Close())
	a.Equal(http.StatusUnprocessableEntity, res.StatusCode)
}
