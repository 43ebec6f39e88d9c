package endpoints

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/agubarev/firmtown/internal/core"
	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type Endpoint struct {
	core    *core.Core
	name    string
	handler Handler
}

// Handler represents a custom endpoint handler
type Handler func(c *core.Core, w http.ResponseWriter, r *http.Request) (result interface{}, code int, err error)

type Response struct {
	RequestID     uuid.UUID     `json:"request_id"`
	Result        interface{}   `json:"result,omitempty"`
	Error         string        `json:"error,omitempty"`
	ExecutionTime time.Duration `json:"exec_time"`
}

func NewEndpoint(name string, c *core.Core, h Handler) (e Endpoint) {
	if c == nil {
		panic(core.ErrNilCore)
	}

	// basic validation
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		panic(errors.New("empty endpoint name"))
	}

	if h == nil {
		panic(errors.Errorf("endpoint has no handler: %s", name))
	}

	e = Endpoint{
		core:    c,
		name:    name,
		handler: h,
	}

	return e
}

func (e Endpoint) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	// executing handler
	result, code, err := e.handler(e.core, w, r)

	// a zero code means the handler has already written the response
	if code == 0 {
		return
	}

	// initializing response
	response := Response{
		RequestID:     uuid.New(),
		Result:        result,
		ExecutionTime: time.Since(start),
	}

	if err != nil {
		response.Error = err.Error()
	}

	// marshaling handler's result
	payload, err := json.Marshal(response)
	if err != nil {
		http.Error(
			w,
			errors.Wrap(err, "failed to marshal server response").Error(),
			http.StatusInternalServerError,
		)

		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Length", strconv.Itoa(len(payload)))
	w.WriteHeader(code)
	w.Write(payload)
}
