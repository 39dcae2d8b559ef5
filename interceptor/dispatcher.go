package interceptor

import (
	"fmt"
	"io/ioutil"
	"net/http"

	"github.com/apidouble/http-mock-interceptor/logging"

	mb "github.com/vardius/message-bus"
)

const dispatchTopic = "interceptor.dispatch"
const observerQueueSize = 100

// Dispatcher matches intercepted requests against a Registry and writes the registered
// canned response. Unmatched requests get a 404 whose body names the method and path, so
// a failing test can tell immediately which mock was missing.
//
// Like the Registry it wraps, a Dispatcher can only be built while the Gate reports test
// mode, which keeps the mock surface structurally unreachable in production.
type Dispatcher struct {
	registry *Registry
	bus      mb.MessageBus
	logger   logging.Logger
}

// NewDispatcher creates a Dispatcher for an existing Registry. The Registry's own
// construction already enforced the test-mode gate, so holding one is proof enough here.
func NewDispatcher(registry *Registry, logger logging.Logger) *Dispatcher {
	if logger == nil {
		logger = logging.NullLogger()
	}
	return &Dispatcher{
		registry: registry,
		bus:      mb.New(observerQueueSize),
		logger:   logger,
	}
}

// Registry returns the Registry this Dispatcher serves.
func (d *Dispatcher) Registry() *Registry {
	return d.registry
}

// Observe registers a callback that receives a DispatchEvent for every intercepted
// request. Callbacks run asynchronously on the observer bus; pass the same function
// value to StopObserving to remove it.
func (d *Dispatcher) Observe(fn func(DispatchEvent)) error {
	return d.bus.Subscribe(dispatchTopic, fn)
}

func (d *Dispatcher) StopObserving(fn func(DispatchEvent)) error {
	return d.bus.Unsubscribe(dispatchTopic, fn)
}

// ServeHTTP implements http.Handler. The request path is expected to already be relative
// to the mock root; the Interceptor strips its reserved prefix before delegating, and
// anything mounting a Dispatcher directly should use http.StripPrefix the same way.
func (d *Dispatcher) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	var body []byte
	if req.Body != nil {
		data, err := ioutil.ReadAll(req.Body)
		req.Body.Close()
		if err != nil {
			d.logger.Printf("Unexpected error trying to read request body: %s", err)
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		body = data
	}

	info := RequestInfo{
		Method:  req.Method,
		Path:    req.URL.Path,
		Headers: req.Header,
		Body:    body,
	}

	route, found := d.registry.Lookup(info.Method, info.Path)
	if !found {
		d.logger.Printf("No mock route registered for %s %s", info.Method, info.Path)
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprintf(w, "no mock route registered for %s %s\n", info.Method, info.Path)
		d.bus.Publish(dispatchTopic, DispatchEvent{Request: info, Matched: false, Status: http.StatusNotFound})
		return
	}

	resp := route.Respond(info)
	if resp.Status == 0 {
		resp.Status = http.StatusOK
	}
	for name, values := range resp.Header {
		for _, value := range values {
			w.Header().Add(name, value)
		}
	}
	d.logger.Printf("%s %s -> %d (%d bytes)", info.Method, info.Path, resp.Status, len(resp.Body))
	w.WriteHeader(resp.Status)
	if len(resp.Body) > 0 {
		_, _ = w.Write(resp.Body)
	}
	d.bus.Publish(dispatchTopic, DispatchEvent{Request: info, Matched: true, Status: resp.Status})
}
