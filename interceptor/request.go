package interceptor

import "net/http"

// RequestInfo contains information about an intercepted HTTP request. It is transient:
// one instance exists per dispatched call and nothing in this package retains it after
// observers have been notified.
type RequestInfo struct {
	Method  string
	Path    string
	Headers http.Header
	Body    []byte
}

// DispatchEvent describes the outcome of dispatching one intercepted request. It is the
// payload delivered to observers registered with Dispatcher.Observe.
type DispatchEvent struct {
	Request RequestInfo

	// Matched is true if a registered mock route handled the request.
	Matched bool

	// Status is the HTTP status code that was written.
	Status int
}
