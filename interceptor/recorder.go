package interceptor

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

const recorderChannelSize = 100

// Recorder watches a Dispatcher for requests to one specific (method, path) and lets
// test code wait for them. A typical test registers a mock route, runs the application
// code that should call it, then uses AwaitRequest to assert that the call was made.
type Recorder struct {
	dispatcher *Dispatcher
	method     string
	path       string
	requests   chan RequestInfo
	observer   func(DispatchEvent)
	closing    sync.Once
}

// NewRecorder attaches a Recorder to the Dispatcher for the given (method, path). The
// match rule is the Registry's: exact path, case-insensitive method.
func NewRecorder(dispatcher *Dispatcher, method, path string) (*Recorder, error) {
	r := &Recorder{
		dispatcher: dispatcher,
		method:     strings.ToUpper(method),
		path:       path,
		requests:   make(chan RequestInfo, recorderChannelSize),
	}
	r.observer = func(ev DispatchEvent) {
		if strings.ToUpper(ev.Request.Method) != r.method || ev.Request.Path != r.path {
			return
		}
		select { // non-blocking push
		case r.requests <- ev.Request:
		default:
		}
	}
	if err := dispatcher.Observe(r.observer); err != nil {
		return nil, err
	}
	return r, nil
}

// AwaitRequest waits for the next intercepted request matching the Recorder's method and
// path, or fails after the timeout.
func (r *Recorder) AwaitRequest(timeout time.Duration) (RequestInfo, error) {
	deadline := time.NewTimer(timeout)
	defer deadline.Stop()
	select {
	case info := <-r.requests:
		return info, nil
	case <-deadline.C:
		return RequestInfo{}, fmt.Errorf("timed out waiting for a request to %s %s", r.method, r.path)
	}
}

// Close detaches the Recorder from the Dispatcher.
func (r *Recorder) Close() {
	r.closing.Do(func() {
		_ = r.dispatcher.StopObserving(r.observer)
	})
}
