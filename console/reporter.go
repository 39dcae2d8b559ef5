// Package console renders interceptor activity for humans running the standalone tool.
package console

import (
	"fmt"
	"io"
	"sync"

	"github.com/apidouble/http-mock-interceptor/interceptor"

	"github.com/fatih/color"
)

// Reporter prints a startup banner and one line per dispatched request. It is safe for
// concurrent use; dispatch observers run on the observer bus goroutines.
type Reporter struct {
	out      io.Writer
	observer func(interceptor.DispatchEvent)
	lock     sync.Mutex
}

func NewReporter(out io.Writer) *Reporter {
	return &Reporter{out: out}
}

// PrintStartup describes the running interceptor and its registered routes.
func (r *Reporter) PrintStartup(baseURL string, routes []interceptor.Route) {
	r.lock.Lock()
	defer r.lock.Unlock()
	fmt.Fprintf(r.out, "Mock interceptor listening at %s\n", color.CyanString(baseURL))
	if len(routes) == 0 {
		fmt.Fprintln(r.out, "No mock routes registered yet")
		return
	}
	fmt.Fprintln(r.out, "Registered mock routes:")
	for _, route := range routes {
		fmt.Fprintf(r.out, "  %s\n", route)
	}
}

// Attach subscribes the Reporter to a Dispatcher's activity.
func (r *Reporter) Attach(d *interceptor.Dispatcher) error {
	r.observer = func(ev interceptor.DispatchEvent) {
		r.lock.Lock()
		defer r.lock.Unlock()
		if ev.Matched {
			fmt.Fprintf(r.out, "%s %d %s %s\n",
				color.GreenString("MATCH"), ev.Status, ev.Request.Method, ev.Request.Path)
		} else {
			fmt.Fprintf(r.out, "%s  %d %s %s\n",
				color.YellowString("MISS"), ev.Status, ev.Request.Method, ev.Request.Path)
		}
	}
	return d.Observe(r.observer)
}

// Detach removes the Reporter's subscription.
func (r *Reporter) Detach(d *interceptor.Dispatcher) error {
	if r.observer == nil {
		return nil
	}
	return d.StopObserving(r.observer)
}
