package interceptor

import (
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/apidouble/http-mock-interceptor/logging"

	"github.com/google/uuid"
)

// MockPathPrefix is the reserved path prefix under which all mock routes are exposed.
// Keeping the mocks under a prefix that no real application route would use means the
// interceptor can never shadow a genuine endpoint, even if it were pointed at the
// application itself by mistake.
const MockPathPrefix = "/__test_mocks__"

const httpListenerTimeout = time.Second * 10

// Options configures an Interceptor.
type Options struct {
	// Gate decides whether the Interceptor may be constructed at all.
	Gate Gate

	// ExternalHostname is the hostname that the application under test will use to reach
	// the Interceptor. Defaults to "localhost".
	ExternalHostname string

	// Port is the port to listen on. Zero picks an unused port.
	Port int

	// Description appears in the status document, to help humans tell interceptor
	// instances apart when several test workers run at once.
	Description string

	// Logger receives debug output. Defaults to a no-op logger.
	Logger logging.Logger
}

// Interceptor hosts a Dispatcher on a real HTTP listener. Point the application's
// external API base URL at BaseURL() and every outbound call the application makes to
// "the external service" lands on the registered mock routes instead.
type Interceptor struct {
	id          string
	description string
	hostname    string
	port        int
	registry    *Registry
	dispatcher  *Dispatcher
	server      *http.Server
	logger      logging.Logger
}

type statusDocument struct {
	Description string   `json:"description"`
	InstanceID  string   `json:"instanceId"`
	Routes      []string `json:"routes"`
}

// New creates an Interceptor with an empty route Registry, or returns ErrNotTestMode if
// the Gate does not report test mode. The listener is not started until Start is called.
func New(opts Options) (*Interceptor, error) {
	if !opts.Gate.TestModeActive() {
		return nil, ErrNotTestMode
	}
	registry, err := NewRegistry(opts.Gate)
	if err != nil {
		return nil, err
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.NullLogger()
	}
	hostname := opts.ExternalHostname
	if hostname == "" {
		hostname = "localhost"
	}
	description := opts.Description
	if description == "" {
		description = "test double HTTP interceptor"
	}
	return &Interceptor{
		id:          uuid.New().String(),
		description: description,
		hostname:    hostname,
		port:        opts.Port,
		registry:    registry,
		dispatcher:  NewDispatcher(registry, logger),
		logger:      logger,
	}, nil
}

func (i *Interceptor) Registry() *Registry {
	return i.registry
}

func (i *Interceptor) Dispatcher() *Dispatcher {
	return i.dispatcher
}

// ID returns the unique identifier of this interceptor instance.
func (i *Interceptor) ID() string {
	return i.id
}

// BaseURL returns the URL that the application under test should use as its external API
// base. It is only meaningful after Start has returned successfully.
func (i *Interceptor) BaseURL() string {
	return fmt.Sprintf("http://%s:%d%s", i.hostname, i.port, MockPathPrefix)
}

// Start binds the listener and blocks until the Interceptor is verifiably accepting
// requests, so that tests can begin issuing calls as soon as it returns.
func (i *Interceptor) Start() error {
	listener, err := net.Listen("tcp", fmt.Sprintf(":%d", i.port))
	if err != nil {
		return err
	}
	i.port = listener.Addr().(*net.TCPAddr).Port

	i.server = &http.Server{Handler: http.HandlerFunc(i.serveHTTP)}
	go func() {
		if err := i.server.Serve(listener); err != nil && err != http.ErrServerClosed {
			panic(err)
		}
	}()

	// Wait till the listener is definitely serving requests before handing it to tests
	deadline := time.NewTimer(httpListenerTimeout)
	defer deadline.Stop()
	ticker := time.NewTicker(time.Millisecond * 10)
	defer ticker.Stop()
	for {
		select {
		case <-deadline.C:
			return fmt.Errorf("could not detect own listener at port %d", i.port)
		case <-ticker.C:
			resp, err := http.DefaultClient.Head(fmt.Sprintf("http://localhost:%d", i.port))
			if err == nil && resp.StatusCode == 200 {
				return nil
			}
		}
	}
}

// Close shuts the listener down.
func (i *Interceptor) Close() error {
	if i.server == nil {
		return nil
	}
	return i.server.Close()
}

func (i *Interceptor) serveHTTP(w http.ResponseWriter, req *http.Request) {
	if req.Method == "HEAD" {
		w.WriteHeader(200) // we use this to test whether our own listener is active yet
		return
	}

	if !strings.HasPrefix(req.URL.Path, MockPathPrefix) {
		i.logger.Printf("Received request for unrecognized URL path %s", req.URL.Path)
		w.WriteHeader(404)
		return
	}
	path := strings.TrimPrefix(req.URL.Path, MockPathPrefix)

	if path == "" || path == "/" {
		i.serveStatus(w)
		return
	}

	transformedReq := req.Clone(req.Context())
	url := *req.URL
	url.Path = path
	transformedReq.URL = &url

	i.dispatcher.ServeHTTP(w, transformedReq)
}

func (i *Interceptor) serveStatus(w http.ResponseWriter) {
	doc := statusDocument{
		Description: i.description,
		InstanceID:  i.id,
		Routes:      []string{},
	}
	for _, route := range i.registry.Routes() {
		doc.Routes = append(doc.Routes, route.String())
	}
	data, _ := json.Marshal(doc)
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(data)
}
