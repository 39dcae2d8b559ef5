package console

import (
	"bytes"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/apidouble/http-mock-interceptor/interceptor"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	color.NoColor = true // keep assertions independent of terminal detection
}

func newDispatcher(t *testing.T) *interceptor.Dispatcher {
	registry, err := interceptor.NewRegistry(interceptor.NewGate(interceptor.TestEnvironment))
	require.NoError(t, err)
	return interceptor.NewDispatcher(registry, nil)
}

func awaitOutput(t *testing.T, buf *bytes.Buffer, reporter *Reporter, substring string) {
	deadline := time.Now().Add(time.Second * 2)
	for time.Now().Before(deadline) {
		if strings.Contains(reporterOutput(reporter, buf), substring) {
			return
		}
		time.Sleep(time.Millisecond * 10)
	}
	t.Fatalf("timed out waiting for output containing %q; output was:\n%s", substring, reporterOutput(reporter, buf))
}

func reporterOutput(r *Reporter, buf *bytes.Buffer) string {
	r.lock.Lock()
	defer r.lock.Unlock()
	return buf.String()
}

func TestReporterPrintsStartupBanner(t *testing.T) {
	var buf bytes.Buffer
	reporter := NewReporter(&buf)

	reporter.PrintStartup("http://localhost:8122/__test_mocks__", []interceptor.Route{
		{Method: "GET", Path: "/api/v2/things"},
	})

	out := buf.String()
	assert.Contains(t, out, "http://localhost:8122/__test_mocks__")
	assert.Contains(t, out, "GET /api/v2/things")
}

func TestReporterPrintsDispatchActivity(t *testing.T) {
	d := newDispatcher(t)
	require.NoError(t, d.Registry().Register("GET", "/api/v2/things",
		interceptor.StaticResponse(200, nil, []byte("ok"))))

	var buf bytes.Buffer
	reporter := NewReporter(&buf)
	require.NoError(t, reporter.Attach(d))
	defer reporter.Detach(d)

	rec := httptest.NewRecorder()
	d.ServeHTTP(rec, httptest.NewRequest("GET", "http://interceptor/api/v2/things", nil))
	awaitOutput(t, &buf, reporter, "MATCH 200 GET /api/v2/things")

	rec = httptest.NewRecorder()
	d.ServeHTTP(rec, httptest.NewRequest("GET", "http://interceptor/unknown/path", nil))
	awaitOutput(t, &buf, reporter, "404 GET /unknown/path")
	assert.Contains(t, reporterOutput(reporter, &buf), "MISS")
}
