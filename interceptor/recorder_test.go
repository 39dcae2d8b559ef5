package interceptor

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const recorderTestTimeout = time.Second * 2

func TestRecorderSeesMatchingRequest(t *testing.T) {
	registry := testModeRegistry(t)
	d := NewDispatcher(registry, nil)
	require.NoError(t, registry.Register("GET", "/api/v2/things", markerResponder("things")))

	recorder, err := NewRecorder(d, "get", "/api/v2/things")
	require.NoError(t, err)
	defer recorder.Close()

	dispatchRequest(d, "GET", "/api/v2/things", "")

	info, err := recorder.AwaitRequest(recorderTestTimeout)
	require.NoError(t, err)
	assert.Equal(t, "GET", info.Method)
	assert.Equal(t, "/api/v2/things", info.Path)
}

func TestRecorderSeesUnmatchedRequestToItsPath(t *testing.T) {
	// A recorder can watch a path with no registered route, which is useful for
	// asserting that the application probed an endpoint the test chose not to mock.
	registry := testModeRegistry(t)
	d := NewDispatcher(registry, nil)

	recorder, err := NewRecorder(d, "GET", "/api/v2/missing")
	require.NoError(t, err)
	defer recorder.Close()

	dispatchRequest(d, "GET", "/api/v2/missing", "")

	info, err := recorder.AwaitRequest(recorderTestTimeout)
	require.NoError(t, err)
	assert.Equal(t, "/api/v2/missing", info.Path)
}

func TestRecorderIgnoresOtherRoutes(t *testing.T) {
	registry := testModeRegistry(t)
	d := NewDispatcher(registry, nil)
	require.NoError(t, registry.Register("GET", "/api/v2/other", markerResponder("other")))

	recorder, err := NewRecorder(d, "GET", "/api/v2/things")
	require.NoError(t, err)
	defer recorder.Close()

	dispatchRequest(d, "GET", "/api/v2/other", "")

	_, err = recorder.AwaitRequest(time.Millisecond * 200)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "/api/v2/things")
}

func TestRecorderTimesOutWhenNothingArrives(t *testing.T) {
	registry := testModeRegistry(t)
	d := NewDispatcher(registry, nil)

	recorder, err := NewRecorder(d, "GET", "/api/v2/quiet")
	require.NoError(t, err)
	defer recorder.Close()

	_, err = recorder.AwaitRequest(time.Millisecond * 100)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "timed out")
}
