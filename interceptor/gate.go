package interceptor

import "errors"

// TestEnvironment is the environment indicator value that enables the mock surface.
const TestEnvironment = "testing"

// ErrNotTestMode is returned by constructors in this package when the Gate does not
// report test mode. Mock routes must be structurally unreachable in production, so the
// registry and dispatcher are simply never built outside of test mode.
var ErrNotTestMode = errors.New("mock routes are only available in test mode")

// Gate decides whether the mock surface may exist at all. The environment indicator is
// passed in explicitly by whoever read the designated variable; the Gate itself never
// consults ambient process state.
type Gate struct {
	environment string
}

func NewGate(environment string) Gate {
	return Gate{environment: environment}
}

// TestModeActive reports whether the injected environment indicator designates test mode.
func (g Gate) TestModeActive() bool {
	return g.environment == TestEnvironment
}
