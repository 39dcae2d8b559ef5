// Package interceptor implements a test double for external HTTP APIs, for use in
// end-to-end test runs.
//
// The general model is:
//
// 1. The test runner starts the application under test with a designated environment
// indicator that enables test mode. The indicator value is passed explicitly into a Gate;
// unless the Gate reports test mode, none of the mock machinery can even be constructed.
//
// 2. A Registry holds mock routes, each identified by an exact (method, path) pair and
// carrying a canned Responder. Routes are registered during test setup and cleared
// between test cases.
//
// 3. A Dispatcher matches intercepted requests against the Registry and writes the
// registered response, or a diagnostic 404 when nothing matches. An Interceptor hosts the
// Dispatcher on a real HTTP listener under a reserved path prefix, so that pointing the
// application's external API base URL at the Interceptor redirects all of its outbound
// calls to the mocks.
//
// 4. Every dispatch is published to observers, so test code can wait for a specific mock
// to be hit (see Recorder) or report activity to the console.
package interceptor
