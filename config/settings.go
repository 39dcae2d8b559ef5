// Package config holds the two configuration seams of the interceptor: the environment
// settings that the application under test reads once at startup, and YAML fixture files
// that declare mock routes.
package config

import (
	"fmt"
	"strings"

	"github.com/asaskevich/govalidator"
)

const (
	// EnvironmentVar is the designated variable whose value decides whether test mode is
	// active. Nothing else in the process environment is ever consulted for that
	// decision.
	EnvironmentVar = "APP_ENV"

	// ExternalAPIBaseVar overrides the base URL the application uses for its outbound
	// external API calls. Setting it to a running Interceptor's BaseURL redirects every
	// such call to the mock routes.
	ExternalAPIBaseVar = "EXTERNAL_API_BASE"
)

// Settings are the values read once at application startup. The application builds all
// of its outbound external API URLs from ExternalAPIBase and never re-reads the
// environment afterwards.
type Settings struct {
	Environment     string
	ExternalAPIBase string
}

// Load reads the designated variables through the given lookup function, typically
// os.Getenv. Taking the lookup as a parameter keeps the package free of ambient state
// and lets tests supply values without mutating the process environment.
func Load(lookup func(string) string) (Settings, error) {
	s := Settings{
		Environment:     lookup(EnvironmentVar),
		ExternalAPIBase: lookup(ExternalAPIBaseVar),
	}
	if s.ExternalAPIBase == "" {
		return Settings{}, fmt.Errorf("%s is not set", ExternalAPIBaseVar)
	}
	if !govalidator.IsURL(s.ExternalAPIBase) {
		return Settings{}, fmt.Errorf("%s is not a valid URL: %q", ExternalAPIBaseVar, s.ExternalAPIBase)
	}
	return s, nil
}

// ExternalURL joins a request path onto the external API base URL.
func (s Settings) ExternalURL(path string) string {
	base := strings.TrimSuffix(s.ExternalAPIBase, "/")
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return base + path
}
