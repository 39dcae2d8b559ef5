package config

import (
	"fmt"
	"io/ioutil"
	"net/http"
	"strings"

	"github.com/apidouble/http-mock-interceptor/interceptor"

	"github.com/asaskevich/govalidator"
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
	"gopkg.in/yaml.v3"
)

// RouteFixture is one mock route declaration as it appears in a fixture file.
type RouteFixture struct {
	Method  string            `yaml:"method"`
	Path    string            `yaml:"path"`
	Status  int               `yaml:"status"`
	Headers map[string]string `yaml:"headers"`
	Body    string            `yaml:"body"`
}

// FixtureFile is the top-level structure of a YAML route fixture file:
//
//	routes:
//	  - method: GET
//	    path: /api/v2/external-endpoint
//	    status: 200
//	    headers:
//	      Content-Type: application/json
//	    body: '{"data": ["We did it!"]}'
type FixtureFile struct {
	Routes []RouteFixture `yaml:"routes"`
}

// ParseFixtures parses fixture file content without building routes, so that callers can
// inspect or report on the declarations.
func ParseFixtures(data []byte) (FixtureFile, error) {
	var file FixtureFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return FixtureFile{}, fmt.Errorf("malformed route fixture file: %w", err)
	}
	return file, nil
}

// BuildRoutes validates fixture declarations and turns them into registrable routes.
// Bodies declared with a JSON content type must actually be JSON, and are normalized so
// that the served bytes are canonical regardless of fixture formatting.
func BuildRoutes(file FixtureFile) ([]interceptor.Route, error) {
	routes := make([]interceptor.Route, 0, len(file.Routes))
	for n, fixture := range file.Routes {
		if fixture.Method == "" {
			return nil, fmt.Errorf("route fixture #%d has no method", n+1)
		}
		if !strings.HasPrefix(fixture.Path, "/") {
			return nil, fmt.Errorf("route fixture #%d has invalid path %q (must start with /)", n+1, fixture.Path)
		}
		status := fixture.Status
		if status == 0 {
			status = http.StatusOK
		}
		header := make(http.Header)
		for name, value := range fixture.Headers {
			header.Set(name, value)
		}
		body := fixture.Body
		if strings.Contains(strings.ToLower(header.Get("Content-Type")), "json") {
			if !govalidator.IsJSON(body) {
				return nil, fmt.Errorf("route fixture for %s %s declares a JSON content type but its body is not valid JSON",
					fixture.Method, fixture.Path)
			}
			body = ldvalue.Parse([]byte(body)).JSONString()
		}
		routes = append(routes, interceptor.Route{
			Method:  fixture.Method,
			Path:    fixture.Path,
			Respond: interceptor.StaticResponse(status, header, []byte(body)),
		})
	}
	return routes, nil
}

// LoadRoutes reads a fixture file from disk and builds its routes.
func LoadRoutes(filePath string) ([]interceptor.Route, error) {
	data, err := ioutil.ReadFile(filePath)
	if err != nil {
		return nil, err
	}
	file, err := ParseFixtures(data)
	if err != nil {
		return nil, err
	}
	return BuildRoutes(file)
}
