package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/apidouble/http-mock-interceptor/config"

	"github.com/alessio/shellescape"
)

type commandParams struct {
	envVarName  string
	environment string
	port        int
	host        string
	routesFile  string
	description string
	debug       bool
}

func (c *commandParams) Read(args []string) bool {
	fs := flag.NewFlagSet("", flag.ExitOnError)
	fs.StringVar(&c.envVarName, "env-var", config.EnvironmentVar, "designated environment variable that enables test mode")
	fs.StringVar(&c.environment, "environment", "", "environment indicator value (defaults to reading the designated variable)")
	fs.IntVar(&c.port, "port", defaultPort, "port that the interceptor will listen on")
	fs.StringVar(&c.host, "host", "localhost", "external hostname of the interceptor")
	fs.StringVar(&c.routesFile, "routes", "", "YAML file of mock route fixtures to register at startup")
	fs.StringVar(&c.description, "description", "", "description shown in the status document")
	fs.BoolVar(&c.debug, "debug", false, "enable debug logging")

	if err := fs.Parse(args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		fs.Usage()
		return false
	}
	return true
}

// exportHint builds a shell line that test runners can eval to point the application
// under test at the interceptor.
func exportHint(baseURL string) string {
	return fmt.Sprintf("export %s=%s", config.ExternalAPIBaseVar, shellescape.Quote(baseURL))
}
