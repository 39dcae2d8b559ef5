package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/apidouble/http-mock-interceptor/config"
	"github.com/apidouble/http-mock-interceptor/console"
	"github.com/apidouble/http-mock-interceptor/interceptor"
	"github.com/apidouble/http-mock-interceptor/logging"
)

const defaultPort = 8122

func main() {
	var params commandParams
	if !params.Read(os.Args) {
		os.Exit(1)
	}

	environment := params.environment
	if environment == "" {
		environment = os.Getenv(params.envVarName)
	}
	gate := interceptor.NewGate(environment)
	if !gate.TestModeActive() {
		fmt.Fprintf(os.Stderr, "Refusing to start: %s=%q does not designate test mode (want %q)\n",
			params.envVarName, environment, interceptor.TestEnvironment)
		os.Exit(1)
	}

	logger := logging.NullLogger()
	if params.debug {
		debugLogger, err := logging.NewDebugLogger()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Could not create debug logger: %s\n", err)
			os.Exit(1)
		}
		logger = debugLogger
	}

	itc, err := interceptor.New(interceptor.Options{
		Gate:             gate,
		ExternalHostname: params.host,
		Port:             params.port,
		Description:      params.description,
		Logger:           logger,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Could not create interceptor: %s\n", err)
		os.Exit(1)
	}

	if params.routesFile != "" {
		routes, err := config.LoadRoutes(params.routesFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Could not load route fixtures: %s\n", err)
			os.Exit(1)
		}
		if err := itc.Registry().RegisterRoutes(routes); err != nil {
			fmt.Fprintf(os.Stderr, "Could not register route fixtures: %s\n", err)
			os.Exit(1)
		}
	}

	if err := itc.Start(); err != nil {
		fmt.Fprintf(os.Stderr, "Could not start interceptor: %s\n", err)
		os.Exit(1)
	}

	reporter := console.NewReporter(os.Stdout)
	if err := reporter.Attach(itc.Dispatcher()); err != nil {
		fmt.Fprintf(os.Stderr, "Could not attach console reporter: %s\n", err)
		os.Exit(1)
	}
	reporter.PrintStartup(itc.BaseURL(), itc.Registry().Routes())
	fmt.Println()
	fmt.Println("Point the application under test at the interceptor with:")
	fmt.Printf("  %s\n", exportHint(itc.BaseURL()))
	fmt.Println()

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, os.Interrupt, syscall.SIGTERM)
	<-signals

	_ = reporter.Detach(itc.Dispatcher())
	if err := itc.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Error shutting down: %s\n", err)
		os.Exit(1)
	}
}
