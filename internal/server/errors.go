package server

import "errors"

var (
	// errNoServersAreCreated is returned by NewServer when no HTTP handler or
	// address is configured.
	errNoServersAreCreated = errors.New("no servers are created")

	// errShutdownTimedOut is returned when in-flight requests did not finish
	// within the configured shutdown timeout. The listener is closed anyway.
	errShutdownTimedOut = errors.New("graceful shutdown timed out")
)
