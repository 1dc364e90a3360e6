package server

// Server is the lifecycle contract for the transport servers this package
// manages.
//
// RunServer blocks until the server stops; Shutdown asks it to stop and
// release its resources.
type Server interface {
	// RunServer starts serving requests and blocks until the server stops.
	RunServer()

	// Shutdown gracefully stops the server.
	Shutdown()
}
