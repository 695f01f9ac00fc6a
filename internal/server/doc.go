// Package server wires and runs the application's transport servers.
//
// It provides orchestration for HTTP and gRPC server lifecycles: listeners
// are bound up front, every enabled transport serves until the run context
// is cancelled or one of them fails, and all of them are then shut down
// gracefully.
package server
