// Package app wires application dependencies for the CLI.
//
// It builds the concrete stores, endpoint clients and high-level services
// from config.Config, exposing them via the Wire struct for commands to use.
package app
