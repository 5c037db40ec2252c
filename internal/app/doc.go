// Package app contains the core application logic. It defines the main App
// struct, its configuration, and the convergence lifecycle: load the host
// inventory, then build every selected system, decoupled from any specific
// entrypoint like a CLI.
package app
