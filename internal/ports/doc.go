// Package ports defines the interfaces (ports) that connect the exciser to
// infrastructure adapters.
//
// # Port Interfaces
//
//   - [LineStore]: Loads a file as a line sequence and writes one back
//   - [Logger]: Structured logging abstraction
//
// The application layer (internal/app) depends only on these interfaces.
// Infrastructure adapters (internal/adapters) implement them with the file
// system and zerolog.
package ports
