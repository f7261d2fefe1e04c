// Package driving defines the interfaces that external actors use to
// call INTO the core.
//
// These are the "driving" or "primary" ports in hexagonal architecture.
// The CLI adapter (and any future server adapter) depends on these
// interfaces; core services implement them.
package driving
