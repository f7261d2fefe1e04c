// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - ModelProvider: Generates model responses (complete or streamed)
//   - SessionCache: In-memory session history with atomic replacement
//   - MessageStore: Durable message persistence
//
// # Optional Interfaces
//
// These degrade gracefully when nil:
//
//   - ProjectStore: Persists project manifests emitted by the model
//   - ConfigStore: Application configuration
//   - PromptStore: Customisable system prompts
package driven
