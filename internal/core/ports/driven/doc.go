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
//   - SignalSource: Collects signals from one upstream feed family
//   - PatternCatalogue: Read-only set of narrative patterns
//
// # Optional Interfaces
//
// These can be nil - the application falls back to defaults:
//
//   - ConfigStore: Application configuration. Without it, built-in defaults apply.
//   - HistoryStore: Recorded analysis runs. Without it, runs are not kept.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or connector package
package driven
