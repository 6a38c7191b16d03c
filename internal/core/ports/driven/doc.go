// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - RepositorySearcher: paginated, rate-limit-aware repository search
//   - RecordWriter: checkpoint and final output persistence
//   - ConfigStore: application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - Classifier: model-backed verdicts. Without it every item gets the keyword heuristic.
//   - LLMService: text completion used by classifiers.
//   - PromptStore: user-editable prompts. Without it built-in prompts are used.
//   - RunStore: SQLite results store.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or connector package
package driven
