// Package domain defines the core business entities for reposift.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Repository: a search hit returned by the hosting platform
//   - ScoredRepository: a repository that survived keyword filtering
//   - Verdict: the tri-state classification outcome
//   - ClassifiedRecord: the unit persisted to output
//   - CrawlSettings: the configuration surface consumed by the core
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
