// Package orchestrator wires the seed → state → renderer pipeline behind a
// single entry point used by the CLI and by embedders that want one call.
package orchestrator
