// Package mcp provides an MCP (Model Context Protocol) server adapter for reposift.
// It lets AI assistants score and classify single repositories and read stored runs.
package mcp

import "errors"

var (
	// ErrMissingScoringService is returned when the default scoring service is not provided.
	ErrMissingScoringService = errors.New("mcp: scoring service is required")

	// ErrUnknownBackend is returned when a tool names a backend the server does not know.
	ErrUnknownBackend = errors.New("mcp: unknown backend")
)
