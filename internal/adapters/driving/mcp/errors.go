// Package mcp provides an MCP (Model Context Protocol) server adapter for SARA.
// It lets AI assistants search the researcher index and ask grounded questions.
package mcp

import "errors"

// ErrMissingSearchService is returned when the search service is not provided.
var ErrMissingSearchService = errors.New("mcp: search service is required")
