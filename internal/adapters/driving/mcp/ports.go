package mcp

import (
	"github.com/sara-labs/sara-cli/internal/core/ports/driven"
	"github.com/sara-labs/sara-cli/internal/core/ports/driving"
)

// Ports aggregates all port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Search answers similarity queries against the index.
	Search driving.SearchService

	// Assistant generates grounded answers. Optional; without it the
	// ask tool is not registered.
	Assistant driving.AssistantService

	// EvalStore exposes evaluation runs as resources. Optional.
	EvalStore driven.EvalStore

	// IndexPath is the index pair the server reads.
	IndexPath string

	// TopK is the default result count for tools.
	TopK int
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Search == nil {
		return ErrMissingSearchService
	}
	// Assistant and EvalStore are optional
	return nil
}
