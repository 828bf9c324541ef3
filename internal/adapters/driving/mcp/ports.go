package mcp

import (
	"github.com/custodia-labs/repolens/internal/core/ports/driving"
)

// Ports aggregates the driving port interfaces of one session. Each
// MCP session gets its own Ports, so its locator index is never shared
// with another session.
type Ports struct {
	// Search discovers resources in the bound repository.
	Search driving.SearchService

	// Fetch redeems identifiers returned by Search.
	Fetch driving.FetchService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Search == nil {
		return ErrMissingSearchService
	}
	if p.Fetch == nil {
		return ErrMissingFetchService
	}
	return nil
}
