package driving

import (
	"context"

	"github.com/custodia-labs/repolens/internal/core/domain"
)

// SearchService discovers resources in the bound repository.
type SearchService interface {
	// Search runs the caller's free-text query across all four
	// categories and returns uniform result records in the fixed
	// category order. An empty branch delegates to the upstream search
	// API; a non-empty branch switches commit and code discovery to
	// direct branch enumeration with local filtering.
	Search(ctx context.Context, query, branch string) ([]domain.ResultRecord, error)
}

// FetchService redeems identifiers produced by SearchService.
type FetchService interface {
	// Fetch resolves each identifier (and, if path is non-empty, one
	// explicit repository path at ref) into a Doc, in input order.
	Fetch(ctx context.Context, ids []string, path, ref string) ([]domain.Doc, error)
}
