// Package mcp provides the MCP (Model Context Protocol) server adapter
// for repolens. It exposes the search and fetch operations of a
// repository-bound session as callable tools.
package mcp

import "errors"

var (
	// ErrMissingSearchService is returned when the search service is not provided.
	ErrMissingSearchService = errors.New("mcp: search service is required")

	// ErrMissingFetchService is returned when the fetch service is not provided.
	ErrMissingFetchService = errors.New("mcp: fetch service is required")

	// ErrEmptyFetchInput is returned when a fetch call names neither
	// identifiers nor a path.
	ErrEmptyFetchInput = errors.New("mcp: fetch requires ids or a path")
)
