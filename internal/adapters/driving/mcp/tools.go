package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/repolens/internal/core/domain"
)

// SearchInput is the input schema for the search tool.
type SearchInput struct {
	Query  string `json:"query" jsonschema:"free-text query run across issues, pull requests, commits and code"`
	Branch string `json:"branch,omitempty" jsonschema:"optional branch name; commits and code are then enumerated from the branch instead of the default-branch search index"`
}

// SearchOutput is the output schema for the search tool.
type SearchOutput struct {
	Results []ResultOutput `json:"results"`
	Count   int            `json:"count"`
}

// ResultOutput represents a single search result.
type ResultOutput struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	URL     string `json:"url"`
	Path    string `json:"path,omitempty"`
	Snippet string `json:"snippet,omitempty"`
}

// FetchInput is the input schema for the fetch tool.
type FetchInput struct {
	IDs  []string `json:"ids,omitempty" jsonschema:"identifiers returned by search (issue:N, pr:N, commit:SHA, code:SHA) or literal repository file paths"`
	Path string   `json:"path,omitempty" jsonschema:"optional explicit repository-relative file path to fetch alongside ids"`
	Ref  string   `json:"ref,omitempty" jsonschema:"optional ref for path-addressed retrieval; defaults to the repository head"`
}

// FetchOutput is the output schema for the fetch tool.
type FetchOutput struct {
	Files []DocOutput `json:"files"`
}

// DocOutput represents one fetched document with decoded text.
type DocOutput struct {
	ID       string         `json:"id"`
	Title    string         `json:"title"`
	Text     string         `json:"text"`
	URL      string         `json:"url,omitempty"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search",
		Description: "Search the bound repository's issues, pull requests, commits and code",
	}, s.handleSearch)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "fetch",
		Description: "Fetch the full content of resources by the identifiers search returned, or by file path",
	}, s.handleFetch)
}

// handleSearch handles the search tool invocation.
func (s *Server) handleSearch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	results, err := s.ports.Search.Search(ctx, input.Query, input.Branch)
	if err != nil {
		return nil, SearchOutput{}, err
	}

	output := SearchOutput{
		Results: make([]ResultOutput, len(results)),
		Count:   len(results),
	}
	for i := range results {
		output.Results[i] = ResultOutput{
			ID:      results[i].ID,
			Title:   results[i].Title,
			URL:     results[i].URL,
			Path:    results[i].Path,
			Snippet: results[i].Snippet,
		}
	}

	return nil, output, nil
}

// handleFetch handles the fetch tool invocation.
func (s *Server) handleFetch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input FetchInput,
) (*mcp.CallToolResult, FetchOutput, error) {
	if len(input.IDs) == 0 && input.Path == "" {
		return nil, FetchOutput{}, ErrEmptyFetchInput
	}

	docs, err := s.ports.Fetch.Fetch(ctx, input.IDs, input.Path, input.Ref)
	if err != nil {
		return nil, FetchOutput{}, err
	}

	output := FetchOutput{Files: make([]DocOutput, len(docs))}
	for i := range docs {
		output.Files[i] = docOutput(docs[i])
	}

	return nil, output, nil
}

func docOutput(doc domain.Doc) DocOutput {
	return DocOutput{
		ID:       doc.ID,
		Title:    doc.Title,
		Text:     doc.Text,
		URL:      doc.URL,
		Metadata: doc.Metadata,
	}
}
