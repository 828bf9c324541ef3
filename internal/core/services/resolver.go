package services

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/custodia-labs/repolens/internal/core/domain"
	"github.com/custodia-labs/repolens/internal/core/ports/driven"
	"github.com/custodia-labs/repolens/internal/logger"
)

// unknownIDBody enumerates the accepted identifier forms for the
// placeholder returned on an unrecognized tag.
const unknownIDBody = "Unrecognized ID %q. Valid forms: issue:<number>, pr:<number>, commit:<sha>, code:<blob-sha>, or a repository-relative file path."

// Resolver redeems identifiers produced by a search in the same
// session. Each identifier is resolved independently; a failure on one
// yields an error-marker Doc for that identifier and never aborts the
// batch.
type Resolver struct {
	gateway driven.RepoGateway
	scope   domain.RepoScope
	index   *Index
}

// NewResolver creates a fetch resolver sharing the session's index.
func NewResolver(gateway driven.RepoGateway, scope domain.RepoScope, index *Index) *Resolver {
	return &Resolver{gateway: gateway, scope: scope, index: index}
}

// Fetch resolves each identifier in input order, then the explicit
// path if one is given. Tokens without a category separator are
// treated as literal repository paths at the head ref.
func (r *Resolver) Fetch(ctx context.Context, ids []string, path, ref string) ([]domain.Doc, error) {
	docs := make([]domain.Doc, 0, len(ids)+1)

	for _, token := range ids {
		docs = append(docs, r.resolveToken(ctx, token, ref))
	}

	if path != "" {
		docs = append(docs, r.resolvePath(ctx, path, ref))
	}

	return docs, nil
}

func (r *Resolver) resolveToken(ctx context.Context, token, ref string) domain.Doc {
	id, err := domain.ParseResourceID(token)
	switch {
	case errors.Is(err, domain.ErrNotAnID):
		return r.resolvePath(ctx, token, ref)
	case errors.Is(err, domain.ErrUnknownCategory):
		logger.Debug("unrecognized identifier %q", token)
		return unknownIDDoc(token)
	}

	switch id.Category {
	case domain.CategoryIssue:
		return r.resolveIssue(ctx, id)
	case domain.CategoryPull:
		return r.resolvePull(ctx, id)
	case domain.CategoryCommit:
		return r.resolveCommit(ctx, id)
	case domain.CategoryCode:
		return r.resolveCode(ctx, id, ref)
	default:
		return unknownIDDoc(token)
	}
}

func (r *Resolver) resolveIssue(ctx context.Context, id domain.ResourceID) domain.Doc {
	number, err := strconv.Atoi(id.Value)
	if err != nil {
		return errorDoc(id.String(), fmt.Errorf("invalid issue number %q", id.Value))
	}

	issue, err := r.gateway.GetIssue(ctx, r.scope, number)
	if err != nil {
		return errorDoc(id.String(), err)
	}

	return domain.Doc{
		ID:    id.String(),
		Title: issue.Title,
		Text:  issue.Body,
		URL:   issue.URL,
		Metadata: map[string]any{
			"number": issue.Number,
			"state":  issue.State,
			"labels": issue.Labels,
		},
	}
}

func (r *Resolver) resolvePull(ctx context.Context, id domain.ResourceID) domain.Doc {
	number, err := strconv.Atoi(id.Value)
	if err != nil {
		return errorDoc(id.String(), fmt.Errorf("invalid pull request number %q", id.Value))
	}

	pull, err := r.gateway.GetPullRequest(ctx, r.scope, number)
	if err != nil {
		return errorDoc(id.String(), err)
	}

	return domain.Doc{
		ID:    id.String(),
		Title: pull.Title,
		Text:  pull.Body,
		URL:   pull.URL,
		Metadata: map[string]any{
			"number": pull.Number,
			"state":  pull.State,
			"merged": pull.Merged,
			"head":   pull.HeadRef,
			"base":   pull.BaseRef,
		},
	}
}

func (r *Resolver) resolveCommit(ctx context.Context, id domain.ResourceID) domain.Doc {
	commit, err := r.gateway.GetCommit(ctx, r.scope, id.Value)
	if err != nil {
		return errorDoc(id.String(), err)
	}

	title := firstLine(commit.Message)
	if title == "" {
		title = "Commit " + shortSHA(commit.SHA)
	}

	return domain.Doc{
		ID:    id.String(),
		Title: title,
		Text:  commit.Message,
		URL:   commit.URL,
		Metadata: map[string]any{
			"sha":       commit.SHA,
			"author":    commit.Author.Name,
			"committer": commit.Committer.Name,
		},
	}
}

// resolveCode redeems a code identifier against the session index. An
// identifier the index has never seen falls back to treating the raw
// value as a literal repository path at the head ref.
func (r *Resolver) resolveCode(ctx context.Context, id domain.ResourceID, ref string) domain.Doc {
	entry, ok := r.index.Get(id.String())
	if !ok {
		logger.Debug("code id %q not indexed, trying path fallback", id.String())
		return r.resolvePath(ctx, id.Value, ref)
	}

	raw, err := r.gateway.GetBlob(ctx, r.scope, entry.ContentHash)
	if err != nil {
		return errorDoc(id.String(), err)
	}

	title := entry.Path
	if title == "" {
		title = entry.ContentHash
	}

	return domain.Doc{
		ID:    id.String(),
		Title: title,
		Text:  decodeContent(raw),
		URL:   entry.CanonicalURL,
		Metadata: map[string]any{
			"path": entry.Path,
			"sha":  entry.ContentHash,
			"size": raw.Size,
		},
	}
}

// resolvePath fetches file content addressed by path at a ref. An
// empty ref means the repository's current head.
func (r *Resolver) resolvePath(ctx context.Context, path, ref string) domain.Doc {
	raw, err := r.gateway.GetContentByPath(ctx, r.scope, path, ref)
	if err != nil {
		return errorDoc(path, err)
	}

	url := ref
	if url == "" {
		url = "HEAD"
	}

	return domain.Doc{
		ID:    path,
		Title: path,
		Text:  decodeContent(raw),
		URL:   r.scope.BlobURL(url, path),
		Metadata: map[string]any{
			"path": path,
			"size": raw.Size,
		},
	}
}

// decodeContent normalizes upstream content to plain text. A decode
// failure degrades to an empty body rather than propagating.
func decodeContent(raw domain.RawContent) string {
	switch raw.Encoding {
	case "base64":
		stripped := strings.Map(func(r rune) rune {
			if r == '\n' || r == '\r' || r == ' ' {
				return -1
			}
			return r
		}, raw.Content)
		decoded, err := base64.StdEncoding.DecodeString(stripped)
		if err != nil {
			logger.Warn("base64 decode failed: %v", err)
			return ""
		}
		return string(decoded)
	case "", "utf-8", "none":
		return raw.Content
	default:
		logger.Warn("unknown content encoding %q", raw.Encoding)
		return ""
	}
}

// unknownIDDoc is the placeholder returned for an unrecognized tag. It
// signals the caller's input fault without failing the batch.
func unknownIDDoc(token string) domain.Doc {
	return domain.Doc{
		ID:       token,
		Title:    "Unknown ID",
		Text:     fmt.Sprintf(unknownIDBody, token),
		Metadata: map[string]any{"unknown_id": true},
	}
}

// errorDoc marks a single failed resolution within a batch.
func errorDoc(id string, err error) domain.Doc {
	return domain.Doc{
		ID:       id,
		Title:    "Error",
		Metadata: map[string]any{"error": err.Error()},
	}
}
