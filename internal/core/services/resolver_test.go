package services

import (
	"context"
	"encoding/base64"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/repolens/internal/core/domain"
)

func newTestResolver(gw *mockGateway) (*Resolver, *Index) {
	idx := NewIndex()
	return NewResolver(gw, testScope, idx), idx
}

func TestResolver_Dispatch(t *testing.T) {
	ctx := context.Background()

	t.Run("issue id fetches the issue", func(t *testing.T) {
		gw := &mockGateway{issue: &domain.IssueDetail{
			Number: 42, Title: "Crash", Body: "It crashes.", State: "open",
			Labels: []string{"bug"}, URL: "u",
		}}
		r, _ := newTestResolver(gw)

		docs, err := r.Fetch(ctx, []string{"issue:42"}, "", "")
		require.NoError(t, err)
		require.Len(t, docs, 1)

		doc := docs[0]
		assert.Equal(t, "issue:42", doc.ID)
		assert.Equal(t, "Crash", doc.Title)
		assert.Equal(t, "It crashes.", doc.Text)
		assert.Equal(t, "open", doc.Metadata["state"])
		assert.Equal(t, []string{"bug"}, doc.Metadata["labels"])
		assert.Equal(t, 42, doc.Metadata["number"])
	})

	t.Run("pr id fetches the pull request", func(t *testing.T) {
		gw := &mockGateway{pull: &domain.PullDetail{
			Number: 7, Title: "Add parser", Body: "New parser.", State: "closed",
			Merged: true, HeadRef: "feature", BaseRef: "main", URL: "u",
		}}
		r, _ := newTestResolver(gw)

		docs, err := r.Fetch(ctx, []string{"pr:7"}, "", "")
		require.NoError(t, err)
		require.Len(t, docs, 1)

		doc := docs[0]
		assert.Equal(t, "pr:7", doc.ID)
		assert.Equal(t, true, doc.Metadata["merged"])
		assert.Equal(t, "feature", doc.Metadata["head"])
		assert.Equal(t, "main", doc.Metadata["base"])
	})

	t.Run("commit id fetches the commit", func(t *testing.T) {
		gw := &mockGateway{commit: &domain.CommitDetail{
			SHA:       "abc123",
			Message:   "fix lexer\n\nbody",
			Author:    domain.Signature{Name: "Ada"},
			Committer: domain.Signature{Name: "Bob"},
			URL:       "u",
		}}
		r, _ := newTestResolver(gw)

		docs, err := r.Fetch(ctx, []string{"commit:abc123"}, "", "")
		require.NoError(t, err)
		require.Len(t, docs, 1)

		doc := docs[0]
		assert.Equal(t, "fix lexer", doc.Title)
		assert.Equal(t, "fix lexer\n\nbody", doc.Text)
		assert.Equal(t, "Ada", doc.Metadata["author"])
		assert.Equal(t, "Bob", doc.Metadata["committer"])
		assert.Equal(t, "abc123", doc.Metadata["sha"])
	})

	t.Run("unknown tag yields placeholder, never an error", func(t *testing.T) {
		r, _ := newTestResolver(&mockGateway{})

		docs, err := r.Fetch(ctx, []string{"foo:123"}, "", "")
		require.NoError(t, err)
		require.Len(t, docs, 1)

		doc := docs[0]
		assert.Equal(t, "Unknown ID", doc.Title)
		assert.Contains(t, doc.Text, "issue:<number>")
		assert.Contains(t, doc.Text, "code:<blob-sha>")
	})

	t.Run("docs come back in input order", func(t *testing.T) {
		gw := &mockGateway{
			issue:  &domain.IssueDetail{Number: 1, Title: "i"},
			commit: &domain.CommitDetail{SHA: "c", Message: "m"},
		}
		r, _ := newTestResolver(gw)

		docs, err := r.Fetch(ctx, []string{"commit:c", "foo:9", "issue:1"}, "", "")
		require.NoError(t, err)
		require.Len(t, docs, 3)
		assert.Equal(t, "commit:c", docs[0].ID)
		assert.Equal(t, "Unknown ID", docs[1].Title)
		assert.Equal(t, "issue:1", docs[2].ID)
	})

	t.Run("one failing resolution marks only that doc", func(t *testing.T) {
		gw := &mockGateway{
			issue:        &domain.IssueDetail{Number: 1, Title: "ok"},
			getCommitErr: errors.New("404 Not Found"),
		}
		r, _ := newTestResolver(gw)

		docs, err := r.Fetch(ctx, []string{"commit:gone", "issue:1"}, "", "")
		require.NoError(t, err)
		require.Len(t, docs, 2)

		assert.Equal(t, "Error", docs[0].Title)
		assert.Contains(t, docs[0].Metadata["error"], "404")
		assert.Equal(t, "ok", docs[1].Title)
	})
}

func TestResolver_Code(t *testing.T) {
	ctx := context.Background()

	t.Run("indexed code id redeems the blob", func(t *testing.T) {
		content := base64.StdEncoding.EncodeToString([]byte("package main\n"))
		gw := &mockGateway{blob: domain.RawContent{Content: content, Encoding: "base64", Size: 13}}
		r, idx := newTestResolver(gw)
		idx.Put("code:deadbeef", domain.IndexEntry{
			Owner: "octo", Repo: "hello", Path: "main.go",
			ContentHash: "deadbeef", CanonicalURL: "curl",
		})

		docs, err := r.Fetch(ctx, []string{"code:deadbeef"}, "", "")
		require.NoError(t, err)
		require.Len(t, docs, 1)

		doc := docs[0]
		assert.Equal(t, "package main\n", doc.Text)
		assert.Equal(t, "curl", doc.URL)
		assert.Equal(t, "main.go", doc.Title)
		assert.Equal(t, []string{"deadbeef"}, gw.blobSHAs)
	})

	t.Run("unindexed code id falls back to path retrieval", func(t *testing.T) {
		gw := &mockGateway{content: domain.RawContent{Content: "text", Encoding: ""}}
		r, _ := newTestResolver(gw)

		docs, err := r.Fetch(ctx, []string{"code:docs/guide.md"}, "", "")
		require.NoError(t, err)
		require.Len(t, docs, 1)
		assert.Equal(t, "text", docs[0].Text)
		assert.Equal(t, []string{"docs/guide.md"}, gw.contentPaths)
	})

	t.Run("base64 decode failure degrades to empty text", func(t *testing.T) {
		gw := &mockGateway{blob: domain.RawContent{Content: "!!!not-base64!!!", Encoding: "base64"}}
		r, idx := newTestResolver(gw)
		idx.Put("code:bad", domain.IndexEntry{ContentHash: "bad", Path: "x.bin"})

		docs, err := r.Fetch(ctx, []string{"code:bad"}, "", "")
		require.NoError(t, err)
		require.Len(t, docs, 1)
		assert.Equal(t, "", docs[0].Text)
	})

	t.Run("decodes base64 containing newlines", func(t *testing.T) {
		encoded := base64.StdEncoding.EncodeToString([]byte("hello world"))
		wrapped := encoded[:4] + "\n" + encoded[4:] + "\n"
		gw := &mockGateway{blob: domain.RawContent{Content: wrapped, Encoding: "base64"}}
		r, idx := newTestResolver(gw)
		idx.Put("code:nl", domain.IndexEntry{ContentHash: "nl"})

		docs, err := r.Fetch(ctx, []string{"code:nl"}, "", "")
		require.NoError(t, err)
		assert.Equal(t, "hello world", docs[0].Text)
	})
}

func TestResolver_Paths(t *testing.T) {
	ctx := context.Background()

	t.Run("separator-less token is fetched as a path", func(t *testing.T) {
		gw := &mockGateway{content: domain.RawContent{Content: "# Readme"}}
		r, _ := newTestResolver(gw)

		docs, err := r.Fetch(ctx, []string{"README.md"}, "", "")
		require.NoError(t, err)
		require.Len(t, docs, 1)

		doc := docs[0]
		assert.Equal(t, "README.md", doc.ID)
		assert.Equal(t, "README.md", doc.Metadata["path"])
		assert.Equal(t, "# Readme", doc.Text)
	})

	t.Run("explicit path is appended after ids", func(t *testing.T) {
		gw := &mockGateway{
			issue:   &domain.IssueDetail{Number: 1, Title: "i"},
			content: domain.RawContent{Content: "body"},
		}
		r, _ := newTestResolver(gw)

		docs, err := r.Fetch(ctx, []string{"issue:1"}, "docs/a.md", "dev")
		require.NoError(t, err)
		require.Len(t, docs, 2)
		assert.Equal(t, "issue:1", docs[0].ID)
		assert.Equal(t, "docs/a.md", docs[1].ID)
		assert.Contains(t, docs[1].URL, "/blob/dev/docs/a.md")
		assert.Equal(t, []string{"dev"}, gw.contentRefs)
	})

	t.Run("path failure yields an error marker doc", func(t *testing.T) {
		gw := &mockGateway{contentErr: errors.New("404 Not Found")}
		r, _ := newTestResolver(gw)

		docs, err := r.Fetch(ctx, nil, "missing.go", "")
		require.NoError(t, err)
		require.Len(t, docs, 1)
		assert.Equal(t, "Error", docs[0].Title)
	})
}
