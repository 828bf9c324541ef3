package github

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/repolens/internal/core/domain"
)

var testScope = domain.RepoScope{Owner: "octo", Name: "hello"}

// stubTransport serves canned responses keyed by URL path substring.
type stubTransport struct {
	status int
	body   string
	header http.Header

	requests []*http.Request
}

func (t *stubTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	t.requests = append(t.requests, req)

	header := t.header
	if header == nil {
		header = http.Header{}
	}
	header.Set("Content-Type", "application/json")

	return &http.Response{
		StatusCode: t.status,
		Header:     header,
		Body:       io.NopCloser(strings.NewReader(t.body)),
		Request:    req,
	}, nil
}

func newStubGateway(status int, body string) (*Gateway, *stubTransport) {
	transport := &stubTransport{status: status, body: body}
	return NewGatewayWithHTTPClient(&http.Client{Transport: transport}), transport
}

func TestScopedQuery(t *testing.T) {
	t.Run("joins scope, qualifier and text", func(t *testing.T) {
		assert.Equal(t, "repo:octo/hello is:issue parser", scopedQuery(testScope, "is:issue", "parser"))
	})

	t.Run("omits empty parts", func(t *testing.T) {
		assert.Equal(t, "repo:octo/hello", scopedQuery(testScope, "", "   "))
		assert.Equal(t, "repo:octo/hello parser", scopedQuery(testScope, "", "parser"))
	})
}

func TestExcerpt(t *testing.T) {
	t.Run("short messages pass through", func(t *testing.T) {
		assert.Equal(t, "Not Found", excerpt("Not Found"))
	})

	t.Run("long messages are bounded", func(t *testing.T) {
		long := strings.Repeat("x", 500)
		got := excerpt(long)
		assert.Len(t, got, maxBodyExcerpt+3)
		assert.True(t, strings.HasSuffix(got, "..."))
	})
}

func TestTokenProviders(t *testing.T) {
	ctx := context.Background()

	t.Run("static provider returns its token", func(t *testing.T) {
		token, err := StaticTokenProvider("tok").GetToken(ctx)
		require.NoError(t, err)
		assert.Equal(t, "tok", token)
	})

	t.Run("env provider reads the variable", func(t *testing.T) {
		t.Setenv("REPOLENS_TEST_TOKEN", "from-env")

		token, err := EnvTokenProvider("REPOLENS_TEST_TOKEN").GetToken(ctx)
		require.NoError(t, err)
		assert.Equal(t, "from-env", token)
	})
}

func TestGateway_SearchIssues(t *testing.T) {
	ctx := context.Background()

	body := `{"total_count": 2, "items": [
		{"number": 42, "title": "Crash on load", "html_url": "https://github.com/octo/hello/issues/42"},
		{"number": 43, "title": "Slow startup", "html_url": "https://github.com/octo/hello/issues/43"}
	]}`
	gw, transport := newStubGateway(200, body)

	hits, err := gw.SearchIssues(ctx, testScope, "is:issue", "startup", 10)
	require.NoError(t, err)
	require.Len(t, hits, 2)
	assert.Equal(t, 42, hits[0].Number)
	assert.Equal(t, "Crash on load", hits[0].Title)

	require.Len(t, transport.requests, 1)
	q := transport.requests[0].URL.Query().Get("q")
	assert.Equal(t, "repo:octo/hello is:issue startup", q)
}

func TestGateway_GetBlob(t *testing.T) {
	ctx := context.Background()

	body := `{"sha": "deadbeef", "encoding": "base64", "content": "cGFja2FnZSBtYWluCg==", "size": 13}`
	gw, _ := newStubGateway(200, body)

	raw, err := gw.GetBlob(ctx, testScope, "deadbeef")
	require.NoError(t, err)
	assert.Equal(t, "base64", raw.Encoding)
	assert.Equal(t, "cGFja2FnZSBtYWluCg==", raw.Content)
	assert.Equal(t, 13, raw.Size)
}

func TestGateway_GetContentByPath(t *testing.T) {
	ctx := context.Background()

	t.Run("returns undecoded file content", func(t *testing.T) {
		body := `{"type": "file", "path": "README.md", "encoding": "base64", "content": "IyBIZWxsbwo=", "size": 8}`
		gw, transport := newStubGateway(200, body)

		raw, err := gw.GetContentByPath(ctx, testScope, "README.md", "dev")
		require.NoError(t, err)
		assert.Equal(t, "base64", raw.Encoding)
		assert.Equal(t, "IyBIZWxsbwo=", raw.Content)

		require.Len(t, transport.requests, 1)
		assert.Equal(t, "dev", transport.requests[0].URL.Query().Get("ref"))
	})

	t.Run("directory listing is rejected", func(t *testing.T) {
		gw, _ := newStubGateway(200, `[{"type": "file", "path": "docs/a.md"}]`)

		_, err := gw.GetContentByPath(ctx, testScope, "docs", "")
		assert.ErrorIs(t, err, ErrNotAFile)
	})
}

func TestGateway_GetBranchHead(t *testing.T) {
	ctx := context.Background()

	body := `{"name": "dev", "commit": {"sha": "headsha123"}}`
	gw, _ := newStubGateway(200, body)

	head, err := gw.GetBranchHead(ctx, testScope, "dev")
	require.NoError(t, err)
	assert.Equal(t, "headsha123", head)
}

func TestGateway_ErrorMapping(t *testing.T) {
	ctx := context.Background()

	t.Run("non-success status becomes a typed APIError", func(t *testing.T) {
		gw, _ := newStubGateway(404, `{"message": "Not Found"}`)

		_, err := gw.GetIssue(ctx, testScope, 999)
		require.Error(t, err)

		assert.True(t, IsNotFound(err))
		assert.Contains(t, err.Error(), "404")
	})

	t.Run("long upstream messages are excerpted", func(t *testing.T) {
		long := strings.Repeat("y", 1000)
		gw, _ := newStubGateway(500, fmt.Sprintf(`{"message": %q}`, long))

		_, err := gw.GetIssue(ctx, testScope, 1)
		require.Error(t, err)
		assert.Less(t, len(err.Error()), 400)
	})

	t.Run("rate limit headers feed the limiter", func(t *testing.T) {
		gw, transport := newStubGateway(200, `{"number": 1, "title": "t", "state": "open"}`)
		transport.header = http.Header{}
		transport.header.Set("X-RateLimit-Limit", "5000")
		transport.header.Set("X-RateLimit-Remaining", "4321")

		_, err := gw.GetIssue(ctx, testScope, 1)
		require.NoError(t, err)
		assert.Equal(t, 4321, gw.RateLimiter().Remaining())
		assert.Equal(t, 5000, gw.RateLimiter().Limit())
	})
}
