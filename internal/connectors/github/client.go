package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"sync"
	"time"

	gh "github.com/google/go-github/v80/github"
	"golang.org/x/oauth2"

	"github.com/custodia-labs/repolens/internal/core/ports/driven"
)

// DefaultTimeout is the default HTTP request timeout.
const DefaultTimeout = 30 * time.Second

// Gateway implements driven.RepoGateway against the GitHub REST API.
type Gateway struct {
	gh            *gh.Client
	tokenProvider driven.TokenProvider
	rateLimiter   *RateLimiter

	initOnce sync.Once
	initErr  error
}

// NewGateway creates a gateway with a token provider. The underlying
// client is initialized lazily so the token is fetched when needed.
func NewGateway(tokenProvider driven.TokenProvider) *Gateway {
	return &Gateway{
		tokenProvider: tokenProvider,
		rateLimiter:   NewRateLimiter(),
	}
}

// NewGatewayWithHTTPClient creates a gateway on a caller-supplied
// http.Client. Used by tests to inject a stub transport.
func NewGatewayWithHTTPClient(httpClient *http.Client) *Gateway {
	return &Gateway{
		gh:          gh.NewClient(httpClient),
		rateLimiter: NewRateLimiter(),
	}
}

// ensureClient initializes the go-github client exactly once. Safe
// for the concurrent category fan-out of a first search.
func (g *Gateway) ensureClient(ctx context.Context) error {
	g.initOnce.Do(func() {
		if g.gh != nil {
			return
		}

		token, err := g.tokenProvider.GetToken(ctx)
		if err != nil {
			g.initErr = fmt.Errorf("get token: %w", err)
			return
		}

		if token == "" {
			g.gh = gh.NewClient(&http.Client{Timeout: DefaultTimeout})
			return
		}

		ts := oauth2.StaticTokenSource(
			&oauth2.Token{AccessToken: token},
		)
		tc := oauth2.NewClient(context.Background(), ts)
		tc.Timeout = DefaultTimeout
		g.gh = gh.NewClient(tc)
	})
	return g.initErr
}

// prepare readies the client for one API call: lazy init plus rate
// limit wait.
func (g *Gateway) prepare(ctx context.Context) error {
	if err := g.ensureClient(ctx); err != nil {
		return err
	}
	if err := g.rateLimiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait: %w", err)
	}
	return nil
}

// RateLimiter returns the limiter for external inspection.
func (g *Gateway) RateLimiter() *RateLimiter {
	return g.rateLimiter
}

// updateRateLimitFromResponse feeds response headers to the limiter.
func (g *Gateway) updateRateLimitFromResponse(resp *gh.Response) {
	if resp == nil || resp.Response == nil {
		return
	}
	g.rateLimiter.UpdateFromResponse(resp.Response)
}

// wrapError converts go-github errors to the gateway's typed errors.
func (g *Gateway) wrapError(err error, operation string) error {
	if err == nil {
		return nil
	}

	var ghErr *gh.ErrorResponse
	if errors.As(err, &ghErr) && ghErr.Response != nil {
		url := ""
		if ghErr.Response.Request != nil && ghErr.Response.Request.URL != nil {
			url = ghErr.Response.Request.URL.String()
		}
		return &APIError{
			StatusCode: ghErr.Response.StatusCode,
			Message:    excerpt(ghErr.Message),
			URL:        url,
		}
	}

	var rateLimitErr *gh.RateLimitError
	if errors.As(err, &rateLimitErr) {
		return &RateLimitError{
			ResetAt:   g.rateLimiter.ResetTime(),
			Remaining: g.rateLimiter.Remaining(),
			Limit:     g.rateLimiter.Limit(),
		}
	}

	return fmt.Errorf("%s: %w", operation, err)
}

// StaticTokenProvider supplies a fixed access token.
type StaticTokenProvider string

// GetToken returns the fixed token.
func (p StaticTokenProvider) GetToken(context.Context) (string, error) {
	return string(p), nil
}

// EnvTokenProvider reads the token from an environment variable on
// each call, so rotated tokens are picked up without restart.
type EnvTokenProvider string

// GetToken returns the variable's current value, empty if unset.
func (p EnvTokenProvider) GetToken(context.Context) (string, error) {
	return os.Getenv(string(p)), nil
}
