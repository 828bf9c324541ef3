package services

import (
	"github.com/google/uuid"

	"github.com/custodia-labs/repolens/internal/core/domain"
	"github.com/custodia-labs/repolens/internal/core/ports/driven"
	"github.com/custodia-labs/repolens/internal/logger"
)

// Options tunes a session's search behaviour.
type Options struct {
	// Limit is the per-category result cap.
	Limit int

	// CommitWindow caps the branch commit scan in explicit-branch mode.
	CommitWindow int
}

// Session binds one repository scope to one locator index and the
// search and fetch services sharing it. Sessions are independent:
// concurrent sessions for different repositories never observe each
// other's scope or index. The host transport serializes operations
// within a session.
type Session struct {
	ID     string
	Scope  domain.RepoScope
	Search *Aggregator
	Fetch  *Resolver

	index *Index
}

// NewSession creates a session with an empty index. The index lives
// exactly as long as the session.
func NewSession(gateway driven.RepoGateway, scope domain.RepoScope, opts Options) *Session {
	index := NewIndex()
	s := &Session{
		ID:     uuid.NewString(),
		Scope:  scope,
		Search: NewAggregator(gateway, scope, index, opts.Limit, opts.CommitWindow),
		Fetch:  NewResolver(gateway, scope, index),
		index:  index,
	}
	logger.Debug("session %s bound to %s", s.ID, scope)
	return s
}

// Index exposes the session's locator index, mainly for tests.
func (s *Session) Index() *Index {
	return s.index
}
