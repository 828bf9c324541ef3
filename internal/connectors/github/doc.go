// Package github implements the repository gateway against the GitHub
// REST API.
//
// The gateway exposes the capability set the core services consume:
// the three search endpoints (issues, commits, code), single-resource
// retrieval for issues, pull requests and commits, and the git data
// endpoints used by explicit-branch traversal (branch head, commit
// log, recursive tree, blob, contents-by-path).
//
// # Authentication
//
// A personal access token is injected as an OAuth2 static token
// source. Unauthenticated access works but is limited to 60 requests
// per hour by GitHub.
//
// # Rate Limiting
//
// Every call waits on a dual-strategy limiter: a proactive token
// bucket keeps the request rate under the 5,000/hour authenticated
// quota, and response headers (X-RateLimit-Remaining/Reset) feed a
// reactive check that pauses until reset when the quota runs low.
//
// # Errors
//
// Non-success responses surface as [*APIError] carrying the status
// code and a bounded excerpt of the upstream message, never the full
// body. Quota exhaustion surfaces as [*RateLimitError] with the reset
// time. Neither is retried here; retry policy belongs to the caller.
package github
