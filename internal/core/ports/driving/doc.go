// Package driving defines the inbound ports the transport adapter
// invokes: the search and fetch operations of a session.
package driving
