// Package driven defines the outbound ports repolens depends on:
// the repository-hosting API gateway and token acquisition.
package driven
