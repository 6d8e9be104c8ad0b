// Package main hosts the sublime CLI entrypoint and command graph.
//
// The Cobra command tree resolves configuration once per invocation, builds
// the organizer with the configured collaborators, and renders results as
// tables or JSON. Keep behaviour in the internal packages; commands here only
// parse flags and format output.
package main
