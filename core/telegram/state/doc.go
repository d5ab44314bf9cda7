// Package state keeps per-user conversation sessions in memory.
// It is domain-agnostic so it can be reused across bots: callers choose the
// session type and seed it on first contact.
package state
