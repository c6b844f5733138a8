// Package timeouts centralizes the context deadlines handlers put on
// database and storage work. Every handler takes its deadline from
// here instead of inventing one inline, so the budget for a class of
// operation is adjusted in one place.
//
// Picking a tier:
//   - Ping: the health endpoint's connectivity check
//   - Short: single-document reads and writes (session user lookup,
//     mark-read, profile save)
//   - Medium: list queries and multi-collection page loads (audit
//     browser, dashboards)
//   - Long: document uploads going through the storage backend
package timeouts

import "time"

const (
	ping   = 2 * time.Second
	short  = 3 * time.Second
	medium = 10 * time.Second
	long   = 20 * time.Second
)

// Ping returns the health-check deadline. Kept tight so a dead Mongo
// flips the health endpoint quickly.
func Ping() time.Duration { return ping }

// Short returns the deadline for single-document operations.
func Short() time.Duration { return short }

// Medium returns the deadline for list queries and page loads that
// touch several collections.
func Medium() time.Duration { return medium }

// Long returns the deadline for uploads and other work that moves
// file content through the storage backend.
func Long() time.Duration { return long }
