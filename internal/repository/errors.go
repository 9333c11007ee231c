// Package repository materializes workbook sheets into typed in-memory
// tables and owns id allocation and row updates. The sentinel values here
// allow higher layers such as handlers to distinguish between different
// failure scenarios: a missing record maps to HTTP 404, while an
// unreachable store (sheet.TransportError) maps to HTTP 502 and may be
// retried. Earlier variants of this tool collapsed both cases into one
// user-facing "not found" message; keeping them distinct means a transport
// hiccup never reads as a vanished record.
package repository

import "errors"

// ErrRepertoireNotFound is returned when an update targets a repertoire id
// that no row carries. Handlers should translate this into an HTTP 404.
var ErrRepertoireNotFound = errors.New("repertoire item not found")

// ErrLocationNotFound is returned when a venue lookup by name misses.
var ErrLocationNotFound = errors.New("location not found")

// ErrEventNotFound is returned when an event id cannot be located in the
// events sheet.
var ErrEventNotFound = errors.New("event not found")
