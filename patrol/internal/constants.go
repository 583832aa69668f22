package internal

import "time"

// File permission constants
const (
	// DirectoryPermissions is the standard permission for creating directories
	DirectoryPermissions = 0755

	// FilePermissions is the standard permission for files written by the server
	FilePermissions = 0644
)

// Path constants
const (
	// DefaultResolution is the number of path points generated between two patrol points
	DefaultResolution = 120
)

// World constants
const (
	// DefaultWorldTime is the default time to set in the world (6000 = noon)
	DefaultWorldTime = 6000
)

// Duration constants for commonly used timeouts
const (
	// DefaultTickInterval is the interval between two patrol steps (20 TPS)
	DefaultTickInterval = 50 * time.Millisecond

	// ShutdownTimeout is how long the status server is given to finish in-flight requests
	ShutdownTimeout = 5 * time.Second

	// SentryFlushTimeout is how long buffered sentry events are given to be sent
	SentryFlushTimeout = 2 * time.Second
)
