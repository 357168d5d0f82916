// Package timeout defines centralized timeout constants for AI operations.
package timeout

import "time"

// AI operation timeout constants.
const (
	// SessionOpenTimeout is the timeout for opening a provider session.
	SessionOpenTimeout = 30 * time.Second

	// StreamTimeout is the overall timeout for a streaming query.
	StreamTimeout = 5 * time.Minute

	// StreamIdleTimeout is the maximum silence between chunks on a
	// response stream before the read is aborted. The provider has been
	// observed to stall without closing the connection; without this the
	// request hangs indefinitely.
	StreamIdleTimeout = 60 * time.Second

	// MediaUploadTimeout is the timeout for uploading an image to the media API.
	MediaUploadTimeout = 60 * time.Second

	// MaxTruncateLength is the maximum length for truncating strings in logs.
	MaxTruncateLength = 200
)
