package molsync

import "errors"

// Exported errors for library consumers.
var (
	// ErrClientClosed indicates the client has been closed.
	ErrClientClosed = errors.New("molsync: client is closed")

	// ErrNoHistory indicates an operation needs a command history database
	// that was not configured.
	ErrNoHistory = errors.New("molsync: no command history database configured")
)
