// Package errors defines domain-level errors used throughout the application.
// These errors represent business logic failures and are mapped to appropriate HTTP status codes at the API boundary.
//
// NOTE: Important for developers
// When adding a new error here, you MUST consider how it should be handled when returned from API endpoints.
//
// Unmapped errors will default to HTTP 500 Internal Server Error.
//
// Don't forget to:
// 1. Add your error to mapError (internal/daemon/api_server.go)
// 2. Add a test case to TestMapError (internal/daemon/api_server_test.go)
// 3. Consider if existing handler tests need updates
package errors

import (
	"errors"
)

var (
	// ErrBadRequest indicates that the client provided invalid input or made a malformed request.
	// This typically results from validation failures or incorrect request parameters.
	// Recommended to map to HTTP 400 Bad Request.
	ErrBadRequest = errors.New("bad request")

	// ErrSecretNotConfigured indicates that the base encryption secret is missing or empty.
	// This is a configuration error: it is fatal for any operation touching encrypted fields
	// and cannot be retried without operator intervention.
	// Recommended to map to HTTP 500 Internal Server Error.
	ErrSecretNotConfigured = errors.New("encryption secret not configured")

	// ErrDecryptFailed indicates that an encrypted field could not be decrypted.
	// Causes include tampering, a corrupted ciphertext, or a key derived for the wrong profile.
	// Callers must treat this as a per-field failure: decrypting a record degrades the failing
	// field to its zero value rather than aborting the record.
	// Recommended to map to HTTP 500 Internal Server Error when it surfaces at all.
	ErrDecryptFailed = errors.New("decryption failed")

	// ErrServerNotFound indicates that the requested MCP server is not registered for the profile.
	// Recommended to map to HTTP 404 Not Found.
	ErrServerNotFound = errors.New("server not found")

	// ErrSessionNotFound indicates that the requested playground session does not exist.
	// Recommended to map to HTTP 404 Not Found.
	ErrSessionNotFound = errors.New("session not found")

	// ErrFetchFailed indicates that fetching session logs failed.
	// This is a transient failure: the poller absorbs it into its backoff policy and it is
	// never surfaced as fatal to the end user.
	// Recommended to map to HTTP 502 Bad Gateway.
	ErrFetchFailed = errors.New("log fetch failed")

	// ErrHealthNotTracked indicates that health monitoring is not enabled for the specified server.
	// This occurs when trying to get health status for a server that isn't being monitored.
	// Recommended to map to HTTP 404 Not Found.
	ErrHealthNotTracked = errors.New("server health is not being tracked")

	// ErrShareInvalid indicates that a shared server template failed schema validation on import.
	// Recommended to map to HTTP 400 Bad Request.
	ErrShareInvalid = errors.New("shared server template is invalid")
)
