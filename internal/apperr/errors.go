// Package apperr defines the error taxonomy shared by the YouTube client,
// the OAuth refresher, and the request handlers. Each pipeline stage returns
// its own type unchanged; only the outermost handler maps them to HTTP.
package apperr

import (
	"errors"
	"fmt"
)

// NotFoundError means an upstream lookup returned no matching entity
// (zero search results, unknown channel ID, missing playlist).
type NotFoundError struct {
	Resource string // what was looked up, e.g. "channel", "uploads playlist"
	Query    string // the identifier or query that found nothing
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found for %q", e.Resource, e.Query)
}

// UpstreamError means the video platform call itself failed: transport
// error or a non-2xx response.
type UpstreamError struct {
	Op     string // upstream endpoint, e.g. "search.list"
	Status int    // HTTP status, 0 on transport failure
	Err    error
}

func (e *UpstreamError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s: upstream returned %d", e.Op, e.Status)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// AuthError means a token refresh was rejected, or an inbound call carried
// a missing/invalid bearer token. Description carries the upstream
// error_description verbatim when one was provided.
type AuthError struct {
	Description string
}

func (e *AuthError) Error() string {
	if e.Description == "" {
		return "authentication failed"
	}
	return "authentication failed: " + e.Description
}

// ValidationError means user input was empty or malformed before any
// network call was attempted.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// NotFound reports whether err is a NotFoundError anywhere in its chain.
func NotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}
