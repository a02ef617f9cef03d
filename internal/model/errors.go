package model

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound marks a missing doctor, appointment or record. Views render
	// it as an empty state, not a blocking error.
	ErrNotFound = errors.New("medicare: not found")

	// ErrForbidden marks an entity the caller may see exists but not act on.
	ErrForbidden = errors.New("medicare: forbidden")

	// ErrSessionExpired is returned to every in-flight call whose response
	// came back unauthorized. The gateway has already torn the session down
	// by the time a caller sees it.
	ErrSessionExpired = errors.New("medicare: session expired")
)

// ValidationError reports a payload the backend (or client-side precheck)
// rejected. Surfaced inline near the offending field.
type ValidationError struct {
	Detail string
}

func (e *ValidationError) Error() string {
	return "medicare: validation failed: " + e.Detail
}

// AuthError reports a credential mismatch at login or registration. The
// detail is for logs; views show a generic invalid-credentials message.
type AuthError struct {
	Detail string
}

func (e *AuthError) Error() string {
	return "medicare: authentication failed: " + e.Detail
}

// TransientError reports a request that failed before reaching the backend
// or timed out. Never retried automatically; views offer a retry affordance.
type TransientError struct {
	Op  string
	Err error
}

func (e *TransientError) Error() string {
	return fmt.Sprintf("medicare: %s: %v", e.Op, e.Err)
}

func (e *TransientError) Unwrap() error { return e.Err }
