// Package services defines the business logic for survey hand-off, the
// response lifecycle, reporting, the catalog and portal sign-in. This file
// centralizes service-level error values so that they can be consistently
// returned by service methods and checked by callers.
//
// Translation into user-facing messages or HTTP status codes is performed at
// the handler layer.
package services

import "errors"

// Hand-off errors.
var (
	// ErrMissingEmployee is returned when an employee id is required but absent.
	ErrMissingEmployee = errors.New("employee id is required")

	// ErrAuthUpstreamRejected is returned when the delegated authentication
	// endpoint answers with a non-2xx status or a non-ok body.
	ErrAuthUpstreamRejected = errors.New("delegated authentication rejected")

	// ErrAuthUpstreamUnavailable is returned when the delegated endpoint could
	// not be reached or answered garbage.
	ErrAuthUpstreamUnavailable = errors.New("delegated authentication unavailable")

	// ErrMissingPayload is returned when a signed payload lacks a field.
	ErrMissingPayload = errors.New("payload is incomplete")

	// ErrInvalidSignature is returned when the payload signature does not match.
	ErrInvalidSignature = errors.New("invalid signature")

	// ErrTokenExpired is returned for payloads older than the freshness window
	// or with an unreadable issue time.
	ErrTokenExpired = errors.New("payload expired")
)

// Survey lifecycle errors.
var (
	// ErrDailyLimitReached is returned when the pair already completed a
	// survey inside the daily window.
	ErrDailyLimitReached = errors.New("daily survey limit reached")

	// ErrInvalidEditToken is returned for an unknown edit token.
	ErrInvalidEditToken = errors.New("invalid edit token")

	// ErrNoSession is returned when no usable session exists and none could be
	// rebuilt from a snapshot.
	ErrNoSession = errors.New("no survey session")

	// ErrMissingResponse is returned when a session points at a response that
	// no longer exists.
	ErrMissingResponse = errors.New("survey response missing")

	// ErrMissingQuestion is returned when an answer names no question.
	ErrMissingQuestion = errors.New("question id is required")

	// ErrInvalidScore is returned for a score outside 1..10.
	ErrInvalidScore = errors.New("score must be between 1 and 10")

	// ErrReadOnly is returned when answering a completed response without
	// edit rights.
	ErrReadOnly = errors.New("response is read-only")

	// ErrInvalidIndex is returned for a negative question index.
	ErrInvalidIndex = errors.New("question index must not be negative")

	// ErrConcurrentUpdate is returned when another request saved the same
	// response first.
	ErrConcurrentUpdate = errors.New("response was modified concurrently")
)

// Reporting errors.
var (
	// ErrEmployeeNotFound is returned when a report names an unknown employee.
	ErrEmployeeNotFound = errors.New("employee not found")

	// ErrMissingSupervisor is returned when a supervisor report has no id.
	ErrMissingSupervisor = errors.New("supervisor id is required")

	// ErrInvalidRange is returned for an unparsable or inverted date range.
	ErrInvalidRange = errors.New("invalid date range")

	// ErrForbidden is returned when the caller may not see the requested scope.
	ErrForbidden = errors.New("forbidden")
)

// Catalog and portal errors.
var (
	ErrTooManyPrimary = errors.New("at most 5 questions can be primary")
	ErrMissingFields  = errors.New("required fields are missing")
	ErrInvalidField   = errors.New("field has an invalid value")
	ErrNotFound       = errors.New("not found")
	ErrBadCredentials = errors.New("bad credentials")
)

// ErrAlreadyExists is returned when a create names an id already in use.
var ErrAlreadyExists = errors.New("already exists")
