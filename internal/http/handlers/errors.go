// Package handlers defines HTTP-layer error codes used across all API endpoints.
//
// Codes are lowercase snake_case and stable: clients branch on them, so a
// code is never renamed once shipped. Generic codes mirror HTTP semantics;
// the rest name a specific survey, report or catalog failure. Credential
// rejections of the hand-off share auth_failed so a caller cannot tell which
// check failed; the daily limit has its own code since it reveals nothing
// about the credentials.
//
// Example response:
//
//	{
//	  "request_id": "e1b9be03-4999-4289-9f03-999b042d65d6",
//	  "code": "readonly",
//	  "message": "response is read-only"
//	}
package handlers

const (
	ErrCodeBadRequest       = "bad_request"
	ErrCodeUnauthorized     = "unauthorized"
	ErrCodeForbidden        = "forbidden"
	ErrCodeNotFound         = "not_found"
	ErrCodeConflict         = "conflict"
	ErrCodeRateLimited      = "too_many_requests"
	ErrCodeInternal         = "internal_error"
	ErrCodeMethodNotAllowed = "method_not_allowed"

	// Hand-off
	ErrCodeMissingEmployee = "missing_employee"
	ErrCodeAuthFailed      = "auth_failed"
	ErrCodeMissingPayload  = "missing_payload"
	ErrCodeDailyLimit      = "daily_limit_reached"

	// Survey lifecycle
	ErrCodeNoSession        = "no_session"
	ErrCodeInvalidEditToken = "invalid_edit_token"
	ErrCodeMissingResponse  = "missing_response"
	ErrCodeLoggedOut        = "logged_out"
	ErrCodeMissingQuestion  = "missing_question"
	ErrCodeInvalidScore     = "invalid_score"
	ErrCodeReadOnly         = "readonly"
	ErrCodeInvalidIndex     = "invalid_index"

	// Reports
	ErrCodeEmployeeNotFound  = "employee_not_found"
	ErrCodeMissingSupervisor = "missing_supervisor"
	ErrCodeInvalidRange      = "invalid_range"

	// Catalog and portal
	ErrCodeTooManyPrimary = "too_many_primary"
	ErrCodeMissingFields  = "missing_fields"
	ErrCodeInvalidField   = "invalid_field"
	ErrCodeBadCredentials = "bad_credentials"
	ErrCodeAlreadyExists  = "already_exists"
)
