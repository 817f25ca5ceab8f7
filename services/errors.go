package services

import "errors"

// Every service operation converts storage and policy faults into one of these
// before returning, handlers map them to HTTP status codes and nothing else
// crosses the HTTP boundary.
var (
	ErrNotFound       = errors.New("not found")
	ErrInvalidRequest = errors.New("invalid request")
	ErrUnauthorized   = errors.New("unauthorized")
	ErrForbidden      = errors.New("forbidden")
	ErrConflict       = errors.New("conflict")
	ErrInternal       = errors.New("internal error")
)
