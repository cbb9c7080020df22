package services

import "errors"

// Sentinel errors for domain-level error discrimination. Services wrap these
// with a reason string so handlers can map to HTTP status codes without
// string matching. ErrNotFound is also used where revealing existence would
// leak information (e.g. deleting someone else's notification).
var (
	ErrNotFound  = errors.New("not found")
	ErrForbidden = errors.New("forbidden")
	ErrRejected  = errors.New("rejected")
)
