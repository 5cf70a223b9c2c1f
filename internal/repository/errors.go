package repository

import "errors"

// Sentinel errors returned by repositories. Services translate these into
// API-facing error kinds.
var (
	ErrNotFound       = errors.New("record not found")
	ErrDuplicate      = errors.New("identifier already exists")
	ErrAlreadyMatched = errors.New("participant already matched")
	ErrNotMatched     = errors.New("participant not matched")
	ErrSelfMatch      = errors.New("participant cannot match itself")
)
