// Package common defines shared sentinel errors used across the Fortress
// server layers. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Integrity errors surfaced by store operations.
	ErrorDuplicateEmail       = errors.New("duplicate email")
	ErrorDuplicateName        = errors.New("duplicate department name")
	ErrorReferentialIntegrity = errors.New("referential integrity violation")

	// Input errors. Should normally be caught before the store is reached.
	ErrorValidation = errors.New("validation error")

	// Infrastructure errors. Details are logged, never shown to callers.
	ErrorStoreUnavailable    = errors.New("store unavailable")
	ErrorAdvisoryUnavailable = errors.New("advisory unavailable")
)
