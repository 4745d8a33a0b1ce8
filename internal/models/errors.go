package models

import (
	"errors"
	"fmt"
)

// Sentinel errors for entity lookups and constraint violations.
var (
	ErrNotFound     = errors.New("record not found")
	ErrDuplicateKey = errors.New("duplicate key")
)

// Sentinel errors raised by the data-access guard. Each is wrapped with the
// entity name at the raise site; callers match with errors.Is.
var (
	// ErrOwnershipMismatch: create payload names an owner other than the
	// current principal.
	ErrOwnershipMismatch = errors.New("ownership mismatch on create")

	// ErrUnauthorizedUpdate / ErrUnauthorizedDelete: the record being
	// mutated is owned by a different principal.
	ErrUnauthorizedUpdate = errors.New("unauthorized update")
	ErrUnauthorizedDelete = errors.New("unauthorized delete")

	// ErrUnauthorizedRead: a single-record read returned a record owned
	// by a different principal.
	ErrUnauthorizedRead = errors.New("unauthorized read")

	// ErrMissingOwnerFilter: a list query was issued without an owner
	// filter key in its where clause.
	ErrMissingOwnerFilter = errors.New("missing owner filter")

	// ErrAuditFailed: the mutation succeeded but its audit entry could
	// not be written. The mutation stands; the trail is incomplete.
	ErrAuditFailed = errors.New("audit write failed")
)

// Sentinel errors for request validation.
var (
	ErrMissingName     = errors.New("name is required")
	ErrMissingClient   = errors.New("client_id is required")
	ErrMissingContract = errors.New("contract_id is required")
	ErrMissingSubject  = errors.New("subject is required")
	ErrInvalidMonth    = errors.New("month must be between 1 and 12")
	ErrInvalidYear     = errors.New("year must be between 2000 and 2100")
	ErrContractDates   = errors.New("end_date must not precede start_date")
	ErrInvalidStatus   = errors.New("invalid status")
)

// ErrFieldTooLong builds a validation error for an oversized field.
func ErrFieldTooLong(field string, maxLen int) error {
	return fmt.Errorf("%s exceeds maximum length of %d", field, maxLen)
}

// ErrUnknownFilter builds an error for a filter key the store does not accept.
func ErrUnknownFilter(key string) error {
	return fmt.Errorf("unknown filter key %q", key)
}
