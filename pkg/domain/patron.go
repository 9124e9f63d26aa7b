// Package domain holds shared identifier types used across modules.
package domain

import (
	dErrors "biblio/pkg/domain-errors"
)

// PatronID is a library card number: exactly six numeric digits.
// Patrons have no stored entity of their own; everything about a patron
// is derived from their loans.
type PatronID string

// ParsePatronID validates the card-number format. The returned error carries
// the exact user-facing message every operation reports for a malformed ID.
func ParsePatronID(raw string) (PatronID, error) {
	if len(raw) != 6 {
		return "", errInvalidPatronID()
	}
	for _, c := range raw {
		if c < '0' || c > '9' {
			return "", errInvalidPatronID()
		}
	}
	return PatronID(raw), nil
}

func errInvalidPatronID() error {
	return dErrors.New(dErrors.CodeBadRequest, "Invalid patron ID. Must be exactly 6 digits.")
}

func (p PatronID) String() string {
	return string(p)
}
