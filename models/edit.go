package models

import (
	"fmt"
	"strings"
)

// EditField enumerates the fields of a pending bet that may be edited.
// A closed set rather than string-keyed dispatch so every consumer switches
// exhaustively over the same kinds.
type EditField string

const (
	EditFieldBookmaker  EditField = "bookmaker"
	EditFieldSport      EditField = "sport"
	EditFieldBetName    EditField = "betname"
	EditFieldBackOdds   EditField = "backodds"
	EditFieldFairOdds   EditField = "fairodds"
	EditFieldStake      EditField = "stake"
	EditFieldCommission EditField = "commission"
)

// ParseEditField maps a caller-supplied field name onto the closed set,
// case-insensitively. Unknown names fail with ErrInvalidField.
func ParseEditField(name string) (EditField, error) {
	switch EditField(strings.ToLower(strings.TrimSpace(name))) {
	case EditFieldBookmaker:
		return EditFieldBookmaker, nil
	case EditFieldSport:
		return EditFieldSport, nil
	case EditFieldBetName:
		return EditFieldBetName, nil
	case EditFieldBackOdds:
		return EditFieldBackOdds, nil
	case EditFieldFairOdds:
		return EditFieldFairOdds, nil
	case EditFieldStake:
		return EditFieldStake, nil
	case EditFieldCommission:
		return EditFieldCommission, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidField, name)
}

// IsNumeric reports whether the field's value is parsed as a number
func (f EditField) IsNumeric() bool {
	switch f {
	case EditFieldBackOdds, EditFieldFairOdds, EditFieldStake, EditFieldCommission:
		return true
	}
	return false
}
