package konami

import (
	"errors"
	"fmt"
)

// ErrEmptyInput is returned when decoding produced no complete token groups.
var ErrEmptyInput = errors.New("konami: no complete token groups in input")

// TooManyRepeatsError is returned when more than three consecutive up or
// down tokens were read. Position is the index of the character that
// followed the fourth repeat.
type TooManyRepeatsError struct {
	Position int
}

func (e *TooManyRepeatsError) Error() string {
	return fmt.Sprintf("konami: too many repeated up/down tokens at position %d", e.Position)
}

// UnexpectedCharacterError is returned when a character has no valid
// transition from the current parser state.
type UnexpectedCharacterError struct {
	Position int
	Char     rune
}

func (e *UnexpectedCharacterError) Error() string {
	return fmt.Sprintf("konami: unexpected character %q at position %d", e.Char, e.Position)
}
