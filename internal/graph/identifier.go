package graph

import (
	"errors"
	"fmt"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// MaxIdentifierLength is the maximum byte length of a graph identifier.
const MaxIdentifierLength = 255

// ErrInvalidIdentifier is returned when a string cannot be encoded as a
// graph identifier.
var ErrInvalidIdentifier = errors.New("invalid graph identifier")

// Identifier is a validated graph identifier token: the form of type names
// as they appear in vertex and edge keys of the persisted graph.
//
// A valid identifier is non-empty, at most MaxIdentifierLength bytes, and
// contains only letters, digits, dashes, and underscores. Input is NFC
// normalized before validation so that equal identifiers compare equal as
// strings regardless of the Unicode composition of their source.
type Identifier string

// ParseIdentifier validates s and returns it as an Identifier.
// Returns an error wrapping ErrInvalidIdentifier if s is empty, too long,
// or contains a character outside the identifier alphabet.
func ParseIdentifier(s string) (Identifier, error) {
	s = norm.NFC.String(s)
	if s == "" {
		return "", fmt.Errorf("%w: empty", ErrInvalidIdentifier)
	}
	if len(s) > MaxIdentifierLength {
		return "", fmt.Errorf("%w: %d bytes exceeds maximum of %d", ErrInvalidIdentifier, len(s), MaxIdentifierLength)
	}
	for _, r := range s {
		if !identifierRune(r) {
			return "", fmt.Errorf("%w: disallowed character %q", ErrInvalidIdentifier, r)
		}
	}
	return Identifier(s), nil
}

// MustIdentifier is like ParseIdentifier but panics on failure.
// It is used by type descriptor construction, where an unencodable name is
// a programmer error: type names are validated at definition time upstream.
func MustIdentifier(s string) Identifier {
	id, err := ParseIdentifier(s)
	if err != nil {
		panic(err)
	}
	return id
}

func identifierRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' || r == '_'
}

// String returns the identifier as a plain string.
func (i Identifier) String() string {
	return string(i)
}
