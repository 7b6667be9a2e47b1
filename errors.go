package blurhash

import "fmt"

// Kind identifies the class of a codec failure.
type Kind uint8

const (
	// KindHashTooShort: the hash has fewer than 6 characters.
	KindHashTooShort Kind = iota + 1
	// KindLengthMismatch: the hash length disagrees with its size flag.
	KindLengthMismatch
	// KindInvalidBase83: a character outside the base83 alphabet.
	KindInvalidBase83
	// KindComponentsOutOfRange: component counts outside [1, 9].
	KindComponentsOutOfRange
	// KindInvalidDimensions: zero width/height or a pixel buffer of the
	// wrong length.
	KindInvalidDimensions
)

// Error is the only error type returned by the codec.  Fields other than
// Kind are populated only for the kinds that carry them.
type Error struct {
	Kind     Kind
	Expected int  // KindLengthMismatch, KindInvalidDimensions
	Actual   int  // KindLengthMismatch, KindInvalidDimensions
	Char     byte // KindInvalidBase83
}

// Sentinels for errors.Is.  They match any *Error of the same Kind.
var (
	ErrHashTooShort         = &Error{Kind: KindHashTooShort}
	ErrLengthMismatch       = &Error{Kind: KindLengthMismatch}
	ErrInvalidBase83        = &Error{Kind: KindInvalidBase83}
	ErrComponentsOutOfRange = &Error{Kind: KindComponentsOutOfRange}
	ErrInvalidDimensions    = &Error{Kind: KindInvalidDimensions}
)

func (e *Error) Error() string {
	switch e.Kind {
	case KindHashTooShort:
		return "blurhash: hash must be at least 6 characters long"
	case KindLengthMismatch:
		return fmt.Sprintf("blurhash: length mismatch: length is %d but it should be %d", e.Actual, e.Expected)
	case KindInvalidBase83:
		return fmt.Sprintf("blurhash: invalid base83 character %q", e.Char)
	case KindComponentsOutOfRange:
		return "blurhash: components must be between 1 and 9"
	case KindInvalidDimensions:
		if e.Expected > 0 {
			return fmt.Sprintf("blurhash: pixel buffer is %d bytes, want %d", e.Actual, e.Expected)
		}
		return "blurhash: width and height must be positive"
	default:
		return fmt.Sprintf("blurhash: unknown error kind %d", e.Kind)
	}
}

// Is reports whether target is an *Error of the same Kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}
