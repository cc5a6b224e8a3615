// Package errs defines the sentinel errors returned by the dedit packages.
//
// Errors are wrapped with additional context using fmt.Errorf and the %w verb,
// so callers should match them with errors.Is rather than by equality.
package errs

import (
	"errors"
	"fmt"
)

// Index codec errors.
var (
	// ErrMalformedIndex is returned when an index is inconsistent with the buffer that holds it.
	ErrMalformedIndex = errors.New("malformed index")
	// ErrIndexOverflow is returned when a record offset does not fit the index entry width.
	ErrIndexOverflow = fmt.Errorf("%w: offset exceeds index entry width", ErrMalformedIndex)
	// ErrTruncatedRead is returned when a declared length exceeds the bytes available.
	ErrTruncatedRead = errors.New("truncated read")
)

// Macro dictionary errors.
var (
	// ErrMalformedMacroDict is returned when a macro dictionary header cannot be parsed.
	ErrMalformedMacroDict = errors.New("malformed macro dictionary")
	// ErrUnresolvableSection is returned when a present section has no closing boundary.
	ErrUnresolvableSection = fmt.Errorf("%w: unresolvable section boundary", ErrMalformedMacroDict)
	// ErrUnresolvedMacroRef is returned when a macro reference addresses a missing table entry.
	ErrUnresolvedMacroRef = errors.New("unresolved macro reference")
)

// Record codec errors.
var (
	// ErrUnencodableCharacter is returned when a character has no mapping in the selected charset.
	ErrUnencodableCharacter = errors.New("unencodable character")
	// ErrMalformedRecord is returned for invalid control-code operands or unknown DEdit tokens.
	ErrMalformedRecord = errors.New("malformed record")
	// ErrUnsupportedCharset is returned when no charset exists for a language and game pair.
	ErrUnsupportedCharset = errors.New("unsupported charset")
)

// Configuration errors.
var (
	ErrInvalidSegment = errors.New("invalid segment")
	ErrInvalidOption  = errors.New("invalid option")
)
