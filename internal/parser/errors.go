package parser

import (
	"fmt"

	"github.com/stark-lang/starkc/internal/source"
)

const (
	ErrUnexpectedToken            = "E_PARSE_UNEXPECTED_TOKEN"
	ErrUnexpectedEndOfFile        = "E_PARSE_UNEXPECTED_EOF"
	ErrIntegerOverflow            = "E_PARSE_INTEGER_OVERFLOW"
	ErrDuplicateModuleDeclaration = "E_PARSE_DUPLICATE_MODULE_DECLARATION"
	ErrParameterWithoutType       = "E_PARSE_PARAMETER_WITHOUT_TYPE"
)

// ParseError is the single fatal condition a parse pass can stop on.
// Like LexError, there is no accumulation: the parser exits on the
// first one.
type ParseError struct {
	Code    string
	Message string
	Hint    string
	File    string
	Span    source.Span
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s %s:%d:%d: %s", e.Code, e.File, e.Span.Start.Line, e.Span.Start.Column, e.Message)
}
