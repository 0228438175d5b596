package lexer

import (
	"fmt"

	"github.com/stark-lang/starkc/internal/source"
)

const (
	ErrUnknownCharacter         = "E_LEX_UNKNOWN_CHARACTER"
	ErrUnterminatedBlockComment = "E_LEX_UNTERMINATED_BLOCK_COMMENT"
)

// LexError is the single fatal condition a lex pass can stop on. There
// is no accumulation: the first LexError aborts the whole pipeline.
type LexError struct {
	Code    string
	Message string
	Hint    string
	File    string
	Span    source.Span
}

func (e *LexError) Error() string {
	return fmt.Sprintf("%s %s:%d:%d: %s", e.Code, e.File, e.Span.Start.Line, e.Span.Start.Column, e.Message)
}
