// Package lexer turns source bytes into a flat slice of positioned
// tokens for a small statically-typed language.
package lexer

import "github.com/stark-lang/starkc/internal/source"

// Kind represents a token kind. The set is fixed and closed: this
// language has no user-extensible operators or literal forms.
type Kind int

const (
	EOF Kind = iota
	ILLEGAL

	IDENT
	INT_LITERAL

	KW_DEF
	KW_FN
	KW_MODULE

	LPAREN
	RPAREN
	LBRACE
	RBRACE
	SEMICOLON
	COMMA

	ASSIGN_CONST // :
	ASSIGN_VAR   // =
	ASSIGN_BODY  // =>

	PLUS
	MINUS
	STAR
	SLASH
	CARET
)

var kindNames = [...]string{
	EOF:          "EOF",
	ILLEGAL:      "ILLEGAL",
	IDENT:        "IDENT",
	INT_LITERAL:  "INT_LITERAL",
	KW_DEF:       "KW_DEF",
	KW_FN:        "KW_FN",
	KW_MODULE:    "KW_MODULE",
	LPAREN:       "LPAREN",
	RPAREN:       "RPAREN",
	LBRACE:       "LBRACE",
	RBRACE:       "RBRACE",
	SEMICOLON:    "SEMICOLON",
	COMMA:        "COMMA",
	ASSIGN_CONST: "ASSIGN_CONST",
	ASSIGN_VAR:   "ASSIGN_VAR",
	ASSIGN_BODY:  "ASSIGN_BODY",
	PLUS:         "PLUS",
	MINUS:        "MINUS",
	STAR:         "STAR",
	SLASH:        "SLASH",
	CARET:        "CARET",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "Kind(" + itoa(int(k)) + ")"
}

// keywords maps reserved identifiers to their keyword kind. "module"
// is looked up through the same table as "def" and "fn": it is a
// keyword, not a separately tokenized construct.
var keywords = map[string]Kind{
	"def":    KW_DEF,
	"fn":     KW_FN,
	"module": KW_MODULE,
}

// Token is a single lexical token with its source span. Lit borrows
// directly from the Source's byte buffer; no token allocates its own
// copy of its lexeme.
type Token struct {
	Kind Kind
	Lit  string
	Span source.Span
}

// FormatToken renders a token the way tests and parser error messages
// print it: kind and quoted lexeme, e.g. `IDENT "foo"`.
func FormatToken(t Token) string {
	return t.Kind.String() + " " + quote(t.Lit)
}

func quote(s string) string {
	b := make([]byte, 0, len(s)+2)
	b = append(b, '"')
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '"' || c == '\\' {
			b = append(b, '\\')
		}
		b = append(b, c)
	}
	b = append(b, '"')
	return string(b)
}

func itoa(v int) string {
	if v == 0 {
		return "0"
	}
	neg := false
	if v < 0 {
		neg = true
		v = -v
	}
	var buf [20]byte
	idx := len(buf)
	for v > 0 {
		idx--
		buf[idx] = byte('0' + v%10)
		v /= 10
	}
	if neg {
		idx--
		buf[idx] = '-'
	}
	return string(buf[idx:])
}
