// Package parser builds an arena-indexed AST from a token stream using
// iterative re-rooting instead of recursive-descent precedence
// climbing: each binary operator is spliced into the tree in place by
// walking up from the most recently parsed node to the point where it
// belongs, rather than by returning nested function calls.
package parser

import (
	"fmt"

	"github.com/stark-lang/starkc/internal/ast"
	"github.com/stark-lang/starkc/internal/lexer"
	"github.com/stark-lang/starkc/internal/source"
)

// Parser walks a fixed token slice, building nodes into a single
// Arena. There is no backtracking: every helper either advances or
// returns a fatal ParseError.
type Parser struct {
	src     *source.Source
	toks    []lexer.Token
	pos     int
	arena   *ast.Arena
	defSeen bool
}

// Parse builds a complete AST from toks, or stops at the first fatal
// ParseError.
func Parse(src *source.Source, toks []lexer.Token) (*ast.Arena, *ParseError) {
	p := &Parser{src: src, toks: toks, arena: ast.NewArena()}
	if err := p.parseModule(); err != nil {
		return nil, err
	}
	return p.arena, nil
}

func (p *Parser) cur() lexer.Token {
	return p.peek(0)
}

func (p *Parser) peek(k int) lexer.Token {
	idx := p.pos + k
	if idx >= len(p.toks) {
		idx = len(p.toks) - 1
	}
	return p.toks[idx]
}

func (p *Parser) advance() lexer.Token {
	tok := p.cur()
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	return tok
}

func (p *Parser) expect(kind lexer.Kind) (lexer.Token, *ParseError) {
	tok := p.cur()
	if tok.Kind != kind {
		return lexer.Token{}, p.unexpected(tok)
	}
	return p.advance(), nil
}

func (p *Parser) unexpected(tok lexer.Token) *ParseError {
	if tok.Kind == lexer.EOF {
		return p.errorf(ErrUnexpectedEndOfFile, tok, "unexpected end of file")
	}
	return p.errorf(ErrUnexpectedToken, tok, "unexpected token "+lexer.FormatToken(tok))
}

func (p *Parser) errorf(code string, tok lexer.Token, message string) *ParseError {
	return &ParseError{Code: code, Message: message, File: p.src.Path, Span: tok.Span}
}

// parseModule consumes an optional "module" declaration followed by
// zero or more top-level "def" declarations. A second module
// declaration anywhere, or a first one that arrives after a
// definition has already been parsed, is fatal: spec §9 requires
// "module" to appear at most once and before any definition.
func (p *Parser) parseModule() *ParseError {
	root := p.arena.Root()
	for p.cur().Kind != lexer.EOF {
		switch p.cur().Kind {
		case lexer.KW_MODULE:
			if err := p.parseModuleHeader(); err != nil {
				return err
			}
		case lexer.KW_DEF:
			decl, err := p.parseDecl()
			if err != nil {
				return err
			}
			p.arena.AddChild(root, decl)
			p.defSeen = true
		default:
			return p.unexpected(p.cur())
		}
	}
	return nil
}

func (p *Parser) parseModuleHeader() *ParseError {
	kwTok, err := p.expect(lexer.KW_MODULE)
	if err != nil {
		return err
	}
	if p.arena.Get(p.arena.Root()).Name != "" {
		return p.errorf(ErrDuplicateModuleDeclaration, kwTok, "duplicate module declaration")
	}
	if p.defSeen {
		return p.errorf(ErrDuplicateModuleDeclaration, kwTok, "module declaration must appear before any definition")
	}
	name, err := p.expect(lexer.IDENT)
	if err != nil {
		return err
	}
	if _, err := p.expect(lexer.SEMICOLON); err != nil {
		return err
	}
	p.arena.Get(p.arena.Root()).Name = name.Lit
	return nil
}

// parseDecl parses "def" IDENT (":" | "=") expr ";" and returns the
// built DefConstant/DefVariable node, detached (Parent == NoParent):
// the caller attaches it to whichever Module or Block it belongs in.
func (p *Parser) parseDecl() (ast.NodeIndex, *ParseError) {
	defTok, err := p.expect(lexer.KW_DEF)
	if err != nil {
		return 0, err
	}
	name, err := p.expect(lexer.IDENT)
	if err != nil {
		return 0, err
	}

	var kind ast.Kind
	switch p.cur().Kind {
	case lexer.ASSIGN_CONST:
		kind = ast.DefConstant
		p.advance()
	case lexer.ASSIGN_VAR:
		kind = ast.DefVariable
		p.advance()
	default:
		return 0, p.unexpected(p.cur())
	}

	value, err := p.parseExpr()
	if err != nil {
		return 0, err
	}
	semi, err := p.expect(lexer.SEMICOLON)
	if err != nil {
		return 0, err
	}

	decl := p.arena.Add(ast.Node{Kind: kind, Name: name.Lit, Parent: ast.NoParent, Span: source.Span{Start: defTok.Span.Start, End: semi.Span.End}})
	p.arena.Reparent(value, decl)
	return decl, nil
}

// parseBlock parses "{" stmt* "}". It returns the built Block node,
// detached.
func (p *Parser) parseBlock() (ast.NodeIndex, *ParseError) {
	open, err := p.expect(lexer.LBRACE)
	if err != nil {
		return 0, err
	}
	block := p.arena.Add(ast.Node{Kind: ast.Block, Parent: ast.NoParent})
	for p.cur().Kind != lexer.RBRACE {
		if p.cur().Kind == lexer.EOF {
			return 0, p.unexpected(p.cur())
		}
		stmt, err := p.parseStatement()
		if err != nil {
			return 0, err
		}
		p.arena.AddChild(block, stmt)
	}
	closeTok, err := p.expect(lexer.RBRACE)
	if err != nil {
		return 0, err
	}
	p.arena.Get(block).Span = source.Span{Start: open.Span.Start, End: closeTok.Span.End}
	return block, nil
}

// parseStatement parses one statement: another definition, a nested
// block, or a bare expression ending in ";". It is used both for
// statements inside a block and for a function's body, which per spec
// §4.4.3 is "a single statement (typically a block)" rather than a
// block specifically.
func (p *Parser) parseStatement() (ast.NodeIndex, *ParseError) {
	switch p.cur().Kind {
	case lexer.KW_DEF:
		return p.parseDecl()
	case lexer.LBRACE:
		return p.parseBlock()
	default:
		return p.parseExprStatement()
	}
}

func (p *Parser) parseExprStatement() (ast.NodeIndex, *ParseError) {
	start := p.cur()
	root, err := p.parseExpr()
	if err != nil {
		return 0, err
	}
	end, err := p.expect(lexer.SEMICOLON)
	if err != nil {
		return 0, err
	}
	stmt := p.arena.Add(ast.Node{Kind: ast.Expression, Parent: ast.NoParent, Span: source.Span{Start: start.Span.Start, End: end.Span.End}})
	p.arena.Reparent(root, stmt)
	return stmt, nil
}

var binaryOps = map[lexer.Kind]ast.OpKind{
	lexer.ASSIGN_VAR: ast.OpAssign,
	lexer.PLUS:       ast.OpAdd,
	lexer.MINUS:      ast.OpSub,
	lexer.STAR:       ast.OpMul,
	lexer.SLASH:      ast.OpDiv,
	lexer.CARET:      ast.OpPow,
}

// parseExpr parses one expression via iterative re-rooting: a primary
// is parsed first, then for every following binary operator, the
// insertion point (pivot) is found by climbing from the most recently
// parsed node up through parents whose operator binds at least as
// tightly as the incoming one (strictly tighter when the incoming
// operator is right-associative), and a new Operation node is spliced
// in above the pivot with the pivot as its left child and the next
// primary as its right child.
func (p *Parser) parseExpr() (ast.NodeIndex, *ParseError) {
	cursor, err := p.parsePrimary()
	if err != nil {
		return 0, err
	}
	root := cursor

	for {
		op, ok := binaryOps[p.cur().Kind]
		if !ok {
			break
		}
		p.advance()
		opPrec := op.Precedence()

		pivot := cursor
		for {
			parent := p.arena.Get(pivot).Parent
			if parent == ast.NoParent {
				break
			}
			parentPrec := p.arena.Get(parent).Op.Precedence()
			if parentPrec > opPrec || (parentPrec == opPrec && !op.RightAssociative()) {
				pivot = parent
				continue
			}
			break
		}

		parentOfPivot := p.arena.Get(pivot).Parent
		newOp := p.arena.Add(ast.Node{Kind: ast.Operation, Op: op, Parent: ast.NoParent})
		p.arena.Reparent(pivot, newOp)
		if parentOfPivot == ast.NoParent {
			root = newOp
		} else {
			p.arena.Reparent(newOp, parentOfPivot)
		}

		right, err := p.parsePrimary()
		if err != nil {
			return 0, err
		}
		p.arena.Reparent(right, newOp)
		cursor = right
	}
	return root, nil
}

// parsePrimary parses the Value-precedence leaves of an expression: an
// integer literal, an identifier, a parenthesized sub-expression, or a
// function literal. The returned node is always detached (Parent ==
// NoParent); parseExpr attaches it as it builds Operation nodes above
// it.
func (p *Parser) parsePrimary() (ast.NodeIndex, *ParseError) {
	tok := p.cur()
	switch tok.Kind {
	case lexer.INT_LITERAL:
		p.advance()
		return p.parseIntegerLiteral(tok)
	case lexer.IDENT:
		p.advance()
		return p.arena.Add(ast.Node{Kind: ast.Identifier, Name: tok.Lit, Parent: ast.NoParent, Span: tok.Span}), nil
	case lexer.LPAREN:
		p.advance()
		inner, err := p.parseExpr()
		if err != nil {
			return 0, err
		}
		if _, err := p.expect(lexer.RPAREN); err != nil {
			return 0, err
		}
		return inner, nil
	case lexer.KW_FN:
		return p.parseFunction()
	case lexer.EOF:
		return 0, p.errorf(ErrUnexpectedEndOfFile, tok, "expected an expression, found end of file")
	default:
		return 0, p.errorf(ErrUnexpectedToken, tok, "expected an expression, found "+lexer.FormatToken(tok))
	}
}

// parseIntegerLiteral converts a digit run to int64 by repeated
// multiply-and-add, rejecting overflow the moment the accumulator
// fails to grow monotonically.
func (p *Parser) parseIntegerLiteral(tok lexer.Token) (ast.NodeIndex, *ParseError) {
	var acc int64
	for i := 0; i < len(tok.Lit); i++ {
		prev := acc
		acc = acc*10 + int64(tok.Lit[i]-'0')
		if acc < prev {
			return 0, p.errorf(ErrIntegerOverflow, tok, fmt.Sprintf("integer literal %q overflows a 64-bit integer", tok.Lit))
		}
	}
	return p.arena.Add(ast.Node{Kind: ast.IntegerLiteral, IntValue: acc, Parent: ast.NoParent, Span: tok.Span}), nil
}

// parseFunction parses "fn" "(" paramList? ")" returnType? "=>" stmt.
// The body is any statement per spec §4.4.3 ("typically a block" but
// not required to be one), so a bare expression body like
// "fn() => x + 1;" is accepted alongside a block body.
func (p *Parser) parseFunction() (ast.NodeIndex, *ParseError) {
	fnTok, err := p.expect(lexer.KW_FN)
	if err != nil {
		return 0, err
	}
	if _, err := p.expect(lexer.LPAREN); err != nil {
		return 0, err
	}

	fn := p.arena.Add(ast.Node{Kind: ast.Function, Parent: ast.NoParent})
	numParams := 0
	for p.cur().Kind != lexer.RPAREN {
		param, err := p.parseParameter()
		if err != nil {
			return 0, err
		}
		p.arena.AddChild(fn, param)
		numParams++
		if p.cur().Kind == lexer.COMMA {
			p.advance()
			continue
		}
		break
	}
	if _, err := p.expect(lexer.RPAREN); err != nil {
		return 0, err
	}

	returnType := ""
	if p.cur().Kind == lexer.IDENT {
		returnType = p.advance().Lit
	}

	if _, err := p.expect(lexer.ASSIGN_BODY); err != nil {
		return 0, err
	}
	body, err := p.parseStatement()
	if err != nil {
		return 0, err
	}
	p.arena.AddChild(fn, body)

	n := p.arena.Get(fn)
	n.Name = returnType
	n.NumParams = numParams
	n.Span = source.Span{Start: fnTok.Span.Start, End: p.arena.Get(body).Span.End}
	return fn, nil
}

// parseParameter parses IDENT "=" IDENT. A parameter name not followed
// by a type annotation is fatal, reported at the parameter's own span
// rather than at the point the type was expected.
func (p *Parser) parseParameter() (ast.NodeIndex, *ParseError) {
	name, err := p.expect(lexer.IDENT)
	if err != nil {
		return 0, err
	}
	if p.cur().Kind != lexer.ASSIGN_VAR {
		return 0, p.errorf(ErrParameterWithoutType, name, "parameter \""+name.Lit+"\" has no type annotation")
	}
	p.advance()
	typ, err := p.expect(lexer.IDENT)
	if err != nil {
		return 0, err
	}
	param := p.arena.Add(ast.Node{Kind: ast.Identifier, Name: name.Lit, Parent: ast.NoParent, Span: name.Span})
	typNode := p.arena.Add(ast.Node{Kind: ast.Identifier, Name: typ.Lit, Parent: ast.NoParent, Span: typ.Span})
	p.arena.AddChild(param, typNode)
	return param, nil
}
