// Package parser implements a hand-written, precedence-climbing
// recursive-descent parser that turns a token stream from
// internal/lexer into an internal/ast syntax tree.
package parser

import (
	"fmt"
	"strings"

	"github.com/nasedkinpv/numr"
	"github.com/nasedkinpv/numr/internal/ast"
	"github.com/nasedkinpv/numr/internal/lexer"
	"github.com/nasedkinpv/numr/internal/unit"
)

// Error reports a parse error with a source span and a categorical
// kind, so callers (and tests) can match on Kind without string
// comparison.
type Error struct {
	Kind    ErrorKind
	Span    ast.Span
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("parse error at %d:%d: %s", e.Span.Start, e.Span.End, e.Message)
}

// ErrorKind categorizes a parse Error.
type ErrorKind int

const (
	UnexpectedToken ErrorKind = iota
	UnterminatedGroup
	EmptyInput
)

// reserved words cannot be used as plain identifiers.
var reserved = map[string]bool{
	"of": true, "in": true, "to": true,
	"sum": true, "avg": true, "min": true, "max": true,
	"sqrt": true, "abs": true, "round": true, "floor": true, "ceil": true,
}

// ParseLine parses one line of source into a Stmt. An empty or
// comment-only line yields *ast.EmptyStmt.
func ParseLine(src string) (ast.Stmt, error) {
	toks, err := lexer.Tokenize(src)
	if err != nil {
		le := err.(*lexer.Error)
		return nil, &Error{Kind: UnexpectedToken, Span: ast.Span{Start: le.Offset, End: le.Offset}, Message: le.Message}
	}
	p := &parser{toks: filterComments(toks)}
	return p.parseLine()
}

func filterComments(toks []lexer.Token) []lexer.Token {
	out := make([]lexer.Token, 0, len(toks))
	for _, t := range toks {
		if t.Kind == lexer.Comment {
			continue
		}
		out = append(out, t)
	}
	return out
}

type parser struct {
	toks []lexer.Token
	pos  int
}

func (p *parser) cur() lexer.Token  { return p.toks[p.pos] }
func (p *parser) atEOF() bool       { return p.cur().Kind == lexer.EOF }
func (p *parser) advance() lexer.Token {
	t := p.toks[p.pos]
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	return t
}

func (p *parser) errf(format string, args ...any) error {
	return &Error{
		Kind:    UnexpectedToken,
		Span:    ast.Span{Start: p.cur().Start, End: p.cur().End},
		Message: fmt.Sprintf(format, args...),
	}
}

func (p *parser) parseLine() (ast.Stmt, error) {
	if p.atEOF() {
		return &ast.EmptyStmt{Sp: ast.Span{}}, nil
	}

	// Continuation: line begins with a binary operator. '-' is
	// deliberately excluded here even though it is also an additive
	// operator: a leading '-' parses as unary negation of a bare
	// expression ("-5" means negative five). The continuation trigger
	// set is {+, *, ·, /, ^}; including '-' would make it ambiguous
	// between "continue by subtracting" and "negate" with no lookahead
	// benefit, so unary negation wins.
	if t := p.cur(); t.Kind == lexer.Op && (t.Text == "+" || t.Text == "*" || t.Text == "/" || t.Text == "^" || t.Text == "·") {
		op := p.advance()
		x, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if !p.atEOF() {
			return nil, p.errf("unexpected trailing input after continuation")
		}
		return &ast.Continuation{Op: op.Text, X: x, Sp: ast.Span{Start: op.Start, End: x.Span().End}}, nil
	}

	// Assignment: IDENT '=' expr. The lexer surfaces '=' as an Op
	// token, so assignment is detected here by a non-reserved Ident
	// immediately followed by an Op token whose text is "=".
	if t := p.cur(); t.Kind == lexer.Ident && !reserved[t.Text] {
		if nxt := p.peekAt(p.pos + 1); nxt.Kind == lexer.Op && nxt.Text == "=" {
			name := p.advance().Text
			p.advance() // '='
			x, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			if !p.atEOF() {
				return nil, p.errf("unexpected trailing input after assignment")
			}
			return &ast.Assign{Name: name, X: x, Sp: ast.Span{Start: t.Start, End: x.Span().End}}, nil
		}
	}

	x, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if !p.atEOF() {
		return nil, p.errf("unexpected trailing input %q", p.cur().Text)
	}
	return &ast.ExprStmt{X: x, Sp: x.Span()}, nil
}

func (p *parser) peekAt(i int) lexer.Token {
	if i >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[i]
}

func (p *parser) parseExpr() (ast.Expr, error) { return p.parseConversion() }

// parseConversion: additive ('in'|'to' unit-or-currency-token)?
func (p *parser) parseConversion() (ast.Expr, error) {
	x, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}
	if t := p.cur(); t.Kind == lexer.Ident && (t.Text == "in" || t.Text == "to") {
		p.advance()
		target, err := p.parseConversionTarget()
		if err != nil {
			return nil, err
		}
		return &ast.Conversion{X: x, Target: target, Sp: ast.Span{Start: x.Span().Start, End: p.prevEnd()}}, nil
	}
	return x, nil
}

// parseConversionTarget reads a unit or currency token after 'in'/'to',
// chaining further "OP IDENT" pairs the same way numberAdhesion does
// for a literal's suffix, so "in km/h" and "in m/s" resolve to the
// same composed unit a quantity literal written the same way would.
func (p *parser) parseConversionTarget() (string, error) {
	t := p.cur()
	if t.Kind != lexer.Ident {
		return "", p.errf("expected a unit or currency after 'in'/'to'")
	}
	u, ok := unit.Resolve(t.Text)
	if !ok {
		p.advance()
		return t.Text, nil
	}
	p.advance()
	symbol, _ := p.chainUnits(u.Symbol)
	return symbol, nil
}

// parseAdditive: multiplicative (('+'|'-') multiplicative)*
func (p *parser) parseAdditive() (ast.Expr, error) {
	x, err := p.parseMultiplicative()
	if err != nil {
		return nil, err
	}
	for {
		t := p.cur()
		if t.Kind != lexer.Op || (t.Text != "+" && t.Text != "-") {
			return x, nil
		}
		p.advance()
		y, err := p.parseMultiplicative()
		if err != nil {
			return nil, err
		}
		x = &ast.BinaryOp{Op: t.Text, X: x, Y: y, Sp: ast.Span{Start: x.Span().Start, End: y.Span().End}}
	}
}

// parseMultiplicative: exponent (('*'|'/'|'·') exponent)*
func (p *parser) parseMultiplicative() (ast.Expr, error) {
	x, err := p.parseExponent()
	if err != nil {
		return nil, err
	}
	for {
		t := p.cur()
		if t.Kind != lexer.Op || (t.Text != "*" && t.Text != "/" && t.Text != "·") {
			return x, nil
		}
		p.advance()
		y, err := p.parseExponent()
		if err != nil {
			return nil, err
		}
		x = &ast.BinaryOp{Op: t.Text, X: x, Y: y, Sp: ast.Span{Start: x.Span().Start, End: y.Span().End}}
	}
}

// parseExponent: unary ('^' exponent)?, right-associative.
func (p *parser) parseExponent() (ast.Expr, error) {
	x, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	if t := p.cur(); t.Kind == lexer.Op && t.Text == "^" {
		p.advance()
		y, err := p.parseExponent()
		if err != nil {
			return nil, err
		}
		return &ast.Power{X: x, Y: y, Sp: ast.Span{Start: x.Span().Start, End: y.Span().End}}, nil
	}
	return x, nil
}

func (p *parser) parseUnary() (ast.Expr, error) {
	if t := p.cur(); t.Kind == lexer.Op && t.Text == "-" {
		p.advance()
		x, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &ast.UnaryOp{Op: "-", X: x, Sp: ast.Span{Start: t.Start, End: x.Span().End}}, nil
	}
	return p.parseOf()
}

// parseOf: application ('of' application)*. Percent suffix is parsed
// inside parseApplication, one precedence level above 'of', so
// `p% of x` parses as `(p%) of x` — the suffix binds to its immediate
// left operand before 'of' combines the two sides.
func (p *parser) parseOf() (ast.Expr, error) {
	x, err := p.parseApplication()
	if err != nil {
		return nil, err
	}
	for {
		t := p.cur()
		if t.Kind != lexer.Ident || t.Text != "of" {
			return x, nil
		}
		p.advance()
		y, err := p.parseApplication()
		if err != nil {
			return nil, err
		}
		x = &ast.PercentOf{Percent: x, X: y, Sp: ast.Span{Start: x.Span().Start, End: y.Span().End}}
	}
}

// parseApplication: primary (which already includes currency/unit
// adhesion for number literals), then an optional '%' postfix.
func (p *parser) parseApplication() (ast.Expr, error) {
	x, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	if t := p.cur(); t.Kind == lexer.Percent {
		p.advance()
		x = &ast.PercentSuffix{X: x, Sp: ast.Span{Start: x.Span().Start, End: t.End}}
	}
	return x, nil
}

func (p *parser) prevEnd() int {
	if p.pos == 0 {
		return p.toks[0].Start
	}
	return p.toks[p.pos-1].End
}

func (p *parser) parsePrimary() (ast.Expr, error) {
	t := p.cur()
	switch {
	case t.Kind == lexer.Number:
		p.advance()
		return p.numberAdhesion(t)

	case t.Kind == lexer.Ident:
		return p.identPrimary(t)

	case t.Kind == lexer.LParen:
		p.advance()
		x, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if p.cur().Kind != lexer.RParen {
			return nil, &Error{Kind: UnterminatedGroup, Span: ast.Span{Start: t.Start, End: p.cur().End}, Message: "unterminated '('"}
		}
		close := p.advance()
		return &ast.Group{X: x, Sp: ast.Span{Start: t.Start, End: close.End}}, nil

	default:
		return nil, p.errf("unexpected token %q", t.Text)
	}
}

// numberAdhesion handles the suffix forms that attach directly to a
// number literal: a currency code ("100 USD"), or one or more unit
// tokens chained with '*'/'/'/'·' ("5 km", "100 km/h").
func (p *parser) numberAdhesion(num lexer.Token) (ast.Expr, error) {
	t := p.cur()
	if t.Kind != lexer.Ident {
		return &ast.NumberLit{Value: num.Value, Sp: ast.Span{Start: num.Start, End: num.End}}, nil
	}
	if c, ok := tryCurrency(t.Text); ok {
		p.advance()
		return &ast.MoneyLit{Currency: c, Amount: num.Value, Sp: ast.Span{Start: num.Start, End: t.End}}, nil
	}
	if sym, ok := unit.Resolve(t.Text); ok {
		p.advance()
		symbol, end := p.chainUnits(sym.Symbol)
		return &ast.QuantityLit{Magnitude: num.Value, Unit: symbol, Sp: ast.Span{Start: num.Start, End: end}}, nil
	}
	return &ast.NumberLit{Value: num.Value, Sp: ast.Span{Start: num.Start, End: num.End}}, nil
}

// chainUnits greedily consumes "OP IDENT" pairs where IDENT resolves
// as a unit, composing a compound-unit symbol string
// ("km" '/' "h" -> "km/h"). It stops at the first operator whose
// right-hand side is not itself a resolvable unit, so an ordinary
// multiplicative expression like "5 km / 2" is left alone.
func (p *parser) chainUnits(symbol string) (string, int) {
	end := p.prevTokenEnd()
	for {
		opTok := p.cur()
		if opTok.Kind != lexer.Op || (opTok.Text != "*" && opTok.Text != "/" && opTok.Text != "·") {
			return symbol, end
		}
		nextTok := p.peekAt(p.pos + 1)
		if nextTok.Kind != lexer.Ident {
			return symbol, end
		}
		u, ok := unit.Resolve(nextTok.Text)
		if !ok {
			return symbol, end
		}
		p.advance() // operator
		p.advance() // unit ident
		symbol = symbol + opTok.Text + u.Symbol
		end = nextTok.End
	}
}

func (p *parser) prevTokenEnd() int {
	if p.pos == 0 {
		return 0
	}
	return p.toks[p.pos-1].End
}

func (p *parser) identPrimary(t lexer.Token) (ast.Expr, error) {
	// Currency symbol prefix, e.g. "$100".
	if c, ok := tryCurrency(t.Text); ok {
		if nxt := p.peekAt(p.pos + 1); nxt.Kind == lexer.Number {
			p.advance() // symbol
			num := p.advance()
			return &ast.MoneyLit{Currency: c, Amount: num.Value, Sp: ast.Span{Start: t.Start, End: num.End}}, nil
		}
	}

	p.advance()
	if t.Text == "_" || strings.EqualFold(t.Text, "ANS") {
		return &ast.Ident{Name: "_", Sp: ast.Span{Start: t.Start, End: t.End}}, nil
	}
	if p.cur().Kind == lexer.LParen {
		return p.call(t)
	}
	return &ast.Ident{Name: t.Text, Sp: ast.Span{Start: t.Start, End: t.End}}, nil
}

func (p *parser) call(name lexer.Token) (ast.Expr, error) {
	p.advance() // '('
	var args []ast.Expr
	if p.cur().Kind != lexer.RParen {
		for {
			arg, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
			if p.cur().Kind == lexer.Comma {
				p.advance()
				continue
			}
			break
		}
	}
	if p.cur().Kind != lexer.RParen {
		return nil, &Error{Kind: UnterminatedGroup, Span: ast.Span{Start: name.Start, End: p.cur().End}, Message: "unterminated argument list"}
	}
	close := p.advance()
	return &ast.Call{Name: name.Text, Args: args, Sp: ast.Span{Start: name.Start, End: close.End}}, nil
}

// tryCurrency reports whether tok denotes a known currency symbol or
// code, returning its canonical code string.
func tryCurrency(tok string) (string, bool) {
	c, err := numr.ParseCurr(tok)
	if err != nil || c == numr.XXX {
		return "", false
	}
	return c.Code(), true
}
