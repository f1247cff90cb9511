package formula

import (
	"fmt"
	"strconv"

	"github.com/arborsoft/cellsheet/position"
)

// SyntaxError is returned by Parse when expr is not a well-formed
// formula, including a reference to a structurally invalid position.
type SyntaxError struct {
	Input string
	Msg   string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("formula syntax error in %q: %s", e.Input, e.Msg)
}

// parser is a recursive-descent, precedence-climbing parser over the
// grammar:
//
//	expr   := term (("+" | "-") term)*
//	term   := unary (("*" | "/") unary)*
//	unary  := "-" unary | primary
//	primary:= NUMBER | CELLREF | "(" expr ")"
type parser struct {
	lex   *lexer
	tok   Token
	input string
}

// Parse parses expr (the substring after the leading '=') into an AST, or
// fails with a *SyntaxError on any malformed expression, including
// references to invalid positions.
func Parse(expr string) (Node, error) {
	p := &parser{lex: newLexer(expr), input: expr}
	p.advance()
	node, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if p.tok.Type != EOF {
		return nil, p.errf("unexpected trailing input at offset %d", p.tok.Offset)
	}
	return node, nil
}

func (p *parser) advance() {
	p.tok = p.lex.nextToken()
}

func (p *parser) errf(format string, args ...any) *SyntaxError {
	return &SyntaxError{Input: p.input, Msg: fmt.Sprintf(format, args...)}
}

func (p *parser) parseExpr() (Node, error) {
	left, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	for p.tok.Type == PLUS || p.tok.Type == MINUS {
		op := BinOp(p.tok.Literal[0])
		p.advance()
		right, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		left = &BinaryNode{Op: op, X: left, Y: right}
	}
	return left, nil
}

func (p *parser) parseTerm() (Node, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for p.tok.Type == ASTERISK || p.tok.Type == SLASH {
		op := BinOp(p.tok.Literal[0])
		p.advance()
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = &BinaryNode{Op: op, X: left, Y: right}
	}
	return left, nil
}

func (p *parser) parseUnary() (Node, error) {
	if p.tok.Type == MINUS {
		p.advance()
		x, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &UnaryNode{X: x}, nil
	}
	return p.parsePrimary()
}

func (p *parser) parsePrimary() (Node, error) {
	switch p.tok.Type {
	case NUMBER:
		lit := p.tok.Literal
		p.advance()
		f, err := strconv.ParseFloat(lit, 64)
		if err != nil {
			return nil, p.errf("malformed number %q", lit)
		}
		return &NumberNode{Value: f}, nil
	case CELLREF:
		lit := p.tok.Literal
		p.advance()
		pos, err := position.Parse(lit)
		if err != nil {
			return nil, p.errf("invalid cell reference %q", lit)
		}
		return &RefNode{Pos: pos}, nil
	case LPAREN:
		p.advance()
		node, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if p.tok.Type != RPAREN {
			return nil, p.errf("expected ')' at offset %d", p.tok.Offset)
		}
		p.advance()
		return node, nil
	case ILLEGAL:
		return nil, p.errf("unexpected character %q at offset %d", p.tok.Literal, p.tok.Offset)
	default:
		return nil, p.errf("unexpected token %q at offset %d", p.tok.Literal, p.tok.Offset)
	}
}
