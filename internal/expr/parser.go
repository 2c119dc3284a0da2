package expr

import (
	"fmt"

	builderrors "github.com/Semantic-Infrastructure-Lab/tiacad/internal/errors"
)

// parser is a recursive-descent / precedence-climbing parser for the
// arithmetic + comparison + boolean grammar. Precedence, low to high:
//
//	|| && (boolean or/and)
//	== != < <= > >=        (comparison, non-chaining)
//	+ -                    (additive)
//	* / %                  (multiplicative)
//	unary - !
//	**                     (right-associative, binds tighter than unary -)
//	call / paren / literal
type parser struct {
	lex  *lexer
	cur  token
	expr string
}

func parse(exprText string) (node, error) {
	p := &parser{lex: newLexer(exprText), expr: exprText}
	if err := p.advance(); err != nil {
		return nil, err
	}
	n, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if p.cur.kind != tokEOF {
		return nil, builderrors.New(builderrors.ParseError, exprText).WithCause(fmt.Errorf("unexpected token %q", p.cur.text))
	}
	return n, nil
}

func (p *parser) advance() error {
	t, err := p.lex.next()
	if err != nil {
		return builderrors.New(builderrors.ParseError, p.expr).WithCause(err)
	}
	p.cur = t
	return nil
}

func (p *parser) expectOp(op string) bool {
	return p.cur.kind == tokOp && p.cur.text == op
}

func (p *parser) parseOr() (node, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.expectOp("||") {
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = binaryNode{op: "||", left: left, right: right}
	}
	return left, nil
}

func (p *parser) parseAnd() (node, error) {
	left, err := p.parseComparison()
	if err != nil {
		return nil, err
	}
	for p.expectOp("&&") {
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseComparison()
		if err != nil {
			return nil, err
		}
		left = binaryNode{op: "&&", left: left, right: right}
	}
	return left, nil
}

var comparisonOps = map[string]bool{"<": true, "<=": true, ">": true, ">=": true, "==": true, "!=": true}

func (p *parser) parseComparison() (node, error) {
	left, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}
	if p.cur.kind == tokOp && comparisonOps[p.cur.text] {
		op := p.cur.text
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseAdditive()
		if err != nil {
			return nil, err
		}
		return binaryNode{op: op, left: left, right: right}, nil
	}
	return left, nil
}

func (p *parser) parseAdditive() (node, error) {
	left, err := p.parseMultiplicative()
	if err != nil {
		return nil, err
	}
	for p.cur.kind == tokOp && (p.cur.text == "+" || p.cur.text == "-") {
		op := p.cur.text
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseMultiplicative()
		if err != nil {
			return nil, err
		}
		left = binaryNode{op: op, left: left, right: right}
	}
	return left, nil
}

func (p *parser) parseMultiplicative() (node, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for p.cur.kind == tokOp && (p.cur.text == "*" || p.cur.text == "/" || p.cur.text == "%") {
		op := p.cur.text
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = binaryNode{op: op, left: left, right: right}
	}
	return left, nil
}

func (p *parser) parseUnary() (node, error) {
	if p.cur.kind == tokOp && (p.cur.text == "-" || p.cur.text == "+" || p.cur.text == "!") {
		op := p.cur.text
		if err := p.advance(); err != nil {
			return nil, err
		}
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		if op == "+" {
			return operand, nil
		}
		return unaryNode{op: op, operand: operand}, nil
	}
	return p.parsePower()
}

// parsePower handles **, right-associative, binding tighter than the unary
// minus that wraps it (so "-2**2" parses as "-(2**2)", per SPEC_FULL.md
// §4.1).
func (p *parser) parsePower() (node, error) {
	left, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	if p.expectOp("**") {
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return binaryNode{op: "**", left: left, right: right}, nil
	}
	return left, nil
}

func (p *parser) parsePrimary() (node, error) {
	switch p.cur.kind {
	case tokNumber:
		v := p.cur.num
		if err := p.advance(); err != nil {
			return nil, err
		}
		return numberNode{value: v}, nil
	case tokLParen:
		if err := p.advance(); err != nil {
			return nil, err
		}
		n, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		if p.cur.kind != tokRParen {
			return nil, builderrors.New(builderrors.ParseError, p.expr).WithCause(fmt.Errorf("missing closing parenthesis"))
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		return n, nil
	case tokIdent:
		name := p.cur.text
		if err := p.advance(); err != nil {
			return nil, err
		}
		if p.cur.kind == tokLParen {
			return p.parseCall(name)
		}
		return identNode{name: name}, nil
	default:
		return nil, builderrors.New(builderrors.ParseError, p.expr).WithCause(fmt.Errorf("unexpected token %q", p.cur.text))
	}
}

func (p *parser) parseCall(fn string) (node, error) {
	if err := p.advance(); err != nil { // consume '('
		return nil, err
	}
	var args []node
	if p.cur.kind != tokRParen {
		for {
			arg, err := p.parseOr()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
			if p.cur.kind == tokComma {
				if err := p.advance(); err != nil {
					return nil, err
				}
				continue
			}
			break
		}
	}
	if p.cur.kind != tokRParen {
		return nil, builderrors.New(builderrors.ParseError, p.expr).WithCause(fmt.Errorf("missing closing parenthesis in call to %s", fn))
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	return callNode{fn: fn, args: args}, nil
}
