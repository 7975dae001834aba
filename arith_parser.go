package lsystem

import "github.com/pkg/errors"

// ArithParser builds expression trees out of ArithQueues. The accepted
// language is deliberately small:
//
//	expr   := term [('+' | '-') term]
//	term   := factor [('*' | '/') factor]
//	factor := IDENTIFIER
//
// so a+b*c parses but a+b+c and a*b*c do not.
type ArithParser struct {
	constants map[string]float32
}

func NewArithParser(constants map[string]float32) *ArithParser {
	return &ArithParser{constants: constants}
}

// ParseExpr consumes q entirely. Identifiers found in the constant table,
// and numeric literals, are folded into constants here; everything else is
// left as a variable to be bound at evaluation time.
func (p *ArithParser) ParseExpr(q *ArithQueue) (*Exp, error) {
	e, err := p.parseAddition(q)
	if err != nil {
		return nil, err
	}
	if t, ok := q.Peek(); ok {
		return nil, errors.Wrapf(ErrParse, "unexpected %s %q after expression", t.Type, t.Lexeme)
	}
	return e, nil
}

func (p *ArithParser) parseAddition(q *ArithQueue) (*Exp, error) {
	lhs, err := p.parseMult(q)
	if err != nil {
		return nil, err
	}
	t, ok := q.Peek()
	if !ok {
		return lhs, nil
	}
	if t.Type != PLUS && t.Type != MINUS {
		return nil, errors.Wrapf(ErrParse, "expected + or -, got %s %q", t.Type, t.Lexeme)
	}
	q.Pop()

	rhs, err := p.parseMult(q)
	if err != nil {
		return nil, err
	}
	return BinOp(opFromToken(t), lhs, rhs), nil
}

func (p *ArithParser) parseMult(q *ArithQueue) (*Exp, error) {
	lhs, err := p.parseFactor(q)
	if err != nil {
		return nil, err
	}
	t, ok := q.Peek()
	if !ok || (t.Type != MULT && t.Type != DIV) {
		return lhs, nil
	}
	q.Pop()

	rhs, err := p.parseFactor(q)
	if err != nil {
		return nil, err
	}
	return BinOp(opFromToken(t), lhs, rhs), nil
}

func (p *ArithParser) parseFactor(q *ArithQueue) (*Exp, error) {
	t, ok := q.Pop()
	if !ok {
		return nil, errors.Wrap(ErrParse, "expected operand, got end of expression")
	}
	if t.Type != VAR {
		return nil, errors.Wrapf(ErrParse, "expected operand, got %s %q", t.Type, t.Lexeme)
	}
	if t.Lexeme == "" {
		return nil, errors.Wrapf(ErrParse, "empty operand before %q", nextLexeme(q))
	}
	return p.resolve(t.Lexeme), nil
}

func (p *ArithParser) resolve(name string) *Exp {
	if v, ok := p.constants[name]; ok {
		return Const(v)
	}
	if v, err := ParseValue(name); err == nil {
		return Const(v)
	}
	return Var(name)
}

func nextLexeme(q *ArithQueue) string {
	if t, ok := q.Peek(); ok {
		return t.Lexeme
	}
	return ""
}
