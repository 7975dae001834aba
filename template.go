package lsystem

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// TokenizeTemplate splits a successor template into COMMAND tokens holding
// literal text and PARAM tokens, one per argument of every parenthesised
// argument list. Commas between arguments come back as COMMAND tokens. An
// argument list left open at the end of succ is an error.
func TokenizeTemplate(succ string) ([]Token, error) {
	var tokens []Token
	var lex, param strings.Builder
	inInvocation := false
	openedAt := 0

	for i, c := range succ {
		if c == ')' {
			inInvocation = false
			paramStr := param.String()
			args := TokenizeArgs(paramStr)
			for j, arith := range args {
				tokens = append(tokens, Token{Type: PARAM, Lexeme: paramStr, Arith: arith})
				if j != len(args)-1 {
					tokens = append(tokens, Token{Type: COMMAND, Lexeme: ","})
				}
			}
			param.Reset()
		}

		if inInvocation {
			param.WriteRune(c)
		} else {
			lex.WriteRune(c)
		}

		if c == '(' {
			inInvocation = true
			openedAt = i
			tokens = append(tokens, Token{Type: COMMAND, Lexeme: lex.String()})
			lex.Reset()
		}
	}
	if inInvocation {
		return nil, errors.Wrapf(ErrParse, "unterminated argument list at %d of %q", openedAt, succ)
	}
	tokens = append(tokens, Token{Type: COMMAND, Lexeme: lex.String()})
	return tokens, nil
}

type Placeholder struct {
	Name string
	Exp  *Exp
}

// edit marks where a placeholder sits in the compiled text.
type edit struct {
	pos, length int
	slot        int
}

// Template is a compiled successor: its text with every embedded expression
// replaced by a placeholder (V0, V1, ...) and the expression behind each.
type Template struct {
	Source       string
	Compiled     string
	Placeholders []Placeholder

	edits []edit
}

// CompileTemplate parses every argument expression of succ. Any malformed
// expression aborts the whole compilation.
func CompileTemplate(succ string, parser *ArithParser) (*Template, error) {
	t := &Template{Source: succ}
	var sb strings.Builder

	tokens, err := TokenizeTemplate(succ)
	if err != nil {
		return nil, err
	}
	for _, tok := range tokens {
		if tok.Type != PARAM {
			sb.WriteString(tok.Lexeme)
			continue
		}
		exp, err := parser.ParseExpr(tok.Arith)
		if err != nil {
			return nil, errors.Wrapf(err, "argument %d of %q", len(t.Placeholders), succ)
		}
		name := "V" + strconv.Itoa(len(t.Placeholders))
		t.edits = append(t.edits, edit{pos: sb.Len(), length: len(name), slot: len(t.Placeholders)})
		t.Placeholders = append(t.Placeholders, Placeholder{Name: name, Exp: exp})
		sb.WriteString(name)
	}

	t.Compiled = sb.String()
	return t, nil
}

// Evaluate substitutes the value of every placeholder, evaluated against
// args, into the compiled text. Placeholders are located by the positions
// recorded at compile time, never by searching for their names.
func (t *Template) Evaluate(args map[string]float32) (string, error) {
	if len(t.edits) == 0 {
		return t.Compiled, nil
	}

	var sb strings.Builder
	sb.Grow(len(t.Compiled) + len(t.edits)*4)
	last := 0
	for _, e := range t.edits {
		v, err := t.Placeholders[e.slot].Exp.Eval(args)
		if err != nil {
			return "", errors.Wrapf(err, "evaluating %s of %q", t.Placeholders[e.slot].Name, t.Source)
		}
		sb.WriteString(t.Compiled[last:e.pos])
		sb.WriteString(FormatValue(v))
		last = e.pos + e.length
	}
	sb.WriteString(t.Compiled[last:])
	return sb.String(), nil
}
