package lsystem

import (
	"strings"
	"unicode/utf8"

	"github.com/pkg/errors"
)

// Production is a rewrite rule such as A(l,w) -> F(l)A(l*r1,w*wr).
type Production struct {
	Invocation  rune
	Params      []rune
	Predecessor string
	Successor   *Template
}

// NewProduction compiles a rule. Identifiers of the successor found in
// constants are bound now; the rest must be formal parameters, anything
// else is ErrUnboundVariable.
func NewProduction(pred, succ string, constants map[string]float32) (*Production, error) {
	invocation, params, err := ParsePredecessor(pred)
	if err != nil {
		return nil, err
	}
	tmpl, err := CompileTemplate(succ, NewArithParser(constants))
	if err != nil {
		return nil, errors.Wrapf(err, "production %s", pred)
	}
	if err := checkBound(tmpl, params); err != nil {
		return nil, errors.Wrapf(err, "production %s", pred)
	}
	return &Production{
		Invocation:  invocation,
		Params:      params,
		Predecessor: pred,
		Successor:   tmpl,
	}, nil
}

// ParsePredecessor splits "A(l, w)" into 'A' and [l w]. Every character
// after the invocation other than ( ) , and space names one parameter.
func ParsePredecessor(pred string) (rune, []rune, error) {
	if pred == "" {
		return 0, nil, errors.Wrap(ErrParse, "empty predecessor")
	}
	invocation, size := utf8.DecodeRuneInString(pred)
	var params []rune
	for _, c := range pred[size:] {
		switch c {
		case '(', ',', ')', ' ':
			continue
		}
		params = append(params, c)
	}
	return invocation, params, nil
}

func checkBound(tmpl *Template, params []rune) error {
	formal := make(TokenSet, len(params))
	for _, p := range params {
		formal.Add(p)
	}
	var unbound []string
	for _, ph := range tmpl.Placeholders {
		ph.Exp.Vars(func(name string) {
			c, size := utf8.DecodeRuneInString(name)
			if size != len(name) || !formal.Contains(c) {
				unbound = append(unbound, name)
			}
		})
	}
	if len(unbound) != 0 {
		return errors.Wrapf(ErrUnboundVariable, "%s in %q", strings.Join(unbound, ", "), tmpl.Source)
	}
	return nil
}

func (r *Production) Arity() int {
	return len(r.Params)
}

// Evaluate instantiates the successor for one invocation. A wrong number of
// actual arguments yields ErrArgumentCountMismatch and an empty result.
func (r *Production) Evaluate(args []float32) (string, error) {
	if len(args) != len(r.Params) {
		return "", errors.Wrapf(ErrArgumentCountMismatch, "%s takes %d arguments, got %d", r.Predecessor, len(r.Params), len(args))
	}
	env := make(map[string]float32, len(args))
	for i, name := range r.Params {
		env[string(name)] = args[i]
	}
	return r.Successor.Evaluate(env)
}

func (r *Production) String() string {
	var sb strings.Builder
	sb.WriteString(r.Predecessor)
	sb.WriteString(" -> ")
	sb.WriteString(r.Successor.Source)
	return sb.String()
}
