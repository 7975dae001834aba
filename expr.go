package lsystem

import (
	"strconv"

	"github.com/pkg/errors"
)

type ExpKind uint8

const (
	ConstExp ExpKind = iota
	VarExp
	BinExp
)

type Op uint8

const (
	OpAdd Op = iota
	OpSub
	OpMul
	OpDiv
)

func (o Op) String() string {
	switch o {
	case OpAdd:
		return "+"
	case OpSub:
		return "-"
	case OpMul:
		return "*"
	case OpDiv:
		return "/"
	}
	return "?"
}

func opFromToken(t ArithToken) Op {
	switch t.Type {
	case MINUS:
		return OpSub
	case MULT:
		return OpMul
	case DIV:
		return OpDiv
	}
	return OpAdd
}

// Exp is an expression tree node. Which fields are meaningful depends on
// Kind: Value for ConstExp, Name for VarExp, Op/Left/Right for BinExp.
type Exp struct {
	Kind  ExpKind
	Value float32
	Name  string
	Op    Op
	Left  *Exp
	Right *Exp
}

func Const(v float32) *Exp {
	return &Exp{Kind: ConstExp, Value: v}
}

func Var(name string) *Exp {
	return &Exp{Kind: VarExp, Name: name}
}

func BinOp(op Op, l, r *Exp) *Exp {
	return &Exp{Kind: BinExp, Op: op, Left: l, Right: r}
}

// Eval evaluates e against the argument bindings in env. Division by zero
// yields an infinity or NaN like any float32 division.
func (e *Exp) Eval(env map[string]float32) (float32, error) {
	switch e.Kind {
	case ConstExp:
		return e.Value, nil
	case VarExp:
		v, ok := env[e.Name]
		if !ok {
			return 0, errors.Wrapf(ErrUnboundVariable, "%q", e.Name)
		}
		return v, nil
	}

	l, err := e.Left.Eval(env)
	if err != nil {
		return 0, err
	}
	r, err := e.Right.Eval(env)
	if err != nil {
		return 0, err
	}
	switch e.Op {
	case OpSub:
		return l - r, nil
	case OpMul:
		return l * r, nil
	case OpDiv:
		return l / r, nil
	}
	return l + r, nil
}

func (e *Exp) String() string {
	switch e.Kind {
	case ConstExp:
		return FormatValue(e.Value)
	case VarExp:
		return e.Name
	}
	return "(" + e.Left.String() + e.Op.String() + e.Right.String() + ")"
}

// Vars calls fn for every variable leaf, left to right.
func (e *Exp) Vars(fn func(name string)) {
	switch e.Kind {
	case VarExp:
		fn(e.Name)
	case BinExp:
		e.Left.Vars(fn)
		e.Right.Vars(fn)
	}
}

// Equal reports whether two trees have the same shape and leaves.
func (e *Exp) Equal(o *Exp) bool {
	if e == nil || o == nil {
		return e == o
	}
	if e.Kind != o.Kind {
		return false
	}
	switch e.Kind {
	case ConstExp:
		return e.Value == o.Value
	case VarExp:
		return e.Name == o.Name
	}
	return e.Op == o.Op && e.Left.Equal(o.Left) && e.Right.Equal(o.Right)
}

// ParseValue reads a float32 literal. Literals beyond the float32 range
// saturate to an infinity, the form FormatValue gives such values.
func ParseValue(text string) (float32, error) {
	v, err := strconv.ParseFloat(text, 32)
	if err != nil {
		var ne *strconv.NumError
		if !errors.As(err, &ne) || ne.Err != strconv.ErrRange {
			return 0, err
		}
	}
	return float32(v), nil
}

// FormatValue is the canonical text form of a parameter value in a sentence.
func FormatValue(v float32) string {
	return strconv.FormatFloat(float64(v), 'f', -1, 32)
}
