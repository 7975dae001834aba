// Package turtle walks a generated sentence and turns its symbols into calls
// on a State. Geometry is left entirely to the State implementation.
package turtle

import (
	"github.com/pkg/errors"

	lsystem "github.com/viktordanov/plsystem"
)

// State is driven by the interpreter. Angles are in degrees.
type State interface {
	Forward(length float32)
	SetWidth(width float32)
	Turn(deg float32)
	Pitch(deg float32)
	Roll(deg float32)
	// RollVertical rolls the turtle so its left vector is horizontal.
	RollVertical()
	Push()
	Pop() error
	BeginShape()
	EndShape()
}

// Interpreter maps symbols to State calls:
//
//	F(l)        forward
//	!(w)        set width
//	+(a) -(a)   turn left, right
//	&(a) ^(a)   pitch down, up
//	/(a) \(a)   roll right, left
//	|           turn around
//	$           roll to vertical
//	[ ]         push, pop
//	{ }         begin, end compound shape
//
// A command given without an argument list uses Step or Angle. Any other
// symbol is ignored along with its arguments.
type Interpreter struct {
	Angle float32
	Step  float32
}

func New(angle, step float32) *Interpreter {
	return &Interpreter{Angle: angle, Step: step}
}

func (in *Interpreter) Draw(sentence string, s State) error {
	ct := lsystem.NewCommandTokenizer(sentence)
	for ct.HasNext() {
		offset := ct.Offset()
		cmd, err := ct.NextCommand()
		if err != nil {
			return err
		}
		if err := in.dispatch(cmd, ct, s); err != nil {
			return errors.Wrapf(err, "command %q at %d", cmd, offset)
		}
	}
	return nil
}

func (in *Interpreter) dispatch(cmd rune, ct *lsystem.CommandTokenizer, s State) error {
	switch cmd {
	case 'F':
		v, err := in.arg(ct, in.Step)
		if err != nil {
			return err
		}
		s.Forward(v)
	case '!':
		if !ct.HasNextArguments() {
			return nil
		}
		v, err := in.arg(ct, 0)
		if err != nil {
			return err
		}
		s.SetWidth(v)
	case '+', '-':
		v, err := in.arg(ct, in.Angle)
		if err != nil {
			return err
		}
		if cmd == '-' {
			v = -v
		}
		s.Turn(v)
	case '&', '^':
		v, err := in.arg(ct, in.Angle)
		if err != nil {
			return err
		}
		if cmd == '^' {
			v = -v
		}
		s.Pitch(v)
	case '/', '\\':
		v, err := in.arg(ct, in.Angle)
		if err != nil {
			return err
		}
		if cmd == '\\' {
			v = -v
		}
		s.Roll(v)
	case '|':
		s.Turn(180)
	case '$':
		s.RollVertical()
	case '[':
		s.Push()
	case ']':
		return s.Pop()
	case '{':
		s.BeginShape()
	case '}':
		s.EndShape()
	default:
		return ct.SkipArguments()
	}
	return nil
}

// arg returns the first argument of the following list, or def when no
// list follows.
func (in *Interpreter) arg(ct *lsystem.CommandTokenizer, def float32) (float32, error) {
	if !ct.HasNextArguments() {
		return def, nil
	}
	args, err := ct.GetArguments()
	if err != nil {
		return 0, err
	}
	return args[0], nil
}
