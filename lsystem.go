package lsystem

import (
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/zeebo/blake3"
)

// Iterator is implemented by grammars that can be stepped one generation at
// a time.
type Iterator interface {
	Reset()
	IterateOnce() (string, error)
	Generate(n int) (string, error)
	Sentence() string
}

// LSystem is a parametric L-system. Productions are matched in declaration
// order and the first one whose invocation equals the scanned symbol wins.
//
// Sentence length usually grows geometrically with the number of
// generations; bounding the iteration count is up to the caller.
type LSystem struct {
	Axiom       string
	Productions []*Production
	Constants   map[string]float32

	// Strict turns argument count mismatches, unbound variables and
	// unconvertible arguments into errors instead of logged warnings.
	Strict bool
	Logger *log.Logger

	generation int
	pool       *BufferPool
}

func NewLSystem(axiom string, constants map[string]float32) *LSystem {
	consts := make(map[string]float32, len(constants))
	for k, v := range constants {
		consts[k] = v
	}
	l := &LSystem{
		Axiom:     axiom,
		Constants: consts,
		Logger:    log.Default(),
		pool:      NewBufferPool(len(axiom) * 4),
	}
	l.Reset()
	return l
}

// AddProduction compiles and appends a rule. Malformed rules are rejected
// here so that a broken grammar never reaches generation.
func (l *LSystem) AddProduction(pred, succ string) error {
	p, err := NewProduction(pred, succ, l.Constants)
	if err != nil {
		return err
	}
	l.Productions = append(l.Productions, p)
	return nil
}

func (l *LSystem) Reset() {
	l.pool.Reset()
	l.pool.WriteString(l.Axiom)
	l.pool.Swap()
	l.generation = 0
}

func (l *LSystem) Generation() int {
	return l.generation
}

// Sentence returns a copy of the current generation.
func (l *LSystem) Sentence() string {
	return string(l.pool.GetSwap().Bytes)
}

func (l *LSystem) IterateOnce() (string, error) {
	input := l.Sentence()
	l.pool.ResetWritingHead()
	if err := l.rewrite(input); err != nil {
		return "", errors.Wrapf(err, "generation %d", l.generation+1)
	}
	l.pool.Swap()
	l.generation++
	return l.Sentence(), nil
}

// Generate rewrites the axiom n times and returns the final sentence.
func (l *LSystem) Generate(n int) (string, error) {
	l.Reset()
	for i := 0; i < n; i++ {
		if _, err := l.IterateOnce(); err != nil {
			return "", err
		}
	}
	return l.Sentence(), nil
}

func (l *LSystem) match(c rune) *Production {
	for _, p := range l.Productions {
		if p.Invocation == c {
			return p
		}
	}
	return nil
}

type scanState uint8

const (
	idle scanState = iota
	matchedPending
	inArgs
)

// rewrite performs one generation, reading input and writing the active
// buffer. A symbol with a production is only invoked when an argument list
// follows it immediately; otherwise it is copied through like any other
// character.
func (l *LSystem) rewrite(input string) error {
	out := l.pool
	state := idle
	var pending *Production
	var arg strings.Builder
	var args []float32
	callStart := 0

	for i, c := range input {
		switch state {
		case matchedPending:
			if c == '(' {
				state = inArgs
				args = args[:0]
				arg.Reset()
				continue
			}
			out.WriteRune(pending.Invocation)
			pending = nil
			state = idle
		case inArgs:
			switch c {
			case ',':
				v, err := l.convert(arg.String())
				if err != nil {
					return err
				}
				args = append(args, v)
				arg.Reset()
			case ')':
				if len(args) != 0 || arg.Len() != 0 {
					v, err := l.convert(arg.String())
					if err != nil {
						return err
					}
					args = append(args, v)
				}
				succ, err := pending.Evaluate(args)
				if err != nil {
					if err = l.warn(err, "at %d", callStart); err != nil {
						return err
					}
				}
				out.WriteString(succ)
				pending = nil
				state = idle
			default:
				arg.WriteRune(c)
			}
			continue
		}

		if p := l.match(c); p != nil {
			pending = p
			callStart = i
			state = matchedPending
			continue
		}
		out.WriteRune(c)
	}

	switch state {
	case matchedPending:
		out.WriteRune(pending.Invocation)
	case inArgs:
		err := errors.Wrapf(ErrEndOfInput, "unterminated argument list of %q at %d", pending.Invocation, callStart)
		if err = l.warn(err, ""); err != nil {
			return err
		}
		out.WriteString(input[callStart:])
	}
	return nil
}

// convert parses one actual argument. Unparseable text becomes zero with a
// warning unless the system is strict.
func (l *LSystem) convert(text string) (float32, error) {
	if v, err := ParseValue(text); err == nil {
		return v, nil
	}
	if v, err := strconv.Atoi(text); err == nil {
		return float32(v), nil
	}
	err := errors.Wrapf(ErrArgumentConversion, "%q", text)
	return 0, l.warn(err, "using 0")
}

func (l *LSystem) warn(err error, format string, args ...interface{}) error {
	if l.Strict {
		return err
	}
	if l.Logger != nil {
		msg := err.Error()
		if format != "" {
			msg += " " + fmt.Sprintf(format, args...)
		}
		l.Logger.Println("warning:", msg)
	}
	return nil
}

func (l *LSystem) String() string {
	var sb strings.Builder
	sb.WriteString("axiom: ")
	sb.WriteString(l.Axiom)
	for _, p := range l.Productions {
		sb.WriteString("\n")
		sb.WriteString(p.String())
	}
	return sb.String()
}

// Digest is the hex encoded blake3 hash of a sentence.
func Digest(sentence string) string {
	h := blake3.New()
	h.Write([]byte(sentence))
	return fmt.Sprintf("%x", h.Sum(nil))
}
