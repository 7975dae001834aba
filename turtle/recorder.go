package turtle

import (
	"fmt"
	"io"

	"github.com/ahrtr/gocontainer/stack"
	"github.com/pkg/errors"
)

var ErrStackUnderflow = errors.New("pop without matching push")

type Command struct {
	Op  string
	Arg float32
	// Depth is the bracket nesting level the command ran at.
	Depth int
}

func (c Command) String() string {
	switch c.Op {
	case "forward", "width", "turn", "pitch", "roll":
		return fmt.Sprintf("%*s%s %g", c.Depth*2, "", c.Op, c.Arg)
	}
	return fmt.Sprintf("%*s%s", c.Depth*2, "", c.Op)
}

type snapshot struct {
	width float32
}

// Recorder is a State that keeps the command stream instead of building
// geometry. Pushed states are value copies.
type Recorder struct {
	Commands []Command
	Width    float32
	Shapes   int

	saved      stack.Interface
	shapeDepth int
}

func NewRecorder() *Recorder {
	return &Recorder{saved: stack.New()}
}

func (r *Recorder) record(op string, arg float32) {
	r.Commands = append(r.Commands, Command{Op: op, Arg: arg, Depth: r.saved.Size()})
}

func (r *Recorder) Forward(length float32) { r.record("forward", length) }
func (r *Recorder) Turn(deg float32)       { r.record("turn", deg) }
func (r *Recorder) Pitch(deg float32)      { r.record("pitch", deg) }
func (r *Recorder) Roll(deg float32)       { r.record("roll", deg) }
func (r *Recorder) RollVertical()          { r.record("rollvertical", 0) }

func (r *Recorder) SetWidth(width float32) {
	r.Width = width
	r.record("width", width)
}

func (r *Recorder) Push() {
	r.record("push", 0)
	r.saved.Push(snapshot{width: r.Width})
}

func (r *Recorder) Pop() error {
	if r.saved.IsEmpty() {
		return ErrStackUnderflow
	}
	s := r.saved.Pop().(snapshot)
	r.Width = s.width
	r.record("pop", 0)
	return nil
}

func (r *Recorder) BeginShape() {
	r.shapeDepth++
	r.record("begin", 0)
}

func (r *Recorder) EndShape() {
	if r.shapeDepth == 0 {
		return
	}
	r.shapeDepth--
	r.Shapes++
	r.record("end", 0)
}

// Depth is the number of states currently pushed.
func (r *Recorder) Depth() int {
	return r.saved.Size()
}

func (r *Recorder) WriteTo(w io.Writer) (int64, error) {
	var n int64
	for _, c := range r.Commands {
		m, err := fmt.Fprintln(w, c.String())
		n += int64(m)
		if err != nil {
			return n, err
		}
	}
	return n, nil
}
