package lsystem

import "github.com/edwingeng/deque"

type ArithTokenType uint8

const (
	VAR ArithTokenType = iota
	PLUS
	MINUS
	MULT
	DIV
)

func (t ArithTokenType) String() string {
	switch t {
	case VAR:
		return "VAR"
	case PLUS:
		return "PLUS"
	case MINUS:
		return "MINUS"
	case MULT:
		return "MULT"
	case DIV:
		return "DIV"
	}
	return "INVALID"
}

type ArithToken struct {
	Type   ArithTokenType
	Lexeme string
}

// ArithQueue is a FIFO of ArithTokens making up one argument expression.
type ArithQueue struct {
	q deque.Deque
}

func NewArithQueue(tokens ...ArithToken) *ArithQueue {
	aq := &ArithQueue{q: deque.NewDeque()}
	for _, t := range tokens {
		aq.Push(t)
	}
	return aq
}

func (aq *ArithQueue) Push(t ArithToken) {
	aq.q.PushBack(t)
}

func (aq *ArithQueue) Len() int {
	return aq.q.Len()
}

func (aq *ArithQueue) Empty() bool {
	return aq.q.Empty()
}

// Peek returns the next token without consuming it. ok is false when the
// queue is empty.
func (aq *ArithQueue) Peek() (t ArithToken, ok bool) {
	if aq.q.Empty() {
		return ArithToken{}, false
	}
	return aq.q.Front().(ArithToken), true
}

func (aq *ArithQueue) Pop() (t ArithToken, ok bool) {
	if aq.q.Empty() {
		return ArithToken{}, false
	}
	t = aq.q.Front().(ArithToken)
	aq.q.PopFront()
	return t, true
}

// Tokens returns a copy of the queued tokens in order.
func (aq *ArithQueue) Tokens() []ArithToken {
	n := aq.q.Len()
	out := make([]ArithToken, 0, n)
	for i := 0; i < n; i++ {
		t := aq.q.Front().(ArithToken)
		aq.q.PopFront()
		out = append(out, t)
		aq.q.PushBack(t)
	}
	return out
}

type TokenType uint8

const (
	COMMAND TokenType = iota
	PARAM
)

// Token is a command-level token of a successor template. COMMAND tokens
// carry literal text; PARAM tokens carry the raw argument list text and the
// arithmetic tokens of one argument.
type Token struct {
	Type   TokenType
	Lexeme string
	Arith  *ArithQueue
}

type TokenSet map[rune]struct{}

func (ts TokenSet) Contains(r rune) bool {
	_, exists := ts[r]
	return exists
}

func (ts TokenSet) Add(r rune) {
	ts[r] = struct{}{}
}
