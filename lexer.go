package lsystem

import "strings"

// TokenizeArgs splits the text between an invocation's parentheses into one
// ArithQueue per comma separated argument. Whitespace is not skipped: it
// becomes part of the identifier it appears in.
func TokenizeArgs(param string) []*ArithQueue {
	var args []*ArithQueue
	var sb strings.Builder
	current := NewArithQueue()

	flush := func() {
		current.Push(ArithToken{Type: VAR, Lexeme: sb.String()})
		sb.Reset()
	}

	for _, c := range param {
		switch c {
		case '*':
			flush()
			current.Push(ArithToken{Type: MULT, Lexeme: "*"})
		case '/':
			flush()
			current.Push(ArithToken{Type: DIV, Lexeme: "/"})
		case '+':
			flush()
			current.Push(ArithToken{Type: PLUS, Lexeme: "+"})
		case '-':
			flush()
			current.Push(ArithToken{Type: MINUS, Lexeme: "-"})
		case ',':
			flush()
			args = append(args, current)
			current = NewArithQueue()
		default:
			sb.WriteRune(c)
		}
	}

	if sb.Len() != 0 {
		flush()
	}
	// a dangling operator or comma keeps its queue so the parser can reject it
	if !current.Empty() || strings.HasSuffix(param, ",") {
		args = append(args, current)
	}
	return args
}
