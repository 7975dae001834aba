package lsystem

import (
	"strings"
	"unicode/utf8"

	"github.com/pkg/errors"
)

// CommandTokenizer walks a generated sentence one command at a time. Every
// argument list in a sentence is already evaluated, so arguments are parsed
// as float literals.
type CommandTokenizer struct {
	commands string
	index    int
}

func NewCommandTokenizer(sentence string) *CommandTokenizer {
	return &CommandTokenizer{commands: sentence}
}

func (ct *CommandTokenizer) HasNext() bool {
	return ct.index < len(ct.commands)
}

func (ct *CommandTokenizer) HasNextCommand() bool {
	return ct.HasNext() && ct.commands[ct.index] != '('
}

func (ct *CommandTokenizer) HasNextArguments() bool {
	return ct.HasNext() && ct.commands[ct.index] == '('
}

// Offset is the byte position of the next unread character.
func (ct *CommandTokenizer) Offset() int {
	return ct.index
}

// NextCommand consumes one symbol, which may span several bytes.
func (ct *CommandTokenizer) NextCommand() (rune, error) {
	if !ct.HasNextCommand() {
		if !ct.HasNext() {
			return 0, errors.Wrap(ErrEndOfInput, "no remaining commands")
		}
		return 0, errors.Wrapf(ErrMalformedArgument, "argument list without command at %d", ct.index)
	}
	c, size := utf8.DecodeRuneInString(ct.commands[ct.index:])
	ct.index += size
	return c, nil
}

// GetArguments consumes one parenthesised, comma separated list of numbers.
func (ct *CommandTokenizer) GetArguments() ([]float32, error) {
	if !ct.HasNext() {
		return nil, errors.Wrap(ErrEndOfInput, "reached end of command string")
	}
	if ct.commands[ct.index] != '(' {
		next, _ := utf8.DecodeRuneInString(ct.commands[ct.index:])
		return nil, errors.Wrapf(ErrNoArguments, "requested arguments for %q at %d", next, ct.index)
	}

	start := ct.index + 1
	end := strings.IndexByte(ct.commands[start:], ')')
	if end < 0 {
		return nil, errors.Wrapf(ErrEndOfInput, "unterminated argument list at %d", ct.index)
	}
	list := ct.commands[start : start+end]
	ct.index = start + end + 1

	if list == "" {
		return nil, errors.Wrapf(ErrEmptyArgumentList, "at %d", start-1)
	}

	parts := strings.Split(list, ",")
	args := make([]float32, 0, len(parts))
	for _, part := range parts {
		v, err := ParseValue(part)
		if err != nil {
			return nil, errors.Wrapf(ErrMalformedArgument, "%q at %d", part, start-1)
		}
		args = append(args, v)
	}
	return args, nil
}

// SkipArguments consumes an argument list if one follows.
func (ct *CommandTokenizer) SkipArguments() error {
	if !ct.HasNextArguments() {
		return nil
	}
	_, err := ct.GetArguments()
	return err
}
