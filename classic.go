package lsystem

import (
	"sort"
	"strings"
)

// Classic is a non-parametric, deterministic L-system: every symbol having
// a rule is replaced by its successor, the rest are copied.
type Classic struct {
	Axiom     string
	Rules     map[rune]string
	Variables TokenSet

	generation int
	sentence   string
}

func NewClassic(axiom string, rules map[rune]string) *Classic {
	vars := make(TokenSet, len(rules))
	for r := range rules {
		vars.Add(r)
	}
	c := &Classic{
		Axiom:     axiom,
		Rules:     rules,
		Variables: vars,
	}
	c.Reset()
	return c
}

func (c *Classic) IsVariable(r rune) bool {
	return c.Variables.Contains(r)
}

func (c *Classic) applyRules(input string) string {
	var sb strings.Builder
	sb.Grow(len(input) * 2)
	for _, r := range input {
		if succ, exists := c.Rules[r]; exists {
			sb.WriteString(succ)
		} else {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

func (c *Classic) Reset() {
	c.sentence = c.Axiom
	c.generation = 0
}

func (c *Classic) Sentence() string {
	return c.sentence
}

func (c *Classic) IterateOnce() (string, error) {
	c.sentence = c.applyRules(c.sentence)
	c.generation++
	return c.sentence, nil
}

func (c *Classic) Generate(n int) (string, error) {
	c.Reset()
	for i := 0; i < n; i++ {
		c.IterateOnce()
	}
	return c.sentence, nil
}

func (c *Classic) String() string {
	keys := make([]rune, 0, len(c.Rules))
	for r := range c.Rules {
		keys = append(keys, r)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

	var sb strings.Builder
	sb.WriteString("axiom: ")
	sb.WriteString(c.Axiom)
	for _, r := range keys {
		sb.WriteString("\n")
		sb.WriteRune(r)
		sb.WriteString(" -> ")
		sb.WriteString(c.Rules[r])
	}
	return sb.String()
}
