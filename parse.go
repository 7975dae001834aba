package lsystem

import (
	"bufio"
	"strings"
	"unicode/utf8"

	"github.com/pkg/errors"
)

// RuleText is a rule before compilation.
type RuleText struct {
	Predecessor string `yaml:"predecessor"`
	Successor   string `yaml:"successor"`
}

const ruleArrow = "->"

// ParseRule splits "A(l,w) -> F(l)A(l*r1,w*wr)". Spaces around the arrow
// are dropped; the successor is otherwise kept verbatim.
func ParseRule(str string) (RuleText, error) {
	pred, succ, ok := strings.Cut(str, ruleArrow)
	if !ok {
		return RuleText{}, errors.Wrapf(ErrParse, "missing %q in rule %q", ruleArrow, str)
	}
	pred = strings.TrimSpace(pred)
	if pred == "" {
		return RuleText{}, errors.Wrapf(ErrParse, "missing predecessor in rule %q", str)
	}
	return RuleText{Predecessor: pred, Successor: strings.TrimSpace(succ)}, nil
}

// ParseRules reads one rule per line. Blank lines and lines starting with
// '#' are skipped. Order is preserved.
func ParseRules(text string) ([]RuleText, error) {
	var rules []RuleText
	scanner := bufio.NewScanner(strings.NewReader(text))
	line := 0
	for scanner.Scan() {
		line++
		s := strings.TrimSpace(scanner.Text())
		if s == "" || strings.HasPrefix(s, "#") {
			continue
		}
		r, err := ParseRule(s)
		if err != nil {
			return nil, errors.Wrapf(err, "line %d", line)
		}
		rules = append(rules, r)
	}
	return rules, scanner.Err()
}

// ClassicRules converts rule texts into a classic rule table. Predecessors
// must be a single symbol.
func ClassicRules(rules []RuleText) (map[rune]string, error) {
	table := make(map[rune]string, len(rules))
	for _, r := range rules {
		if utf8.RuneCountInString(r.Predecessor) != 1 {
			return nil, errors.Wrapf(ErrParse, "classic predecessor %q is not a single symbol", r.Predecessor)
		}
		c, _ := utf8.DecodeRuneInString(r.Predecessor)
		table[c] = r.Successor
	}
	return table, nil
}
