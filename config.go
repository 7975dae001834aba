package lsystem

import (
	"io"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Grammar is the file form of an L-system. Parametric grammars list
// Productions, classic ones map single symbols to successors in Rules.
type Grammar struct {
	Name        string             `yaml:"name"`
	Axiom       string             `yaml:"axiom"`
	Iterations  int                `yaml:"iterations"`
	Strict      bool               `yaml:"strict"`
	Angle       float32            `yaml:"angle"`
	Step        float32            `yaml:"step"`
	Constants   map[string]float32 `yaml:"constants"`
	Productions []RuleText         `yaml:"productions"`
	Rules       map[string]string  `yaml:"rules"`
}

// UnmarshalYAML accepts either "pred -> succ" or a predecessor/successor
// mapping.
func (r *RuleText) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		parsed, err := ParseRule(value.Value)
		if err != nil {
			return errors.Wrapf(err, "line %d", value.Line)
		}
		*r = parsed
		return nil
	}
	type plain RuleText
	var p plain
	if err := value.Decode(&p); err != nil {
		return err
	}
	*r = RuleText(p)
	return nil
}

func (g *Grammar) IsClassic() bool {
	return len(g.Rules) != 0
}

func (g *Grammar) Validate() error {
	if g.Axiom == "" {
		return errors.Errorf("grammar %q: missing axiom", g.Name)
	}
	if g.Iterations < 0 {
		return errors.Errorf("grammar %q: negative iterations %d", g.Name, g.Iterations)
	}
	if g.IsClassic() && len(g.Productions) != 0 {
		return errors.Errorf("grammar %q: both rules and productions given", g.Name)
	}
	return nil
}

// Build compiles the grammar into an LSystem or a Classic system.
func (g *Grammar) Build() (Iterator, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}
	if g.IsClassic() {
		texts := make([]RuleText, 0, len(g.Rules))
		for pred, succ := range g.Rules {
			texts = append(texts, RuleText{Predecessor: pred, Successor: succ})
		}
		table, err := ClassicRules(texts)
		if err != nil {
			return nil, errors.Wrapf(err, "grammar %q", g.Name)
		}
		return NewClassic(g.Axiom, table), nil
	}

	l := NewLSystem(g.Axiom, g.Constants)
	l.Strict = g.Strict
	for _, r := range g.Productions {
		if err := l.AddProduction(r.Predecessor, r.Successor); err != nil {
			return nil, errors.Wrapf(err, "grammar %q", g.Name)
		}
	}
	return l, nil
}

type Decoder struct {
	yamlDecoder *yaml.Decoder
}

func NewDecoder(in io.Reader) *Decoder {
	return &Decoder{yamlDecoder: yaml.NewDecoder(in)}
}

// Decode reads the next YAML document. It returns io.EOF once the stream
// is exhausted.
func (dec *Decoder) Decode() (*Grammar, error) {
	g := &Grammar{}
	if err := dec.yamlDecoder.Decode(g); err != nil {
		return nil, err
	}
	return g, nil
}

// LoadGrammars reads every document of a grammar file.
func LoadGrammars(path string) ([]*Grammar, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var grammars []*Grammar
	dec := NewDecoder(f)
	for {
		g, err := dec.Decode()
		if err == io.EOF {
			return grammars, nil
		}
		if err != nil {
			return nil, errors.Wrapf(err, "decoding %s", path)
		}
		grammars = append(grammars, g)
	}
}
