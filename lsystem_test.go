package lsystem

import (
	"bytes"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var treeConstants = map[string]float32{
	"r1": 0.5,
	"r2": 0.25,
	"a0": 45,
	"a2": 30,
	"d":  137.5,
	"wr": 0.5,
}

var treeProductions = []RuleText{
	{"A(l, w)", "!(w)F(l)[&(a0)B(l*r2,w*wr)]/(d)A(l*r1,w*wr)"},
	{"B(l, w)", "!(w)F(l)[-(a2)$C(l*r2,w*wr)]C(l*r1,w*wr)"},
	{"C(l, w)", "!(w)F(l)[+(a2)$B(l*r2,w*wr)]B(l*r1,w*wr)"},
}

func newTree(t testing.TB) *LSystem {
	ls := NewLSystem("A(1,10)", treeConstants)
	for _, r := range treeProductions {
		require.NoError(t, ls.AddProduction(r.Predecessor, r.Successor))
	}
	return ls
}

func newSystem(t *testing.T, axiom string, rules ...string) (*LSystem, *bytes.Buffer) {
	t.Helper()
	ls := NewLSystem(axiom, nil)
	var logs bytes.Buffer
	ls.Logger = log.New(&logs, "", 0)
	for _, s := range rules {
		r, err := ParseRule(s)
		require.NoError(t, err)
		require.NoError(t, ls.AddProduction(r.Predecessor, r.Successor))
	}
	return ls, &logs
}

func TestGenerateSingleProduction(t *testing.T) {
	ls, _ := newSystem(t, "A(1,10)", "A(l,w) -> F(l)A(l*0.9,w*0.7)")
	out, err := ls.Generate(1)
	require.NoError(t, err)
	assert.Equal(t, "F(1)A(0.9,7)", out)
}

func TestGenerateTree(t *testing.T) {
	ls := newTree(t)

	out, err := ls.Generate(0)
	require.NoError(t, err)
	assert.Equal(t, "A(1,10)", out)

	out, err = ls.Generate(1)
	require.NoError(t, err)
	assert.Equal(t, "!(10)F(1)[&(45)B(0.25,5)]/(137.5)A(0.5,5)", out)

	out, err = ls.IterateOnce()
	require.NoError(t, err)
	assert.Equal(t, "!(10)F(1)[&(45)!(5)F(0.25)[-(30)$C(0.0625,2.5)]C(0.125,2.5)]/(137.5)"+
		"!(5)F(0.5)[&(45)B(0.125,2.5)]/(137.5)A(0.25,2.5)", out)
	assert.Equal(t, 2, ls.Generation())
}

func TestGenerateIsDeterministic(t *testing.T) {
	a, err := newTree(t).Generate(6)
	require.NoError(t, err)
	b, err := newTree(t).Generate(6)
	require.NoError(t, err)
	assert.Equal(t, a, b)
	assert.Equal(t, Digest(a), Digest(b))

	ls := newTree(t)
	c, err := ls.Generate(6)
	require.NoError(t, err)
	d, err := ls.Generate(6)
	require.NoError(t, err)
	assert.Equal(t, c, d)
	assert.Equal(t, a, c)
}

func TestFirstMatchingProductionWins(t *testing.T) {
	ls, _ := newSystem(t, "A(1)", "A(x) -> X(x)", "A(x) -> Y(x)")
	out, err := ls.Generate(1)
	require.NoError(t, err)
	assert.Equal(t, "X(1)", out)
}

func TestBareInvocationIsCopied(t *testing.T) {
	tests := []struct {
		name  string
		axiom string
		want  string
	}{
		{"followed by command", "AF(1)A", "AF(1)A"},
		{"followed by call", "AA(2)", "AX(2)"},
		{"at end", "F(1)A", "F(1)A"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ls, _ := newSystem(t, tt.axiom, "A(x) -> X(x)")
			out, err := ls.Generate(1)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestZeroArityCall(t *testing.T) {
	ls, logs := newSystem(t, "A()A", "A -> F[+A()]")
	out, err := ls.Generate(1)
	require.NoError(t, err)
	assert.Equal(t, "F[+A()]A", out)
	assert.Empty(t, logs.String())
}

func TestArgumentCountMismatch(t *testing.T) {
	ls, logs := newSystem(t, "A(1)B", "A(l,w) -> F(l)")
	out, err := ls.Generate(1)
	require.NoError(t, err)
	assert.Equal(t, "B", out)
	assert.Contains(t, logs.String(), "argument count mismatch")

	ls.Strict = true
	_, err = ls.Generate(1)
	assert.ErrorIs(t, err, ErrArgumentCountMismatch)
}

func TestArgumentConversionFailure(t *testing.T) {
	ls, logs := newSystem(t, "A(x)", "A(l) -> F(l)")
	out, err := ls.Generate(1)
	require.NoError(t, err)
	assert.Equal(t, "F(0)", out)
	assert.Contains(t, logs.String(), "argument conversion failure")

	ls.Strict = true
	_, err = ls.Generate(1)
	assert.ErrorIs(t, err, ErrArgumentConversion)
}

func TestUnboundVariableInSuccessor(t *testing.T) {
	ls := NewLSystem("A(1)F", nil)
	err := ls.AddProduction("A(l)", "F(q)")
	assert.ErrorIs(t, err, ErrUnboundVariable)
	assert.Empty(t, ls.Productions)
}

func TestOutOfRangeArgument(t *testing.T) {
	ls, logs := newSystem(t, "A(1e39)", "A(l) -> F(l)")
	out, err := ls.Generate(1)
	require.NoError(t, err)
	assert.Equal(t, "F(+Inf)", out)
	assert.Empty(t, logs.String())
}

func TestUnterminatedCall(t *testing.T) {
	ls, logs := newSystem(t, "FA(1,2", "A(l,w) -> F(l)")
	out, err := ls.Generate(1)
	require.NoError(t, err)
	assert.Equal(t, "FA(1,2", out)
	assert.Contains(t, logs.String(), "unterminated")

	ls.Strict = true
	_, err = ls.Generate(1)
	assert.ErrorIs(t, err, ErrEndOfInput)
}

func TestAddProductionRejectsMalformedRule(t *testing.T) {
	ls := NewLSystem("A(1)", nil)
	err := ls.AddProduction("A(l)", "F(l+l+l)")
	assert.ErrorIs(t, err, ErrParse)
	assert.Empty(t, ls.Productions)
}

func TestConstantsAreCopied(t *testing.T) {
	consts := map[string]float32{"r": 2}
	ls := NewLSystem("A(1)", consts)
	require.NoError(t, ls.AddProduction("A(l)", "A(l*r)"))
	consts["r"] = 3

	out, err := ls.Generate(2)
	require.NoError(t, err)
	assert.Equal(t, "A(4)", out)
}

func BenchmarkLSystemGenerate(b *testing.B) {
	ls := newTree(b)
	tests := []struct {
		name  string
		iters int
	}{
		{"5", 5},
		{"10", 10},
	}

	b.ResetTimer()
	for _, tt := range tests {
		b.Run(tt.name, func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				ls.Generate(tt.iters)
			}
		})
	}
}
