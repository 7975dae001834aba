package lsystem

import (
	"math"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rand"
)

func parseExpr(t *testing.T, text string, constants map[string]float32) (*Exp, error) {
	t.Helper()
	args := TokenizeArgs(text)
	require.Len(t, args, 1)
	return NewArithParser(constants).ParseExpr(args[0])
}

func TestConstantsResolveAtParseTime(t *testing.T) {
	r := rand.New(1)
	for i := 0; i < 100; i++ {
		name := "k" + strconv.Itoa(i)
		val := r.Float32()*200 - 100
		constants := map[string]float32{name: val}

		e, err := parseExpr(t, name, constants)
		require.NoError(t, err)
		assert.Equal(t, ConstExp, e.Kind)

		got, err := e.Eval(map[string]float32{name: val + 1})
		require.NoError(t, err)
		assert.Equal(t, val, got)
	}
}

func TestVariablesResolveAtEvaluation(t *testing.T) {
	r := rand.New(2)
	e, err := parseExpr(t, "v", map[string]float32{"k": 1})
	require.NoError(t, err)
	assert.Equal(t, VarExp, e.Kind)

	for i := 0; i < 100; i++ {
		x := r.Float32() * 1000
		got, err := e.Eval(map[string]float32{"v": x})
		require.NoError(t, err)
		assert.Equal(t, x, got)
	}
}

func TestBinaryOperators(t *testing.T) {
	env := map[string]float32{"a": 6, "b": 4, "c": 3, "d": 2}
	tests := []struct {
		expr string
		want float32
	}{
		{"a+b", 10},
		{"a-b", 2},
		{"a*b", 24},
		{"a/b", 1.5},
		{"a+b*c", 18},
		{"a*b-c*d", 18},
		{"a/d+c", 6},
		{"a*0.5", 3},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			e, err := parseExpr(t, tt.expr, nil)
			require.NoError(t, err)
			got, err := e.Eval(env)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseTreeShape(t *testing.T) {
	e, err := parseExpr(t, "a*b+c/d", map[string]float32{"d": 2})
	require.NoError(t, err)
	want := BinOp(OpAdd,
		BinOp(OpMul, Var("a"), Var("b")),
		BinOp(OpDiv, Var("c"), Const(2)))
	assert.True(t, want.Equal(e), "got %s", e)
	assert.Equal(t, "((a*b)+(c/2))", e.String())
}

func TestParseErrors(t *testing.T) {
	for _, text := range []string{"a+b+c", "a*b*c", "a-b-c", "a/b/c", "a+", "-a", "a*", "a+b*c*d"} {
		t.Run(text, func(t *testing.T) {
			_, err := parseExpr(t, text, nil)
			assert.ErrorIs(t, err, ErrParse)
		})
	}
}

func TestDivisionByZero(t *testing.T) {
	e, err := parseExpr(t, "a/b", nil)
	require.NoError(t, err)

	got, err := e.Eval(map[string]float32{"a": 1, "b": 0})
	require.NoError(t, err)
	assert.True(t, math.IsInf(float64(got), 1))

	got, err = e.Eval(map[string]float32{"a": 0, "b": 0})
	require.NoError(t, err)
	assert.True(t, math.IsNaN(float64(got)))
}

func TestUnboundVariable(t *testing.T) {
	e, err := parseExpr(t, "q*2", nil)
	require.NoError(t, err)
	_, err = e.Eval(map[string]float32{"l": 1})
	assert.ErrorIs(t, err, ErrUnboundVariable)
}

func TestOutOfRangeLiteralSaturates(t *testing.T) {
	e, err := parseExpr(t, "1e39", nil)
	require.NoError(t, err)
	assert.Equal(t, ConstExp, e.Kind)
	assert.True(t, math.IsInf(float64(e.Value), 1))

	v, err := ParseValue("-1e39")
	require.NoError(t, err)
	assert.True(t, math.IsInf(float64(v), -1))

	_, err = ParseValue("x")
	assert.Error(t, err)
}
