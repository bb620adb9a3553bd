package eval_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nasedkinpv/numr"
	"github.com/nasedkinpv/numr/internal/ast"
	"github.com/nasedkinpv/numr/internal/eval"
	"github.com/nasedkinpv/numr/internal/parser"
)

type fixedRate struct {
	from, to numr.Currency
	factor   float64
}

func (r fixedRate) Convert(amount float64, from, to numr.Currency) (float64, error) {
	if from == to {
		return amount, nil
	}
	if from == r.from && to == r.to {
		return amount * r.factor, nil
	}
	if from == r.to && to == r.from {
		return amount / r.factor, nil
	}
	return 0, numr.ErrCurrencyUnavailable
}

func evalLine(t *testing.T, env eval.Env, prev *numr.Value, rates numr.RateConverter, line string) (eval.Result, *numr.Value, *eval.Error) {
	t.Helper()
	stmt, err := parser.ParseLine(line)
	require.NoError(t, err, "ParseLine(%q)", line)
	return eval.Eval(stmt, env, prev, rates)
}

func TestEval_EmptyStmt(t *testing.T) {
	res, prev, err := evalLine(t, eval.Env{}, nil, nil, "")
	require.Nil(t, err)
	assert.False(t, res.HasValue)
	assert.Nil(t, prev)
}

func TestEval_ExprStmt(t *testing.T) {
	res, prev, err := evalLine(t, eval.Env{}, nil, nil, "2 + 3")
	require.Nil(t, err)
	require.True(t, res.HasValue)
	assert.Equal(t, 5.0, res.Value.Number())
	require.NotNil(t, prev)
	assert.Equal(t, 5.0, prev.Number())
}

func TestEval_Assign(t *testing.T) {
	env := eval.Env{}
	res, _, err := evalLine(t, env, nil, nil, "price = 100")
	require.Nil(t, err)
	assert.Equal(t, 100.0, res.Value.Number())
	assert.Equal(t, 100.0, env["price"].Number())
}

func TestEval_Continuation(t *testing.T) {
	env := eval.Env{}
	prev := numr.NewNumber(10)
	res, newPrev, err := evalLine(t, env, &prev, nil, "+ 5")
	require.Nil(t, err)
	assert.Equal(t, 15.0, res.Value.Number())
	assert.Equal(t, 15.0, newPrev.Number())
}

func TestEval_Continuation_NoPreviousResult(t *testing.T) {
	_, _, err := evalLine(t, eval.Env{}, nil, nil, "+ 5")
	require.NotNil(t, err)
	assert.Equal(t, eval.NoPreviousResult, err.Kind)
}

func TestEval_UnknownVariable(t *testing.T) {
	_, _, err := evalLine(t, eval.Env{}, nil, nil, "missing + 1")
	require.NotNil(t, err)
	assert.Equal(t, eval.UnknownVariable, err.Kind)
}

// A token like "flurbs" or "ZZZ" never survives parsing as a
// QuantityLit/MoneyLit unless unit.Resolve/tryCurrency already accept
// it, so these errors are exercised by evaluating a hand-built AST
// rather than through ParseLine.

func TestEval_UnknownUnit(t *testing.T) {
	stmt := &ast.ExprStmt{X: &ast.QuantityLit{Magnitude: 5, Unit: "flurbs"}}
	_, _, err := eval.Eval(stmt, eval.Env{}, nil, nil)
	require.NotNil(t, err)
	assert.Equal(t, eval.UnknownUnit, err.Kind)
}

func TestEval_UnknownCurrency(t *testing.T) {
	stmt := &ast.ExprStmt{X: &ast.MoneyLit{Currency: "ZZZ", Amount: 100}}
	_, _, err := eval.Eval(stmt, eval.Env{}, nil, nil)
	require.NotNil(t, err)
	assert.Equal(t, eval.UnknownCurrency, err.Kind)
}

func TestEval_PreviousResultIdent(t *testing.T) {
	prev := numr.NewNumber(7)
	res, _, err := evalLine(t, eval.Env{}, &prev, nil, "_ * 2")
	require.Nil(t, err)
	assert.Equal(t, 14.0, res.Value.Number())
}

func TestEval_Group(t *testing.T) {
	res, _, err := evalLine(t, eval.Env{}, nil, nil, "(2 + 3) * 4")
	require.Nil(t, err)
	assert.Equal(t, 20.0, res.Value.Number())
}

func TestEval_UnaryNegation(t *testing.T) {
	res, _, err := evalLine(t, eval.Env{}, nil, nil, "-5")
	require.Nil(t, err)
	assert.Equal(t, -5.0, res.Value.Number())
}

func TestEval_Power_RightAssociative(t *testing.T) {
	res, _, err := evalLine(t, eval.Env{}, nil, nil, "2^3^2")
	require.Nil(t, err)
	assert.Equal(t, 512.0, res.Value.Number())
}

func TestEval_PercentSuffix(t *testing.T) {
	res, _, err := evalLine(t, eval.Env{}, nil, nil, "20%")
	require.Nil(t, err)
	assert.Equal(t, numr.KindPercentage, res.Value.Kind())
	assert.Equal(t, 0.2, res.Value.Percent())
}

func TestEval_PercentOf(t *testing.T) {
	res, _, err := evalLine(t, eval.Env{}, nil, nil, "20% of 150")
	require.Nil(t, err)
	assert.Equal(t, 30.0, res.Value.Number())
}

func TestEval_Conversion_Quantity(t *testing.T) {
	res, _, err := evalLine(t, eval.Env{}, nil, nil, "100 km in m")
	require.Nil(t, err)
	assert.Equal(t, numr.KindQuantity, res.Value.Kind())
	assert.Equal(t, 100000.0, res.Value.Qty())
}

func TestEval_Conversion_Quantity_IncompatibleDimensions(t *testing.T) {
	_, _, err := evalLine(t, eval.Env{}, nil, nil, "100 m in s")
	require.NotNil(t, err)
	assert.Equal(t, eval.IncompatibleDimensions, err.Kind)
}

func TestEval_Conversion_Money_NoRates(t *testing.T) {
	_, _, err := evalLine(t, eval.Env{}, nil, nil, "$100 in EUR")
	require.NotNil(t, err)
	assert.Equal(t, eval.CurrencyUnavailable, err.Kind)
}

func TestEval_Conversion_Money_WithRates(t *testing.T) {
	rates := fixedRate{from: numr.USD, to: numr.EUR, factor: 0.9}
	res, _, err := evalLine(t, eval.Env{}, nil, rates, "$100 in EUR")
	require.Nil(t, err)
	assert.Equal(t, numr.EUR, res.Value.Money().Curr())
	assert.Equal(t, 90.0, res.Value.Money().Float64())
}

func TestEval_Conversion_Money_SameCurrency(t *testing.T) {
	res, _, err := evalLine(t, eval.Env{}, nil, nil, "$100 in USD")
	require.Nil(t, err)
	assert.Equal(t, 100.0, res.Value.Money().Float64())
}

func TestEval_DivisionByZero(t *testing.T) {
	_, _, err := evalLine(t, eval.Env{}, nil, nil, "5 / 0")
	require.NotNil(t, err)
	assert.Equal(t, eval.DivisionByZero, err.Kind)
}

func TestEval_AddMoneyPercentage(t *testing.T) {
	res, _, err := evalLine(t, eval.Env{}, nil, nil, "$100 + 8%")
	require.Nil(t, err)
	assert.Equal(t, 108.0, res.Value.Money().Float64())
}

func TestEval_AddMoneyAndNumber_TypeMismatch(t *testing.T) {
	_, _, err := evalLine(t, eval.Env{}, nil, nil, "$100 + 50")
	require.NotNil(t, err)
	assert.Equal(t, eval.TypeMismatch, err.Kind)
}
