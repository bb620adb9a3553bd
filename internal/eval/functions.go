package eval

import (
	"math"

	"github.com/nasedkinpv/numr"
	"github.com/nasedkinpv/numr/internal/ast"
	"github.com/nasedkinpv/numr/internal/unit"
)

func evalCall(c *ast.Call, env Env, prev *numr.Value, rates numr.RateConverter) (numr.Value, *Error) {
	args := make([]numr.Value, 0, len(c.Args))
	for _, a := range c.Args {
		v, err := evalExpr(a, env, prev, rates)
		if err != nil {
			return numr.Value{}, err
		}
		args = append(args, v)
	}

	switch c.Name {
	case "sum":
		return reduceList(c, args, func(acc, v numr.Value) (numr.Value, error) { return numr.Add(acc, v, rates) })
	case "avg":
		return avg(c, args, rates)
	case "min":
		return extremum(c, args, true, rates)
	case "max":
		return extremum(c, args, false, rates)
	case "sqrt":
		return unaryMath(c, args, "sqrt", math.Sqrt, sqrtUnit)
	case "abs":
		return unaryMath(c, args, "abs", math.Abs, sameUnit)
	case "round":
		return roundLike(c, args, math.Round)
	case "floor":
		return roundLike(c, args, math.Floor)
	case "ceil":
		return roundLike(c, args, math.Ceil)
	default:
		return numr.Value{}, errAt(UnknownVariable, c.Sp, "unknown function %q", c.Name)
	}
}

func arity(c *ast.Call, args []numr.Value, min int) *Error {
	if len(args) < min {
		return errAt(ArityError, c.Sp, "%s: expected at least %d argument(s), got %d", c.Name, min, len(args))
	}
	return nil
}

// reduceList folds a homogeneous list of Quantity/Money/Number values
// with combine, normalizing Quantity/Money arguments to the first
// argument's unit/currency before combining.
func reduceList(c *ast.Call, args []numr.Value, combine func(acc, v numr.Value) (numr.Value, error)) (numr.Value, *Error) {
	if err := arity(c, args, 1); err != nil {
		return numr.Value{}, err
	}
	acc := args[0]
	for _, v := range args[1:] {
		next, err := combine(acc, v)
		if err != nil {
			return numr.Value{}, wrap(err, c.Sp)
		}
		acc = next
	}
	return acc, nil
}

func avg(c *ast.Call, args []numr.Value, rates numr.RateConverter) (numr.Value, *Error) {
	sum, err := reduceList(c, args, func(acc, v numr.Value) (numr.Value, error) { return numr.Add(acc, v, rates) })
	if err != nil {
		return numr.Value{}, err
	}
	n := numr.NewNumber(float64(len(args)))
	avgV, derr := numr.Div(sum, n)
	if derr != nil {
		return numr.Value{}, wrap(derr, c.Sp)
	}
	return avgV, nil
}

func extremum(c *ast.Call, args []numr.Value, wantMin bool, rates numr.RateConverter) (numr.Value, *Error) {
	if err := arity(c, args, 1); err != nil {
		return numr.Value{}, err
	}
	best := args[0]
	for _, v := range args[1:] {
		cmp, err := compareValues(best, v, rates)
		if err != nil {
			return numr.Value{}, wrap(err, c.Sp)
		}
		if (wantMin && cmp > 0) || (!wantMin && cmp < 0) {
			best = v
		}
	}
	return best, nil
}

// compareValues compares two same-kind values, converting the right
// side into the left side's unit/currency first, the same way
// sum/avg normalize list arguments via numr.Add.
func compareValues(a, b numr.Value, rates numr.RateConverter) (int, error) {
	if a.Kind() != b.Kind() {
		return 0, numr.ErrTypeMismatch
	}
	switch a.Kind() {
	case numr.KindNumber:
		return cmpFloat(a.Number(), b.Number()), nil
	case numr.KindPercentage:
		return cmpFloat(a.Percent(), b.Percent()), nil
	case numr.KindMoney:
		if a.Money().SameCurr(b.Money()) {
			return a.Money().Cmp(b.Money()), nil
		}
		if rates == nil {
			return 0, numr.ErrCurrencyUnavailable
		}
		conv, err := rates.Convert(b.Money().Float64(), b.Money().Curr(), a.Money().Curr())
		if err != nil {
			return 0, numr.ErrCurrencyUnavailable
		}
		return a.Money().Cmp(numr.NewMoney(a.Money().Curr(), conv)), nil
	case numr.KindQuantity:
		conv, err := unit.Convert(b.Qty(), b.Unit(), a.Unit())
		if err != nil {
			return 0, numr.ErrIncompatibleDimensions
		}
		return cmpFloat(a.Qty(), conv), nil
	default:
		return 0, numr.ErrTypeMismatch
	}
}

func cmpFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// unaryMath applies fn to a Number or Quantity's magnitude. unitFn
// transforms the operand's unit for the result (identity for abs,
// exponent-halving for sqrt).
func unaryMath(c *ast.Call, args []numr.Value, name string, fn func(float64) float64, unitFn func(unit.Unit) (unit.Unit, error)) (numr.Value, *Error) {
	if len(args) != 1 {
		return numr.Value{}, errAt(ArityError, c.Sp, "%s: expected exactly 1 argument, got %d", name, len(args))
	}
	v := args[0]
	switch v.Kind() {
	case numr.KindNumber:
		return numr.NewNumber(fn(v.Number())), nil
	case numr.KindQuantity:
		u, err := unitFn(v.Unit())
		if err != nil {
			return numr.Value{}, errAt(IncompatibleDimensions, c.Sp, "%s: %v", name, err)
		}
		return numr.NewQuantity(fn(v.Qty()), u), nil
	default:
		return numr.Value{}, errAt(TypeMismatch, c.Sp, "%s: expected Number or Quantity, got %s", name, v.Kind())
	}
}

func sameUnit(u unit.Unit) (unit.Unit, error) { return u, nil }

// sqrtUnit halves every dimension exponent, and fails if any exponent
// is odd (sqrt of an odd power has no integer-exponent result).
func sqrtUnit(u unit.Unit) (unit.Unit, error) {
	for _, exp := range u.Dims {
		if exp%2 != 0 {
			return unit.Unit{}, unit.ErrIncompatibleDimensions
		}
	}
	var halved unit.Fingerprint
	for i, exp := range u.Dims {
		halved[i] = exp / 2
	}
	symbol := u.Symbol
	if symbol != "" {
		symbol = "√" + symbol
	}
	return unit.Unit{Scale: math.Sqrt(u.Scale), Dims: halved, Symbol: symbol}, nil
}

// roundLike applies fn (math.Round/Floor/Ceil) to a Number's or
// Quantity's magnitude in its currently displayed unit, or to a
// Money's magnitude at its currency's own scale or an explicit one.
// An optional second argument gives the number of decimal digits
// (default 0 for Number/Quantity, the currency's scale for Money). For
// Money, a digit count below the currency's scale is raised to that
// scale.
func roundLike(c *ast.Call, args []numr.Value, fn func(float64) float64) (numr.Value, *Error) {
	if err := arity(c, args, 1); err != nil {
		return numr.Value{}, err
	}
	scale := 0
	if len(args) >= 2 {
		if args[1].Kind() != numr.KindNumber {
			return numr.Value{}, errAt(TypeMismatch, c.Sp, "%s: scale argument must be a Number", c.Name)
		}
		scale = int(args[1].Number())
	}
	mag := math.Pow10(scale)
	v := args[0]
	switch v.Kind() {
	case numr.KindNumber:
		return numr.NewNumber(fn(v.Number()*mag) / mag), nil
	case numr.KindQuantity:
		return numr.NewQuantity(fn(v.Qty()*mag)/mag, v.Unit()), nil
	case numr.KindMoney:
		m := v.Money()
		s := scale
		if len(args) < 2 {
			s = m.Curr().Scale()
		}
		switch c.Name {
		case "floor":
			return numr.NewMoneyValue(m.Floor(s)), nil
		case "ceil":
			return numr.NewMoneyValue(m.Ceil(s)), nil
		default:
			return numr.NewMoneyValue(m.Round(s)), nil
		}
	default:
		return numr.Value{}, errAt(TypeMismatch, c.Sp, "%s: expected Number, Quantity, or Money, got %s", c.Name, v.Kind())
	}
}
