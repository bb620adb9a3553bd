// Package eval implements the tree-walking evaluator: it reduces an
// internal/ast statement against a variable environment, a previous-
// result register, and a rate-cache snapshot into a Value or a typed
// Error.
package eval

import (
	"errors"

	"github.com/nasedkinpv/numr"
	"github.com/nasedkinpv/numr/internal/ast"
	"github.com/nasedkinpv/numr/internal/unit"
)

// Env is the variable environment a document accumulates as its lines
// are evaluated. It is mutated only by Assign statements, and only
// after their right-hand side evaluates successfully.
type Env map[string]numr.Value

// Result is what evaluating one Stmt produces: a Value when the line
// yields one (everything but EmptyStmt). Eval returns the updated
// previous-result register alongside it.
type Result struct {
	Value    numr.Value
	HasValue bool
}

// Eval reduces one statement. rates may be nil; it is only consulted
// for cross-currency Money+Money/Money-Money (including sum/avg), for
// cross-currency min/max comparisons, and for `in CUR` conversions
// targeting a currency other than the operand's own.
//
// Per spec, fetching rates or any external I/O is forbidden inside
// Eval — rates is a pure snapshot the caller took before calling in.
func Eval(stmt ast.Stmt, env Env, prev *numr.Value, rates numr.RateConverter) (Result, *numr.Value, *Error) {
	switch s := stmt.(type) {
	case *ast.EmptyStmt:
		return Result{}, prev, nil

	case *ast.ExprStmt:
		v, err := evalExpr(s.X, env, prev, rates)
		if err != nil {
			return Result{}, prev, err
		}
		return Result{Value: v, HasValue: true}, &v, nil

	case *ast.Assign:
		v, err := evalExpr(s.X, env, prev, rates)
		if err != nil {
			return Result{}, prev, err
		}
		env[s.Name] = v
		return Result{Value: v, HasValue: true}, &v, nil

	case *ast.Continuation:
		if prev == nil {
			return Result{}, prev, errAt(NoPreviousResult, s.Sp, "no previous result for continuation")
		}
		rhs, err := evalExpr(s.X, env, prev, rates)
		if err != nil {
			return Result{}, prev, err
		}
		v, verr := applyBinary(s.Op, *prev, rhs, s.Sp, rates)
		if verr != nil {
			return Result{}, prev, verr
		}
		return Result{Value: v, HasValue: true}, &v, nil

	default:
		return Result{}, prev, errAt(TypeMismatch, stmt.Span(), "unhandled statement")
	}
}

func evalExpr(e ast.Expr, env Env, prev *numr.Value, rates numr.RateConverter) (numr.Value, *Error) {
	switch x := e.(type) {
	case *ast.NumberLit:
		return numr.NewNumber(x.Value), nil

	case *ast.MoneyLit:
		c, err := numr.ParseCurr(x.Currency)
		if err != nil {
			return numr.Value{}, errAt(UnknownCurrency, x.Sp, "unknown currency %q", x.Currency)
		}
		return numr.NewMoneyValue(numr.NewMoney(c, x.Amount)), nil

	case *ast.QuantityLit:
		u, ok := unit.Resolve(x.Unit)
		if !ok {
			return numr.Value{}, errAt(UnknownUnit, x.Sp, "unknown unit %q", x.Unit)
		}
		return numr.NewQuantity(x.Magnitude, u), nil

	case *ast.Ident:
		if x.Name == "_" {
			if prev == nil {
				return numr.Value{}, errAt(NoPreviousResult, x.Sp, "no previous result")
			}
			return *prev, nil
		}
		v, ok := env[x.Name]
		if !ok {
			return numr.Value{}, errAt(UnknownVariable, x.Sp, "unknown variable %q", x.Name)
		}
		return v, nil

	case *ast.Group:
		return evalExpr(x.X, env, prev, rates)

	case *ast.UnaryOp:
		v, err := evalExpr(x.X, env, prev, rates)
		if err != nil {
			return numr.Value{}, err
		}
		return negate(v, x.Sp)

	case *ast.BinaryOp:
		l, err := evalExpr(x.X, env, prev, rates)
		if err != nil {
			return numr.Value{}, err
		}
		r, err := evalExpr(x.Y, env, prev, rates)
		if err != nil {
			return numr.Value{}, err
		}
		return applyBinary(x.Op, l, r, x.Sp, rates)

	case *ast.Power:
		l, err := evalExpr(x.X, env, prev, rates)
		if err != nil {
			return numr.Value{}, err
		}
		r, err := evalExpr(x.Y, env, prev, rates)
		if err != nil {
			return numr.Value{}, err
		}
		v, perr := numr.Pow(l, r)
		if perr != nil {
			return numr.Value{}, wrap(perr, x.Sp)
		}
		return v, nil

	case *ast.PercentSuffix:
		v, err := evalExpr(x.X, env, prev, rates)
		if err != nil {
			return numr.Value{}, err
		}
		if v.Kind() != numr.KindNumber {
			return numr.Value{}, errAt(TypeMismatch, x.Sp, "%% suffix requires a Number, got %s", v.Kind())
		}
		return numr.NewPercentage(v.Number() / 100), nil

	case *ast.PercentOf:
		p, err := evalExpr(x.Percent, env, prev, rates)
		if err != nil {
			return numr.Value{}, err
		}
		rhs, err := evalExpr(x.X, env, prev, rates)
		if err != nil {
			return numr.Value{}, err
		}
		v, operr := numr.Of(p, rhs)
		if operr != nil {
			return numr.Value{}, wrap(operr, x.Sp)
		}
		return v, nil

	case *ast.Conversion:
		v, err := evalExpr(x.X, env, prev, rates)
		if err != nil {
			return numr.Value{}, err
		}
		return evalConversion(v, x.Target, x.Sp, rates)

	case *ast.Call:
		return evalCall(x, env, prev, rates)

	default:
		return numr.Value{}, errAt(TypeMismatch, e.Span(), "unhandled expression")
	}
}

func negate(v numr.Value, span ast.Span) (numr.Value, *Error) {
	switch v.Kind() {
	case numr.KindNumber:
		return numr.NewNumber(-v.Number()), nil
	case numr.KindPercentage:
		return numr.NewPercentage(-v.Percent()), nil
	case numr.KindQuantity:
		return numr.NewQuantity(-v.Qty(), v.Unit()), nil
	case numr.KindMoney:
		return numr.NewMoneyValue(v.Money().Neg()), nil
	default:
		return numr.Value{}, errAt(TypeMismatch, span, "cannot negate %s", v.Kind())
	}
}

func applyBinary(op string, l, r numr.Value, span ast.Span, rates numr.RateConverter) (numr.Value, *Error) {
	var v numr.Value
	var err error
	switch op {
	case "+":
		v, err = numr.Add(l, r, rates)
	case "-":
		v, err = numr.Sub(l, r, rates)
	case "*", "·":
		v, err = numr.Mul(l, r)
	case "/":
		v, err = numr.Div(l, r)
	case "^":
		v, err = numr.Pow(l, r)
	default:
		return numr.Value{}, errAt(TypeMismatch, span, "unknown operator %q", op)
	}
	if err != nil {
		return numr.Value{}, wrap(err, span)
	}
	return v, nil
}

// wrap classifies an error returned by the root package's value
// algebra into the evaluator's typed taxonomy.
func wrap(err error, span ast.Span) *Error {
	switch {
	case errors.Is(err, numr.ErrIncompatibleDimensions), errors.Is(err, unit.ErrIncompatibleDimensions), errors.Is(err, unit.ErrAffineCompound):
		return &Error{Kind: IncompatibleDimensions, Span: span, Message: err.Error(), Cause: err}
	case errors.Is(err, numr.ErrCurrencyUnavailable):
		return &Error{Kind: CurrencyUnavailable, Span: span, Message: err.Error(), Cause: err}
	case errors.Is(err, numr.ErrDivisionByZero):
		return &Error{Kind: DivisionByZero, Span: span, Message: err.Error(), Cause: err}
	case errors.Is(err, numr.ErrNonIntegerExponent), errors.Is(err, numr.ErrTypeMismatch):
		return &Error{Kind: TypeMismatch, Span: span, Message: err.Error(), Cause: err}
	default:
		return &Error{Kind: TypeMismatch, Span: span, Message: err.Error(), Cause: err}
	}
}

func evalConversion(v numr.Value, target string, span ast.Span, rates numr.RateConverter) (numr.Value, *Error) {
	switch v.Kind() {
	case numr.KindQuantity:
		u, ok := unit.Resolve(target)
		if !ok {
			return numr.Value{}, errAt(UnknownUnit, span, "unknown unit %q", target)
		}
		converted, cerr := unit.Convert(v.Qty(), v.Unit(), u)
		if cerr != nil {
			return numr.Value{}, errAt(IncompatibleDimensions, span, "cannot convert %s to %s", v.Unit().String(), u.String())
		}
		return numr.NewQuantity(converted, u), nil

	case numr.KindMoney:
		c, cerr := numr.ParseCurr(target)
		if cerr != nil {
			return numr.Value{}, errAt(UnknownCurrency, span, "unknown currency %q", target)
		}
		if c == v.Money().Curr() {
			return v, nil
		}
		if rates == nil {
			return numr.Value{}, errAt(CurrencyUnavailable, span, "no rate available to convert %s to %s", v.Money().Curr(), c)
		}
		amt, rerr := rates.Convert(v.Money().Float64(), v.Money().Curr(), c)
		if rerr != nil {
			return numr.Value{}, errAt(CurrencyUnavailable, span, "no rate available to convert %s to %s", v.Money().Curr(), c)
		}
		return numr.NewMoneyValue(numr.NewMoney(c, amt)), nil

	default:
		return numr.Value{}, errAt(TypeMismatch, span, "cannot convert %s", v.Kind())
	}
}
