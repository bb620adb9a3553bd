package numr

import (
	"errors"
	"fmt"
	"math"

	"github.com/nasedkinpv/numr/internal/unit"
)

// Kind discriminates the variant held by a Value.
type Kind uint8

const (
	// KindNumber is a dimensionless real number.
	KindNumber Kind = iota
	// KindPercentage is a ratio that remembers its percent-ness, so it
	// displays as "10%" and composes relatively under + and -.
	KindPercentage
	// KindQuantity is a magnitude paired with a compound unit.
	KindQuantity
	// KindMoney is a magnitude paired with a currency.
	KindMoney
)

func (k Kind) String() string {
	switch k {
	case KindNumber:
		return "Number"
	case KindPercentage:
		return "Percentage"
	case KindQuantity:
		return "Quantity"
	case KindMoney:
		return "Money"
	default:
		return "Unknown"
	}
}

var (
	// ErrTypeMismatch is returned when an operator has no dispatch rule
	// for the pair of operand kinds given to it.
	ErrTypeMismatch = errors.New("type mismatch")
	// ErrIncompatibleDimensions is returned when a Quantity-Quantity
	// operator requires matching dimension fingerprints and doesn't get
	// them.
	ErrIncompatibleDimensions = errors.New("incompatible dimensions")
	// ErrCurrencyUnavailable is returned when a Money-Money operator
	// needs a cross-currency conversion and none is supplied.
	ErrCurrencyUnavailable = errors.New("currency conversion unavailable")
	// ErrDivisionByZero is returned by / when the divisor is zero, in
	// variant combinations where that is a user-facing error rather
	// than a programmer-error panic (Money.Rat and Money.Quo panic
	// instead; Div checks the divisor before calling them).
	ErrDivisionByZero = errors.New("division by zero")
	// ErrNonIntegerExponent is returned by ^ on a Quantity when the
	// exponent is not an integer.
	ErrNonIntegerExponent = errors.New("quantity exponents must be integers")

	errUnknownKind = errors.New("unknown value kind")
)

// Value is the tagged variant that expressions evaluate to: a Number, a
// Percentage, a Quantity, or a Money. The zero Value is the Number 0.
type Value struct {
	kind   Kind
	number float64     // Number, Percentage (stored as ratio, not *100)
	qty    float64      // Quantity magnitude, in unit u
	unit   unit.Unit    // Quantity's compound unit
	money  Money        // Money
}

// NewNumber returns a Number value.
func NewNumber(n float64) Value { return Value{kind: KindNumber, number: n} }

// NewPercentage returns a Percentage value from a ratio (0.10 for "10%").
func NewPercentage(ratio float64) Value { return Value{kind: KindPercentage, number: ratio} }

// NewQuantity returns a Quantity value with magnitude n in unit u.
func NewQuantity(n float64, u unit.Unit) Value { return Value{kind: KindQuantity, qty: n, unit: u} }

// NewMoneyValue returns a Money value.
func NewMoneyValue(m Money) Value { return Value{kind: KindMoney, money: m} }

// Kind reports which variant v holds.
func (v Value) Kind() Kind { return v.kind }

// Number returns the magnitude of a Number value. Only meaningful when
// Kind() == KindNumber.
func (v Value) Number() float64 { return v.number }

// Percent returns the ratio of a Percentage value (0.10 for "10%"). Only
// meaningful when Kind() == KindPercentage.
func (v Value) Percent() float64 { return v.number }

// Qty returns the magnitude of a Quantity value. Only meaningful when
// Kind() == KindQuantity.
func (v Value) Qty() float64 { return v.qty }

// Unit returns the compound unit of a Quantity value. Only meaningful
// when Kind() == KindQuantity.
func (v Value) Unit() unit.Unit { return v.unit }

// Money returns the Money payload. Only meaningful when Kind() == KindMoney.
func (v Value) Money() Money { return v.money }

// String renders v for display, following the kind-specific format used
// throughout the evaluator and CLI.
func (v Value) String() string {
	switch v.kind {
	case KindNumber:
		return formatNumber(v.number)
	case KindPercentage:
		return formatNumber(v.number*100) + "%"
	case KindQuantity:
		return formatNumber(v.qty) + " " + v.unit.String()
	case KindMoney:
		return v.money.Display()
	default:
		return "<invalid value>"
	}
}

func formatNumber(f float64) string {
	return fmt.Sprintf("%g", f)
}

// RateConverter is the narrow interface the value algebra needs from the
// rate cache to perform cross-currency + and -. internal/rategraph.Graph
// satisfies it.
type RateConverter interface {
	Convert(amount float64, from, to Currency) (float64, error)
}

// Add implements the '+' row of the value algebra dispatch table. rates
// may be nil if both operands are known (by the caller) never to need a
// cross-currency conversion; Add returns ErrCurrencyUnavailable if it
// turns out to be needed and rates is nil or has no path.
func Add(a, b Value, rates RateConverter) (Value, error) {
	switch {
	case a.kind == KindNumber && b.kind == KindNumber:
		return NewNumber(a.number + b.number), nil

	case a.kind == KindNumber && b.kind == KindPercentage:
		return NewNumber(a.number * (1 + b.number)), nil
	case a.kind == KindPercentage && b.kind == KindNumber:
		return NewNumber(b.number * (1 + a.number)), nil

	case a.kind == KindPercentage && b.kind == KindPercentage:
		return NewPercentage(a.number + b.number), nil

	case a.kind == KindQuantity && b.kind == KindQuantity:
		return quantityAdd(a, b, 1)

	case a.kind == KindMoney && b.kind == KindMoney:
		return moneyAdd(a, b, 1, rates)

	case a.kind == KindMoney && b.kind == KindPercentage:
		return NewMoneyValue(a.money.Mul(1 + b.number)), nil
	case a.kind == KindPercentage && b.kind == KindMoney:
		return NewMoneyValue(b.money.Mul(1 + a.number)), nil

	case a.kind == KindQuantity && b.kind == KindPercentage:
		return NewQuantity(a.qty*(1+b.number), a.unit), nil
	case a.kind == KindPercentage && b.kind == KindQuantity:
		return NewQuantity(b.qty*(1+a.number), b.unit), nil

	default:
		return Value{}, fmt.Errorf("%s + %s: %w", a.kind, b.kind, ErrTypeMismatch)
	}
}

// Sub implements the '-' row. See Add for the rates parameter contract.
func Sub(a, b Value, rates RateConverter) (Value, error) {
	switch {
	case a.kind == KindNumber && b.kind == KindNumber:
		return NewNumber(a.number - b.number), nil

	case a.kind == KindNumber && b.kind == KindPercentage:
		return NewNumber(a.number * (1 - b.number)), nil

	case a.kind == KindPercentage && b.kind == KindPercentage:
		return NewPercentage(a.number - b.number), nil

	case a.kind == KindQuantity && b.kind == KindQuantity:
		return quantityAdd(a, b, -1)

	case a.kind == KindMoney && b.kind == KindMoney:
		return moneyAdd(a, b, -1, rates)

	case a.kind == KindMoney && b.kind == KindPercentage:
		return NewMoneyValue(a.money.Mul(1 - b.number)), nil

	case a.kind == KindQuantity && b.kind == KindPercentage:
		return NewQuantity(a.qty*(1-b.number), a.unit), nil

	default:
		return Value{}, fmt.Errorf("%s - %s: %w", a.kind, b.kind, ErrTypeMismatch)
	}
}

// quantityAdd implements Q+Q and Q-Q (sign -1 for subtraction): the
// right operand converts into the left operand's unit, which requires
// matching dimension fingerprints.
func quantityAdd(a, b Value, sign float64) (Value, error) {
	conv, err := unit.Convert(b.qty, b.unit, a.unit)
	if err != nil {
		return Value{}, fmt.Errorf("%s + %s: %w", a.unit.String(), b.unit.String(), ErrIncompatibleDimensions)
	}
	return NewQuantity(a.qty+sign*conv, a.unit), nil
}

// moneyAdd implements M+M and M-M (sign -1 for subtraction). Same
// currency needs no conversion; otherwise the result takes the left
// operand's currency and the right operand is converted via rates.
func moneyAdd(a, b Value, sign float64, rates RateConverter) (Value, error) {
	if a.money.SameCurr(b.money) {
		if sign > 0 {
			return NewMoneyValue(a.money.Add(b.money)), nil
		}
		return NewMoneyValue(a.money.Sub(b.money)), nil
	}
	if rates == nil {
		return Value{}, fmt.Errorf("%s %s: %w", a.money.Curr(), b.money.Curr(), ErrCurrencyUnavailable)
	}
	converted, err := rates.Convert(b.money.Float64(), b.money.Curr(), a.money.Curr())
	if err != nil {
		return Value{}, fmt.Errorf("%s %s: %w", a.money.Curr(), b.money.Curr(), ErrCurrencyUnavailable)
	}
	bInA := NewMoney(a.money.Curr(), converted)
	if sign > 0 {
		return NewMoneyValue(a.money.Add(bInA)), nil
	}
	return NewMoneyValue(a.money.Sub(bInA)), nil
}

// Mul implements the '*' row.
func Mul(a, b Value) (Value, error) {
	switch {
	case a.kind == KindNumber && b.kind == KindNumber:
		return NewNumber(a.number * b.number), nil

	case a.kind == KindNumber && b.kind == KindPercentage:
		return NewNumber(a.number * b.number), nil
	case a.kind == KindPercentage && b.kind == KindNumber:
		return NewNumber(a.number * b.number), nil

	case a.kind == KindPercentage && b.kind == KindPercentage:
		return NewPercentage(a.number * b.number), nil

	case a.kind == KindQuantity && b.kind == KindQuantity:
		merged, err := a.unit.Mul(b.unit)
		if err != nil {
			return Value{}, fmt.Errorf("%s * %s: %w", a.unit.String(), b.unit.String(), err)
		}
		return NewQuantity(a.qty*b.qty, merged), nil

	case a.kind == KindQuantity && b.kind == KindNumber:
		return NewQuantity(a.qty*b.number, a.unit), nil
	case a.kind == KindNumber && b.kind == KindQuantity:
		return NewQuantity(a.number*b.qty, b.unit), nil

	case a.kind == KindMoney && b.kind == KindNumber:
		return NewMoneyValue(a.money.Mul(b.number)), nil
	case a.kind == KindNumber && b.kind == KindMoney:
		return NewMoneyValue(b.money.Mul(a.number)), nil

	case a.kind == KindMoney && b.kind == KindPercentage:
		return NewMoneyValue(a.money.Mul(b.number)), nil
	case a.kind == KindPercentage && b.kind == KindMoney:
		return NewMoneyValue(b.money.Mul(a.number)), nil

	case a.kind == KindQuantity && b.kind == KindPercentage:
		return NewQuantity(a.qty*b.number, a.unit), nil
	case a.kind == KindPercentage && b.kind == KindQuantity:
		return NewQuantity(b.qty*a.number, b.unit), nil

	default:
		return Value{}, fmt.Errorf("%s * %s: %w", a.kind, b.kind, ErrTypeMismatch)
	}
}

// Div implements the '/' row.
func Div(a, b Value) (Value, error) {
	switch {
	case a.kind == KindNumber && b.kind == KindNumber:
		if b.number == 0 {
			return Value{}, fmt.Errorf("%v / %v: %w", a.number, b.number, ErrDivisionByZero)
		}
		return NewNumber(a.number / b.number), nil

	case a.kind == KindNumber && b.kind == KindPercentage:
		if b.number == 0 {
			return Value{}, ErrDivisionByZero
		}
		return NewNumber(a.number / b.number), nil

	case a.kind == KindPercentage && b.kind == KindPercentage:
		if b.number == 0 {
			return Value{}, ErrDivisionByZero
		}
		return NewPercentage(a.number / b.number), nil

	case a.kind == KindQuantity && b.kind == KindQuantity:
		if b.qty == 0 {
			return Value{}, ErrDivisionByZero
		}
		merged, err := a.unit.Div(b.unit)
		if err != nil {
			return Value{}, fmt.Errorf("%s / %s: %w", a.unit.String(), b.unit.String(), err)
		}
		mag := a.qty / b.qty
		if merged.Dims.IsDimensionless() {
			return NewNumber(mag * merged.Scale), nil
		}
		return NewQuantity(mag, merged), nil

	case a.kind == KindQuantity && b.kind == KindNumber:
		if b.number == 0 {
			return Value{}, ErrDivisionByZero
		}
		return NewQuantity(a.qty/b.number, a.unit), nil

	case a.kind == KindMoney && b.kind == KindMoney:
		if !a.money.SameCurr(b.money) {
			return Value{}, fmt.Errorf("%s / %s: %w", a.money.Curr(), b.money.Curr(), ErrTypeMismatch)
		}
		if b.money.IsZero() {
			return Value{}, ErrDivisionByZero
		}
		return NewNumber(a.money.Rat(b.money)), nil

	case a.kind == KindMoney && b.kind == KindNumber:
		if b.number == 0 {
			return Value{}, ErrDivisionByZero
		}
		return NewMoneyValue(a.money.Quo(b.number)), nil

	case a.kind == KindMoney && b.kind == KindPercentage:
		if b.number == 0 {
			return Value{}, ErrDivisionByZero
		}
		return NewMoneyValue(a.money.Quo(b.number)), nil

	case a.kind == KindQuantity && b.kind == KindPercentage:
		if b.number == 0 {
			return Value{}, ErrDivisionByZero
		}
		return NewQuantity(a.qty/b.number, a.unit), nil

	default:
		return Value{}, fmt.Errorf("%s / %s: %w", a.kind, b.kind, ErrTypeMismatch)
	}
}

// Pow implements '^'. Only Number^Number and Quantity^integer are
// defined; every other pair is a type mismatch.
func Pow(a, b Value) (Value, error) {
	switch {
	case a.kind == KindNumber && b.kind == KindNumber:
		return NewNumber(math.Pow(a.number, b.number)), nil

	case a.kind == KindQuantity && b.kind == KindNumber:
		k := int(b.number)
		if float64(k) != b.number {
			return Value{}, fmt.Errorf("%v^%v: %w", a.qty, b.number, ErrNonIntegerExponent)
		}
		u, err := a.unit.Pow(k)
		if err != nil {
			return Value{}, fmt.Errorf("%s^%d: %w", a.unit.String(), k, err)
		}
		return NewQuantity(math.Pow(a.qty, b.number), u), nil

	default:
		return Value{}, fmt.Errorf("%s ^ %s: %w", a.kind, b.kind, ErrTypeMismatch)
	}
}

// Of implements 'p% of E': multiplicative application of a percentage
// to any other kind, reusing Mul's dispatch.
func Of(p, e Value) (Value, error) {
	if p.kind != KindPercentage {
		return Value{}, fmt.Errorf("%s of %s: %w", p.kind, e.kind, ErrTypeMismatch)
	}
	return Mul(p, e)
}
