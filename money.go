package numr

import (
	"errors"
	"fmt"
	"math"
	"strconv"
)

var (
	errCurrencyMismatch = errors.New("currency mismatch")
	errDivisionByZero   = errors.New("division by zero")
)

// Money represents a monetary amount denominated in a [Currency].
// The zero value is "XXX 0". Money is safe for concurrent use, since
// it is an immutable value type.
//
// Unlike the arbitrary-precision Amount this type is modeled on, Money
// stores its magnitude as a float64: numr's specification treats binary
// floating point as sufficient and explicitly rules out arbitrary
// precision arithmetic as a goal.
type Money struct {
	curr  Currency
	value float64
}

// NewMoney returns a new Money value. The magnitude is rounded to the
// currency's scale.
func NewMoney(curr Currency, amount float64) Money {
	return Money{curr: curr, value: roundToScale(amount, curr.Scale())}
}

// ParseMoney parses a currency code and a decimal amount string into Money.
func ParseMoney(curr, amount string) (Money, error) {
	c, err := ParseCurr(curr)
	if err != nil {
		return Money{}, fmt.Errorf("currency parsing: %w", err)
	}
	f, err := strconv.ParseFloat(amount, 64)
	if err != nil {
		return Money{}, fmt.Errorf("amount parsing: %w", err)
	}
	return NewMoney(c, f), nil
}

// MustParseMoney is like [ParseMoney] but panics on error.
func MustParseMoney(curr, amount string) Money {
	m, err := ParseMoney(curr, amount)
	if err != nil {
		panic(fmt.Sprintf("ParseMoney(%q, %q) failed: %v", curr, amount, err))
	}
	return m
}

// Curr returns the currency of the amount.
func (m Money) Curr() Currency { return m.curr }

// Float64 returns the magnitude as a float64.
func (m Money) Float64() float64 { return m.value }

// Sign returns -1, 0, or +1 depending on the sign of m.
func (m Money) Sign() int {
	switch {
	case m.value < 0:
		return -1
	case m.value > 0:
		return 1
	default:
		return 0
	}
}

// IsNeg reports whether m < 0.
func (m Money) IsNeg() bool { return m.value < 0 }

// IsPos reports whether m > 0.
func (m Money) IsPos() bool { return m.value > 0 }

// IsZero reports whether m == 0.
func (m Money) IsZero() bool { return m.value == 0 }

// Abs returns the absolute value of m.
func (m Money) Abs() Money { return NewMoney(m.curr, math.Abs(m.value)) }

// Neg returns m with its sign flipped.
func (m Money) Neg() Money { return NewMoney(m.curr, -m.value) }

// SameCurr reports whether m and b are denominated in the same currency.
// Callers must check this before calling the panicking arithmetic methods
// below.
func (m Money) SameCurr(b Money) bool { return m.curr == b.curr }

// Add returns the sum of m and b.
//
// Add panics if m and b are denominated in different currencies. Use
// [Money.SameCurr] to check first.
func (m Money) Add(b Money) Money {
	if !m.SameCurr(b) {
		panic(fmt.Sprintf("%q.Add(%q) failed: %v", m, b, errCurrencyMismatch))
	}
	return NewMoney(m.curr, m.value+b.value)
}

// Sub returns the difference of m and b.
//
// Sub panics if m and b are denominated in different currencies. Use
// [Money.SameCurr] to check first.
func (m Money) Sub(b Money) Money {
	if !m.SameCurr(b) {
		panic(fmt.Sprintf("%q.Sub(%q) failed: %v", m, b, errCurrencyMismatch))
	}
	return NewMoney(m.curr, m.value-b.value)
}

// Mul returns m scaled by factor e.
func (m Money) Mul(e float64) Money {
	return NewMoney(m.curr, m.value*e)
}

// Quo returns m divided by divisor e.
//
// Quo panics if e is zero. Use e == 0 check, or prefer the evaluator's
// DivisionByZero error path when e comes from user input.
func (m Money) Quo(e float64) Money {
	if e == 0 {
		panic(fmt.Sprintf("%q.Quo(%v) failed: %v", m, e, errDivisionByZero))
	}
	return NewMoney(m.curr, m.value/e)
}

// Rat returns the ratio of m to b, a dimensionless float64. Both amounts
// must share a currency.
//
// Rat panics if b is zero or if m and b are denominated in different
// currencies.
func (m Money) Rat(b Money) float64 {
	if !m.SameCurr(b) {
		panic(fmt.Sprintf("%q.Rat(%q) failed: %v", m, b, errCurrencyMismatch))
	}
	if b.value == 0 {
		panic(fmt.Sprintf("%q.Rat(%q) failed: %v", m, b, errDivisionByZero))
	}
	return m.value / b.value
}

// Split returns a slice of n Money values that sum to m, as equal as
// possible; any remainder (due to scale rounding) accrues to the last
// part of the slice.
//
// Split panics if n is not positive.
func (m Money) Split(n int) []Money {
	if n < 1 {
		panic(fmt.Sprintf("%q.Split(%d) failed: number of parts must be positive", m, n))
	}
	base := roundToScale(m.value/float64(n), m.curr.Scale())
	res := make([]Money, n)
	remaining := m.value
	for i := 0; i < n; i++ {
		if i == n-1 {
			res[i] = NewMoney(m.curr, remaining)
		} else {
			res[i] = NewMoney(m.curr, base)
			remaining -= base
		}
	}
	return res
}

// Round returns m rounded to the given number of digits after the decimal
// point. If scale is less than the currency's scale, the currency's scale
// is used instead.
func (m Money) Round(scale int) Money {
	if scale < m.curr.Scale() {
		scale = m.curr.Scale()
	}
	return Money{curr: m.curr, value: roundToScale(m.value, scale)}
}

// RoundToCurr rounds m to its currency's scale.
func (m Money) RoundToCurr() Money { return m.Round(m.curr.Scale()) }

// Ceil returns m rounded up (toward +Inf) to the given scale.
func (m Money) Ceil(scale int) Money {
	if scale < m.curr.Scale() {
		scale = m.curr.Scale()
	}
	mag := math.Pow10(scale)
	return Money{curr: m.curr, value: math.Ceil(m.value*mag) / mag}
}

// Floor returns m rounded down (toward -Inf) to the given scale.
func (m Money) Floor(scale int) Money {
	if scale < m.curr.Scale() {
		scale = m.curr.Scale()
	}
	mag := math.Pow10(scale)
	return Money{curr: m.curr, value: math.Floor(m.value*mag) / mag}
}

// Trunc returns m truncated toward zero to the given scale.
func (m Money) Trunc(scale int) Money {
	if scale < m.curr.Scale() {
		scale = m.curr.Scale()
	}
	mag := math.Pow10(scale)
	return Money{curr: m.curr, value: math.Trunc(m.value*mag) / mag}
}

// Cmp compares m and b numerically, returning -1, 0, or +1.
//
// Cmp panics if m and b are denominated in different currencies.
func (m Money) Cmp(b Money) int {
	if !m.SameCurr(b) {
		panic(fmt.Sprintf("%q.Cmp(%q) failed: %v", m, b, errCurrencyMismatch))
	}
	switch {
	case m.value < b.value:
		return -1
	case m.value > b.value:
		return 1
	default:
		return 0
	}
}

// Min returns the smaller of m and b.
func (m Money) Min(b Money) Money {
	if m.Cmp(b) <= 0 {
		return m
	}
	return b
}

// Max returns the larger of m and b.
func (m Money) Max(b Money) Money {
	if m.Cmp(b) >= 0 {
		return m
	}
	return b
}

// String implements fmt.Stringer, e.g. "USD 108.00".
func (m Money) String() string {
	return fmt.Sprintf("%s %.*f", m.curr.String(), m.curr.Scale(), m.value)
}

// Display renders m using its currency's conventional symbol, e.g. "$108.00".
func (m Money) Display() string {
	return fmt.Sprintf("%s%.*f", m.curr.Symbol(), m.curr.Scale(), m.value)
}

func roundToScale(v float64, scale int) float64 {
	mag := math.Pow10(scale)
	return math.Round(v*mag) / mag
}
