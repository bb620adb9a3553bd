/*
Package numr implements the core value algebra for a text calculator:
currencies, monetary amounts, exchange rates, and the tagged [Value]
variant that combines them with dimensioned quantities and percentages.

# Representation

[Currency] is represented as an integer index into an in-memory array
storing properties defined by ISO 4217 plus a handful of crypto assets:
  - Code: a three-or-more letter alphabetic code.
  - Num: a three-digit ISO 4217 numeric code, empty for crypto assets.
  - Scale: digits after the decimal point for the minor unit.
  - Symbol: the conventional display glyph ("$", "€", "₿", ...).

[Money] pairs a [Currency] with a float64 magnitude. [ExchangeRate]
pairs a base and quote [Currency] with a positive float64 factor.

Binary floating point is a deliberate choice, not an oversight: this
calculator targets everyday financial and unit arithmetic, where
double precision is ample, and arbitrary-precision decimal arithmetic
would add complexity without a corresponding user-visible benefit.

# Value

[Value] is the tagged variant evaluated expressions reduce to: a
Number (dimensionless real), a Percentage (a ratio that remembers its
percent-ness for display and for the relative +/- operators), a
Quantity (a magnitude with a compound unit), or a Money. See
value.go for the full operator dispatch table.

# Errors

Construction functions return errors for malformed input. Once
constructed, most arithmetic methods on [Money] and [ExchangeRate]
panic on programmer error (currency mismatch, division by zero) —
callers (chiefly internal/eval) are expected to check compatibility
with methods like [Money.SameCurr] before calling, exactly as they
would check a slice index before indexing. User-facing errors for
expressions are produced by internal/eval as typed eval.Error values, never
as panics recovered at a distance.
*/
package numr
