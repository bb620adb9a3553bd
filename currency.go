package numr

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"strings"
)

//go:generate go run scripts/currency/codegen.go

// CurrencyKind distinguishes fiat currencies, governed by ISO 4217,
// from crypto assets, which have no governing standard.
type CurrencyKind uint8

const (
	KindFiat CurrencyKind = iota
	KindCrypto
)

// Currency represents a unit of account in the global financial system.
// The zero value is XXX, which indicates an unknown currency.
//
// Currency is implemented as an integer index into an in-memory array that
// stores properties such as code, scale and display symbol. This design,
// taken from the currency catalog this type is modeled on, keeps Currency
// values safe for concurrent use by multiple goroutines: the catalog is
// built once at init and never mutated.
type Currency uint8

var errUnknownCurrency = errors.New("unknown currency")

// ParseCurr converts a string to a currency. The input may be an ISO 4217
// alphabetic code ("USD"), numeric code ("840"), a display symbol ("$"),
// or a known alias ("euro"), matched case-insensitively for codes/aliases
// and exactly for symbols.
func ParseCurr(curr string) (Currency, error) {
	if c, ok := currLookup[curr]; ok {
		return c, nil
	}
	if c, ok := currLookup[strings.ToUpper(curr)]; ok {
		return c, nil
	}
	if c, ok := currLookup[strings.ToLower(curr)]; ok {
		return c, nil
	}
	return XXX, errUnknownCurrency
}

// MustParseCurr is like [ParseCurr] but panics if the string cannot be parsed.
func MustParseCurr(curr string) Currency {
	c, err := ParseCurr(curr)
	if err != nil {
		panic(fmt.Sprintf("MustParseCurr(%q) failed: %v", curr, err))
	}
	return c
}

// Scale returns the number of digits after the decimal point required for
// the minor unit of the currency. A scale of 0 means the currency has no
// minor unit.
func (c Currency) Scale() int {
	return int(currTable[c].scale)
}

// Num returns the ISO 4217 numeric code, or "" for currencies without one
// (crypto assets).
func (c Currency) Num() string {
	return currTable[c].num
}

// Code returns the currency's canonical alphabetic code. Always valid.
func (c Currency) Code() string {
	return currTable[c].code
}

// Symbol returns the currency's conventional display symbol, falling back
// to the code itself when no dedicated symbol is registered.
func (c Currency) Symbol() string {
	if s := currTable[c].symbol; s != "" {
		return s
	}
	return currTable[c].code
}

// Kind reports whether the currency is fiat (ISO 4217) or crypto.
func (c Currency) Kind() CurrencyKind {
	return currTable[c].kind
}

// String implements fmt.Stringer.
func (c Currency) String() string {
	return c.Code()
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Currency) UnmarshalText(text []byte) error {
	var err error
	*c, err = ParseCurr(string(text))
	return err
}

// MarshalText implements encoding.TextMarshaler.
func (c Currency) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// Scan implements sql.Scanner.
func (c *Currency) Scan(v any) error {
	var err error
	switch v := v.(type) {
	case string:
		*c, err = ParseCurr(v)
	default:
		err = fmt.Errorf("failed to convert from %T to %T", v, XXX)
	}
	return err
}

// Value implements driver.Valuer.
func (c Currency) Value() (driver.Value, error) {
	return c.String(), nil
}

// Format implements fmt.Formatter.
//
//	%c, %s, %v: USD
//	%q:         "USD"
func (c Currency) Format(state fmt.State, verb rune) {
	curr := c.Code()
	currlen := len(curr)

	lquote, tquote := 0, 0
	if verb == 'q' || verb == 'Q' {
		lquote, tquote = 1, 1
	}

	width := lquote + currlen + tquote
	lspaces, tspaces := 0, 0
	if w, ok := state.Width(); ok && w > width {
		if state.Flag('-') {
			tspaces = w - width
		} else {
			lspaces = w - width
		}
		width = w
	}

	buf := make([]byte, width)
	pos := width - 1
	for i := 0; i < tspaces; i++ {
		buf[pos] = ' '
		pos--
	}
	if tquote > 0 {
		buf[pos] = '"'
		pos--
	}
	for i := currlen; i > 0; i-- {
		buf[pos] = curr[i-1]
		pos--
	}
	if lquote > 0 {
		buf[pos] = '"'
		pos--
	}
	for i := 0; i < lspaces; i++ {
		buf[pos] = ' '
		pos--
	}

	switch verb {
	case 'q', 'Q', 's', 'S', 'v', 'V', 'c', 'C':
		state.Write(buf)
	default:
		fmt.Fprintf(state, "%%!%c(numr.Currency=%s)", verb, buf)
	}
}

// NullCurrency represents a currency that can be null, for the optional
// "base" field of a persisted rate-cache document (see internal/ratecache).
type NullCurrency struct {
	Currency Currency
	Valid    bool
}

// Scan implements sql.Scanner.
func (n *NullCurrency) Scan(value any) error {
	if value == nil {
		n.Currency, n.Valid = XXX, false
		return nil
	}
	if err := n.Currency.Scan(value); err != nil {
		n.Currency, n.Valid = XXX, false
		return err
	}
	n.Valid = true
	return nil
}

// Value implements driver.Valuer.
func (n NullCurrency) Value() (driver.Value, error) {
	if !n.Valid {
		return nil, nil
	}
	return n.Currency.Value()
}
