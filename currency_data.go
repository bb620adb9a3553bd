package numr

// currencyInfo holds the static properties of a single currency.
// Generated by hand in the shape scripts/currency/codegen.go would
// produce from a CSV; see that file for the intended regeneration path.
type currencyInfo struct {
	code   string
	num    string
	scale  uint8
	symbol string
	kind   CurrencyKind
}

// Currency indices. XXX (the zero value) is the "unknown currency"
// sentinel, matching the ISO 4217 convention.
const (
	XXX Currency = iota
	USD
	EUR
	GBP
	JPY
	CHF
	CAD
	AUD
	NZD
	CNY
	HKD
	SGD
	INR
	BRL
	MXN
	ZAR
	SEK
	NOK
	DKK
	PLN
	RUB
	TRY
	KRW
	AED
	SAR
	ILS
	THB
	IDR
	PHP
	VND
	UAH
	CZK
	HUF
	OMR
	KWD
	BHD
	BTC
	ETH
	USDT
	USDC
	XRP
)

var currTable = [...]currencyInfo{
	XXX:  {"XXX", "999", 0, "", KindFiat},
	USD:  {"USD", "840", 2, "$", KindFiat},
	EUR:  {"EUR", "978", 2, "€", KindFiat},
	GBP:  {"GBP", "826", 2, "£", KindFiat},
	JPY:  {"JPY", "392", 0, "¥", KindFiat},
	CHF:  {"CHF", "756", 2, "Fr", KindFiat},
	CAD:  {"CAD", "124", 2, "$", KindFiat},
	AUD:  {"AUD", "036", 2, "$", KindFiat},
	NZD:  {"NZD", "554", 2, "$", KindFiat},
	CNY:  {"CNY", "156", 2, "¥", KindFiat},
	HKD:  {"HKD", "344", 2, "$", KindFiat},
	SGD:  {"SGD", "702", 2, "$", KindFiat},
	INR:  {"INR", "356", 2, "₹", KindFiat},
	BRL:  {"BRL", "986", 2, "R$", KindFiat},
	MXN:  {"MXN", "484", 2, "$", KindFiat},
	ZAR:  {"ZAR", "710", 2, "R", KindFiat},
	SEK:  {"SEK", "752", 2, "kr", KindFiat},
	NOK:  {"NOK", "578", 2, "kr", KindFiat},
	DKK:  {"DKK", "208", 2, "kr", KindFiat},
	PLN:  {"PLN", "985", 2, "zł", KindFiat},
	RUB:  {"RUB", "643", 2, "₽", KindFiat},
	TRY:  {"TRY", "949", 2, "₺", KindFiat},
	KRW:  {"KRW", "410", 0, "₩", KindFiat},
	AED:  {"AED", "784", 2, "د.إ", KindFiat},
	SAR:  {"SAR", "682", 2, "﷼", KindFiat},
	ILS:  {"ILS", "376", 2, "₪", KindFiat},
	THB:  {"THB", "764", 2, "฿", KindFiat},
	IDR:  {"IDR", "360", 2, "Rp", KindFiat},
	PHP:  {"PHP", "608", 2, "₱", KindFiat},
	VND:  {"VND", "704", 0, "₫", KindFiat},
	UAH:  {"UAH", "980", 2, "₴", KindFiat},
	CZK:  {"CZK", "203", 2, "Kč", KindFiat},
	HUF:  {"HUF", "348", 2, "Ft", KindFiat},
	OMR:  {"OMR", "512", 3, "﷼", KindFiat},
	KWD:  {"KWD", "414", 3, "د.ك", KindFiat},
	BHD:  {"BHD", "048", 3, ".د.ب", KindFiat},
	BTC:  {"BTC", "", 8, "₿", KindCrypto},
	ETH:  {"ETH", "", 18, "Ξ", KindCrypto},
	USDT: {"USDT", "", 6, "₮", KindCrypto},
	USDC: {"USDC", "", 6, "", KindCrypto},
	XRP:  {"XRP", "", 6, "", KindCrypto},
}

// currAlias maps case-sensitive symbols and case-insensitive spoken
// aliases to their currency. Symbols are matched verbatim (no case
// folding, since most aren't cased letters); alphabetic aliases are
// stored upper-cased and matched after ParseCurr upper-cases its input.
var currAlias = map[string]Currency{
	"$":    USD,
	"US$":  USD,
	"USDOLLAR": USD,
	"€":    EUR,
	"EURO": EUR,
	"EUROS": EUR,
	"£":    GBP,
	"POUND":  GBP,
	"POUNDS": GBP,
	"¥":      JPY,
	"YEN":    JPY,
	"₹":      INR,
	"RUPEE":  INR,
	"RUPEES": INR,
	"₽":      RUB,
	"RUBLE":  RUB,
	"RUBLES": RUB,
	"₩":    KRW,
	"WON":  KRW,
	"₿":       BTC,
	"BITCOIN": BTC,
	"XBT":     BTC,
	"Ξ":        ETH,
	"ETHER":    ETH,
	"ETHEREUM": ETH,
	"TETHER":   USDT,
	"RIPPLE":   XRP,
}

var currLookup = buildCurrLookup()

func buildCurrLookup() map[string]Currency {
	m := make(map[string]Currency, len(currTable)+len(currAlias))
	for i, info := range currTable {
		c := Currency(i)
		m[info.code] = c
		if info.num != "" {
			m[info.num] = c
		}
		if info.symbol != "" {
			m[info.symbol] = c
		}
	}
	for alias, c := range currAlias {
		m[alias] = c
	}
	return m
}
