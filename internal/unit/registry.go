package unit

import "strings"

func f(dim Dimension, exp int8) Fingerprint {
	var fp Fingerprint
	fp[dim] = exp
	return fp
}

func simple(symbol string, dim Dimension, scale float64) Unit {
	return Unit{Scale: scale, Dims: f(dim, 1), Symbol: symbol}
}

func affine(symbol string, dim Dimension, scale, offset float64) Unit {
	return Unit{Scale: scale, Offset: offset, Dims: f(dim, 1), Symbol: symbol}
}

func compound(symbol string, scale float64, dims Fingerprint) Unit {
	return Unit{Scale: scale, Dims: dims, Symbol: symbol}
}

var speedDims = f(Length, 1).add(f(Time, -1), 1)

// volumeDims, energyDims and powerDims are decomposed combinations of
// the base axes (length^3; mass·length²·time⁻²; mass·length²·time⁻³)
// rather than axes of their own — see the Dimension doc comment.
var volumeDims = f(Length, 3)
var energyDims = f(Mass, 1).add(f(Length, 2), 1).add(f(Time, -2), 1)
var powerDims = energyDims.add(f(Time, -1), 1)

// caseSensitive holds tokens whose case carries meaning: SI-prefixed
// symbols ("ms" millisecond, "MB" megabyte), and single-letter temperature symbols
// ("K" Kelvin vs "k" kilo-prefixed-nothing, not registered standalone).
var caseSensitive = map[string]Unit{
	// length (canonical: meter)
	"m":   simple("m", Length, 1),
	"km":  simple("km", Length, 1000),
	"cm":  simple("cm", Length, 0.01),
	"mm":  simple("mm", Length, 0.001),
	"nm":  simple("nm", Length, 1e-9),
	"m2":  compound("m²", 1, f(Length, 2)),
	"km²": compound("km²", 1000*1000, f(Length, 2)),
	"m²":  compound("m²", 1, f(Length, 2)),

	// mass (canonical: kilogram)
	"g":  simple("g", Mass, 0.001),
	"kg": simple("kg", Mass, 1),
	"mg": simple("mg", Mass, 0.000001),
	"t":  simple("t", Mass, 1000),

	// time (canonical: second)
	"s":   simple("s", Time, 1),
	"ms":  simple("ms", Time, 0.001),
	"min": simple("min", Time, 60),
	"h":   simple("h", Time, 3600),

	// temperature (canonical: Kelvin)
	"K": affine("K", Temperature, 1, 0),
	"C": affine("C", Temperature, 1, 273.15),
	"F": affine("F", Temperature, 5.0/9.0, 255.3722222222222),

	// data (canonical: byte), binary (1024-based) prefixes
	"B":  simple("B", Data, 1),
	"KB": simple("KB", Data, 1024),
	"MB": simple("MB", Data, 1024*1024),
	"GB": simple("GB", Data, 1024*1024*1024),
	"TB": simple("TB", Data, 1024*1024*1024*1024),
	"PB": simple("PB", Data, 1024*1024*1024*1024*1024),

	// compound aliases, case-sensitive because they embed case-sensitive tokens
	"kph": compound("kph", 1000.0/3600.0, speedDims),
	"mps": compound("m/s", 1, speedDims),

	// volume (canonical: cubic meter), energy (canonical: joule), power
	// (canonical: watt) — decomposed compounds, not their own axis
	"L":  compound("L", 0.001, volumeDims),
	"mL": compound("mL", 0.000001, volumeDims),
	"J":  compound("J", 1, energyDims),
	"kJ": compound("kJ", 1000, energyDims),
	"W":  compound("W", 1, powerDims),
	"kW": compound("kW", 1000, powerDims),
}

// caseInsensitive holds verbose aliases, matched after lower-casing
// both the table key and the input token.
var caseInsensitive = map[string]Unit{
	"meter":       simple("m", Length, 1),
	"meters":      simple("m", Length, 1),
	"metre":       simple("m", Length, 1),
	"metres":      simple("m", Length, 1),
	"kilometer":   simple("km", Length, 1000),
	"kilometers":  simple("km", Length, 1000),
	"centimeter":  simple("cm", Length, 0.01),
	"centimeters": simple("cm", Length, 0.01),
	"millimeter":  simple("mm", Length, 0.001),
	"millimeters": simple("mm", Length, 0.001),
	"foot":        simple("ft", Length, 0.3048),
	"feet":        simple("ft", Length, 0.3048),
	"ft":          simple("ft", Length, 0.3048),
	"inch":        simple("in", Length, 0.0254),
	"inches":      simple("in", Length, 0.0254),
	"in":          simple("in", Length, 0.0254),
	"yard":        simple("yd", Length, 0.9144),
	"yards":       simple("yd", Length, 0.9144),
	"yd":          simple("yd", Length, 0.9144),
	"mile":        simple("mi", Length, 1609.344),
	"miles":       simple("mi", Length, 1609.344),
	"mi":          simple("mi", Length, 1609.344),

	"gram":      simple("g", Mass, 0.001),
	"grams":     simple("g", Mass, 0.001),
	"kilogram":  simple("kg", Mass, 1),
	"kilograms": simple("kg", Mass, 1),
	"pound":     simple("lb", Mass, 0.45359237),
	"pounds":    simple("lb", Mass, 0.45359237),
	"lb":        simple("lb", Mass, 0.45359237),
	"lbs":       simple("lb", Mass, 0.45359237),
	"ounce":     simple("oz", Mass, 0.028349523125),
	"ounces":    simple("oz", Mass, 0.028349523125),
	"oz":        simple("oz", Mass, 0.028349523125),
	"tonne":     simple("t", Mass, 1000),
	"tonnes":    simple("t", Mass, 1000),

	"second":  simple("s", Time, 1),
	"seconds": simple("s", Time, 1),
	"sec":     simple("s", Time, 1),
	"minute":  simple("min", Time, 60),
	"minutes": simple("min", Time, 60),
	"hour":    simple("h", Time, 3600),
	"hours":   simple("h", Time, 3600),
	"hr":      simple("h", Time, 3600),
	"day":     simple("d", Time, 86400),
	"days":    simple("d", Time, 86400),
	"week":    simple("wk", Time, 604800),
	"weeks":   simple("wk", Time, 604800),

	"celsius":    affine("C", Temperature, 1, 273.15),
	"centigrade": affine("C", Temperature, 1, 273.15),
	"fahrenheit": affine("F", Temperature, 5.0/9.0, 255.3722222222222),
	"kelvin":     affine("K", Temperature, 1, 0),

	"byte":      simple("B", Data, 1),
	"bytes":     simple("B", Data, 1),
	"kilobyte":  simple("KB", Data, 1024),
	"kilobytes": simple("KB", Data, 1024),
	"megabyte":  simple("MB", Data, 1024*1024),
	"megabytes": simple("MB", Data, 1024*1024),
	"gigabyte":  simple("GB", Data, 1024*1024*1024),
	"gigabytes": simple("GB", Data, 1024*1024*1024),
	"terabyte":  simple("TB", Data, 1024*1024*1024*1024),
	"terabytes": simple("TB", Data, 1024*1024*1024*1024),

	"kph": compound("kph", 1000.0/3600.0, speedDims),
	"mph": compound("mph", 1609.344/3600.0, speedDims),
	"mps": compound("m/s", 1, speedDims),

	"liter":   compound("L", 0.001, volumeDims),
	"liters":  compound("L", 0.001, volumeDims),
	"litre":   compound("L", 0.001, volumeDims),
	"litres":  compound("L", 0.001, volumeDims),
	"gallon":  compound("gal", 0.003785411784, volumeDims),
	"gallons": compound("gal", 0.003785411784, volumeDims),
	"gal":     compound("gal", 0.003785411784, volumeDims),

	"joule":  compound("J", 1, energyDims),
	"joules": compound("J", 1, energyDims),

	"watt":  compound("W", 1, powerDims),
	"watts": compound("W", 1, powerDims),
}

// Resolve looks up a unit token. SI-meaningful tokens are matched
// case-sensitively first; verbose aliases fall back to a
// case-insensitive match. Tokens that are themselves a composed
// symbol ("km/h", "m·s") — as produced by chaining unit tokens in a
// quantity literal or conversion target — are split on the top-level
// operator and resolved recursively, so a compound written out
// doesn't require its own registry entry (unlike the precomposed
// aliases "kph"/"mps").
func Resolve(token string) (Unit, bool) {
	if u, ok := caseSensitive[token]; ok {
		return u, true
	}
	if u, ok := caseInsensitive[strings.ToLower(token)]; ok {
		return u, true
	}
	if i := strings.IndexByte(token, '/'); i > 0 && i < len(token)-1 {
		lhs, ok := Resolve(token[:i])
		if !ok {
			return Unit{}, false
		}
		rhs, ok := Resolve(token[i+1:])
		if !ok {
			return Unit{}, false
		}
		u, err := lhs.Div(rhs)
		if err != nil {
			return Unit{}, false
		}
		return u, true
	}
	if i := strings.Index(token, "·"); i > 0 && i < len(token)-len("·") {
		lhs, ok := Resolve(token[:i])
		if !ok {
			return Unit{}, false
		}
		rhs, ok := Resolve(token[i+len("·"):])
		if !ok {
			return Unit{}, false
		}
		u, err := lhs.Mul(rhs)
		if err != nil {
			return Unit{}, false
		}
		return u, true
	}
	return Unit{}, false
}
