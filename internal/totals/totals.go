// Package totals implements the totals aggregator: given an ordered
// sequence of evaluated Values, it partitions them into groups — one
// per currency, one per dimension fingerprint, one for plain Numbers —
// and sums each group, converting via the rate cache or unit registry
// as needed.
package totals

import (
	"fmt"

	"github.com/dustin/go-humanize"

	"github.com/nasedkinpv/numr"
	"github.com/nasedkinpv/numr/internal/unit"
)

// Group is one aggregated bucket: a human-readable label and the
// summed Value for that bucket.
type Group struct {
	Label string
	Sum   numr.Value
}

// Totals partitions values into groups and sums each one. Money values
// are not pre-bucketed by currency: every Money, of whatever currency,
// feeds one running sum (representative currency is whichever came
// first), and a conversion failure for a later value is what splits it
// into its own subgroup — mirroring how the dimension group below
// merges differently-unit Quantity values via unit.Convert inside
// numr.Add, rather than bucketing them apart up front.
func Totals(values []numr.Value, rates numr.RateConverter) []Group {
	numbers := make([]numr.Value, 0)
	var moneys []numr.Value
	byDimension := map[unit.Fingerprint][]numr.Value{}
	var dimOrder []unit.Fingerprint
	seenDim := map[unit.Fingerprint]bool{}

	for _, v := range values {
		switch v.Kind() {
		case numr.KindNumber:
			numbers = append(numbers, v)
		case numr.KindMoney:
			moneys = append(moneys, v)
		case numr.KindQuantity:
			d := v.Unit().Dims
			if !seenDim[d] {
				seenDim[d] = true
				dimOrder = append(dimOrder, d)
			}
			byDimension[d] = append(byDimension[d], v)
		case numr.KindPercentage:
			// Percentages have no natural group of their own; they are
			// dropped from totals, matching spec.md's group taxonomy
			// (currency / dimension / Number).
		}
	}

	var groups []Group
	if len(numbers) > 0 {
		sum := numbers[0]
		for _, v := range numbers[1:] {
			if next, err := numr.Add(sum, v, nil); err == nil {
				sum = next
			}
		}
		groups = append(groups, Group{Label: "Number", Sum: sum})
	}

	if len(moneys) > 0 {
		groups = append(groups, sumMoneyGroup(moneys, rates)...)
	}

	for _, d := range dimOrder {
		vs := byDimension[d]
		sum := vs[0]
		for _, v := range vs[1:] {
			if next, err := numr.Add(sum, v, nil); err == nil {
				sum = next
			}
		}
		groups = append(groups, Group{Label: dimensionLabel(sum.Unit()), Sum: sum})
	}

	return groups
}

// sumMoneyGroup accumulates vs into one running sum, starting from the
// first value's currency and converting each subsequent value into it
// via rates. A value whose currency has no path in rates splits off
// into its own subgroup (recursively summed the same way) instead of
// failing the whole computation, per spec.md §7's "CurrencyUnavailable:
// surface; totals group splits".
func sumMoneyGroup(vs []numr.Value, rates numr.RateConverter) []Group {
	sum := vs[0]
	var split []numr.Value
	for _, v := range vs[1:] {
		next, err := numr.Add(sum, v, rates)
		if err != nil {
			split = append(split, v)
			continue
		}
		sum = next
	}
	groups := []Group{{Label: sum.Money().Curr().Code(), Sum: sum}}
	if len(split) == 0 {
		return groups
	}
	groups = append(groups, sumMoneyGroup(split, rates)...)
	return groups
}

func dimensionLabel(u unit.Unit) string {
	if s := u.String(); s != "" {
		return s
	}
	return "Quantity"
}

// Format renders groups as aligned lines, using humanize for
// thousands separators on plain Number sums.
func Format(groups []Group) string {
	var out string
	for _, g := range groups {
		out += fmt.Sprintf("%-10s %s\n", g.Label, renderSum(g.Sum))
	}
	return out
}

func renderSum(v numr.Value) string {
	if v.Kind() == numr.KindNumber {
		return humanize.CommafWithDigits(v.Number(), 2)
	}
	return v.String()
}
