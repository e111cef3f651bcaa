package flatten

import (
	"math"
	"math/big"
	"strconv"
	"strings"
)

// SmallValueText is shown for positive values at or below SmallValueLimit.
const (
	SmallValueText  = "<=0.01"
	SmallValueLimit = 0.01
)

// NegativeMode selects how negative leaves are displayed.
type NegativeMode int

const (
	// NegativeLegacy lets negatives fall into the "<=0.01" bucket.
	NegativeLegacy NegativeMode = iota
	// NegativeSigned shows the sign followed by the formatted magnitude.
	NegativeSigned
)

// Format renders v for display:
//
//	0             -> "0"
//	0 < v <= 0.01 -> "<=0.01"
//	otherwise     -> two decimals, with a trailing ".00" dropped
//
// Negative values take the "<=0.01" branch. Use Policy.Format for the signed
// alternative.
func Format(v float64) string {
	return formatWith(v, NegativeLegacy)
}

func formatWith(v float64, neg NegativeMode) string {
	if v == 0 {
		return "0"
	}
	if v < 0 && neg == NegativeSigned {
		mag := -v
		if mag <= SmallValueLimit {
			return ">=-" + strconv.FormatFloat(SmallValueLimit, 'f', 2, 64)
		}
		return "-" + fixed2(mag)
	}
	if v <= SmallValueLimit {
		return SmallValueText
	}
	return fixed2(v)
}

var hundred = big.NewRat(100, 1)

// fixed2 rounds a non-negative v to two decimals and drops a ".00" tail.
// A value whose exact binary expansion lies halfway between two hundredths
// rounds up (0.125 -> "0.13"); everything else rounds to nearest, so 2.675,
// stored as 2.67499..., gives "2.67".
func fixed2(v float64) string {
	s := strconv.FormatFloat(v, 'f', 2, 64)
	if r := new(big.Rat).SetFloat64(v); r != nil {
		r.Mul(r, hundred)
		if r.Denom().Cmp(big.NewInt(2)) == 0 {
			n := new(big.Int).Quo(r.Num(), r.Denom())
			s = hundredths(n.Add(n, big.NewInt(1)))
		}
	}
	return strings.TrimSuffix(s, ".00")
}

// hundredths formats n/100 with exactly two decimals.
func hundredths(n *big.Int) string {
	d := n.String()
	for len(d) < 3 {
		d = "0" + d
	}
	return d[:len(d)-2] + "." + d[len(d)-2:]
}

// finite reports whether v can be formatted as a number.
func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
