package domain

import (
	"fmt"
	"math"
	"math/big"
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// NotAvailable is shown when an amount cannot be displayed.
const NotAvailable = "N/A"

const (
	abbreviationThreshold = 4
	smallAmountDisplay    = "< 0.01"
)

var (
	tokenAmountRegex = regexp.MustCompile(`^[0-9]*\.?[0-9]*$`)

	magnitudeSuffixes = []string{"", "k", "M", "G"}
	smallAmountFloor  = 0.01
)

// AbbreviateOptions controls AbbreviateTokenAmount output.
type AbbreviateOptions struct {
	// Symbol is appended after a single space when set.
	Symbol string
	// Round drops the fractional part before abbreviating.
	Round bool
}

// BigIntToFloat returns the closest float64 to value / 10^decimals.
//
// The conversion goes through a scientific-notation literal so that very large
// values never pass through an intermediate integer-to-float division. This is
// the only lossy step in the codec. NaN is returned for a nil value, negative
// decimals, or an unparsable literal.
func BigIntToFloat(value *big.Int, decimals int) float64 {
	if value == nil || decimals < 0 {
		return math.NaN()
	}

	f, err := strconv.ParseFloat(value.String()+"e-"+strconv.Itoa(decimals), 64)
	if err != nil && !isRangeError(err) {
		return math.NaN()
	}

	return f
}

func isRangeError(err error) bool {
	numErr, ok := err.(*strconv.NumError)
	return ok && numErr.Err == strconv.ErrRange
}

// FormatTokenAmount renders value / 10^decimals exactly, without trailing zeros.
func FormatTokenAmount(value *big.Int, decimals int) string {
	if value == nil || decimals < 0 {
		return NotAvailable
	}

	return decimal.NewFromBigInt(value, -int32(decimals)).String()
}

// AbbreviateTokenAmount renders an amount for compact display.
//
// Integer parts longer than four digits are cut down to their leading digit
// group followed by a magnitude suffix (k, M, G, then *10^n). The remainder is
// truncated, not rounded. Fixed places round the exact binary value half away
// from zero. An exact zero renders as "0", never "< 0.01".
func AbbreviateTokenAmount(value *big.Int, decimals int, opts AbbreviateOptions) string {
	if value == nil || decimals < 0 {
		return NotAvailable
	}

	f := BigIntToFloat(value, decimals)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return NotAvailable
	}

	if value.Sign() == 0 {
		return withSymbol("0", opts.Symbol)
	}

	precision := 2
	if opts.Round {
		precision = 0
	}

	integer, fraction, _ := strings.Cut(toFixed(f, precision), ".")

	if len(integer) > abbreviationThreshold {
		magnitude := (len(integer) - 1) / 3
		lead := integer[:len(integer)-magnitude*3]

		suffix := fmt.Sprintf("*10^%d", magnitude*3)
		if magnitude < len(magnitudeSuffixes) {
			suffix = magnitudeSuffixes[magnitude]
		}

		return withSymbol(lead+suffix, opts.Symbol)
	}

	if fraction != "" {
		sum, err := strconv.ParseFloat(integer+"."+fraction, 64)
		if err != nil {
			return NotAvailable
		}
		if sum < smallAmountFloor {
			return withSymbol(smallAmountDisplay, opts.Symbol)
		}

		return withSymbol(integer+"."+fraction, opts.Symbol)
	}

	return withSymbol(integer, opts.Symbol)
}

// toFixed renders a finite, non-negative f with places fraction digits. Ties
// go to the larger neighbour, as in JavaScript's Number.prototype.toFixed.
func toFixed(f float64, places int) string {
	scale := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(places)), nil)
	r := new(big.Rat).SetFloat64(f)
	r.Mul(r, new(big.Rat).SetInt(scale))

	n, rem := new(big.Int).QuoRem(r.Num(), r.Denom(), new(big.Int))
	if rem.Lsh(rem, 1).Cmp(r.Denom()) >= 0 {
		n.Add(n, big.NewInt(1))
	}

	return decimal.NewFromBigInt(n, -int32(places)).StringFixed(int32(places))
}

func withSymbol(s, symbol string) string {
	if symbol == "" {
		return s
	}
	return s + " " + symbol
}

// ParseTokenAmount converts user input such as "1234.5" into base units.
//
// Fractional digits beyond decimals are dropped, shorter fractions are padded
// with zeros. Anything other than a plain non-negative decimal number yields
// ErrInvalidTokenAmount.
func ParseTokenAmount(input string, decimals int) (*big.Int, error) {
	if decimals < 0 {
		return nil, ErrInvalidDecimals
	}

	if strings.TrimSpace(input) == "" || !tokenAmountRegex.MatchString(input) || !strings.ContainsAny(input, "0123456789") {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTokenAmount, input)
	}

	integer, fraction, _ := strings.Cut(input, ".")

	if len(fraction) > decimals {
		fraction = fraction[:decimals]
	} else {
		fraction += strings.Repeat("0", decimals-len(fraction))
	}

	digits := strings.TrimLeft(integer+fraction, "0")
	if digits == "" {
		return new(big.Int), nil
	}

	amount, ok := new(big.Int).SetString(digits, 10)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTokenAmount, input)
	}

	return amount, nil
}
