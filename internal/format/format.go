// Package format turns raw notice values into the Indonesian (id-ID) strings
// printed on both the PDF and the HTML rendering. Renderers must not format
// values themselves.
package format

import (
	"math"
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	// CurrencySymbol precedes every amount, separated by a no-break space.
	CurrencySymbol = "Rp"
	// AreaUnit follows every area value.
	AreaUnit = "m²"

	nbsp          = "\u00a0"
	decimalMark   = ","
	thousandsMark = "."
	dateLayout    = "02/01/2006"
	printedLayout = "2/1/2006, 15.04.05"
	printedPrefix = "Dicetak pada: "
)

var (
	printer  = message.NewPrinter(language.Indonesian)
	maxInt64 = decimal.NewFromInt(math.MaxInt64)
)

var isoLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
}

// plainNumber accepts an optional sign, digits and an optional fraction.
// Exponents are refused: "1e2000000" would expand to millions of digits.
var plainNumber = regexp.MustCompile(`^[+-]?[0-9]+(\.[0-9]+)?$`)

// parse reads raw as a decimal; blank or malformed input is zero.
func parse(raw string) decimal.Decimal {
	s := strings.TrimSpace(raw)
	if !plainNumber.MatchString(s) {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// Currency formats raw as whole rupiah, truncating any fraction:
// "1500000" -> "Rp 1.500.000", "-2500" -> "-Rp 2.500", "abc" -> "Rp 0".
func Currency(raw string) string {
	n := parse(raw).Truncate(0)
	sign := ""
	if n.Sign() < 0 {
		sign = "-"
		n = n.Neg()
	}
	return sign + CurrencySymbol + nbsp + group(n)
}

// Number formats raw as a grouped integer, truncating any fraction.
func Number(raw string) string {
	n := parse(raw).Truncate(0)
	if n.Sign() < 0 {
		return "-" + group(n.Neg())
	}
	return group(n)
}

// Area formats raw with grouping, keeps up to two decimals and appends the
// unit: "1250.5" -> "1.250,5 m²".
func Area(raw string) string {
	d := parse(raw).Round(2)
	sign := ""
	if d.Sign() < 0 {
		sign = "-"
		d = d.Neg()
	}
	whole := d.Truncate(0)
	out := sign + group(whole)
	if frac := d.Sub(whole); !frac.IsZero() {
		// frac.String() is "0.xx"
		out += decimalMark + strings.TrimPrefix(frac.String(), "0.")
	}
	return out + " " + AreaUnit
}

// Date renders ISO dates as dd/mm/yyyy. Blank input yields "" and any other
// value passes through unchanged apart from surrounding whitespace.
func Date(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}
	for _, layout := range isoLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format(dateLayout)
		}
	}
	return s
}

// PrintedAt is the footer line stamped on every rendering.
func PrintedAt(t time.Time) string {
	return printedPrefix + t.Format(printedLayout)
}

// group formats a non-negative whole number with id-ID thousands separators.
func group(n decimal.Decimal) string {
	if n.LessThanOrEqual(maxInt64) {
		return printer.Sprintf("%d", n.IntPart())
	}
	// Beyond int64 the printer cannot help; group the digits by hand.
	digits := n.String()
	var b strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteString(thousandsMark)
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
