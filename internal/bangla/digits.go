// Package bangla holds the bn-BD display conventions used on printed bills and
// clinic messages: Bengali digits, Indian digit grouping and calendar names.
package bangla

import (
	"strings"

	"github.com/shopspring/decimal"
)

const zeroDigit = '০'

// Digits replaces ASCII digits in s with Bengali digits.
func Digits(s string) string {
	var b strings.Builder
	b.Grow(len(s) * 3)
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(zeroDigit + (r - '0'))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// ASCIIDigits is the inverse of Digits. Other characters pass through.
func ASCIIDigits(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= zeroDigit && r <= zeroDigit+9 {
			return '0' + (r - zeroDigit)
		}
		return r
	}, s)
}

// GroupIndian inserts separators using the South Asian grouping: the last three
// digits, then groups of two (12,34,567).
func GroupIndian(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	head, tail := digits[:len(digits)-3], digits[len(digits)-3:]
	var groups []string
	for len(head) > 2 {
		groups = append([]string{head[len(head)-2:]}, groups...)
		head = head[:len(head)-2]
	}
	groups = append([]string{head}, groups...)
	return strings.Join(groups, ",") + "," + tail
}

// FormatAmount renders an amount the way bn-BD locale formatting does: at most
// two fraction digits, trailing zeros dropped, Indian grouping, Bengali digits.
func FormatAmount(d decimal.Decimal) string {
	d = d.Round(2)
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Abs()
	}
	text := d.String()
	whole, frac, _ := strings.Cut(text, ".")
	out := sign + GroupIndian(whole)
	if frac != "" {
		out += "." + frac
	}
	return Digits(out)
}
