package billing

import (
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	onesWords = [...]string{"", "এক", "দুই", "তিন", "চার", "পাঁচ", "ছয়", "সাত", "আট", "নয়"}
	teenWords = [...]string{"দশ", "এগার", "বার", "তের", "চৌদ্দ", "পনের", "ষোল", "সতের", "আঠার", "উনিশ"}
	tensWords = [...]string{"", "", "বিশ", "ত্রিশ", "চল্লিশ", "পঞ্চাশ", "ষাট", "সত্তর", "আশি", "নব্বই"}
)

const (
	zeroWord     = "শূন্য"
	hundredWord  = "শত"
	thousandWord = "হাজার"
	lakhWord     = "লাখ"
	croreWord    = "কোটি"
	negativeWord = "ঋণাত্মক"
)

const (
	thousand = 1_000
	lakh     = 1_00_000
	crore    = 1_00_00_000
)

// WordsOf spells the whole-taka part of amount in Bengali using the
// thousand/lakh/crore scale. Paisa are ignored. Negative amounts are prefixed
// with the word for "negative".
func WordsOf(amount decimal.Decimal) (string, error) {
	if amount.IsZero() {
		return zeroWord, nil
	}
	// Checked before any rescale: a large exponent must not be expanded.
	exp := amount.Exponent()
	if exp > maxExponent {
		return "", fmt.Errorf("%w: %se%d is out of range", ErrInvalidArgument, amount.Coefficient(), exp)
	}
	if exp < 0 && -int64(exp) > int64(amount.NumDigits()) {
		return zeroWord, nil
	}
	whole := amount.Truncate(0)
	if !whole.BigInt().IsInt64() {
		return "", fmt.Errorf("%w: %s is out of range", ErrInvalidArgument, amount)
	}
	n := whole.IntPart()
	switch {
	case n == 0:
		return zeroWord, nil
	case n == math.MinInt64:
		return "", fmt.Errorf("%w: %s is out of range", ErrInvalidArgument, amount)
	case n < 0:
		return negativeWord + " " + integerWords(-n), nil
	}
	return integerWords(n), nil
}

// WordsOfFloat is WordsOf for values that arrive as floats. The value is rounded
// to paisa first.
func WordsOfFloat(f float64) (string, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return "", fmt.Errorf("%w: %v is not a finite amount", ErrInvalidArgument, f)
	}
	return WordsOf(decimal.NewFromFloat(f).Round(2))
}

// integerWords expects n > 0. The crore count is spelled recursively, so
// 1,00,00,00,000 reads "এক শত কোটি".
func integerWords(n int64) string {
	var parts []string
	if c := n / crore; c > 0 {
		parts = append(parts, integerWords(c), croreWord)
	}
	n %= crore
	if l := n / lakh; l > 0 {
		parts = append(parts, segmentWords(int(l)), lakhWord)
	}
	n %= lakh
	if t := n / thousand; t > 0 {
		parts = append(parts, segmentWords(int(t)), thousandWord)
	}
	if n %= thousand; n > 0 {
		parts = append(parts, segmentWords(int(n)))
	}
	return strings.Join(parts, " ")
}

// segmentWords spells 0..999. Zero is the empty string.
func segmentWords(n int) string {
	var words []string
	if n >= 100 {
		words = append(words, onesWords[n/100], hundredWord)
		n %= 100
	}
	switch {
	case n >= 20:
		words = append(words, tensWords[n/10])
		if n%10 != 0 {
			words = append(words, onesWords[n%10])
		}
	case n >= 10:
		words = append(words, teenWords[n-10])
	case n > 0:
		words = append(words, onesWords[n])
	}
	return strings.Join(words, " ")
}
