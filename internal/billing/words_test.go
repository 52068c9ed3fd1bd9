package billing

import (
	"math"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWordsOf(t *testing.T) {
	cases := []struct {
		amount string
		want   string
	}{
		{"0", "শূন্য"},
		{"0.75", "শূন্য"},
		{"5", "পাঁচ"},
		{"13", "তের"},
		{"20", "বিশ"},
		{"45", "চল্লিশ পাঁচ"},
		{"100", "এক শত"},
		{"700", "সাত শত"},
		{"999", "নয় শত নব্বই নয়"},
		{"1000", "এক হাজার"},
		{"1005", "এক হাজার পাঁচ"},
		{"12345", "বার হাজার তিন শত চল্লিশ পাঁচ"},
		{"100000", "এক লাখ"},
		{"250075", "দুই লাখ পঞ্চাশ হাজার সত্তর পাঁচ"},
		{"10000000", "এক কোটি"},
		{"1000000000", "এক শত কোটি"},
		{"123456789", "বার কোটি ত্রিশ চার লাখ পঞ্চাশ ছয় হাজার সাত শত আশি নয়"},
		{"700.99", "সাত শত"},
		{"-50", "ঋণাত্মক পঞ্চাশ"},
	}
	for _, tc := range cases {
		t.Run(tc.amount, func(t *testing.T) {
			got, err := WordsOf(decimal.RequireFromString(tc.amount))
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestWordsOfSmallNumbersHaveNoScaleWord(t *testing.T) {
	for n := int64(1); n <= 99; n++ {
		got, err := WordsOf(decimal.NewFromInt(n))
		require.NoError(t, err)
		assert.NotEmpty(t, got)
		assert.NotContains(t, got, thousandWord)
		assert.NotContains(t, got, lakhWord)
		assert.NotContains(t, got, hundredWord)
	}
}

func TestWordsOfSingleScaleWord(t *testing.T) {
	for _, tc := range []struct {
		n     int64
		scale string
	}{
		{1000, thousandWord},
		{100000, lakhWord},
		{10000000, croreWord},
	} {
		got, err := WordsOf(decimal.NewFromInt(tc.n))
		require.NoError(t, err)
		assert.Equal(t, 1, strings.Count(got, tc.scale), got)
		assert.Equal(t, 1, strings.Count(got, onesWords[1]), got)
	}
}

func TestWordsOfKeepsEverySegment(t *testing.T) {
	got, err := WordsOf(decimal.NewFromInt(1005))
	require.NoError(t, err)
	assert.Contains(t, got, thousandWord)
	assert.True(t, strings.HasSuffix(got, onesWords[5]))

	got, err = WordsOf(decimal.NewFromInt(100001))
	require.NoError(t, err)
	assert.Equal(t, "এক লাখ এক", got)
}

func TestWordsOfOutputIsTrimmed(t *testing.T) {
	for _, n := range []int64{1, 10, 100, 101, 1000, 1010, 100100, 10000001, 99999999} {
		got, err := WordsOf(decimal.NewFromInt(n))
		require.NoError(t, err)
		assert.Equal(t, strings.TrimSpace(got), got)
		assert.NotContains(t, got, "  ")
	}
}

func TestWordsOfDeterministic(t *testing.T) {
	a, err := WordsOf(decimal.NewFromInt(4321))
	require.NoError(t, err)
	b, err := WordsOf(decimal.NewFromInt(4321))
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestWordsOfRejectsOutOfRange(t *testing.T) {
	_, err := WordsOf(decimal.RequireFromString("100000000000000000000"))
	require.ErrorIs(t, err, ErrInvalidArgument)
}

func TestWordsOfHugeExponentReturnsPromptly(t *testing.T) {
	_, err := WordsOf(decimal.New(1, 300_000_000))
	require.ErrorIs(t, err, ErrInvalidArgument)

	got, err := WordsOf(decimal.New(5, -300_000_000))
	require.NoError(t, err)
	assert.Equal(t, zeroWord, got)

	got, err = WordsOf(decimal.New(0, 300_000_000))
	require.NoError(t, err)
	assert.Equal(t, zeroWord, got)

	got, err = WordsOf(decimal.New(-25, 1))
	require.NoError(t, err)
	assert.Equal(t, "ঋণাত্মক দুই শত পঞ্চাশ", got)
}

func TestWordsOfFloat(t *testing.T) {
	got, err := WordsOfFloat(700)
	require.NoError(t, err)
	assert.Equal(t, "সাত শত", got)

	for _, f := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		_, err := WordsOfFloat(f)
		require.ErrorIs(t, err, ErrInvalidArgument)
	}
}
