package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseValue(t *testing.T) {
	t.Run("plain decimal", func(t *testing.T) {
		v, err := ParseValue("8.123")
		require.NoError(t, err)
		assert.True(t, v.Equal(decimal.RequireFromString("8.123")))
	})

	t.Run("surrounding whitespace", func(t *testing.T) {
		v, err := ParseValue("  7.5 ")
		require.NoError(t, err)
		assert.True(t, v.Equal(decimal.RequireFromString("7.5")))
	})

	t.Run("integer", func(t *testing.T) {
		v, err := ParseValue("9")
		require.NoError(t, err)
		assert.Equal(t, "9.000", FormatValue(v))
	})

	for _, bad := range []string{"", "   ", "abc", "8.1.2", "1,5", "1_000", "NaN", "Infinity"} {
		t.Run("invalid "+bad, func(t *testing.T) {
			_, err := ParseValue(bad)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidValue)
		})
	}
}

func TestFormatValue(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"8.5", "8.500"},
		{"8.1234", "8.123"},
		{"8.1235", "8.124"},
		{"8.12349999", "8.123"},
		{"0", "0.000"},
		{"12", "12.000"},
		{"0.0005", "0.001"},
		{"1E+1", "10.000"},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			assert.Equal(t, tc.want, FormatValue(decimal.RequireFromString(tc.in)))
		})
	}
}

func TestFormatValue_ReparseIsStable(t *testing.T) {
	for _, s := range []string{"8.500", "10.250", "0.001", "123.456"} {
		v, err := ParseValue(s)
		require.NoError(t, err)
		assert.Equal(t, s, FormatValue(v))
	}
}

func TestMean(t *testing.T) {
	t.Run("exact", func(t *testing.T) {
		got := mean([]decimal.Decimal{
			decimal.RequireFromString("8.123"),
			decimal.RequireFromString("8.877"),
		})
		assert.Equal(t, "8.500", FormatValue(got))
	})

	t.Run("repeating quotient rounds half up once", func(t *testing.T) {
		// 10 / 3 = 3.3333...
		got := mean([]decimal.Decimal{
			decimal.RequireFromString("3"),
			decimal.RequireFromString("3"),
			decimal.RequireFromString("4"),
		})
		assert.Equal(t, "3.333", FormatValue(got))
	})

	t.Run("tie rounds away from zero", func(t *testing.T) {
		// (1.001 + 1.002) / 2 = 1.0015
		got := mean([]decimal.Decimal{
			decimal.RequireFromString("1.001"),
			decimal.RequireFromString("1.002"),
		})
		assert.Equal(t, "1.002", FormatValue(got))
	})

	t.Run("no float drift over many values", func(t *testing.T) {
		values := make([]decimal.Decimal, 1000)
		for i := range values {
			values[i] = decimal.RequireFromString("0.1")
		}
		assert.Equal(t, "0.100", FormatValue(mean(values)))
	})
}
