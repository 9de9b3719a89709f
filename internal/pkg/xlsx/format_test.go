package xlsx

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatAmount(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"0", "-"},
		{"500", "500"},
		{"1000", "1,000"},
		{"409400", "409,400"},
		{"1234567", "1,234,567"},
		{"-3410", "-3,410"},
		{"103450.4", "103,450"},
	}
	for _, c := range cases {
		d, err := decimal.NewFromString(c.in)
		assert.NoError(t, err)
		assert.Equal(t, c.want, FormatAmount(d), "input %s", c.in)
	}
}

func TestFormatCount(t *testing.T) {
	assert.Equal(t, "-", FormatCount(0))
	assert.Equal(t, "137", FormatCount(137))
	assert.Equal(t, "1,024", FormatCount(1024))
}

func TestParseAmount(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"680,000", "680000"},
		{" 1,234,567 ", "1234567"},
		{"-", "0"},
		{"", "0"},
		{"-3,410", "-3410"},
	}
	for _, c := range cases {
		got, err := ParseAmount(c.in)
		assert.NoError(t, err)
		assert.True(t, got.Equal(decimal.RequireFromString(c.want)), "input %q got %s", c.in, got)
	}

	_, err := ParseAmount("abc")
	assert.Error(t, err)
}

func TestNormalizeHeader(t *testing.T) {
	assert.Equal(t, "라이선스id", NormalizeHeader(" 라이선스ID "))
	assert.Equal(t, "branch", NormalizeHeader("Branch"))
}
