package format

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCurrency(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"plain", "1500000", "Rp\u00a01.500.000"},
		{"small", "750", "Rp\u00a0750"},
		{"zero", "0", "Rp\u00a00"},
		{"empty", "", "Rp\u00a00"},
		{"blank", "   ", "Rp\u00a00"},
		{"non numeric", "abc", "Rp\u00a00"},
		{"trailing junk", "12abc", "Rp\u00a00"},
		{"exponent", "1e3", "Rp\u00a00"},
		{"upper exponent", "5E2", "Rp\u00a00"},
		{"huge exponent", "1e2000000", "Rp\u00a00"},
		{"leading plus", "+1500", "Rp\u00a01.500"},
		{"bare fraction", ".5", "Rp\u00a00"},
		{"negative", "-2500", "-Rp\u00a02.500"},
		{"fraction truncated", "1999.99", "Rp\u00a01.999"},
		{"negative fraction truncated", "-0.5", "Rp\u00a00"},
		{"padded", " 42000 ", "Rp\u00a042.000"},
		{"huge", "123456789012345678901234", "Rp\u00a0123.456.789.012.345.678.901.234"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Currency(tc.raw))
		})
	}
}

func TestCurrency_NeverPanics(t *testing.T) {
	for _, raw := range []string{"", "-", "+", ".", "1e400", "NaN", "∞", "1,000", "--5"} {
		assert.NotPanics(t, func() { _ = Currency(raw) }, raw)
	}
}

func TestNumber(t *testing.T) {
	assert.Equal(t, "1.234.567", Number("1234567"))
	assert.Equal(t, "-1.000", Number("-1000"))
	assert.Equal(t, "0", Number("x"))
	assert.Equal(t, "0", Number("1e2000000"))
}

func TestArea(t *testing.T) {
	assert.Equal(t, "120 m²", Area("120"))
	assert.Equal(t, "1.250,5 m²", Area("1250.5"))
	assert.Equal(t, "0,75 m²", Area("0.749"))
	assert.Equal(t, "0 m²", Area(""))
	assert.Equal(t, "0 m²", Area("luas"))
	assert.Equal(t, "0 m²", Area("2.5e9"))
}

func TestDate(t *testing.T) {
	assert.Equal(t, "", Date(""))
	assert.Equal(t, "", Date("  "))
	assert.Equal(t, "31/08/2024", Date("2024-08-31"))
	assert.Equal(t, "31/08/2024", Date("2024-08-31T00:00:00Z"))
	assert.Equal(t, "31/08/2024", Date("2024-08-31 10:00:00"))
	assert.Equal(t, "31 Agustus 2024", Date(" 31 Agustus 2024 "))
}

func TestPrintedAt(t *testing.T) {
	ts := time.Date(2024, time.March, 5, 14, 7, 9, 0, time.UTC)
	assert.Equal(t, "Dicetak pada: 5/3/2024, 14.07.09", PrintedAt(ts))
}
