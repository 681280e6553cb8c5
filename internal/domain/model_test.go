package domain

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var fixedNow = time.Date(2026, time.March, 4, 9, 30, 0, 0, time.UTC)

func TestBuildModel_DefaultsEveryField(t *testing.T) {
	m := BuildModel(nil, fixedNow)

	assert.Equal(t, Model{
		TaxYear:       "2026",
		LandArea:      "0",
		BuildingArea:  "0",
		LandValue:     "0",
		BuildingValue: "0",
		AmountDue:     "0",
		PaymentStatus: "UNPAID",
	}, m)
}

func TestBuildModel_UsesSuppliedValuesAndIgnoresUnknownKeys(t *testing.T) {
	m := BuildModel(map[string]string{
		"year":              "2024",
		"nop":               "35.07.010.001.002-0001.0",
		"name":              "Siti Aminah",
		"jln_wp":            "Jl. Merdeka 1",
		"pbb_harus_dibayar": "1500000",
		"status_pembayaran": "LUNAS",
		"tgl_jatuh_tempo":   "2024-08-31",
		"luas_bumi":         "120",
		"luas_bng":          "45",
		"njop_bumi":         "90000000",
		"njop_bng":          "60000000",
		"mobile":            "true",
		"unrelated":         "x",
	}, fixedNow)

	assert.Equal(t, "2024", m.TaxYear)
	assert.Equal(t, "35.07.010.001.002-0001.0", m.ParcelID)
	assert.Equal(t, "Siti Aminah", m.TaxpayerName)
	assert.Equal(t, "Jl. Merdeka 1", m.TaxpayerAddress)
	assert.Equal(t, "1500000", m.AmountDue)
	assert.Equal(t, "LUNAS", m.PaymentStatus)
	assert.Equal(t, "2024-08-31", m.DueDate)
	assert.Equal(t, "120", m.LandArea)
	assert.Equal(t, "45", m.BuildingArea)
	assert.Equal(t, "90000000", m.LandValue)
	assert.Equal(t, "60000000", m.BuildingValue)
}

func TestBuildModel_EmptyValuesCountAsAbsent(t *testing.T) {
	m := BuildModel(map[string]string{"year": "", "pbb_harus_dibayar": "", "status_pembayaran": ""}, fixedNow)
	assert.Equal(t, "2026", m.TaxYear)
	assert.Equal(t, "0", m.AmountDue)
	assert.Equal(t, "UNPAID", m.PaymentStatus)
}

func TestBuildModel_DefaultPaymentStatusOption(t *testing.T) {
	m := BuildModel(nil, fixedNow, WithDefaultPaymentStatus("BELUM LUNAS"))
	assert.Equal(t, "BELUM LUNAS", m.PaymentStatus)

	m = BuildModel(nil, fixedNow, WithDefaultPaymentStatus(""))
	assert.Equal(t, DefaultPaymentStatus, m.PaymentStatus)
}

func TestFileStem_StripsSeparators(t *testing.T) {
	m := BuildModel(map[string]string{"year": "2024", "nop": "35.07.010.001.002-0001.0"}, fixedNow)
	assert.Equal(t, "sppt-2024-350701000100200010", m.FileStem())

	hostile := BuildModel(map[string]string{"year": "../20/24", "nop": `..\x/y`}, fixedNow)
	assert.Equal(t, "sppt-2024-xy", hostile.FileStem())
}

func TestMimeMapping(t *testing.T) {
	assert.Equal(t, "pdf", Document{MimeType: MimePDF}.Extension())
	assert.Equal(t, "html", Document{MimeType: MimeHTML}.Extension())
	assert.Equal(t, "bin", ExtensionFor("image/png"))

	assert.Equal(t, MimeHTML, MimeFor("sppt-2024-1-1.html"))
	assert.Equal(t, MimePDF, MimeFor("sppt-2024-1-1.pdf"))
	assert.Equal(t, MimePDF, MimeFor("noext"))
}

func TestErrors_AreDistinctAndWrappable(t *testing.T) {
	all := []error{ErrInvalidToken, ErrNotFound, ErrRender, ErrCleanup}
	for i, a := range all {
		for j, b := range all {
			if i != j && errors.Is(a, b) {
				t.Fatalf("%v must not match %v", a, b)
			}
		}
		wrapped := fmt.Errorf("context: %w", a)
		assert.ErrorIs(t, wrapped, a)
	}
}
