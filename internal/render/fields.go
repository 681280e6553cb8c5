// Package render lays an SPPT notice out as PDF or HTML. Both renderers read
// the same Fields projection so formatted values can never diverge.
package render

import (
	"time"

	"sppt/internal/domain"
	"sppt/internal/format"
)

// Renderer turns a notice into one document format.
type Renderer interface {
	Render(m domain.Model) (domain.Document, error)
}

// Headings and labels printed on the notice, in page order.
const (
	TitleNotice   = "SURAT PEMBERITAHUAN PAJAK TERHUTANG"
	TitleTax      = "PAJAK BUMI DAN BANGUNAN"
	TitleYearPref = "TAHUN PAJAK "

	LabelNOP = "NOP:"

	HeadingTaxpayer = "DATA WAJIB PAJAK"
	LabelName       = "Nama:"
	LabelAddress    = "Alamat:"

	HeadingProperty   = "DATA OBJEK PAJAK"
	LabelLandArea     = "Luas Bumi:"
	LabelBuildingArea = "Luas Bangunan:"

	HeadingValuation   = "PERHITUNGAN PAJAK"
	LabelLandValue     = "NJOP Bumi:"
	LabelBuildingValue = "NJOP Bangunan:"
	LabelAmountDue     = "PBB yang Harus Dibayar:"

	HeadingPayment = "INFORMASI PEMBAYARAN"
	LabelStatus    = "Status:"
	LabelDueDate   = "Jatuh Tempo:"
)

// Fields is a Model with every value already formatted for print.
type Fields struct {
	YearLine      string
	NOP           string
	Name          string
	Address       string
	LandArea      string
	BuildingArea  string
	LandValue     string
	BuildingValue string
	AmountDue     string
	Status        string
	DueDate       string
	PrintedAt     string
}

// Project formats m as of now.
func Project(m domain.Model, now time.Time) Fields {
	return Fields{
		YearLine:      TitleYearPref + m.TaxYear,
		NOP:           m.ParcelID,
		Name:          m.TaxpayerName,
		Address:       m.TaxpayerAddress,
		LandArea:      format.Area(m.LandArea),
		BuildingArea:  format.Area(m.BuildingArea),
		LandValue:     format.Currency(m.LandValue),
		BuildingValue: format.Currency(m.BuildingValue),
		AmountDue:     format.Currency(m.AmountDue),
		Status:        m.PaymentStatus,
		DueDate:       format.Date(m.DueDate),
		PrintedAt:     format.PrintedAt(now),
	}
}

// Option configures a renderer.
type Option func(*base)

type base struct {
	now      func() time.Time
	loc      *time.Location
	compress bool
	validate bool
}

func newBase(opts []Option) base {
	b := base{now: time.Now, loc: time.Local, compress: true}
	for _, opt := range opts {
		opt(&b)
	}
	return b
}

func (b base) timestamp() time.Time {
	return b.now().In(b.loc)
}

// WithClock replaces time.Now, mainly for deterministic output in tests.
func WithClock(now func() time.Time) Option {
	return func(b *base) {
		if now != nil {
			b.now = now
		}
	}
}

// WithLocation sets the zone used for the printed-at footer.
func WithLocation(loc *time.Location) Option {
	return func(b *base) {
		if loc != nil {
			b.loc = loc
		}
	}
}

// WithCompression toggles PDF stream compression. HTML ignores it.
func WithCompression(on bool) Option {
	return func(b *base) { b.compress = on }
}

// WithValidation makes the PDF renderer check its own output with pdfcpu.
// HTML ignores it.
func WithValidation(on bool) Option {
	return func(b *base) { b.validate = on }
}
