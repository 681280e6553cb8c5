package domain

import (
	"strconv"
	"time"
)

// Query parameter names recognised by BuildModel.
const (
	ParamYear          = "year"
	ParamNOP           = "nop"
	ParamName          = "name"
	ParamAddress       = "jln_wp"
	ParamAmountDue     = "pbb_harus_dibayar"
	ParamPaymentStatus = "status_pembayaran"
	ParamDueDate       = "tgl_jatuh_tempo"
	ParamLandArea      = "luas_bumi"
	ParamBuildingArea  = "luas_bng"
	ParamLandValue     = "njop_bumi"
	ParamBuildingValue = "njop_bng"
)

// Params lists every recognised parameter name.
var Params = []string{
	ParamYear, ParamNOP, ParamName, ParamAddress, ParamAmountDue,
	ParamPaymentStatus, ParamDueDate, ParamLandArea, ParamBuildingArea,
	ParamLandValue, ParamBuildingValue,
}

// DefaultPaymentStatus is used when status_pembayaran is absent.
const DefaultPaymentStatus = "UNPAID"

// Model is the normalized SPPT notice. Every field carries a value; absent
// input has already been replaced by its default.
type Model struct {
	TaxYear         string
	ParcelID        string
	TaxpayerName    string
	TaxpayerAddress string
	LandArea        string
	BuildingArea    string
	LandValue       string
	BuildingValue   string
	AmountDue       string
	PaymentStatus   string
	DueDate         string
}

// ModelOption tweaks defaulting in BuildModel.
type ModelOption func(*modelDefaults)

type modelDefaults struct {
	paymentStatus string
}

// WithDefaultPaymentStatus overrides the status used when none is supplied.
func WithDefaultPaymentStatus(status string) ModelOption {
	return func(d *modelDefaults) {
		if status != "" {
			d.paymentStatus = status
		}
	}
}

// BuildModel normalizes raw parameters. Unknown keys are ignored and empty
// values count as absent. It never fails.
func BuildModel(params map[string]string, now time.Time, opts ...ModelOption) Model {
	d := modelDefaults{paymentStatus: DefaultPaymentStatus}
	for _, opt := range opts {
		opt(&d)
	}

	get := func(key, def string) string {
		if v, ok := params[key]; ok && v != "" {
			return v
		}
		return def
	}

	return Model{
		TaxYear:         get(ParamYear, strconv.Itoa(now.Year())),
		ParcelID:        get(ParamNOP, ""),
		TaxpayerName:    get(ParamName, ""),
		TaxpayerAddress: get(ParamAddress, ""),
		LandArea:        get(ParamLandArea, "0"),
		BuildingArea:    get(ParamBuildingArea, "0"),
		LandValue:       get(ParamLandValue, "0"),
		BuildingValue:   get(ParamBuildingValue, "0"),
		AmountDue:       get(ParamAmountDue, "0"),
		PaymentStatus:   get(ParamPaymentStatus, d.paymentStatus),
		DueDate:         get(ParamDueDate, ""),
	}
}

// FileStem returns "sppt-<year>-<nop>" for the model; see FileStem.
func (m Model) FileStem() string {
	return FileStem(m.TaxYear, m.ParcelID)
}

// FileStem builds "sppt-<year>-<nop>" with everything but ASCII letters and
// digits removed from year and nop, so the stem is always a safe filename.
func FileStem(year, parcelID string) string {
	return DocType + "-" + StripSeparators(year) + "-" + StripSeparators(parcelID)
}

// StripSeparators keeps only ASCII letters and digits.
func StripSeparators(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c >= '0' && c <= '9') || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') {
			out = append(out, c)
		}
	}
	return string(out)
}
