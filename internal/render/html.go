package render

import (
	"bytes"
	_ "embed"
	"fmt"
	"html/template"

	"sppt/internal/domain"
)

//go:embed templates/sppt.html.tmpl
var htmlSource string

// html/template escapes every interpolated value, so free text such as the
// taxpayer name cannot inject markup.
var htmlTemplate = template.Must(template.New("sppt").Parse(htmlSource))

type htmlRow struct {
	Label    string
	Value    string
	Emphasis bool
}

type htmlSection struct {
	Heading string
	Rows    []htmlRow
}

type htmlPage struct {
	Title     string
	Subtitle  string
	YearLine  string
	Sections  []htmlSection
	PrintedAt string
}

func sections(f Fields) []htmlSection {
	return []htmlSection{
		{Rows: []htmlRow{{Label: LabelNOP, Value: f.NOP}}},
		{Heading: HeadingTaxpayer, Rows: []htmlRow{
			{Label: LabelName, Value: f.Name},
			{Label: LabelAddress, Value: f.Address},
		}},
		{Heading: HeadingProperty, Rows: []htmlRow{
			{Label: LabelLandArea, Value: f.LandArea},
			{Label: LabelBuildingArea, Value: f.BuildingArea},
		}},
		{Heading: HeadingValuation, Rows: []htmlRow{
			{Label: LabelLandValue, Value: f.LandValue},
			{Label: LabelBuildingValue, Value: f.BuildingValue},
			{Label: LabelAmountDue, Value: f.AmountDue, Emphasis: true},
		}},
		{Heading: HeadingPayment, Rows: []htmlRow{
			{Label: LabelStatus, Value: f.Status},
			{Label: LabelDueDate, Value: f.DueDate},
		}},
	}
}

// HTMLRenderer renders the notice as a standalone styled page.
type HTMLRenderer struct {
	base
}

// NewHTMLRenderer returns an HTML renderer.
func NewHTMLRenderer(opts ...Option) *HTMLRenderer {
	return &HTMLRenderer{base: newBase(opts)}
}

// Render executes the page template for m.
func (r *HTMLRenderer) Render(m domain.Model) (domain.Document, error) {
	f := Project(m, r.timestamp())
	page := htmlPage{
		Title:     TitleNotice,
		Subtitle:  TitleTax,
		YearLine:  f.YearLine,
		Sections:  sections(f),
		PrintedAt: f.PrintedAt,
	}

	var buf bytes.Buffer
	if err := htmlTemplate.Execute(&buf, page); err != nil {
		return domain.Document{}, fmt.Errorf("%w: execute html template: %v", domain.ErrRender, err)
	}

	return domain.Document{
		Bytes:    buf.Bytes(),
		MimeType: domain.MimeHTML,
		Filename: m.FileStem() + ".html",
	}, nil
}
