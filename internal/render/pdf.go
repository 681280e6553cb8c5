package render

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"sppt/internal/domain"
)

const fontFamily = "Helvetica"

// PDFRenderer draws the notice with the core Helvetica fonts, so no font
// files are needed at runtime.
type PDFRenderer struct {
	base
}

// NewPDFRenderer returns a PDF renderer. Compression is on by default.
func NewPDFRenderer(opts ...Option) *PDFRenderer {
	return &PDFRenderer{base: newBase(opts)}
}

// Render draws m onto one A4 page. Malformed numbers have already degraded
// to zero in Project, so only encoder failures produce an error.
func (r *PDFRenderer) Render(m domain.Model) (domain.Document, error) {
	now := r.timestamp()
	placements := Layout(Project(m, now))

	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           fpdf.SizeType{Wd: PageWidth, Ht: PageHeight},
	})
	pdf.SetCompression(r.compress)
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetCreationDate(now)
	pdf.SetTitle(TitleNotice+" "+m.TaxYear, true)
	pdf.SetCreator("sppt", true)
	pdf.AddPage()

	// Core fonts are cp1252; the translator maps "²" and the no-break space.
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	for _, p := range placements {
		style := ""
		if p.Bold {
			style = "B"
		}
		pdf.SetFont(fontFamily, style, p.Size)
		// fpdf measures y from the top edge.
		pdf.Text(p.X, PageHeight-p.Y, tr(p.Text))
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return domain.Document{}, fmt.Errorf("%w: encode pdf: %v", domain.ErrRender, err)
	}

	if r.validate {
		if err := api.Validate(bytes.NewReader(buf.Bytes()), model.NewDefaultConfiguration()); err != nil {
			return domain.Document{}, fmt.Errorf("%w: validate pdf: %v", domain.ErrRender, err)
		}
	}

	return domain.Document{
		Bytes:    buf.Bytes(),
		MimeType: domain.MimePDF,
		Filename: m.FileStem() + ".pdf",
	}, nil
}
