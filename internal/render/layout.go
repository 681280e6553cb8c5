package render

// Page geometry in PDF points, origin bottom-left.
const (
	PageWidth  = 595.0
	PageHeight = 842.0

	TopMargin  = 50.0
	LeftMargin = 50.0
)

// Value columns. The label always starts at LeftMargin.
const (
	ColumnNarrow = 100.0 // NOP, status
	ColumnWide   = 150.0 // taxpayer, measurements, valuation, due date
	ColumnTotal  = 200.0 // amount due
)

// Font sizes.
const (
	SizeTitle   = 14.0
	SizeBody    = 12.0
	SizeHeading = 11.0
	SizeTotal   = 14.0
	SizeFooter  = 10.0
)

// Placement is one string drawn at an absolute position.
type Placement struct {
	Text string
	X    float64
	Y    float64 // baseline, measured from the bottom edge
	Size float64
	Bold bool
}

type cursor struct {
	y   float64
	out []Placement
}

func (c *cursor) draw(text string, x, size float64, bold bool) {
	c.out = append(c.out, Placement{Text: text, X: x, Y: c.y, Size: size, Bold: bold})
}

func (c *cursor) down(dy float64) { c.y -= dy }

func (c *cursor) heading(text string) {
	c.draw(text, LeftMargin, SizeHeading, true)
	c.down(20)
}

func (c *cursor) row(label, value string, valueX float64) {
	c.draw(label, LeftMargin, SizeBody, true)
	c.draw(value, valueX, SizeBody, false)
}

// Layout positions every string of the notice on a single A4 page.
// Coordinates are stable: regression tests compare them directly.
func Layout(f Fields) []Placement {
	c := &cursor{y: PageHeight - TopMargin}
	center := PageWidth / 2

	c.draw(TitleNotice, center-150, SizeTitle, true)
	c.down(25)
	c.draw(TitleTax, center-80, SizeBody, true)
	c.down(25)
	c.draw(f.YearLine, center-40, SizeBody, true)
	c.down(40)

	c.row(LabelNOP, f.NOP, ColumnNarrow)
	c.down(30)

	c.heading(HeadingTaxpayer)
	c.row(LabelName, f.Name, ColumnWide)
	c.down(20)
	c.row(LabelAddress, f.Address, ColumnWide)
	c.down(40)

	c.heading(HeadingProperty)
	c.row(LabelLandArea, f.LandArea, ColumnWide)
	c.down(20)
	c.row(LabelBuildingArea, f.BuildingArea, ColumnWide)
	c.down(40)

	c.heading(HeadingValuation)
	c.row(LabelLandValue, f.LandValue, ColumnWide)
	c.down(20)
	c.row(LabelBuildingValue, f.BuildingValue, ColumnWide)
	c.down(30)
	c.draw(LabelAmountDue, LeftMargin, SizeBody, true)
	c.draw(f.AmountDue, ColumnTotal, SizeTotal, true)
	c.down(40)

	c.heading(HeadingPayment)
	c.row(LabelStatus, f.Status, ColumnNarrow)
	c.down(20)
	c.row(LabelDueDate, f.DueDate, ColumnWide)
	c.down(40)

	c.draw(f.PrintedAt, LeftMargin, SizeFooter, false)
	return c.out
}
