package pdf

import (
	"bytes"

	"github.com/go-pdf/fpdf"
)

type FontStyle int

const (
	FontRegular FontStyle = iota
	FontBold
)

// DocumentBuilder is the drawing surface the layout engine renders onto.
// It decouples the layout state machine from any particular backend; tests
// run against a recording fake, production uses the fpdf implementation.
type DocumentBuilder interface {
	NewPage()
	PageCount() int

	CursorY() float64
	SetCursorY(y float64)

	LeftX() float64
	ContentWidth() float64
	BottomY() float64

	SetFont(style FontStyle, size float64)
	SetTextColor(c RGB)
	TextWidth(s string) float64

	DrawText(x, y float64, s string)
	FillRect(x, y, w, h float64, c RGB)
	StrokeLine(x1, y1, x2, y2 float64, c RGB)

	Output() ([]byte, error)
}

type fpdfBuilder struct {
	doc       *fpdf.Fpdf
	style     Style
	translate func(string) string
	pages     int
}

// NewFpdfBuilder opens a portrait A4 document with the style's margins and
// the first page already added. Page breaks are owned by the layout engine,
// never by fpdf itself.
func NewFpdfBuilder(style Style) DocumentBuilder {
	doc := fpdf.New("P", "mm", "A4", "")
	doc.SetMargins(style.MarginLeft, style.MarginTop, style.MarginRight)
	doc.SetAutoPageBreak(false, 0)
	b := &fpdfBuilder{
		doc:       doc,
		style:     style,
		translate: doc.UnicodeTranslatorFromDescriptor(""),
	}
	b.NewPage()
	return b
}

func (b *fpdfBuilder) NewPage() {
	b.doc.AddPage()
	b.doc.SetY(b.style.MarginTop)
	b.pages++
}

func (b *fpdfBuilder) PageCount() int { return b.pages }

func (b *fpdfBuilder) CursorY() float64     { return b.doc.GetY() }
func (b *fpdfBuilder) SetCursorY(y float64) { b.doc.SetY(y) }

func (b *fpdfBuilder) LeftX() float64 { return b.style.MarginLeft }

func (b *fpdfBuilder) ContentWidth() float64 {
	return b.style.PageWidth - b.style.MarginLeft - b.style.MarginRight
}

func (b *fpdfBuilder) BottomY() float64 {
	return b.style.PageHeight - b.style.MarginBottom
}

func (b *fpdfBuilder) SetFont(style FontStyle, size float64) {
	fontStyle := ""
	if style == FontBold {
		fontStyle = "B"
	}
	b.doc.SetFont(b.style.FontFamily, fontStyle, size)
}

func (b *fpdfBuilder) SetTextColor(c RGB) {
	b.doc.SetTextColor(c.R, c.G, c.B)
}

func (b *fpdfBuilder) TextWidth(s string) float64 {
	return b.doc.GetStringWidth(b.translate(s))
}

func (b *fpdfBuilder) DrawText(x, y float64, s string) {
	b.doc.Text(x, y, b.translate(s))
}

func (b *fpdfBuilder) FillRect(x, y, w, h float64, c RGB) {
	b.doc.SetFillColor(c.R, c.G, c.B)
	b.doc.Rect(x, y, w, h, "F")
}

func (b *fpdfBuilder) StrokeLine(x1, y1, x2, y2 float64, c RGB) {
	b.doc.SetDrawColor(c.R, c.G, c.B)
	b.doc.Line(x1, y1, x2, y2)
}

func (b *fpdfBuilder) Output() ([]byte, error) {
	var buf bytes.Buffer
	if err := b.doc.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
