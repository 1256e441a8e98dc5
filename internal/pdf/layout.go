package pdf

import (
	"context"
	"strings"
	"unicode"
)

// Engine converts a markdown block stream into a paginated document on a
// DocumentBuilder. One engine instance serves exactly one render pass; no
// state survives the call.
type Engine struct {
	b     DocumentBuilder
	style Style
}

func NewEngine(b DocumentBuilder, style Style) *Engine {
	return &Engine{b: b, style: style}
}

// Render lays out the whole markdown document. Malformed input never fails
// the render; the only error returned is context cancellation, which is
// checked between blocks only.
func (e *Engine) Render(ctx context.Context, markdown string) error {
	e.b.SetTextColor(e.style.TextColor)

	var table *tableBuffer
	for _, block := range Lex(markdown) {
		if err := ctx.Err(); err != nil {
			return err
		}
		switch block.Kind {
		case BlockTableHeader:
			if table != nil {
				e.renderTable(table)
			}
			table = &tableBuffer{header: block.Cells}
			continue
		case BlockTableRow:
			if table == nil {
				table = &tableBuffer{}
			}
			table.rows = append(table.rows, block.Cells)
			continue
		}
		if table != nil {
			e.renderTable(table)
			table = nil
		}

		switch block.Kind {
		case BlockBlank:
			e.b.SetCursorY(e.b.CursorY() + e.style.BlankGap)
		case BlockHeading2:
			e.renderHeading(block.Text, e.style.H2Size, e.style.HeadroomH2)
		case BlockHeading3:
			e.renderHeading(block.Text, e.style.H3Size, e.style.HeadroomH3)
		case BlockHeading4:
			e.renderHeading(block.Text, e.style.H4Size, e.style.HeadroomH4)
		case BlockBoldLine:
			e.renderBoldLine(block.Text)
		case BlockRule:
			e.renderRule()
		case BlockBullet:
			e.renderBullet(block.Text)
		case BlockParagraph:
			e.renderInline(block.Text, 0)
		}
	}
	if table != nil {
		e.renderTable(table)
	}
	return nil
}

// ensureRoom starts a new page when the current one has less than the
// block's headroom left, or less than the block actually needs. Checked once
// before a block starts, so headings and table headers never straddle the
// break decision.
func (e *Engine) ensureRoom(needed, headroom float64) {
	room := needed
	if headroom > room {
		room = headroom
	}
	if e.b.CursorY()+room > e.b.BottomY() {
		e.b.NewPage()
	}
}

func (e *Engine) lineHeight(size float64) float64 {
	// Point size to millimeters with ordinary leading.
	return size * 0.3528 * 1.45
}

func (e *Engine) renderHeading(text string, size, headroom float64) {
	e.b.SetFont(FontBold, size)
	lh := e.lineHeight(size)
	lines := e.wrapText(text, e.b.ContentWidth())
	e.ensureRoom(float64(len(lines))*lh+e.style.HeadingGap, headroom)

	e.b.SetTextColor(e.style.HeadingColor)
	y := e.b.CursorY()
	for _, line := range lines {
		e.b.DrawText(e.b.LeftX(), y+lh*0.75, line)
		y += lh
	}
	e.b.SetCursorY(y + e.style.HeadingGap)
	e.b.SetTextColor(e.style.TextColor)
}

// A line entirely wrapped in ** renders as a compact bold sub-heading in
// body size, distinct from inline bold spans.
func (e *Engine) renderBoldLine(text string) {
	e.b.SetFont(FontBold, e.style.BodySize)
	lh := e.lineHeight(e.style.BodySize)
	lines := e.wrapText(text, e.b.ContentWidth())
	e.ensureRoom(float64(len(lines))*lh, e.style.HeadroomText)

	y := e.b.CursorY()
	for _, line := range lines {
		e.b.DrawText(e.b.LeftX(), y+lh*0.75, line)
		y += lh
	}
	e.b.SetCursorY(y)
}

func (e *Engine) renderRule() {
	e.ensureRoom(e.style.RuleGap, e.style.HeadroomText)
	y := e.b.CursorY() + e.style.RuleGap/2
	e.b.StrokeLine(e.b.LeftX(), y, e.b.LeftX()+e.b.ContentWidth(), y, e.style.RuleColor)
	e.b.SetCursorY(e.b.CursorY() + e.style.RuleGap)
}

func (e *Engine) renderBullet(text string) {
	lh := e.lineHeight(e.style.BodySize)
	e.ensureRoom(lh, e.style.HeadroomText)

	e.b.SetFont(FontRegular, e.style.BodySize)
	e.b.DrawText(e.b.LeftX()+1, e.b.CursorY()+lh*0.75, "•")
	// Continuation lines align under the text, not under the glyph.
	e.renderInline(text, e.style.BulletGap)
}

type inlineWord struct {
	text        string
	bold        bool
	spaceBefore bool
}

// renderInline draws a line's alternating plain/bold runs left to right at a
// running horizontal cursor, word-wrapping to the content width. Wrapping
// may legitimately continue onto the next page mid-paragraph.
func (e *Engine) renderInline(text string, indent float64) {
	words := inlineWords(SplitBoldSegments(text))
	left := e.b.LeftX() + indent
	right := e.b.LeftX() + e.b.ContentWidth()
	lh := e.lineHeight(e.style.BodySize)

	e.ensureRoom(lh, e.style.HeadroomText)

	x := left
	for _, w := range words {
		e.setBodyFont(w.bold)
		spaceWidth := 0.0
		if w.spaceBefore && x > left {
			spaceWidth = e.b.TextWidth(" ")
		}
		wordWidth := e.b.TextWidth(w.text)
		if x > left && x+spaceWidth+wordWidth > right {
			e.advanceLine(lh)
			x = left
			spaceWidth = 0
		}
		x += spaceWidth
		x = e.drawWordWrapped(w.text, x, left, right, lh)
	}
	// Past the last drawn line the cursor just moves; whether the next block
	// still fits is its own ensureRoom decision, so no page break here.
	e.b.SetCursorY(e.b.CursorY() + lh)
}

// drawWordWrapped draws one word, chunking by characters when a single word
// is wider than the whole content line.
func (e *Engine) drawWordWrapped(word string, x, left, right float64, lh float64) float64 {
	for {
		width := e.b.TextWidth(word)
		if x+width <= right || word == "" {
			e.b.DrawText(x, e.b.CursorY()+lh*0.75, word)
			return x + width
		}
		runes := []rune(word)
		cut := len(runes)
		for cut > 1 && x+e.b.TextWidth(string(runes[:cut])) > right {
			cut--
		}
		e.b.DrawText(x, e.b.CursorY()+lh*0.75, string(runes[:cut]))
		word = string(runes[cut:])
		e.advanceLine(lh)
		x = left
	}
}

func (e *Engine) advanceLine(lh float64) {
	next := e.b.CursorY() + lh
	if next+lh > e.b.BottomY() {
		e.b.NewPage()
		return
	}
	e.b.SetCursorY(next)
}

func (e *Engine) setBodyFont(bold bool) {
	if bold {
		e.b.SetFont(FontBold, e.style.BodySize)
	} else {
		e.b.SetFont(FontRegular, e.style.BodySize)
	}
}

// wrapText word-wraps s to the given width using the current font, falling
// back to character cuts for oversized words.
func (e *Engine) wrapText(s string, width float64) []string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return []string{""}
	}
	var lines []string
	current := ""
	for _, word := range fields {
		candidate := word
		if current != "" {
			candidate = current + " " + word
		}
		if e.b.TextWidth(candidate) <= width {
			current = candidate
			continue
		}
		if current != "" {
			lines = append(lines, current)
			current = ""
		}
		for e.b.TextWidth(word) > width {
			runes := []rune(word)
			if len(runes) <= 1 {
				break
			}
			cut := len(runes)
			for cut > 1 && e.b.TextWidth(string(runes[:cut])) > width {
				cut--
			}
			lines = append(lines, string(runes[:cut]))
			word = string(runes[cut:])
		}
		current = word
	}
	if current != "" {
		lines = append(lines, current)
	}
	return lines
}

func inlineWords(segments []BoldSegment) []inlineWord {
	var words []inlineWord
	prevEndsInSpace := false
	for _, seg := range segments {
		leading := len(seg.Text) > 0 && unicode.IsSpace(rune(seg.Text[0]))
		trailing := len(seg.Text) > 0 && unicode.IsSpace(rune(seg.Text[len(seg.Text)-1]))
		for i, field := range strings.Fields(seg.Text) {
			space := i > 0 || leading || prevEndsInSpace
			if len(words) == 0 {
				space = false
			}
			words = append(words, inlineWord{text: field, bold: seg.Bold, spaceBefore: space})
		}
		if len(seg.Text) > 0 {
			prevEndsInSpace = trailing
		}
	}
	return words
}
