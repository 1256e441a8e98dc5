package pdf

import (
	"context"
	"fmt"
	"strings"
	"testing"
)

// fakeBuilder records draw calls so layout decisions can be asserted without
// a PDF backend.
type fakeBuilder struct {
	page   int
	cursor float64
	texts  []fakeText
	rects  int
	lines  int
}

type fakeText struct {
	page int
	x, y float64
	text string
}

const (
	fakeTop    = 10.0
	fakeBottom = 100.0
	fakeLeft   = 10.0
	fakeWidth  = 100.0
)

func newFakeBuilder() *fakeBuilder {
	return &fakeBuilder{page: 1, cursor: fakeTop}
}

func (f *fakeBuilder) NewPage() {
	f.page++
	f.cursor = fakeTop
}
func (f *fakeBuilder) PageCount() int          { return f.page }
func (f *fakeBuilder) CursorY() float64        { return f.cursor }
func (f *fakeBuilder) SetCursorY(y float64)    { f.cursor = y }
func (f *fakeBuilder) LeftX() float64          { return fakeLeft }
func (f *fakeBuilder) ContentWidth() float64   { return fakeWidth }
func (f *fakeBuilder) BottomY() float64        { return fakeBottom }
func (f *fakeBuilder) SetFont(FontStyle, float64) {}
func (f *fakeBuilder) SetTextColor(RGB)           {}

func (f *fakeBuilder) TextWidth(s string) float64 {
	return 2 * float64(len([]rune(s)))
}

func (f *fakeBuilder) DrawText(x, y float64, s string) {
	f.texts = append(f.texts, fakeText{page: f.page, x: x, y: y, text: s})
}
func (f *fakeBuilder) FillRect(x, y, w, h float64, c RGB)      { f.rects++ }
func (f *fakeBuilder) StrokeLine(x1, y1, x2, y2 float64, c RGB) { f.lines++ }
func (f *fakeBuilder) Output() ([]byte, error)                  { return []byte("%fake"), nil }

func renderOnFake(t *testing.T, markdown string) *fakeBuilder {
	t.Helper()
	b := newFakeBuilder()
	engine := NewEngine(b, DefaultStyle())
	if err := engine.Render(context.Background(), markdown); err != nil {
		t.Fatalf("render failed: %v", err)
	}
	return b
}

func TestRender_ShortParagraphSinglePage(t *testing.T) {
	b := renderOnFake(t, "Just one short paragraph.")
	if b.PageCount() != 1 {
		t.Fatalf("expected exactly one page, got %d", b.PageCount())
	}
	if len(b.texts) == 0 {
		t.Fatalf("expected text to be drawn")
	}
}

func TestRender_OverflowProducesMultiplePages(t *testing.T) {
	var sb strings.Builder
	for i := 0; i < 60; i++ {
		fmt.Fprintf(&sb, "Paragraph number %d with some padding text.\n", i)
	}
	b := renderOnFake(t, sb.String())
	if b.PageCount() < 2 {
		t.Fatalf("expected at least two pages, got %d", b.PageCount())
	}
}

func TestRender_HeadingNeverSplitsAcrossPages(t *testing.T) {
	// Slide a two-line heading toward the bottom of the page and require all
	// of its lines to land on the same page every time.
	heading := "## HEADINGMARK " + strings.Repeat("HEADINGMARK ", 8)
	for filler := 0; filler < 25; filler++ {
		md := strings.Repeat("filler line of plain prose text here\n", filler) + heading
		b := renderOnFake(t, md)

		pages := map[int]bool{}
		for _, op := range b.texts {
			if strings.Contains(op.text, "HEADINGMARK") {
				pages[op.page] = true
			}
		}
		if len(pages) == 0 {
			t.Fatalf("filler=%d: heading was never drawn", filler)
		}
		if len(pages) > 1 {
			t.Fatalf("filler=%d: heading split across pages %v", filler, pages)
		}
	}
}

func TestRender_UnterminatedBoldDegrades(t *testing.T) {
	b := renderOnFake(t, "start **never closed\nnext line")
	if b.PageCount() != 1 {
		t.Fatalf("expected one page, got %d", b.PageCount())
	}
	if len(b.texts) == 0 {
		t.Fatalf("expected a non-empty document")
	}
}

func TestRender_InlineBoldDrawsAllWords(t *testing.T) {
	b := renderOnFake(t, "alpha **beta** gamma")
	got := map[string]bool{}
	for _, op := range b.texts {
		got[op.text] = true
	}
	for _, want := range []string{"alpha", "beta", "gamma"} {
		if !got[want] {
			t.Fatalf("word %q not drawn; ops=%v", want, b.texts)
		}
	}
}

func TestRender_LongParagraphWrapsWithinMargins(t *testing.T) {
	b := renderOnFake(t, strings.Repeat("word ", 120))
	right := fakeLeft + fakeWidth
	for _, op := range b.texts {
		if op.x+2*float64(len([]rune(op.text))) > right+0.01 {
			t.Fatalf("text %q drawn past right margin at x=%f", op.text, op.x)
		}
	}
}

func TestRender_BulletContinuationIndent(t *testing.T) {
	b := renderOnFake(t, "* "+strings.Repeat("bullet content words ", 10))
	style := DefaultStyle()
	indented := fakeLeft + style.BulletGap
	seenContinuation := false
	for _, op := range b.texts {
		if op.text == "•" {
			continue
		}
		if op.x < indented-0.01 {
			t.Fatalf("bullet text at x=%f, expected >= %f", op.x, indented)
		}
		if op.x == indented {
			seenContinuation = true
		}
	}
	if !seenContinuation {
		t.Fatalf("expected wrapped bullet lines starting at the text indent")
	}
}

func TestRender_LastLineNearBottomAddsNoBlankPage(t *testing.T) {
	// Sweep paragraph lengths so the final wrapped line lands at every offset
	// relative to the bottom margin; every page the document ends with must
	// actually contain text.
	for words := 100; words <= 200; words++ {
		b := renderOnFake(t, strings.Repeat("word ", words))
		lastTextPage := 0
		for _, op := range b.texts {
			if op.page > lastTextPage {
				lastTextPage = op.page
			}
		}
		if b.PageCount() != lastTextPage {
			t.Fatalf("words=%d: document has %d pages but text ends on page %d",
				words, b.PageCount(), lastTextPage)
		}
	}
}

func TestRender_CancelledContextStopsBetweenBlocks(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	b := newFakeBuilder()
	engine := NewEngine(b, DefaultStyle())
	if err := engine.Render(ctx, "a\nb\nc"); err == nil {
		t.Fatalf("expected cancellation error")
	}
}

func TestRender_RuleDrawsLine(t *testing.T) {
	b := renderOnFake(t, "above\n---\nbelow")
	if b.lines == 0 {
		t.Fatalf("expected a horizontal rule to be stroked")
	}
}
