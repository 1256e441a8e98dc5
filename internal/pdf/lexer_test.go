package pdf

import (
	"testing"
)

func TestLex_BlockKinds(t *testing.T) {
	md := "## Title\n### Section\n#### **Day 1**\n---\n* bullet one\n- bullet two\n**Bold Line**\nplain paragraph"
	blocks := Lex(md)

	want := []BlockKind{
		BlockHeading2,
		BlockHeading3,
		BlockHeading4,
		BlockRule,
		BlockBullet,
		BlockBullet,
		BlockBoldLine,
		BlockParagraph,
	}
	if len(blocks) != len(want) {
		t.Fatalf("expected %d blocks, got %d: %+v", len(want), len(blocks), blocks)
	}
	for i, kind := range want {
		if blocks[i].Kind != kind {
			t.Fatalf("block %d: expected kind %d, got %d", i, kind, blocks[i].Kind)
		}
	}
	if blocks[0].Text != "Title" {
		t.Fatalf("heading text: %q", blocks[0].Text)
	}
	if blocks[2].Text != "Day 1" {
		t.Fatalf("h4 should strip bold markers, got %q", blocks[2].Text)
	}
	if blocks[6].Text != "Bold Line" {
		t.Fatalf("bold line text: %q", blocks[6].Text)
	}
}

func TestLex_TableHeaderAndRows(t *testing.T) {
	md := "| Metric | Value |\n| :--- | ---: |\n| **Mood** | Good |\n| Sleep | 8h |\nafter\n"
	blocks := Lex(md)

	if blocks[0].Kind != BlockTableHeader {
		t.Fatalf("expected table header first, got %d", blocks[0].Kind)
	}
	if len(blocks[0].Cells) != 2 || blocks[0].Cells[0] != "Metric" || blocks[0].Cells[1] != "Value" {
		t.Fatalf("header cells: %v", blocks[0].Cells)
	}
	// Separator row is consumed silently.
	if blocks[1].Kind != BlockTableRow {
		t.Fatalf("expected first body row second, got kind %d", blocks[1].Kind)
	}
	if blocks[1].Cells[0] != "Mood" {
		t.Fatalf("body cells should strip bold markers, got %v", blocks[1].Cells)
	}
	if blocks[2].Kind != BlockTableRow || blocks[2].Cells[1] != "8h" {
		t.Fatalf("second row: %+v", blocks[2])
	}
	if blocks[3].Kind != BlockParagraph || blocks[3].Text != "after" {
		t.Fatalf("trailing paragraph: %+v", blocks[3])
	}
}

func TestLex_TableRestartsAfterBreak(t *testing.T) {
	md := "| A | B |\n| 1 | 2 |\n\n| C | D |\n| 3 | 4 |\n"
	blocks := Lex(md)

	headers := 0
	for _, b := range blocks {
		if b.Kind == BlockTableHeader {
			headers++
		}
	}
	if headers != 2 {
		t.Fatalf("expected 2 table headers, got %d", headers)
	}
}

func TestLex_RaggedRowKept(t *testing.T) {
	md := "| A | B |\n| only one |\n| 1 | 2 | 3 |"
	blocks := Lex(md)
	if len(blocks) != 3 {
		t.Fatalf("expected 3 blocks, got %d", len(blocks))
	}
	if len(blocks[1].Cells) != 1 {
		t.Fatalf("short row cells: %v", blocks[1].Cells)
	}
	if len(blocks[2].Cells) != 3 {
		t.Fatalf("long row cells: %v", blocks[2].Cells)
	}
}

func TestSplitBoldSegments_Alternating(t *testing.T) {
	segs := SplitBoldSegments("plain **bold** tail")
	if len(segs) != 3 {
		t.Fatalf("expected 3 segments, got %+v", segs)
	}
	if segs[0].Bold || !segs[1].Bold || segs[2].Bold {
		t.Fatalf("unexpected weights: %+v", segs)
	}
	if segs[1].Text != "bold" {
		t.Fatalf("bold segment text: %q", segs[1].Text)
	}
}

func TestSplitBoldSegments_UnterminatedFallsBackToPlain(t *testing.T) {
	segs := SplitBoldSegments("start **never closed")
	for _, s := range segs {
		if s.Bold {
			t.Fatalf("unterminated bold must render plain: %+v", segs)
		}
	}
}

func TestLex_EmptyAndBlankInput(t *testing.T) {
	if blocks := Lex(""); len(blocks) != 1 || blocks[0].Kind != BlockBlank {
		t.Fatalf("empty input: %+v", blocks)
	}
}
