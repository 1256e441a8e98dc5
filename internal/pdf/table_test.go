package pdf

import (
	"fmt"
	"strings"
	"testing"
)

func TestRenderTable_BodyRowsSurviveIntact(t *testing.T) {
	md := strings.Join([]string{
		"| Metric | Value |",
		"| :--- | :--- |",
		"| **Mood** | Good |",
		"| Sleep | 8h |",
		"| Crisis | none |",
	}, "\n")
	b := renderOnFake(t, md)

	drawn := map[string]int{}
	for _, op := range b.texts {
		drawn[op.text]++
	}
	for _, cell := range []string{"Mood", "Good", "Sleep", "8h", "Crisis", "none"} {
		if drawn[cell] != 1 {
			t.Fatalf("cell %q drawn %d times", cell, drawn[cell])
		}
	}
	if drawn["**Mood**"] != 0 {
		t.Fatalf("bold markers must be stripped from body cells")
	}
	if b.rects == 0 {
		t.Fatalf("expected header fill to be drawn")
	}
}

func TestRenderTable_LongTableSpansPagesRepeatingHeader(t *testing.T) {
	var sb strings.Builder
	sb.WriteString("| Day | Entry |\n| --- | --- |\n")
	rows := 40
	for i := 0; i < rows; i++ {
		fmt.Fprintf(&sb, "| d%d | entry number %d |\n", i, i)
	}
	b := renderOnFake(t, sb.String())

	if b.PageCount() < 2 {
		t.Fatalf("expected table to spill onto another page, got %d", b.PageCount())
	}
	drawn := map[string]int{}
	for _, op := range b.texts {
		drawn[op.text]++
	}
	for i := 0; i < rows; i++ {
		if drawn[fmt.Sprintf("d%d", i)] != 1 {
			t.Fatalf("row marker d%d drawn %d times", i, drawn[fmt.Sprintf("d%d", i)])
		}
	}
	if drawn["Day"] < 2 {
		t.Fatalf("header should repeat on continuation pages, drawn %d times", drawn["Day"])
	}
}

func TestRenderTable_RaggedRowsRenderAsIs(t *testing.T) {
	md := strings.Join([]string{
		"| A | B |",
		"| --- | --- |",
		"| lonely |",
		"| x | y | z |",
	}, "\n")
	b := renderOnFake(t, md)

	drawn := map[string]int{}
	for _, op := range b.texts {
		drawn[op.text]++
	}
	for _, cell := range []string{"lonely", "x", "y", "z"} {
		if drawn[cell] != 1 {
			t.Fatalf("cell %q drawn %d times", cell, drawn[cell])
		}
	}
}

func TestRenderTable_FlushedAtEndOfInput(t *testing.T) {
	b := renderOnFake(t, "| H |\n| --- |\n| tail |")
	drawn := map[string]int{}
	for _, op := range b.texts {
		drawn[op.text]++
	}
	if drawn["tail"] != 1 {
		t.Fatalf("table at end of input was not flushed: %v", b.texts)
	}
}

func TestRenderTable_CellWrapsInsteadOfOverflowing(t *testing.T) {
	long := strings.Repeat("verylongcellcontent ", 10)
	md := "| Short | " + long + "|\n| --- | --- |\n| a | b |"
	b := renderOnFake(t, md)
	right := fakeLeft + fakeWidth
	for _, op := range b.texts {
		if op.x+2*float64(len([]rune(op.text))) > right+0.01 {
			t.Fatalf("cell text %q overflows content width at x=%f", op.text, op.x)
		}
	}
}
