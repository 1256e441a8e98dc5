package pdf

import (
	"strings"
)

type BlockKind int

const (
	BlockBlank BlockKind = iota
	BlockHeading2
	BlockHeading3
	BlockHeading4
	BlockBoldLine
	BlockRule
	BlockBullet
	BlockParagraph
	BlockTableHeader
	BlockTableRow
)

// Block is one typed token of markdown input. Text blocks carry Text, table
// blocks carry Cells.
type Block struct {
	Kind  BlockKind
	Text  string
	Cells []string
}

// Lex turns markdown into a flat block token stream. It is pure and total:
// any input, however malformed, produces some token sequence. Table rows are
// emitted as they are seen; the renderer decides when a table block ends.
func Lex(markdown string) []Block {
	var blocks []Block
	inTable := false
	for _, raw := range strings.Split(markdown, "\n") {
		line := strings.TrimSpace(raw)

		if line == "" {
			inTable = false
			blocks = append(blocks, Block{Kind: BlockBlank})
			continue
		}

		if strings.HasPrefix(line, "|") {
			if isTableSeparator(line) {
				continue
			}
			if !inTable {
				inTable = true
				blocks = append(blocks, Block{Kind: BlockTableHeader, Cells: parseHeaderCells(line)})
			} else {
				blocks = append(blocks, Block{Kind: BlockTableRow, Cells: parseRowCells(line)})
			}
			continue
		}
		inTable = false

		switch {
		case strings.HasPrefix(line, "## "):
			blocks = append(blocks, Block{Kind: BlockHeading2, Text: strings.TrimSpace(line[3:])})
		case strings.HasPrefix(line, "### "):
			blocks = append(blocks, Block{Kind: BlockHeading3, Text: strings.TrimSpace(line[4:])})
		case strings.HasPrefix(line, "#### "):
			blocks = append(blocks, Block{Kind: BlockHeading4, Text: stripBold(strings.TrimSpace(line[5:]))})
		case line == "---":
			blocks = append(blocks, Block{Kind: BlockRule})
		case isBoldOnlyLine(line):
			blocks = append(blocks, Block{Kind: BlockBoldLine, Text: line[2 : len(line)-2]})
		case strings.HasPrefix(line, "* ") || strings.HasPrefix(line, "- "):
			blocks = append(blocks, Block{Kind: BlockBullet, Text: strings.TrimSpace(line[2:])})
		default:
			blocks = append(blocks, Block{Kind: BlockParagraph, Text: line})
		}
	}
	return blocks
}

// A separator row is a pipe line made of nothing but pipes, colons, dashes
// and spaces, e.g. | :--- | ---: |. It has no effect on the table buffer.
func isTableSeparator(line string) bool {
	if !strings.Contains(line, "-") {
		return false
	}
	stripped := strings.Map(func(r rune) rune {
		switch r {
		case '|', ':', '-', ' ', '\t':
			return -1
		}
		return r
	}, line)
	return stripped == ""
}

func parseHeaderCells(line string) []string {
	var cells []string
	for _, cell := range strings.Split(line, "|") {
		cell = strings.TrimSpace(cell)
		if cell == "" || isSeparatorCell(cell) {
			continue
		}
		cells = append(cells, cell)
	}
	return cells
}

func parseRowCells(line string) []string {
	parts := strings.Split(line, "|")
	// Drop the empty fragments produced by the leading and trailing pipe,
	// keep interior empties so column positions survive.
	if len(parts) > 0 && strings.TrimSpace(parts[0]) == "" {
		parts = parts[1:]
	}
	if len(parts) > 0 && strings.TrimSpace(parts[len(parts)-1]) == "" {
		parts = parts[:len(parts)-1]
	}
	cells := make([]string, 0, len(parts))
	for _, cell := range parts {
		cells = append(cells, stripBold(strings.TrimSpace(cell)))
	}
	return cells
}

func isSeparatorCell(cell string) bool {
	stripped := strings.Map(func(r rune) rune {
		switch r {
		case ':', '-', ' ':
			return -1
		}
		return r
	}, cell)
	return stripped == "" && strings.Contains(cell, "-")
}

func isBoldOnlyLine(line string) bool {
	if len(line) < 5 {
		return false
	}
	if !strings.HasPrefix(line, "**") || !strings.HasSuffix(line, "**") {
		return false
	}
	inner := line[2 : len(line)-2]
	return inner != "" && !strings.Contains(inner, "**")
}

func stripBold(s string) string {
	return strings.ReplaceAll(s, "**", "")
}

// BoldSegment is one run of inline text with a single weight.
type BoldSegment struct {
	Text string
	Bold bool
}

// SplitBoldSegments splits a line on ** boundaries into alternating
// plain/bold runs. An unterminated ** downgrades the trailing run to plain
// text rather than failing.
func SplitBoldSegments(line string) []BoldSegment {
	parts := strings.Split(line, "**")
	segments := make([]BoldSegment, 0, len(parts))
	for i, part := range parts {
		if part == "" {
			continue
		}
		bold := i%2 == 1
		if bold && i == len(parts)-1 && len(parts)%2 == 0 {
			bold = false
			part = "**" + part
		}
		segments = append(segments, BoldSegment{Text: part, Bold: bold})
	}
	return segments
}
