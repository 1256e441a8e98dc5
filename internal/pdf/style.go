package pdf

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type RGB struct {
	R int `yaml:"r"`
	G int `yaml:"g"`
	B int `yaml:"b"`
}

// Style carries every tunable of the layout engine: page geometry, fonts,
// colors and the per-block-category headroom that drives page breaks.
// All lengths are millimeters on an A4 page.
type Style struct {
	PageWidth    float64 `yaml:"page_width"`
	PageHeight   float64 `yaml:"page_height"`
	MarginLeft   float64 `yaml:"margin_left"`
	MarginTop    float64 `yaml:"margin_top"`
	MarginRight  float64 `yaml:"margin_right"`
	MarginBottom float64 `yaml:"margin_bottom"`

	FontFamily string  `yaml:"font_family"`
	BodySize   float64 `yaml:"body_size"`
	H2Size     float64 `yaml:"h2_size"`
	H3Size     float64 `yaml:"h3_size"`
	H4Size     float64 `yaml:"h4_size"`

	BlankGap    float64 `yaml:"blank_gap"`
	RuleGap     float64 `yaml:"rule_gap"`
	HeadingGap  float64 `yaml:"heading_gap"`
	BulletGap   float64 `yaml:"bullet_indent"`
	CellPadding float64 `yaml:"cell_padding"`

	TextColor       RGB `yaml:"text_color"`
	HeadingColor    RGB `yaml:"heading_color"`
	RuleColor       RGB `yaml:"rule_color"`
	TableHeaderFill RGB `yaml:"table_header_fill"`
	TableBandFill   RGB `yaml:"table_band_fill"`
	TableBorder     RGB `yaml:"table_border"`

	// Minimum room that must remain above the bottom margin before a block
	// of the given category is started on the current page. Headings demand
	// more headroom than body text so a heading is never stranded at the
	// very bottom of a page.
	HeadroomText  float64 `yaml:"headroom_text"`
	HeadroomH2    float64 `yaml:"headroom_h2"`
	HeadroomH3    float64 `yaml:"headroom_h3"`
	HeadroomH4    float64 `yaml:"headroom_h4"`
	HeadroomTable float64 `yaml:"headroom_table"`
}

func DefaultStyle() Style {
	return Style{
		PageWidth:    210,
		PageHeight:   297,
		MarginLeft:   20,
		MarginTop:    20,
		MarginRight:  20,
		MarginBottom: 20,

		FontFamily: "Helvetica",
		BodySize:   10.5,
		H2Size:     17,
		H3Size:     14,
		H4Size:     11.5,

		BlankGap:    2.5,
		RuleGap:     4,
		HeadingGap:  2,
		BulletGap:   5,
		CellPadding: 1.8,

		TextColor:       RGB{40, 40, 40},
		HeadingColor:    RGB{30, 64, 124},
		RuleColor:       RGB{180, 180, 180},
		TableHeaderFill: RGB{30, 64, 124},
		TableBandFill:   RGB{238, 242, 248},
		TableBorder:     RGB{200, 205, 212},

		HeadroomText:  12,
		HeadroomH2:    28,
		HeadroomH3:    24,
		HeadroomH4:    18,
		HeadroomTable: 32,
	}
}

// LoadStyle overlays DefaultStyle with a YAML file when path is non-empty.
func LoadStyle(path string) (Style, error) {
	style := DefaultStyle()
	if path == "" {
		return style, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return style, fmt.Errorf("read style file: %w", err)
	}
	if err := yaml.Unmarshal(raw, &style); err != nil {
		return style, fmt.Errorf("parse style file: %w", err)
	}
	return style, nil
}
