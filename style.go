package xlreport

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// PresetName names a style preset in the catalog.
type PresetName string

const (
	PresetTitle         PresetName = "Title"
	PresetColumnHeader  PresetName = "ColumnHeader"
	PresetSectionBanner PresetName = "SectionBanner"
	PresetDataCell      PresetName = "DataCell"
)

// BorderStyle is the line style drawn on all four sides of a cell.
type BorderStyle string

const (
	BorderNone BorderStyle = ""
	BorderThin BorderStyle = "thin"
)

// StylePreset is an immutable bundle of visual attributes applied uniformly to
// the cells of a row.
type StylePreset struct {
	Name       PresetName
	FillColor  string // hex RGB without '#', empty = no fill
	Bold       bool
	FontColor  string // hex RGB without '#'
	FontSize   float64
	Border     BorderStyle
	Horizontal string // left, center, right
	Vertical   string // top, center, bottom
	WrapText   bool
}

// catalog is populated once and never mutated.
var catalog = map[PresetName]StylePreset{
	PresetTitle: {
		Name:       PresetTitle,
		Bold:       true,
		FontColor:  "000000",
		FontSize:   14,
		Border:     BorderNone,
		Horizontal: "left",
		Vertical:   "center",
	},
	PresetColumnHeader: {
		Name:       PresetColumnHeader,
		FillColor:  "1E3A5F",
		Bold:       true,
		FontColor:  "FFFFFF",
		FontSize:   11,
		Border:     BorderThin,
		Horizontal: "center",
		Vertical:   "center",
		WrapText:   true,
	},
	PresetSectionBanner: {
		Name:       PresetSectionBanner,
		FillColor:  "3D5A80",
		Bold:       true,
		FontColor:  "FFFFFF",
		FontSize:   10,
		Border:     BorderThin,
		Horizontal: "left",
		Vertical:   "center",
	},
	PresetDataCell: {
		Name:       PresetDataCell,
		FontColor:  "000000",
		FontSize:   11,
		Border:     BorderThin,
		Horizontal: "left",
		Vertical:   "top",
		WrapText:   true,
	},
}

// presetOrder is the order in which presets are listed and registered.
var presetOrder = []PresetName{PresetTitle, PresetColumnHeader, PresetSectionBanner, PresetDataCell}

// Resolve returns the preset registered under name.
func Resolve(name PresetName) (StylePreset, error) {
	p, ok := catalog[name]
	if !ok {
		return StylePreset{}, fmt.Errorf("%w: %q", ErrUnknownPreset, name)
	}
	return p, nil
}

// Presets returns the names of all presets in a fixed order.
func Presets() []PresetName {
	out := make([]PresetName, len(presetOrder))
	copy(out, presetOrder)
	return out
}

// Excelize converts the preset to an excelize style definition.
func (p StylePreset) Excelize() *excelize.Style {
	style := &excelize.Style{
		Font: &excelize.Font{
			Bold:  p.Bold,
			Color: p.FontColor,
			Size:  p.FontSize,
		},
		Alignment: &excelize.Alignment{
			Horizontal: p.Horizontal,
			Vertical:   p.Vertical,
			WrapText:   p.WrapText,
		},
	}
	if p.FillColor != "" {
		style.Fill = excelize.Fill{Type: "pattern", Color: []string{p.FillColor}, Pattern: 1}
	}
	if p.Border != BorderNone {
		style.Border = borderSides(p.Border)
	}
	return style
}

// borderSides maps a border style to the excelize line style on all four sides.
func borderSides(b BorderStyle) []excelize.Border {
	lineStyle := 0
	switch b {
	case BorderThin:
		lineStyle = 1
	}
	return []excelize.Border{
		{Type: "left", Color: "000000", Style: lineStyle},
		{Type: "right", Color: "000000", Style: lineStyle},
		{Type: "top", Color: "000000", Style: lineStyle},
		{Type: "bottom", Color: "000000", Style: lineStyle},
	}
}
