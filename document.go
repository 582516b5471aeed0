package xlreport

import "strings"

// RowKind identifies which preset and layout rules a row follows.
type RowKind int

const (
	RowTitle RowKind = iota + 1
	RowColumnHeader
	RowSectionBanner
	RowData
)

func (k RowKind) String() string {
	switch k {
	case RowTitle:
		return "Title"
	case RowColumnHeader:
		return "ColumnHeader"
	case RowSectionBanner:
		return "SectionBanner"
	case RowData:
		return "DataRow"
	}
	return "Unknown"
}

// Preset returns the style preset applied to rows of this kind.
func (k RowKind) Preset() PresetName {
	switch k {
	case RowTitle:
		return PresetTitle
	case RowColumnHeader:
		return PresetColumnHeader
	case RowSectionBanner:
		return PresetSectionBanner
	case RowData:
		return PresetDataCell
	}
	return PresetName(k.String())
}

// merged reports whether rows of this kind carry a merge region.
func (k RowKind) merged() bool {
	return k == RowTitle || k == RowSectionBanner
}

// Cell is a single emitted value with its resolved style.
type Cell struct {
	Ref   CellRef
	Value any // string, a Go number, or nil for an empty styled cell
	Style StylePreset
}

// Row is one emitted row of a sheet.
type Row struct {
	Index  int
	Kind   RowKind
	Preset PresetName
	Cells  []Cell
	Merge  *MergeRegion // set for Title and SectionBanner rows
}

func (r Row) clone() Row {
	out := r
	out.Cells = append([]Cell(nil), r.Cells...)
	if r.Merge != nil {
		m := *r.Merge
		out.Merge = &m
	}
	return out
}

// ColumnWidth declares the width of one 1-based column. A zero width means the
// column falls back to the document's minimum width.
type ColumnWidth struct {
	Index int
	Width float64
}

// Widths builds a column width table for columns 1..len(w).
func Widths(w ...float64) []ColumnWidth {
	out := make([]ColumnWidth, len(w))
	for i, width := range w {
		out[i] = ColumnWidth{Index: i + 1, Width: width}
	}
	return out
}

// Document is an ordered collection of sheets. It is not safe for concurrent
// use: one producer builds it, then persists it once.
type Document struct {
	opts      *Options
	sheets    []*Sheet
	finalized bool
}

// New creates an empty Document.
func New(opts ...Option) *Document {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	return &Document{opts: o}
}

// Sheets returns the sheets in creation order.
func (d *Document) Sheets() []*Sheet {
	return append([]*Sheet(nil), d.sheets...)
}

// Sheet returns the sheet with the given name, or nil.
func (d *Document) Sheet(name string) *Sheet {
	for _, s := range d.sheets {
		if strings.EqualFold(s.name, name) {
			return s
		}
	}
	return nil
}

// Finalized reports whether the document has been persisted.
func (d *Document) Finalized() bool {
	return d.finalized
}

// Sheet is one tab of a Document with its own row cursor.
type Sheet struct {
	doc    *Document
	name   string
	widths []float64 // widths[i] is column i+1
	cursor int
	rows   []Row
}

// Name returns the sheet name.
func (s *Sheet) Name() string { return s.name }

// Cursor returns the next unused 1-based row index.
func (s *Sheet) Cursor() int { return s.cursor }

// ColumnCount returns the number of declared columns.
func (s *Sheet) ColumnCount() int { return len(s.widths) }

// ColumnWidth returns the effective width of a 1-based column, or 0 if the
// column is outside the sheet.
func (s *Sheet) ColumnWidth(col int) float64 {
	if col < 1 || col > len(s.widths) {
		return 0
	}
	return s.widths[col-1]
}

// Rows returns a copy of the emitted rows in emission order.
func (s *Sheet) Rows() []Row {
	out := make([]Row, len(s.rows))
	for i, r := range s.rows {
		out[i] = r.clone()
	}
	return out
}

// Merges returns the merge regions of the sheet in row order.
func (s *Sheet) Merges() []MergeRegion {
	var out []MergeRegion
	for _, r := range s.rows {
		if r.Merge != nil {
			out = append(out, *r.Merge)
		}
	}
	return out
}
