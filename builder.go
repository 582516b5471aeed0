package xlreport

import (
	"fmt"
	"math"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"
)

// CreateSheet appends a new sheet to the document with its cursor at row 1.
// The declared column count is the highest column index in widths; columns
// without a width get the document's minimum width.
func (d *Document) CreateSheet(name string, widths []ColumnWidth) (*Sheet, error) {
	const op = "createSheet"
	if d.finalized {
		return nil, newBuildError(name, op, ErrDocumentFinalized)
	}
	if err := ValidateSheetName(name); err != nil {
		return nil, newBuildError(name, op, err)
	}
	if existing := d.Sheet(name); existing != nil {
		return nil, newBuildError(name, op, fmt.Errorf("%w: %q already exists", ErrDuplicateSheetName, existing.name))
	}
	resolved, err := resolveWidths(widths, d.opts.minColumnWidth)
	if err != nil {
		return nil, newBuildError(name, op, err)
	}

	s := &Sheet{
		doc:    d,
		name:   name,
		widths: resolved,
		cursor: 1,
	}
	d.sheets = append(d.sheets, s)
	d.opts.logger.Debug().
		Str("sheet", name).
		Int("columns", len(resolved)).
		Int("position", len(d.sheets)).
		Msg("sheet created")
	return s, nil
}

// resolveWidths turns a sparse width table into one width per column.
func resolveWidths(widths []ColumnWidth, minWidth float64) ([]float64, error) {
	if len(widths) == 0 {
		return nil, fmt.Errorf("%w: no columns declared", ErrInvalidColumnWidth)
	}
	count := 0
	seen := make(map[int]bool, len(widths))
	for _, w := range widths {
		if w.Index < 1 {
			return nil, fmt.Errorf("%w: column index %d, must be >= 1", ErrInvalidColumnWidth, w.Index)
		}
		if seen[w.Index] {
			return nil, fmt.Errorf("%w: column %s declared twice", ErrInvalidColumnWidth, ColToName(w.Index))
		}
		if w.Width < 0 || math.IsNaN(w.Width) || math.IsInf(w.Width, 0) {
			return nil, fmt.Errorf("%w: column %s width %v", ErrInvalidColumnWidth, ColToName(w.Index), w.Width)
		}
		seen[w.Index] = true
		if w.Index > count {
			count = w.Index
		}
	}
	if ColToName(count) == "" {
		return nil, fmt.Errorf("%w: column index %d exceeds the sheet limit", ErrInvalidColumnWidth, count)
	}

	out := make([]float64, count)
	for i := range out {
		out[i] = minWidth
	}
	for _, w := range widths {
		if w.Width > 0 {
			out[w.Index-1] = w.Width
		}
	}
	return out, nil
}

// WriteTitle emits a Title row holding text in column 1, merged across
// columns 1..span.
func (s *Sheet) WriteTitle(text string, span int) error {
	return s.emit("writeTitle", RowTitle, []any{text}, span)
}

// WriteHeaderRow emits a ColumnHeader row with one label per column.
func (s *Sheet) WriteHeaderRow(labels ...string) error {
	values := make([]any, len(labels))
	for i, l := range labels {
		values[i] = l
	}
	return s.emit("writeHeaderRow", RowColumnHeader, values, 0)
}

// WriteSectionBanner emits a SectionBanner row holding label in column 1,
// merged across columns 1..span.
func (s *Sheet) WriteSectionBanner(label string, span int) error {
	return s.emit("writeSectionBanner", RowSectionBanner, []any{label}, span)
}

// WriteDataRow emits a DataCell row with one value per column. Values are not
// interpreted: strings and numbers are kept, nil leaves an empty styled cell,
// anything else is stored as its fmt.Sprint text.
func (s *Sheet) WriteDataRow(values ...any) error {
	return s.emit("writeDataRow", RowData, values, 0)
}

// BlankRow advances the cursor by one row without emitting cells.
func (s *Sheet) BlankRow() error {
	if s.doc.finalized {
		return newBuildError(s.name, "blankRow", ErrDocumentFinalized)
	}
	s.cursor++
	return nil
}

// emit validates a row completely before touching the sheet, so a rejected
// call leaves cursor and rows unchanged.
func (s *Sheet) emit(op string, kind RowKind, values []any, span int) error {
	if s.doc.finalized {
		return newBuildError(s.name, op, ErrDocumentFinalized)
	}
	style, err := Resolve(kind.Preset())
	if err != nil {
		return newBuildError(s.name, op, err)
	}
	cols := s.ColumnCount()
	if kind.merged() && (span < 1 || span > cols) {
		return newBuildError(s.name, op, fmt.Errorf("%w: span %d outside [1, %d]", ErrInvalidSpan, span, cols))
	}
	if len(values) > cols {
		return newBuildError(s.name, op, fmt.Errorf("%w: %d values for %d columns", ErrColumnIndexOutOfRange, len(values), cols))
	}

	normalized := make([]any, len(values))
	for i, v := range values {
		normalized[i] = normalizeValue(v)
		if err := checkCellValue(normalized[i]); err != nil {
			return newBuildError(s.name, op, fmt.Errorf("column %s: %w", ColToName(i+1), err))
		}
	}

	row := Row{
		Index:  s.cursor,
		Kind:   kind,
		Preset: style.Name,
		Cells:  make([]Cell, len(values)),
	}
	for i, v := range normalized {
		row.Cells[i] = Cell{
			Ref:   NewCellRef(s.name, s.cursor, i+1),
			Value: v,
			Style: style,
		}
	}
	if kind.merged() {
		m := newRowMerge(s.name, s.cursor, span)
		row.Merge = &m
	}

	s.rows = append(s.rows, row)
	s.cursor++
	return nil
}

// checkCellValue rejects values xlsx cannot hold: non-finite numbers and text
// over the cell character limit.
func checkCellValue(v any) error {
	switch val := v.(type) {
	case float32:
		if f := float64(val); math.IsNaN(f) || math.IsInf(f, 0) {
			return fmt.Errorf("%w: non-finite number %v", ErrInvalidCellValue, val)
		}
	case float64:
		if math.IsNaN(val) || math.IsInf(val, 0) {
			return fmt.Errorf("%w: non-finite number %v", ErrInvalidCellValue, val)
		}
	case string:
		if n := utf8.RuneCountInString(val); n > excelize.TotalCellChars {
			return fmt.Errorf("%w: text of %d characters exceeds %d", ErrInvalidCellValue, n, excelize.TotalCellChars)
		}
	}
	return nil
}

// normalizeValue keeps text and numbers as they are and turns anything else
// into text.
func normalizeValue(v any) any {
	switch val := v.(type) {
	case nil:
		return nil
	case string, int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64, float32, float64:
		return val
	case []byte:
		return string(val)
	case fmt.Stringer:
		return val.String()
	default:
		return fmt.Sprint(val)
	}
}
