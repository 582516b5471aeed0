package xlreport

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"
)

// MaxSheetNameLength is the longest sheet name Excel accepts.
const MaxSheetNameLength = 31

// CellRef represents a single cell position in a sheet.
type CellRef struct {
	Sheet string // sheet name (empty = current sheet)
	Row   int    // 1-based row index
	Col   int    // 1-based column index
}

// NewCellRef creates a CellRef with explicit sheet, row, col.
func NewCellRef(sheet string, row, col int) CellRef {
	return CellRef{Sheet: sheet, Row: row, Col: col}
}

// String formats the CellRef as "Sheet1!A1" or "A1" if no sheet.
func (c CellRef) String() string {
	name := c.CellName()
	if c.Sheet != "" {
		return c.Sheet + "!" + name
	}
	return name
}

// CellName returns just the cell part like "A1" without sheet name.
func (c CellRef) CellName() string {
	return ColToName(c.Col) + fmt.Sprintf("%d", c.Row)
}

// ColToName converts a 1-based column index to a column name.
// 1→"A", 26→"Z", 27→"AA". Out-of-range indexes yield "".
func ColToName(col int) string {
	name, err := excelize.ColumnNumberToName(col)
	if err != nil {
		return ""
	}
	return name
}

// MergeRegion is a contiguous horizontal span of cells within one row.
type MergeRegion struct {
	First CellRef
	Last  CellRef
}

// newRowMerge returns the region [row,1]..[row,span].
func newRowMerge(sheet string, row, span int) MergeRegion {
	return MergeRegion{
		First: NewCellRef(sheet, row, 1),
		Last:  NewCellRef(sheet, row, span),
	}
}

// String formats the region as "A1:D1".
func (m MergeRegion) String() string {
	return m.First.CellName() + ":" + m.Last.CellName()
}

// Width returns the number of columns covered.
func (m MergeRegion) Width() int {
	return m.Last.Col - m.First.Col + 1
}

// Contains returns true if the given cell is inside the region.
func (m MergeRegion) Contains(ref CellRef) bool {
	if m.First.Sheet != "" && ref.Sheet != "" && m.First.Sheet != ref.Sheet {
		return false
	}
	return ref.Row >= m.First.Row && ref.Row <= m.Last.Row &&
		ref.Col >= m.First.Col && ref.Col <= m.Last.Col
}

// Overlaps returns true if the two regions share at least one cell.
func (m MergeRegion) Overlaps(other MergeRegion) bool {
	return m.First.Row <= other.Last.Row && other.First.Row <= m.Last.Row &&
		m.First.Col <= other.Last.Col && other.First.Col <= m.Last.Col
}

var forbiddenSheetRunes = []rune{'/', '\\', ':', '*', '?', '[', ']'}

// ValidateSheetName reports why Excel would refuse name as a sheet name, or nil.
func ValidateSheetName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: empty", ErrInvalidSheetName)
	}
	if utf8.RuneCountInString(name) > MaxSheetNameLength {
		return fmt.Errorf("%w: %q is longer than %d characters", ErrInvalidSheetName, name, MaxSheetNameLength)
	}
	if strings.ContainsAny(name, string(forbiddenSheetRunes)) {
		return fmt.Errorf("%w: %q contains one of %q", ErrInvalidSheetName, name, string(forbiddenSheetRunes))
	}
	if strings.HasPrefix(name, "'") || strings.HasSuffix(name, "'") {
		return fmt.Errorf("%w: %q starts or ends with an apostrophe", ErrInvalidSheetName, name)
	}
	return nil
}

// SafeSheetName sanitizes a string for use as an Excel sheet name.
// It replaces forbidden characters ([]*?/\:) with underscore and truncates to 31 chars.
func SafeSheetName(name string) string {
	runes := []rune(strings.Trim(name, "'"))
	for i, r := range runes {
		for _, f := range forbiddenSheetRunes {
			if r == f {
				runes[i] = '_'
				break
			}
		}
	}
	if len(runes) > MaxSheetNameLength {
		runes = runes[:MaxSheetNameLength]
	}
	return string(runes)
}
