package xlreport

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func newTestSheet(t *testing.T, widths ...float64) (*Document, *Sheet) {
	t.Helper()
	doc := New()
	sheet, err := doc.CreateSheet("X", Widths(widths...))
	require.NoError(t, err)
	return doc, sheet
}

func TestCreateSheet_CursorStartsAtOne(t *testing.T) {
	_, sheet := newTestSheet(t, 25, 45, 35, 50)
	assert.Equal(t, 1, sheet.Cursor())
	assert.Equal(t, 4, sheet.ColumnCount())
	assert.Equal(t, "X", sheet.Name())
	assert.Empty(t, sheet.Rows())
}

func TestCreateSheet_SparseWidthsUseMinimum(t *testing.T) {
	doc := New()
	sheet, err := doc.CreateSheet("Sparse", []ColumnWidth{{Index: 1, Width: 25}, {Index: 3, Width: 35}})
	require.NoError(t, err)

	assert.Equal(t, 3, sheet.ColumnCount())
	assert.Equal(t, 25.0, sheet.ColumnWidth(1))
	assert.Equal(t, DefaultMinColumnWidth, sheet.ColumnWidth(2))
	assert.Equal(t, 35.0, sheet.ColumnWidth(3))
	assert.Equal(t, 0.0, sheet.ColumnWidth(4))
}

func TestCreateSheet_ZeroWidthUsesConfiguredMinimum(t *testing.T) {
	doc := New(WithMinColumnWidth(12.5))
	sheet, err := doc.CreateSheet("Min", Widths(0, 40))
	require.NoError(t, err)
	assert.Equal(t, 12.5, sheet.ColumnWidth(1))
	assert.Equal(t, 40.0, sheet.ColumnWidth(2))
}

func TestCreateSheet_DuplicateNameLeavesDocumentUnchanged(t *testing.T) {
	doc := New()
	first, err := doc.CreateSheet("Overview", Widths(10, 20))
	require.NoError(t, err)

	_, err = doc.CreateSheet("Overview", Widths(30))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDuplicateSheetName)

	_, err = doc.CreateSheet("OVERVIEW", Widths(30))
	assert.ErrorIs(t, err, ErrDuplicateSheetName)

	require.Len(t, doc.Sheets(), 1)
	assert.Same(t, first, doc.Sheets()[0])
	assert.Equal(t, 2, first.ColumnCount())
}

func TestCreateSheet_InvalidInput(t *testing.T) {
	tests := []struct {
		name   string
		sheet  string
		widths []ColumnWidth
		want   error
	}{
		{"empty name", "", Widths(10), ErrInvalidSheetName},
		{"forbidden char", "a/b", Widths(10), ErrInvalidSheetName},
		{"too long", "abcdefghijklmnopqrstuvwxyz0123456", Widths(10), ErrInvalidSheetName},
		{"no columns", "S", nil, ErrInvalidColumnWidth},
		{"index zero", "S", []ColumnWidth{{Index: 0, Width: 10}}, ErrInvalidColumnWidth},
		{"duplicate index", "S", []ColumnWidth{{Index: 1, Width: 10}, {Index: 1, Width: 20}}, ErrInvalidColumnWidth},
		{"negative width", "S", Widths(10, -1), ErrInvalidColumnWidth},
		{"beyond last column", "S", []ColumnWidth{{Index: 16385, Width: 10}}, ErrInvalidColumnWidth},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := New()
			_, err := doc.CreateSheet(tt.sheet, tt.widths)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)

			var be *BuildError
			require.True(t, errors.As(err, &be))
			assert.Equal(t, "createSheet", be.Op)
			assert.Empty(t, doc.Sheets())
		})
	}
}

func TestCreateSheet_OrderPreserved(t *testing.T) {
	doc := New()
	names := []string{"9. Key Formulas", "1. Overview Page", "5. Products Page"}
	for _, n := range names {
		_, err := doc.CreateSheet(n, Widths(10))
		require.NoError(t, err)
	}
	var got []string
	for _, s := range doc.Sheets() {
		got = append(got, s.Name())
	}
	assert.Equal(t, names, got)
	assert.Equal(t, "5. Products Page", doc.Sheet("5. products page").Name())
	assert.Nil(t, doc.Sheet("missing"))
}

func TestBuilder_ReferenceScenario(t *testing.T) {
	_, sheet := newTestSheet(t, 25, 45, 35, 50)

	require.NoError(t, sheet.WriteTitle("REPORT", 4))
	require.NoError(t, sheet.WriteHeaderRow("Component", "Source", "Fields", "Logic"))
	require.NoError(t, sheet.WriteSectionBanner("KPI CARDS", 4))
	require.NoError(t, sheet.WriteDataRow("Yesterday's Sales", "Ledger", "Amount,Date", "Sum filtered rows"))
	assert.Equal(t, 5, sheet.Cursor())

	rows := sheet.Rows()
	require.Len(t, rows, 4)

	assert.Equal(t, 1, rows[0].Index)
	assert.Equal(t, RowTitle, rows[0].Kind)
	assert.Equal(t, PresetTitle, rows[0].Preset)
	require.NotNil(t, rows[0].Merge)
	assert.Equal(t, "A1:D1", rows[0].Merge.String())
	require.Len(t, rows[0].Cells, 1)
	assert.Equal(t, "REPORT", rows[0].Cells[0].Value)

	assert.Equal(t, 2, rows[1].Index)
	assert.Equal(t, RowColumnHeader, rows[1].Kind)
	require.Len(t, rows[1].Cells, 4)
	assert.Nil(t, rows[1].Merge)
	for _, c := range rows[1].Cells {
		assert.Equal(t, PresetColumnHeader, c.Style.Name)
		assert.Equal(t, "center", c.Style.Horizontal)
		assert.True(t, c.Style.WrapText)
	}

	assert.Equal(t, 3, rows[2].Index)
	assert.Equal(t, RowSectionBanner, rows[2].Kind)
	require.NotNil(t, rows[2].Merge)
	assert.Equal(t, "A3:D3", rows[2].Merge.String())
	assert.Equal(t, "left", rows[2].Cells[0].Style.Horizontal)

	assert.Equal(t, 4, rows[3].Index)
	assert.Equal(t, RowData, rows[3].Kind)
	want := []any{"Yesterday's Sales", "Ledger", "Amount,Date", "Sum filtered rows"}
	for i, c := range rows[3].Cells {
		assert.Equal(t, want[i], c.Value)
		assert.Equal(t, NewCellRef("X", 4, i+1), c.Ref)
		assert.Equal(t, "top", c.Style.Vertical)
		assert.Equal(t, BorderThin, c.Style.Border)
	}
}

func TestBuilder_InvalidSpanLeavesSheetUnchanged(t *testing.T) {
	_, sheet := newTestSheet(t, 10, 10, 10, 10)
	require.NoError(t, sheet.WriteTitle("T", 4))
	before := sheet.Rows()

	for _, span := range []int{6, 5, 0, -1} {
		err := sheet.WriteTitle("T", span)
		assert.ErrorIs(t, err, ErrInvalidSpan, "span %d", span)
		err = sheet.WriteSectionBanner("B", span)
		assert.ErrorIs(t, err, ErrInvalidSpan, "span %d", span)
	}

	assert.Equal(t, 2, sheet.Cursor())
	assert.Equal(t, before, sheet.Rows())
}

func TestBuilder_SpanOneIsSingleCellRegion(t *testing.T) {
	_, sheet := newTestSheet(t, 10, 10)
	require.NoError(t, sheet.WriteSectionBanner("ACCOUNT STRUCTURE", 1))
	merges := sheet.Merges()
	require.Len(t, merges, 1)
	assert.Equal(t, "A1:A1", merges[0].String())
	assert.Equal(t, 1, merges[0].Width())
}

func TestBuilder_TooManyValues(t *testing.T) {
	_, sheet := newTestSheet(t, 10, 10, 10)

	err := sheet.WriteDataRow("a", "b", "c", "d")
	assert.ErrorIs(t, err, ErrColumnIndexOutOfRange)
	err = sheet.WriteHeaderRow("a", "b", "c", "d")
	assert.ErrorIs(t, err, ErrColumnIndexOutOfRange)

	var be *BuildError
	require.ErrorAs(t, err, &be)
	assert.Equal(t, "X", be.Sheet)
	assert.Equal(t, "writeHeaderRow", be.Op)
	assert.Contains(t, err.Error(), `writeHeaderRow on sheet "X"`)

	assert.Equal(t, 1, sheet.Cursor())
	assert.Empty(t, sheet.Rows())
}

func TestBuilder_NonFiniteNumbersRejected(t *testing.T) {
	_, sheet := newTestSheet(t, 10, 10)
	require.NoError(t, sheet.WriteDataRow(1.5, 2))
	before := sheet.Rows()

	cases := [][]any{
		{math.NaN(), math.Inf(1)},
		{1.0, math.Inf(-1)},
		{float32(math.Inf(1))},
	}
	for _, values := range cases {
		err := sheet.WriteDataRow(values...)
		assert.ErrorIs(t, err, ErrInvalidCellValue, "%v", values)

		var be *BuildError
		require.ErrorAs(t, err, &be)
		assert.Equal(t, "writeDataRow", be.Op)
		assert.Equal(t, "X", be.Sheet)
	}
	assert.ErrorContains(t, sheet.WriteDataRow(1.0, math.NaN()), "column B")

	assert.Equal(t, 2, sheet.Cursor())
	assert.Equal(t, before, sheet.Rows())
}

func TestBuilder_TextOverCellLimitRejected(t *testing.T) {
	_, sheet := newTestSheet(t, 10, 10)
	tooLong := strings.Repeat("x", excelize.TotalCellChars+1)

	err := sheet.WriteDataRow(tooLong)
	assert.ErrorIs(t, err, ErrInvalidCellValue)
	assert.ErrorContains(t, err, fmt.Sprintf("exceeds %d", excelize.TotalCellChars))
	assert.ErrorIs(t, sheet.WriteTitle(tooLong, 2), ErrInvalidCellValue)
	assert.ErrorIs(t, sheet.WriteSectionBanner(tooLong, 1), ErrInvalidCellValue)
	assert.ErrorIs(t, sheet.WriteHeaderRow("ok", tooLong), ErrInvalidCellValue)
	assert.ErrorIs(t, sheet.WriteDataRow([]byte(tooLong)), ErrInvalidCellValue)
	assert.Equal(t, 1, sheet.Cursor())
	assert.Empty(t, sheet.Rows())

	// the limit counts characters, not bytes
	require.NoError(t, sheet.WriteDataRow(strings.Repeat("é", excelize.TotalCellChars)))
	require.NoError(t, sheet.WriteDataRow(strings.Repeat("x", excelize.TotalCellChars)))
	assert.Equal(t, 3, sheet.Cursor())
}

func TestBuilder_ShortRowsAndEmptyRows(t *testing.T) {
	_, sheet := newTestSheet(t, 10, 10, 10)
	require.NoError(t, sheet.WriteDataRow("only"))
	require.NoError(t, sheet.WriteDataRow())
	require.NoError(t, sheet.WriteHeaderRow())

	rows := sheet.Rows()
	require.Len(t, rows, 3)
	assert.Len(t, rows[0].Cells, 1)
	assert.Empty(t, rows[1].Cells)
	assert.Equal(t, 4, sheet.Cursor())
}

type stringerValue struct{ code string }

func (s stringerValue) String() string { return "code:" + s.code }

func TestBuilder_DataRowValues(t *testing.T) {
	_, sheet := newTestSheet(t, 10, 10, 10, 10, 10, 10)
	require.NoError(t, sheet.WriteDataRow(401000, 0.25, nil, true, []byte("raw"), stringerValue{"LFTR"}))

	cells := sheet.Rows()[0].Cells
	assert.Equal(t, 401000, cells[0].Value)
	assert.Equal(t, 0.25, cells[1].Value)
	assert.Nil(t, cells[2].Value)
	assert.Equal(t, "true", cells[3].Value)
	assert.Equal(t, "raw", cells[4].Value)
	assert.Equal(t, "code:LFTR", cells[5].Value)
}

func TestBuilder_CursorAdvancesOncePerCall(t *testing.T) {
	_, sheet := newTestSheet(t, 10, 10, 10, 10)
	calls := []func() error{
		func() error { return sheet.WriteTitle("t", 4) },
		sheet.BlankRow,
		func() error { return sheet.WriteHeaderRow("a", "b") },
		func() error { return sheet.WriteSectionBanner("s", 2) },
		func() error { return sheet.WriteDataRow(1, 2, 3, 4) },
		sheet.BlankRow,
		sheet.BlankRow,
		func() error { return sheet.WriteDataRow("x") },
	}
	for i, call := range calls {
		require.NoError(t, call())
		assert.Equal(t, i+2, sheet.Cursor())
	}

	// rows keep call order and skip blank rows
	var indexes []int
	for _, r := range sheet.Rows() {
		indexes = append(indexes, r.Index)
	}
	assert.Equal(t, []int{1, 3, 4, 5, 8}, indexes)
}

func TestBuilder_MergesNeverOverlap(t *testing.T) {
	_, sheet := newTestSheet(t, 10, 10, 10)
	for i := 0; i < 10; i++ {
		require.NoError(t, sheet.WriteSectionBanner(fmt.Sprintf("s%d", i), i%3+1))
		require.NoError(t, sheet.WriteTitle(fmt.Sprintf("t%d", i), 3))
	}
	merges := sheet.Merges()
	require.Len(t, merges, 20)
	for i := range merges {
		assert.Equal(t, merges[i].First.Row, merges[i].Last.Row)
		for j := i + 1; j < len(merges); j++ {
			assert.False(t, merges[i].Overlaps(merges[j]), "%s overlaps %s", merges[i], merges[j])
		}
	}
}

func TestBuilder_RowsReturnsCopy(t *testing.T) {
	_, sheet := newTestSheet(t, 10, 10)
	require.NoError(t, sheet.WriteTitle("keep", 2))

	rows := sheet.Rows()
	rows[0].Cells[0].Value = "changed"
	rows[0].Merge.Last.Col = 1

	fresh := sheet.Rows()
	assert.Equal(t, "keep", fresh[0].Cells[0].Value)
	assert.Equal(t, 2, fresh[0].Merge.Last.Col)
}

func TestBuilder_Deterministic(t *testing.T) {
	build := func() *Document {
		doc := New()
		s, err := doc.CreateSheet("A", Widths(25, 45, 35))
		require.NoError(t, err)
		require.NoError(t, s.WriteTitle("Title", 3))
		require.NoError(t, s.BlankRow())
		require.NoError(t, s.WriteHeaderRow("a", "b", "c"))
		require.NoError(t, s.WriteSectionBanner("banner", 3))
		require.NoError(t, s.WriteDataRow("x", 1.5, 2))
		s2, err := doc.CreateSheet("B", Widths(10))
		require.NoError(t, err)
		require.NoError(t, s2.WriteDataRow("y"))
		return doc
	}

	a, b := build(), build()
	require.Len(t, b.Sheets(), len(a.Sheets()))
	for i := range a.Sheets() {
		if diff := cmp.Diff(a.Sheets()[i].Rows(), b.Sheets()[i].Rows()); diff != "" {
			t.Errorf("sheet %d rows differ (-first +second):\n%s", i, diff)
		}
	}
	assert.Equal(t, Describe(a), Describe(b))
}

func TestBuilder_FinalizedDocumentRejectsWrites(t *testing.T) {
	doc, sheet := newTestSheet(t, 10, 10)
	require.NoError(t, sheet.WriteTitle("T", 2))
	_, err := doc.WriteBytes()
	require.NoError(t, err)
	require.True(t, doc.Finalized())

	assert.ErrorIs(t, sheet.WriteTitle("again", 2), ErrDocumentFinalized)
	assert.ErrorIs(t, sheet.WriteHeaderRow("a"), ErrDocumentFinalized)
	assert.ErrorIs(t, sheet.WriteSectionBanner("b", 1), ErrDocumentFinalized)
	assert.ErrorIs(t, sheet.WriteDataRow("c"), ErrDocumentFinalized)
	assert.ErrorIs(t, sheet.BlankRow(), ErrDocumentFinalized)
	_, err = doc.CreateSheet("Y", Widths(10))
	assert.ErrorIs(t, err, ErrDocumentFinalized)

	assert.Equal(t, 2, sheet.Cursor())
	assert.Len(t, doc.Sheets(), 1)
}

func TestRowKind_String(t *testing.T) {
	assert.Equal(t, "Title", RowTitle.String())
	assert.Equal(t, "ColumnHeader", RowColumnHeader.String())
	assert.Equal(t, "SectionBanner", RowSectionBanner.String())
	assert.Equal(t, "DataRow", RowData.String())
	assert.Equal(t, "Unknown", RowKind(0).String())
	assert.Equal(t, PresetDataCell, RowData.Preset())
}
