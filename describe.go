package xlreport

import (
	"fmt"
	"strconv"
	"strings"
)

// Describe returns a human-readable tree of the document: each sheet with its
// column widths and cursor, then each emitted row with its kind, extent and
// values. Useful for debugging layouts without opening the workbook.
func Describe(doc *Document) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Document: %d sheet(s)", len(doc.sheets))
	if doc.finalized {
		b.WriteString(" (finalized)")
	}
	b.WriteByte('\n')

	for i, s := range doc.sheets {
		describeSheet(&b, i+1, s)
	}
	return b.String()
}

func describeSheet(b *strings.Builder, pos int, s *Sheet) {
	widths := make([]string, len(s.widths))
	for i, w := range s.widths {
		widths[i] = ColToName(i+1) + "=" + strconv.FormatFloat(w, 'f', -1, 64)
	}
	fmt.Fprintf(b, "  %d. %q columns=%d cursor=%d widths[%s]\n",
		pos, s.name, len(s.widths), s.cursor, strings.Join(widths, " "))

	for _, r := range s.rows {
		extent := ""
		switch {
		case r.Merge != nil:
			extent = r.Merge.String()
		case len(r.Cells) > 0:
			extent = r.Cells[0].Ref.CellName() + ":" + r.Cells[len(r.Cells)-1].Ref.CellName()
		}
		fmt.Fprintf(b, "    row %d %s %s%s\n", r.Index, r.Kind, extent, describeValues(r.Cells))
	}
}

// describeValues formats cell values as ` "a" | 12 | ""`.
func describeValues(cells []Cell) string {
	if len(cells) == 0 {
		return ""
	}
	parts := make([]string, len(cells))
	for i, c := range cells {
		switch v := c.Value.(type) {
		case nil:
			parts[i] = `""`
		case string:
			parts[i] = strconv.Quote(v)
		default:
			parts[i] = fmt.Sprint(v)
		}
	}
	return " " + strings.Join(parts, " | ")
}
