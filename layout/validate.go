package layout

import (
	"fmt"
	"strings"

	"github.com/javajack/xlreport"
)

// Severity indicates the severity of a validation issue.
type Severity int

const (
	SeverityError   Severity = iota // Render will fail
	SeverityWarning                 // Render succeeds but the output may look wrong
)

// Location points at a sheet, block and row of a layout. Block and Row are
// 1-based; zero means "not applicable".
type Location struct {
	Sheet string
	Block int
	Row   int
}

func (l Location) String() string {
	if l == (Location{}) {
		return "layout"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "sheet %q", l.Sheet)
	if l.Block > 0 {
		fmt.Fprintf(&b, " block %d", l.Block)
	}
	if l.Row > 0 {
		fmt.Fprintf(&b, " row %d", l.Row)
	}
	return b.String()
}

// Issue is a single problem found during layout validation.
type Issue struct {
	Severity Severity
	Location Location
	Message  string
}

// String formats the issue as `[ERROR] sheet "X" block 2: message` or "[WARN] ...".
func (i Issue) String() string {
	sev := "ERROR"
	if i.Severity == SeverityWarning {
		sev = "WARN"
	}
	return fmt.Sprintf("[%s] %s: %s", sev, i.Location, i.Message)
}

// HasErrors reports whether any issue has error severity.
func HasErrors(issues []Issue) bool {
	for _, i := range issues {
		if i.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Validate checks a layout for structural and placeholder syntax problems
// without data. It does not evaluate placeholders.
func Validate(rep *Report) []Issue {
	if rep == nil || len(rep.Sheets) == 0 {
		return []Issue{{Severity: SeverityError, Message: "layout declares no sheets"}}
	}

	var issues []Issue
	seen := make(map[string]bool, len(rep.Sheets))
	for _, s := range rep.Sheets {
		loc := Location{Sheet: s.Name}
		if err := xlreport.ValidateSheetName(s.Name); err != nil {
			msg := err.Error()
			if safe := xlreport.SafeSheetName(s.Name); safe != "" && xlreport.ValidateSheetName(safe) == nil {
				msg += fmt.Sprintf(" (try %q)", safe)
			}
			issues = append(issues, Issue{Severity: SeverityError, Location: loc, Message: msg})
		}
		key := strings.ToLower(s.Name)
		if seen[key] {
			issues = append(issues, Issue{Severity: SeverityError, Location: loc, Message: "duplicate sheet name"})
		}
		seen[key] = true
		issues = append(issues, validateSheet(s)...)
	}
	return issues
}

func validateSheet(s SheetSpec) []Issue {
	var issues []Issue
	sheetLoc := Location{Sheet: s.Name}
	cols := len(s.Widths)
	if cols == 0 {
		issues = append(issues, Issue{Severity: SeverityError, Location: sheetLoc, Message: "no column widths declared"})
	}
	for i, w := range s.Widths {
		if w < 0 {
			issues = append(issues, Issue{
				Severity: SeverityError,
				Location: sheetLoc,
				Message:  fmt.Sprintf("column %s has negative width %v", xlreport.ColToName(i+1), w),
			})
		}
	}
	if len(s.Blocks) == 0 {
		issues = append(issues, Issue{Severity: SeverityWarning, Location: sheetLoc, Message: "sheet has no blocks"})
	}

	for i, b := range s.Blocks {
		loc := Location{Sheet: s.Name, Block: i + 1}
		errorf := func(format string, args ...any) {
			issues = append(issues, Issue{Severity: SeverityError, Location: loc, Message: fmt.Sprintf(format, args...)})
		}
		warnf := func(format string, args ...any) {
			issues = append(issues, Issue{Severity: SeverityWarning, Location: loc, Message: fmt.Sprintf(format, args...)})
		}

		kind, err := b.Kind()
		if err != nil {
			errorf("%v", err)
			continue
		}
		if b.Span != 0 && kind != BlockTitle && kind != BlockBanner {
			warnf("span is ignored on %s blocks", kind)
		}

		switch kind {
		case BlockTitle, BlockBanner:
			text := *b.Title
			if kind == BlockBanner {
				text = *b.Banner
			}
			if b.Span < 0 || (cols > 0 && b.Span > cols) {
				errorf("%s span %d outside [1, %d]", kind, b.Span, cols)
			}
			if err := checkSyntax(text); err != nil {
				errorf("%v", err)
			}
		case BlockHeader:
			if len(b.Header) > cols {
				errorf("header has %d labels for %d columns", len(b.Header), cols)
			}
			for _, label := range b.Header {
				if err := checkSyntax(label); err != nil {
					errorf("%v", err)
				}
			}
		case BlockRows:
			for r, row := range b.Rows {
				rowLoc := Location{Sheet: s.Name, Block: i + 1, Row: r + 1}
				switch {
				case len(row) > cols:
					issues = append(issues, Issue{
						Severity: SeverityError,
						Location: rowLoc,
						Message:  fmt.Sprintf("row has %d values for %d columns", len(row), cols),
					})
				case len(row) < cols:
					issues = append(issues, Issue{
						Severity: SeverityWarning,
						Location: rowLoc,
						Message:  fmt.Sprintf("row has %d values for %d columns, trailing cells stay unstyled", len(row), cols),
					})
				}
				for _, v := range row {
					text, ok := v.(string)
					if !ok {
						continue
					}
					if err := checkSyntax(text); err != nil {
						issues = append(issues, Issue{Severity: SeverityError, Location: rowLoc, Message: err.Error()})
					}
				}
			}
		case BlockBlank:
			if b.Blank < 0 {
				errorf("blank count %d is negative", b.Blank)
			}
		}
	}
	return issues
}
