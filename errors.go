package xlreport

import (
	"errors"
	"fmt"
)

var (
	// ErrDuplicateSheetName is returned when a sheet name is already used in the document.
	ErrDuplicateSheetName = errors.New("duplicate sheet name")
	// ErrInvalidSheetName is returned for names Excel would refuse.
	ErrInvalidSheetName = errors.New("invalid sheet name")
	// ErrInvalidColumnWidth is returned for a malformed column width table.
	ErrInvalidColumnWidth = errors.New("invalid column width")
	// ErrInvalidSpan is returned when a merge span is outside [1, column count].
	ErrInvalidSpan = errors.New("invalid span")
	// ErrUnknownPreset is returned when a style preset name is not in the catalog.
	ErrUnknownPreset = errors.New("unknown style preset")
	// ErrColumnIndexOutOfRange is returned when a row has more values than the sheet has columns.
	ErrColumnIndexOutOfRange = errors.New("column index out of range")
	// ErrInvalidCellValue is returned for a value the xlsx format cannot store,
	// such as NaN or text longer than the cell limit.
	ErrInvalidCellValue = errors.New("invalid cell value")
	// ErrDocumentFinalized is returned when a persisted document is mutated.
	ErrDocumentFinalized = errors.New("document is finalized")
	// ErrEmptyDocument is returned when a document without sheets is persisted.
	ErrEmptyDocument = errors.New("document has no sheets")
)

// BuildError reports a rejected builder call. The sheet is left exactly as it
// was before the call.
type BuildError struct {
	Sheet string // sheet name, empty for document-level operations
	Op    string // builder operation, e.g. "writeTitle"
	Err   error
}

func (e *BuildError) Error() string {
	if e.Sheet == "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s on sheet %q: %v", e.Op, e.Sheet, e.Err)
}

func (e *BuildError) Unwrap() error {
	return e.Err
}

func newBuildError(sheet, op string, err error) *BuildError {
	return &BuildError{Sheet: sheet, Op: op, Err: err}
}
