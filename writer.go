package xlreport

import (
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"
)

// ExcelizeWriter renders a Document into an excelize workbook.
type ExcelizeWriter struct {
	file     *excelize.File
	styleIDs map[PresetName]int // preset → style id, registered once per file
}

// NewExcelizeWriter creates a writer backed by a fresh workbook.
func NewExcelizeWriter() *ExcelizeWriter {
	return &ExcelizeWriter{
		file:     excelize.NewFile(),
		styleIDs: make(map[PresetName]int),
	}
}

// registerStyles adds every catalog preset to the workbook in catalog order,
// so style ids do not depend on which rows a document happens to contain.
func (w *ExcelizeWriter) registerStyles() error {
	for _, name := range presetOrder {
		if _, ok := w.styleIDs[name]; ok {
			continue
		}
		p, err := Resolve(name)
		if err != nil {
			return err
		}
		id, err := w.file.NewStyle(p.Excelize())
		if err != nil {
			return fmt.Errorf("register style %s: %w", name, err)
		}
		w.styleIDs[name] = id
	}
	return nil
}

// WriteDocument writes every sheet of doc in creation order. The workbook's
// default sheet is reused for the first sheet so no extra tab remains.
func (w *ExcelizeWriter) WriteDocument(doc *Document) error {
	if len(doc.sheets) == 0 {
		return ErrEmptyDocument
	}
	if err := w.registerStyles(); err != nil {
		return err
	}

	defaultSheet := w.file.GetSheetName(0)
	for i, s := range doc.sheets {
		if i == 0 {
			if err := w.file.SetSheetName(defaultSheet, s.name); err != nil {
				return fmt.Errorf("rename sheet %q: %w", s.name, err)
			}
		} else if _, err := w.file.NewSheet(s.name); err != nil {
			return fmt.Errorf("create sheet %q: %w", s.name, err)
		}
		if err := w.writeSheet(s); err != nil {
			return fmt.Errorf("write sheet %q: %w", s.name, err)
		}
	}
	w.file.SetActiveSheet(0)

	if doc.opts.title != "" || doc.opts.creator != "" {
		stamp := propsTimestamp.Format(time.RFC3339)
		if err := w.file.SetDocProps(&excelize.DocProperties{
			Title:          doc.opts.title,
			Creator:        doc.opts.creator,
			LastModifiedBy: doc.opts.creator,
			Created:        stamp,
			Modified:       stamp,
		}); err != nil {
			return fmt.Errorf("set document properties: %w", err)
		}
	}
	return nil
}

func (w *ExcelizeWriter) writeSheet(s *Sheet) error {
	for i, width := range s.widths {
		col := ColToName(i + 1)
		if err := w.file.SetColWidth(s.name, col, col, width); err != nil {
			return fmt.Errorf("set width of column %s: %w", col, err)
		}
	}

	for _, row := range s.rows {
		styleID, ok := w.styleIDs[row.Preset]
		if !ok {
			return fmt.Errorf("row %d: %w: %q", row.Index, ErrUnknownPreset, row.Preset)
		}
		for _, c := range row.Cells {
			cell := c.Ref.CellName()
			if c.Value != nil {
				if err := w.file.SetCellValue(s.name, cell, c.Value); err != nil {
					return fmt.Errorf("set value %s: %w", cell, err)
				}
			}
			if err := w.file.SetCellStyle(s.name, cell, cell, styleID); err != nil {
				return fmt.Errorf("set style %s: %w", cell, err)
			}
		}
		if row.Merge != nil {
			if err := w.mergeRow(s.name, *row.Merge, styleID); err != nil {
				return err
			}
		}
	}
	return nil
}

// mergeRow styles every cell of the region so borders and fill cover the whole
// span, then merges it when it is wider than one column.
func (w *ExcelizeWriter) mergeRow(sheet string, m MergeRegion, styleID int) error {
	topLeft, bottomRight := m.First.CellName(), m.Last.CellName()
	if err := w.file.SetCellStyle(sheet, topLeft, bottomRight, styleID); err != nil {
		return fmt.Errorf("style merge %s: %w", m, err)
	}
	if m.Width() <= 1 {
		return nil
	}
	if err := w.file.MergeCell(sheet, topLeft, bottomRight); err != nil {
		return fmt.Errorf("merge cells %s: %w", m, err)
	}
	return nil
}

// Write writes the workbook to the given writer.
func (w *ExcelizeWriter) Write(out io.Writer) error {
	return w.file.Write(out)
}

// Close closes the underlying excelize file.
func (w *ExcelizeWriter) Close() error {
	return w.file.Close()
}
