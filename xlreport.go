// Package xlreport renders multi-sheet reference documents as styled xlsx
// workbooks.
//
// A Document holds sheets in creation order. Each Sheet owns a row cursor and
// exposes one call per row kind (title, column header, section banner, data
// row, blank row); every call validates its input before touching the sheet,
// so a rejected call leaves the sheet unchanged. Styling comes from a fixed
// catalog of presets. Once a document is persisted it is finalized and can no
// longer be modified.
package xlreport

import (
	"bytes"
	"fmt"
	"io"
)

// Write renders the document as xlsx and writes it to w. On success the
// document is finalized.
func (d *Document) Write(w io.Writer) error {
	data, err := d.render()
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	d.finalize()
	return nil
}

// WriteBytes renders the document and returns the xlsx content.
func (d *Document) WriteBytes() ([]byte, error) {
	data, err := d.render()
	if err != nil {
		return nil, err
	}
	d.finalize()
	return data, nil
}

// SaveAs renders the document to the file at path. The workbook is rendered
// in memory and then moved into place, so a failure leaves any existing file
// at path untouched.
func (d *Document) SaveAs(path string) error {
	data, err := d.render()
	if err != nil {
		return err
	}
	if err := writeFileAtomic(path, data, 0o644); err != nil {
		return err
	}
	d.finalize()
	d.opts.logger.Info().Str("path", path).Msg("workbook saved")
	return nil
}

// render produces the xlsx bytes without finalizing the document.
func (d *Document) render() ([]byte, error) {
	xw := NewExcelizeWriter()
	defer xw.Close()

	if err := xw.WriteDocument(d); err != nil {
		return nil, fmt.Errorf("render workbook: %w", err)
	}
	var buf bytes.Buffer
	if err := xw.Write(&buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func (d *Document) finalize() {
	d.finalized = true
	d.opts.logger.Info().Int("sheets", len(d.sheets)).Msg("workbook written")
}
