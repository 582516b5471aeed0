// Package layout drives an xlreport.Document from a declarative layout file.
//
// A layout lists sheets, their column widths and an ordered list of blocks. Each
// block is exactly one of: a title, a column header row, a section banner, a
// run of data rows, or a number of blank rows. Text may carry ${...}
// placeholders that are evaluated against a caller-supplied data map.
package layout

import "fmt"

// BlockKind identifies the builder call a block maps to.
type BlockKind string

const (
	BlockTitle  BlockKind = "title"
	BlockHeader BlockKind = "header"
	BlockBanner BlockKind = "banner"
	BlockRows   BlockKind = "rows"
	BlockBlank  BlockKind = "blank"
)

// Report is the root of a layout file.
type Report struct {
	Title   string      `yaml:"title"`   // workbook title property
	Creator string      `yaml:"creator"` // workbook creator property
	Output  string      `yaml:"output"`  // default output file name
	Sheets  []SheetSpec `yaml:"sheets"`
}

// SheetSpec describes one sheet.
type SheetSpec struct {
	Name string `yaml:"name"`
	// Widths lists column widths for columns 1..n. Zero keeps the minimum width.
	Widths []float64 `yaml:"widths"`
	Blocks []Block   `yaml:"blocks"`
}

// Block is one step of a sheet. Exactly one of Title, Header, Banner, Rows or
// Blank must be set.
type Block struct {
	Title  *string  `yaml:"title,omitempty"`
	Banner *string  `yaml:"banner,omitempty"`
	Span   int      `yaml:"span,omitempty"` // merge width for title/banner, 0 = all columns
	Header []string `yaml:"header,omitempty"`
	Rows   [][]any  `yaml:"rows,omitempty"`
	Blank  int      `yaml:"blank,omitempty"`
}

// kinds returns every block kind that is set.
func (b Block) kinds() []BlockKind {
	var out []BlockKind
	if b.Title != nil {
		out = append(out, BlockTitle)
	}
	if b.Header != nil {
		out = append(out, BlockHeader)
	}
	if b.Banner != nil {
		out = append(out, BlockBanner)
	}
	if b.Rows != nil {
		out = append(out, BlockRows)
	}
	if b.Blank != 0 {
		out = append(out, BlockBlank)
	}
	return out
}

// Kind returns the block's kind, or an error if zero or several kinds are set.
func (b Block) Kind() (BlockKind, error) {
	kinds := b.kinds()
	switch len(kinds) {
	case 1:
		return kinds[0], nil
	case 0:
		return "", fmt.Errorf("block sets none of title, header, banner, rows, blank")
	default:
		return "", fmt.Errorf("block sets several kinds %v, expected exactly one", kinds)
	}
}

// Title returns a title block.
func Title(text string, span int) Block { return Block{Title: &text, Span: span} }

// Banner returns a section banner block.
func Banner(label string, span int) Block { return Block{Banner: &label, Span: span} }

// Header returns a column header block.
func Header(labels ...string) Block {
	if labels == nil {
		labels = []string{}
	}
	return Block{Header: labels}
}

// Rows returns a data rows block.
func Rows(rows ...[]any) Block {
	if rows == nil {
		rows = [][]any{}
	}
	return Block{Rows: rows}
}

// Blank returns a block of n blank rows.
func Blank(n int) Block { return Block{Blank: n} }
