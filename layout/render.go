package layout

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/javajack/xlreport"
)

// RenderError reports the layout position where rendering stopped.
type RenderError struct {
	Location Location
	Err      error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("render %s: %v", e.Location, e.Err)
}

func (e *RenderError) Unwrap() error {
	return e.Err
}

type renderOptions struct {
	data map[string]any
}

// RenderOption configures Render.
type RenderOption func(*renderOptions)

// WithData sets the values ${...} placeholders are evaluated against.
func WithData(data map[string]any) RenderOption {
	return func(o *renderOptions) { o.data = data }
}

// NewDocument creates a document carrying the layout's workbook properties.
func NewDocument(rep *Report, opts ...xlreport.Option) *xlreport.Document {
	if rep.Title != "" || rep.Creator != "" {
		opts = append([]xlreport.Option{xlreport.WithProperties(rep.Title, rep.Creator)}, opts...)
	}
	return xlreport.New(opts...)
}

// Render issues the builder calls described by rep against doc, sheet by
// sheet and block by block. It stops at the first failure. The logger is
// taken from ctx (zerolog.Ctx).
func Render(ctx context.Context, doc *xlreport.Document, rep *Report, opts ...RenderOption) error {
	o := &renderOptions{}
	for _, opt := range opts {
		opt(o)
	}
	ev := NewEvaluator(o.data)
	log := zerolog.Ctx(ctx)

	for _, ss := range rep.Sheets {
		if err := ctx.Err(); err != nil {
			return err
		}
		sheet, err := doc.CreateSheet(ss.Name, xlreport.Widths(ss.Widths...))
		if err != nil {
			return &RenderError{Location: Location{Sheet: ss.Name}, Err: err}
		}
		for i, b := range ss.Blocks {
			if err := renderBlock(sheet, b, ev); err != nil {
				return &RenderError{Location: Location{Sheet: ss.Name, Block: i + 1}, Err: err}
			}
		}
		log.Info().
			Str("sheet", ss.Name).
			Int("rows", sheet.Cursor()-1).
			Msg("sheet rendered")
	}
	return nil
}

func renderBlock(sheet *xlreport.Sheet, b Block, ev *Evaluator) error {
	kind, err := b.Kind()
	if err != nil {
		return err
	}
	span := b.Span
	if span == 0 {
		span = sheet.ColumnCount()
	}

	switch kind {
	case BlockTitle:
		text, err := ev.ExpandText(*b.Title)
		if err != nil {
			return err
		}
		return sheet.WriteTitle(text, span)
	case BlockBanner:
		text, err := ev.ExpandText(*b.Banner)
		if err != nil {
			return err
		}
		return sheet.WriteSectionBanner(text, span)
	case BlockHeader:
		labels := make([]string, len(b.Header))
		for i, l := range b.Header {
			if labels[i], err = ev.ExpandText(l); err != nil {
				return err
			}
		}
		return sheet.WriteHeaderRow(labels...)
	case BlockRows:
		for _, row := range b.Rows {
			values, err := expandRow(row, ev)
			if err != nil {
				return err
			}
			if err := sheet.WriteDataRow(values...); err != nil {
				return err
			}
		}
	case BlockBlank:
		if b.Blank < 0 {
			return fmt.Errorf("blank count %d is negative", b.Blank)
		}
		for n := 0; n < b.Blank; n++ {
			if err := sheet.BlankRow(); err != nil {
				return err
			}
		}
	}
	return nil
}

func expandRow(row []any, ev *Evaluator) ([]any, error) {
	out := make([]any, len(row))
	for i, v := range row {
		text, ok := v.(string)
		if !ok {
			out[i] = v
			continue
		}
		expanded, err := ev.Expand(text)
		if err != nil {
			return nil, err
		}
		out[i] = expanded
	}
	return out, nil
}
