package xlreport

import (
	"time"

	"github.com/rs/zerolog"
)

// DefaultMinColumnWidth is the width given to columns the caller did not size.
const DefaultMinColumnWidth = 10.0

// propsTimestamp is written as both created and modified time so that repeated
// runs produce the same workbook properties.
var propsTimestamp = time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)

// Options holds configuration for a Document.
type Options struct {
	minColumnWidth float64
	logger         zerolog.Logger
	title          string
	creator        string
}

func defaultOptions() *Options {
	return &Options{
		minColumnWidth: DefaultMinColumnWidth,
		logger:         zerolog.Nop(),
	}
}

// Option configures a Document.
type Option func(*Options)

// WithMinColumnWidth sets the width used for columns without an explicit width
// (default: DefaultMinColumnWidth). Non-positive values are ignored.
func WithMinColumnWidth(width float64) Option {
	return func(o *Options) {
		if width > 0 {
			o.minColumnWidth = width
		}
	}
}

// WithLogger sets the logger used for sheet and persistence events (default: no-op).
func WithLogger(logger zerolog.Logger) Option {
	return func(o *Options) { o.logger = logger }
}

// WithProperties sets the workbook title and creator document properties.
func WithProperties(title, creator string) Option {
	return func(o *Options) {
		o.title = title
		o.creator = creator
	}
}
