package output

import (
	"encoding/json"
	"io"

	"github.com/aryankumar/sortpool/internal/bench"
)

// JSONFormatter formats output as JSON
type JSONFormatter struct {
	options *Options
}

// NewJSONFormatter creates a new JSON formatter
func NewJSONFormatter(opts *Options) *JSONFormatter {
	if opts == nil {
		opts = &Options{}
	}
	return &JSONFormatter{
		options: opts,
	}
}

// Format outputs a single data item as JSON
func (f *JSONFormatter) Format(w io.Writer, data interface{}) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

// FormatReport outputs a benchmark report as JSON
func (f *JSONFormatter) FormatReport(w io.Writer, report *bench.Report) error {
	return f.Format(w, newReportView(report))
}
