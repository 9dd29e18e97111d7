package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/aryankumar/sortpool/internal/bench"
)

// Format represents the output format type
type Format string

const (
	// FormatTable outputs data in a borderless table
	FormatTable Format = "table"
	// FormatJSON outputs data in JSON format
	FormatJSON Format = "json"
	// FormatYAML outputs data in YAML format
	FormatYAML Format = "yaml"
)

// ParseFormat converts a flag value into a Format.
// An empty string selects the table format.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case "", FormatTable:
		return FormatTable, nil
	case FormatJSON:
		return FormatJSON, nil
	case FormatYAML:
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unsupported output format: %s (supported: table, json, yaml)", s)
	}
}

// Formatter defines the interface for output formatting
type Formatter interface {
	// Format outputs a single data item to the writer
	Format(w io.Writer, data interface{}) error

	// FormatReport outputs a benchmark report to the writer
	FormatReport(w io.Writer, report *bench.Report) error
}

// Option is a functional option for configuring formatters
type Option func(*Options)

// Options holds configuration for formatters
type Options struct {
	// NoColor disables color output
	NoColor bool

	// NoHeaders disables table headers
	NoHeaders bool

	// Wide enables wide output with additional columns
	Wide bool
}

// WithNoColor disables color output
func WithNoColor(noColor bool) Option {
	return func(o *Options) {
		o.NoColor = noColor
	}
}

// WithNoHeaders disables table headers
func WithNoHeaders(noHeaders bool) Option {
	return func(o *Options) {
		o.NoHeaders = noHeaders
	}
}

// WithWide enables wide output
func WithWide(wide bool) Option {
	return func(o *Options) {
		o.Wide = wide
	}
}

// NewFormatter creates a new formatter based on the specified format
func NewFormatter(format Format, opts ...Option) Formatter {
	options := &Options{}
	for _, opt := range opts {
		opt(options)
	}

	switch format {
	case FormatJSON:
		return NewJSONFormatter(options)
	case FormatYAML:
		return NewYAMLFormatter(options)
	case FormatTable:
		fallthrough
	default:
		return NewTableFormatter(options)
	}
}

// reportView is the serialized shape of a benchmark report
type reportView struct {
	DataSize     int               `json:"dataSize" yaml:"dataSize"`
	ChunkSize    int               `json:"chunkSize" yaml:"chunkSize"`
	Seed         uint64            `json:"seed" yaml:"seed"`
	Measurements []measurementView `json:"measurements" yaml:"measurements"`
}

type measurementView struct {
	Threads  int     `json:"threads" yaml:"threads"`
	Duration string  `json:"duration" yaml:"duration"`
	Millis   float64 `json:"millis" yaml:"millis"`
	Speedup  float64 `json:"speedup" yaml:"speedup"`
	Verified bool    `json:"verified" yaml:"verified"`
}

// newReportView converts a report into its serialized shape
func newReportView(report *bench.Report) reportView {
	view := reportView{
		Measurements: make([]measurementView, 0),
	}
	if report == nil {
		return view
	}

	view.DataSize = report.Config.DataSize
	view.ChunkSize = report.Config.ChunkSize
	view.Seed = report.Config.Seed

	for _, m := range report.Measurements {
		view.Measurements = append(view.Measurements, measurementView{
			Threads:  m.Workers,
			Duration: m.Duration.String(),
			Millis:   float64(m.Duration.Microseconds()) / 1000,
			Speedup:  m.Speedup,
			Verified: m.Verified,
		})
	}
	return view
}
