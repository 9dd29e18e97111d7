// Package output provides formatters for displaying sortpool command results.
//
// The package supports multiple output formats (table, JSON, YAML) behind a
// single Formatter interface, used both for sorted data and for benchmark
// reports.
//
// # Basic Usage
//
//	formatter := output.NewFormatter(output.FormatTable)
//
//	// Sorted values, one per line
//	formatter.Format(os.Stdout, []int64{1, 2, 3})
//
//	// Benchmark report
//	formatter.FormatReport(os.Stdout, report)
//
// # Options
//
//	formatter := output.NewFormatter(
//	    output.FormatTable,
//	    output.WithNoColor(true),
//	    output.WithWide(true),
//	)
//
// The table formatter writes borderless, tab-separated tables and ends a
// report with a summary naming the fastest run. Wide mode adds the duration in
// milliseconds and the verification column. JSON and YAML write the same
// report shape with durations as strings and milliseconds.
//
// # Color Support
//
// Colors are enabled only for TTY outputs and can be disabled with
// WithNoColor(true). Speedups below 1x are shown as warnings.
package output
