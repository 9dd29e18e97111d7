package output

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/aryankumar/sortpool/internal/bench"
	"github.com/olekukonko/tablewriter"
)

// TableFormatter formats output as a borderless, tab-separated table
type TableFormatter struct {
	options *Options
}

// NewTableFormatter creates a new table formatter
func NewTableFormatter(opts *Options) *TableFormatter {
	if opts == nil {
		opts = &Options{}
	}
	return &TableFormatter{
		options: opts,
	}
}

// Format outputs a single data item as a table.
// Integer slices are written one value per line.
func (f *TableFormatter) Format(w io.Writer, data interface{}) error {
	table := f.createTable(w)

	switch v := data.(type) {
	case []int64:
		return f.formatInts(w, v)
	case map[string]interface{}:
		return f.formatMap(table, v)
	case []map[string]interface{}:
		return f.formatMapSlice(table, v)
	case string:
		fmt.Fprintln(w, v)
		return nil
	default:
		fmt.Fprintln(w, v)
		return nil
	}
}

// FormatReport outputs a benchmark report as a table followed by a summary line
func (f *TableFormatter) FormatReport(w io.Writer, report *bench.Report) error {
	if report == nil || len(report.Measurements) == 0 {
		fmt.Fprintln(w, "No measurements")
		return nil
	}

	colors := NewColorScheme(w, f.options.NoColor)
	table := f.createTable(w)

	headers := []string{"THREADS", "TIME TAKEN", "SPEEDUP"}
	if f.options.Wide {
		headers = append(headers, "MILLIS", "VERIFIED")
	}

	if !f.options.NoHeaders {
		if colors.Disabled {
			table.SetHeader(headers)
		} else {
			coloredHeaders := make([]string, len(headers))
			for i, h := range headers {
				coloredHeaders[i] = colors.Header(h)
			}
			table.SetHeader(coloredHeaders)
		}
	}

	for _, m := range report.Measurements {
		table.Append(f.formatMeasurementRow(m, colors))
	}

	table.Render()

	f.printSummary(w, report, colors)

	return nil
}

// formatMeasurementRow formats a single measurement as a table row
func (f *TableFormatter) formatMeasurementRow(m bench.Measurement, colors *ColorScheme) []string {
	threads := strconv.Itoa(m.Workers)
	if !colors.Disabled {
		threads = colors.Threads(threads)
	}

	duration := m.Duration.String()
	if !colors.Disabled {
		duration = colors.Duration(duration)
	}

	speedup := fmt.Sprintf("%.2fx", m.Speedup)
	if !colors.Disabled {
		speedup = colors.SpeedupColor(m.Speedup)(speedup)
	}

	row := []string{threads, duration, speedup}

	if f.options.Wide {
		verified := "no"
		if m.Verified {
			verified = "yes"
		}
		row = append(row, fmt.Sprintf("%.3f", float64(m.Duration.Microseconds())/1000), verified)
	}

	return row
}

// formatInts writes one integer per line
func (f *TableFormatter) formatInts(w io.Writer, values []int64) error {
	var sb strings.Builder
	for _, v := range values {
		sb.WriteString(strconv.FormatInt(v, 10))
		sb.WriteByte('\n')
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

// formatMap formats a map as a two-column table (key-value pairs)
func (f *TableFormatter) formatMap(table *tablewriter.Table, data map[string]interface{}) error {
	if !f.options.NoHeaders {
		table.SetHeader([]string{"KEY", "VALUE"})
	}

	for k, v := range data {
		table.Append([]string{k, fmt.Sprintf("%v", v)})
	}

	table.Render()
	return nil
}

// formatMapSlice formats a slice of maps as a table
func (f *TableFormatter) formatMapSlice(table *tablewriter.Table, data []map[string]interface{}) error {
	if len(data) == 0 {
		return nil
	}

	// Extract headers from the first map
	var headers []string
	for k := range data[0] {
		headers = append(headers, strings.ToUpper(k))
	}

	if !f.options.NoHeaders {
		table.SetHeader(headers)
	}

	for _, item := range data {
		var row []string
		for _, h := range headers {
			key := strings.ToLower(h)
			row = append(row, fmt.Sprintf("%v", item[key]))
		}
		table.Append(row)
	}

	table.Render()
	return nil
}

// createTable creates a new borderless table
func (f *TableFormatter) createTable(w io.Writer) *tablewriter.Table {
	table := tablewriter.NewWriter(w)

	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")
	table.SetNoWhiteSpace(true)

	return table
}

// printSummary prints the input shape and the fastest run
func (f *TableFormatter) printSummary(w io.Writer, report *bench.Report, colors *ColorScheme) {
	fmt.Fprintln(w, "")
	fmt.Fprintf(w, "Summary: ")

	sizeText := fmt.Sprintf("%d elements, chunk size %d", report.Config.DataSize, report.Config.ChunkSize)

	fastest, _ := report.Fastest()
	fastestText := fmt.Sprintf("fastest %d threads (%s, %.2fx)", fastest.Workers, fastest.Duration, fastest.Speedup)
	if !colors.Disabled {
		fastestText = colors.Success(fastestText)
	}

	fmt.Fprintf(w, "%s, %s\n", sizeText, fastestText)
}
