package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/aryankumar/sortpool/internal/bench"
)

func TestNewTableFormatter(t *testing.T) {
	tests := []struct {
		name string
		opts *Options
	}{
		{
			name: "nil options",
			opts: nil,
		},
		{
			name: "with options",
			opts: &Options{NoColor: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			formatter := NewTableFormatter(tt.opts)
			if formatter == nil {
				t.Fatal("NewTableFormatter returned nil")
			}
			if formatter.options == nil {
				t.Error("formatter.options is nil")
			}
		})
	}
}

func TestTableFormatter_Format(t *testing.T) {
	tests := []struct {
		name     string
		data     interface{}
		expected string
		contains []string
	}{
		{
			name:     "integers one per line",
			data:     []int64{-3, 0, 7},
			expected: "-3\n0\n7\n",
		},
		{
			name:     "empty integers",
			data:     []int64{},
			expected: "",
		},
		{
			name: "map data",
			data: map[string]interface{}{
				"name":  "test",
				"value": 123,
			},
			contains: []string{"name", "value", "test", "123"},
		},
		{
			name: "slice of maps",
			data: []map[string]interface{}{
				{"name": "item1", "count": 10},
				{"name": "item2", "count": 20},
			},
			contains: []string{"NAME", "COUNT", "item1", "item2", "10", "20"},
		},
		{
			name:     "string data",
			data:     "simple string",
			expected: "simple string\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			formatter := NewTableFormatter(&Options{NoColor: true})
			var buf bytes.Buffer

			if err := formatter.Format(&buf, tt.data); err != nil {
				t.Fatalf("Format() error = %v", err)
			}

			output := buf.String()
			if tt.contains == nil && output != tt.expected {
				t.Errorf("Format() = %q, want %q", output, tt.expected)
			}
			for _, want := range tt.contains {
				if !strings.Contains(output, want) {
					t.Errorf("output missing %q:\n%s", want, output)
				}
			}
		})
	}
}

func TestTableFormatter_FormatReport(t *testing.T) {
	tests := []struct {
		name        string
		opts        *Options
		contains    []string
		notContains []string
	}{
		{
			name: "default",
			opts: &Options{NoColor: true},
			contains: []string{
				"THREADS", "TIME TAKEN", "SPEEDUP",
				"300ms", "150ms", "600ms",
				"1.00x", "2.00x", "0.50x",
				"Summary: 1000 elements, chunk size 100, fastest 2 threads (150ms, 2.00x)",
			},
			notContains: []string{"VERIFIED", "MILLIS"},
		},
		{
			name:        "no headers",
			opts:        &Options{NoColor: true, NoHeaders: true},
			contains:    []string{"300ms", "Summary:"},
			notContains: []string{"THREADS"},
		},
		{
			name:     "wide",
			opts:     &Options{NoColor: true, Wide: true},
			contains: []string{"MILLIS", "VERIFIED", "150.000", "yes"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			formatter := NewTableFormatter(tt.opts)
			var buf bytes.Buffer

			if err := formatter.FormatReport(&buf, sampleReport()); err != nil {
				t.Fatalf("FormatReport() error = %v", err)
			}

			output := buf.String()
			for _, want := range tt.contains {
				if !strings.Contains(output, want) {
					t.Errorf("output missing %q:\n%s", want, output)
				}
			}
			for _, unwanted := range tt.notContains {
				if strings.Contains(output, unwanted) {
					t.Errorf("output should not contain %q:\n%s", unwanted, output)
				}
			}
		})
	}
}

func TestTableFormatter_FormatReportEmpty(t *testing.T) {
	formatter := NewTableFormatter(&Options{NoColor: true})

	for _, report := range []*bench.Report{nil, {}} {
		var buf bytes.Buffer
		if err := formatter.FormatReport(&buf, report); err != nil {
			t.Fatalf("FormatReport() error = %v", err)
		}
		if buf.String() != "No measurements\n" {
			t.Errorf("FormatReport() = %q, want %q", buf.String(), "No measurements\n")
		}
	}
}

func TestTableFormatter_FormatMeasurementRow(t *testing.T) {
	colors := NewColorScheme(&bytes.Buffer{}, true)
	m := sampleReport().Measurements[2]

	row := NewTableFormatter(&Options{NoColor: true}).formatMeasurementRow(m, colors)
	expected := []string{"4", "600ms", "0.50x"}
	if len(row) != len(expected) {
		t.Fatalf("row = %v, want %v", row, expected)
	}
	for i := range expected {
		if row[i] != expected[i] {
			t.Errorf("row[%d] = %q, want %q", i, row[i], expected[i])
		}
	}

	wide := NewTableFormatter(&Options{NoColor: true, Wide: true}).formatMeasurementRow(m, colors)
	if len(wide) != 5 || wide[3] != "600.000" || wide[4] != "yes" {
		t.Errorf("wide row = %v", wide)
	}
}
