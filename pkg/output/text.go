package output

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"
)

// TextFormatter renders reports as colored human-readable text.
type TextFormatter struct {
	opts FormatOptions

	title *color.Color
	name  *color.Color
	key   *color.Color
}

// NewTextFormatter creates a new text formatter with the given options.
func NewTextFormatter(opts FormatOptions) *TextFormatter {
	return &TextFormatter{
		opts:  opts,
		title: color.New(color.FgCyan, color.Bold),
		name:  color.New(color.FgYellow, color.Bold),
		key:   color.New(color.FgGreen),
	}
}

// Name returns the format name.
func (f *TextFormatter) Name() string {
	return "text"
}

// Format renders the report as text.
func (f *TextFormatter) Format(ctx context.Context, report *Report, w io.Writer) error {
	if f.opts.Quiet {
		return f.formatQuiet(report, w)
	}

	if report.Title != "" {
		f.title.Fprintln(w, report.Title)
	}

	for _, section := range report.Sections {
		if section.Name != "" {
			f.name.Fprintf(w, "[ %s ]\n", section.Name)
		}
		for _, field := range section.Fields {
			f.key.Fprintf(w, "  %-16s : ", field.Key)
			fmt.Fprintln(w, field.Value)
		}
	}

	if len(report.Sections) > 0 && len(report.Lines) > 0 {
		fmt.Fprintln(w)
	}
	for _, line := range report.Lines {
		fmt.Fprintln(w, line)
	}
	return nil
}

// formatQuiet prints values only, one per line.
func (f *TextFormatter) formatQuiet(report *Report, w io.Writer) error {
	for _, section := range report.Sections {
		for _, field := range section.Fields {
			fmt.Fprintln(w, field.Value)
		}
	}
	for _, line := range report.Lines {
		fmt.Fprintln(w, line)
	}
	return nil
}
