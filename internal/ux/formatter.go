package ux

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"gopkg.in/yaml.v3"
)

// Formatter defines the interface for output formatters.
// This enables consistent output formatting across all commands.
type Formatter interface {
	// Format writes the given data to the output writer
	Format(data interface{}) error
}

// FormatterOptions contains configuration for formatters
type FormatterOptions struct {
	// Writer is where output is written (defaults to os.Stdout)
	Writer io.Writer
	// NoColor disables colored output for text formatters
	NoColor bool
	// Compact enables compact output (no indentation for JSON/YAML)
	Compact bool
}

// NewFormatter creates a formatter based on the format string
func NewFormatter(format string, opts *FormatterOptions) (Formatter, error) {
	if opts == nil {
		opts = &FormatterOptions{Writer: os.Stdout}
	}
	if opts.Writer == nil {
		opts.Writer = os.Stdout
	}

	switch format {
	case "json":
		return &JSONFormatter{opts: opts}, nil
	case "yaml":
		return &YAMLFormatter{opts: opts}, nil
	case "text", "":
		return &TextFormatter{opts: opts}, nil
	default:
		return nil, fmt.Errorf("unknown format: %s (supported: text, json, yaml)", format)
	}
}

// Renderable is data with its own text form. Structured formatters ignore it
// and encode Data instead.
type Renderable interface {
	Render(noColor bool) string
	Data() interface{}
}

// JSONFormatter formats output as JSON
type JSONFormatter struct {
	opts *FormatterOptions
}

// Format writes data as JSON
func (f *JSONFormatter) Format(data interface{}) error {
	if r, ok := data.(Renderable); ok {
		data = r.Data()
	}
	encoder := json.NewEncoder(f.opts.Writer)
	if !f.opts.Compact {
		encoder.SetIndent("", "  ")
	}
	return encoder.Encode(data)
}

// YAMLFormatter formats output as YAML
type YAMLFormatter struct {
	opts *FormatterOptions
}

// Format writes data as YAML
func (f *YAMLFormatter) Format(data interface{}) error {
	if r, ok := data.(Renderable); ok {
		data = r.Data()
	}
	encoder := yaml.NewEncoder(f.opts.Writer)
	if !f.opts.Compact {
		encoder.SetIndent(2)
	}
	defer encoder.Close()
	return encoder.Encode(data)
}

// TextFormatter formats output as human-readable text
type TextFormatter struct {
	opts *FormatterOptions
}

// Format writes data as formatted text.
// Data must be a Renderable, a fmt.Stringer or a string.
func (f *TextFormatter) Format(data interface{}) error {
	switch v := data.(type) {
	case Renderable:
		_, err := fmt.Fprintln(f.opts.Writer, v.Render(f.opts.NoColor))
		return err
	case string:
		_, err := fmt.Fprintln(f.opts.Writer, v)
		return err
	case fmt.Stringer:
		_, err := fmt.Fprintln(f.opts.Writer, v.String())
		return err
	default:
		return fmt.Errorf("text formatter requires data to implement String() method or be a primitive type")
	}
}

var headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86")).Padding(0, 1)
var cellStyle = lipgloss.NewStyle().Padding(0, 1)

// Table is a list view. Text output renders a bordered table; structured
// output encodes Source.
type Table struct {
	Title   string
	Headers []string
	Rows    [][]string
	// Footer is printed below the table, e.g. paging info.
	Footer string
	Source interface{}
}

// Render draws the table.
func (t *Table) Render(noColor bool) string {
	tbl := table.New().
		Border(lipgloss.RoundedBorder()).
		Headers(t.Headers...).
		Rows(t.Rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow && !noColor {
				return headerStyle
			}
			return cellStyle
		})
	if noColor {
		tbl = tbl.Border(lipgloss.ASCIIBorder())
	}

	var b strings.Builder
	if t.Title != "" {
		b.WriteString(t.Title)
		b.WriteString("\n")
	}
	if len(t.Rows) == 0 {
		b.WriteString("(empty)")
	} else {
		b.WriteString(tbl.String())
	}
	if t.Footer != "" {
		b.WriteString("\n")
		b.WriteString(t.Footer)
	}
	return b.String()
}

// Data returns the structured source of the table.
func (t *Table) Data() interface{} {
	if t.Source != nil {
		return t.Source
	}
	return t.Rows
}

// Field is one labelled value of a Detail view.
type Field struct {
	Label string
	Value string
}

// Detail is a single-record view rendered as aligned label/value lines.
type Detail struct {
	Title  string
	Fields []Field
	Source interface{}
}

// Render draws the record.
func (d *Detail) Render(noColor bool) string {
	width := 0
	for _, f := range d.Fields {
		width = max(width, lipgloss.Width(f.Label))
	}
	label := lipgloss.NewStyle().Width(width + 2)
	if !noColor {
		label = label.Foreground(lipgloss.Color("244"))
	}

	var b strings.Builder
	if d.Title != "" {
		title := d.Title
		if !noColor {
			title = lipgloss.NewStyle().Bold(true).Render(title)
		}
		b.WriteString(title)
		b.WriteString("\n")
	}
	for i, f := range d.Fields {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(label.Render(f.Label))
		b.WriteString(f.Value)
	}
	return b.String()
}

// Data returns the structured source of the record.
func (d *Detail) Data() interface{} {
	if d.Source != nil {
		return d.Source
	}
	out := make(map[string]string, len(d.Fields))
	for _, f := range d.Fields {
		out[f.Label] = f.Value
	}
	return out
}

// Compile-time verification that formatters implement Formatter
var _ Formatter = (*JSONFormatter)(nil)
var _ Formatter = (*YAMLFormatter)(nil)
var _ Formatter = (*TextFormatter)(nil)

var _ Renderable = (*Table)(nil)
var _ Renderable = (*Detail)(nil)
