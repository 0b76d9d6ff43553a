// Package output renders search pages, record details and status lines for the terminal.
package output

import (
	"fmt"
	"io"
	"strings"
	"sync"

	domainauth "github.com/target/dirsearch/internal/domain/auth"
)

// Format represents the output format type.
type Format string

const (
	// FormatTable outputs data in a formatted table.
	FormatTable Format = "table"
	// FormatJSON outputs data as JSON.
	FormatJSON Format = "json"
	// FormatYAML outputs data as YAML.
	FormatYAML Format = "yaml"
)

// ParseFormat parses a string into a Format, returning an error if invalid.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "table", "":
		return FormatTable, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("invalid output format: %q (valid: table, json, yaml)", s)
	}
}

// String returns the string representation of the format.
func (f Format) String() string {
	return string(f)
}

const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorCyan   = "\033[36m"
	clearLine   = "\r\033[K"
)

// Printer handles formatted output to a writer. Status may be called from
// any goroutine.
type Printer struct {
	out    io.Writer
	format Format
	color  bool

	mu sync.Mutex
	// inline is set while a progress line is on screen without a newline.
	inline bool
}

// NewPrinter creates a new Printer. With color enabled, progress statuses
// rewrite a single line in place.
func NewPrinter(out io.Writer, format Format, color bool) *Printer {
	return &Printer{
		out:    out,
		format: format,
		color:  color,
	}
}

// Format returns the printer's output format.
func (p *Printer) Format() Format {
	return p.format
}

// Writer returns the printer's output writer.
func (p *Printer) Writer() io.Writer {
	return p.out
}

// Print outputs data in the configured format.
// For table format, data should implement TableRenderer.
func (p *Printer) Print(data any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.endInlineLocked()

	switch p.format {
	case FormatTable:
		if renderer, ok := data.(TableRenderer); ok {
			return PrintTable(p.out, renderer)
		}
		return PrintJSON(p.out, data)
	case FormatJSON:
		return PrintJSON(p.out, data)
	case FormatYAML:
		return PrintYAML(p.out, data)
	default:
		return fmt.Errorf("unknown format: %s", p.format)
	}
}

// Println prints a message followed by a newline.
func (p *Printer) Println(args ...any) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.endInlineLocked()
	_, _ = fmt.Fprintln(p.out, args...)
}

// Printf prints a formatted message.
func (p *Printer) Printf(format string, args ...any) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.endInlineLocked()
	_, _ = fmt.Fprintf(p.out, format, args...)
}

// Status renders a status line from the session or the search coordinator.
func (p *Printer) Status(s domainauth.Status) {
	p.mu.Lock()
	defer p.mu.Unlock()

	switch s.Level {
	case domainauth.StatusClear:
		if p.inline {
			_, _ = io.WriteString(p.out, clearLine)
			p.inline = false
		}
	case domainauth.StatusProgress:
		if p.color {
			_, _ = fmt.Fprintf(p.out, "%s%s%s%s", clearLine, colorCyan, s.Text, colorReset)
			p.inline = true
			return
		}
		_, _ = fmt.Fprintln(p.out, s.Text)
	default:
		if p.inline {
			_, _ = io.WriteString(p.out, clearLine)
			p.inline = false
		}
		p.writeColored(levelColor(s.Level), s.Text)
	}
}

// StatusFunc adapts Status to a domain StatusFunc.
func (p *Printer) StatusFunc() domainauth.StatusFunc {
	return p.Status
}

// Success prints a success message.
func (p *Printer) Success(msg string) {
	p.Status(domainauth.Status{Level: domainauth.StatusSuccess, Text: msg})
}

// Error prints an error message.
func (p *Printer) Error(msg string) {
	p.Status(domainauth.Status{Level: domainauth.StatusFailure, Text: msg})
}

// Warning prints a warning message.
func (p *Printer) Warning(msg string) {
	p.Status(domainauth.Status{Level: domainauth.StatusInfo, Text: msg})
}

func (p *Printer) writeColored(color, msg string) {
	if p.color && color != "" {
		_, _ = fmt.Fprintf(p.out, "%s%s%s\n", color, msg, colorReset)
		return
	}
	_, _ = fmt.Fprintln(p.out, msg)
}

func (p *Printer) endInlineLocked() {
	if p.inline {
		_, _ = io.WriteString(p.out, "\n")
		p.inline = false
	}
}

func levelColor(level domainauth.StatusLevel) string {
	switch level {
	case domainauth.StatusSuccess:
		return colorGreen
	case domainauth.StatusFailure:
		return colorRed
	case domainauth.StatusInfo:
		return colorYellow
	default:
		return ""
	}
}
