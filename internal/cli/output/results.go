package output

import (
	"fmt"
	"strconv"

	"github.com/target/dirsearch/internal/domain/directory"
)

// RecordView is the serialisable form of a listed record.
type RecordView struct {
	Index  int            `json:"index"  yaml:"index"`
	Kind   string         `json:"kind"   yaml:"kind"`
	Label  string         `json:"label"  yaml:"label"`
	Fields map[string]any `json:"fields" yaml:"fields"`
}

// PageView renders one page of search results.
type PageView struct {
	Page       int          `json:"page"        yaml:"page"`
	TotalPages int          `json:"total_pages" yaml:"total_pages"`
	Total      int          `json:"total"       yaml:"total"`
	Records    []RecordView `json:"records"     yaml:"records"`
}

var _ TableRenderer = PageView{}

// NewPageView converts a directory page. Indexes are one-based positions in
// the whole result set, matching Page.Lines.
func NewPageView(p directory.Page) PageView {
	view := PageView{
		Page:       p.Number,
		TotalPages: p.TotalPages,
		Total:      p.Total,
		Records:    make([]RecordView, 0, len(p.Records)),
	}
	for i, rec := range p.Records {
		view.Records = append(view.Records, RecordView{
			Index:  p.Offset() + i + 1,
			Kind:   rec.Kind().String(),
			Label:  rec.Label(),
			Fields: rec.Fields(),
		})
	}
	return view
}

// Headers implements TableRenderer.
func (v PageView) Headers() []string {
	return []string{"#", "Type", "Name", "Identifier"}
}

// Rows implements TableRenderer.
func (v PageView) Rows() [][]string {
	rows := make([][]string, 0, len(v.Records))
	for _, r := range v.Records {
		rows = append(rows, recordRow(r))
	}
	return rows
}

func recordRow(r RecordView) []string {
	field := func(name string) string {
		if s, ok := r.Fields[name].(string); ok && s != "" {
			return s
		}
		return directory.NotAvailable
	}
	idx := strconv.Itoa(r.Index)
	switch r.Kind {
	case directory.KindPrincipal.String():
		return []string{idx, "User", field("displayName"), field("userPrincipalName")}
	case directory.KindDevice.String():
		return []string{idx, "Device", field("deviceName"), "Serial: " + field("serialNumber")}
	default:
		return []string{idx, r.Kind, r.Label, ""}
	}
}

// PrintPage writes p in the printer's format. Table output is followed by the
// pagination and total captions.
func (p *Printer) PrintPage(page directory.Page) error {
	if p.format == FormatTable && page.Total == 0 {
		p.Println(page.Label())
		return nil
	}
	if err := p.Print(NewPageView(page)); err != nil {
		return err
	}
	if p.format == FormatTable {
		p.Printf("%s  |  %s\n", page.Label(), page.TotalLabel())
	}
	return nil
}

// DetailView is the serialisable form of a detail rendering.
type DetailView struct {
	Record RecordView `json:"record" yaml:"record"`
	Text   string     `json:"text"   yaml:"text"`
}

// PrintDetail writes the detail text for rec. Table output prints the text verbatim.
func (p *Printer) PrintDetail(index int, rec directory.Record, text string) error {
	if p.format == FormatTable {
		p.Printf("%s\n", text)
		return nil
	}
	return p.Print(DetailView{
		Record: RecordView{Index: index, Kind: rec.Kind().String(), Label: rec.Label(), Fields: rec.Fields()},
		Text:   text,
	})
}

// IdentityView is printed by whoami.
type IdentityView struct {
	Identity string `json:"identity" yaml:"identity"`
	State    string `json:"state"    yaml:"state"`
}

// Headers implements TableRenderer.
func (v IdentityView) Headers() []string { return []string{"Identity", "State"} }

// Rows implements TableRenderer.
func (v IdentityView) Rows() [][]string { return [][]string{{v.Identity, v.State}} }

// PrintProfile writes the caller's own record as aligned fields.
func (p *Printer) PrintProfile(rec directory.Record, fields [][2]string) error {
	if p.format != FormatTable {
		return p.Print(RecordView{Kind: rec.Kind().String(), Label: rec.Label(), Fields: rec.Fields()})
	}
	pairs := make([][2]string, 0, len(fields))
	for _, f := range fields {
		pairs = append(pairs, [2]string{f[0], rec.LookupOr(f[1], directory.NotAvailable)})
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.endInlineLocked()
	if err := PrintFields(p.out, pairs); err != nil {
		return fmt.Errorf("print profile: %w", err)
	}
	return nil
}
