package directory

import (
	"fmt"
	"slices"
)

// PageSize is the fixed number of records per page.
const PageSize = 5

// ResultSet is the merged outcome of one search: all principals followed by all
// devices, in provider order. It is never mutated after construction.
type ResultSet struct {
	records    []Record
	principals int
}

// NewResultSet concatenates principals then devices.
func NewResultSet(principals, devices []Record) ResultSet {
	records := make([]Record, 0, len(principals)+len(devices))
	records = append(records, principals...)
	records = append(records, devices...)
	return ResultSet{records: records, principals: len(principals)}
}

func (rs ResultSet) Len() int        { return len(rs.records) }
func (rs ResultSet) Principals() int { return rs.principals }
func (rs ResultSet) Devices() int    { return len(rs.records) - rs.principals }

// Records returns a copy of all records.
func (rs ResultSet) Records() []Record { return slices.Clone(rs.records) }

// At returns the record at a zero-based position in the whole set.
func (rs ResultSet) At(i int) (Record, bool) {
	if i < 0 || i >= len(rs.records) {
		return Record{}, false
	}
	return rs.records[i], true
}

// TotalPages returns ceil(n / PageSize).
func TotalPages(n int) int {
	if n <= 0 {
		return 0
	}
	return (n + PageSize - 1) / PageSize
}

// ClampPage bounds page to [1, TotalPages(n)], or 1 when n is zero.
func ClampPage(page, n int) int {
	last := TotalPages(n)
	if page > last {
		page = last
	}
	if page < 1 {
		page = 1
	}
	return page
}

// Page is one window of a ResultSet together with its render-ready labels.
type Page struct {
	Number     int
	TotalPages int
	Total      int
	Records    []Record
	HasPrev    bool
	HasNext    bool
}

// Page returns the clamped page n. It has no side effects.
func (rs ResultSet) Page(n int) Page {
	total := len(rs.records)
	n = ClampPage(n, total)
	pages := TotalPages(total)
	if total == 0 {
		return Page{Number: n}
	}
	start := (n - 1) * PageSize
	end := min(start+PageSize, total)
	return Page{
		Number:     n,
		TotalPages: pages,
		Total:      total,
		Records:    slices.Clone(rs.records[start:end]),
		HasPrev:    n > 1,
		HasNext:    n < pages,
	}
}

// Offset is the zero-based position of the first record of the page in the set.
func (p Page) Offset() int {
	if p.Number < 1 {
		return 0
	}
	return (p.Number - 1) * PageSize
}

// Lines returns numbered labels such as "6. User: Jane Doe (jane@contoso.com)".
func (p Page) Lines() []string {
	lines := make([]string, len(p.Records))
	for i, r := range p.Records {
		lines[i] = fmt.Sprintf("%d. %s", p.Offset()+i+1, r.Label())
	}
	return lines
}

// Label is the pagination caption.
func (p Page) Label() string {
	if p.Total == 0 {
		return "No results found"
	}
	return fmt.Sprintf("Page %d of %d", p.Number, p.TotalPages)
}

// TotalLabel is the result count caption.
func (p Page) TotalLabel() string {
	return fmt.Sprintf("Total results: %d", p.Total)
}
