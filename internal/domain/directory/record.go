package directory

// Package directory contains the pure search-side domain: directory records,
// filter expressions, result sets, and pagination.

import (
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"strconv"
	"strings"

	jmespath "github.com/jmespath-community/go-jmespath"
)

// Kind discriminates the Record variant. It is fixed when a record is parsed.
type Kind int

const (
	KindPrincipal Kind = iota + 1
	KindDevice
)

func (k Kind) String() string {
	switch k {
	case KindPrincipal:
		return "principal"
	case KindDevice:
		return "device"
	default:
		return "unknown"
	}
}

// NotAvailable is rendered for fields the directory did not return.
const NotAvailable = "N/A"

// Record is a directory entry: either a principal (user account) or a managed device.
// Fields hold the provider's JSON object as decoded.
type Record struct {
	kind   Kind
	fields map[string]any
}

// NewPrincipal wraps a user object returned by the directory.
func NewPrincipal(fields map[string]any) Record {
	return Record{kind: KindPrincipal, fields: maps.Clone(fields)}
}

// NewDevice wraps a managed device object returned by the directory.
func NewDevice(fields map[string]any) Record {
	return Record{kind: KindDevice, fields: maps.Clone(fields)}
}

func (r Record) Kind() Kind { return r.kind }
func (r Record) IsPrincipal() bool { return r.kind == KindPrincipal }
func (r Record) IsDevice() bool { return r.kind == KindDevice }
func (r Record) ID() string { return r.Field("id") }
func (r Record) Fields() map[string]any { return maps.Clone(r.fields) }

// Field returns a top-level field rendered as text, or "" when absent or null.
func (r Record) Field(name string) string {
	v, ok := r.fields[name]
	if !ok {
		return ""
	}
	return formatValue(v)
}

// FieldOr returns Field(name), or fallback when it is empty.
func (r Record) FieldOr(name, fallback string) string {
	if v := r.Field(name); v != "" {
		return v
	}
	return fallback
}

// Lookup evaluates a JMESPath expression against the record fields.
// ok is false when the expression fails or selects nothing.
func (r Record) Lookup(expr string) (string, bool) {
	if r.fields == nil {
		return "", false
	}
	v, err := jmespath.Search(expr, r.fields)
	if err != nil || v == nil {
		return "", false
	}
	s := formatValue(v)
	return s, s != ""
}

// LookupOr is Lookup with a fallback for missing values.
func (r Record) LookupOr(expr, fallback string) string {
	if s, ok := r.Lookup(expr); ok {
		return s
	}
	return fallback
}

// Label is the one-line description shown in result lists.
func (r Record) Label() string {
	switch r.kind {
	case KindPrincipal:
		return fmt.Sprintf("User: %s (%s)", r.Field("displayName"), r.Field("userPrincipalName"))
	case KindDevice:
		return fmt.Sprintf("Device: %s (Serial: %s)", r.Field("deviceName"), r.Field("serialNumber"))
	default:
		return "Unknown entry"
	}
}

type recordJSON struct {
	Kind   string         `json:"kind"`
	Fields map[string]any `json:"fields"`
}

// MarshalJSON keeps the variant tag alongside the fields.
func (r Record) MarshalJSON() ([]byte, error) {
	return json.Marshal(recordJSON{Kind: r.kind.String(), Fields: r.fields})
}

// UnmarshalJSON restores a record written by MarshalJSON.
func (r *Record) UnmarshalJSON(data []byte) error {
	var raw recordJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch raw.Kind {
	case KindPrincipal.String():
		r.kind = KindPrincipal
	case KindDevice.String():
		r.kind = KindDevice
	default:
		return errors.New("unknown record kind: " + strconv.Quote(raw.Kind))
	}
	r.fields = raw.Fields
	return nil
}

func formatValue(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	case []any:
		parts := make([]string, 0, len(t))
		for _, item := range t {
			if s := formatValue(item); s != "" {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, ", ")
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return fmt.Sprint(t)
		}
		return string(b)
	}
}
