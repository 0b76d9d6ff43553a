package directory

import (
	"fmt"
	"net/url"
	"strings"
)

// Filter is an OData $filter expression for a directory list endpoint.
// Literals inside it are already escaped with EscapeLiteral.
type Filter string

func (f Filter) String() string { return string(f) }

// EscapeLiteral prepares free text for embedding between single quotes in a
// filter expression: quotes are doubled and everything else is percent-encoded.
func EscapeLiteral(s string) string {
	parts := strings.Split(s, "'")
	for i, part := range parts {
		parts[i] = strings.ReplaceAll(url.QueryEscape(part), "+", "%20")
	}
	return strings.Join(parts, "''")
}

// PrincipalPrefixFilter matches users whose principal name, display name, given
// name, or surname starts with q.
func PrincipalPrefixFilter(q string) Filter {
	lit := EscapeLiteral(q)
	fields := []string{"userPrincipalName", "displayName", "givenName", "surname"}
	clauses := make([]string, len(fields))
	for i, f := range fields {
		clauses[i] = fmt.Sprintf("startswith(%s,'%s')", f, lit)
	}
	return Filter(strings.Join(clauses, " or "))
}

// DeviceSerialFilter matches managed devices by exact serial number.
func DeviceSerialFilter(q string) Filter {
	return Filter(fmt.Sprintf("serialNumber eq '%s'", EscapeLiteral(q)))
}

// DeviceNameFilter matches managed devices by exact device name.
func DeviceNameFilter(q string) Filter {
	return Filter(fmt.Sprintf("deviceName eq '%s'", EscapeLiteral(q)))
}
