package directory

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecord_FieldAndLookup(t *testing.T) {
	r := NewPrincipal(map[string]any{
		"id":             "u1",
		"displayName":    "Jane Doe",
		"businessPhones": []any{"+1 555 0100", "+1 555 0101"},
		"mobilePhone":    nil,
	})

	assert.Equal(t, "u1", r.ID())
	assert.Equal(t, "Jane Doe", r.Field("displayName"))
	assert.Equal(t, "", r.Field("mobilePhone"))
	assert.Equal(t, NotAvailable, r.FieldOr("mobilePhone", NotAvailable))
	assert.Equal(t, "+1 555 0100, +1 555 0101", r.LookupOr("join(', ', businessPhones)", NotAvailable))
	assert.Equal(t, NotAvailable, r.LookupOr("officeLocation", NotAvailable))
	assert.Equal(t, NotAvailable, r.LookupOr("join(', ', ", NotAvailable))
}

func TestRecord_KindIsFixedAtConstruction(t *testing.T) {
	// A device object that happens to carry displayName stays a device.
	d := NewDevice(map[string]any{"deviceName": "PC", "displayName": "odd", "serialNumber": "S"})
	assert.True(t, d.IsDevice())
	assert.False(t, d.IsPrincipal())
	assert.Equal(t, "Device: PC (Serial: S)", d.Label())
}

func TestRecord_ConstructorCopiesFields(t *testing.T) {
	fields := map[string]any{"displayName": "A"}
	r := NewPrincipal(fields)
	fields["displayName"] = "B"
	assert.Equal(t, "A", r.Field("displayName"))
}

func TestRecord_JSONKeepsKind(t *testing.T) {
	in := NewDevice(map[string]any{"deviceName": "PC", "serialNumber": "S1"})
	b, err := json.Marshal(in)
	require.NoError(t, err)

	var out Record
	require.NoError(t, json.Unmarshal(b, &out))
	assert.Equal(t, KindDevice, out.Kind())
	assert.Equal(t, "S1", out.Field("serialNumber"))

	err = json.Unmarshal([]byte(`{"kind":"group","fields":{}}`), &out)
	require.Error(t, err)
}
