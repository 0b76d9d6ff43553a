package directory

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func principals(n int) []Record {
	out := make([]Record, n)
	for i := range out {
		out[i] = NewPrincipal(map[string]any{
			"id":                fmt.Sprintf("u%d", i+1),
			"displayName":       fmt.Sprintf("John Doe %d", i+1),
			"userPrincipalName": fmt.Sprintf("john%d@contoso.com", i+1),
		})
	}
	return out
}

func TestTotalPages(t *testing.T) {
	for n, want := range map[int]int{0: 0, 1: 1, 5: 1, 6: 2, 10: 2, 11: 3, 23: 5} {
		assert.Equal(t, want, TotalPages(n), "n=%d", n)
	}
}

func TestClampPage(t *testing.T) {
	assert.Equal(t, 1, ClampPage(0, 7))
	assert.Equal(t, 1, ClampPage(-3, 7))
	assert.Equal(t, 2, ClampPage(9, 7))
	assert.Equal(t, 1, ClampPage(4, 0))
}

func TestResultSet_SevenPrincipals(t *testing.T) {
	rs := NewResultSet(principals(7), nil)
	require.Equal(t, 7, rs.Len())

	p1 := rs.Page(1)
	assert.Equal(t, 2, p1.TotalPages)
	assert.Len(t, p1.Records, 5)
	assert.False(t, p1.HasPrev)
	assert.True(t, p1.HasNext)
	assert.Equal(t, "1. User: John Doe 1 (john1@contoso.com)", p1.Lines()[0])
	assert.Equal(t, "Page 1 of 2", p1.Label())
	assert.Equal(t, "Total results: 7", p1.TotalLabel())

	p2 := rs.Page(2)
	require.Len(t, p2.Records, 2)
	assert.Equal(t, []string{
		"6. User: John Doe 6 (john6@contoso.com)",
		"7. User: John Doe 7 (john7@contoso.com)",
	}, p2.Lines())
	assert.True(t, p2.HasPrev)
	assert.False(t, p2.HasNext)
}

func TestResultSet_PageIsIdempotent(t *testing.T) {
	rs := NewResultSet(principals(3), []Record{NewDevice(map[string]any{"deviceName": "PC1", "serialNumber": "S1"})})
	assert.Equal(t, rs.Page(1), rs.Page(1))
	assert.Equal(t, rs.Page(7), rs.Page(1))
}

func TestResultSet_Empty(t *testing.T) {
	p := NewResultSet(nil, nil).Page(1)
	assert.Equal(t, 1, p.Number)
	assert.Empty(t, p.Records)
	assert.False(t, p.HasPrev)
	assert.False(t, p.HasNext)
	assert.Equal(t, "No results found", p.Label())
}

func TestResultSet_OrderPrincipalsThenDevices(t *testing.T) {
	dev := NewDevice(map[string]any{"deviceName": "LAPTOP-1", "serialNumber": "ABC123"})
	rs := NewResultSet(principals(5), []Record{dev})

	assert.Equal(t, 5, rs.Principals())
	assert.Equal(t, 1, rs.Devices())
	last, ok := rs.At(5)
	require.True(t, ok)
	assert.True(t, last.IsDevice())
	assert.Equal(t, []string{"6. Device: LAPTOP-1 (Serial: ABC123)"}, rs.Page(2).Lines())

	_, ok = rs.At(6)
	assert.False(t, ok)
}

func TestResultSet_RecordsIsCopy(t *testing.T) {
	rs := NewResultSet(principals(2), nil)
	recs := rs.Records()
	recs[0] = Record{}
	first, _ := rs.At(0)
	assert.True(t, first.IsPrincipal())
}
