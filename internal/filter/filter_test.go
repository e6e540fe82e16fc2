package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MaheshGaireUCumberlands/qa-automation-service-hub/internal/types"
)

func sampleRecords() []types.TestRecord {
	return []types.TestRecord{
		{ID: "1", Type: "order", Data: map[string]any{"status": "completed", "totalAmount": 12.5}},
		{ID: "2", Type: "order", Data: map[string]any{"status": "pending", "totalAmount": 3.0}},
		{ID: "3", Type: "order", Data: map[string]any{"status": "completed", "totalAmount": 7.25}},
	}
}

func TestApply(t *testing.T) {
	tests := []struct {
		name       string
		expression string
		want       string
	}{
		{"projection", "[].id", `["1","2","3"]`},
		{"filter then project", "[?data.status=='completed'].data.totalAmount", `[12.5, 7.25]`},
		{"function", "length(@)", `3`},
		{"multiselect", "[0].{id: id, status: data.status}", `{"id":"1","status":"completed"}`},
		{"no match on missing key", "[0].data.missing", `null`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Apply(sampleRecords(), tt.expression)
			require.NoError(t, err)
			assert.JSONEq(t, tt.want, got)
		})
	}
}

func TestApply_EmptyExpressionReturnsRecords(t *testing.T) {
	got, err := Apply(sampleRecords()[:1], "  ")
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":"1","type":"order","data":{"status":"completed","totalAmount":12.5},"createdAt":""}]`, got)

	got, err = Apply(nil, "")
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, got)
}

func TestApply_InvalidExpression(t *testing.T) {
	_, err := Apply(sampleRecords(), "[?status==")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid JMESPath expression")
}

func TestRecords(t *testing.T) {
	got, err := Records(sampleRecords(), "[?data.status=='completed']")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "1", got[0].ID)
	assert.Equal(t, "3", got[1].ID)

	single, err := Records(sampleRecords(), "[1]")
	require.NoError(t, err)
	require.Len(t, single, 1)
	assert.Equal(t, "2", single[0].ID)

	all, err := Records(sampleRecords(), "")
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestRecords_RejectsProjections(t *testing.T) {
	expressions := []string{
		"[].id",
		"length(@)",
		"[].data",
		"[0].data",
		"[].{id: id}",
		"[?data.status=='completed'].{id: id, status: data.status}",
		"[5]",
	}

	for _, expr := range expressions {
		t.Run(expr, func(t *testing.T) {
			got, err := Records(sampleRecords(), expr)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "does not select records")
			assert.Nil(t, got)
		})
	}
}

func TestRecords_EmptySelection(t *testing.T) {
	got, err := Records(sampleRecords(), "[?type=='user']")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestIsValidJMESPath(t *testing.T) {
	assert.True(t, IsValidJMESPath("[?type=='user'].id"))
	assert.False(t, IsValidJMESPath("[?type=="))
}
