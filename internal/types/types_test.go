package types

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeneratePayload_DecodesList(t *testing.T) {
	body := `[
		{"id":"a","type":"user","data":{"firstName":"Jane"},"createdAt":"2024-01-01T00:00:00Z"},
		{"id":"b","type":"user","data":{"firstName":"John"},"createdAt":"2024-01-01T00:00:01Z"}
	]`

	var p GeneratePayload
	require.NoError(t, json.Unmarshal([]byte(body), &p))

	assert.True(t, p.IsList)
	assert.Nil(t, p.Single)
	require.Len(t, p.List, 2)
	assert.Equal(t, "a", p.List[0].ID)
	assert.Equal(t, "b", p.List[1].ID)
}

func TestGeneratePayload_DecodesSingleObject(t *testing.T) {
	body := `{"id":"x","type":"user","data":{},"createdAt":"2024-01-01T00:00:00Z"}`

	var p GeneratePayload
	require.NoError(t, json.Unmarshal([]byte(body), &p))

	assert.False(t, p.IsList)
	require.NotNil(t, p.Single)
	assert.Equal(t, "x", p.Single.ID)
	assert.Equal(t, "user", p.Single.Type)
}

func TestGeneratePayload_EmptyList(t *testing.T) {
	var p GeneratePayload
	require.NoError(t, json.Unmarshal([]byte(` [] `), &p))

	assert.True(t, p.IsList)
	assert.NotNil(t, p.List)
	assert.Empty(t, p.List)
}

func TestGeneratePayload_RejectsOtherShapes(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"null", `null`},
		{"string", `"user"`},
		{"number", `42`},
		{"broken object", `{"id":`},
		{"list of strings", `["a","b"]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var p GeneratePayload
			assert.Error(t, json.Unmarshal([]byte(tt.body), &p))
		})
	}
}

func TestGeneratePayload_MarshalKeepsShape(t *testing.T) {
	single, err := json.Marshal(SinglePayload(TestRecord{ID: "x", Type: "user"}))
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"x","type":"user","data":null,"createdAt":""}`, string(single))

	list, err := json.Marshal(ListPayload())
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(list))
}

func TestTestRecord_CreatedTime(t *testing.T) {
	tests := []struct {
		name   string
		value  string
		wantOK bool
		want   time.Time
	}{
		{"rfc3339", "2024-01-01T00:00:00Z", true, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
		{"zone-less with millis", "2024-03-05T10:20:30.123", true, time.Date(2024, 3, 5, 10, 20, 30, 123000000, time.Local)},
		{"zone-less", "2024-03-05T10:20:30", true, time.Date(2024, 3, 5, 10, 20, 30, 0, time.Local)},
		{"empty", "", false, time.Time{}},
		{"garbage", "yesterday", false, time.Time{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := TestRecord{CreatedAt: tt.value}.CreatedTime()
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.True(t, tt.want.Equal(got), "got %v want %v", got, tt.want)
			}
		})
	}
}

func TestAPIStatus_String(t *testing.T) {
	assert.Equal(t, "Checking...", APIStatusChecking.String())
	assert.Equal(t, "Connected", APIStatusConnected.String())
	assert.Equal(t, "Disconnected", APIStatusDisconnected.String())
	assert.Equal(t, "Error", APIStatusError.String())
	assert.True(t, APIStatusConnected.Healthy())
	assert.False(t, APIStatusError.Healthy())
}

func TestGeneratePayload_Records(t *testing.T) {
	list := ListPayload(TestRecord{ID: "a"}, TestRecord{ID: "b"})
	got := list.Records()
	require.Len(t, got, 2)
	got[0].ID = "changed"
	assert.Equal(t, "a", list.List[0].ID, "records are copied")

	single := SinglePayload(TestRecord{ID: "x"}).Records()
	require.Len(t, single, 1)
	assert.Equal(t, "x", single[0].ID)

	assert.Empty(t, GeneratePayload{}.Records())
	assert.NotNil(t, GeneratePayload{}.Records())
}

func TestMismatchedType(t *testing.T) {
	records := []TestRecord{{ID: "1", Type: "user"}, {ID: "2", Type: "order"}, {ID: "3", Type: "product"}}

	r, ok := MismatchedType(records, "user")
	require.True(t, ok)
	assert.Equal(t, "2", r.ID, "first mismatch is reported")

	_, ok = MismatchedType(records[:1], "user")
	assert.False(t, ok)

	_, ok = MismatchedType(nil, "user")
	assert.False(t, ok)
}
