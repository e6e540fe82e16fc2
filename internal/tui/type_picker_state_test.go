package tui

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/MaheshGaireUCumberlands/qa-automation-service-hub/internal/types"
)

func TestTypePickerState(t *testing.T) {
	s := NewTypePickerState([]string{"user", "product", "order", "address", "payment"})

	assert.Len(t, s.Matches(), 5, "empty query lists every type")
	name, index, ok := s.Selected()
	assert.True(t, ok)
	assert.Equal(t, "user", name)
	assert.Equal(t, 0, index)

	s.SetQuery("add")
	name, index, ok = s.Selected()
	assert.True(t, ok)
	assert.Equal(t, "address", name)
	assert.Equal(t, 3, index, "index refers to the full list")

	s.SetQuery("zzz")
	assert.Empty(t, s.Matches())
	_, _, ok = s.Selected()
	assert.False(t, ok)
}

func TestTypePickerState_Move(t *testing.T) {
	s := NewTypePickerState([]string{"user", "product"})

	s.Move(-1)
	assert.Equal(t, 0, s.Index())
	s.Move(5)
	assert.Equal(t, 1, s.Index())

	s.SetQuery("")
	assert.Equal(t, 0, s.Index(), "new query resets the highlight")
}

func TestHighlightMatch(t *testing.T) {
	assert.Equal(t, "order", highlightMatch("order", nil))
	// Styles render as plain text without a terminal
	assert.Equal(t, "order", highlightMatch("order", []int{0, 2}))
}

func TestFormatStatusCodes(t *testing.T) {
	got := formatStatusCodes(map[int]int{500: 1, 200: 2, 0: 1})
	assert.Equal(t, "no response×1, 200×2, 500×1", got)
}

func TestCreatedLabel(t *testing.T) {
	recent := types.TestRecord{CreatedAt: time.Now().Add(-3 * time.Minute).Format(time.RFC3339)}
	assert.Equal(t, "3 minutes ago", createdLabel(recent))

	assert.Equal(t, "not a date", createdLabel(types.TestRecord{CreatedAt: "not a date"}))
}
