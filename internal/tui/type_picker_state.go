package tui

import (
	"github.com/sahilm/fuzzy"
)

// TypePickerState holds the fuzzy search over the configured data types
type TypePickerState struct {
	types   []string
	query   string
	matches []fuzzy.Match
	index   int
}

// NewTypePickerState creates a picker listing every type
func NewTypePickerState(types []string) *TypePickerState {
	s := &TypePickerState{types: types}
	s.SetQuery("")
	return s
}

// SetQuery re-ranks the types against query and resets the selection
func (s *TypePickerState) SetQuery(query string) {
	s.query = query
	s.index = 0

	if query == "" {
		s.matches = make([]fuzzy.Match, len(s.types))
		for i, t := range s.types {
			s.matches[i] = fuzzy.Match{Str: t, Index: i}
		}
		return
	}
	s.matches = fuzzy.Find(query, s.types)
}

// Query returns the current search text
func (s *TypePickerState) Query() string {
	return s.query
}

// Matches returns the ranked matches
func (s *TypePickerState) Matches() []fuzzy.Match {
	return s.matches
}

// Index returns the highlighted match position
func (s *TypePickerState) Index() int {
	return s.index
}

// Move shifts the highlight by delta, staying inside the match list
func (s *TypePickerState) Move(delta int) {
	if len(s.matches) == 0 {
		s.index = 0
		return
	}
	s.index += delta
	if s.index < 0 {
		s.index = 0
	}
	if s.index >= len(s.matches) {
		s.index = len(s.matches) - 1
	}
}

// Selected returns the highlighted type and its position in the full list
func (s *TypePickerState) Selected() (string, int, bool) {
	if s.index < 0 || s.index >= len(s.matches) {
		return "", -1, false
	}
	match := s.matches[s.index]
	return match.Str, match.Index, true
}
