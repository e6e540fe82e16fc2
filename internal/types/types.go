package types

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// DefaultEntityTypes is the closed set of record kinds the generation service supports
var DefaultEntityTypes = []string{"user", "product", "order", "address", "payment"}

// TestRecord is one generated entity instance as returned by the service
type TestRecord struct {
	ID        string `json:"id" yaml:"id"`
	Type      string `json:"type" yaml:"type"`
	Data      any    `json:"data" yaml:"data"`
	CreatedAt string `json:"createdAt" yaml:"createdAt"`
}

// createdAtLayouts lists the timestamp formats the service is known to emit.
// Spring's LocalDateTime serializes without a zone.
var createdAtLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// CreatedTime parses CreatedAt. Zone-less values are read as local time.
func (r TestRecord) CreatedTime() (time.Time, bool) {
	value := strings.TrimSpace(r.CreatedAt)
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range createdAtLayouts {
		if t, err := time.ParseInLocation(layout, value, time.Local); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// GeneratePayload is the decoded body of a generate response.
// The service may answer with a list of records or with a single record.
type GeneratePayload struct {
	List   []TestRecord
	Single *TestRecord
	IsList bool
}

// ListPayload builds a payload holding a list of records
func ListPayload(records ...TestRecord) GeneratePayload {
	if records == nil {
		records = []TestRecord{}
	}
	return GeneratePayload{List: records, IsList: true}
}

// MismatchedType returns the first record whose type differs from entityType
func MismatchedType(records []TestRecord, entityType string) (TestRecord, bool) {
	for _, r := range records {
		if r.Type != entityType {
			return r, true
		}
	}
	return TestRecord{}, false
}

// SinglePayload builds a payload holding one scalar record
func SinglePayload(record TestRecord) GeneratePayload {
	return GeneratePayload{Single: &record}
}

// Records returns the payload as an ordered list. A single record becomes
// a one-element list. The returned slice is a copy.
func (p GeneratePayload) Records() []TestRecord {
	if p.IsList {
		out := make([]TestRecord, len(p.List))
		copy(out, p.List)
		return out
	}
	if p.Single != nil {
		return []TestRecord{*p.Single}
	}
	return []TestRecord{}
}

// UnmarshalJSON accepts either a JSON array or a JSON object
func (p *GeneratePayload) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return fmt.Errorf("empty generate payload")
	}

	switch trimmed[0] {
	case '[':
		var list []TestRecord
		if err := json.Unmarshal(trimmed, &list); err != nil {
			return fmt.Errorf("failed to decode record list: %w", err)
		}
		if list == nil {
			list = []TestRecord{}
		}
		*p = GeneratePayload{List: list, IsList: true}
	case '{':
		var record TestRecord
		if err := json.Unmarshal(trimmed, &record); err != nil {
			return fmt.Errorf("failed to decode record: %w", err)
		}
		*p = GeneratePayload{Single: &record}
	default:
		return fmt.Errorf("unexpected generate payload: %.32s", string(trimmed))
	}
	return nil
}

// MarshalJSON writes the payload back in the shape it was received
func (p GeneratePayload) MarshalJSON() ([]byte, error) {
	if !p.IsList && p.Single != nil {
		return json.Marshal(p.Single)
	}
	if p.List == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(p.List)
}
