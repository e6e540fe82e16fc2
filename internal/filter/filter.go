package filter

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jmespath/go-jmespath"

	"github.com/MaheshGaireUCumberlands/qa-automation-service-hub/internal/types"
)

// Apply runs a JMESPath expression over the records, rendered as JSON.
// The expression sees the same document the service returned: a list of
// {id, type, data, createdAt} objects. An empty expression returns the list unchanged.
//
// Examples:
//
//	[?type=='user'].data.email
//	[].{id: id, total: data.totalAmount}
//	length(@)
func Apply(records []types.TestRecord, expression string) (string, error) {
	doc, err := toDocument(records)
	if err != nil {
		return "", err
	}

	result := doc
	if strings.TrimSpace(expression) != "" {
		result, err = search(doc, expression)
		if err != nil {
			return "", err
		}
	}

	// Handle null result
	if result == nil {
		return "null", nil
	}

	output, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal result: %w", err)
	}

	return string(output), nil
}

// Records narrows the records with a JMESPath filter expression. The expression
// must yield a list of records (e.g. [?data.status=='completed']); projections
// that reshape the records are rejected.
func Records(records []types.TestRecord, expression string) ([]types.TestRecord, error) {
	if strings.TrimSpace(expression) == "" {
		return records, nil
	}

	doc, err := toDocument(records)
	if err != nil {
		return nil, err
	}

	result, err := search(doc, expression)
	if err != nil {
		return nil, err
	}

	items, ok := recordList(result)
	if !ok {
		return nil, fmt.Errorf("expression '%s' does not select records", expression)
	}

	raw, err := json.Marshal(items)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}

	var out []types.TestRecord
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("expression '%s' does not select records: %w", expression, err)
	}
	return out, nil
}

// recordList accepts a list of records or a single record. Every element
// must be an object carrying string id and type fields.
func recordList(result interface{}) ([]interface{}, bool) {
	var items []interface{}
	switch v := result.(type) {
	case []interface{}:
		items = v
	case map[string]interface{}:
		items = []interface{}{v}
	default:
		return nil, false
	}

	for _, item := range items {
		obj, ok := item.(map[string]interface{})
		if !ok {
			return nil, false
		}
		if _, ok := obj["id"].(string); !ok {
			return nil, false
		}
		if _, ok := obj["type"].(string); !ok {
			return nil, false
		}
	}
	return items, true
}

// IsValidJMESPath checks if an expression is valid JMESPath syntax
func IsValidJMESPath(expression string) bool {
	_, err := jmespath.Compile(expression)
	return err == nil
}

// toDocument converts records into the generic form JMESPath walks
func toDocument(records []types.TestRecord) (interface{}, error) {
	if records == nil {
		records = []types.TestRecord{}
	}
	raw, err := json.Marshal(records)
	if err != nil {
		return nil, fmt.Errorf("failed to encode records: %w", err)
	}

	var data interface{}
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	return data, nil
}

func search(data interface{}, expression string) (interface{}, error) {
	// Compile the JMESPath expression
	jp, err := jmespath.Compile(expression)
	if err != nil {
		return nil, fmt.Errorf("invalid JMESPath expression '%s': %w", expression, err)
	}

	result, err := jp.Search(data)
	if err != nil {
		return nil, fmt.Errorf("JMESPath search failed: %w", err)
	}
	return result, nil
}
