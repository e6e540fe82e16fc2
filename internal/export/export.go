package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/MaheshGaireUCumberlands/qa-automation-service-hub/internal/config"
	"github.com/MaheshGaireUCumberlands/qa-automation-service-hub/internal/types"
)

// Format is an export encoding for a result set
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatCSV  Format = "csv"
)

// ErrUnknownFormat is returned for formats other than json, yaml and csv
var ErrUnknownFormat = errors.New("unknown export format")

// fixedColumns lead every CSV row
var fixedColumns = []string{"id", "type", "createdAt"}

// ParseFormat accepts json, yaml/yml and csv, case-insensitively
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "csv":
		return FormatCSV, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// Extension returns the file extension for the format, without the dot
func (f Format) Extension() string {
	return string(f)
}

// Marshal encodes records in the requested format
func Marshal(records []types.TestRecord, format Format) ([]byte, error) {
	if records == nil {
		records = []types.TestRecord{}
	}

	switch format {
	case FormatJSON:
		data, err := json.MarshalIndent(records, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to encode JSON: %w", err)
		}
		return append(data, '\n'), nil
	case FormatYAML:
		data, err := yaml.Marshal(records)
		if err != nil {
			return nil, fmt.Errorf("failed to encode YAML: %w", err)
		}
		return data, nil
	case FormatCSV:
		return marshalCSV(records)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}

// FileName builds the export file name for a result set
func FileName(entityType string, format Format, now time.Time) string {
	if entityType == "" {
		entityType = "records"
	}
	return fmt.Sprintf("%s_%s.%s", entityType, now.Format("20060102_150405"), format.Extension())
}

// SaveFile writes the records into dir and returns the path of the new file
func SaveFile(dir string, entityType string, records []types.TestRecord, format Format) (string, error) {
	data, err := Marshal(records, format)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(dir, config.DirPermissions); err != nil {
		return "", fmt.Errorf("failed to create export directory: %w", err)
	}

	path := filepath.Join(dir, FileName(entityType, format, time.Now()))
	if err := os.WriteFile(path, data, config.FilePermissions); err != nil {
		return "", fmt.Errorf("failed to write export file: %w", err)
	}
	return path, nil
}

// marshalCSV flattens records to one row each. Map payloads spread into one
// column per top-level key; any other payload lands in a single data column.
func marshalCSV(records []types.TestRecord) ([]byte, error) {
	keys, flat := dataColumns(records)

	headers := append([]string{}, fixedColumns...)
	if flat {
		headers = append(headers, keys...)
	} else {
		headers = append(headers, "data")
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	w.UseCRLF = false

	if err := w.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write headers: %w", err)
	}

	for _, r := range records {
		row := []string{r.ID, r.Type, r.CreatedAt}
		if flat {
			m, _ := r.Data.(map[string]any)
			for _, k := range keys {
				row = append(row, formatValue(m[k]))
			}
		} else {
			row = append(row, formatValue(r.Data))
		}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("failed to write row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// dataColumns returns the sorted union of data keys, and whether every
// record carries a map payload
func dataColumns(records []types.TestRecord) ([]string, bool) {
	seen := make(map[string]bool)
	for _, r := range records {
		m, ok := r.Data.(map[string]any)
		if !ok {
			if r.Data == nil {
				continue
			}
			return nil, false
		}
		for k := range m {
			seen[k] = true
		}
	}

	keys := make([]string, 0, len(seen))
	for k := range seen {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, true
}

// formatValue converts a decoded JSON value to a CSV cell.
// Missing values become empty strings; nested values are written as JSON.
func formatValue(v any) string {
	if v == nil {
		return ""
	}

	switch val := v.(type) {
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	case json.Number:
		return val.String()
	default:
		data, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprintf("%v", val)
		}
		return string(data)
	}
}
