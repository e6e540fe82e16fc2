package workflow

import (
	"github.com/rs/zerolog"

	"github.com/MaheshGaireUCumberlands/qa-automation-service-hub/internal/types"
)

// State is the single mutable container behind the dashboard
type State struct {
	SelectedType   string
	RequestedCount int
	Results        []types.TestRecord
	IsLoading      bool
	APIStatus      types.APIStatus
	// GenerateErr is the failure of the latest completed generation; it is
	// cleared when a generation starts
	GenerateErr error
}

// Stats is what the dashboard summary cards show
type Stats struct {
	TotalGenerated int
	DataTypes      int
	APIStatus      types.APIStatus
}

// clone copies the results slice so callers cannot alias controller state
func (s State) clone() State {
	out := s
	out.Results = make([]types.TestRecord, len(s.Results))
	copy(out.Results, s.Results)
	return out
}

// uniqueTypes returns the distinct record types in first-appearance order
func uniqueTypes(records []types.TestRecord) []string {
	seen := make(map[string]struct{}, len(records))
	out := make([]string, 0, len(records))
	for _, r := range records {
		if _, ok := seen[r.Type]; ok {
			continue
		}
		seen[r.Type] = struct{}{}
		out = append(out, r.Type)
	}
	return out
}

// normalize turns a payload into the ordered result list
func normalize(p types.GeneratePayload) []types.TestRecord {
	return p.Records()
}

// WarnTypeMismatch logs the first record whose type differs from the request.
// Such records are kept.
func WarnTypeMismatch(log zerolog.Logger, entityType string, records []types.TestRecord) {
	if r, ok := types.MismatchedType(records, entityType); ok {
		log.Warn().Str("requested", entityType).Str("received", r.Type).Str("id", r.ID).
			Msg("record type does not match request")
	}
}
