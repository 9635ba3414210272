package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"paramkit/internal/domain"
)

// timeLayout is fixed width so stored timestamps order lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// ============================================================================
// Null Type Conversion Helpers
// ============================================================================

// nullToString safely converts sql.NullString to string
func nullToString(ns sql.NullString) string {
	if ns.Valid {
		return ns.String
	}
	return ""
}

// formatTime renders t in UTC using timeLayout
func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

// parseTime parses a stored timestamp, returning nil for empty or malformed text
func parseTime(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return nil
	}
	return &t
}

// ============================================================================
// Field Value Helpers
// ============================================================================

// encodeValue renders a field for storage. Lists are stored as a JSON array
// of element texts so that custom brackets do not leak into the table.
func encodeValue(p domain.Param) (string, error) {
	lp, ok := p.(domain.ListParam)
	if !ok {
		return p.String(), nil
	}
	items := lp.Items()
	if items == nil {
		items = []string{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// decodeValue assigns stored text to p, validating it again
func decodeValue(p domain.Param, value string) error {
	lp, ok := p.(domain.ListParam)
	if !ok {
		return p.Assign(value)
	}
	var items []string
	if err := json.Unmarshal([]byte(value), &items); err != nil {
		return domain.TypeMismatchError(p.ParamType(), fmt.Sprintf("stored list is not a JSON array: %v", err))
	}
	return lp.AssignItems(items)
}
