package http

import (
	"context"
	"net/http"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// requireParishScope extracts the parish scope set by middleware. A missing
// scope is answered directly and reported as not handled.
func requireParishScope(ctx context.Context, w http.ResponseWriter, res responder) (string, bool) {
	parishID, ok := ParishScopeFromContext(ctx)
	if !ok || strings.TrimSpace(parishID) == "" {
		res.writeError(ctx, w, http.StatusBadRequest, errMissingParishScope)
		return "", false
	}
	return parishID, true
}

func parseDateValue(value string) (time.Time, error) {
	return time.Parse(dateLayout, strings.TrimSpace(value))
}

func formatDateValue(t time.Time) string {
	return t.Format(dateLayout)
}

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func optionalDate(value *string) (*time.Time, error) {
	if value == nil || strings.TrimSpace(*value) == "" {
		return nil, nil
	}
	parsed, err := parseDateValue(*value)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}

func dateString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	formatted := formatDateValue(*t)
	return &formatted
}
