package http

import "context"

type contextKey string

const (
	parishIDContextKey       contextKey = "parish_id"
	ministerIDContextKey     contextKey = "minister_id"
	massIDContextKey         contextKey = "mass_id"
	fixedSlotIDContextKey    contextKey = "fixed_slot_id"
	absenceIDContextKey      contextKey = "absence_id"
	assignmentIDContextKey   contextKey = "assignment_id"
	publicTokenContextKey    contextKey = "public_token"
	parishScopeContextKey    contextKey = "parish_scope"
)

// ContextWithParishScope injects the parish scope resolved by middleware.
func ContextWithParishScope(ctx context.Context, parishID string) context.Context {
	return context.WithValue(ctx, parishScopeContextKey, parishID)
}

// ParishScopeFromContext extracts the parish scope if one was resolved.
func ParishScopeFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(parishScopeContextKey).(string)
	return id, ok
}

// ContextWithParishID injects a parish identifier resolved from the path.
func ContextWithParishID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, parishIDContextKey, id)
}

// ParishIDFromContext extracts a path parish identifier.
func ParishIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(parishIDContextKey).(string)
	return id, ok
}

// ContextWithMinisterID injects a minister identifier resolved from the path.
func ContextWithMinisterID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ministerIDContextKey, id)
}

// MinisterIDFromContext extracts a path minister identifier.
func MinisterIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(ministerIDContextKey).(string)
	return id, ok
}

// ContextWithMassID injects a mass identifier resolved from the path.
func ContextWithMassID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, massIDContextKey, id)
}

// MassIDFromContext extracts a path mass identifier.
func MassIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(massIDContextKey).(string)
	return id, ok
}

// ContextWithFixedSlotID injects a fixed slot identifier resolved from the path.
func ContextWithFixedSlotID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, fixedSlotIDContextKey, id)
}

// FixedSlotIDFromContext extracts a path fixed slot identifier.
func FixedSlotIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(fixedSlotIDContextKey).(string)
	return id, ok
}

// ContextWithAbsenceID injects an unavailability identifier resolved from the path.
func ContextWithAbsenceID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, absenceIDContextKey, id)
}

// AbsenceIDFromContext extracts a path unavailability identifier.
func AbsenceIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(absenceIDContextKey).(string)
	return id, ok
}

// ContextWithAssignmentID injects an assignment identifier resolved from the path.
func ContextWithAssignmentID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, assignmentIDContextKey, id)
}

// AssignmentIDFromContext extracts a path assignment identifier.
func AssignmentIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(assignmentIDContextKey).(string)
	return id, ok
}

// ContextWithPublicToken injects the confirmation token resolved from the path.
func ContextWithPublicToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, publicTokenContextKey, token)
}

// PublicTokenFromContext extracts the confirmation token.
func PublicTokenFromContext(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(publicTokenContextKey).(string)
	return token, ok
}
