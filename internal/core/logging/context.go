package logging

import "context"

type contextKey string

const (
	categoryIDKey  contextKey = "category_id"
	checklistIDKey contextKey = "checklist_id"
)

// WithCategoryID adds a category ID to the context.
func WithCategoryID(ctx context.Context, categoryID string) context.Context {
	return context.WithValue(ctx, categoryIDKey, categoryID)
}

// WithChecklistID adds a checklist ID to the context.
func WithChecklistID(ctx context.Context, checklistID string) context.Context {
	return context.WithValue(ctx, checklistIDKey, checklistID)
}

// GetCategoryID retrieves the category ID from the context.
// Returns empty string if not present.
func GetCategoryID(ctx context.Context) string {
	if id, ok := ctx.Value(categoryIDKey).(string); ok {
		return id
	}
	return ""
}

// GetChecklistID retrieves the checklist ID from the context.
// Returns empty string if not present.
func GetChecklistID(ctx context.Context) string {
	if id, ok := ctx.Value(checklistIDKey).(string); ok {
		return id
	}
	return ""
}
