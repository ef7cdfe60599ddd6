package utils

import (
	"context"
	"encoding/json"
	"net/http"

	"CAMPUS_EVENTS_BACK-END/internal/models"
)

type contextKey string

// userContextKey is the context key the auth middleware stores the
// authenticated user under
const userContextKey contextKey = "auth_user"

// WithUser returns a context carrying the authenticated user
func WithUser(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}

// UserFromContext extracts the authenticated user set by the auth middleware
func UserFromContext(ctx context.Context) (*models.User, bool) {
	user, ok := ctx.Value(userContextKey).(*models.User)
	return user, ok
}

// DecodeJSONRequest decodes a JSON request body into dst; on failure it
// writes a 400 error response and returns the error
func DecodeJSONRequest(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		WriteErrorResponse(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return err
	}
	return nil
}
