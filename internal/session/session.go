// Package session carries the signed-in user through request contexts.
// The auth middleware is the only writer; everything downstream reads.
package session

import "context"

type contextKey string

const userKey contextKey = "session_user"

// GinKey is the key the middleware stores the user under in gin.Context
const GinKey = "session_user"

type User struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
}

func WithUser(ctx context.Context, user *User) context.Context {
	return context.WithValue(ctx, userKey, user)
}

// FromContext returns the current user, or false when the request is anonymous
func FromContext(ctx context.Context) (*User, bool) {
	user, ok := ctx.Value(userKey).(*User)
	if !ok || user == nil || user.ID == "" {
		return nil, false
	}
	return user, true
}
