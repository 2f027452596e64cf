package domain

import "context"

type CtxKey string

const (
	KeyUserID    CtxKey = "UserID"
	KeyUserEmail CtxKey = "Email"
	KeyUserName  CtxKey = "DisplayName"
	KeyRequestID CtxKey = "RequestID"
)

// CurrentUser is what the auth provider tells us about the caller.
type CurrentUser struct {
	UID         string
	Email       string
	DisplayName string
}

// WithCurrentUser stores the authenticated caller on ctx.
func WithCurrentUser(ctx context.Context, u CurrentUser) context.Context {
	ctx = context.WithValue(ctx, KeyUserID, u.UID)
	ctx = context.WithValue(ctx, KeyUserEmail, u.Email)
	return context.WithValue(ctx, KeyUserName, u.DisplayName)
}

// CurrentUserFrom returns the caller stored by WithCurrentUser; ok is false
// when the request is not authenticated.
func CurrentUserFrom(ctx context.Context) (CurrentUser, bool) {
	uid, _ := ctx.Value(KeyUserID).(string)
	if uid == "" {
		return CurrentUser{}, false
	}
	email, _ := ctx.Value(KeyUserEmail).(string)
	name, _ := ctx.Value(KeyUserName).(string)
	return CurrentUser{UID: uid, Email: email, DisplayName: name}, true
}
