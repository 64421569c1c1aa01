package set_user_verified

import "context"

type ModerationService interface {
	SetUserVerified(ctx context.Context, adminID, userID int64, verified bool) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
