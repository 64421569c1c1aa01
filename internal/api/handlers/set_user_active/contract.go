package set_user_active

import "context"

type ModerationService interface {
	SetUserActive(ctx context.Context, adminID, userID int64, active bool) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
