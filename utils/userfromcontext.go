package utils

import (
	"context"
	"savorly/globals"
)

func GetUserEmailFromContext(ctx context.Context) string {
	email, ok := ctx.Value(globals.UserEmailKey).(string)
	if !ok || email == "" {
		return ""
	}
	return email
}
