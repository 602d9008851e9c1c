package webhook

import "errors"

var (
	ErrVerifyTokenNotConfigured = errors.New("verify token not configured")
	ErrInvalidVerifyToken       = errors.New("invalid verify token")
)
