package webhook

import (
	"crypto/subtle"
)

// SecurityValidator validates webhook requests
type SecurityValidator struct {
	config SecurityConfig
}

func NewSecurityValidator(config SecurityConfig) *SecurityValidator {
	return &SecurityValidator{config: config}
}

// ValidateVerifyToken checks the token sent with the subscription handshake.
// An unset configured token rejects every request.
func (v *SecurityValidator) ValidateVerifyToken(token string) error {
	if v.config.VerifyToken == "" {
		return ErrVerifyTokenNotConfigured
	}

	if subtle.ConstantTimeCompare([]byte(token), []byte(v.config.VerifyToken)) != 1 {
		return ErrInvalidVerifyToken
	}

	return nil
}
