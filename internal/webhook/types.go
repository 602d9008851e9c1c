package webhook

// SecurityConfig holds webhook security settings
type SecurityConfig struct {
	VerifyToken string // Shared token echoed back during the subscription handshake
}
