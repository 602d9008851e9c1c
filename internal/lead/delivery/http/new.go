package http

import (
	"github.com/gin-gonic/gin"

	"lead-webhook-bridge/internal/lead"
	"lead-webhook-bridge/internal/webhook"
	pkgLog "lead-webhook-bridge/pkg/log"
)

// Handler is the interface for the lead webhook delivery handler.
type Handler interface {
	Verify(c *gin.Context)
	Receive(c *gin.Context)
}

type handler struct {
	l        pkgLog.Logger
	uc       lead.UseCase
	security *webhook.SecurityValidator
}

// New creates a new lead webhook handler.
func New(l pkgLog.Logger, uc lead.UseCase, security *webhook.SecurityValidator) Handler {
	return &handler{
		l:        l,
		uc:       uc,
		security: security,
	}
}
