package httpserver

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	leadHTTP "lead-webhook-bridge/internal/lead/delivery/http"
	"lead-webhook-bridge/internal/middleware"
	"lead-webhook-bridge/internal/model"
	"lead-webhook-bridge/pkg/response"
)

// RootMessage is served on GET / so uptime checks have a cheap target.
const RootMessage = "✅ Webhook service is live!"

func (srv HTTPServer) mapHandlers() error {
	srv.gin.SetHTMLTemplate(privacyTemplate)
	srv.registerMiddlewares()
	srv.registerSystemRoutes()

	if err := srv.registerDomainRoutes(); err != nil {
		return err
	}

	return nil
}

func (srv HTTPServer) registerMiddlewares() {
	mw := middleware.New(srv.l)
	srv.gin.Use(gin.Recovery(), mw.RequestID(), mw.AccessLog())

	ctx := context.Background()
	if srv.environment == string(model.EnvironmentProduction) {
		srv.l.Infof(ctx, "HTTP mode: production")
	} else {
		srv.l.Infof(ctx, "HTTP mode: %s", srv.environment)
	}
}

func (srv HTTPServer) registerSystemRoutes() {
	srv.gin.GET("/", srv.index)
	srv.gin.GET("/health", srv.healthCheck)
	srv.gin.GET("/ready", srv.readyCheck)
	srv.gin.GET("/live", srv.liveCheck)
	srv.gin.GET("/privacy", srv.privacy)

	srv.gin.GET("/swagger/*any", ginSwagger.WrapHandler(
		swaggerFiles.Handler,
		ginSwagger.URL("doc.json"),
		ginSwagger.DefaultModelsExpandDepth(-1),
	))
}

// registerDomainRoutes registers all domain routes.
func (srv HTTPServer) registerDomainRoutes() error {
	ctx := context.Background()

	if srv.leadHandler != nil {
		leadHTTP.RegisterRoutes(srv.gin, srv.leadHandler)
		srv.l.Infof(ctx, "Lead webhook routes registered at GET/POST /webhook")
	} else {
		srv.l.Warnf(ctx, "Lead handler not configured, skipping webhook routes")
	}

	return nil
}

// index handles the root liveness message.
// @Summary Service banner
// @Tags Health
// @Produce plain
// @Success 200 {string} string "Webhook service is live!"
// @Router / [get]
func (srv HTTPServer) index(c *gin.Context) {
	response.Text(c, http.StatusOK, RootMessage)
}
