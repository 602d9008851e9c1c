package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"lead-webhook-bridge/config"
	_ "lead-webhook-bridge/docs" // Swagger docs
	"lead-webhook-bridge/internal/httpserver"
	"lead-webhook-bridge/internal/lead"
	leadHTTP "lead-webhook-bridge/internal/lead/delivery/http"
	"lead-webhook-bridge/internal/lead/notifier/whatsapp"
	sheetsRepo "lead-webhook-bridge/internal/lead/repository/sheets"
	"lead-webhook-bridge/internal/lead/usecase"
	"lead-webhook-bridge/internal/webhook"
	"lead-webhook-bridge/pkg/graph"
	"lead-webhook-bridge/pkg/log"
)

// @title       Lead Webhook Bridge API
// @description Receives Meta Lead Ads webhooks, appends each lead to Google Sheets and notifies over WhatsApp.
// @version     1
// @host        localhost:5000
// @schemes     http
func main() {
	// 1. Configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Failed to load config: ", err)
		return
	}

	// 2. Logger
	logger := log.Init(log.ZapConfig{
		Level:        cfg.Logger.Level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info(ctx, "Starting Lead Webhook Bridge...")
	logger.Infof(ctx, "Environment: %s", cfg.Environment.Name)
	for _, w := range cfg.Warnings() {
		logger.Warn(ctx, w)
	}

	// 3. Graph API clients: lead lookup and messaging are versioned separately
	leadClient := graph.NewClient(graph.Config{
		BaseURL:           cfg.Meta.GraphBaseURL,
		APIVersion:        cfg.Meta.GraphAPIVersion,
		AccessToken:       cfg.Meta.AccessToken,
		Timeout:           cfg.Graph.Timeout,
		RequestsPerSecond: cfg.Graph.RequestsPerSecond,
	})
	messagingClient := graph.NewClient(graph.Config{
		BaseURL:           cfg.Meta.GraphBaseURL,
		APIVersion:        cfg.WhatsApp.APIVersion,
		AccessToken:       cfg.Meta.AccessToken,
		Timeout:           cfg.Graph.Timeout,
		RequestsPerSecond: cfg.Graph.RequestsPerSecond,
	})

	// 4. Sinks
	sheetRepo := sheetsRepo.NewFromCredentialsFile(logger, cfg.GoogleSheets.CredentialsPath, cfg.GoogleSheets.CacheTTL)
	notifier := whatsapp.New(logger, messagingClient, cfg.WhatsApp.PhoneID)

	target := usecase.NewStaticTargetResolver(lead.Target{
		SheetName:    cfg.GoogleSheets.SheetName,
		TemplateName: cfg.WhatsApp.TemplateName,
		LanguageCode: cfg.WhatsApp.LanguageCode,
		Recipients:   cfg.WhatsApp.Recipients(),
	})

	// 5. Lead UseCase + delivery
	leadUC := usecase.New(logger, leadClient, sheetRepo, notifier, target)

	security := webhook.NewSecurityValidator(webhook.SecurityConfig{
		VerifyToken: cfg.Meta.VerifyToken,
	})
	leadHandler := leadHTTP.New(logger, leadUC, security)

	// 6. HTTP Server
	httpServer, err := httpserver.New(logger, httpserver.Config{
		Logger:          logger,
		Port:            cfg.HTTPServer.Port,
		Mode:            cfg.HTTPServer.Mode,
		Environment:     cfg.Environment.Name,
		PrivacyContact:  cfg.HTTPServer.PrivacyContact,
		ShutdownTimeout: cfg.HTTPServer.ShutdownTimeout,
		LeadHandler:     leadHandler,
	})
	if err != nil {
		logger.Error(ctx, "Failed to initialize HTTP server: ", err)
		return
	}

	// 7. Run
	if err := httpServer.Run(ctx); err != nil {
		logger.Error(ctx, "Failed to run server: ", err)
		return
	}

	logger.Info(ctx, "Server stopped gracefully")
}
