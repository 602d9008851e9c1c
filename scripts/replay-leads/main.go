// scripts/replay-leads/main.go
//
// Re-delivers leads whose webhook was missed or failed. Each lead is fetched by
// ID and pushed through the same pipeline as a live delivery: spreadsheet
// append, then one WhatsApp message per recipient.
//
// Usage:
//   go run scripts/replay-leads/main.go <leadgen_id> [<leadgen_id> ...]

package main

import (
	"context"
	"fmt"
	"os"

	"lead-webhook-bridge/config"
	"lead-webhook-bridge/internal/lead"
	"lead-webhook-bridge/internal/lead/notifier/whatsapp"
	sheetsRepo "lead-webhook-bridge/internal/lead/repository/sheets"
	"lead-webhook-bridge/internal/lead/usecase"
	"lead-webhook-bridge/pkg/graph"
	"lead-webhook-bridge/pkg/log"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: go run scripts/replay-leads/main.go <leadgen_id> [<leadgen_id> ...]")
		os.Exit(1)
	}
	leadIDs := os.Args[1:]

	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger := log.Init(log.ZapConfig{
		Level:        "info",
		Mode:         log.ModeDebug,
		Encoding:     log.EncodingConsole,
		ColorEnabled: true,
	})

	ctx := context.Background()

	graphCfg := graph.Config{
		BaseURL:           cfg.Meta.GraphBaseURL,
		AccessToken:       cfg.Meta.AccessToken,
		Timeout:           cfg.Graph.Timeout,
		RequestsPerSecond: cfg.Graph.RequestsPerSecond,
	}
	leadCfg, messagingCfg := graphCfg, graphCfg
	leadCfg.APIVersion = cfg.Meta.GraphAPIVersion
	messagingCfg.APIVersion = cfg.WhatsApp.APIVersion

	uc := usecase.New(
		logger,
		graph.NewClient(leadCfg),
		sheetsRepo.NewFromCredentialsFile(logger, cfg.GoogleSheets.CredentialsPath, cfg.GoogleSheets.CacheTTL),
		whatsapp.New(logger, graph.NewClient(messagingCfg), cfg.WhatsApp.PhoneID),
		usecase.NewStaticTargetResolver(lead.Target{
			SheetName:    cfg.GoogleSheets.SheetName,
			TemplateName: cfg.WhatsApp.TemplateName,
			LanguageCode: cfg.WhatsApp.LanguageCode,
			Recipients:   cfg.WhatsApp.Recipients(),
		}),
	)

	logger.Infof(ctx, "Replaying %d lead(s)...", len(leadIDs))

	changes := make([]lead.Change, 0, len(leadIDs))
	for _, id := range leadIDs {
		changes = append(changes, lead.Change{
			Field: "leadgen",
			Value: lead.ChangeValue{Kind: lead.ValueKindReference, LeadID: id},
		})
	}

	out := uc.ProcessDelivery(ctx, lead.Envelope{Entry: []lead.Entry{{Changes: changes}}})

	logger.Infof(ctx, "Replay complete! %d/%d leads resolved, %d/%d sink writes failed.",
		out.Resolved, out.Changes, out.Failures(), len(out.Results))
	if out.Resolved < out.Changes || out.Failures() > 0 {
		os.Exit(1)
	}
}
