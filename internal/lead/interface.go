package lead

import (
	"context"

	"lead-webhook-bridge/internal/model"
	"lead-webhook-bridge/pkg/graph"
)

//go:generate mockery --name UseCase
type UseCase interface {
	// Resolve turns a change into a canonical lead. ok is false when no lead
	// could be produced; nothing should be delivered then.
	Resolve(ctx context.Context, value ChangeValue) (lead model.Lead, ok bool)
	// ProcessDelivery resolves every change of env and fans each lead out to all sinks.
	ProcessDelivery(ctx context.Context, env Envelope) ProcessDeliveryOutput
}

// LeadFetcher reads full lead detail from the ads platform.
type LeadFetcher interface {
	GetLead(ctx context.Context, leadID string) (*graph.Lead, error)
}

// Notifier delivers a lead to every recipient of target, one result per recipient.
type Notifier interface {
	Notify(ctx context.Context, target Target, lead model.Lead) []SinkResult
}

// TargetResolver picks the delivery target for the page a change came from.
type TargetResolver interface {
	ResolveTarget(ctx context.Context, pageID string) Target
}
