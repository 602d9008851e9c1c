package usecase

import (
	"lead-webhook-bridge/internal/lead"
	"lead-webhook-bridge/internal/lead/repository"
	pkgLog "lead-webhook-bridge/pkg/log"
)

type implUseCase struct {
	l        pkgLog.Logger
	fetcher  lead.LeadFetcher
	sheets   repository.SheetRepository
	notifier lead.Notifier
	targets  lead.TargetResolver
}

var _ lead.UseCase = (*implUseCase)(nil)

// New creates a new lead UseCase instance.
func New(
	l pkgLog.Logger,
	fetcher lead.LeadFetcher,
	sheets repository.SheetRepository,
	notifier lead.Notifier,
	targets lead.TargetResolver,
) *implUseCase {
	return &implUseCase{
		l:        l,
		fetcher:  fetcher,
		sheets:   sheets,
		notifier: notifier,
		targets:  targets,
	}
}
