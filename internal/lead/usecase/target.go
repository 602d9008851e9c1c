package usecase

import (
	"context"

	"lead-webhook-bridge/internal/lead"
)

type staticTargets struct {
	target lead.Target
}

// NewStaticTargetResolver returns a resolver that sends every page's leads to t.
func NewStaticTargetResolver(t lead.Target) lead.TargetResolver {
	recipients := make([]string, len(t.Recipients))
	copy(recipients, t.Recipients)
	t.Recipients = recipients

	return staticTargets{target: t}
}

// ResolveTarget returns a fresh copy of the target so callers may modify it.
func (s staticTargets) ResolveTarget(_ context.Context, _ string) lead.Target {
	t := s.target
	t.Recipients = make([]string, len(s.target.Recipients))
	copy(t.Recipients, s.target.Recipients)
	return t
}
