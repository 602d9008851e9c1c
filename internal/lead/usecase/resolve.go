package usecase

import (
	"context"
	"errors"

	"lead-webhook-bridge/internal/lead"
	"lead-webhook-bridge/internal/model"
	"lead-webhook-bridge/pkg/graph"
)

// Resolve builds the canonical lead for one change, fetching it by ID when the
// change does not embed its fields.
func (uc *implUseCase) Resolve(ctx context.Context, value lead.ChangeValue) (model.Lead, bool) {
	switch value.Kind {
	case lead.ValueKindInline:
		l := model.NewLeadFromFields(value.FieldData)
		uc.l.Infof(ctx, "lead.usecase.Resolve: inline lead resolved: %+v", l)
		return l, true

	default:
		return uc.resolveByID(ctx, value.LeadID)
	}
}

func (uc *implUseCase) resolveByID(ctx context.Context, leadID string) (model.Lead, bool) {
	if leadID == "" {
		uc.l.Warnf(ctx, "lead.usecase.Resolve: %v", lead.ErrMissingLeadID)
		return model.Lead{}, false
	}

	uc.l.Infof(ctx, "lead.usecase.Resolve: fetching lead %s", leadID)

	detail, err := uc.fetcher.GetLead(ctx, leadID)
	if err != nil {
		var apiErr *graph.APIError
		if errors.As(err, &apiErr) {
			uc.l.Errorf(ctx, "lead.usecase.Resolve: failed to fetch lead %s: status=%d body=%s", leadID, apiErr.StatusCode, apiErr.Body)
		} else {
			uc.l.Errorf(ctx, "lead.usecase.Resolve: failed to fetch lead %s: %v", leadID, err)
		}
		return model.Lead{}, false
	}

	fields := make([]model.FieldData, 0, len(detail.FieldData))
	for _, f := range detail.FieldData {
		fields = append(fields, model.FieldData{Name: f.Name, Values: f.Values})
	}

	l := model.NewLeadFromFields(fields)
	uc.l.Infof(ctx, "lead.usecase.Resolve: fetched lead %s: %+v", leadID, l)
	return l, true
}
