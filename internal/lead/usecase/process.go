package usecase

import (
	"context"

	"lead-webhook-bridge/internal/lead"
	"lead-webhook-bridge/internal/model"
)

// ProcessDelivery walks entries then changes in order. Every resolved lead is
// appended to the spreadsheet and then sent to every recipient; no failure stops
// the remaining work.
func (uc *implUseCase) ProcessDelivery(ctx context.Context, env lead.Envelope) lead.ProcessDeliveryOutput {
	var out lead.ProcessDeliveryOutput

	for _, bad := range env.Invalid {
		uc.l.Warnf(ctx, "lead.usecase.ProcessDelivery: skipping entry %d change %d: %v", bad.Entry, bad.Change, bad.Err)
	}
	out.Skipped = len(env.Invalid)

	for _, entry := range env.Entry {
		for _, change := range entry.Changes {
			out.Changes++

			l, ok := uc.Resolve(ctx, change.Value)
			if !ok {
				continue
			}
			out.Resolved++

			pageID := change.Value.PageID
			if pageID == "" {
				pageID = string(entry.ID)
			}
			target := uc.targets.ResolveTarget(ctx, pageID)

			out.Results = append(out.Results, uc.deliver(ctx, target, l)...)
		}
	}

	uc.l.Infof(ctx, "lead.usecase.ProcessDelivery: changes=%d skipped=%d resolved=%d sink_writes=%d failures=%d",
		out.Changes, out.Skipped, out.Resolved, len(out.Results), out.Failures())
	return out
}

// deliver runs both sinks for one lead. The notifier runs whatever the
// spreadsheet outcome was.
func (uc *implUseCase) deliver(ctx context.Context, target lead.Target, l model.Lead) []lead.SinkResult {
	results := make([]lead.SinkResult, 0, 1+len(target.Recipients))

	sheet := lead.SinkResult{Sink: lead.SinkSpreadsheet, Err: uc.sheets.AppendLead(ctx, target.SheetName, l)}
	if sheet.OK() {
		uc.l.Infof(ctx, "lead.usecase.deliver: lead saved to spreadsheet %q", target.SheetName)
	} else {
		uc.l.Errorf(ctx, "lead.usecase.deliver: error saving to spreadsheet %q: %v", target.SheetName, sheet.Err)
	}
	results = append(results, sheet)

	for _, r := range uc.notifier.Notify(ctx, target, l) {
		if !r.OK() {
			uc.l.Errorf(ctx, "lead.usecase.deliver: notification to %q failed: %v", r.Recipient, r.Err)
		}
		results = append(results, r)
	}

	return results
}
