package usecase

import (
	"context"
	"errors"
	"sync"

	"lead-webhook-bridge/internal/lead"
	"lead-webhook-bridge/internal/model"
	"lead-webhook-bridge/pkg/graph"
)

// Shared fakes for the use case tests.

type fakeFetcher struct {
	leads map[string]*graph.Lead
	errs  map[string]error
	calls []string
}

func (f *fakeFetcher) GetLead(_ context.Context, leadID string) (*graph.Lead, error) {
	f.calls = append(f.calls, leadID)
	if err, ok := f.errs[leadID]; ok {
		return nil, err
	}
	if l, ok := f.leads[leadID]; ok {
		return l, nil
	}
	return nil, &graph.APIError{StatusCode: 404, Body: `{"error":{"message":"not found"}}`}
}

type appendCall struct {
	sheetName string
	row       []string
}

type fakeSheets struct {
	mu    sync.Mutex
	err   error
	calls []appendCall
	order *[]string
}

func (f *fakeSheets) AppendLead(_ context.Context, sheetName string, l model.Lead) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, appendCall{sheetName: sheetName, row: l.Row()})
	if f.order != nil {
		*f.order = append(*f.order, "sheet:"+l.FullName)
	}
	return f.err
}

type notifyCall struct {
	target lead.Target
	lead   model.Lead
}

type fakeNotifier struct {
	failFor map[string]bool
	calls   []notifyCall
	order   *[]string
}

func (f *fakeNotifier) Notify(_ context.Context, target lead.Target, l model.Lead) []lead.SinkResult {
	f.calls = append(f.calls, notifyCall{target: target, lead: l})

	results := make([]lead.SinkResult, 0, len(target.Recipients))
	for _, r := range target.Recipients {
		if f.order != nil {
			*f.order = append(*f.order, "notify:"+r+":"+l.FullName)
		}
		res := lead.SinkResult{Sink: lead.SinkWhatsApp, Recipient: r}
		if f.failFor[r] {
			res.Err = errors.New("send failed")
		}
		results = append(results, res)
	}
	return results
}
