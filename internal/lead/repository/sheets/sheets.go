package sheets

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"lead-webhook-bridge/internal/lead"
	"lead-webhook-bridge/internal/lead/repository"
	"lead-webhook-bridge/internal/model"
	"lead-webhook-bridge/pkg/gsheets"
	pkgLog "lead-webhook-bridge/pkg/log"
)

const (
	defaultCacheTTL  = 10 * time.Minute
	spreadsheetCache = 64
)

// SpreadsheetClient is the part of the Sheets/Drive API the repository uses.
// *gsheets.Client satisfies it.
type SpreadsheetClient interface {
	FindSpreadsheetID(ctx context.Context, name string) (string, error)
	FirstSheetTitle(ctx context.Context, spreadsheetID string) (string, error)
	AppendRow(ctx context.Context, spreadsheetID, sheetTitle string, row []string) (gsheets.AppendResult, error)
}

// ClientFactory builds an authorized client. It is called lazily, once per
// repository, and again only after a failed attempt.
type ClientFactory func(ctx context.Context) (SpreadsheetClient, error)

type implRepository struct {
	l       pkgLog.Logger
	factory ClientFactory

	mu     sync.Mutex
	client SpreadsheetClient

	ids *expirable.LRU[string, string]
}

// New creates the spreadsheet repository. A zero cacheTTL uses the default.
func New(l pkgLog.Logger, factory ClientFactory, cacheTTL time.Duration) repository.SheetRepository {
	if cacheTTL <= 0 {
		cacheTTL = defaultCacheTTL
	}
	return &implRepository{
		l:       l,
		factory: factory,
		ids:     expirable.NewLRU[string, string](spreadsheetCache, nil, cacheTTL),
	}
}

// NewFromCredentialsFile creates a repository authorized with a service
// account key file.
func NewFromCredentialsFile(l pkgLog.Logger, credentialsPath string, cacheTTL time.Duration) repository.SheetRepository {
	return New(l, func(ctx context.Context) (SpreadsheetClient, error) {
		client, err := gsheets.NewClientFromCredentialsFile(ctx, credentialsPath)
		if err != nil {
			return nil, err
		}
		return client, nil
	}, cacheTTL)
}

// AppendLead appends one row to the first sheet of the spreadsheet named sheetName.
func (r *implRepository) AppendLead(ctx context.Context, sheetName string, l model.Lead) error {
	if sheetName == "" {
		return lead.ErrMissingSheetName
	}

	client, err := r.getClient(ctx)
	if err != nil {
		r.l.Errorf(ctx, "sheets repository: failed to authorize: %v", err)
		return err
	}

	spreadsheetID, err := r.spreadsheetID(ctx, client, sheetName)
	if err != nil {
		r.l.Errorf(ctx, "sheets repository: failed to open spreadsheet %q: %v", sheetName, err)
		return err
	}

	title, err := client.FirstSheetTitle(ctx, spreadsheetID)
	if err != nil {
		r.ids.Remove(sheetName)
		r.l.Errorf(ctx, "sheets repository: failed to read sheets of %q: %v", sheetName, err)
		return fmt.Errorf("read spreadsheet %q: %w", sheetName, err)
	}

	res, err := client.AppendRow(ctx, spreadsheetID, title, l.Row())
	if err != nil {
		r.ids.Remove(sheetName)
		r.l.Errorf(ctx, "sheets repository: failed to append to %q: %v", sheetName, err)
		return fmt.Errorf("append to spreadsheet %q: %w", sheetName, err)
	}

	r.l.Debugf(ctx, "sheets repository: appended %d row(s) at %s", res.UpdatedRows, res.UpdatedRange)
	return nil
}

// getClient returns the cached client, creating it on first use. The client
// outlives the request, so the factory gets a context that is never canceled.
func (r *implRepository) getClient(ctx context.Context) (SpreadsheetClient, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.client != nil {
		return r.client, nil
	}

	client, err := r.factory(context.WithoutCancel(ctx))
	if err != nil {
		return nil, fmt.Errorf("create spreadsheet client: %w", err)
	}
	r.client = client
	return client, nil
}

func (r *implRepository) spreadsheetID(ctx context.Context, client SpreadsheetClient, name string) (string, error) {
	if id, ok := r.ids.Get(name); ok {
		return id, nil
	}

	id, err := client.FindSpreadsheetID(ctx, name)
	if err != nil {
		return "", err
	}
	r.ids.Add(name, id)
	return id, nil
}
