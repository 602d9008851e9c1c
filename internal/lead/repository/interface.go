package repository

import (
	"context"

	"lead-webhook-bridge/internal/model"
)

// SheetRepository appends leads to a named spreadsheet.
type SheetRepository interface {
	AppendLead(ctx context.Context, sheetName string, lead model.Lead) error
}
