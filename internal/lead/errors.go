package lead

import "errors"

var (
	ErrMissingLeadID    = errors.New("change carries neither field data nor a lead id")
	ErrMissingSheetName = errors.New("spreadsheet name is not configured")
	ErrNoRecipients     = errors.New("no notification recipients configured")
	ErrMissingTemplate  = errors.New("message template is not configured")
)
