package gsheets

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// Scopes grants spreadsheet read/write and Drive file listing.
var Scopes = []string{
	sheets.SpreadsheetsScope,
	drive.DriveMetadataReadonlyScope,
}

// Client wraps the Sheets and Drive services needed to open a spreadsheet by name
// and append rows to it.
type Client struct {
	sheets *sheets.Service
	drive  *drive.Service
}

// NewClientFromCredentialsFile creates a client from a Service Account JSON file path.
func NewClientFromCredentialsFile(ctx context.Context, credentialsPath string) (*Client, error) {
	data, err := os.ReadFile(credentialsPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read credentials file: %w", err)
	}
	return NewClientFromCredentialsJSON(ctx, data)
}

// NewClientFromCredentialsJSON creates a client from raw Service Account JSON bytes.
func NewClientFromCredentialsJSON(ctx context.Context, credentialsJSON []byte) (*Client, error) {
	config, err := google.JWTConfigFromJSON(credentialsJSON, Scopes...)
	if err != nil {
		return nil, fmt.Errorf("unsupported credentials format: %w", err)
	}

	tokenSource := config.TokenSource(ctx)
	sheetsSvc, err := sheets.NewService(ctx, option.WithTokenSource(tokenSource))
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}
	driveSvc, err := drive.NewService(ctx, option.WithTokenSource(tokenSource))
	if err != nil {
		return nil, fmt.Errorf("failed to create drive service: %w", err)
	}

	return &Client{sheets: sheetsSvc, drive: driveSvc}, nil
}

// NewClientFromHTTP creates a client from a pre-configured HTTP client.
func NewClientFromHTTP(ctx context.Context, httpClient *http.Client) (*Client, error) {
	sheetsSvc, err := sheets.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}
	driveSvc, err := drive.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("failed to create drive service: %w", err)
	}
	return &Client{sheets: sheetsSvc, drive: driveSvc}, nil
}

// FindSpreadsheetID returns the ID of the first spreadsheet visible to the
// credentials whose title equals name.
func (c *Client) FindSpreadsheetID(ctx context.Context, name string) (string, error) {
	q := fmt.Sprintf("name = '%s' and mimeType = '%s' and trashed = false", escapeQuery(name), spreadsheetMimeType)

	list, err := c.drive.Files.List().
		Q(q).
		Fields("files(id, name)").
		PageSize(1).
		SupportsAllDrives(true).
		IncludeItemsFromAllDrives(true).
		Context(ctx).
		Do()
	if err != nil {
		return "", fmt.Errorf("failed to list spreadsheets: %w", err)
	}
	if len(list.Files) == 0 {
		return "", fmt.Errorf("%w: %q", ErrSpreadsheetNotFound, name)
	}
	return list.Files[0].Id, nil
}

// FirstSheetTitle returns the title of the spreadsheet's first tab.
func (c *Client) FirstSheetTitle(ctx context.Context, spreadsheetID string) (string, error) {
	ss, err := c.sheets.Spreadsheets.Get(spreadsheetID).
		Fields("sheets.properties").
		Context(ctx).
		Do()
	if err != nil {
		return "", fmt.Errorf("failed to get spreadsheet: %w", err)
	}
	if len(ss.Sheets) == 0 || ss.Sheets[0].Properties == nil {
		return "", ErrNoSheets
	}
	return ss.Sheets[0].Properties.Title, nil
}

// AppendRow appends one row after the last non-empty row of sheetTitle.
func (c *Client) AppendRow(ctx context.Context, spreadsheetID, sheetTitle string, row []string) (AppendResult, error) {
	values := make([]interface{}, len(row))
	for i, v := range row {
		values[i] = v
	}

	resp, err := c.sheets.Spreadsheets.Values.Append(
		spreadsheetID,
		sheetRange(sheetTitle),
		&sheets.ValueRange{Values: [][]interface{}{values}},
	).
		ValueInputOption(ValueInputRaw).
		InsertDataOption(InsertRows).
		Context(ctx).
		Do()
	if err != nil {
		return AppendResult{}, fmt.Errorf("failed to append row: %w", err)
	}

	result := AppendResult{SpreadsheetID: spreadsheetID}
	if resp.Updates != nil {
		result.UpdatedRange = resp.Updates.UpdatedRange
		result.UpdatedRows = resp.Updates.UpdatedRows
	}
	return result, nil
}

// sheetRange builds an A1 range anchored at the sheet's first cell.
func sheetRange(title string) string {
	return fmt.Sprintf("'%s'!A1", strings.ReplaceAll(title, "'", "''"))
}

func escapeQuery(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, `'`, `\'`)
}
