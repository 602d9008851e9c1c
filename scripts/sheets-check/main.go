// scripts/sheets-check/main.go
//
// Checks that the service account in GOOGLE_CREDS_FILE can see SHEET_NAME and
// prints the tab rows will be appended to. Share the spreadsheet with the
// service account's client_email if the lookup fails.
//
// Usage:
//   go run scripts/sheets-check/main.go [sheet name]

package main

import (
	"context"
	"fmt"
	"os"

	"lead-webhook-bridge/config"
	"lead-webhook-bridge/pkg/gsheets"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	sheetName := cfg.GoogleSheets.SheetName
	if len(os.Args) > 1 {
		sheetName = os.Args[1]
	}
	if sheetName == "" {
		fmt.Println("No spreadsheet name: set SHEET_NAME or pass it as an argument.")
		os.Exit(1)
	}

	ctx := context.Background()

	client, err := gsheets.NewClientFromCredentialsFile(ctx, cfg.GoogleSheets.CredentialsPath)
	if err != nil {
		fmt.Printf("Failed to authorize with %q: %v\n", cfg.GoogleSheets.CredentialsPath, err)
		os.Exit(1)
	}

	id, err := client.FindSpreadsheetID(ctx, sheetName)
	if err != nil {
		fmt.Printf("Spreadsheet %q is not visible to the service account: %v\n", sheetName, err)
		os.Exit(1)
	}

	title, err := client.FirstSheetTitle(ctx, id)
	if err != nil {
		fmt.Printf("Failed to read spreadsheet %s: %v\n", id, err)
		os.Exit(1)
	}

	fmt.Printf("Spreadsheet: %s\n", sheetName)
	fmt.Printf("ID:          %s\n", id)
	fmt.Printf("Target tab:  %s\n", title)
	fmt.Println("Leads will be appended as [full_name, email, phone_number].")
}
