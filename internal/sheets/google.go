package sheets

import (
	"context"
	"fmt"

	"google.golang.org/api/option"
	gsheets "google.golang.org/api/sheets/v4"
)

// GoogleBackend is the Google Sheets implementation of Backend. All
// calls are blocking request/response; retry and backoff, if wanted,
// belong here rather than in the aggregation engine, and none are
// applied today.
type GoogleBackend struct {
	service       *gsheets.Service
	spreadsheetID string
}

func NewGoogleBackend(ctx context.Context, credentialsFile, spreadsheetID string) (*GoogleBackend, error) {
	service, err := gsheets.NewService(ctx,
		option.WithCredentialsFile(credentialsFile),
		option.WithScopes(gsheets.SpreadsheetsScope),
	)
	if err != nil {
		return nil, fmt.Errorf("creating sheets service: %w", err)
	}

	return &GoogleBackend{
		service:       service,
		spreadsheetID: spreadsheetID,
	}, nil
}

func (g *GoogleBackend) BatchUpdate(writes []PendingWrite) error {
	data := make([]*gsheets.ValueRange, 0, len(writes))
	for _, write := range writes {
		data = append(data, &gsheets.ValueRange{
			Range:  fmt.Sprintf("%s!%s", write.Sheet, write.Cell),
			Values: [][]interface{}{{write.Value}},
		})
	}

	request := &gsheets.BatchUpdateValuesRequest{
		ValueInputOption: "RAW",
		Data:             data,
	}

	if _, err := g.service.Spreadsheets.Values.BatchUpdate(g.spreadsheetID, request).Do(); err != nil {
		return fmt.Errorf("batch updating values: %w", err)
	}
	return nil
}

func (g *GoogleBackend) SheetTitles() ([]string, error) {
	spreadsheet, err := g.service.Spreadsheets.Get(g.spreadsheetID).Do()
	if err != nil {
		return nil, fmt.Errorf("opening spreadsheet: %w", err)
	}

	titles := make([]string, 0, len(spreadsheet.Sheets))
	for _, sheet := range spreadsheet.Sheets {
		if sheet.Properties != nil {
			titles = append(titles, sheet.Properties.Title)
		}
	}
	return titles, nil
}

func (g *GoogleBackend) CreateSheet(name string) error {
	request := &gsheets.BatchUpdateSpreadsheetRequest{
		Requests: []*gsheets.Request{{
			AddSheet: &gsheets.AddSheetRequest{
				Properties: &gsheets.SheetProperties{Title: name},
			},
		}},
	}

	if _, err := g.service.Spreadsheets.BatchUpdate(g.spreadsheetID, request).Do(); err != nil {
		return fmt.Errorf("adding sheet: %w", err)
	}
	return nil
}

func (g *GoogleBackend) DeleteSheet(name string) error {
	spreadsheet, err := g.service.Spreadsheets.Get(g.spreadsheetID).Do()
	if err != nil {
		return fmt.Errorf("opening spreadsheet: %w", err)
	}

	var sheetID int64 = -1
	for _, sheet := range spreadsheet.Sheets {
		if sheet.Properties != nil && sheet.Properties.Title == name {
			sheetID = sheet.Properties.SheetId
			break
		}
	}
	if sheetID == -1 {
		return fmt.Errorf("sheet %q not found", name)
	}

	request := &gsheets.BatchUpdateSpreadsheetRequest{
		Requests: []*gsheets.Request{{
			DeleteSheet: &gsheets.DeleteSheetRequest{SheetId: sheetID},
		}},
	}

	if _, err := g.service.Spreadsheets.BatchUpdate(g.spreadsheetID, request).Do(); err != nil {
		return fmt.Errorf("deleting sheet: %w", err)
	}
	return nil
}
