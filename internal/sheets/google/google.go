package google

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"

	"finance/internal/core"
	applog "finance/internal/log"
	"finance/internal/ports"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"
)

const defaultSheetName = "Transactions"

// Client mirrors transactions into one tab of a spreadsheet.
type Client struct {
	svc           *gsheet.Service
	spreadsheetID string
	sheetName     string
	logger        *applog.Logger

	mu      sync.Mutex
	sheetID *int64
}

var _ ports.TransactionMirror = (*Client)(nil)

// Settings locates the spreadsheet and the service account allowed to edit it.
type Settings struct {
	SpreadsheetID      string
	SheetName          string
	ServiceAccountJSON string
	ServiceAccountFile string
}

// NewFromSettings creates a Sheets client authenticated as the configured
// service account. Inline JSON takes precedence over the file.
func NewFromSettings(ctx context.Context, settings Settings, logger *applog.Logger) (*Client, error) {
	spreadsheetID := strings.TrimSpace(settings.SpreadsheetID)
	if spreadsheetID == "" {
		return nil, errors.New("missing spreadsheet id")
	}

	credentialsJSON, err := serviceAccountCredentials(settings.ServiceAccountJSON, settings.ServiceAccountFile)
	if err != nil {
		return nil, err
	}

	return New(ctx, spreadsheetID, settings.SheetName, logger,
		goption.WithCredentialsJSON(credentialsJSON),
		goption.WithScopes(gsheet.SpreadsheetsScope))
}

// New builds a client with explicit API options.
func New(ctx context.Context, spreadsheetID, sheetName string, logger *applog.Logger, opts ...goption.ClientOption) (*Client, error) {
	if logger == nil {
		logger = applog.NewDefault()
	}
	sheetName = strings.TrimSpace(sheetName)
	if sheetName == "" {
		sheetName = defaultSheetName
	}

	svc, err := gsheet.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}

	return &Client{
		svc:           svc,
		spreadsheetID: spreadsheetID,
		sheetName:     sheetName,
		logger:        logger.WithComponent(applog.ComponentSheets),
	}, nil
}

func serviceAccountCredentials(inline, file string) ([]byte, error) {
	inline = strings.TrimSpace(inline)
	file = strings.TrimSpace(file)

	switch {
	case inline != "":
		return []byte(inline), nil
	case file != "":
		data, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("read service account file: %w", err)
		}
		return data, nil
	default:
		return nil, errors.New("missing service account credentials")
	}
}

// AppendTransaction adds a row for tx unless one with the same id exists,
// so redelivered events are harmless. An empty tab gets a header row first.
// Cells are written RAW: titles and categories come from API callers and
// must never be evaluated as formulas.
func (c *Client) AppendTransaction(ctx context.Context, tx core.Transaction) error {
	ids, err := c.readIDColumn(ctx)
	if err != nil {
		return err
	}
	if idx := findRowIndex(ids, tx.ID); idx >= 0 {
		c.logger.InfoContext(ctx, "Transaction already mirrored",
			applog.FieldTransactionID, tx.ID,
			applog.FieldSheetRow, idx+1)
		return nil
	}

	rows := [][]interface{}{transactionRow(tx)}
	if len(ids) == 0 {
		rows = append([][]interface{}{headerRow()}, rows...)
	}

	rng := fmt.Sprintf("%s!A:F", c.sheetName)
	_, err = c.svc.Spreadsheets.Values.Append(c.spreadsheetID, rng, &gsheet.ValueRange{Values: rows}).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("append to sheet %s: %w", c.sheetName, err)
	}

	c.logger.InfoContext(ctx, "Transaction mirrored",
		applog.FieldTransactionID, tx.ID,
		applog.FieldUserID, tx.UserID)
	return nil
}

// DeleteTransaction removes the row for id. A missing row is not an error.
func (c *Client) DeleteTransaction(ctx context.Context, id int64) error {
	ids, err := c.readIDColumn(ctx)
	if err != nil {
		return err
	}
	idx := findRowIndex(ids, id)
	if idx < 0 {
		c.logger.InfoContext(ctx, "Transaction not in sheet, nothing to delete", applog.FieldTransactionID, id)
		return nil
	}

	sheetID, err := c.resolveSheetID(ctx)
	if err != nil {
		return err
	}

	req := &gsheet.BatchUpdateSpreadsheetRequest{
		Requests: []*gsheet.Request{{
			DeleteDimension: &gsheet.DeleteDimensionRequest{
				Range: &gsheet.DimensionRange{
					SheetId:         sheetID,
					Dimension:       "ROWS",
					StartIndex:      int64(idx),
					EndIndex:        int64(idx + 1),
					ForceSendFields: []string{"SheetId", "StartIndex"},
				},
			},
		}},
	}
	if _, err := c.svc.Spreadsheets.BatchUpdate(c.spreadsheetID, req).Context(ctx).Do(); err != nil {
		return fmt.Errorf("delete row %d from sheet %s: %w", idx+1, c.sheetName, err)
	}

	c.logger.InfoContext(ctx, "Transaction removed from sheet",
		applog.FieldTransactionID, id,
		applog.FieldSheetRow, idx+1)
	return nil
}

func (c *Client) readIDColumn(ctx context.Context) ([][]interface{}, error) {
	rng := fmt.Sprintf("%s!A:A", c.sheetName)
	resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, rng).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", rng, err)
	}
	return resp.Values, nil
}

// resolveSheetID looks up the numeric id of the tab once and caches it.
func (c *Client) resolveSheetID(ctx context.Context) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.sheetID != nil {
		return *c.sheetID, nil
	}

	ss, err := c.svc.Spreadsheets.Get(c.spreadsheetID).Context(ctx).Do()
	if err != nil {
		return 0, fmt.Errorf("get spreadsheet: %w", err)
	}
	for _, sh := range ss.Sheets {
		if sh.Properties != nil && sh.Properties.Title == c.sheetName {
			id := sh.Properties.SheetId
			c.sheetID = &id
			return id, nil
		}
	}
	return 0, fmt.Errorf("sheet %q not found in spreadsheet", c.sheetName)
}

// SheetName returns the tab the client writes to.
func (c *Client) SheetName() string {
	return c.sheetName
}

func idString(id int64) string {
	return strconv.FormatInt(id, 10)
}
