package sheetsclient

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

type recordedCall struct {
	Method string
	Path   string
	Body   string
}

func newTestClient(t *testing.T, existingTabs ...string) (*Client, *[]recordedCall) {
	t.Helper()
	var mu sync.Mutex
	var calls []recordedCall

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		mu.Lock()
		calls = append(calls, recordedCall{Method: r.Method, Path: r.URL.Path, Body: string(body)})
		mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.Method == http.MethodGet && !strings.Contains(r.URL.Path, "/values/"):
			spreadsheet := sheets.Spreadsheet{}
			for _, title := range existingTabs {
				spreadsheet.Sheets = append(spreadsheet.Sheets, &sheets.Sheet{Properties: &sheets.SheetProperties{Title: title}})
			}
			json.NewEncoder(w).Encode(spreadsheet)
		case strings.HasSuffix(r.URL.Path, ":batchUpdate"):
			w.Write([]byte(`{"replies":[{"addSheet":{"properties":{"sheetId":42}}}]}`))
		default:
			w.Write([]byte(`{}`))
		}
	}))
	t.Cleanup(server.Close)

	service, err := sheets.NewService(context.Background(),
		option.WithEndpoint(server.URL+"/"),
		option.WithHTTPClient(server.Client()))
	require.NoError(t, err)

	return &Client{service: service, ctx: context.Background()}, &calls
}

func TestPublishPayroll_CreatesTab(t *testing.T) {
	client, calls := newTestClient(t)

	err := client.PublishPayroll("sheet1", "Payroll 2026-10-17", []PayrollRow{
		{Date: "2026-10-10", EventName: "Smith Wedding", WorkerName: "Pat Lee", Position: "Dealer", TotalPay: "187.50"},
	})
	require.NoError(t, err)

	require.Len(t, *calls, 3)
	assert.True(t, strings.HasSuffix((*calls)[1].Path, ":batchUpdate"), "tab created")
	assert.Equal(t, http.MethodPut, (*calls)[2].Method)
	assert.Contains(t, (*calls)[2].Body, "Smith Wedding")
	assert.Contains(t, (*calls)[2].Body, "Total pay")
}

func TestPublishPayroll_ClearsExistingTab(t *testing.T) {
	client, calls := newTestClient(t, "Payroll 2026-10-17")

	require.NoError(t, client.PublishPayroll("sheet1", "Payroll 2026-10-17", nil))

	require.Len(t, *calls, 3)
	assert.True(t, strings.HasSuffix((*calls)[1].Path, ":clear"), "existing tab cleared")
	assert.Equal(t, http.MethodPut, (*calls)[2].Method)
}

func TestPayrollValues(t *testing.T) {
	values := payrollValues([]PayrollRow{{Date: "2026-10-10", Miles: ""}})
	require.Len(t, values, 2)
	assert.Equal(t, payrollHeader, values[0])
	assert.Len(t, values[1], len(payrollHeader))
}
