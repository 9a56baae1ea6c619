package sheets

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"
)

const testCredential = `{"type":"service_account","client_email":"sync@p.iam.gserviceaccount.com","private_key":"key"}`

type apiCall struct {
	Method string
	Path   string
	Query  map[string]string
	Body   map[string]any
}

// fakeSheetsAPI records requests and answers like the Sheets v4 REST API.
func fakeSheetsAPI(t *testing.T) (*httptest.Server, *[]apiCall) {
	var mu sync.Mutex
	calls := []apiCall{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		call := apiCall{Method: r.Method, Path: r.URL.Path, Query: map[string]string{}}
		for k := range r.URL.Query() {
			call.Query[k] = r.URL.Query().Get(k)
		}
		if data, _ := io.ReadAll(r.Body); len(data) > 0 {
			json.Unmarshal(data, &call.Body)
		}
		mu.Lock()
		calls = append(calls, call)
		mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.URL.Path == "/v4/spreadsheets/sheet-1":
			w.Write([]byte(`{"spreadsheetId":"sheet-1","properties":{"title":"Data Warga"}}`))
		case r.URL.Path == "/v4/spreadsheets/missing/values/Sheet1!A:A":
			w.WriteHeader(http.StatusForbidden)
			w.Write([]byte(`{"error":{"code":403,"message":"The caller does not have permission","status":"PERMISSION_DENIED"}}`))
		case r.Method == http.MethodGet:
			w.Write([]byte(`{"range":"Sheet1!A1:A3","majorDimension":"ROWS","values":[["NIK"],["3201010101010001"],[]]}`))
		default:
			w.Write([]byte(`{}`))
		}
	}))
	t.Cleanup(srv.Close)
	return srv, &calls
}

func newTestService(t *testing.T, srv *httptest.Server) *sheetsapi.Service {
	svc, err := sheetsapi.NewService(context.Background(),
		option.WithEndpoint(srv.URL+"/"),
		option.WithoutAuthentication(),
		option.WithHTTPClient(srv.Client()),
	)
	require.NoError(t, err)
	return svc
}

func TestSpreadsheet_Operations(t *testing.T) {
	srv, calls := fakeSheetsAPI(t)
	sheet := NewSpreadsheet(newTestService(t, srv), "sheet-1")
	ctx := context.Background()

	title, err := sheet.Title(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Data Warga", title)

	rows, err := sheet.Get(ctx, "Sheet1!A:A")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "3201010101010001", rows[1][0])

	require.NoError(t, sheet.Clear(ctx, "Sheet1!A1:S"))
	require.NoError(t, sheet.Update(ctx, "Sheet1!A1", [][]any{{"NIK", "Nama"}}))
	require.NoError(t, sheet.Append(ctx, "Sheet1!A:S", [][]any{{"3201010101010002", "Siti"}}))

	require.Len(t, *calls, 5)
	got := *calls

	assert.Equal(t, "properties.title", got[0].Query["fields"])

	assert.Equal(t, http.MethodPost, got[2].Method)
	assert.Equal(t, "/v4/spreadsheets/sheet-1/values/Sheet1!A1:S:clear", got[2].Path)

	assert.Equal(t, http.MethodPut, got[3].Method)
	assert.Equal(t, "/v4/spreadsheets/sheet-1/values/Sheet1!A1", got[3].Path)
	assert.Equal(t, "RAW", got[3].Query["valueInputOption"])
	assert.Equal(t, []any{[]any{"NIK", "Nama"}}, got[3].Body["values"])

	assert.Equal(t, "/v4/spreadsheets/sheet-1/values/Sheet1!A:S:append", got[4].Path)
	assert.Equal(t, "RAW", got[4].Query["valueInputOption"])
	assert.Equal(t, "INSERT_ROWS", got[4].Query["insertDataOption"])
}

func TestSpreadsheet_ProviderMessage(t *testing.T) {
	srv, _ := fakeSheetsAPI(t)
	sheet := NewSpreadsheet(newTestService(t, srv), "missing")

	_, err := sheet.Get(context.Background(), "Sheet1!A:A")
	require.Error(t, err)
	assert.Equal(t, "The caller does not have permission", ErrorMessage(err))
	assert.Equal(t, "plain", ErrorMessage(errors.New("plain")))
}

func TestAPIOpener_CachesPerCredential(t *testing.T) {
	srv, _ := fakeSheetsAPI(t)
	var built int32

	o := NewAPIOpener()
	o.newService = func(ctx context.Context, credential []byte) (*sheetsapi.Service, error) {
		atomic.AddInt32(&built, 1)
		return newTestService(t, srv), nil
	}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := o.Open(context.Background(), []byte(testCredential), "sheet-1")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()
	assert.Equal(t, int32(1), atomic.LoadInt32(&built))

	sheet, err := o.Open(context.Background(), []byte(testCredential), "sheet-1")
	require.NoError(t, err)
	title, err := sheet.Title(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Data Warga", title)
	assert.Equal(t, int32(1), atomic.LoadInt32(&built))
}

func TestAPIOpener_RejectsInvalidCredential(t *testing.T) {
	o := NewAPIOpener()
	o.newService = func(ctx context.Context, credential []byte) (*sheetsapi.Service, error) {
		t.Fatal("service must not be built for an invalid credential")
		return nil, nil
	}

	_, err := o.Open(context.Background(), []byte(`{"type":"user"}`), "sheet-1")
	assert.ErrorIs(t, err, ErrInvalidCredential)
}
