package sheets

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"

	"go.uber.org/zap"
)

const maxCSVBytes = 32 << 20

var (
	// ErrInvalidURL is returned when a sheet URL carries no spreadsheet id.
	ErrInvalidURL = errors.New("URL Google Sheet tidak valid, pastikan format URL benar")
	// ErrSheetNotAccessible is returned when neither CSV endpoint serves the sheet.
	ErrSheetNotAccessible = errors.New("Sheet tidak dapat diakses, pastikan sudah di-publish ke web atau gunakan Service Account")
	// ErrSheetTooLarge is returned when the CSV exceeds maxCSVBytes. A cut
	// download would hand a truncated last row to pull.
	ErrSheetTooLarge = errors.New("sheet terlalu besar untuk diunduh sebagai CSV")
)

// Fetcher downloads a sheet as CSV text without credentials.
type Fetcher interface {
	FetchCSV(ctx context.Context, sheetID string) (string, error)
}

// HTTPFetcher fetches the published CSV and falls back to the export URL.
type HTTPFetcher struct {
	client   *http.Client
	baseURL  string
	maxBytes int64
	logger   *zap.Logger
}

// NewHTTPFetcher creates a CSV fetcher. Requests are bounded by cfg.Timeout.
func NewHTTPFetcher(cfg Config, logger *zap.Logger) *HTTPFetcher {
	return &HTTPFetcher{
		client:   &http.Client{Timeout: cfg.Timeout()},
		baseURL:  cfg.BaseURL,
		maxBytes: maxCSVBytes,
		logger:   logger,
	}
}

// FetchCSV returns the raw CSV text of the first tab of the sheet.
func (f *HTTPFetcher) FetchCSV(ctx context.Context, sheetID string) (string, error) {
	body, err := f.get(ctx, PublishedCSVURL(f.baseURL, sheetID))
	if err == nil {
		return body, nil
	}
	if errors.Is(err, ErrSheetTooLarge) {
		return "", err
	}
	f.logger.Debug("Published CSV not available, trying export URL",
		zap.String("sheet_id", sheetID), zap.Error(err))

	body, err = f.get(ctx, ExportCSVURL(f.baseURL, sheetID))
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		if errors.Is(err, ErrSheetTooLarge) {
			return "", err
		}
		return "", fmt.Errorf("%w: %v", ErrSheetNotAccessible, err)
	}
	return body, nil
}

func (f *HTTPFetcher) get(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	// Private sheets redirect to a sign-in page that answers 200 with HTML.
	if ct := resp.Header.Get("Content-Type"); ct != "" {
		if mediaType, _, err := mime.ParseMediaType(ct); err == nil && mediaType == "text/html" {
			return "", errors.New("received HTML instead of CSV")
		}
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes+1))
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}
	if int64(len(data)) > f.maxBytes {
		return "", fmt.Errorf("%w: more than %d bytes", ErrSheetTooLarge, f.maxBytes)
	}
	return strings.TrimPrefix(string(data), "\ufeff"), nil
}
