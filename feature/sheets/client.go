package sheets

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"golang.org/x/oauth2/google"
	"golang.org/x/sync/singleflight"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"
)

// Spreadsheet is one spreadsheet opened with write access.
type Spreadsheet interface {
	// Title returns the spreadsheet title.
	Title(ctx context.Context) (string, error)
	// Get reads the values of an A1 range.
	Get(ctx context.Context, rng string) ([][]any, error)
	// Clear empties an A1 range.
	Clear(ctx context.Context, rng string) error
	// Update overwrites an A1 range, values stored as typed (RAW).
	Update(ctx context.Context, rng string, rows [][]any) error
	// Append inserts rows after the last row of the range.
	Append(ctx context.Context, rng string, rows [][]any) error
}

// Opener opens spreadsheets with a service-account credential.
type Opener interface {
	Open(ctx context.Context, credential []byte, sheetID string) (Spreadsheet, error)
}

type serviceFactory func(ctx context.Context, credential []byte) (*sheetsapi.Service, error)

// APIOpener opens spreadsheets through the Sheets v4 API. Clients are
// cached per credential; concurrent first opens share one construction.
type APIOpener struct {
	mu         sync.RWMutex
	services   map[string]*sheetsapi.Service
	group      singleflight.Group
	newService serviceFactory
}

// NewAPIOpener creates an opener. Extra options are applied to every client.
func NewAPIOpener(opts ...option.ClientOption) *APIOpener {
	return &APIOpener{
		services: make(map[string]*sheetsapi.Service),
		newService: func(ctx context.Context, credential []byte) (*sheetsapi.Service, error) {
			creds, err := google.CredentialsFromJSON(ctx, credential, sheetsapi.SpreadsheetsScope)
			if err != nil {
				return nil, fmt.Errorf("%w: %v", ErrInvalidCredential, err)
			}
			all := append([]option.ClientOption{option.WithCredentials(creds)}, opts...)
			return sheetsapi.NewService(ctx, all...)
		},
	}
}

// Open validates the credential and returns a handle on the spreadsheet.
func (o *APIOpener) Open(ctx context.Context, credential []byte, sheetID string) (Spreadsheet, error) {
	if _, err := ParseCredential(credential); err != nil {
		return nil, err
	}

	svc, err := o.service(credential)
	if err != nil {
		return nil, err
	}
	return NewSpreadsheet(svc, sheetID), nil
}

func (o *APIOpener) service(credential []byte) (*sheetsapi.Service, error) {
	key := fingerprint(credential)

	o.mu.RLock()
	svc, ok := o.services[key]
	o.mu.RUnlock()
	if ok {
		return svc, nil
	}

	v, err, _ := o.group.Do(key, func() (any, error) {
		// Clients outlive the request that created them.
		svc, err := o.newService(context.Background(), credential)
		if err != nil {
			return nil, err
		}
		o.mu.Lock()
		o.services[key] = svc
		o.mu.Unlock()
		return svc, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*sheetsapi.Service), nil
}

// NewSpreadsheet wraps an API client bound to one spreadsheet id.
func NewSpreadsheet(svc *sheetsapi.Service, sheetID string) Spreadsheet {
	return &apiSpreadsheet{svc: svc, id: sheetID}
}

type apiSpreadsheet struct {
	svc *sheetsapi.Service
	id  string
}

func (s *apiSpreadsheet) Title(ctx context.Context) (string, error) {
	resp, err := s.svc.Spreadsheets.Get(s.id).Fields("properties.title").Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("failed to read spreadsheet %s: %w", s.id, err)
	}
	if resp.Properties == nil {
		return "", nil
	}
	return resp.Properties.Title, nil
}

func (s *apiSpreadsheet) Get(ctx context.Context, rng string) ([][]any, error) {
	resp, err := s.svc.Spreadsheets.Values.Get(s.id, rng).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to read range %s: %w", rng, err)
	}
	return resp.Values, nil
}

func (s *apiSpreadsheet) Clear(ctx context.Context, rng string) error {
	_, err := s.svc.Spreadsheets.Values.Clear(s.id, rng, &sheetsapi.ClearValuesRequest{}).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to clear range %s: %w", rng, err)
	}
	return nil
}

func (s *apiSpreadsheet) Update(ctx context.Context, rng string, rows [][]any) error {
	_, err := s.svc.Spreadsheets.Values.Update(s.id, rng, &sheetsapi.ValueRange{Values: rows}).
		ValueInputOption("RAW").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("failed to update range %s: %w", rng, err)
	}
	return nil
}

func (s *apiSpreadsheet) Append(ctx context.Context, rng string, rows [][]any) error {
	_, err := s.svc.Spreadsheets.Values.Append(s.id, rng, &sheetsapi.ValueRange{Values: rows}).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("failed to append to range %s: %w", rng, err)
	}
	return nil
}

// ErrorMessage returns the provider's message for an API failure, or the
// error text when the failure did not come from the API.
func ErrorMessage(err error) string {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return err.Error()
}
