package mocks

import (
	"context"

	"smartwarga/feature/sheets"

	"github.com/stretchr/testify/mock"
)

// Spreadsheet is a mock implementation of sheets.Spreadsheet
type Spreadsheet struct {
	mock.Mock
}

func (m *Spreadsheet) Title(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *Spreadsheet) Get(ctx context.Context, rng string) ([][]any, error) {
	args := m.Called(ctx, rng)
	rows, _ := args.Get(0).([][]any)
	return rows, args.Error(1)
}

func (m *Spreadsheet) Clear(ctx context.Context, rng string) error {
	args := m.Called(ctx, rng)
	return args.Error(0)
}

func (m *Spreadsheet) Update(ctx context.Context, rng string, rows [][]any) error {
	args := m.Called(ctx, rng, rows)
	return args.Error(0)
}

func (m *Spreadsheet) Append(ctx context.Context, rng string, rows [][]any) error {
	args := m.Called(ctx, rng, rows)
	return args.Error(0)
}

// Opener is a mock implementation of sheets.Opener
type Opener struct {
	mock.Mock
}

func (m *Opener) Open(ctx context.Context, credential []byte, sheetID string) (sheets.Spreadsheet, error) {
	args := m.Called(ctx, credential, sheetID)
	sheet, _ := args.Get(0).(sheets.Spreadsheet)
	return sheet, args.Error(1)
}

// Fetcher is a mock implementation of sheets.Fetcher
type Fetcher struct {
	mock.Mock
}

func (m *Fetcher) FetchCSV(ctx context.Context, sheetID string) (string, error) {
	args := m.Called(ctx, sheetID)
	return args.String(0), args.Error(1)
}
