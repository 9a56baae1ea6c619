package sync

import (
	"context"
	"strconv"
	"strings"
	gosync "sync"
	"testing"

	"smartwarga/core/database"
	"smartwarga/core/utils"
	"smartwarga/feature/resident"
	"smartwarga/feature/sheets"
	"smartwarga/feature/sheets/mocks"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const testCredential = `{"type":"service_account","client_email":"sync@p.iam.gserviceaccount.com","private_key":"key"}`

const testSheetURL = "https://docs.google.com/spreadsheets/d/sheet-1/edit#gid=0"

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := database.Connect(database.Config{
		Driver: database.DriverSQLite,
		Name:   "file:sync_" + name + "?mode=memory&cache=shared",
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db, &resident.Resident{}, &SyncConfig{}, &SyncLog{}))
	t.Cleanup(func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
	})
	return db
}

// memorySheet is an in-memory spreadsheet understanding the A1 ranges the
// sync code uses.
type memorySheet struct {
	mu    gosync.Mutex
	title string
	grid  [][]string
	calls []string
	err   error
}

func newMemorySheet(rows ...[]string) *memorySheet {
	return &memorySheet{title: "Data Warga", grid: rows}
}

// parseRange returns 1-based start and end rows; end 0 means open-ended.
// whole is true for a bare sheet name.
func parseRange(rng string) (start, end int, columnA, whole bool) {
	i := strings.LastIndex(rng, "!")
	if i < 0 {
		return 1, 0, false, true
	}
	rng = rng[i+1:]
	parts := strings.SplitN(rng, ":", 2)
	start = rowOf(parts[0])
	if start == 0 {
		start = 1
	}
	if len(parts) == 2 {
		end = rowOf(parts[1])
		columnA = strings.TrimRight(parts[0], "0123456789") == "A" && strings.TrimRight(parts[1], "0123456789") == "A"
	}
	return start, end, columnA, false
}

func rowOf(cell string) int {
	n, _ := strconv.Atoi(strings.TrimLeft(cell, "ABCDEFGHIJKLMNOPQRSTUVWXYZ"))
	return n
}

func (m *memorySheet) Title(ctx context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, "title")
	return m.title, m.err
}

func (m *memorySheet) Get(ctx context.Context, rng string) ([][]any, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, "get "+rng)
	if m.err != nil {
		return nil, m.err
	}
	start, end, columnA, _ := parseRange(rng)
	if end == 0 || end > len(m.grid) {
		end = len(m.grid)
	}
	var out [][]any
	for r := start; r <= end; r++ {
		row := m.grid[r-1]
		if columnA && len(row) > 0 {
			row = row[:1]
		}
		out = append(out, utils.ToCells(row))
	}
	return out, nil
}

func (m *memorySheet) Clear(ctx context.Context, rng string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, "clear "+rng)
	if m.err != nil {
		return m.err
	}
	start, end, _, _ := parseRange(rng)
	if end == 0 || end > len(m.grid) {
		end = len(m.grid)
	}
	for r := start; r <= end; r++ {
		m.grid[r-1] = make([]string, len(m.grid[r-1]))
	}
	return nil
}

func (m *memorySheet) Update(ctx context.Context, rng string, rows [][]any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, "update "+rng)
	if m.err != nil {
		return m.err
	}
	start, _, _, _ := parseRange(rng)
	for i, row := range rows {
		idx := start - 1 + i
		for len(m.grid) <= idx {
			m.grid = append(m.grid, nil)
		}
		m.grid[idx] = utils.ToStrings(row)
	}
	return nil
}

func (m *memorySheet) Append(ctx context.Context, rng string, rows [][]any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, "append "+rng)
	if m.err != nil {
		return m.err
	}
	for _, row := range rows {
		m.grid = append(m.grid, utils.ToStrings(row))
	}
	return nil
}

func (m *memorySheet) snapshot() ([][]string, []string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([][]string(nil), m.grid...), append([]string(nil), m.calls...)
}

// memoryOpener hands out one memorySheet for any credential.
type memoryOpener struct {
	sheet *memorySheet
	err   error
	opens int
}

func (o *memoryOpener) Open(ctx context.Context, credential []byte, sheetID string) (sheets.Spreadsheet, error) {
	o.opens++
	if o.err != nil {
		return nil, o.err
	}
	if _, err := sheets.ParseCredential(credential); err != nil {
		return nil, err
	}
	return o.sheet, nil
}

type testEnv struct {
	db        *gorm.DB
	repo      *Repository
	residents *resident.GormStore
	fetcher   *mocks.Fetcher
	opener    *memoryOpener
	sheet     *memorySheet
	service   *Service
}

func testSheetsConfig() sheets.Config {
	return sheets.Config{
		TimeoutSeconds:         5,
		DefaultSheetName:       "Sheet1",
		DefaultIntervalMinutes: 60,
		AutoPushQueue:          10,
		LogLimit:               20,
	}
}

func setupEnv(t *testing.T) *testEnv {
	db := setupTestDB(t)
	env := &testEnv{
		db:        db,
		repo:      NewRepository(db),
		residents: resident.NewStore(db),
		fetcher:   new(mocks.Fetcher),
		sheet:     newMemorySheet(),
	}
	env.opener = &memoryOpener{sheet: env.sheet}
	env.service = NewService(env.repo, env.residents, env.fetcher, env.opener, nil, testSheetsConfig(), zap.NewNop())
	return env
}

// connect stores a config directly, bypassing connection checks.
func (e *testEnv) connect(t *testing.T, credential string, autoSync bool) *SyncConfig {
	cfg := &SyncConfig{
		SheetURL:       testSheetURL,
		SheetID:        "sheet-1",
		SheetName:      "Sheet1",
		ServiceAccount: credential,
		AutoSync:       autoSync,
		SyncInterval:   60,
		IsActive:       true,
	}
	require.NoError(t, e.repo.SaveConfig(context.Background(), cfg))
	return cfg
}
