package sync

import (
	"context"
	"testing"
	"time"

	"smartwarga/feature/resident"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestPusher(env *testEnv) *AutoPusher {
	return NewAutoPusher(env.repo, env.opener, testSheetsConfig(), zap.NewNop())
}

func TestAutoPusher_UpdatesExistingRow(t *testing.T) {
	env := setupEnv(t)
	env.connect(t, testCredential, true)
	env.sheet.grid = [][]string{
		{"NIK", "No KK", "Nama Lengkap"},
		{"3201010101010001", "", "Budi"},
		{"3201010101010002", "", "Siti"},
	}

	err := newTestPusher(env).PushOne(context.Background(), resident.Resident{NIK: "3201010101010002", Name: "Siti Aminah"})
	require.NoError(t, err)

	grid, calls := env.sheet.snapshot()
	assert.Equal(t, []string{"get Sheet1!A:A", "update Sheet1!A3:S3"}, calls)
	assert.Equal(t, "Siti Aminah", grid[2][2])
	assert.Len(t, grid, 3)
}

func TestAutoPusher_AppendsNewRow(t *testing.T) {
	env := setupEnv(t)
	env.connect(t, testCredential, true)
	env.sheet.grid = [][]string{{"NIK"}, {"3201010101010001"}}

	err := newTestPusher(env).PushOne(context.Background(), resident.Resident{NIK: "3201010101010009", Name: "Baru"})
	require.NoError(t, err)

	grid, calls := env.sheet.snapshot()
	assert.Equal(t, []string{"get Sheet1!A:A", "append Sheet1!A:S"}, calls)
	require.Len(t, grid, 3)
	assert.Equal(t, "3201010101010009", grid[2][0])
	assert.Len(t, grid[2], 19)
}

func TestAutoPusher_HeaderIsNeverMatched(t *testing.T) {
	env := setupEnv(t)
	env.connect(t, testCredential, true)
	env.sheet.grid = [][]string{{"NIK"}}

	require.NoError(t, newTestPusher(env).PushOne(context.Background(), resident.Resident{NIK: "NIK"}))

	grid, _ := env.sheet.snapshot()
	assert.Len(t, grid, 2)
}

func TestAutoPusher_DeleteClearsRow(t *testing.T) {
	env := setupEnv(t)
	env.connect(t, testCredential, true)
	env.sheet.grid = [][]string{
		{"NIK", "Nama"},
		{"3201010101010001", "Budi"},
		{"3201010101010002", "Siti"},
	}
	p := newTestPusher(env)

	require.NoError(t, p.DeleteOne(context.Background(), "3201010101010001"))
	require.NoError(t, p.DeleteOne(context.Background(), "9999999999999999"))

	grid, calls := env.sheet.snapshot()
	assert.Equal(t, []string{"get Sheet1!A:A", "clear Sheet1!A2:S2", "get Sheet1!A:A"}, calls)
	require.Len(t, grid, 3)
	assert.Equal(t, []string{"", ""}, grid[1])
	assert.Equal(t, "Siti", grid[2][1])
}

func TestAutoPusher_SkipsWhenNotApplicable(t *testing.T) {
	tests := map[string]func(t *testing.T, env *testEnv){
		"Not Configured":     func(t *testing.T, env *testEnv) {},
		"Auto Sync Off":      func(t *testing.T, env *testEnv) { env.connect(t, testCredential, false) },
		"Without Credential": func(t *testing.T, env *testEnv) { env.connect(t, "", true) },
	}

	for name, setup := range tests {
		t.Run(name, func(t *testing.T) {
			env := setupEnv(t)
			setup(t, env)

			p := newTestPusher(env)
			require.NoError(t, p.PushOne(context.Background(), resident.Resident{NIK: "3201010101010001"}))
			require.NoError(t, p.DeleteOne(context.Background(), "3201010101010001"))
			assert.Equal(t, 0, env.opener.opens)
		})
	}
}

func TestAutoPusher_SubmitNeverBlocks(t *testing.T) {
	env := setupEnv(t)
	cfg := testSheetsConfig()
	cfg.AutoPushQueue = 1
	p := NewAutoPusher(env.repo, env.opener, cfg, zap.NewNop())

	done := make(chan struct{})
	go func() {
		p.ResidentSaved(resident.Resident{NIK: "3201010101010001"})
		p.ResidentSaved(resident.Resident{NIK: "3201010101010002"})
		p.ResidentDeleted("3201010101010003")
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("submissions blocked on a full queue")
	}
	assert.Len(t, p.jobs, 1)
}

func TestAutoPusher_RunProcessesQueue(t *testing.T) {
	env := setupEnv(t)
	env.connect(t, testCredential, true)
	env.sheet.grid = [][]string{{"NIK"}}
	p := newTestPusher(env)

	ctx, cancel := context.WithCancel(context.Background())
	stopped := make(chan struct{})
	go func() {
		p.Run(ctx)
		close(stopped)
	}()

	p.ResidentSaved(resident.Resident{NIK: "3201010101010001", Name: "Budi"})

	assert.Eventually(t, func() bool {
		grid, _ := env.sheet.snapshot()
		return len(grid) == 2
	}, 2*time.Second, 10*time.Millisecond)

	cancel()
	<-stopped
}

func TestAutoPusher_WiredToResidentService(t *testing.T) {
	env := setupEnv(t)
	p := newTestPusher(env)
	svc := resident.NewService(env.residents, p, zap.NewNop())

	require.NoError(t, svc.Create(context.Background(), &resident.Resident{NIK: "3201010101010001", Name: "Budi"}))
	require.NoError(t, svc.Delete(context.Background(), "3201010101010001"))

	require.Len(t, p.jobs, 2)
	first := <-p.jobs
	assert.NotNil(t, first.resident)
	second := <-p.jobs
	assert.Nil(t, second.resident)
	assert.Equal(t, "3201010101010001", second.nik)
}
