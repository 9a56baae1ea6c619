package health

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"smartwarga/core/storage/mocks"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestHandleHealth(t *testing.T) {
	t.Run("OK", func(t *testing.T) {
		app := fiber.New()
		svc := NewService(setupSQLite(t), []Table{{Name: "widgets", Columns: []string{"id", "name"}}}, nil, "", zap.NewNop()).
			WithNeighborhood("RT 03/RW 07")
		NewHandler(svc).RegisterRoutes(app)

		resp, err := app.Test(httptest.NewRequest("GET", "/health", nil))
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)

		var body Report
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.True(t, body.Healthy)
		assert.Equal(t, "RT 03/RW 07", body.Neighborhood)
		assert.Equal(t, "ok", body.Tables["widgets"].Status)
	})

	t.Run("BucketMissing", func(t *testing.T) {
		app := fiber.New()
		client := new(mocks.Client)
		client.On("BucketExists", mock.Anything, "snapshots").Return(false, nil)
		svc := NewService(setupSQLite(t), nil, client, "snapshots", zap.NewNop())
		NewHandler(svc).RegisterRoutes(app)

		resp, err := app.Test(httptest.NewRequest("GET", "/health", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)

		var body Report
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.False(t, body.Healthy)
		require.NotNil(t, body.Storage)
		assert.Equal(t, "error", body.Storage.Status)
	})
}
