package main

import (
	"bytes"
	"context"
	"io"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wichananm65/fresh-meat-hub/internal/config"
	"github.com/wichananm65/fresh-meat-hub/internal/infrastructure/database"
	"github.com/wichananm65/fresh-meat-hub/internal/logger"
)

func testConfig(t *testing.T) config.Config {
	return config.Config{
		AppEnv:              "test",
		StoreDriver:         config.DriverMemory,
		AdminPIN:            "4242",
		AdminAuthRequired:   true,
		JWTSecret:           "wire-test",
		SessionTTL:          time.Hour,
		AdminMaxAttempts:    5,
		AdminAttemptWindow:  time.Minute,
		ServiceablePincodes: config.DefaultPincodes,
		CORSOrigins:         "*",
		OrderLogPath:        filepath.Join(t.TempDir(), "orders.txt"),
		BodyLimitMB:         1,
	}
}

func TestNewApplicationServesMemoryStore(t *testing.T) {
	ctx := context.Background()
	app, err := newApplication(ctx, testConfig(t), logger.Discard(), database.Memory())
	require.NoError(t, err)
	defer app.close(ctx)

	n, err := app.categories.SeedDefaults(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	res, err := app.http.Test(httptest.NewRequest("GET", "/api/categories", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, res.StatusCode)
	b, _ := io.ReadAll(res.Body)
	assert.Contains(t, string(b), `"name":"chicken"`)

	res, err = app.http.Test(httptest.NewRequest("GET", "/api/stats", nil))
	require.NoError(t, err)
	assert.Equal(t, 401, res.StatusCode)
}

func TestNewApplicationRejectsEmptyPIN(t *testing.T) {
	cfg := testConfig(t)
	cfg.AdminPIN = ""

	_, err := newApplication(context.Background(), cfg, logger.Discard(), database.Memory())
	assert.Error(t, err)
}

func TestRoutesCommandListsEndpoints(t *testing.T) {
	t.Setenv("STORE_DRIVER", config.DriverMemory)

	var out bytes.Buffer
	routesCmd.SetOut(&out)
	routesCmd.SetContext(context.Background())
	require.NoError(t, routesCmd.RunE(routesCmd, nil))

	text := out.String()
	assert.True(t, strings.HasPrefix(text, "METHOD"))
	assert.Contains(t, text, "/api/orders/:id/status")
	assert.Contains(t, text, "/api/check-pincode")
	assert.NotContains(t, text, "HEAD")
}
