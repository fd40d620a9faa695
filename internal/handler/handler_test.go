package handler

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"

	"farm-service/pkg/config"
	"farm-service/pkg/database"
	"farm-service/pkg/jwtutil"
	"farm-service/prometheus"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var metricsOnce sync.Once

// setupTest swaps in a fresh in-memory database, migrated and seeded,
// and makes sure the metric registry is initialized exactly once.
func setupTest(t *testing.T) *gorm.DB {
	t.Helper()

	metricsOnce.Do(func() {
		prometheus.InitMetrics(&config.Config{Metrics: config.MetricsConfig{Prefix: "test"}})
		jwtutil.Initialize(&config.JWTConfig{SigningKey: "test-signing-key", ExpirationHours: 1})
	})

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	require.NoError(t, database.Seed(db))
	database.SetDB(db)
	return db
}

// newContext builds an echo context carrying an optional JSON body.
func newContext(t *testing.T, method, path string, body any) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(req, rec)
	return c, rec
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}
