package middleware

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"farm-service/internal/model"
	"farm-service/internal/permission"
	"farm-service/pkg/config"
	"farm-service/pkg/database"
	"farm-service/pkg/jwtutil"
	"farm-service/prometheus"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var metricsOnce sync.Once

func setupTest(t *testing.T) {
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
}

func roleID(t *testing.T, name string) uint {
	t.Helper()
	var role model.Role
	require.NoError(t, database.GetDB().Where("name = ?", name).First(&role).Error)
	return role.ID
}

// callGated runs a request through Require with the given role already
// authenticated, returning the recorded status.
func callGated(t *testing.T, roleID uint, module, action string) int {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(req, rec)
	c.Set("role_id", roleID)

	gated := Require(module, action)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	require.NoError(t, gated(c))
	return rec.Code
}

func TestRequireAdminPassesEverywhere(t *testing.T) {
	setupTest(t)
	admin := roleID(t, model.RoleAdmin)

	for _, module := range permission.Modules {
		for _, action := range []string{permission.ActionView, permission.ActionCreate, permission.ActionEdit, permission.ActionDelete} {
			assert.Equal(t, http.StatusOK, callGated(t, admin, module, action), "%s/%s", module, action)
		}
	}
}

func TestRequireDeniesMissingGrant(t *testing.T) {
	setupTest(t)
	worker := roleID(t, model.RoleWorker)

	assert.Equal(t, http.StatusOK, callGated(t, worker, permission.ModuleGap, permission.ActionCreate))
	assert.Equal(t, http.StatusForbidden, callGated(t, worker, permission.ModuleGap, permission.ActionDelete))
	assert.Equal(t, http.StatusForbidden, callGated(t, worker, permission.ModuleAdmin, permission.ActionView))
	assert.Equal(t, http.StatusForbidden, callGated(t, worker, permission.ModuleHR, permission.ActionView))
}

func TestRequireDeniesUnknownModule(t *testing.T) {
	setupTest(t)
	admin := roleID(t, model.RoleAdmin)

	// Even the full-access role holds no grant for a module outside the
	// known set.
	assert.Equal(t, http.StatusForbidden, callGated(t, admin, "warehouse", permission.ActionView))
}

func TestRequireWithoutAuthenticatedRole(t *testing.T) {
	setupTest(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(req, rec)

	gated := Require(permission.ModuleCrops, permission.ActionView)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	require.NoError(t, gated(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireVanishedRole(t *testing.T) {
	setupTest(t)

	assert.Equal(t, http.StatusUnauthorized, callGated(t, 999, permission.ModuleCrops, permission.ActionView))
}

func TestRequireRevocationTakesEffectImmediately(t *testing.T) {
	setupTest(t)
	worker := roleID(t, model.RoleWorker)

	require.Equal(t, http.StatusOK, callGated(t, worker, permission.ModuleCrops, permission.ActionView))

	// Strip the worker role's crops grant and retry without re-login.
	var role model.Role
	db := database.GetDB()
	require.NoError(t, db.First(&role, worker).Error)
	perms := role.Permissions.Data()
	delete(perms, permission.ModuleCrops)
	role.Permissions = datatypes.NewJSONType(perms)
	require.NoError(t, db.Save(&role).Error)

	assert.Equal(t, http.StatusForbidden, callGated(t, worker, permission.ModuleCrops, permission.ActionView))
}
