package database

import (
	"testing"

	"farm-service/internal/model"
	"farm-service/internal/permission"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, Migrate(db))
	return db
}

func TestSeedCreatesStockRoles(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, Seed(db))

	var roles []model.Role
	require.NoError(t, db.Order("id").Find(&roles).Error)
	require.Len(t, roles, 3)
	assert.Equal(t, model.RoleAdmin, roles[0].Name)
	assert.Equal(t, model.RoleFarmManager, roles[1].Name)
	assert.Equal(t, model.RoleWorker, roles[2].Name)
}

func TestSeedAdminHasFullAccess(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, Seed(db))

	var admin model.Role
	require.NoError(t, db.Where("name = ?", model.RoleAdmin).First(&admin).Error)

	perms := admin.Permissions.Data()
	for _, module := range permission.Modules {
		s := permission.Evaluate(perms, module)
		assert.True(t, s.View && s.Create && s.Edit && s.Delete, "admin must hold every action in %s", module)
	}
}

func TestSeedWorkerIsRestricted(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, Seed(db))

	var worker model.Role
	require.NoError(t, db.Where("name = ?", model.RoleWorker).First(&worker).Error)
	perms := worker.Permissions.Data()

	assert.Equal(t, permission.Set{}, permission.Evaluate(perms, permission.ModuleAdmin))
	assert.Equal(t, permission.Set{}, permission.Evaluate(perms, permission.ModuleHR))
	assert.Equal(t, permission.Set{}, permission.Evaluate(perms, permission.ModuleSettings))

	gap := permission.Evaluate(perms, permission.ModuleGap)
	assert.True(t, gap.View)
	assert.True(t, gap.Create)
	assert.False(t, gap.Edit)
	assert.False(t, gap.Delete)

	crops := permission.Evaluate(perms, permission.ModuleCrops)
	assert.True(t, crops.View)
	assert.False(t, crops.Create)
}

func TestSeedSettingsSingleton(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, Seed(db))

	var setting model.FarmSetting
	require.NoError(t, db.First(&setting, model.FarmSettingID).Error)
	assert.Equal(t, "Smile Farm", setting.Info.Data().Name)
}

func TestSeedEnvironmentCurve(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, Seed(db))

	var readings []model.EnvironmentReading
	require.NoError(t, db.Order("id").Find(&readings).Error)
	require.Len(t, readings, 8)
	assert.Equal(t, "00:00", readings[0].Time)
	assert.Equal(t, "12:00", readings[4].Time)
	assert.Equal(t, float64(1500), readings[4].Light)
}

func TestSeedIsIdempotent(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, Seed(db))
	require.NoError(t, Seed(db))

	var roleCount, settingCount, readingCount int64
	require.NoError(t, db.Model(&model.Role{}).Count(&roleCount).Error)
	require.NoError(t, db.Model(&model.FarmSetting{}).Count(&settingCount).Error)
	require.NoError(t, db.Model(&model.EnvironmentReading{}).Count(&readingCount).Error)

	assert.Equal(t, int64(3), roleCount)
	assert.Equal(t, int64(1), settingCount)
	assert.Equal(t, int64(8), readingCount)
}

func TestSeedKeepsExistingRoles(t *testing.T) {
	db := openTestDB(t)

	custom := model.Role{Name: "Agronomist"}
	require.NoError(t, db.Create(&custom).Error)

	require.NoError(t, Seed(db))

	var roleCount int64
	require.NoError(t, db.Model(&model.Role{}).Count(&roleCount).Error)
	assert.Equal(t, int64(1), roleCount, "seeding must not touch a role table that already has rows")
}
