package alerts

import (
	"testing"

	"farm-service/internal/model"

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
	require.NoError(t, db.AutoMigrate(&model.InventoryItem{}, &model.Crop{}))
	return db
}

func TestBuildLowStockWarnings(t *testing.T) {
	db := openTestDB(t)

	low := model.InventoryItem{Name: "ปุ๋ยสูตร 15-15-15", Quantity: 5, Unit: "กระสอบ", LowStockThreshold: 10}
	atThreshold := model.InventoryItem{Name: "เมล็ดพันธุ์", Quantity: 3, Unit: "ซอง", LowStockThreshold: 3}
	healthy := model.InventoryItem{Name: "ถุงบรรจุ", Quantity: 500, Unit: "ใบ", LowStockThreshold: 100}
	require.NoError(t, db.Create(&low).Error)
	require.NoError(t, db.Create(&atThreshold).Error)
	require.NoError(t, db.Create(&healthy).Error)

	got, err := Build(db)
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, "stock-1", got[0].ID)
	assert.Equal(t, model.AlertWarning, got[0].Type)
	assert.Contains(t, got[0].Message, "ปุ๋ยสูตร 15-15-15")
	assert.Contains(t, got[0].Message, "กระสอบ")

	// Quantity equal to the threshold still counts as low stock.
	assert.Equal(t, "stock-2", got[1].ID)
}

func TestBuildHarvestTasks(t *testing.T) {
	db := openTestDB(t)

	ready := model.Crop{Name: "มะเขือเทศ", Status: model.CropHarvestReady, PlantingDate: "2025-01-01"}
	growing := model.Crop{Name: "คะน้า", Status: model.CropGrowing, PlantingDate: "2025-02-01"}
	require.NoError(t, db.Create(&ready).Error)
	require.NoError(t, db.Create(&growing).Error)

	got, err := Build(db)
	require.NoError(t, err)
	require.Len(t, got, 1)

	assert.Equal(t, "harvest-1", got[0].ID)
	assert.Equal(t, model.AlertTask, got[0].Type)
	assert.Contains(t, got[0].Message, "มะเขือเทศ")
}

func TestBuildOneAlertPerSource(t *testing.T) {
	db := openTestDB(t)

	item := model.InventoryItem{Name: "Seed", Quantity: 0, Unit: "bag", LowStockThreshold: 5}
	crop := model.Crop{Name: "Tomato", Status: model.CropHarvestReady, PlantingDate: "2025-01-01"}
	require.NoError(t, db.Create(&item).Error)
	require.NoError(t, db.Create(&crop).Error)

	first, err := Build(db)
	require.NoError(t, err)
	second, err := Build(db)
	require.NoError(t, err)

	// Recomputing yields the same alerts with the same stable ids,
	// one per source, never accumulating.
	assert.Equal(t, first, second)
	require.Len(t, first, 2)
	assert.Equal(t, "stock-1", first[0].ID)
	assert.Equal(t, "harvest-1", first[1].ID)
}

func TestBuildEmptyState(t *testing.T) {
	db := openTestDB(t)

	got, err := Build(db)
	require.NoError(t, err)
	assert.Empty(t, got)
}
