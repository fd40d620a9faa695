package store

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
	require.NoError(t, db.AutoMigrate(&model.Crop{}, &model.LedgerEntry{}))
	return db
}

func TestUpsertInsertsThenUpdates(t *testing.T) {
	db := openTestDB(t)

	crop := model.Crop{Name: "Tomato", Status: model.CropPlanted, PlantingDate: "2025-01-10"}
	require.NoError(t, Upsert(db, &crop))
	require.NotZero(t, crop.ID)

	crop.Status = model.CropGrowing
	require.NoError(t, Upsert(db, &crop))

	var count int64
	require.NoError(t, db.Model(&model.Crop{}).Count(&count).Error)
	assert.Equal(t, int64(1), count, "saving the same record twice must not duplicate it")

	got, err := FindByID[model.Crop](db, crop.ID)
	require.NoError(t, err)
	assert.Equal(t, model.CropGrowing, got.Status)
}

func TestUpsertIdempotent(t *testing.T) {
	db := openTestDB(t)

	crop := model.Crop{Name: "Basil", Status: model.CropPlanted, PlantingDate: "2025-02-01"}
	require.NoError(t, Upsert(db, &crop))

	before, err := FindByID[model.Crop](db, crop.ID)
	require.NoError(t, err)

	require.NoError(t, Upsert(db, &crop))

	after, err := FindByID[model.Crop](db, crop.ID)
	require.NoError(t, err)
	assert.Equal(t, before.Name, after.Name)
	assert.Equal(t, before.Status, after.Status)
	assert.Equal(t, before.PlantingDate, after.PlantingDate)
}

func TestDeleteByID(t *testing.T) {
	db := openTestDB(t)

	crop := model.Crop{Name: "Mint", Status: model.CropPlanted, PlantingDate: "2025-03-01"}
	require.NoError(t, Upsert(db, &crop))

	require.NoError(t, DeleteByID[model.Crop](db, crop.ID))

	_, err := FindByID[model.Crop](db, crop.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteByIDMissingRow(t *testing.T) {
	db := openTestDB(t)
	assert.ErrorIs(t, DeleteByID[model.Crop](db, 9999), ErrNotFound)
}

func TestCountWhere(t *testing.T) {
	db := openTestDB(t)

	crop := model.Crop{Name: "Chili", Status: model.CropPlanted, PlantingDate: "2025-04-01"}
	require.NoError(t, Upsert(db, &crop))

	entry := model.LedgerEntry{Date: "2025-05-01", Description: "sold chili", Type: model.LedgerIncome, Amount: 120, CropID: &crop.ID}
	require.NoError(t, Upsert(db, &entry))

	count, err := CountWhere[model.LedgerEntry](db, "crop_id = ?", crop.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	count, err = CountWhere[model.LedgerEntry](db, "crop_id = ?", crop.ID+1)
	require.NoError(t, err)
	assert.Zero(t, count)
}
