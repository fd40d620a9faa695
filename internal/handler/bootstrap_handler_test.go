package handler

import (
	"net/http"
	"testing"

	"farm-service/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBootstrapReturnsFullSnapshot(t *testing.T) {
	db := setupTest(t)

	crop := model.Crop{Name: "มะเขือเทศ", Status: model.CropGrowing, PlantingDate: "2025-01-01"}
	require.NoError(t, db.Create(&crop).Error)
	item := model.InventoryItem{Name: "ปุ๋ย", Quantity: 20, Unit: "กระสอบ", LowStockThreshold: 5}
	require.NoError(t, db.Create(&item).Error)
	customer := model.Customer{Name: "ตลาดสด"}
	require.NoError(t, db.Create(&customer).Error)

	var admin model.Role
	require.NoError(t, db.Where("name = ?", model.RoleAdmin).First(&admin).Error)

	c, rec := newContext(t, http.MethodGet, "/api/bootstrap", nil)
	c.Set("role_id", admin.ID)
	require.NoError(t, Bootstrap(c))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	snap := decodeBody[Snapshot](t, rec)
	assert.Len(t, snap.Crops, 1)
	assert.Len(t, snap.InventoryItems, 1)
	assert.Len(t, snap.Customers, 1)
	assert.Len(t, snap.Environment, 8, "seeded environment curve rides along")
	assert.Len(t, snap.Roles, 3, "stock roles ride along")
	assert.Equal(t, "Smile Farm", snap.FarmInfo.Name)
	assert.Empty(t, snap.SalesOrders)
	assert.NotEmpty(t, snap.Permissions, "caller's permission map rides along")
}

func TestBootstrapFailsAsUnit(t *testing.T) {
	db := setupTest(t)

	// Knock one table out from under the loader.
	require.NoError(t, db.Migrator().DropTable(&model.FarmSetting{}))

	c, rec := newContext(t, http.MethodGet, "/api/bootstrap", nil)
	require.NoError(t, Bootstrap(c))
	require.Equal(t, http.StatusInternalServerError, rec.Code)

	body := decodeBody[map[string]any](t, rec)
	assert.Equal(t, "failed to fetch farm data", body["error"])
	assert.Equal(t, float64(1), body["failures"])
}
