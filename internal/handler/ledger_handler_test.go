package handler

import (
	"net/http"
	"testing"

	"farm-service/internal/model"
	"farm-service/pkg/database"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveLedgerEntryWithCropLink(t *testing.T) {
	setupTest(t)
	db := database.GetDB()

	crop := model.Crop{Name: "มะเขือเทศ", Status: model.CropGrowing, PlantingDate: "2025-01-01"}
	require.NoError(t, db.Create(&crop).Error)

	c, rec := newContext(t, http.MethodPost, "/api/ledger", map[string]any{
		"date":        "2025-03-01",
		"description": "ขายผลผลิต",
		"type":        model.LedgerIncome,
		"amount":      2500,
		"cropId":      crop.ID,
	})
	require.NoError(t, SaveLedgerEntry(c))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	entry := decodeBody[model.LedgerEntry](t, rec)
	require.NotNil(t, entry.CropID)
	assert.Equal(t, crop.ID, *entry.CropID)
}

func TestSaveLedgerEntryUnknownCrop(t *testing.T) {
	setupTest(t)

	c, rec := newContext(t, http.MethodPost, "/api/ledger", map[string]any{
		"date":        "2025-03-01",
		"description": "ขายผลผลิต",
		"type":        model.LedgerIncome,
		"amount":      2500,
		"cropId":      999,
	})
	require.NoError(t, SaveLedgerEntry(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSaveLedgerEntryValidation(t *testing.T) {
	setupTest(t)

	// Unknown type.
	c, rec := newContext(t, http.MethodPost, "/api/ledger", map[string]any{
		"date":        "2025-03-01",
		"description": "x",
		"type":        "transfer",
		"amount":      100,
	})
	require.NoError(t, SaveLedgerEntry(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// Non-positive amount.
	c, rec = newContext(t, http.MethodPost, "/api/ledger", map[string]any{
		"date":        "2025-03-01",
		"description": "x",
		"type":        model.LedgerExpense,
		"amount":      0,
	})
	require.NoError(t, SaveLedgerEntry(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
