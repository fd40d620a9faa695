package handler

import (
	"net/http"

	"farm-service/internal/model"
	"farm-service/internal/store"
	"farm-service/pkg/database"
	"farm-service/pkg/logger"
	"farm-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// ListLedgerEntries handles retrieving the farm ledger, newest first
func ListLedgerEntries(c echo.Context) error {
	log := logger.FromContext(c)

	var entries []model.LedgerEntry
	if result := database.GetDB().Order("date desc").Find(&entries); result.Error != nil {
		log.Error("Failed to list ledger entries", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to retrieve ledger entries"})
	}

	return c.JSON(http.StatusOK, entries)
}

// SaveLedgerEntry handles creating or updating a ledger entry. An
// entry may reference the crop the income or expense belongs to; the
// reference must resolve to an existing crop.
func SaveLedgerEntry(c echo.Context) error {
	log := logger.FromContext(c)

	var entry model.LedgerEntry
	if err := c.Bind(&entry); err != nil {
		log.Error("Invalid ledger data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}

	if entry.Date == "" || entry.Description == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "date and description are required"})
	}
	if entry.Type != model.LedgerIncome && entry.Type != model.LedgerExpense {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "type must be income or expense"})
	}
	if entry.Amount <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "amount must be positive"})
	}

	db := database.GetDB()
	if entry.CropID != nil {
		if _, err := store.FindByID[model.Crop](db, *entry.CropID); err != nil {
			log.Warn("Ledger entry references missing crop", zap.Uint("crop_id", *entry.CropID))
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "referenced crop does not exist"})
		}
	}

	if err := store.Upsert(db, &entry); err != nil {
		log.Error("Failed to save ledger entry", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to save ledger entry: " + err.Error()})
	}

	prometheus.RecordEntityOperation("ledger_entries", "save")
	log.Info("Ledger entry saved",
		zap.Uint("entry_id", entry.ID),
		zap.String("type", entry.Type),
		zap.Float64("amount", entry.Amount))
	return c.JSON(http.StatusOK, entry)
}

// DeleteLedgerEntry handles deleting a ledger entry
func DeleteLedgerEntry(c echo.Context) error {
	log := logger.FromContext(c)

	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid ledger entry id"})
	}

	if err := store.DeleteByID[model.LedgerEntry](database.GetDB(), id); err != nil {
		if err == store.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Ledger entry not found"})
		}
		log.Error("Failed to delete ledger entry", zap.Uint("entry_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to delete ledger entry"})
	}

	prometheus.RecordEntityOperation("ledger_entries", "delete")
	log.Info("Ledger entry deleted", zap.Uint("entry_id", id))
	return c.JSON(http.StatusOK, echo.Map{"message": "Ledger entry deleted successfully"})
}
