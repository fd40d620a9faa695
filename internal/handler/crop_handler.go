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

// ListCrops handles retrieving all crops
func ListCrops(c echo.Context) error {
	log := logger.FromContext(c)

	var crops []model.Crop
	result := database.GetDB().Order("created_at desc").Find(&crops)
	if result.Error != nil {
		log.Error("Failed to list crops", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to retrieve crops"})
	}

	return c.JSON(http.StatusOK, crops)
}

// SaveCrop handles creating or updating a crop. A zero id inserts, a
// present id updates the existing row.
func SaveCrop(c echo.Context) error {
	log := logger.FromContext(c)

	var crop model.Crop
	if err := c.Bind(&crop); err != nil {
		log.Error("Invalid crop data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}

	if crop.Name == "" || crop.PlantingDate == "" {
		log.Warn("Missing required crop fields")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name and plantingDate are required"})
	}
	switch crop.Status {
	case "":
		crop.Status = model.CropPlanted
	case model.CropPlanted, model.CropGrowing, model.CropHarvestReady:
	default:
		log.Warn("Unknown crop status", zap.String("status", crop.Status))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown crop status"})
	}

	if err := store.Upsert(database.GetDB(), &crop); err != nil {
		log.Error("Failed to save crop", zap.String("name", crop.Name), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to save crop: " + err.Error()})
	}

	prometheus.RecordEntityOperation("crops", "save")
	log.Info("Crop saved", zap.Uint("crop_id", crop.ID), zap.String("name", crop.Name))
	return c.JSON(http.StatusOK, crop)
}

// DeleteCrop handles deleting a crop. A crop referenced by ledger
// entries or planted in a plot cannot be removed.
func DeleteCrop(c echo.Context) error {
	log := logger.FromContext(c)

	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid crop id"})
	}

	db := database.GetDB()

	ledgerRefs, err := store.CountWhere[model.LedgerEntry](db, "crop_id = ?", id)
	if err != nil {
		log.Error("Failed to check ledger references", zap.Uint("crop_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to delete crop"})
	}
	plotRefs, err := store.CountWhere[model.Plot](db, "current_crop_id = ?", id)
	if err != nil {
		log.Error("Failed to check plot references", zap.Uint("crop_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to delete crop"})
	}
	if ledgerRefs > 0 || plotRefs > 0 {
		log.Warn("Crop delete blocked by references",
			zap.Uint("crop_id", id),
			zap.Int64("ledger_refs", ledgerRefs),
			zap.Int64("plot_refs", plotRefs))
		return c.JSON(http.StatusConflict, echo.Map{
			"error": "cannot delete a crop that is referenced by ledger entries or plots",
		})
	}

	if err := store.DeleteByID[model.Crop](db, id); err != nil {
		if err == store.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Crop not found"})
		}
		log.Error("Failed to delete crop", zap.Uint("crop_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to delete crop"})
	}

	prometheus.RecordEntityOperation("crops", "delete")
	log.Info("Crop deleted", zap.Uint("crop_id", id))
	return c.JSON(http.StatusOK, echo.Map{"message": "Crop deleted successfully"})
}
