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
	"gorm.io/datatypes"
)

// GetSettings handles retrieving the farm profile
func GetSettings(c echo.Context) error {
	log := logger.FromContext(c)

	setting, err := store.FindByID[model.FarmSetting](database.GetDB(), model.FarmSettingID)
	if err != nil {
		if err == store.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Farm settings not found"})
		}
		log.Error("Failed to load settings", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to retrieve settings"})
	}

	return c.JSON(http.StatusOK, setting)
}

// SaveSettings handles replacing the farm profile. There is exactly
// one settings row. Writes always land on it whatever id the caller
// sends.
func SaveSettings(c echo.Context) error {
	log := logger.FromContext(c)

	var info model.FarmInfo
	if err := c.Bind(&info); err != nil {
		log.Error("Invalid settings data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}

	if info.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
	}

	setting := model.FarmSetting{
		ID:   model.FarmSettingID,
		Info: datatypes.NewJSONType(info),
	}
	if err := store.Upsert(database.GetDB(), &setting); err != nil {
		log.Error("Failed to save settings", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to save settings: " + err.Error()})
	}

	prometheus.RecordEntityOperation("farm_settings", "save")
	log.Info("Farm settings saved", zap.String("farm", info.Name))
	return c.JSON(http.StatusOK, setting)
}
