package handler

import (
	"net/http"

	"farm-service/internal/alerts"
	"farm-service/pkg/database"
	"farm-service/pkg/logger"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// ListAlerts handles retrieving the derived dashboard alerts
func ListAlerts(c echo.Context) error {
	log := logger.FromContext(c)

	result, err := alerts.Build(database.GetDB())
	if err != nil {
		log.Error("Failed to build alerts", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to retrieve alerts"})
	}

	return c.JSON(http.StatusOK, result)
}
