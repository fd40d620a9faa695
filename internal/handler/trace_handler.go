package handler

import (
	"net/http"

	"farm-service/internal/trace"
	"farm-service/pkg/database"
	"farm-service/pkg/logger"
	"farm-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// TraceProduct handles the public traceability lookup. No auth: the
// code comes from a QR on a product label, scanned by a consumer.
func TraceProduct(c echo.Context) error {
	log := logger.FromContext(c)
	code := c.Param("code")

	result, err := trace.Resolve(database.GetDB(), code)
	if err != nil {
		switch err {
		case trace.ErrBadCode:
			prometheus.RecordTraceLookup("bad_code")
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		case trace.ErrLogNotFound, trace.ErrNotHarvest, trace.ErrPlotNotFound,
			trace.ErrPlotNoCrop, trace.ErrCropNotFound:
			prometheus.RecordTraceLookup("not_found")
			log.Info("Trace lookup failed", zap.String("code", code), zap.String("reason", err.Error()))
			return c.JSON(http.StatusNotFound, echo.Map{"error": err.Error()})
		default:
			prometheus.RecordTraceLookup("error")
			log.Error("Trace lookup error", zap.String("code", code), zap.Error(err))
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to resolve reference code"})
		}
	}

	prometheus.RecordTraceLookup("ok")
	log.Info("Trace resolved",
		zap.String("code", code),
		zap.Uint("log_id", result.Harvest.ID),
		zap.Uint("crop_id", result.Crop.ID))
	return c.JSON(http.StatusOK, result)
}
