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

// ListPlots handles retrieving all cultivation plots
func ListPlots(c echo.Context) error {
	log := logger.FromContext(c)

	var plots []model.Plot
	if result := database.GetDB().Order("created_at desc").Find(&plots); result.Error != nil {
		log.Error("Failed to list plots", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to retrieve plots"})
	}

	return c.JSON(http.StatusOK, plots)
}

// SavePlot handles creating or updating a plot. The current crop, if
// set, must exist.
func SavePlot(c echo.Context) error {
	log := logger.FromContext(c)

	var plot model.Plot
	if err := c.Bind(&plot); err != nil {
		log.Error("Invalid plot data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}

	if plot.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
	}

	db := database.GetDB()
	if plot.CurrentCropID != nil {
		if _, err := store.FindByID[model.Crop](db, *plot.CurrentCropID); err != nil {
			log.Warn("Plot references missing crop", zap.Uint("crop_id", *plot.CurrentCropID))
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "referenced crop does not exist"})
		}
	}

	if err := store.Upsert(db, &plot); err != nil {
		log.Error("Failed to save plot", zap.String("name", plot.Name), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to save plot: " + err.Error()})
	}

	prometheus.RecordEntityOperation("plots", "save")
	log.Info("Plot saved", zap.Uint("plot_id", plot.ID), zap.String("name", plot.Name))
	return c.JSON(http.StatusOK, plot)
}

// DeletePlot handles deleting a plot and its recorded activities.
func DeletePlot(c echo.Context) error {
	log := logger.FromContext(c)

	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid plot id"})
	}

	db := database.GetDB()

	// Activity history follows its plot, the way the original schema
	// cascaded the delete.
	if err := db.Where("plot_id = ?", id).Delete(&model.ActivityLog{}).Error; err != nil {
		log.Error("Failed to delete plot activities", zap.Uint("plot_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to delete plot"})
	}

	if err := store.DeleteByID[model.Plot](db, id); err != nil {
		if err == store.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Plot not found"})
		}
		log.Error("Failed to delete plot", zap.Uint("plot_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to delete plot"})
	}

	prometheus.RecordEntityOperation("plots", "delete")
	log.Info("Plot deleted", zap.Uint("plot_id", id))
	return c.JSON(http.StatusOK, echo.Map{"message": "Plot deleted successfully"})
}

// ListActivityLogs handles retrieving GAP activity logs, optionally
// filtered by plot
func ListActivityLogs(c echo.Context) error {
	log := logger.FromContext(c)

	query := database.GetDB().Order("date desc")
	if plotID := c.QueryParam("plot_id"); plotID != "" {
		query = query.Where("plot_id = ?", plotID)
	}

	var logs []model.ActivityLog
	if result := query.Find(&logs); result.Error != nil {
		log.Error("Failed to list activity logs", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to retrieve activity logs"})
	}

	return c.JSON(http.StatusOK, logs)
}

// SaveActivityLog handles recording a GAP activity on a plot
func SaveActivityLog(c echo.Context) error {
	log := logger.FromContext(c)

	var activity model.ActivityLog
	if err := c.Bind(&activity); err != nil {
		log.Error("Invalid activity data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}

	if activity.PlotID == 0 || activity.Description == "" || activity.Personnel == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "plotId, description and personnel are required"})
	}
	switch activity.ActivityType {
	case model.ActivityPlanting, model.ActivityFertilizing, model.ActivityPestControl,
		model.ActivityWatering, model.ActivityHarvest:
	default:
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown activity type"})
	}

	db := database.GetDB()
	if _, err := store.FindByID[model.Plot](db, activity.PlotID); err != nil {
		log.Warn("Activity references missing plot", zap.Uint("plot_id", activity.PlotID))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "referenced plot does not exist"})
	}

	if err := store.Upsert(db, &activity); err != nil {
		log.Error("Failed to save activity log", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to save activity log: " + err.Error()})
	}

	prometheus.RecordEntityOperation("activity_logs", "save")
	log.Info("Activity log saved",
		zap.Uint("activity_id", activity.ID),
		zap.Uint("plot_id", activity.PlotID),
		zap.String("type", activity.ActivityType))
	return c.JSON(http.StatusOK, activity)
}
