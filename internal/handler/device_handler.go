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

// ListDevices handles retrieving all smart-farm devices
func ListDevices(c echo.Context) error {
	log := logger.FromContext(c)

	var devices []model.Device
	if result := database.GetDB().Order("created_at desc").Find(&devices); result.Error != nil {
		log.Error("Failed to list devices", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to retrieve devices"})
	}

	return c.JSON(http.StatusOK, devices)
}

// SaveDevice handles creating or updating a device
func SaveDevice(c echo.Context) error {
	log := logger.FromContext(c)

	var device model.Device
	if err := c.Bind(&device); err != nil {
		log.Error("Invalid device data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}

	if device.Name == "" || device.Type == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name and type are required"})
	}
	switch device.Type {
	case model.DeviceSensor, model.DevicePump, model.DeviceLight:
	default:
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown device type"})
	}
	if device.Status == "" {
		device.Status = model.DeviceInactive
	}

	if err := store.Upsert(database.GetDB(), &device); err != nil {
		log.Error("Failed to save device", zap.String("name", device.Name), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to save device: " + err.Error()})
	}

	prometheus.RecordEntityOperation("devices", "save")
	log.Info("Device saved", zap.Uint("device_id", device.ID), zap.String("name", device.Name))
	return c.JSON(http.StatusOK, device)
}

// DeleteDevice handles deleting a device
func DeleteDevice(c echo.Context) error {
	log := logger.FromContext(c)

	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid device id"})
	}

	if err := store.DeleteByID[model.Device](database.GetDB(), id); err != nil {
		if err == store.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Device not found"})
		}
		log.Error("Failed to delete device", zap.Uint("device_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to delete device"})
	}

	prometheus.RecordEntityOperation("devices", "delete")
	log.Info("Device deleted", zap.Uint("device_id", id))
	return c.JSON(http.StatusOK, echo.Map{"message": "Device deleted successfully"})
}

// ListEnvironment returns the sampled environment readings that feed
// the dashboard chart.
func ListEnvironment(c echo.Context) error {
	log := logger.FromContext(c)

	var readings []model.EnvironmentReading
	if result := database.GetDB().Order("id").Find(&readings); result.Error != nil {
		log.Error("Failed to list environment readings", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to retrieve environment data"})
	}

	return c.JSON(http.StatusOK, readings)
}
