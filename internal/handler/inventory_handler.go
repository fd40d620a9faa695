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

// ListInventoryItems handles retrieving all inventory items
func ListInventoryItems(c echo.Context) error {
	log := logger.FromContext(c)

	var items []model.InventoryItem
	if result := database.GetDB().Order("name").Find(&items); result.Error != nil {
		log.Error("Failed to list inventory items", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to retrieve inventory items"})
	}

	return c.JSON(http.StatusOK, items)
}

// SaveInventoryItem handles creating or updating an inventory item
func SaveInventoryItem(c echo.Context) error {
	log := logger.FromContext(c)

	var item model.InventoryItem
	if err := c.Bind(&item); err != nil {
		log.Error("Invalid inventory data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}

	if item.Name == "" || item.Unit == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name and unit are required"})
	}
	if item.Quantity < 0 || item.LowStockThreshold < 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "quantity and lowStockThreshold must not be negative"})
	}

	if err := store.Upsert(database.GetDB(), &item); err != nil {
		log.Error("Failed to save inventory item", zap.String("name", item.Name), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to save inventory item: " + err.Error()})
	}

	prometheus.RecordEntityOperation("inventory_items", "save")
	log.Info("Inventory item saved",
		zap.Uint("item_id", item.ID),
		zap.String("name", item.Name),
		zap.Float64("quantity", item.Quantity))
	return c.JSON(http.StatusOK, item)
}

// DeleteInventoryItem handles deleting an inventory item
func DeleteInventoryItem(c echo.Context) error {
	log := logger.FromContext(c)

	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid inventory item id"})
	}

	if err := store.DeleteByID[model.InventoryItem](database.GetDB(), id); err != nil {
		if err == store.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Inventory item not found"})
		}
		log.Error("Failed to delete inventory item", zap.Uint("item_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to delete inventory item"})
	}

	prometheus.RecordEntityOperation("inventory_items", "delete")
	log.Info("Inventory item deleted", zap.Uint("item_id", id))
	return c.JSON(http.StatusOK, echo.Map{"message": "Inventory item deleted successfully"})
}
