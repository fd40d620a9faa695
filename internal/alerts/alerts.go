// Package alerts derives dashboard notifications from current farm
// state. Nothing here is persisted; every call recomputes from the
// database.
package alerts

import (
	"fmt"

	"farm-service/internal/model"

	"gorm.io/gorm"
)

// Build returns the current alert list. Each low-stock inventory item
// yields one warning and each harvest-ready crop yields one task.
// Alert ids are stable across calls so clients can dedupe.
func Build(db *gorm.DB) ([]model.Alert, error) {
	var items []model.InventoryItem
	if result := db.Where("quantity <= low_stock_threshold").Order("id").Find(&items); result.Error != nil {
		return nil, fmt.Errorf("load low stock items: %w", result.Error)
	}

	var crops []model.Crop
	if result := db.Where("status = ?", model.CropHarvestReady).Order("id").Find(&crops); result.Error != nil {
		return nil, fmt.Errorf("load harvest-ready crops: %w", result.Error)
	}

	alerts := make([]model.Alert, 0, len(items)+len(crops))
	for _, item := range items {
		alerts = append(alerts, model.Alert{
			ID:      fmt.Sprintf("stock-%d", item.ID),
			Type:    model.AlertWarning,
			Message: fmt.Sprintf("สินค้าใกล้หมด: %s เหลือ %g %s", item.Name, item.Quantity, item.Unit),
		})
	}
	for _, crop := range crops {
		alerts = append(alerts, model.Alert{
			ID:      fmt.Sprintf("harvest-%d", crop.ID),
			Type:    model.AlertTask,
			Message: fmt.Sprintf("ผลผลิต %s พร้อมเก็บเกี่ยวแล้ว", crop.Name),
		})
	}
	return alerts, nil
}
