package handler

import (
	"net/http"

	"farm-service/internal/model"
	"farm-service/pkg/database"
	"farm-service/pkg/logger"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// CropProfit is a per-crop income and expense rollup.
type CropProfit struct {
	CropID   uint    `json:"cropId"`
	CropName string  `json:"cropName"`
	Income   float64 `json:"income"`
	Expense  float64 `json:"expense"`
	Net      float64 `json:"net"`
}

// buildProfitability aggregates the ledger per crop. Entries without
// a crop link are left out of the report.
func buildProfitability(db *gorm.DB) ([]CropProfit, error) {
	var crops []model.Crop
	if result := db.Order("name").Find(&crops); result.Error != nil {
		return nil, result.Error
	}

	var entries []model.LedgerEntry
	if result := db.Where("crop_id IS NOT NULL").Find(&entries); result.Error != nil {
		return nil, result.Error
	}

	byCrop := make(map[uint]*CropProfit, len(crops))
	report := make([]CropProfit, len(crops))
	for i, crop := range crops {
		report[i] = CropProfit{CropID: crop.ID, CropName: crop.Name}
		byCrop[crop.ID] = &report[i]
	}

	for _, entry := range entries {
		row, ok := byCrop[*entry.CropID]
		if !ok {
			continue
		}
		switch entry.Type {
		case model.LedgerIncome:
			row.Income += entry.Amount
		case model.LedgerExpense:
			row.Expense += entry.Amount
		}
	}
	for i := range report {
		report[i].Net = report[i].Income - report[i].Expense
	}
	return report, nil
}

// GetProfitabilityReport handles the per-crop profitability rollup
func GetProfitabilityReport(c echo.Context) error {
	log := logger.FromContext(c)

	report, err := buildProfitability(database.GetDB())
	if err != nil {
		log.Error("Failed to build profitability report", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to build report"})
	}

	return c.JSON(http.StatusOK, report)
}
