package handler

import (
	"fmt"
	"net/http"
	"strings"

	"farm-service/internal/model"
	"farm-service/internal/store"
	"farm-service/internal/trace"
	"farm-service/pkg/database"
	"farm-service/pkg/logger"

	"github.com/labstack/echo/v4"
	"github.com/skip2/go-qrcode"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// invoiceLine is an order line expanded with the crop name for print.
type invoiceLine struct {
	model.OrderItem
	CropName string  `json:"cropName"`
	Amount   float64 `json:"amount"`
}

func loadFarmInfo(db *gorm.DB) model.FarmInfo {
	var setting model.FarmSetting
	if result := db.First(&setting, model.FarmSettingID); result.Error != nil {
		return model.FarmInfo{}
	}
	return setting.Info.Data()
}

// GetInvoice handles assembling a printable invoice for a sales order
func GetInvoice(c echo.Context) error {
	log := logger.FromContext(c)

	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid order id"})
	}

	db := database.GetDB()

	order, err := store.FindByID[model.SalesOrder](db, id)
	if err != nil {
		if err == store.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Sales order not found"})
		}
		log.Error("Failed to load order", zap.Uint("order_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to build invoice"})
	}

	customer, err := store.FindByID[model.Customer](db, order.CustomerID)
	if err != nil {
		log.Error("Failed to load customer for invoice",
			zap.Uint("order_id", id),
			zap.Uint("customer_id", order.CustomerID),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to build invoice"})
	}

	lines := make([]invoiceLine, 0, len(order.Items))
	for _, item := range order.Items {
		line := invoiceLine{OrderItem: item, Amount: item.Quantity * item.UnitPrice}
		if crop, err := store.FindByID[model.Crop](db, item.CropID); err == nil {
			line.CropName = crop.Name
		}
		lines = append(lines, line)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"farmInfo": loadFarmInfo(db),
		"order":    order,
		"customer": customer,
		"lines":    lines,
	})
}

// GetPayslip handles assembling a printable payslip for a payroll entry
func GetPayslip(c echo.Context) error {
	log := logger.FromContext(c)

	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid payroll id"})
	}

	db := database.GetDB()

	payroll, err := store.FindByID[model.PayrollEntry](db, id)
	if err != nil {
		if err == store.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Payroll entry not found"})
		}
		log.Error("Failed to load payroll", zap.Uint("payroll_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to build payslip"})
	}

	employee, err := store.FindByID[model.Employee](db, payroll.EmployeeID)
	if err != nil {
		log.Error("Failed to load employee for payslip",
			zap.Uint("payroll_id", id),
			zap.Uint("employee_id", payroll.EmployeeID),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to build payslip"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"farmInfo": loadFarmInfo(db),
		"payroll":  payroll,
		"employee": employee,
	})
}

// loadLabel resolves the harvest log, plot and crop behind a product
// label. Labels only exist for harvest activities on a plot with a
// current crop.
func loadLabel(db *gorm.DB, logID uint) (*model.ActivityLog, *model.Plot, *model.Crop, error) {
	harvest, err := store.FindByID[model.ActivityLog](db, logID)
	if err != nil {
		return nil, nil, nil, err
	}
	if harvest.ActivityType != model.ActivityHarvest {
		return nil, nil, nil, trace.ErrNotHarvest
	}
	plot, err := store.FindByID[model.Plot](db, harvest.PlotID)
	if err != nil {
		return nil, nil, nil, err
	}
	if plot.CurrentCropID == nil {
		return nil, nil, nil, trace.ErrPlotNoCrop
	}
	crop, err := store.FindByID[model.Crop](db, *plot.CurrentCropID)
	if err != nil {
		return nil, nil, nil, err
	}
	return harvest, plot, crop, nil
}

// GetLabel handles assembling a printable product label for a harvest log
func GetLabel(c echo.Context) error {
	log := logger.FromContext(c)

	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid activity log id"})
	}

	db := database.GetDB()
	harvest, plot, crop, err := loadLabel(db, id)
	if err != nil {
		if err == store.ErrNotFound || err == trace.ErrNotHarvest || err == trace.ErrPlotNoCrop {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "no label for this activity log"})
		}
		log.Error("Failed to build label", zap.Uint("log_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to build label"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"farmInfo": loadFarmInfo(db),
		"harvest":  harvest,
		"plot":     plot,
		"crop":     crop,
		"refCode":  trace.Code(harvest.ID, plot.ID, crop.ID),
	})
}

// GetLabelQR handles rendering the label QR code as a PNG. The QR
// carries a human-readable summary plus the reference code, so a
// plain scanner app shows the provenance without calling the API.
func GetLabelQR(c echo.Context) error {
	log := logger.FromContext(c)

	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid activity log id"})
	}

	db := database.GetDB()
	harvest, plot, crop, err := loadLabel(db, id)
	if err != nil {
		if err == store.ErrNotFound || err == trace.ErrNotHarvest || err == trace.ErrPlotNoCrop {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "no label for this activity log"})
		}
		log.Error("Failed to build label QR", zap.Uint("log_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to build label"})
	}

	info := loadFarmInfo(db)
	content := strings.Join([]string{
		"Farm: " + info.Name,
		"Product: " + crop.Name,
		"Plot: " + plot.Name,
		"Harvest Date: " + harvest.Date,
		"Operator: " + harvest.Personnel,
		fmt.Sprintf("Log ID: %d", harvest.ID),
		"Ref: " + trace.Code(harvest.ID, plot.ID, crop.ID),
	}, "\n")

	png, err := qrcode.Encode(content, qrcode.Medium, 256)
	if err != nil {
		log.Error("Failed to encode QR", zap.Uint("log_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to encode QR code"})
	}

	return c.Blob(http.StatusOK, "image/png", png)
}
