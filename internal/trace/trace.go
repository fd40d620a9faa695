// Package trace resolves public traceability reference codes. A code
// printed on a product label has the form SF-GAP-<logId>-<plotId>-<cropId>.
// The log id is the anchor; the plot and crop are resolved from the
// harvest log itself, so a tampered tail cannot point the chain at a
// different plot or crop.
package trace

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"farm-service/internal/model"

	"gorm.io/gorm"
)

// Resolution failures, in lookup order.
var (
	ErrBadCode      = errors.New("malformed reference code")
	ErrLogNotFound  = errors.New("harvest record not found")
	ErrNotHarvest   = errors.New("referenced activity is not a harvest")
	ErrPlotNotFound = errors.New("plot not found")
	ErrPlotNoCrop   = errors.New("plot has no current crop")
	ErrCropNotFound = errors.New("crop not found")
)

// Result is the resolved traceability chain behind one code.
type Result struct {
	Code     string            `json:"code"`
	Harvest  model.ActivityLog `json:"harvest"`
	Plot     model.Plot        `json:"plot"`
	Crop     model.Crop        `json:"crop"`
	FarmInfo model.FarmInfo    `json:"farmInfo"`
}

// ParseCode extracts the harvest log id from a reference code. The
// code must carry the SF-GAP prefix and at least three id segments.
func ParseCode(code string) (uint, error) {
	parts := strings.Split(strings.TrimSpace(code), "-")
	if len(parts) < 5 || parts[0] != "SF" || parts[1] != "GAP" {
		return 0, ErrBadCode
	}
	logID, err := strconv.ParseUint(parts[2], 10, 32)
	if err != nil || logID == 0 {
		return 0, ErrBadCode
	}
	return uint(logID), nil
}

// Code builds the reference code for a harvest log.
func Code(logID, plotID, cropID uint) string {
	return fmt.Sprintf("SF-GAP-%d-%d-%d", logID, plotID, cropID)
}

// Resolve walks the chain behind a reference code: harvest log, then
// the plot it was recorded on, then the crop the plot is growing.
func Resolve(db *gorm.DB, code string) (*Result, error) {
	logID, err := ParseCode(code)
	if err != nil {
		return nil, err
	}

	var harvest model.ActivityLog
	if result := db.First(&harvest, logID); result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrLogNotFound
		}
		return nil, result.Error
	}
	if harvest.ActivityType != model.ActivityHarvest {
		return nil, ErrNotHarvest
	}

	var plot model.Plot
	if result := db.First(&plot, harvest.PlotID); result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrPlotNotFound
		}
		return nil, result.Error
	}
	if plot.CurrentCropID == nil {
		return nil, ErrPlotNoCrop
	}

	var crop model.Crop
	if result := db.First(&crop, *plot.CurrentCropID); result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrCropNotFound
		}
		return nil, result.Error
	}

	res := &Result{
		Code:    Code(harvest.ID, plot.ID, crop.ID),
		Harvest: harvest,
		Plot:    plot,
		Crop:    crop,
	}

	var setting model.FarmSetting
	if result := db.First(&setting, model.FarmSettingID); result.Error == nil {
		res.FarmInfo = setting.Info.Data()
	}
	return res, nil
}
