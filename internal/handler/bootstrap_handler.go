package handler

import (
	"net/http"
	"time"

	"farm-service/internal/middleware"
	"farm-service/internal/model"
	"farm-service/internal/permission"
	"farm-service/pkg/database"
	"farm-service/pkg/logger"
	"farm-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// Snapshot is the full-farm state returned by one bootstrap load.
// Clients re-fetch it wholesale after every mutation.
type Snapshot struct {
	Crops          []model.Crop               `json:"crops"`
	Devices        []model.Device             `json:"devices"`
	Environment    []model.EnvironmentReading `json:"environment"`
	LedgerEntries  []model.LedgerEntry        `json:"ledgerEntries"`
	Plots          []model.Plot               `json:"plots"`
	ActivityLogs   []model.ActivityLog        `json:"activityLogs"`
	InventoryItems []model.InventoryItem      `json:"inventoryItems"`
	Employees      []model.Employee           `json:"employees"`
	Payrolls       []model.PayrollEntry       `json:"payrolls"`
	TimeLogs       []model.TimeLog            `json:"timeLogs"`
	LeaveRequests  []model.LeaveRequest       `json:"leaveRequests"`
	Tasks          []model.AssignedTask       `json:"tasks"`
	Customers      []model.Customer           `json:"customers"`
	SalesOrders    []model.SalesOrder         `json:"salesOrders"`
	Users          []model.User               `json:"users"`
	Roles          []model.Role               `json:"roles"`
	FarmInfo       model.FarmInfo             `json:"farmInfo"`
	Permissions    permission.Map             `json:"permissions"`
}

// Bootstrap loads every farm table concurrently and returns the whole
// snapshot, or fails as a unit: any sub-read error discards all
// partial results.
func Bootstrap(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.BootstrapCounter.Inc()
	defer prometheus.TrackDBOperation("bootstrap")(time.Now())

	db := database.GetDB()
	var snap Snapshot

	loads := []func(*gorm.DB) error{
		func(db *gorm.DB) error { return db.Order("created_at desc").Find(&snap.Crops).Error },
		func(db *gorm.DB) error { return db.Order("created_at desc").Find(&snap.Devices).Error },
		func(db *gorm.DB) error { return db.Order("id").Find(&snap.Environment).Error },
		func(db *gorm.DB) error { return db.Order("date desc").Find(&snap.LedgerEntries).Error },
		func(db *gorm.DB) error { return db.Order("created_at desc").Find(&snap.Plots).Error },
		func(db *gorm.DB) error { return db.Order("date desc").Find(&snap.ActivityLogs).Error },
		func(db *gorm.DB) error { return db.Order("name").Find(&snap.InventoryItems).Error },
		func(db *gorm.DB) error { return db.Order("first_name").Find(&snap.Employees).Error },
		func(db *gorm.DB) error { return db.Order("pay_date desc").Find(&snap.Payrolls).Error },
		func(db *gorm.DB) error { return db.Order("timestamp desc").Find(&snap.TimeLogs).Error },
		func(db *gorm.DB) error { return db.Order("created_at desc").Find(&snap.LeaveRequests).Error },
		func(db *gorm.DB) error { return db.Order("due_date").Find(&snap.Tasks).Error },
		func(db *gorm.DB) error { return db.Order("name").Find(&snap.Customers).Error },
		func(db *gorm.DB) error { return db.Order("order_date desc").Find(&snap.SalesOrders).Error },
		func(db *gorm.DB) error { return db.Order("id").Find(&snap.Users).Error },
		func(db *gorm.DB) error { return db.Order("id").Find(&snap.Roles).Error },
		func(db *gorm.DB) error {
			var setting model.FarmSetting
			if err := db.First(&setting, model.FarmSettingID).Error; err != nil {
				return err
			}
			snap.FarmInfo = setting.Info.Data()
			return nil
		},
	}

	// One read per table, all in flight at once. Errors are counted
	// rather than short-circuited so the failure message reflects the
	// whole load.
	errs := make([]error, len(loads))
	var g errgroup.Group
	for i, load := range loads {
		i, load := i, load
		g.Go(func() error {
			errs[i] = load(db.Session(&gorm.Session{NewDB: true}))
			return nil
		})
	}
	_ = g.Wait()

	failed := 0
	for _, err := range errs {
		if err != nil {
			failed++
			log.Error("Bootstrap sub-read failed", zap.Error(err))
		}
	}
	if failed > 0 {
		prometheus.BootstrapErrorCounter.Inc()
		log.Error("Bootstrap aborted", zap.Int("failed_reads", failed), zap.Int("total_reads", len(loads)))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "failed to fetch farm data",
			"failures": failed,
		})
	}

	// The caller's own permission map rides along so a fresh session
	// needs no extra round trip.
	if roleID, ok := middleware.RoleIDFromContext(c); ok {
		var role model.Role
		if result := db.First(&role, roleID); result.Error == nil {
			snap.Permissions = role.Permissions.Data()
		}
	}

	log.Info("Bootstrap completed",
		zap.Int("crops", len(snap.Crops)),
		zap.Int("employees", len(snap.Employees)),
		zap.Int("orders", len(snap.SalesOrders)))
	return c.JSON(http.StatusOK, snap)
}
