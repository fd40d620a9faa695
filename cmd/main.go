package main

import (
	"farm-service/internal/handler"
	mid "farm-service/internal/middleware"
	"farm-service/internal/permission"
	"farm-service/pkg/ai"
	"farm-service/pkg/config"
	"farm-service/pkg/database"
	"farm-service/pkg/jwtutil"
	"farm-service/pkg/logger"
	"farm-service/prometheus"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		// Can't use structured logger yet since it's not initialized
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	logger.InitLogger(appConfig)
	log := logger.GetLogger()
	defer log.Sync()

	log.Info("Starting farm-service",
		zap.String("environment", appConfig.Server.Env),
		zap.String("port", appConfig.Server.Port))

	// Initialize JWT utility
	jwtutil.Initialize(&appConfig.JWT)
	log.Info("JWT utility initialized")

	// Initialize Prometheus metrics
	prometheus.InitMetrics(appConfig)
	log.Info("Prometheus metrics initialized",
		zap.String("metrics_prefix", appConfig.Metrics.Prefix))

	// Initialize database
	err = database.InitDB(appConfig)
	if err != nil {
		log.Fatal("Failed to initialize database", zap.Error(err))
	}
	log.Info("Database connection established")

	// Wire the assistant backend
	if appConfig.AI.APIKey != "" {
		handler.SetAIClient(ai.NewOpenAI(appConfig.AI))
		log.Info("Assistant backend configured", zap.String("model", appConfig.AI.Model))
	} else {
		log.Warn("AI_API_KEY not set, assistant endpoint disabled")
	}

	// Initialize Echo instance
	e := echo.New()

	// Middleware
	e.Use(middleware.Recover())
	e.Use(mid.RequestIDMiddleware)
	e.Use(mid.MetricsMiddleware)

	// Metrics endpoint
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Public traceability lookup, reached from QR codes on product labels
	e.GET("/public/trace/:code", handler.TraceProduct)

	// Authentication routes
	authAPI := e.Group("/api/auth")
	authAPI.POST("/register", handler.Register)
	authAPI.POST("/login", handler.Login)
	authAPI.GET("/me", handler.Me, mid.AuthMiddleware)

	// Everything below requires a valid token
	api := e.Group("/api", mid.AuthMiddleware)

	// Full data load for a fresh session
	api.GET("/bootstrap", handler.Bootstrap)

	// Dashboard
	api.GET("/alerts", handler.ListAlerts, mid.Require(permission.ModuleDashboard, permission.ActionView))

	// Crops
	api.GET("/crops", handler.ListCrops, mid.Require(permission.ModuleCrops, permission.ActionView))
	api.POST("/crops", handler.SaveCrop, mid.Require(permission.ModuleCrops, permission.ActionCreate))
	api.PUT("/crops", handler.SaveCrop, mid.Require(permission.ModuleCrops, permission.ActionEdit))
	api.DELETE("/crops/:id", handler.DeleteCrop, mid.Require(permission.ModuleCrops, permission.ActionDelete))

	// Environment readings
	api.GET("/environment", handler.ListEnvironment, mid.Require(permission.ModuleEnvironment, permission.ActionView))

	// Smart devices
	api.GET("/devices", handler.ListDevices, mid.Require(permission.ModuleSmartDevices, permission.ActionView))
	api.POST("/devices", handler.SaveDevice, mid.Require(permission.ModuleSmartDevices, permission.ActionCreate))
	api.PUT("/devices", handler.SaveDevice, mid.Require(permission.ModuleSmartDevices, permission.ActionEdit))
	api.DELETE("/devices/:id", handler.DeleteDevice, mid.Require(permission.ModuleSmartDevices, permission.ActionDelete))

	// GAP plots and activity logs
	api.GET("/plots", handler.ListPlots, mid.Require(permission.ModuleGap, permission.ActionView))
	api.POST("/plots", handler.SavePlot, mid.Require(permission.ModuleGap, permission.ActionCreate))
	api.PUT("/plots", handler.SavePlot, mid.Require(permission.ModuleGap, permission.ActionEdit))
	api.DELETE("/plots/:id", handler.DeletePlot, mid.Require(permission.ModuleGap, permission.ActionDelete))
	api.GET("/activity-logs", handler.ListActivityLogs, mid.Require(permission.ModuleGap, permission.ActionView))
	api.POST("/activity-logs", handler.SaveActivityLog, mid.Require(permission.ModuleGap, permission.ActionCreate))
	api.PUT("/activity-logs", handler.SaveActivityLog, mid.Require(permission.ModuleGap, permission.ActionEdit))

	// Inventory
	api.GET("/inventory", handler.ListInventoryItems, mid.Require(permission.ModuleInventory, permission.ActionView))
	api.POST("/inventory", handler.SaveInventoryItem, mid.Require(permission.ModuleInventory, permission.ActionCreate))
	api.PUT("/inventory", handler.SaveInventoryItem, mid.Require(permission.ModuleInventory, permission.ActionEdit))
	api.DELETE("/inventory/:id", handler.DeleteInventoryItem, mid.Require(permission.ModuleInventory, permission.ActionDelete))

	// Sales
	api.GET("/customers", handler.ListCustomers, mid.Require(permission.ModuleSales, permission.ActionView))
	api.POST("/customers", handler.SaveCustomer, mid.Require(permission.ModuleSales, permission.ActionCreate))
	api.PUT("/customers", handler.SaveCustomer, mid.Require(permission.ModuleSales, permission.ActionEdit))
	api.DELETE("/customers/:id", handler.DeleteCustomer, mid.Require(permission.ModuleSales, permission.ActionDelete))
	api.GET("/sales-orders", handler.ListSalesOrders, mid.Require(permission.ModuleSales, permission.ActionView))
	api.POST("/sales-orders", handler.SaveSalesOrder, mid.Require(permission.ModuleSales, permission.ActionCreate))
	api.PUT("/sales-orders", handler.SaveSalesOrder, mid.Require(permission.ModuleSales, permission.ActionEdit))
	api.DELETE("/sales-orders/:id", handler.DeleteSalesOrder, mid.Require(permission.ModuleSales, permission.ActionDelete))

	// HR
	api.GET("/employees", handler.ListEmployees, mid.Require(permission.ModuleHR, permission.ActionView))
	api.POST("/employees", handler.SaveEmployee, mid.Require(permission.ModuleHR, permission.ActionCreate))
	api.PUT("/employees", handler.SaveEmployee, mid.Require(permission.ModuleHR, permission.ActionEdit))
	api.DELETE("/employees/:id", handler.DeleteEmployee, mid.Require(permission.ModuleHR, permission.ActionDelete))
	api.GET("/payrolls", handler.ListPayrolls, mid.Require(permission.ModuleHR, permission.ActionView))
	api.POST("/payrolls", handler.SavePayroll, mid.Require(permission.ModuleHR, permission.ActionCreate))
	api.PUT("/payrolls", handler.SavePayroll, mid.Require(permission.ModuleHR, permission.ActionEdit))
	api.GET("/time-logs", handler.ListTimeLogs, mid.Require(permission.ModuleHR, permission.ActionView))
	api.POST("/time-logs", handler.SaveTimeLog, mid.Require(permission.ModuleHR, permission.ActionCreate))
	api.GET("/leave-requests", handler.ListLeaveRequests, mid.Require(permission.ModuleHR, permission.ActionView))
	api.POST("/leave-requests", handler.SaveLeaveRequest, mid.Require(permission.ModuleHR, permission.ActionCreate))
	api.PUT("/leave-requests", handler.SaveLeaveRequest, mid.Require(permission.ModuleHR, permission.ActionEdit))
	api.GET("/tasks", handler.ListTasks, mid.Require(permission.ModuleHR, permission.ActionView))
	api.POST("/tasks", handler.SaveTask, mid.Require(permission.ModuleHR, permission.ActionCreate))
	api.PUT("/tasks", handler.SaveTask, mid.Require(permission.ModuleHR, permission.ActionEdit))

	// Ledger
	api.GET("/ledger", handler.ListLedgerEntries, mid.Require(permission.ModuleLedger, permission.ActionView))
	api.POST("/ledger", handler.SaveLedgerEntry, mid.Require(permission.ModuleLedger, permission.ActionCreate))
	api.PUT("/ledger", handler.SaveLedgerEntry, mid.Require(permission.ModuleLedger, permission.ActionEdit))
	api.DELETE("/ledger/:id", handler.DeleteLedgerEntry, mid.Require(permission.ModuleLedger, permission.ActionDelete))

	// Reports
	api.GET("/reports/profitability", handler.GetProfitabilityReport, mid.Require(permission.ModuleProfitability, permission.ActionView))

	// Printable documents
	api.GET("/documents/invoice/:id", handler.GetInvoice, mid.Require(permission.ModuleReports, permission.ActionView))
	api.GET("/documents/payslip/:id", handler.GetPayslip, mid.Require(permission.ModuleReports, permission.ActionView))
	api.GET("/documents/label/:id", handler.GetLabel, mid.Require(permission.ModuleReports, permission.ActionView))
	api.GET("/documents/label/:id/qr", handler.GetLabelQR, mid.Require(permission.ModuleReports, permission.ActionView))

	// Assistant
	api.POST("/assistant/chat", handler.ChatAssistant, mid.Require(permission.ModuleAssistant, permission.ActionView))

	// Settings
	api.GET("/settings", handler.GetSettings, mid.Require(permission.ModuleSettings, permission.ActionView))
	api.PUT("/settings", handler.SaveSettings, mid.Require(permission.ModuleSettings, permission.ActionEdit))

	// Administration
	api.GET("/users", handler.ListUsers, mid.Require(permission.ModuleAdmin, permission.ActionView))
	api.PUT("/users/:id/role", handler.UpdateUserRole, mid.Require(permission.ModuleAdmin, permission.ActionEdit))
	api.GET("/roles", handler.ListRoles, mid.Require(permission.ModuleAdmin, permission.ActionView))
	api.POST("/roles", handler.SaveRole, mid.Require(permission.ModuleAdmin, permission.ActionCreate))
	api.PUT("/roles", handler.SaveRole, mid.Require(permission.ModuleAdmin, permission.ActionEdit))
	api.DELETE("/roles/:id", handler.DeleteRole, mid.Require(permission.ModuleAdmin, permission.ActionDelete))

	// Start server
	port := appConfig.Server.Port
	log.Info("Starting server", zap.String("port", port))
	if err := e.Start(":" + port); err != nil {
		log.Fatal("Server error", zap.Error(err))
	}
}
