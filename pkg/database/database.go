package database

import (
	"fmt"

	"farm-service/internal/model"
	"farm-service/pkg/config"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var db *gorm.DB

// InitDB initializes the database connection with configuration and runs migrations
func InitDB(cfg *config.Config) error {
	var err error

	// Configure GORM logger
	logLevel := logger.Error
	if cfg.Server.Env == "development" {
		logLevel = logger.Info
	}

	// Configure Postgres options
	pgConfig := postgres.Config{
		DSN:                  cfg.DB.GetDSN(),
		PreferSimpleProtocol: true, // Disables implicit prepared statement usage
	}

	// Open connection
	db, err = gorm.Open(postgres.New(pgConfig), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	// Get generic database object SQL
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database object: %w", err)
	}

	// Set connection pool settings from config
	sqlDB.SetMaxIdleConns(cfg.DB.MaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.DB.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(cfg.DB.ConnMaxLifetime)

	if err := Migrate(db); err != nil {
		return err
	}

	return Seed(db)
}

// GetDB returns the database instance
func GetDB() *gorm.DB {
	return db
}

// SetDB replaces the database instance. Used by tests that run against
// an in-memory database.
func SetDB(d *gorm.DB) {
	db = d
}

// Migrate runs schema migrations for every farm table.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.Crop{},
		&model.Device{},
		&model.EnvironmentReading{},
		&model.LedgerEntry{},
		&model.Plot{},
		&model.ActivityLog{},
		&model.InventoryItem{},
		&model.Employee{},
		&model.PayrollEntry{},
		&model.TimeLog{},
		&model.LeaveRequest{},
		&model.AssignedTask{},
		&model.Customer{},
		&model.SalesOrder{},
		&model.Role{},
		&model.User{},
		&model.FarmSetting{},
	); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}
	return nil
}

// Seed inserts the stock roles, the settings row and the demo
// environment curve when the corresponding tables are empty.
func Seed(db *gorm.DB) error {
	if err := seedRoles(db); err != nil {
		return err
	}
	if err := seedSettings(db); err != nil {
		return err
	}
	return seedEnvironment(db)
}
