package database

import (
	"farm-service/internal/model"
	"farm-service/internal/permission"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func fullAccess() permission.Set {
	return permission.Set{View: true, Create: true, Edit: true, Delete: true}
}

func viewOnly() permission.Set {
	return permission.Set{View: true}
}

// adminPermissions grants everything in every module.
func adminPermissions() permission.Map {
	m := permission.Map{}
	for _, mod := range permission.Modules {
		m[mod] = fullAccess()
	}
	return m
}

// managerPermissions runs the farm day to day but cannot touch the
// admin module and rarely deletes.
func managerPermissions() permission.Map {
	return permission.Map{
		permission.ModuleDashboard:     viewOnly(),
		permission.ModuleCrops:         fullAccess(),
		permission.ModuleEnvironment:   viewOnly(),
		permission.ModuleSmartDevices:  {View: true, Create: true, Edit: true},
		permission.ModuleGap:           {View: true, Create: true, Edit: true},
		permission.ModuleInventory:     {View: true, Create: true, Edit: true},
		permission.ModuleSales:         {View: true, Create: true, Edit: true},
		permission.ModuleHR:            {View: true, Create: true, Edit: true},
		permission.ModuleLedger:        {View: true, Create: true},
		permission.ModuleProfitability: viewOnly(),
		permission.ModuleReports:       viewOnly(),
		permission.ModuleAssistant:     viewOnly(),
		permission.ModuleSettings:      {View: true, Edit: true},
		permission.ModuleAdmin:         {},
	}
}

// workerPermissions sees the field-facing modules and records GAP
// activities, nothing else.
func workerPermissions() permission.Map {
	return permission.Map{
		permission.ModuleDashboard:    viewOnly(),
		permission.ModuleCrops:        viewOnly(),
		permission.ModuleEnvironment:  viewOnly(),
		permission.ModuleSmartDevices: viewOnly(),
		permission.ModuleGap:          {View: true, Create: true},
		permission.ModuleInventory:    viewOnly(),
		permission.ModuleAssistant:    viewOnly(),
	}
}

func seedRoles(db *gorm.DB) error {
	var count int64
	if err := db.Model(&model.Role{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	roles := []model.Role{
		{Name: model.RoleAdmin, Permissions: datatypes.NewJSONType(adminPermissions())},
		{Name: model.RoleFarmManager, Permissions: datatypes.NewJSONType(managerPermissions())},
		{Name: model.RoleWorker, Permissions: datatypes.NewJSONType(workerPermissions())},
	}
	return db.Create(&roles).Error
}

func seedSettings(db *gorm.DB) error {
	var count int64
	if err := db.Model(&model.FarmSetting{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	setting := model.FarmSetting{
		ID: model.FarmSettingID,
		Info: datatypes.NewJSONType(model.FarmInfo{
			Name: "Smile Farm",
		}),
	}
	return db.Create(&setting).Error
}

func seedEnvironment(db *gorm.DB) error {
	var count int64
	if err := db.Model(&model.EnvironmentReading{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	readings := []model.EnvironmentReading{
		{Time: "00:00", Temperature: 22, Humidity: 85, Light: 0},
		{Time: "03:00", Temperature: 21, Humidity: 88, Light: 0},
		{Time: "06:00", Temperature: 24, Humidity: 82, Light: 200},
		{Time: "09:00", Temperature: 28, Humidity: 75, Light: 800},
		{Time: "12:00", Temperature: 32, Humidity: 65, Light: 1500},
		{Time: "15:00", Temperature: 31, Humidity: 68, Light: 1200},
		{Time: "18:00", Temperature: 27, Humidity: 78, Light: 150},
		{Time: "21:00", Temperature: 24, Humidity: 84, Light: 0},
	}
	return db.Create(&readings).Error
}
