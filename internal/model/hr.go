package model

import (
	"time"

	"gorm.io/datatypes"
)

// Leave request types and statuses. Types are in Thai as submitted.
const (
	LeaveSick     = "ลาป่วย"
	LeavePersonal = "ลากิจ"
	LeaveVacation = "ลาพักร้อน"

	LeavePending  = "Pending"
	LeaveApproved = "Approved"
	LeaveRejected = "Rejected"
)

// Time log entry types.
const (
	ClockIn  = "clock-in"
	ClockOut = "clock-out"
)

// Assigned task statuses.
const (
	TaskToDo       = "To Do"
	TaskInProgress = "In Progress"
	TaskDone       = "Done"
)

// Employee is one farm worker's HR record.
type Employee struct {
	ID              uint                         `json:"id" gorm:"primarykey"`
	FirstName       string                       `json:"firstName" gorm:"type:varchar(255);not null"`
	LastName        string                       `json:"lastName" gorm:"type:varchar(255);not null"`
	Nickname        string                       `json:"nickname" gorm:"type:varchar(100)"`
	DateOfBirth     *string                      `json:"dateOfBirth,omitempty" gorm:"type:date"`
	NationalID      string                       `json:"nationalId" gorm:"type:varchar(32)"`
	Address         string                       `json:"address" gorm:"type:text"`
	Phone           string                       `json:"phone" gorm:"type:varchar(32)"`
	Email           string                       `json:"email" gorm:"type:varchar(255);uniqueIndex"`
	StartDate       string                       `json:"startDate" gorm:"type:date;not null"`
	Position        string                       `json:"position" gorm:"type:varchar(100);not null"`
	Salary          float64                      `json:"salary" gorm:"default:0"`
	ContractURL     *string                      `json:"contractUrl,omitempty" gorm:"type:text"`
	TrainingHistory datatypes.JSONSlice[string]  `json:"trainingHistory,omitempty"`
	CreatedAt       time.Time                    `json:"created_at"`
	UpdatedAt       time.Time                    `json:"updated_at"`
}

// PayrollEntry is one period's pay for an employee.
type PayrollEntry struct {
	ID         uint      `json:"id" gorm:"primarykey"`
	EmployeeID uint      `json:"employeeId" gorm:"index;not null"`
	Period     string    `json:"period" gorm:"type:varchar(64);not null"`
	PayDate    string    `json:"payDate" gorm:"type:date;not null"`
	GrossPay   float64   `json:"grossPay" gorm:"not null"`
	Deductions float64   `json:"deductions" gorm:"not null;default:0"`
	NetPay     float64   `json:"netPay" gorm:"not null"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// TimeLog records a clock-in or clock-out event.
type TimeLog struct {
	ID         uint      `json:"id" gorm:"primarykey"`
	EmployeeID uint      `json:"employeeId" gorm:"index;not null"`
	Timestamp  string    `json:"timestamp" gorm:"type:timestamptz;not null"`
	Type       string    `json:"type" gorm:"type:varchar(16);not null"`
	CreatedAt  time.Time `json:"created_at"`
}

// LeaveRequest is an employee's leave application.
type LeaveRequest struct {
	ID         uint      `json:"id" gorm:"primarykey"`
	EmployeeID uint      `json:"employeeId" gorm:"index;not null"`
	LeaveType  string    `json:"leaveType" gorm:"type:varchar(32);not null"`
	StartDate  string    `json:"startDate" gorm:"type:date;not null"`
	EndDate    string    `json:"endDate" gorm:"type:date;not null"`
	Reason     string    `json:"reason" gorm:"type:text"`
	Status     string    `json:"status" gorm:"type:varchar(16);not null;default:'Pending'"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// AssignedTask is a work item assigned to an employee.
type AssignedTask struct {
	ID              uint      `json:"id" gorm:"primarykey"`
	EmployeeID      uint      `json:"employeeId" gorm:"index;not null"`
	TaskDescription string    `json:"taskDescription" gorm:"type:text;not null"`
	AssignedDate    string    `json:"assignedDate" gorm:"type:date;not null"`
	DueDate         *string   `json:"dueDate,omitempty" gorm:"type:date"`
	Status          string    `json:"status" gorm:"type:varchar(16);not null;default:'To Do'"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}
