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

// ListEmployees handles retrieving all employees
func ListEmployees(c echo.Context) error {
	log := logger.FromContext(c)

	var employees []model.Employee
	if result := database.GetDB().Order("first_name").Find(&employees); result.Error != nil {
		log.Error("Failed to list employees", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to retrieve employees"})
	}

	return c.JSON(http.StatusOK, employees)
}

// SaveEmployee handles creating or updating an employee record
func SaveEmployee(c echo.Context) error {
	log := logger.FromContext(c)

	var employee model.Employee
	if err := c.Bind(&employee); err != nil {
		log.Error("Invalid employee data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}

	if employee.FirstName == "" || employee.LastName == "" || employee.StartDate == "" || employee.Position == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "firstName, lastName, startDate and position are required"})
	}

	if err := store.Upsert(database.GetDB(), &employee); err != nil {
		log.Error("Failed to save employee",
			zap.String("name", employee.FirstName+" "+employee.LastName),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to save employee: " + err.Error()})
	}

	prometheus.RecordEntityOperation("employees", "save")
	log.Info("Employee saved", zap.Uint("employee_id", employee.ID))
	return c.JSON(http.StatusOK, employee)
}

// DeleteEmployee handles deleting an employee. An employee with a
// login account has to lose the account first.
func DeleteEmployee(c echo.Context) error {
	log := logger.FromContext(c)

	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid employee id"})
	}

	db := database.GetDB()

	userRefs, err := store.CountWhere[model.User](db, "employee_id = ?", id)
	if err != nil {
		log.Error("Failed to check user references", zap.Uint("employee_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to delete employee"})
	}
	if userRefs > 0 {
		log.Warn("Employee delete blocked by user account", zap.Uint("employee_id", id))
		return c.JSON(http.StatusConflict, echo.Map{"error": "cannot delete an employee with a login account"})
	}

	if err := store.DeleteByID[model.Employee](db, id); err != nil {
		if err == store.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Employee not found"})
		}
		log.Error("Failed to delete employee", zap.Uint("employee_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to delete employee"})
	}

	prometheus.RecordEntityOperation("employees", "delete")
	log.Info("Employee deleted", zap.Uint("employee_id", id))
	return c.JSON(http.StatusOK, echo.Map{"message": "Employee deleted successfully"})
}

// ListPayrolls handles retrieving payroll entries
func ListPayrolls(c echo.Context) error {
	log := logger.FromContext(c)

	var payrolls []model.PayrollEntry
	if result := database.GetDB().Order("pay_date desc").Find(&payrolls); result.Error != nil {
		log.Error("Failed to list payrolls", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to retrieve payrolls"})
	}

	return c.JSON(http.StatusOK, payrolls)
}

// SavePayroll handles creating or updating a payroll entry. Net pay
// is always recomputed from gross pay and deductions.
func SavePayroll(c echo.Context) error {
	log := logger.FromContext(c)

	var payroll model.PayrollEntry
	if err := c.Bind(&payroll); err != nil {
		log.Error("Invalid payroll data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}

	if payroll.EmployeeID == 0 || payroll.Period == "" || payroll.PayDate == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "employeeId, period and payDate are required"})
	}

	db := database.GetDB()
	if _, err := store.FindByID[model.Employee](db, payroll.EmployeeID); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "referenced employee does not exist"})
	}
	payroll.NetPay = payroll.GrossPay - payroll.Deductions

	if err := store.Upsert(db, &payroll); err != nil {
		log.Error("Failed to save payroll", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to save payroll: " + err.Error()})
	}

	prometheus.RecordEntityOperation("payrolls", "save")
	log.Info("Payroll saved",
		zap.Uint("payroll_id", payroll.ID),
		zap.Uint("employee_id", payroll.EmployeeID),
		zap.String("period", payroll.Period))
	return c.JSON(http.StatusOK, payroll)
}

// ListTimeLogs handles retrieving clock-in/clock-out events
func ListTimeLogs(c echo.Context) error {
	log := logger.FromContext(c)

	query := database.GetDB().Order("timestamp desc")
	if employeeID := c.QueryParam("employee_id"); employeeID != "" {
		query = query.Where("employee_id = ?", employeeID)
	}

	var logs []model.TimeLog
	if result := query.Find(&logs); result.Error != nil {
		log.Error("Failed to list time logs", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to retrieve time logs"})
	}

	return c.JSON(http.StatusOK, logs)
}

// SaveTimeLog handles recording a clock-in or clock-out event
func SaveTimeLog(c echo.Context) error {
	log := logger.FromContext(c)

	var entry model.TimeLog
	if err := c.Bind(&entry); err != nil {
		log.Error("Invalid time log data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}

	if entry.EmployeeID == 0 || entry.Timestamp == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "employeeId and timestamp are required"})
	}
	if entry.Type != model.ClockIn && entry.Type != model.ClockOut {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "type must be clock-in or clock-out"})
	}

	if err := store.Upsert(database.GetDB(), &entry); err != nil {
		log.Error("Failed to save time log", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to save time log: " + err.Error()})
	}

	prometheus.RecordEntityOperation("time_logs", "save")
	return c.JSON(http.StatusOK, entry)
}

// ListLeaveRequests handles retrieving leave requests
func ListLeaveRequests(c echo.Context) error {
	log := logger.FromContext(c)

	var requests []model.LeaveRequest
	if result := database.GetDB().Order("created_at desc").Find(&requests); result.Error != nil {
		log.Error("Failed to list leave requests", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to retrieve leave requests"})
	}

	return c.JSON(http.StatusOK, requests)
}

// SaveLeaveRequest handles filing or updating a leave request
func SaveLeaveRequest(c echo.Context) error {
	log := logger.FromContext(c)

	var req model.LeaveRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid leave request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}

	if req.EmployeeID == 0 || req.StartDate == "" || req.EndDate == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "employeeId, startDate and endDate are required"})
	}
	switch req.LeaveType {
	case model.LeaveSick, model.LeavePersonal, model.LeaveVacation:
	default:
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown leave type"})
	}
	if req.Status == "" {
		req.Status = model.LeavePending
	}

	db := database.GetDB()
	if _, err := store.FindByID[model.Employee](db, req.EmployeeID); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "referenced employee does not exist"})
	}

	if err := store.Upsert(db, &req); err != nil {
		log.Error("Failed to save leave request", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to save leave request: " + err.Error()})
	}

	prometheus.RecordEntityOperation("leave_requests", "save")
	log.Info("Leave request saved",
		zap.Uint("request_id", req.ID),
		zap.Uint("employee_id", req.EmployeeID),
		zap.String("status", req.Status))
	return c.JSON(http.StatusOK, req)
}

// ListTasks handles retrieving assigned tasks
func ListTasks(c echo.Context) error {
	log := logger.FromContext(c)

	var tasks []model.AssignedTask
	if result := database.GetDB().Order("due_date").Find(&tasks); result.Error != nil {
		log.Error("Failed to list tasks", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to retrieve tasks"})
	}

	return c.JSON(http.StatusOK, tasks)
}

// SaveTask handles assigning or updating a task
func SaveTask(c echo.Context) error {
	log := logger.FromContext(c)

	var task model.AssignedTask
	if err := c.Bind(&task); err != nil {
		log.Error("Invalid task data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}

	if task.EmployeeID == 0 || task.TaskDescription == "" || task.AssignedDate == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "employeeId, taskDescription and assignedDate are required"})
	}
	if task.Status == "" {
		task.Status = model.TaskToDo
	}

	db := database.GetDB()
	if _, err := store.FindByID[model.Employee](db, task.EmployeeID); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "referenced employee does not exist"})
	}

	if err := store.Upsert(db, &task); err != nil {
		log.Error("Failed to save task", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to save task: " + err.Error()})
	}

	prometheus.RecordEntityOperation("tasks", "save")
	log.Info("Task saved", zap.Uint("task_id", task.ID), zap.Uint("employee_id", task.EmployeeID))
	return c.JSON(http.StatusOK, task)
}
