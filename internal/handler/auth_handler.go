package handler

import (
	"net/http"
	"strings"
	"time"

	"farm-service/internal/model"
	"farm-service/internal/permission"
	"farm-service/pkg/database"
	"farm-service/pkg/jwtutil"
	"farm-service/pkg/logger"
	"farm-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Register creates a login plus its employee profile. The very first
// account in an empty system becomes Admin, everyone after gets the
// restricted Worker role, matching how the farm was provisioned.
func Register(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.AuthAttemptsCounter.Inc()

	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse registration request", zap.Error(err))
		prometheus.RecordAuthError("invalid_request")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	if req.Email == "" || req.Password == "" {
		log.Error("Invalid registration data", zap.String("email", req.Email))
		prometheus.RecordAuthError("incomplete_registration")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "email and password are required"})
	}

	db := database.GetDB()

	// Check if user already exists
	var existing model.User
	if result := db.Where("username = ?", req.Email).First(&existing); result.Error == nil {
		log.Error("User already exists", zap.String("email", req.Email))
		prometheus.RecordAuthError("email_already_exists")
		return c.JSON(http.StatusConflict, echo.Map{"error": "email already registered"})
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Error("Failed to hash password", zap.Error(err))
		prometheus.RecordAuthError("password_hash_failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "registration failed"})
	}

	var userCount int64
	if err := db.Model(&model.User{}).Count(&userCount).Error; err != nil {
		log.Error("Failed to count users", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "registration failed"})
	}

	roleName := model.RoleWorker
	if userCount == 0 {
		roleName = model.RoleAdmin
	}
	var role model.Role
	if result := db.Where("name = ?", roleName).First(&role); result.Error != nil {
		log.Error("Stock role missing", zap.String("role", roleName), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "registration failed"})
	}

	// Provision the employee profile and the user row together
	var user model.User
	err = db.Transaction(func(tx *gorm.DB) error {
		employee := model.Employee{
			FirstName: "New",
			LastName:  "Employee",
			Email:     req.Email,
			Position:  "Unassigned",
			StartDate: time.Now().Format("2006-01-02"),
		}
		if err := tx.Create(&employee).Error; err != nil {
			return err
		}

		user = model.User{
			Username:     req.Email,
			PasswordHash: string(hashedPassword),
			EmployeeID:   employee.ID,
			RoleID:       role.ID,
		}
		return tx.Create(&user).Error
	})
	if err != nil {
		log.Error("Failed to create user", zap.String("email", req.Email), zap.Error(err))
		prometheus.RecordAuthError("user_create_failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "registration failed"})
	}

	log.Info("User registered",
		zap.String("email", req.Email),
		zap.String("role", roleName),
		zap.Uint("user_id", user.ID))
	prometheus.AuthSuccessCounter.Inc()
	return c.JSON(http.StatusCreated, echo.Map{
		"user": echo.Map{
			"id":          user.ID,
			"username":    user.Username,
			"employee_id": user.EmployeeID,
			"role_id":     user.RoleID,
		},
	})
}

// Login verifies credentials and issues a JWT.
func Login(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.AuthAttemptsCounter.Inc()

	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse login request", zap.Error(err))
		prometheus.RecordAuthError("invalid_request")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	req.Email = strings.TrimSpace(strings.ToLower(req.Email))

	var user model.User
	result := database.GetDB().Where("username = ?", req.Email).First(&user)
	if result.Error != nil {
		log.Error("User not found", zap.String("email", req.Email))
		prometheus.RecordAuthError("user_not_found")
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		log.Error("Invalid password", zap.String("email", req.Email))
		prometheus.RecordAuthError("invalid_password")
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}

	token, err := jwtutil.GenerateToken(user.Username, user.ID, user.EmployeeID, user.RoleID)
	if err != nil {
		log.Error("Failed to generate token", zap.Error(err))
		prometheus.RecordAuthError("token_generation_failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "token error"})
	}

	log.Info("User logged in", zap.String("email", user.Username), zap.Uint("user_id", user.ID))
	prometheus.AuthSuccessCounter.Inc()
	return c.JSON(http.StatusOK, echo.Map{
		"token": token,
		"user": echo.Map{
			"id":          user.ID,
			"username":    user.Username,
			"employee_id": user.EmployeeID,
			"role_id":     user.RoleID,
		},
	})
}

// Me returns the caller's user row merged with its resolved
// permission map. A valid token whose user or role row has vanished
// is fatal for the session: two sequential lookups, never a join.
func Me(c echo.Context) error {
	log := logger.FromContext(c)

	email, _ := c.Get("email").(string)

	var user model.User
	if result := database.GetDB().Where("username = ?", email).First(&user); result.Error != nil {
		log.Error("User profile not found after login", zap.String("email", email), zap.Error(result.Error))
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "user profile not found, please sign in again"})
	}

	var role model.Role
	if result := database.GetDB().First(&role, user.RoleID); result.Error != nil {
		log.Error("Role not found for user", zap.Uint("role_id", user.RoleID), zap.Error(result.Error))
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "user role not found, please sign in again"})
	}

	perms := role.Permissions.Data()
	current := model.CurrentUser{
		User:        user,
		Permissions: perms,
		Viewable:    permission.ViewableModules(perms),
	}
	return c.JSON(http.StatusOK, current)
}
