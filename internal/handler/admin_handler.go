package handler

import (
	"net/http"

	"farm-service/internal/model"
	"farm-service/internal/permission"
	"farm-service/internal/store"
	"farm-service/pkg/database"
	"farm-service/pkg/logger"
	"farm-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/datatypes"
)

// ListUsers handles retrieving all login accounts
func ListUsers(c echo.Context) error {
	log := logger.FromContext(c)

	var users []model.User
	if result := database.GetDB().Order("username").Find(&users); result.Error != nil {
		log.Error("Failed to list users", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to retrieve users"})
	}

	return c.JSON(http.StatusOK, users)
}

// UpdateUserRole handles moving a user to a different role
func UpdateUserRole(c echo.Context) error {
	log := logger.FromContext(c)

	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid user id"})
	}

	var req struct {
		RoleID uint `json:"roleId"`
	}
	if err := c.Bind(&req); err != nil || req.RoleID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "roleId is required"})
	}

	db := database.GetDB()

	user, err := store.FindByID[model.User](db, id)
	if err != nil {
		if err == store.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "User not found"})
		}
		log.Error("Failed to load user", zap.Uint("user_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to update user"})
	}

	if _, err := store.FindByID[model.Role](db, req.RoleID); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "referenced role does not exist"})
	}

	user.RoleID = req.RoleID
	if err := store.Upsert(db, user); err != nil {
		log.Error("Failed to update user role", zap.Uint("user_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to update user"})
	}

	prometheus.RecordEntityOperation("users", "save")
	log.Info("User role updated", zap.Uint("user_id", id), zap.Uint("role_id", req.RoleID))
	return c.JSON(http.StatusOK, user)
}

// ListRoles handles retrieving all roles with their permission maps
func ListRoles(c echo.Context) error {
	log := logger.FromContext(c)

	var roles []model.Role
	if result := database.GetDB().Order("id").Find(&roles); result.Error != nil {
		log.Error("Failed to list roles", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to retrieve roles"})
	}

	return c.JSON(http.StatusOK, roles)
}

// SaveRole handles creating or updating a role. The permission map is
// normalized before it is stored, so an action grant always carries
// view access and unknown modules never persist.
func SaveRole(c echo.Context) error {
	log := logger.FromContext(c)

	var role model.Role
	if err := c.Bind(&role); err != nil {
		log.Error("Invalid role data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}

	if role.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
	}

	role.Permissions = datatypes.NewJSONType(permission.Normalize(role.Permissions.Data()))

	if err := store.Upsert(database.GetDB(), &role); err != nil {
		log.Error("Failed to save role", zap.String("name", role.Name), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to save role: " + err.Error()})
	}

	prometheus.RecordEntityOperation("roles", "save")
	log.Info("Role saved", zap.Uint("role_id", role.ID), zap.String("name", role.Name))
	return c.JSON(http.StatusOK, role)
}

// DeleteRole handles deleting a role. A role still assigned to users
// cannot be removed.
func DeleteRole(c echo.Context) error {
	log := logger.FromContext(c)

	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid role id"})
	}

	db := database.GetDB()

	userRefs, err := store.CountWhere[model.User](db, "role_id = ?", id)
	if err != nil {
		log.Error("Failed to check role references", zap.Uint("role_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to delete role"})
	}
	if userRefs > 0 {
		return c.JSON(http.StatusConflict, echo.Map{"error": "cannot delete a role that is assigned to users"})
	}

	if err := store.DeleteByID[model.Role](db, id); err != nil {
		if err == store.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Role not found"})
		}
		log.Error("Failed to delete role", zap.Uint("role_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to delete role"})
	}

	prometheus.RecordEntityOperation("roles", "delete")
	log.Info("Role deleted", zap.Uint("role_id", id))
	return c.JSON(http.StatusOK, echo.Map{"message": "Role deleted successfully"})
}
