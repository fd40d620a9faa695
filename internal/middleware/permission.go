package middleware

import (
	"net/http"

	"farm-service/internal/model"
	"farm-service/internal/permission"
	"farm-service/pkg/database"
	"farm-service/pkg/logger"
	"farm-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// Require gates a route on one module action. The caller's role row
// is resolved per request, so revoking a permission takes effect on
// the next call without re-login. This check is the authoritative
// one; handlers behind it do not re-check.
func Require(module, action string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			log := logger.FromContext(c)

			roleID, ok := RoleIDFromContext(c)
			if !ok {
				log.Warn("Permission check without authenticated role")
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing authorization token"})
			}

			var role model.Role
			if result := database.GetDB().First(&role, roleID); result.Error != nil {
				log.Error("Role not found for authenticated user",
					zap.Uint("role_id", roleID),
					zap.Error(result.Error))
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "user role no longer exists"})
			}

			perms := permission.Evaluate(role.Permissions.Data(), module)
			if !perms.Allows(action) {
				log.Warn("Permission denied",
					zap.String("module", module),
					zap.String("action", action),
					zap.String("role", role.Name))
				prometheus.RecordPermissionDenied(module, action)
				return c.JSON(http.StatusForbidden, echo.Map{"error": "you do not have permission to " + action + " in " + module})
			}

			return next(c)
		}
	}
}
