package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/hms/hms-api/internal/model"
	"github.com/hms/hms-api/internal/service/auth"
	apperrors "github.com/hms/hms-api/pkg/errors"
	"github.com/hms/hms-api/pkg/httputil"
)

const (
	ContextUserID   = "user_id"
	ContextUsername = "username"
	ContextRoles    = "roles"
)

type AuthMiddleware struct {
	authService auth.Service
}

func NewAuthMiddleware(authService auth.Service) *AuthMiddleware {
	return &AuthMiddleware{authService: authService}
}

// Authenticate verifies the bearer token and stashes the caller's identity
// in the request context.
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			httputil.RespondWithError(c, apperrors.Unauthorized("missing authorization header"))
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			httputil.RespondWithError(c, apperrors.Unauthorized("invalid authorization format"))
			c.Abort()
			return
		}

		claims, err := m.authService.ValidateToken(parts[1])
		if err != nil {
			httputil.RespondWithError(c, apperrors.Unauthorized("invalid token"))
			c.Abort()
			return
		}

		c.Set(ContextUserID, claims.UserID.String())
		c.Set(ContextUsername, claims.Username)
		c.Set(ContextRoles, claims.Roles)
		c.Next()
	}
}

// RequireRoles allows the request through when the caller holds at least one
// of the listed roles. The allow-list per route group is declared centrally
// in the router.
func (m *AuthMiddleware) RequireRoles(allowed ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		roles, ok := c.Get(ContextRoles)
		if !ok {
			httputil.RespondWithError(c, apperrors.Unauthorized("missing identity"))
			c.Abort()
			return
		}

		callerRoles, ok := roles.([]string)
		if !ok || !HasAnyRole(callerRoles, allowed) {
			httputil.RespondWithError(c, apperrors.Forbidden("insufficient role"))
			c.Abort()
			return
		}
		c.Next()
	}
}

// HasAnyRole reports whether the two role sets intersect.
func HasAnyRole(callerRoles, allowed []string) bool {
	for _, have := range callerRoles {
		for _, want := range allowed {
			if have == want {
				return true
			}
		}
	}
	return false
}

// AllowedClinical is the allow-list shared by the patient, appointment and
// dashboard surfaces.
var AllowedClinical = []string{model.RoleAdmin, model.RoleDoctor, model.RoleNurse, model.RoleReceptionist}

// AllowedRecords gates the medical record and document surfaces.
var AllowedRecords = []string{model.RoleAdmin, model.RoleDoctor, model.RoleNurse}
