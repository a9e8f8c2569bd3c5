package middleware

import (
	"context"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/smartedu-api/internal/models"
	appErrors "github.com/noah-isme/smartedu-api/pkg/errors"
	"github.com/noah-isme/smartedu-api/pkg/response"
)

// SelfRole grants access when the route parameter names the caller.
const SelfRole = "SELF"

// SelfResolver reports whether the request targets the caller's own record.
type SelfResolver func(c *gin.Context, claims *models.JWTClaims) bool

// StudentOwnerLookup finds the student row owned by a user.
type StudentOwnerLookup interface {
	FindByUserID(ctx context.Context, userID int64) (*models.StudentDetail, error)
}

// UserParamSelf matches the caller's user id against the route parameter.
func UserParamSelf(param string) SelfResolver {
	return func(c *gin.Context, claims *models.JWTClaims) bool {
		id, err := strconv.ParseInt(c.Param(param), 10, 64)
		return err == nil && id == claims.UserID
	}
}

// StudentParamSelf matches the caller's own student id against the route parameter.
func StudentParamSelf(students StudentOwnerLookup, param string) SelfResolver {
	return func(c *gin.Context, claims *models.JWTClaims) bool {
		id, err := strconv.ParseInt(c.Param(param), 10, 64)
		if err != nil {
			return false
		}
		student, err := students.FindByUserID(c.Request.Context(), claims.UserID)
		return err == nil && student != nil && student.ID == id
	}
}

// RBAC enforces role-based access control for routes. SELF compares the
// caller's user id with the :id parameter.
func RBAC(allowed ...string) gin.HandlerFunc {
	return RBACWithSelf(UserParamSelf("id"), allowed...)
}

// RBACWithSelf is RBAC with a custom SELF check.
func RBACWithSelf(self SelfResolver, allowed ...string) gin.HandlerFunc {
	allowSelf := false
	allowedRoles := make(map[models.UserRole]struct{})
	for _, a := range allowed {
		if a == SelfRole {
			allowSelf = true
			continue
		}
		allowedRoles[models.UserRole(a)] = struct{}{}
	}

	return func(c *gin.Context) {
		claims := Claims(c)
		if claims == nil {
			response.Error(c, appErrors.ErrUnauthorized)
			c.Abort()
			return
		}

		if _, ok := allowedRoles[claims.Role]; ok {
			c.Next()
			return
		}

		if allowSelf && self != nil && self(c, claims) {
			c.Next()
			return
		}

		response.Error(c, appErrors.ErrForbidden)
		c.Abort()
	}
}

// RequireRoles is a helper that accepts a list of roles.
func RequireRoles(roles ...models.UserRole) gin.HandlerFunc {
	allowed := make([]string, len(roles))
	for i, r := range roles {
		allowed[i] = string(r)
	}
	return RBAC(allowed...)
}
