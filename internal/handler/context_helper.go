package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/smartedu-api/internal/middleware"
	"github.com/noah-isme/smartedu-api/internal/models"
	"github.com/noah-isme/smartedu-api/internal/service"
	appErrors "github.com/noah-isme/smartedu-api/pkg/errors"
)

func claimsFromContext(c *gin.Context) *models.JWTClaims {
	return middleware.Claims(c)
}

// callerFromContext returns the verified caller, or nil for anonymous requests.
func callerFromContext(c *gin.Context) *service.Caller {
	claims := claimsFromContext(c)
	if claims == nil {
		return nil
	}
	return &service.Caller{UserID: claims.UserID, Role: claims.Role}
}

func int64Param(c *gin.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, appErrors.Clone(appErrors.ErrValidation, "invalid "+name)
	}
	return id, nil
}

func bindError(err error) error {
	return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid payload")
}
