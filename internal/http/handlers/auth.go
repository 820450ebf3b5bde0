package handlers

import (
	"net/http"
	"sync"

	"fleetops/internal/http/middleware"
	"fleetops/internal/services"

	"github.com/gin-gonic/gin"
)

var (
	authMu  sync.RWMutex
	authSvc services.AuthService
)

// SetAuthService installs the token settings used by Login.
func SetAuthService(s services.AuthService) {
	authMu.Lock()
	defer authMu.Unlock()
	authSvc = s
}

func currentAuth(c *gin.Context) services.AuthService {
	authMu.RLock()
	svc := authSvc
	authMu.RUnlock()
	svc.RequestID = middleware.GetRequestID(c)
	return svc
}

// POST /api/auth/login
func Login(c *gin.Context) {
	var req services.LoginInput
	if !BindJSONOrError(c, &req) {
		return
	}
	res, err := currentAuth(c).Login(c.Request.Context(), req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// GET /api/auth/me
func Me(c *gin.Context) {
	rc, ok := caller(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, rc)
}
