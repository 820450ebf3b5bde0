package api

import (
	stdhttp "net/http"
	"time"

	intconfig "fleetops/internal/config"
	h "fleetops/internal/http/handlers"
	"fleetops/internal/http/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

var managers = []string{"admin", "manager"}

func NewRouter(env intconfig.Env, tokens middleware.TokenParser, logger *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(logger), gin.Recovery(), middleware.CORS(env.CORSOrigins))

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Warn("failed to set trusted proxies", zap.Error(err))
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "route not found",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	api := r.Group("/api")
	{
		api.GET("/health", h.Health)

		// Auth
		auth := api.Group("/auth")
		auth.POST("/login", middleware.RateLimitByIP(rate.Every(6*time.Second), 5), h.Login)

		secured := api.Group("", middleware.Auth(tokens))
		secured.GET("/db-check", h.DBCheck)
		secured.GET("/routes", h.Routes)
		secured.GET("/auth/me", h.Me)

		// Persons
		persons := secured.Group("/persons")
		persons.GET("", h.GetPersons)
		persons.POST("", middleware.RequireRoles(managers...), h.CreatePerson)
		persons.PUT("/:id", middleware.RequireRoles(managers...), h.UpdatePerson)
		persons.PATCH("/:id/status", middleware.RequireRoles(managers...), h.TogglePersonStatus)
		persons.DELETE("/:id", middleware.RequireRoles(managers...), h.DeletePerson)

		// Duties
		duties := secured.Group("/duties")
		duties.GET("", h.GetDuties)
		duties.POST("/punch-in", h.PunchIn)
		duties.POST("/:id/punch-out", h.PunchOut)
		duties.POST("/backfill", middleware.RequireRoles(managers...), h.BackfillDuty)
		duties.DELETE("/:id", middleware.RequireRoles(managers...), h.DeleteDuty)

		// Advances
		advances := secured.Group("/advances")
		advances.GET("", h.GetAdvances)
		advances.POST("", middleware.RequireRoles(managers...), h.CreateAdvance)
		advances.DELETE("/:id", middleware.RequireRoles(managers...), h.DeleteAdvance)

		// Ledger
		ledger := secured.Group("/ledger")
		ledger.GET("", h.GetLedger)
		ledger.GET("/export", h.ExportLedger)
		ledger.GET("/:personId/slip", h.GetSettlementSlip)

		// Outside duties
		outside := secured.Group("/outside-duties")
		outside.GET("", h.GetOutsideDuties)
		outside.GET("/export", h.ExportOutsideDuties)
		outside.POST("", middleware.RequireRoles(managers...), h.CreateOutsideDuty)
		outside.PUT("/:id", middleware.RequireRoles(managers...), h.UpdateOutsideDuty)
		outside.DELETE("/:id", middleware.RequireRoles(managers...), h.DeleteOutsideDuty)

		// Vehicles
		vehicles := secured.Group("/vehicles")
		vehicles.GET("", h.GetVehicles)
		vehicles.GET("/expiring", h.GetExpiringDocuments)
		vehicles.POST("", middleware.RequireRoles(managers...), h.CreateVehicle)
		vehicles.PUT("/:plate", middleware.RequireRoles(managers...), h.UpdateVehicle)
		vehicles.DELETE("/:plate", middleware.RequireRoles(managers...), h.DeleteVehicle)
		vehicles.POST("/:plate/documents", middleware.RequireRoles(managers...), h.AddVehicleDocument)
	}

	return r
}
