package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"fleetops/internal/domain"
	"fleetops/internal/http/middleware"
	"fleetops/internal/services"

	"github.com/gin-gonic/gin"
)

const defaultExpiryWindowDays = 30

func vehicleService(c *gin.Context) services.VehicleService {
	return services.VehicleService{RequestID: middleware.GetRequestID(c)}
}

// GET /api/vehicles
func GetVehicles(c *gin.Context) {
	rc, ok := caller(c)
	if !ok {
		return
	}
	out, err := vehicleService(c).List(c.Request.Context(), rc.CompanyID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// POST /api/vehicles
func CreateVehicle(c *gin.Context) {
	rc, ok := caller(c)
	if !ok {
		return
	}
	var req services.VehicleInput
	if !BindJSONOrError(c, &req) {
		return
	}
	v, err := vehicleService(c).Create(c.Request.Context(), rc, req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, v)
}

// PUT /api/vehicles/:plate
func UpdateVehicle(c *gin.Context) {
	rc, ok := caller(c)
	if !ok {
		return
	}
	var req services.VehicleInput
	if !BindJSONOrError(c, &req) {
		return
	}
	v, err := vehicleService(c).Update(c.Request.Context(), rc, c.Param("plate"), req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, v)
}

// DELETE /api/vehicles/:plate
func DeleteVehicle(c *gin.Context) {
	rc, ok := caller(c)
	if !ok {
		return
	}
	if err := vehicleService(c).Delete(c.Request.Context(), rc, c.Param("plate")); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "vehicle deleted"})
}

// POST /api/vehicles/:plate/documents
func AddVehicleDocument(c *gin.Context) {
	rc, ok := caller(c)
	if !ok {
		return
	}
	var req services.DocumentInput
	if !BindJSONOrError(c, &req) {
		return
	}
	d, err := vehicleService(c).AddDocument(c.Request.Context(), rc, c.Param("plate"), req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, d)
}

// GET /api/vehicles/expiring?days=30
func GetExpiringDocuments(c *gin.Context) {
	rc, ok := caller(c)
	if !ok {
		return
	}
	days := defaultExpiryWindowDays
	if raw := strings.TrimSpace(c.Query("days")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			RespondDomainError(c, domain.Invalid("days", "must be a whole number"))
			return
		}
		days = n
	}
	out, err := vehicleService(c).Expiring(c.Request.Context(), rc.CompanyID, days)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}
