package handlers

import (
	"net/http"
	"strings"

	"fleetops/internal/domain/models"
	"fleetops/internal/http/middleware"
	"fleetops/internal/services"

	"github.com/gin-gonic/gin"
)

func advanceService(c *gin.Context) services.AdvanceService {
	return services.AdvanceService{RequestID: middleware.GetRequestID(c)}
}

// GET /api/advances?from=&to=&person=
func GetAdvances(c *gin.Context) {
	rc, ok := caller(c)
	if !ok {
		return
	}
	r, err := dateRange(c)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	out, err := advanceService(c).List(c.Request.Context(), rc.CompanyID, models.AdvanceFilter{
		Range:    r,
		PersonID: strings.TrimSpace(c.Query("person")),
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// POST /api/advances
func CreateAdvance(c *gin.Context) {
	rc, ok := caller(c)
	if !ok {
		return
	}
	var req services.AdvanceInput
	if !BindJSONOrError(c, &req) {
		return
	}
	a, err := advanceService(c).Create(c.Request.Context(), rc, req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, a)
}

// DELETE /api/advances/:id
func DeleteAdvance(c *gin.Context) {
	rc, ok := caller(c)
	if !ok {
		return
	}
	if err := advanceService(c).Delete(c.Request.Context(), rc, c.Param("id")); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "advance deleted"})
}
