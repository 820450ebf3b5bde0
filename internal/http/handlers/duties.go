package handlers

import (
	"net/http"
	"strings"

	"fleetops/internal/domain/models"
	"fleetops/internal/http/middleware"
	"fleetops/internal/services"

	"github.com/gin-gonic/gin"
)

func dutyService(c *gin.Context) services.DutyService {
	return services.DutyService{RequestID: middleware.GetRequestID(c)}
}

// GET /api/duties?from=&to=&person=&freelancer=
func GetDuties(c *gin.Context) {
	rc, ok := caller(c)
	if !ok {
		return
	}
	r, err := dateRange(c)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	freelancer, err := boolQuery(c, "freelancer")
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	out, err := dutyService(c).List(c.Request.Context(), rc.CompanyID, models.DutyFilter{
		Range:      r,
		PersonID:   strings.TrimSpace(c.Query("person")),
		Freelancer: freelancer,
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// POST /api/duties/punch-in
func PunchIn(c *gin.Context) {
	rc, ok := caller(c)
	if !ok {
		return
	}
	var req services.PunchInInput
	if !BindJSONOrError(c, &req) {
		return
	}
	d, err := dutyService(c).PunchIn(c.Request.Context(), rc, req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, d)
}

// POST /api/duties/:id/punch-out
func PunchOut(c *gin.Context) {
	rc, ok := caller(c)
	if !ok {
		return
	}
	var req services.PunchOutInput
	if !BindJSONOrError(c, &req) {
		return
	}
	d, err := dutyService(c).PunchOut(c.Request.Context(), rc, c.Param("id"), req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}

// POST /api/duties/backfill
func BackfillDuty(c *gin.Context) {
	rc, ok := caller(c)
	if !ok {
		return
	}
	var req services.BackfillInput
	if !BindJSONOrError(c, &req) {
		return
	}
	d, err := dutyService(c).Backfill(c.Request.Context(), rc, req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, d)
}

// DELETE /api/duties/:id
func DeleteDuty(c *gin.Context) {
	rc, ok := caller(c)
	if !ok {
		return
	}
	if err := dutyService(c).Delete(c.Request.Context(), rc, c.Param("id")); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "duty deleted"})
}
