package handlers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"fleetops/internal/http/middleware"
	"fleetops/internal/services"
	"fleetops/internal/utils"

	"github.com/gin-gonic/gin"
)

func outsideDutyService(c *gin.Context) services.OutsideDutyService {
	return services.OutsideDutyService{RequestID: middleware.GetRequestID(c)}
}

func listOutsideDuties(c *gin.Context, companyID string) ([]services.OutsideDutyView, error) {
	r, err := dateRange(c)
	if err != nil {
		return nil, err
	}
	return outsideDutyService(c).List(c.Request.Context(), companyID, services.OutsideDutyQuery{
		Range: r,
		Query: strings.TrimSpace(c.Query("q")),
	})
}

// GET /api/outside-duties?from=&to=&q=
func GetOutsideDuties(c *gin.Context) {
	rc, ok := caller(c)
	if !ok {
		return
	}
	out, err := listOutsideDuties(c, rc.CompanyID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// POST /api/outside-duties
func CreateOutsideDuty(c *gin.Context) {
	rc, ok := caller(c)
	if !ok {
		return
	}
	var req services.OutsideDutyInput
	if !BindJSONOrError(c, &req) {
		return
	}
	v, err := outsideDutyService(c).Create(c.Request.Context(), rc, req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, v)
}

// PUT /api/outside-duties/:id
func UpdateOutsideDuty(c *gin.Context) {
	rc, ok := caller(c)
	if !ok {
		return
	}
	var req services.OutsideDutyInput
	if !BindJSONOrError(c, &req) {
		return
	}
	v, err := outsideDutyService(c).Update(c.Request.Context(), rc, c.Param("id"), req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, v)
}

// DELETE /api/outside-duties/:id
func DeleteOutsideDuty(c *gin.Context) {
	rc, ok := caller(c)
	if !ok {
		return
	}
	if err := outsideDutyService(c).Delete(c.Request.Context(), rc, c.Param("id")); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "outside duty deleted"})
}

// GET /api/outside-duties/export
func ExportOutsideDuties(c *gin.Context) {
	rc, ok := caller(c)
	if !ok {
		return
	}
	out, err := listOutsideDuties(c, rc.CompanyID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	data, err := services.OutsideDutiesWorkbook(out)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	utils.LogEvent(middleware.GetRequestID(c), "outside_duties", "export", fmt.Sprintf("rows=%d", len(out)))
	sendAttachment(c, xlsxContentType, "outside-duties-"+utils.FormatDate(time.Now())+".xlsx", data)
}
