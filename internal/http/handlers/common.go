package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"fleetops/internal/domain"
	"fleetops/internal/http/middleware"
	"fleetops/internal/utils"

	"github.com/gin-gonic/gin"
)

// RespondError sends a plain error payload with request_id included.
func RespondError(c *gin.Context, status int, message string, err error) {
	payload := gin.H{
		"error":      message,
		"request_id": middleware.GetRequestID(c),
	}
	if err != nil {
		payload["details"] = err.Error()
	}
	c.JSON(status, payload)
}

// BindJSONOrError ensures body is present, parsable and valid.
func BindJSONOrError[T any](c *gin.Context, dst *T) bool {
	if c.Request.Body == nil || c.Request.ContentLength == 0 {
		RespondDomainError(c, domain.ValidationError{Msg: "request body is empty"})
		return false
	}
	if err := c.ShouldBindJSON(dst); err != nil {
		RespondDomainError(c, bindError(err))
		return false
	}
	return true
}

// caller returns the authenticated caller or writes 401.
func caller(c *gin.Context) (domain.RequestContext, bool) {
	rc, ok := middleware.Caller(c)
	if !ok || rc.CompanyID == "" {
		RespondDomainError(c, domain.UnauthorizedError{Msg: "missing company scope"})
		return domain.RequestContext{}, false
	}
	return rc, true
}

// dateRange reads ?from=&to=. Both are optional but must be YYYY-MM-DD.
func dateRange(c *gin.Context) (domain.DateRange, error) {
	r := domain.DateRange{
		From: strings.TrimSpace(c.Query("from")),
		To:   strings.TrimSpace(c.Query("to")),
	}
	if r.From != "" && !utils.IsISODate(r.From) {
		return r, domain.Invalid("from", "must be YYYY-MM-DD")
	}
	if r.To != "" && !utils.IsISODate(r.To) {
		return r, domain.Invalid("to", "must be YYYY-MM-DD")
	}
	if r.From != "" && r.To != "" && r.From > r.To {
		return r, domain.Invalid("from", "must not be after to")
	}
	return r, nil
}

// boolQuery reads an optional true/false query param.
func boolQuery(c *gin.Context, key string) (*bool, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, domain.Invalid(key, "must be true or false")
	}
	return &v, nil
}

func sendAttachment(c *gin.Context, contentType, filename string, data []byte) {
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, contentType, data)
}

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
