package handlers

import (
	"net/http"
	"strings"

	"fleetops/internal/domain/models"
	"fleetops/internal/http/middleware"
	"fleetops/internal/services"

	"github.com/gin-gonic/gin"
)

func personService(c *gin.Context) services.PersonService {
	return services.PersonService{RequestID: middleware.GetRequestID(c)}
}

// GET /api/persons?freelancer=true&q=ram
func GetPersons(c *gin.Context) {
	rc, ok := caller(c)
	if !ok {
		return
	}
	freelancer, err := boolQuery(c, "freelancer")
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	out, err := personService(c).List(c.Request.Context(), rc.CompanyID, models.PersonFilter{
		Freelancer: freelancer,
		Query:      strings.TrimSpace(c.Query("q")),
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// POST /api/persons
func CreatePerson(c *gin.Context) {
	rc, ok := caller(c)
	if !ok {
		return
	}
	var req services.PersonInput
	if !BindJSONOrError(c, &req) {
		return
	}
	p, err := personService(c).Create(c.Request.Context(), rc, req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

// PUT /api/persons/:id
func UpdatePerson(c *gin.Context) {
	rc, ok := caller(c)
	if !ok {
		return
	}
	var req services.PersonInput
	if !BindJSONOrError(c, &req) {
		return
	}
	p, err := personService(c).Update(c.Request.Context(), rc, c.Param("id"), req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// PATCH /api/persons/:id/status
func TogglePersonStatus(c *gin.Context) {
	rc, ok := caller(c)
	if !ok {
		return
	}
	p, err := personService(c).ToggleStatus(c.Request.Context(), rc, c.Param("id"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// DELETE /api/persons/:id
func DeletePerson(c *gin.Context) {
	rc, ok := caller(c)
	if !ok {
		return
	}
	if err := personService(c).Delete(c.Request.Context(), rc, c.Param("id")); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "person deleted"})
}
