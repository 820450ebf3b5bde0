package handlers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"fleetops/internal/domain/models"
	"fleetops/internal/http/middleware"
	"fleetops/internal/ledger"
	"fleetops/internal/repositories"
	"fleetops/internal/services"
	"fleetops/internal/utils"

	"github.com/gin-gonic/gin"
)

// ledgerSource is swapped by tests.
var ledgerSource = func(c *gin.Context) services.LedgerService {
	return services.LedgerService{RequestID: middleware.GetRequestID(c)}
}

func ledgerQuery(c *gin.Context) (services.LedgerQuery, error) {
	r, err := dateRange(c)
	if err != nil {
		return services.LedgerQuery{}, err
	}
	freelancer, err := boolQuery(c, "freelancer")
	if err != nil {
		return services.LedgerQuery{}, err
	}
	return services.LedgerQuery{Range: r, Person: strings.TrimSpace(c.Query("person")), Freelancer: freelancer}, nil
}

// loadLedger returns the report and the in-scope duties behind it.
func loadLedger(c *gin.Context, companyID string, q services.LedgerQuery) (services.LedgerReport, []services.DutyView, error) {
	duties, advances, err := ledgerSource(c).Load(c.Request.Context(), companyID, q)
	if err != nil {
		return services.LedgerReport{}, nil, err
	}
	rep := services.BuildLedgerReport(duties, advances, q)
	scoped := services.ScopedDuties(duties, q)
	views := make([]services.DutyView, 0, len(scoped))
	for _, d := range scoped {
		views = append(views, services.NewDutyView(d))
	}
	return rep, views, nil
}

// GET /api/ledger?from=&to=&person=All|<id>&freelancer=
func GetLedger(c *gin.Context) {
	rc, ok := caller(c)
	if !ok {
		return
	}
	q, err := ledgerQuery(c)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	rep, err := ledgerSource(c).Report(c.Request.Context(), rc.CompanyID, q)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, rep)
}

// GET /api/ledger/export
func ExportLedger(c *gin.Context) {
	rc, ok := caller(c)
	if !ok {
		return
	}
	q, err := ledgerQuery(c)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	rep, duties, err := loadLedger(c, rc.CompanyID, q)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	data, err := services.LedgerWorkbook(rep, duties)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	utils.LogEvent(middleware.GetRequestID(c), "ledger", "export", fmt.Sprintf("scope=%s rows=%d", rep.Scope, len(rep.People)))
	name := fmt.Sprintf("ledger-%s-%s.xlsx", utils.SafeFilenamePart(rep.Scope), utils.SafeFilenamePart(utils.FirstNonEmpty(q.Range.To, utils.FormatDate(time.Now()))))
	sendAttachment(c, xlsxContentType, name, data)
}

// GET /api/ledger/:personId/slip
func GetSettlementSlip(c *gin.Context) {
	rc, ok := caller(c)
	if !ok {
		return
	}
	q, err := ledgerQuery(c)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	person, err := slipPerson(c, rc.CompanyID, c.Param("personId"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	q.Person = person.ID

	rep, duties, err := loadLedger(c, rc.CompanyID, q)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	if len(rep.People) == 0 {
		rep.People = append(rep.People, ledger.Ledger{PersonID: person.ID})
	}
	rep.People[0].PersonName = utils.FirstNonEmpty(rep.People[0].PersonName, person.Name)

	pdf, name, err := services.SettlementSlip(rep, duties, time.Now())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	utils.LogEvent(middleware.GetRequestID(c), "ledger", "slip", "person="+person.ID)
	sendAttachment(c, "application/pdf", name, pdf)
}

// slipPerson is swapped by tests.
var slipPerson = func(c *gin.Context, companyID, id string) (models.Person, error) {
	return repositories.PersonRepository{}.GetByID(c.Request.Context(), companyID, strings.TrimSpace(id))
}
