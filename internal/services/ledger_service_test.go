package services

import (
	"context"
	"errors"
	"testing"

	"fleetops/internal/domain"
	"fleetops/internal/domain/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func km(v float64) *domain.Amount {
	a := domain.Amount(v)
	return &a
}

func ledgerFixture() ([]models.DutyRecord, []models.AdvancePayment) {
	ram := domain.RefEmbedded(domain.PersonSummary{ID: "p1", Name: "Ram"})
	duties := []models.DutyRecord{
		{ID: "d1", Driver: ram, Date: "2024-02-01", DailyWage: 500,
			PunchIn: models.PunchPoint{KM: km(100)}, PunchOut: &models.PunchPoint{Time: "18:00", KM: km(160)}},
		{ID: "d2", Driver: domain.RefByID("p1"), Date: "2024-02-02", DailyWage: 500},
		{ID: "d3", Driver: domain.RefByID("p2"), Date: "2024-02-02", DailyWage: 700,
			PunchIn: models.PunchPoint{KM: km(10)}, PunchOut: &models.PunchPoint{Time: "17:00", KM: km(30)}},
		{ID: "d4", Driver: domain.RefByID("p2"), Date: "2024-03-01", DailyWage: 900},
	}
	advances := []models.AdvancePayment{
		{ID: "a1", Driver: domain.RefByID("p1"), Date: "2024-02-03", Amount: 1200},
		{ID: "a2", Date: "2024-02-04", Amount: 50},
	}
	return duties, advances
}

func TestBuildLedgerReportAll(t *testing.T) {
	duties, advances := ledgerFixture()
	rep := BuildLedgerReport(duties, advances, LedgerQuery{Range: domain.DateRange{From: "2024-02-01", To: "2024-02-29"}})

	assert.Equal(t, domain.ScopeAll, rep.Scope)
	assert.Equal(t, 1700.0, rep.Gross)
	assert.Equal(t, 1250.0, rep.Advances)
	assert.Equal(t, 450.0, rep.Net)
	assert.Equal(t, 3, rep.DutyCount)
	assert.Equal(t, 80.0, rep.TotalKM)
	require.Len(t, rep.People, 2)
	assert.Equal(t, "p1", rep.People[0].PersonID)
	assert.Equal(t, "Ram", rep.People[0].PersonName)
	assert.Equal(t, -200.0, rep.People[0].Net)
}

func TestBuildLedgerReportSinglePerson(t *testing.T) {
	duties, advances := ledgerFixture()
	rep := BuildLedgerReport(duties, advances, LedgerQuery{Person: "p2"})

	assert.Equal(t, "p2", rep.Scope)
	assert.Equal(t, 1600.0, rep.Gross)
	assert.Equal(t, 0.0, rep.Advances)
	assert.Equal(t, 20.0, rep.TotalKM)
	require.Len(t, rep.People, 1)
	assert.Equal(t, "p2", rep.People[0].PersonID)
}

func TestLedgerServiceReportUsesSource(t *testing.T) {
	duties, advances := ledgerFixture()
	var gotCompany string
	svc := LedgerService{Source: func(_ context.Context, companyID string, _ LedgerQuery) ([]models.DutyRecord, []models.AdvancePayment, error) {
		gotCompany = companyID
		return duties, advances, nil
	}}

	rep, err := svc.Report(context.Background(), "c1", LedgerQuery{Person: "p1"})
	require.NoError(t, err)
	assert.Equal(t, "c1", gotCompany)
	assert.Equal(t, 1000.0, rep.Gross)
	assert.Equal(t, 1200.0, rep.Advances)
	assert.Equal(t, -200.0, rep.Net)
}

func TestLedgerServiceReportPropagatesErrors(t *testing.T) {
	svc := LedgerService{Source: func(context.Context, string, LedgerQuery) ([]models.DutyRecord, []models.AdvancePayment, error) {
		return nil, nil, errors.New("boom")
	}}
	_, err := svc.Report(context.Background(), "c1", LedgerQuery{})
	assert.EqualError(t, err, "boom")
}
