package repositories

import (
	"context"
	"testing"
	"time"

	"fleetops/internal/domain"
	"fleetops/internal/domain/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var dutyCols = []string{"id", "company_id", "person_id", "name", "mobile", "is_freelancer",
	"car_number", "duty_date", "punch_in_time", "punch_in_km", "punch_out_time", "punch_out_km",
	"daily_wage", "fuel_amount", "parking_amount", "pick_up_location", "drop_location", "created_at"}

func TestDutyListScansOpenAndClosed(t *testing.T) {
	db, mock := newMock(t)
	now := time.Now().UTC()

	mock.ExpectQuery(`FROM duty_records d .* WHERE d.company_id = \? AND d.duty_date >= \? AND d.duty_date <= \? AND d.person_id = \?`).
		WithArgs("c1", "2024-02-01", "2024-02-29", "p1").
		WillReturnRows(sqlmock.NewRows(dutyCols).
			AddRow("d1", "c1", "p1", "Ram", "98", false, "DL01", "2024-02-02", "08:00", 100.0, "18:00", 180.0, 700.0, 50.0, 20.0, "A", "B", now).
			AddRow("d2", "c1", "p1", nil, nil, nil, "DL01", "2024-02-03", "08:00", nil, nil, nil, 700.0, 0.0, 0.0, "", "", now))

	out, err := DutyRepository{DB: db}.List(context.Background(), "c1", models.DutyFilter{
		Range:    domain.DateRange{From: "2024-02-01", To: "2024-02-29"},
		PersonID: "p1",
	})
	require.NoError(t, err)
	require.Len(t, out, 2)

	assert.Equal(t, "Ram", out[0].Driver.Name())
	assert.False(t, out[0].Open())
	require.NotNil(t, out[0].PunchOut.KM)
	assert.Equal(t, 180.0, out[0].PunchOut.KM.Float())

	_, embedded := out[1].Driver.Embedded()
	assert.False(t, embedded)
	assert.Equal(t, "p1", out[1].Driver.ID())
	assert.True(t, out[1].Open())
	assert.Nil(t, out[1].PunchIn.KM)
}

func TestDutyListAllScopeSkipsPersonFilter(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectQuery(`WHERE d.company_id = \? ORDER BY`).
		WithArgs("c1").
		WillReturnRows(sqlmock.NewRows(dutyCols))

	out, err := DutyRepository{DB: db}.List(context.Background(), "c1", models.DutyFilter{PersonID: domain.ScopeAll})
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestDutyOpenFor(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectQuery(`SELECT id FROM duty_records`).
		WithArgs("c1", "p1").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("d7"))
	mock.ExpectQuery(`SELECT id FROM duty_records`).
		WithArgs("c1", "p2").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	repo := DutyRepository{DB: db}
	id, err := repo.OpenFor(context.Background(), "c1", "p1")
	require.NoError(t, err)
	assert.Equal(t, "d7", id)

	id, err = repo.OpenFor(context.Background(), "c1", "p2")
	require.NoError(t, err)
	assert.Empty(t, id)
}

func TestDutyInsertOpenStoresNullPunchOut(t *testing.T) {
	db, mock := newMock(t)
	km := domain.Amount(120)
	now := time.Now()
	mock.ExpectExec(`INSERT INTO duty_records`).
		WithArgs("d1", "c1", "p1", "DL01", "2024-02-02", "08:00", 120.0, nil, nil, 700.0, 0.0, 0.0, "Depot", "", now).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := DutyRepository{DB: db}.Insert(context.Background(), models.DutyRecord{
		ID: "d1", CompanyID: "c1", Driver: domain.RefByID("p1"), Vehicle: "DL01", Date: "2024-02-02",
		PunchIn: models.PunchPoint{Time: "08:00", KM: &km}, DailyWage: 700, PickUpLocation: "Depot", CreatedAt: now,
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDutyPunchOutClosedIsConflict(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectExec(`UPDATE duty_records`).WillReturnResult(sqlmock.NewResult(0, 0))

	err := DutyRepository{DB: db}.PunchOut(context.Background(), "c1", "d1", models.PunchPoint{Time: "18:00"}, 0, 0, "")
	assert.True(t, domain.IsConflict(err))
}
