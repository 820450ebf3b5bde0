package services

import (
	"context"
	"database/sql"
	"regexp"
	"strings"
	"testing"
	"time"

	"fleetops/internal/domain"
	"fleetops/internal/domain/models"
	"fleetops/internal/dutykey"
	"fleetops/internal/repositories"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var outsideCols = []string{"id", "company_id", "car_number", "plate", "duty_date", "suffix", "instance_id",
	"model", "property", "owner_name", "duty_type", "drop_location", "duty_amount", "created_at"}

var rc = domain.RequestContext{UserID: "u1", CompanyID: "c1", Role: "admin"}

func newMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

func TestOutsideDutyCreateEncodesKey(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectExec("INSERT INTO outside_duties").WillReturnResult(sqlmock.NewResult(0, 1))

	svc := OutsideDutyService{Repo: repositories.OutsideDutyRepository{DB: db}}
	view, err := svc.Create(context.Background(), rc, OutsideDutyInput{
		CarNumber: " dl01ab1234 ",
		Date:      "2024-03-05",
		Legs: []models.DutyLeg{
			{Type: "Local", DropLocation: "Mall"},
			{Type: "Airport"},
		},
		DutyAmount: 1500,
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())

	assert.Regexp(t, regexp.MustCompile(`^DL01AB1234#2024-03-05#[a-z0-9]{5}$`), view.CarNumber)
	assert.Equal(t, "DL01AB1234", view.Plate)
	assert.Equal(t, "2024-03-05", view.DutyDate)
	assert.Len(t, view.Suffix, dutykey.SuffixLen)
	assert.NotEmpty(t, view.InstanceID)
	assert.Equal(t, "Local + Airport", view.DutyType)
	assert.Equal(t, "Mall", view.DropLocation)
	assert.Equal(t, "2024-03-05", view.DisplayDate)
	assert.Equal(t, []models.DutyLeg{{Type: "Local", DropLocation: "Mall"}, {Type: "Airport"}}, view.Legs)
}

func TestOutsideDutyCreateRejectsUnsafeInput(t *testing.T) {
	svc := OutsideDutyService{}
	cases := []OutsideDutyInput{
		{CarNumber: "DL#01", Date: "2024-03-05", Legs: []models.DutyLeg{{Type: "Local"}}},
		{CarNumber: "DL01", Date: "2024-3-5", Legs: []models.DutyLeg{{Type: "Local"}}},
		{CarNumber: "DL01", Date: "2024-03-05", Legs: []models.DutyLeg{{Type: "Local + Outstation"}}},
		{CarNumber: "DL01", Date: "2024-03-05", Legs: []models.DutyLeg{{Type: "Local", DropLocation: "A | B"}}},
		{CarNumber: "DL01", Date: "2024-03-05"},
	}
	for _, in := range cases {
		_, err := svc.Create(context.Background(), rc, in)
		assert.True(t, domain.IsValidation(err), "input %+v", in)
	}
}

func storedOutside(mock sqlmock.Sqlmock, key, instance string) {
	k := dutykey.Decode(key)
	mock.ExpectQuery("FROM outside_duties WHERE company_id").
		WithArgs("c1", "o1").
		WillReturnRows(sqlmock.NewRows(outsideCols).AddRow(
			"o1", "c1", key, k.Plate, k.Date, k.Suffix, instance,
			"Dzire", "", "", "Local", "", 900.0, time.Now()))
}

func TestOutsideDutyUpdateKeepsSuffixAndInstance(t *testing.T) {
	db, mock := newMock(t)
	storedOutside(mock, "DL01#2024-03-05#ab12c", "inst-1")
	mock.ExpectExec("UPDATE outside_duties").
		WithArgs("DL01#2024-03-05#ab12c", "DL01", "2024-03-05", "ab12c", "inst-1",
			"Innova", "", "", "Local", "", 1100.0, "c1", "o1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	svc := OutsideDutyService{Repo: repositories.OutsideDutyRepository{DB: db}}
	view, err := svc.Update(context.Background(), rc, "o1", OutsideDutyInput{
		CarNumber: "dl01", Date: "2024-03-05", Model: "Innova", DutyType: "Local", DutyAmount: 1100,
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
	assert.Equal(t, "ab12c", view.Suffix)
	assert.Equal(t, "inst-1", view.InstanceID)
}

func TestOutsideDutyUpdateDateChangeRotatesSuffixAndInstance(t *testing.T) {
	db, mock := newMock(t)
	storedOutside(mock, "DL01#2024-03-05#ab12c", "inst-1")
	mock.ExpectExec("UPDATE outside_duties").WillReturnResult(sqlmock.NewResult(0, 1))

	svc := OutsideDutyService{Repo: repositories.OutsideDutyRepository{DB: db}}
	view, err := svc.Update(context.Background(), rc, "o1", OutsideDutyInput{
		CarNumber: "DL01", Date: "2024-03-06", DutyType: "Local",
	})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(view.CarNumber, "DL01#2024-03-06#"))
	assert.Equal(t, "2024-03-06", view.DutyDate)
	assert.NotEqual(t, "inst-1", view.InstanceID)
	assert.NotEmpty(t, view.InstanceID)
}

func TestOutsideDutyListFiltersAndSorts(t *testing.T) {
	db, mock := newMock(t)
	base := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery("FROM outside_duties").
		WithArgs("c1").
		WillReturnRows(sqlmock.NewRows(outsideCols).
			AddRow("o1", "c1", "A#2024-03-05#aaaaa", "", "", "", "", "", "", "", "Local + Airport", "Mall", 1.0, base).
			AddRow("o2", "c1", "B#2024-03-07#bbbbb", "", "", "", "", "", "", "", "Local", "", 1.0, base).
			AddRow("o3", "c1", "C#2024-03-05#ccccc", "", "", "", "", "", "", "", "Local", "", 1.0, base.Add(time.Hour)).
			AddRow("o4", "c1", "D#2024-02-28#ddddd", "", "", "", "", "", "", "", "Local", "", 1.0, base))

	svc := OutsideDutyService{Repo: repositories.OutsideDutyRepository{DB: db}}
	out, err := svc.List(context.Background(), "c1", OutsideDutyQuery{Range: domain.DateRange{From: "2024-03-01", To: "2024-03-31"}})
	require.NoError(t, err)

	ids := make([]string, len(out))
	for i, v := range out {
		ids[i] = v.ID
	}
	assert.Equal(t, []string{"o2", "o3", "o1"}, ids)
	assert.Equal(t, []models.DutyLeg{{Type: "Local", DropLocation: "Mall"}, {Type: "Airport", DropLocation: ""}}, out[2].Legs)
	assert.Equal(t, "2024-03-05", out[2].DisplayDate)
}
