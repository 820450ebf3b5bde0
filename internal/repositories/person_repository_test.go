package repositories

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"fleetops/internal/domain"
	"fleetops/internal/domain/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var personCols = []string{"id", "company_id", "name", "mobile", "username", "password_hash",
	"daily_wage", "is_freelancer", "status", "role", "created_at"}

func newMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

func TestPersonListAppliesFilters(t *testing.T) {
	db, mock := newMock(t)
	created := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	yes := true

	mock.ExpectQuery(`FROM persons WHERE company_id = \? AND is_freelancer = \? AND \(name LIKE \? OR mobile LIKE \?\) ORDER BY name`).
		WithArgs("c1", true, "%ram%", "%ram%").
		WillReturnRows(sqlmock.NewRows(personCols).
			AddRow("p1", "c1", "Ram", "98", "", "", 750.0, true, "active", "driver", created))

	out, err := PersonRepository{DB: db}.List(context.Background(), "c1", models.PersonFilter{Freelancer: &yes, Query: " ram "})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "Ram", out[0].Name)
	assert.Equal(t, domain.Amount(750), out[0].DailyWage)
	assert.True(t, out[0].IsFreelancer)
	assert.Equal(t, created, out[0].CreatedAt)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPersonGetByIDNotFound(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectQuery(`FROM persons WHERE company_id = \? AND id = \?`).
		WithArgs("c1", "missing").
		WillReturnRows(sqlmock.NewRows(personCols))

	_, err := PersonRepository{DB: db}.GetByID(context.Background(), "c1", "missing")
	assert.True(t, domain.IsNotFound(err))
}

func TestPersonInsertDuplicateUsername(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectExec(`INSERT INTO persons`).
		WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry"})

	err := PersonRepository{DB: db}.Insert(context.Background(), models.Person{ID: "p1", CompanyID: "c1", Name: "A", Username: "a"})
	assert.True(t, domain.IsConflict(err))
}

func TestPersonUpdateKeepsPasswordWhenEmpty(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectExec(`UPDATE persons SET name = \?, mobile = \?, username = \?, daily_wage = \?, is_freelancer = \?, role = \? WHERE company_id = \? AND id = \?`).
		WithArgs("Ravi", "99", nil, 800.0, false, "driver", "c1", "p1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := PersonRepository{DB: db}.Update(context.Background(), models.Person{
		ID: "p1", CompanyID: "c1", Name: "Ravi", Mobile: "99", DailyWage: 800, Role: "driver",
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPersonSetStatusMissingRow(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectExec(`UPDATE persons SET status`).
		WithArgs(domain.StatusBlocked, "c1", "p9").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := PersonRepository{DB: db}.SetStatus(context.Background(), "c1", "p9", domain.StatusBlocked)
	assert.True(t, domain.IsNotFound(err))
}

func TestPersonDeleteReleasesVehiclesInTransaction(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE fleet_vehicles SET current_driver = NULL`).
		WithArgs("c1", "p1").
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(`DELETE FROM persons`).
		WithArgs("c1", "p1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, PersonRepository{DB: db}.Delete(context.Background(), "c1", "p1"))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPersonDeleteRollsBackWhenMissing(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE fleet_vehicles`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`DELETE FROM persons`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := PersonRepository{DB: db}.Delete(context.Background(), "c1", "p1")
	assert.True(t, domain.IsNotFound(err))
	require.NoError(t, mock.ExpectationsWereMet())
}
