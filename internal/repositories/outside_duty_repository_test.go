package repositories

import (
	"context"
	"testing"
	"time"

	"fleetops/internal/domain"
	"fleetops/internal/domain/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var outsideCols = []string{"id", "company_id", "car_number", "plate", "duty_date", "suffix", "instance_id",
	"model", "property", "owner_name", "duty_type", "drop_location", "duty_amount", "created_at"}

func TestOutsideListFreeText(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectQuery(`FROM outside_duties WHERE company_id = \? AND \(car_number LIKE \?`).
		WithArgs("c1", "%dl%", "%dl%", "%dl%").
		WillReturnRows(sqlmock.NewRows(outsideCols).
			AddRow("o1", "c1", "DL01#2024-03-05#ab12c", "DL01", "2024-03-05", "ab12c", "uuid-1",
				"Dzire", "Hotel", "Owner", "Local + Airport", "Mall | T3", 1500.0, time.Now()))

	out, err := OutsideDutyRepository{DB: db}.List(context.Background(), "c1", "dl")
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "ab12c", out[0].Suffix)
	assert.Equal(t, domain.Amount(1500), out[0].DutyAmount)
}

func TestOutsideInsertDuplicateInstance(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectExec(`INSERT INTO outside_duties`).
		WillReturnError(&mysql.MySQLError{Number: 1062})

	err := OutsideDutyRepository{DB: db}.Insert(context.Background(), models.OutsideDuty{ID: "o1", CompanyID: "c1"})
	assert.True(t, domain.IsConflict(err))
}

func TestOutsideUpdateWritesKeyColumns(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectExec(`UPDATE outside_duties`).
		WithArgs("DL02#2024-03-06#zz999", "DL02", "2024-03-06", "zz999", "uuid-2",
			"", "", "", "Local", "", 900.0, "c1", "o1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := OutsideDutyRepository{DB: db}.Update(context.Background(), models.OutsideDuty{
		ID: "o1", CompanyID: "c1", CarNumber: "DL02#2024-03-06#zz999", Plate: "DL02", DutyDate: "2024-03-06",
		Suffix: "zz999", InstanceID: "uuid-2", DutyType: "Local", DutyAmount: 900,
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestOutsideDeleteMissing(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectExec(`DELETE FROM outside_duties`).WillReturnResult(sqlmock.NewResult(0, 0))
	err := OutsideDutyRepository{DB: db}.Delete(context.Background(), "c1", "nope")
	assert.True(t, domain.IsNotFound(err))
}
