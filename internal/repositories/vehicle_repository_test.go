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

var vehicleCols = []string{"car_number", "company_id", "model", "permit_type", "car_type", "fastag_number",
	"fastag_balance", "fastag_bank", "duty_amount", "current_driver", "created_at"}

var docCols = []string{"id", "car_number", "document_type", "image_url", "expiry_date"}

func TestVehicleListAttachesDocuments(t *testing.T) {
	db, mock := newMock(t)
	now := time.Now()
	mock.ExpectQuery(`FROM fleet_vehicles WHERE company_id = \?`).
		WithArgs("c1").
		WillReturnRows(sqlmock.NewRows(vehicleCols).
			AddRow("DL01", "c1", "Innova", "AITP", "SUV", "F1", 300.0, "HDFC", 2500.0, "p1", now).
			AddRow("DL02", "c1", "Dzire", "State", "Sedan", "", 0.0, "", 1800.0, nil, now))
	mock.ExpectQuery(`FROM vehicle_documents`).
		WithArgs("c1").
		WillReturnRows(sqlmock.NewRows(docCols).
			AddRow(1, "DL01", "insurance", "http://x/1.jpg", "2024-05-01").
			AddRow(2, "DL01", "permit", "", ""))

	out, err := VehicleRepository{DB: db}.List(context.Background(), "c1")
	require.NoError(t, err)
	require.Len(t, out, 2)
	require.NotNil(t, out[0].CurrentDriver)
	assert.Equal(t, "p1", *out[0].CurrentDriver)
	assert.Len(t, out[0].Documents, 2)
	assert.Nil(t, out[1].CurrentDriver)
	assert.Empty(t, out[1].Documents)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestVehicleGetNotFound(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectQuery(`FROM fleet_vehicles`).WillReturnRows(sqlmock.NewRows(vehicleCols))
	_, err := VehicleRepository{DB: db}.Get(context.Background(), "c1", "XX")
	assert.True(t, domain.IsNotFound(err))
}

func TestVehicleAddDocumentNullExpiry(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectExec(`INSERT INTO vehicle_documents`).
		WithArgs("c1", "DL01", "rc", "", nil).
		WillReturnResult(sqlmock.NewResult(42, 1))

	id, err := VehicleRepository{DB: db}.AddDocument(context.Background(), "c1", models.VehicleDocument{CarNumber: "DL01", DocumentType: "rc"})
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)
}

func TestVehicleDeleteRemovesDocuments(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM vehicle_documents`).WithArgs("c1", "DL01").WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec(`DELETE FROM fleet_vehicles`).WithArgs("c1", "DL01").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, VehicleRepository{DB: db}.Delete(context.Background(), "c1", "DL01"))
	require.NoError(t, mock.ExpectationsWereMet())
}
