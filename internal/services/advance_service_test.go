package services

import (
	"context"
	"testing"

	"fleetops/internal/domain"
	"fleetops/internal/repositories"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdvanceCreateValidation(t *testing.T) {
	svc := AdvanceService{}
	_, err := svc.Create(context.Background(), rc, AdvanceInput{Amount: 0, Date: "2024-02-02", AdvanceType: domain.AdvanceOffice})
	assert.True(t, domain.IsValidation(err))

	_, err = svc.Create(context.Background(), rc, AdvanceInput{Amount: 10, Date: "2024-02-02", AdvanceType: "Loan"})
	assert.True(t, domain.IsValidation(err))
}

func TestAdvanceCreateForPersonEmbedsRef(t *testing.T) {
	db, mock := newMock(t)
	expectPerson(mock, "p1", domain.StatusActive, "")
	mock.ExpectExec("INSERT INTO advance_payments").WillReturnResult(sqlmock.NewResult(0, 1))

	svc := AdvanceService{Repo: repositories.AdvanceRepository{DB: db}, PersonRepo: repositories.PersonRepository{DB: db}}
	a, err := svc.Create(context.Background(), rc, AdvanceInput{
		PersonID: "p1", Amount: 300, Date: "2024-02-02", AdvanceType: domain.AdvanceStaff, GivenBy: " Manager ",
	})
	require.NoError(t, err)
	assert.Equal(t, "p1", a.Driver.ID())
	assert.Equal(t, "Manager", a.GivenBy)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAdvanceCreateUnknownPerson(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectQuery("FROM persons").WillReturnRows(sqlmock.NewRows(personCols))

	svc := AdvanceService{Repo: repositories.AdvanceRepository{DB: db}, PersonRepo: repositories.PersonRepository{DB: db}}
	_, err := svc.Create(context.Background(), rc, AdvanceInput{
		PersonID: "ghost", Amount: 300, Date: "2024-02-02", AdvanceType: domain.AdvanceOther,
	})
	assert.True(t, domain.IsNotFound(err))
}
