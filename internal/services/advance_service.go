package services

import (
	"context"
	"fmt"
	"strings"

	"fleetops/internal/domain"
	"fleetops/internal/domain/models"
	"fleetops/internal/repositories"
	"fleetops/internal/utils"

	"github.com/google/uuid"
)

// AdvanceInput leaves PersonID empty for a company level advance.
type AdvanceInput struct {
	PersonID    string             `json:"personId"`
	Amount      domain.Amount      `json:"amount" binding:"required"`
	Date        string             `json:"date" binding:"required,isodate"`
	AdvanceType domain.AdvanceType `json:"advanceType" binding:"required"`
	GivenBy     string             `json:"givenBy"`
	Remark      string             `json:"remark"`
}

type AdvanceService struct {
	Repo       repositories.AdvanceRepository
	PersonRepo repositories.PersonRepository
	RequestID  string
}

func (s AdvanceService) List(ctx context.Context, companyID string, f models.AdvanceFilter) ([]models.AdvancePayment, error) {
	return s.Repo.List(ctx, companyID, f)
}

func (s AdvanceService) Create(ctx context.Context, rc domain.RequestContext, in AdvanceInput) (models.AdvancePayment, error) {
	if in.Amount <= 0 {
		return models.AdvancePayment{}, domain.Invalid("amount", "must be greater than 0")
	}
	if !in.AdvanceType.Valid() {
		return models.AdvancePayment{}, domain.Invalid("advanceType", "must be one of Office, Staff, Other")
	}

	a := models.AdvancePayment{
		ID:          uuid.NewString(),
		CompanyID:   rc.CompanyID,
		Amount:      in.Amount,
		Date:        in.Date,
		AdvanceType: in.AdvanceType,
		GivenBy:     strings.TrimSpace(in.GivenBy),
		Remark:      strings.TrimSpace(in.Remark),
		CreatedAt:   utils.NowUTC(),
	}
	if id := strings.TrimSpace(in.PersonID); id != "" {
		p, err := s.PersonRepo.GetByID(ctx, rc.CompanyID, id)
		if err != nil {
			return models.AdvancePayment{}, err
		}
		a.Driver = p.Ref()
	}

	if err := s.Repo.Insert(ctx, a); err != nil {
		return models.AdvancePayment{}, err
	}
	utils.LogEvent(s.RequestID, "advances", "create", fmt.Sprintf("id=%s person=%s", a.ID, a.Driver.ID()))
	return a, nil
}

func (s AdvanceService) Delete(ctx context.Context, rc domain.RequestContext, id string) error {
	if err := s.Repo.Delete(ctx, rc.CompanyID, id); err != nil {
		return err
	}
	utils.LogEvent(s.RequestID, "advances", "delete", "id="+id)
	return nil
}
