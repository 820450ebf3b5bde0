package services

import (
	"context"
	"fmt"
	"strings"

	"fleetops/internal/domain"
	"fleetops/internal/domain/models"
	"fleetops/internal/dutykey"
	"fleetops/internal/repositories"
	"fleetops/internal/utils"

	"github.com/google/uuid"
)

// OutsideDutyInput is the create/edit payload. Legs wins over the joined
// DutyType/DropLocation strings, which older clients still send.
type OutsideDutyInput struct {
	CarNumber    string           `json:"carNumber" binding:"required,plate"`
	Date         string           `json:"date" binding:"required,isodate"`
	Model        string           `json:"model"`
	Property     string           `json:"property"`
	OwnerName    string           `json:"ownerName"`
	Legs         []models.DutyLeg `json:"legs"`
	DutyType     string           `json:"dutyType"`
	DropLocation string           `json:"dropLocation"`
	DutyAmount   domain.Amount    `json:"dutyAmount"`
}

func (in OutsideDutyInput) legs() []models.DutyLeg {
	if len(in.Legs) > 0 {
		return in.Legs
	}
	return dutykey.SplitLegs(in.DutyType, in.DropLocation)
}

// OutsideDutyView is a stored duty prepared for listing.
type OutsideDutyView struct {
	models.OutsideDuty
	DisplayDate string           `json:"displayDate"`
	Legs        []models.DutyLeg `json:"legs"`
}

func NewOutsideDutyView(rec models.OutsideDuty) OutsideDutyView {
	return OutsideDutyView{
		OutsideDuty: rec,
		DisplayDate: dutykey.DisplayDate(rec),
		Legs:        dutykey.SplitLegs(rec.DutyType, rec.DropLocation),
	}
}

type OutsideDutyQuery struct {
	Range domain.DateRange
	Query string
}

type OutsideDutyService struct {
	Repo      repositories.OutsideDutyRepository
	RequestID string
}

// List filters on the duty date carried by the key and returns newest first.
func (s OutsideDutyService) List(ctx context.Context, companyID string, q OutsideDutyQuery) ([]OutsideDutyView, error) {
	recs, err := s.Repo.List(ctx, companyID, q.Query)
	if err != nil {
		return nil, err
	}
	recs = dutykey.FilterByDate(recs, q.Range)
	dutykey.SortNewestFirst(recs)

	out := make([]OutsideDutyView, 0, len(recs))
	for _, rec := range recs {
		out = append(out, NewOutsideDutyView(rec))
	}
	return out, nil
}

// Create always records a new duty event with a fresh suffix and instance.
func (s OutsideDutyService) Create(ctx context.Context, rc domain.RequestContext, in OutsideDutyInput) (OutsideDutyView, error) {
	legs, err := validateOutsideInput(in)
	if err != nil {
		return OutsideDutyView{}, err
	}

	key := dutykey.Decode(dutykey.Encode(in.CarNumber, in.Date, ""))
	rec := models.OutsideDuty{
		ID:         uuid.NewString(),
		CompanyID:  rc.CompanyID,
		InstanceID: uuid.NewString(),
		CreatedAt:  utils.NowUTC(),
	}
	applyOutsideInput(&rec, in, legs, key)

	if err := s.Repo.Insert(ctx, rec); err != nil {
		return OutsideDutyView{}, err
	}
	utils.LogEvent(s.RequestID, "outside_duties", "create", "key="+rec.CarNumber)
	return NewOutsideDutyView(rec), nil
}

// Update edits in place. The suffix and instance id survive only when plate
// and date are unchanged.
func (s OutsideDutyService) Update(ctx context.Context, rc domain.RequestContext, id string, in OutsideDutyInput) (OutsideDutyView, error) {
	legs, err := validateOutsideInput(in)
	if err != nil {
		return OutsideDutyView{}, err
	}
	rec, err := s.Repo.GetByID(ctx, rc.CompanyID, id)
	if err != nil {
		return OutsideDutyView{}, err
	}

	original := rec.CarNumber
	if original == "" {
		original = dutykey.KeyOf(rec).String()
	}
	next, rotated := dutykey.RekeyForEdit(original, in.CarNumber, in.Date)
	if rotated || rec.InstanceID == "" {
		rec.InstanceID = uuid.NewString()
	}
	applyOutsideInput(&rec, in, legs, dutykey.Decode(next))

	if err := s.Repo.Update(ctx, rec); err != nil {
		return OutsideDutyView{}, err
	}
	utils.LogEvent(s.RequestID, "outside_duties", "update",
		fmt.Sprintf("id=%s key=%s rotated=%t", rec.ID, rec.CarNumber, rotated))
	return NewOutsideDutyView(rec), nil
}

func (s OutsideDutyService) Delete(ctx context.Context, rc domain.RequestContext, id string) error {
	if err := s.Repo.Delete(ctx, rc.CompanyID, id); err != nil {
		return err
	}
	utils.LogEvent(s.RequestID, "outside_duties", "delete", "id="+id)
	return nil
}

func validateOutsideInput(in OutsideDutyInput) ([]models.DutyLeg, error) {
	if err := dutykey.ValidateParts(in.CarNumber, in.Date); err != nil {
		return nil, err
	}
	legs := in.legs()
	if err := dutykey.ValidateLegs(legs); err != nil {
		return nil, err
	}
	if in.DutyAmount < 0 {
		return nil, domain.Invalid("dutyAmount", "must not be negative")
	}
	return legs, nil
}

func applyOutsideInput(rec *models.OutsideDuty, in OutsideDutyInput, legs []models.DutyLeg, key dutykey.Key) {
	rec.CarNumber = key.String()
	rec.Plate = key.Plate
	rec.DutyDate = key.Date
	rec.Suffix = key.Suffix
	rec.Model = strings.TrimSpace(in.Model)
	rec.Property = strings.TrimSpace(in.Property)
	rec.OwnerName = strings.TrimSpace(in.OwnerName)
	rec.DutyType, rec.DropLocation = dutykey.JoinLegs(legs)
	rec.DutyAmount = in.DutyAmount
}
