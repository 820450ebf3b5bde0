package services

import (
	"context"
	"fmt"
	"strings"

	"fleetops/internal/domain"
	"fleetops/internal/domain/models"
	"fleetops/internal/ledger"
	"fleetops/internal/repositories"
	"fleetops/internal/utils"

	"github.com/google/uuid"
)

type PunchInInput struct {
	PersonID       string         `json:"personId" binding:"required"`
	Vehicle        string         `json:"vehicle"`
	Date           string         `json:"date" binding:"omitempty,isodate"`
	Time           string         `json:"time" binding:"required"`
	KM             *domain.Amount `json:"km"`
	PickUpLocation string         `json:"pickUpLocation"`
}

type PunchOutInput struct {
	Time          string         `json:"time" binding:"required"`
	KM            *domain.Amount `json:"km"`
	FuelAmount    domain.Amount  `json:"fuelAmount"`
	ParkingAmount domain.Amount  `json:"tollParkingAmount"`
	DropLocation  string         `json:"dropLocation"`
}

// BackfillInput inserts a completed duty in one step. DailyWage defaults to
// the person's current wage.
type BackfillInput struct {
	PersonID       string            `json:"personId" binding:"required"`
	Vehicle        string            `json:"vehicle"`
	Date           string            `json:"date" binding:"required,isodate"`
	PunchIn        models.PunchPoint `json:"punchIn"`
	PunchOut       models.PunchPoint `json:"punchOut"`
	DailyWage      *domain.Amount    `json:"dailyWage"`
	FuelAmount     domain.Amount     `json:"fuelAmount"`
	ParkingAmount  domain.Amount     `json:"tollParkingAmount"`
	PickUpLocation string            `json:"pickUpLocation"`
	DropLocation   string            `json:"dropLocation"`
}

// DutyView adds the derived distance to a duty.
type DutyView struct {
	models.DutyRecord
	TotalKM float64 `json:"totalKm"`
}

func NewDutyView(d models.DutyRecord) DutyView {
	return DutyView{DutyRecord: d, TotalKM: ledger.DutyDistance(d)}
}

type DutyService struct {
	Repo       repositories.DutyRepository
	PersonRepo repositories.PersonRepository
	RequestID  string
}

func (s DutyService) List(ctx context.Context, companyID string, f models.DutyFilter) ([]DutyView, error) {
	recs, err := s.Repo.List(ctx, companyID, f)
	if err != nil {
		return nil, err
	}
	out := make([]DutyView, 0, len(recs))
	for _, d := range recs {
		out = append(out, NewDutyView(d))
	}
	return out, nil
}

// PunchIn opens a duty. A person may hold one open duty at a time.
func (s DutyService) PunchIn(ctx context.Context, rc domain.RequestContext, in PunchInInput) (DutyView, error) {
	person, err := s.activePerson(ctx, rc.CompanyID, in.PersonID)
	if err != nil {
		return DutyView{}, err
	}
	open, err := s.Repo.OpenFor(ctx, rc.CompanyID, person.ID)
	if err != nil {
		return DutyView{}, err
	}
	if open != "" {
		return DutyView{}, domain.ConflictError{Resource: "duty", Msg: "person already has an open duty"}
	}

	now := utils.NowUTC()
	d := models.DutyRecord{
		ID:             uuid.NewString(),
		CompanyID:      rc.CompanyID,
		Driver:         person.Ref(),
		Vehicle:        strings.ToUpper(strings.TrimSpace(in.Vehicle)),
		Date:           utils.FirstNonEmpty(in.Date, utils.FormatDate(now)),
		PunchIn:        models.PunchPoint{Time: strings.TrimSpace(in.Time), KM: in.KM},
		DailyWage:      person.DailyWage,
		PickUpLocation: strings.TrimSpace(in.PickUpLocation),
		CreatedAt:      now,
	}
	if err := s.Repo.Insert(ctx, d); err != nil {
		return DutyView{}, err
	}
	utils.LogEvent(s.RequestID, "duties", "punch_in", fmt.Sprintf("id=%s person=%s", d.ID, person.ID))
	return NewDutyView(d), nil
}

func (s DutyService) PunchOut(ctx context.Context, rc domain.RequestContext, id string, in PunchOutInput) (DutyView, error) {
	d, err := s.Repo.GetByID(ctx, rc.CompanyID, id)
	if err != nil {
		return DutyView{}, err
	}
	if !d.Open() {
		return DutyView{}, domain.ConflictError{Resource: "duty", Msg: "duty is not open"}
	}
	if in.FuelAmount < 0 || in.ParkingAmount < 0 {
		return DutyView{}, domain.Invalid("fuelAmount", "amounts must not be negative")
	}

	out := models.PunchPoint{Time: strings.TrimSpace(in.Time), KM: in.KM}
	drop := strings.TrimSpace(in.DropLocation)
	if err := s.Repo.PunchOut(ctx, rc.CompanyID, id, out, in.FuelAmount, in.ParkingAmount, drop); err != nil {
		return DutyView{}, err
	}
	d.PunchOut = &out
	d.FuelAmount = in.FuelAmount
	d.ParkingAmount = in.ParkingAmount
	d.DropLocation = drop
	utils.LogEvent(s.RequestID, "duties", "punch_out", "id="+id)
	return NewDutyView(d), nil
}

// Backfill records a duty that was never punched live.
func (s DutyService) Backfill(ctx context.Context, rc domain.RequestContext, in BackfillInput) (DutyView, error) {
	if strings.TrimSpace(in.PunchIn.Time) == "" {
		return DutyView{}, domain.Invalid("punchIn.time", "punch-in time is required")
	}
	if strings.TrimSpace(in.PunchOut.Time) == "" {
		return DutyView{}, domain.Invalid("punchOut.time", "punch-out time is required")
	}
	person, err := s.PersonRepo.GetByID(ctx, rc.CompanyID, in.PersonID)
	if err != nil {
		return DutyView{}, err
	}

	wage := person.DailyWage
	if in.DailyWage != nil {
		wage = *in.DailyWage
	}
	if wage < 0 {
		return DutyView{}, domain.Invalid("dailyWage", "must not be negative")
	}
	out := in.PunchOut
	d := models.DutyRecord{
		ID:             uuid.NewString(),
		CompanyID:      rc.CompanyID,
		Driver:         person.Ref(),
		Vehicle:        strings.ToUpper(strings.TrimSpace(in.Vehicle)),
		Date:           in.Date,
		PunchIn:        in.PunchIn,
		PunchOut:       &out,
		DailyWage:      wage,
		FuelAmount:     in.FuelAmount,
		ParkingAmount:  in.ParkingAmount,
		PickUpLocation: strings.TrimSpace(in.PickUpLocation),
		DropLocation:   strings.TrimSpace(in.DropLocation),
		CreatedAt:      utils.NowUTC(),
	}
	if err := s.Repo.Insert(ctx, d); err != nil {
		return DutyView{}, err
	}
	utils.LogEvent(s.RequestID, "duties", "backfill", fmt.Sprintf("id=%s person=%s date=%s", d.ID, person.ID, d.Date))
	return NewDutyView(d), nil
}

func (s DutyService) Delete(ctx context.Context, rc domain.RequestContext, id string) error {
	if err := s.Repo.Delete(ctx, rc.CompanyID, id); err != nil {
		return err
	}
	utils.LogEvent(s.RequestID, "duties", "delete", "id="+id)
	return nil
}

func (s DutyService) activePerson(ctx context.Context, companyID, id string) (models.Person, error) {
	p, err := s.PersonRepo.GetByID(ctx, companyID, strings.TrimSpace(id))
	if err != nil {
		return models.Person{}, err
	}
	if p.Blocked() {
		return models.Person{}, domain.Invalid("personId", "person is blocked")
	}
	return p, nil
}
