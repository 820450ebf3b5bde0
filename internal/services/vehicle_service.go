package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"fleetops/internal/domain"
	"fleetops/internal/domain/models"
	"fleetops/internal/dutykey"
	"fleetops/internal/repositories"
	"fleetops/internal/utils"
)

type VehicleInput struct {
	CarNumber     string        `json:"carNumber" binding:"required,plate"`
	Model         string        `json:"model"`
	PermitType    string        `json:"permitType"`
	CarType       string        `json:"carType"`
	FastagNumber  string        `json:"fastagNumber"`
	FastagBalance domain.Amount `json:"fastagBalance"`
	FastagBank    string        `json:"fastagBank"`
	DutyAmount    domain.Amount `json:"dutyAmount"`
	CurrentDriver *string       `json:"currentDriver"`
}

type DocumentInput struct {
	DocumentType string `json:"documentType" binding:"required"`
	ImageURL     string `json:"imageUrl"`
	ExpiryDate   string `json:"expiryDate" binding:"omitempty,isodate"`
}

type VehicleService struct {
	Repo       repositories.VehicleRepository
	PersonRepo repositories.PersonRepository
	RequestID  string
	// Now is the clock used for expiry windows.
	Now func() time.Time
}

func (s VehicleService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s VehicleService) List(ctx context.Context, companyID string) ([]models.FleetVehicle, error) {
	return s.Repo.List(ctx, companyID)
}

func (s VehicleService) Create(ctx context.Context, rc domain.RequestContext, in VehicleInput) (models.FleetVehicle, error) {
	v := models.FleetVehicle{
		CarNumber: dutykey.NormalizePlate(in.CarNumber),
		CompanyID: rc.CompanyID,
		Documents: []models.VehicleDocument{},
		CreatedAt: utils.NowUTC(),
	}
	if err := s.apply(ctx, rc.CompanyID, &v, in); err != nil {
		return models.FleetVehicle{}, err
	}
	if err := s.Repo.Insert(ctx, v); err != nil {
		return models.FleetVehicle{}, err
	}
	utils.LogEvent(s.RequestID, "vehicles", "create", "plate="+v.CarNumber)
	return v, nil
}

// Update edits the vehicle addressed by plate. The plate itself is the key
// and is not renamed.
func (s VehicleService) Update(ctx context.Context, rc domain.RequestContext, plate string, in VehicleInput) (models.FleetVehicle, error) {
	v, err := s.Repo.Get(ctx, rc.CompanyID, dutykey.NormalizePlate(plate))
	if err != nil {
		return models.FleetVehicle{}, err
	}
	if err := s.apply(ctx, rc.CompanyID, &v, in); err != nil {
		return models.FleetVehicle{}, err
	}
	if err := s.Repo.Update(ctx, v); err != nil {
		return models.FleetVehicle{}, err
	}
	utils.LogEvent(s.RequestID, "vehicles", "update", "plate="+v.CarNumber)
	return v, nil
}

func (s VehicleService) Delete(ctx context.Context, rc domain.RequestContext, plate string) error {
	plate = dutykey.NormalizePlate(plate)
	if err := s.Repo.Delete(ctx, rc.CompanyID, plate); err != nil {
		return err
	}
	utils.LogEvent(s.RequestID, "vehicles", "delete", "plate="+plate)
	return nil
}

func (s VehicleService) AddDocument(ctx context.Context, rc domain.RequestContext, plate string, in DocumentInput) (models.VehicleDocument, error) {
	plate = dutykey.NormalizePlate(plate)
	if _, err := s.Repo.Get(ctx, rc.CompanyID, plate); err != nil {
		return models.VehicleDocument{}, err
	}
	if in.ExpiryDate != "" && !utils.IsISODate(in.ExpiryDate) {
		return models.VehicleDocument{}, domain.Invalid("expiryDate", "must be YYYY-MM-DD")
	}
	d := models.VehicleDocument{
		CarNumber:    plate,
		DocumentType: strings.TrimSpace(in.DocumentType),
		ImageURL:     strings.TrimSpace(in.ImageURL),
		ExpiryDate:   in.ExpiryDate,
	}
	id, err := s.Repo.AddDocument(ctx, rc.CompanyID, d)
	if err != nil {
		return models.VehicleDocument{}, err
	}
	d.ID = id
	utils.LogEvent(s.RequestID, "vehicles", "add_document", fmt.Sprintf("plate=%s type=%s", plate, d.DocumentType))
	return d, nil
}

// Expiring lists documents that expire within days, already expired ones
// included, soonest first.
func (s VehicleService) Expiring(ctx context.Context, companyID string, days int) ([]models.ExpiringDocument, error) {
	if days < 0 {
		return nil, domain.Invalid("days", "must not be negative")
	}
	docs, err := s.Repo.Documents(ctx, companyID)
	if err != nil {
		return nil, err
	}
	return ExpiringWithin(docs, days, s.now()), nil
}

// ExpiringWithin returns docs whose expiry is at most days away from now.
func ExpiringWithin(docs []models.VehicleDocument, days int, now time.Time) []models.ExpiringDocument {
	out := []models.ExpiringDocument{}
	for _, d := range docs {
		left, ok := utils.DaysUntil(d.ExpiryDate, now)
		if !ok || left > days {
			continue
		}
		out = append(out, models.ExpiringDocument{VehicleDocument: d, DaysLeft: left})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].DaysLeft < out[j].DaysLeft })
	return out
}

func (s VehicleService) apply(ctx context.Context, companyID string, v *models.FleetVehicle, in VehicleInput) error {
	if in.FastagBalance < 0 || in.DutyAmount < 0 {
		return domain.Invalid("dutyAmount", "amounts must not be negative")
	}
	v.CurrentDriver = nil
	if in.CurrentDriver != nil && strings.TrimSpace(*in.CurrentDriver) != "" {
		p, err := s.PersonRepo.GetByID(ctx, companyID, strings.TrimSpace(*in.CurrentDriver))
		if err != nil {
			return err
		}
		id := p.ID
		v.CurrentDriver = &id
	}
	v.Model = strings.TrimSpace(in.Model)
	v.PermitType = strings.TrimSpace(in.PermitType)
	v.CarType = strings.TrimSpace(in.CarType)
	v.FastagNumber = strings.TrimSpace(in.FastagNumber)
	v.FastagBalance = in.FastagBalance
	v.FastagBank = strings.TrimSpace(in.FastagBank)
	v.DutyAmount = in.DutyAmount
	return nil
}
