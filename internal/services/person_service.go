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
	"golang.org/x/crypto/bcrypt"
)

const defaultRole = "driver"

type PersonInput struct {
	Name         string        `json:"name" binding:"required"`
	Mobile       string        `json:"mobile"`
	Username     string        `json:"username"`
	Password     string        `json:"password"`
	DailyWage    domain.Amount `json:"dailyWage"`
	IsFreelancer bool          `json:"isFreelancer"`
	Role         string        `json:"role" binding:"omitempty,oneof=admin manager driver staff"`
}

type PersonService struct {
	Repo      repositories.PersonRepository
	RequestID string
}

func (s PersonService) List(ctx context.Context, companyID string, f models.PersonFilter) ([]models.Person, error) {
	return s.Repo.List(ctx, companyID, f)
}

func (s PersonService) Create(ctx context.Context, rc domain.RequestContext, in PersonInput) (models.Person, error) {
	p := models.Person{
		ID:        uuid.NewString(),
		CompanyID: rc.CompanyID,
		Status:    domain.StatusActive,
		CreatedAt: utils.NowUTC(),
	}
	if err := applyPersonInput(&p, in, true); err != nil {
		return models.Person{}, err
	}
	if err := s.Repo.Insert(ctx, p); err != nil {
		return models.Person{}, err
	}
	utils.LogEvent(s.RequestID, "persons", "create", "id="+p.ID)
	return p, nil
}

// Update edits profile fields. Status is changed only through ToggleStatus.
func (s PersonService) Update(ctx context.Context, rc domain.RequestContext, id string, in PersonInput) (models.Person, error) {
	p, err := s.Repo.GetByID(ctx, rc.CompanyID, id)
	if err != nil {
		return models.Person{}, err
	}
	p.PasswordHash = ""
	if err := applyPersonInput(&p, in, false); err != nil {
		return models.Person{}, err
	}
	if err := s.Repo.Update(ctx, p); err != nil {
		return models.Person{}, err
	}
	utils.LogEvent(s.RequestID, "persons", "update", "id="+p.ID)
	return p, nil
}

func (s PersonService) ToggleStatus(ctx context.Context, rc domain.RequestContext, id string) (models.Person, error) {
	p, err := s.Repo.GetByID(ctx, rc.CompanyID, id)
	if err != nil {
		return models.Person{}, err
	}
	next := domain.StatusBlocked
	if p.Blocked() {
		next = domain.StatusActive
	}
	if err := s.Repo.SetStatus(ctx, rc.CompanyID, id, next); err != nil {
		return models.Person{}, err
	}
	p.Status = next
	utils.LogEvent(s.RequestID, "persons", "toggle_status", fmt.Sprintf("id=%s status=%s", id, next))
	return p, nil
}

func (s PersonService) Delete(ctx context.Context, rc domain.RequestContext, id string) error {
	if err := s.Repo.Delete(ctx, rc.CompanyID, id); err != nil {
		return err
	}
	utils.LogEvent(s.RequestID, "persons", "delete", "id="+id)
	return nil
}

// applyPersonInput copies editable fields. A login needs a password when it
// is first created; on edit an empty password keeps the stored hash.
func applyPersonInput(p *models.Person, in PersonInput, creating bool) error {
	name := utils.NormalizeSpace(in.Name)
	if name == "" {
		return domain.Invalid("name", "name is required")
	}
	if in.DailyWage < 0 {
		return domain.Invalid("dailyWage", "must not be negative")
	}
	username := strings.ToLower(strings.TrimSpace(in.Username))
	if username != "" && creating && in.Password == "" {
		return domain.Invalid("password", "password is required for a login")
	}
	if in.Password != "" {
		if username == "" {
			return domain.Invalid("username", "username is required with a password")
		}
		if len(in.Password) < 6 {
			return domain.Invalid("password", "must be at least 6 characters")
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
		if err != nil {
			return domain.InternalError{Msg: "hash password", Err: err}
		}
		p.PasswordHash = string(hash)
	}

	p.Name = name
	p.Mobile = strings.TrimSpace(in.Mobile)
	p.Username = username
	p.DailyWage = in.DailyWage
	p.IsFreelancer = in.IsFreelancer
	p.Role = utils.FirstNonEmpty(strings.ToLower(in.Role), p.Role, defaultRole)
	return nil
}
