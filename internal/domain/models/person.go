package models

import (
	"time"

	"fleetops/internal/domain"
)

// Person is a driver, freelancer or staff member of one company.
type Person struct {
	ID           string        `json:"_id"`
	CompanyID    string        `json:"companyId"`
	Name         string        `json:"name"`
	Mobile       string        `json:"mobile"`
	Username     string        `json:"username,omitempty"`
	PasswordHash string        `json:"-"`
	DailyWage    domain.Amount `json:"dailyWage"`
	IsFreelancer bool          `json:"isFreelancer"`
	Status       string        `json:"status"`
	Role         string        `json:"role,omitempty"`
	CreatedAt    time.Time     `json:"createdAt"`
}

// Ref returns an embedded reference to p.
func (p Person) Ref() domain.PersonRef {
	return domain.RefEmbedded(domain.PersonSummary{
		ID:           p.ID,
		Name:         p.Name,
		Mobile:       p.Mobile,
		IsFreelancer: p.IsFreelancer,
	})
}

func (p Person) Blocked() bool {
	return p.Status == domain.StatusBlocked
}

// PersonFilter narrows person listings.
type PersonFilter struct {
	Freelancer *bool
	Query      string
}
