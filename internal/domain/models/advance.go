package models

import (
	"time"

	"fleetops/internal/domain"
)

// AdvancePayment is cash handed out ahead of settlement. Driver is empty for
// company level advances.
type AdvancePayment struct {
	ID          string             `json:"_id"`
	CompanyID   string             `json:"companyId"`
	Driver      domain.PersonRef   `json:"driver"`
	Amount      domain.Amount      `json:"amount"`
	Date        string             `json:"date"`
	AdvanceType domain.AdvanceType `json:"advanceType"`
	GivenBy     string             `json:"givenBy"`
	Remark      string             `json:"remark"`
	CreatedAt   time.Time          `json:"createdAt"`
}

type AdvanceFilter struct {
	Range      domain.DateRange
	PersonID   string
	Freelancer *bool
}
