package models

import (
	"time"

	"fleetops/internal/domain"
)

// OutsideDuty is one duty performed by an external vehicle. CarNumber is the
// composite plate#date#suffix string; Plate, DutyDate, Suffix and InstanceID
// are its structured parts.
type OutsideDuty struct {
	ID           string        `json:"_id"`
	CompanyID    string        `json:"companyId"`
	CarNumber    string        `json:"carNumber"`
	Plate        string        `json:"plate"`
	DutyDate     string        `json:"date"`
	Suffix       string        `json:"suffix"`
	InstanceID   string        `json:"instanceId"`
	Model        string        `json:"model"`
	Property     string        `json:"property"`
	OwnerName    string        `json:"ownerName"`
	DutyType     string        `json:"dutyType"`
	DropLocation string        `json:"dropLocation"`
	DutyAmount   domain.Amount `json:"dutyAmount"`
	CreatedAt    time.Time     `json:"createdAt"`
}

// DutyLeg is one sub-duty of an outside duty and where it ended.
type DutyLeg struct {
	Type         string `json:"type"`
	DropLocation string `json:"dropLocation"`
}
