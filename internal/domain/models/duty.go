package models

import (
	"time"

	"fleetops/internal/domain"
)

// PunchPoint is one end of a duty. KM is nil when the odometer was not read.
type PunchPoint struct {
	Time string         `json:"time,omitempty"`
	KM   *domain.Amount `json:"km,omitempty"`
}

// DutyRecord is one punch-in/punch-out session.
type DutyRecord struct {
	ID             string           `json:"_id"`
	CompanyID      string           `json:"companyId"`
	Driver         domain.PersonRef `json:"driver"`
	Vehicle        string           `json:"vehicle"`
	Date           string           `json:"date"`
	PunchIn        PunchPoint       `json:"punchIn"`
	PunchOut       *PunchPoint      `json:"punchOut,omitempty"`
	DailyWage      domain.Amount    `json:"dailyWage"`
	FuelAmount     domain.Amount    `json:"fuelAmount"`
	ParkingAmount  domain.Amount    `json:"tollParkingAmount"`
	PickUpLocation string           `json:"pickUpLocation"`
	DropLocation   string           `json:"dropLocation"`
	CreatedAt      time.Time        `json:"createdAt"`
}

// Open reports whether the duty has not been punched out yet.
func (d DutyRecord) Open() bool {
	return d.PunchOut == nil || d.PunchOut.Time == ""
}

// DutyFilter narrows duty listings.
type DutyFilter struct {
	Range      domain.DateRange
	PersonID   string
	Freelancer *bool
}
