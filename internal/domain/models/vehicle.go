package models

import (
	"time"

	"fleetops/internal/domain"
)

// FleetVehicle is an owned vehicle keyed by its plate.
type FleetVehicle struct {
	CarNumber     string            `json:"carNumber"`
	CompanyID     string            `json:"companyId"`
	Model         string            `json:"model"`
	PermitType    string            `json:"permitType"`
	CarType       string            `json:"carType"`
	FastagNumber  string            `json:"fastagNumber"`
	FastagBalance domain.Amount     `json:"fastagBalance"`
	FastagBank    string            `json:"fastagBank"`
	DutyAmount    domain.Amount     `json:"dutyAmount"`
	CurrentDriver *string           `json:"currentDriver"`
	Documents     []VehicleDocument `json:"documents"`
	CreatedAt     time.Time         `json:"createdAt"`
}

type VehicleDocument struct {
	ID           int64  `json:"id"`
	CarNumber    string `json:"carNumber"`
	DocumentType string `json:"documentType"`
	ImageURL     string `json:"imageUrl"`
	ExpiryDate   string `json:"expiryDate"`
}

// ExpiringDocument is a document with its remaining validity.
type ExpiringDocument struct {
	VehicleDocument
	DaysLeft int `json:"daysLeft"`
}
