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
)

// LedgerQuery selects the records a ledger is computed over.
type LedgerQuery struct {
	Range      domain.DateRange
	Person     string
	Freelancer *bool
}

func (q LedgerQuery) scope() string {
	if p := strings.TrimSpace(q.Person); p != "" {
		return p
	}
	return domain.ScopeAll
}

// LedgerReport is the settlement view for one scope.
type LedgerReport struct {
	Scope        string           `json:"scope"`
	Range        domain.DateRange `json:"range"`
	Gross        float64          `json:"gross"`
	Advances     float64          `json:"advances"`
	Net          float64          `json:"net"`
	DutyCount    int              `json:"dutyCount"`
	AdvanceCount int              `json:"advanceCount"`
	TotalKM      float64          `json:"totalKm"`
	People       []ledger.Ledger  `json:"people"`
}

type LedgerService struct {
	DutyRepo    repositories.DutyRepository
	AdvanceRepo repositories.AdvanceRepository
	RequestID   string
	// Source replaces the repositories; used by tests.
	Source func(ctx context.Context, companyID string, q LedgerQuery) ([]models.DutyRecord, []models.AdvancePayment, error)
}

// Load fetches attendance and advances for the date window. Person scoping
// is left to the ledger core so company level advances stay visible in All.
func (s LedgerService) Load(ctx context.Context, companyID string, q LedgerQuery) ([]models.DutyRecord, []models.AdvancePayment, error) {
	if s.Source != nil {
		return s.Source(ctx, companyID, q)
	}
	duties, err := s.DutyRepo.List(ctx, companyID, models.DutyFilter{Range: q.Range, Freelancer: q.Freelancer})
	if err != nil {
		return nil, nil, fmt.Errorf("load duties: %w", err)
	}
	advances, err := s.AdvanceRepo.List(ctx, companyID, models.AdvanceFilter{Range: q.Range, Freelancer: q.Freelancer})
	if err != nil {
		return nil, nil, fmt.Errorf("load advances: %w", err)
	}
	return duties, advances, nil
}

func (s LedgerService) Report(ctx context.Context, companyID string, q LedgerQuery) (LedgerReport, error) {
	duties, advances, err := s.Load(ctx, companyID, q)
	if err != nil {
		return LedgerReport{}, err
	}
	rep := BuildLedgerReport(duties, advances, q)
	utils.LogEvent(s.RequestID, "ledger", "report",
		fmt.Sprintf("scope=%s duties=%d advances=%d", rep.Scope, rep.DutyCount, rep.AdvanceCount))
	return rep, nil
}

// BuildLedgerReport aggregates already loaded records. Records outside
// q.Range are ignored.
func BuildLedgerReport(duties []models.DutyRecord, advances []models.AdvancePayment, q LedgerQuery) LedgerReport {
	scope := q.scope()

	inRange := make([]models.DutyRecord, 0, len(duties))
	for _, d := range duties {
		if q.Range.Contains(d.Date) {
			inRange = append(inRange, d)
		}
	}
	advInRange := make([]models.AdvancePayment, 0, len(advances))
	for _, a := range advances {
		if q.Range.Contains(a.Date) {
			advInRange = append(advInRange, a)
		}
	}

	total := ledger.Compute(inRange, advInRange, scope)
	rep := LedgerReport{
		Scope:        scope,
		Range:        q.Range,
		Gross:        total.Gross,
		Advances:     total.Advances,
		Net:          total.Net,
		DutyCount:    total.DutyCount,
		AdvanceCount: total.AdvanceCount,
		People:       []ledger.Ledger{},
	}

	rep.TotalKM = ledger.TotalDistance(ScopedDuties(inRange, q))

	for _, row := range ledger.ByPerson(inRange, advInRange) {
		if scope == domain.ScopeAll || row.PersonID == scope {
			rep.People = append(rep.People, row)
		}
	}
	return rep
}

// ScopedDuties returns the duties inside q's range and person scope.
func ScopedDuties(duties []models.DutyRecord, q LedgerQuery) []models.DutyRecord {
	scope := q.scope()
	out := make([]models.DutyRecord, 0, len(duties))
	for _, d := range duties {
		if q.Range.Contains(d.Date) && ledger.InScope(d.Driver, scope) {
			out = append(out, d)
		}
	}
	return out
}
