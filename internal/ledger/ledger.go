package ledger

import (
	"sort"
	"strings"

	"fleetops/internal/domain"
	"fleetops/internal/domain/models"
)

// Ledger is the settlement summary for one person or for everyone.
type Ledger struct {
	PersonID     string  `json:"personId,omitempty"`
	PersonName   string  `json:"personName,omitempty"`
	Gross        float64 `json:"gross"`
	Advances     float64 `json:"advances"`
	Net          float64 `json:"net"`
	DutyCount    int     `json:"dutyCount"`
	AdvanceCount int     `json:"advanceCount"`
}

// InScope reports whether ref belongs to scope. An empty scope means all.
func InScope(ref domain.PersonRef, scope string) bool {
	scope = strings.TrimSpace(scope)
	if scope == "" || scope == domain.ScopeAll {
		return true
	}
	return ref.ID() == scope
}

// Compute sums wages and advances for scope. Net may go negative.
func Compute(attendance []models.DutyRecord, advances []models.AdvancePayment, scope string) Ledger {
	var l Ledger
	if s := strings.TrimSpace(scope); s != "" && s != domain.ScopeAll {
		l.PersonID = s
	}

	for _, d := range attendance {
		if !InScope(d.Driver, scope) {
			continue
		}
		l.Gross += domain.Coerce(d.DailyWage)
		l.DutyCount++
		if l.PersonName == "" && l.PersonID != "" {
			l.PersonName = d.Driver.Name()
		}
	}
	for _, a := range advances {
		if !InScope(a.Driver, scope) {
			continue
		}
		l.Advances += domain.Coerce(a.Amount)
		l.AdvanceCount++
		if l.PersonName == "" && l.PersonID != "" {
			l.PersonName = a.Driver.Name()
		}
	}

	l.Net = l.Gross - l.Advances
	return l
}

// ByPerson returns one ledger per person id found in either collection,
// ordered by id. Records without a person are skipped.
func ByPerson(attendance []models.DutyRecord, advances []models.AdvancePayment) []Ledger {
	rows := map[string]*Ledger{}
	row := func(ref domain.PersonRef) *Ledger {
		id := ref.ID()
		if id == "" {
			return nil
		}
		l, ok := rows[id]
		if !ok {
			l = &Ledger{PersonID: id}
			rows[id] = l
		}
		if l.PersonName == "" {
			l.PersonName = ref.Name()
		}
		return l
	}

	for _, d := range attendance {
		if l := row(d.Driver); l != nil {
			l.Gross += domain.Coerce(d.DailyWage)
			l.DutyCount++
		}
	}
	for _, a := range advances {
		if l := row(a.Driver); l != nil {
			l.Advances += domain.Coerce(a.Amount)
			l.AdvanceCount++
		}
	}

	out := make([]Ledger, 0, len(rows))
	for _, l := range rows {
		l.Net = l.Gross - l.Advances
		out = append(out, *l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PersonID < out[j].PersonID })
	return out
}

// DutyDistance is punch-out km minus punch-in km, or 0 when either reading is
// missing or the odometer went backwards.
func DutyDistance(d models.DutyRecord) float64 {
	if d.PunchOut == nil || d.PunchIn.KM == nil || d.PunchOut.KM == nil {
		return 0
	}
	in := domain.Coerce(*d.PunchIn.KM)
	out := domain.Coerce(*d.PunchOut.KM)
	if out < in {
		return 0
	}
	return out - in
}

// TotalDistance sums DutyDistance over records.
func TotalDistance(records []models.DutyRecord) float64 {
	var total float64
	for _, d := range records {
		total += DutyDistance(d)
	}
	return total
}
