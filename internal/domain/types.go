package domain

// ScopeAll selects every person when aggregating.
const ScopeAll = "All"

// Person status values.
const (
	StatusActive  = "active"
	StatusBlocked = "blocked"
)

// AdvanceType classifies who funded an advance.
type AdvanceType string

const (
	AdvanceOffice AdvanceType = "Office"
	AdvanceStaff  AdvanceType = "Staff"
	AdvanceOther  AdvanceType = "Other"
)

func (t AdvanceType) Valid() bool {
	switch t {
	case AdvanceOffice, AdvanceStaff, AdvanceOther:
		return true
	default:
		return false
	}
}

// DateRange is an inclusive YYYY-MM-DD window; empty bounds are open.
type DateRange struct {
	From string `json:"from,omitempty"`
	To   string `json:"to,omitempty"`
}

// Contains compares lexicographically, which matches chronological order
// for YYYY-MM-DD strings.
func (r DateRange) Contains(date string) bool {
	if r.From != "" && date < r.From {
		return false
	}
	if r.To != "" && date > r.To {
		return false
	}
	return true
}

// RequestContext carries authenticated caller info.
type RequestContext struct {
	UserID    string `json:"userId"`
	CompanyID string `json:"companyId"`
	Role      string `json:"role"`
}
