package repositories

import (
	"context"
	"database/sql"
	"strings"

	intconfig "fleetops/internal/config"
	intdb "fleetops/internal/db"
	"fleetops/internal/domain"
	"fleetops/internal/domain/models"
)

type AdvanceRepository struct {
	DB *sql.DB
}

func (r AdvanceRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

// List returns advances of a company, newest first. Company level advances
// (no person) are included unless a person is requested.
func (r AdvanceRepository) List(ctx context.Context, companyID string, f models.AdvanceFilter) ([]models.AdvancePayment, error) {
	db := r.db()
	if db == nil {
		return nil, domain.InternalError{Msg: "database not connected"}
	}

	where := []string{"a.company_id = ?"}
	args := []any{companyID}
	if f.Range.From != "" {
		where = append(where, "a.advance_date >= ?")
		args = append(args, f.Range.From)
	}
	if f.Range.To != "" {
		where = append(where, "a.advance_date <= ?")
		args = append(args, f.Range.To)
	}
	if f.PersonID != "" && f.PersonID != domain.ScopeAll {
		where = append(where, "a.person_id = ?")
		args = append(args, f.PersonID)
	}
	if f.Freelancer != nil {
		where = append(where, "p.is_freelancer = ?")
		args = append(args, *f.Freelancer)
	}

	rows, err := db.QueryContext(ctx, `
		SELECT a.id, a.company_id, COALESCE(a.person_id, ''), p.name, p.mobile, p.is_freelancer,
			a.amount, DATE_FORMAT(a.advance_date, '%Y-%m-%d'), a.advance_type, a.given_by, a.remark, a.created_at
		FROM advance_payments a
		LEFT JOIN persons p ON p.id = a.person_id AND p.company_id = a.company_id
		WHERE `+strings.Join(where, " AND ")+`
		ORDER BY a.advance_date DESC, a.created_at DESC`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.AdvancePayment{}
	for rows.Next() {
		var (
			a            models.AdvancePayment
			personID     string
			name, mobile sql.NullString
			freelancer   sql.NullBool
			amount       float64
			advType      string
		)
		if err := rows.Scan(&a.ID, &a.CompanyID, &personID, &name, &mobile, &freelancer,
			&amount, &a.Date, &advType, &a.GivenBy, &a.Remark, &a.CreatedAt); err != nil {
			return nil, err
		}
		switch {
		case personID == "":
		case name.Valid:
			a.Driver = domain.RefEmbedded(domain.PersonSummary{
				ID: personID, Name: name.String, Mobile: mobile.String, IsFreelancer: freelancer.Bool,
			})
		default:
			a.Driver = domain.RefByID(personID)
		}
		a.Amount = domain.Amount(amount)
		a.AdvanceType = domain.AdvanceType(advType)
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r AdvanceRepository) Insert(ctx context.Context, a models.AdvancePayment) error {
	db := r.db()
	if db == nil {
		return domain.InternalError{Msg: "database not connected"}
	}
	_, err := db.ExecContext(ctx, `
		INSERT INTO advance_payments (id, company_id, person_id, amount, advance_date,
			advance_type, given_by, remark, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		a.ID, a.CompanyID, intdb.NullIfEmpty(a.Driver.ID()), a.Amount.Float(), a.Date,
		string(a.AdvanceType), a.GivenBy, a.Remark, a.CreatedAt,
	)
	return err
}

func (r AdvanceRepository) Delete(ctx context.Context, companyID, id string) error {
	db := r.db()
	if db == nil {
		return domain.InternalError{Msg: "database not connected"}
	}
	res, err := db.ExecContext(ctx, `DELETE FROM advance_payments WHERE company_id = ? AND id = ?`, companyID, id)
	if err != nil {
		return err
	}
	return requireAffected(res, "advance")
}
