package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	intconfig "fleetops/internal/config"
	intdb "fleetops/internal/db"
	"fleetops/internal/domain"
	"fleetops/internal/domain/models"
)

type PersonRepository struct {
	DB *sql.DB
}

func (r PersonRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const personColumns = `id, company_id, name, mobile, COALESCE(username, ''), COALESCE(password_hash, ''),
	daily_wage, is_freelancer, status, role, created_at`

func scanPerson(row interface{ Scan(dest ...any) error }) (models.Person, error) {
	var p models.Person
	var wage float64
	err := row.Scan(&p.ID, &p.CompanyID, &p.Name, &p.Mobile, &p.Username, &p.PasswordHash,
		&wage, &p.IsFreelancer, &p.Status, &p.Role, &p.CreatedAt)
	p.DailyWage = domain.Amount(wage)
	return p, err
}

// List returns persons of a company ordered by name.
func (r PersonRepository) List(ctx context.Context, companyID string, f models.PersonFilter) ([]models.Person, error) {
	db := r.db()
	if db == nil {
		return nil, domain.InternalError{Msg: "database not connected"}
	}

	where := []string{"company_id = ?"}
	args := []any{companyID}
	if f.Freelancer != nil {
		where = append(where, "is_freelancer = ?")
		args = append(args, *f.Freelancer)
	}
	if q := strings.TrimSpace(f.Query); q != "" {
		where = append(where, "(name LIKE ? OR mobile LIKE ?)")
		like := "%" + q + "%"
		args = append(args, like, like)
	}

	rows, err := db.QueryContext(ctx, `SELECT `+personColumns+` FROM persons WHERE `+
		strings.Join(where, " AND ")+` ORDER BY name, id`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Person{}
	for rows.Next() {
		p, err := scanPerson(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r PersonRepository) GetByID(ctx context.Context, companyID, id string) (models.Person, error) {
	db := r.db()
	if db == nil {
		return models.Person{}, domain.InternalError{Msg: "database not connected"}
	}
	p, err := scanPerson(db.QueryRowContext(ctx,
		`SELECT `+personColumns+` FROM persons WHERE company_id = ? AND id = ? LIMIT 1`, companyID, id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Person{}, domain.NotFoundError{Resource: "person", Err: err}
	}
	return p, err
}

// GetByUsername is used by login and is not company scoped.
func (r PersonRepository) GetByUsername(ctx context.Context, username string) (models.Person, error) {
	db := r.db()
	if db == nil {
		return models.Person{}, domain.InternalError{Msg: "database not connected"}
	}
	p, err := scanPerson(db.QueryRowContext(ctx,
		`SELECT `+personColumns+` FROM persons WHERE username = ? LIMIT 1`, username))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Person{}, domain.NotFoundError{Resource: "person", Err: err}
	}
	return p, err
}

func (r PersonRepository) Insert(ctx context.Context, p models.Person) error {
	db := r.db()
	if db == nil {
		return domain.InternalError{Msg: "database not connected"}
	}
	_, err := db.ExecContext(ctx, `
		INSERT INTO persons (id, company_id, name, mobile, username, password_hash,
			daily_wage, is_freelancer, status, role, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.CompanyID, p.Name, p.Mobile, intdb.NullIfEmpty(p.Username), intdb.NullIfEmpty(p.PasswordHash),
		p.DailyWage.Float(), p.IsFreelancer, p.Status, p.Role, p.CreatedAt,
	)
	if intdb.IsDuplicate(err) {
		return domain.ConflictError{Resource: "person", Msg: "username already taken", Err: err}
	}
	return err
}

// Update rewrites editable fields. An empty PasswordHash keeps the stored one.
func (r PersonRepository) Update(ctx context.Context, p models.Person) error {
	db := r.db()
	if db == nil {
		return domain.InternalError{Msg: "database not connected"}
	}
	query := `UPDATE persons SET name = ?, mobile = ?, username = ?, daily_wage = ?, is_freelancer = ?, role = ?`
	args := []any{p.Name, p.Mobile, intdb.NullIfEmpty(p.Username), p.DailyWage.Float(), p.IsFreelancer, p.Role}
	if p.PasswordHash != "" {
		query += `, password_hash = ?`
		args = append(args, p.PasswordHash)
	}
	query += ` WHERE company_id = ? AND id = ?`
	args = append(args, p.CompanyID, p.ID)

	res, err := db.ExecContext(ctx, query, args...)
	if intdb.IsDuplicate(err) {
		return domain.ConflictError{Resource: "person", Msg: "username already taken", Err: err}
	}
	if err != nil {
		return err
	}
	return requireAffected(res, "person")
}

func (r PersonRepository) SetStatus(ctx context.Context, companyID, id, status string) error {
	db := r.db()
	if db == nil {
		return domain.InternalError{Msg: "database not connected"}
	}
	res, err := db.ExecContext(ctx, `UPDATE persons SET status = ? WHERE company_id = ? AND id = ?`, status, companyID, id)
	if err != nil {
		return err
	}
	return requireAffected(res, "person")
}

// Delete removes the person and releases any vehicle assigned to them in
// one transaction.
func (r PersonRepository) Delete(ctx context.Context, companyID, id string) error {
	db := r.db()
	if db == nil {
		return domain.InternalError{Msg: "database not connected"}
	}
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx,
		`UPDATE fleet_vehicles SET current_driver = NULL WHERE company_id = ? AND current_driver = ?`,
		companyID, id); err != nil {
		return fmt.Errorf("release vehicles: %w", err)
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM persons WHERE company_id = ? AND id = ?`, companyID, id)
	if err != nil {
		return err
	}
	if err := requireAffected(res, "person"); err != nil {
		return err
	}
	return tx.Commit()
}

// requireAffected maps a zero-row write to NotFound.
func requireAffected(res sql.Result, resource string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.NotFoundError{Resource: resource}
	}
	return nil
}
