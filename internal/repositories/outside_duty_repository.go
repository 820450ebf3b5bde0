package repositories

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	intconfig "fleetops/internal/config"
	intdb "fleetops/internal/db"
	"fleetops/internal/domain"
	"fleetops/internal/domain/models"
)

type OutsideDutyRepository struct {
	DB *sql.DB
}

func (r OutsideDutyRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const outsideColumns = `id, company_id, car_number, plate, duty_date, suffix, instance_id,
	model, property, owner_name, duty_type, drop_location, duty_amount, created_at`

func scanOutside(row interface{ Scan(dest ...any) error }) (models.OutsideDuty, error) {
	var o models.OutsideDuty
	var amount float64
	err := row.Scan(&o.ID, &o.CompanyID, &o.CarNumber, &o.Plate, &o.DutyDate, &o.Suffix, &o.InstanceID,
		&o.Model, &o.Property, &o.OwnerName, &o.DutyType, &o.DropLocation, &amount, &o.CreatedAt)
	o.DutyAmount = domain.Amount(amount)
	return o, err
}

// List returns every outside duty of a company. Date filtering and ordering
// happen on the decoded key, so the query only narrows by free text.
func (r OutsideDutyRepository) List(ctx context.Context, companyID, query string) ([]models.OutsideDuty, error) {
	db := r.db()
	if db == nil {
		return nil, domain.InternalError{Msg: "database not connected"}
	}

	where := []string{"company_id = ?"}
	args := []any{companyID}
	if q := strings.TrimSpace(query); q != "" {
		where = append(where, "(car_number LIKE ? OR owner_name LIKE ? OR property LIKE ?)")
		like := "%" + q + "%"
		args = append(args, like, like, like)
	}

	rows, err := db.QueryContext(ctx, `SELECT `+outsideColumns+` FROM outside_duties WHERE `+
		strings.Join(where, " AND "), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.OutsideDuty{}
	for rows.Next() {
		o, err := scanOutside(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

func (r OutsideDutyRepository) GetByID(ctx context.Context, companyID, id string) (models.OutsideDuty, error) {
	db := r.db()
	if db == nil {
		return models.OutsideDuty{}, domain.InternalError{Msg: "database not connected"}
	}
	o, err := scanOutside(db.QueryRowContext(ctx,
		`SELECT `+outsideColumns+` FROM outside_duties WHERE company_id = ? AND id = ? LIMIT 1`, companyID, id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.OutsideDuty{}, domain.NotFoundError{Resource: "outside duty", Err: err}
	}
	return o, err
}

func (r OutsideDutyRepository) Insert(ctx context.Context, o models.OutsideDuty) error {
	db := r.db()
	if db == nil {
		return domain.InternalError{Msg: "database not connected"}
	}
	_, err := db.ExecContext(ctx, `
		INSERT INTO outside_duties (id, company_id, car_number, plate, duty_date, suffix, instance_id,
			model, property, owner_name, duty_type, drop_location, duty_amount, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		o.ID, o.CompanyID, o.CarNumber, o.Plate, o.DutyDate, o.Suffix, o.InstanceID,
		o.Model, o.Property, o.OwnerName, o.DutyType, o.DropLocation, o.DutyAmount.Float(), o.CreatedAt,
	)
	if intdb.IsDuplicate(err) {
		return domain.ConflictError{Resource: "outside duty", Msg: "instance already recorded", Err: err}
	}
	return err
}

// Update rewrites the record in place, key columns included.
func (r OutsideDutyRepository) Update(ctx context.Context, o models.OutsideDuty) error {
	db := r.db()
	if db == nil {
		return domain.InternalError{Msg: "database not connected"}
	}
	res, err := db.ExecContext(ctx, `
		UPDATE outside_duties
		SET car_number = ?, plate = ?, duty_date = ?, suffix = ?, instance_id = ?,
			model = ?, property = ?, owner_name = ?, duty_type = ?, drop_location = ?, duty_amount = ?
		WHERE company_id = ? AND id = ?`,
		o.CarNumber, o.Plate, o.DutyDate, o.Suffix, o.InstanceID,
		o.Model, o.Property, o.OwnerName, o.DutyType, o.DropLocation, o.DutyAmount.Float(),
		o.CompanyID, o.ID,
	)
	if intdb.IsDuplicate(err) {
		return domain.ConflictError{Resource: "outside duty", Msg: "instance already recorded", Err: err}
	}
	if err != nil {
		return err
	}
	return requireAffected(res, "outside duty")
}

func (r OutsideDutyRepository) Delete(ctx context.Context, companyID, id string) error {
	db := r.db()
	if db == nil {
		return domain.InternalError{Msg: "database not connected"}
	}
	res, err := db.ExecContext(ctx, `DELETE FROM outside_duties WHERE company_id = ? AND id = ?`, companyID, id)
	if err != nil {
		return err
	}
	return requireAffected(res, "outside duty")
}
