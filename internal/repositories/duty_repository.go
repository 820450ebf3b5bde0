package repositories

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	intconfig "fleetops/internal/config"
	"fleetops/internal/domain"
	"fleetops/internal/domain/models"
)

type DutyRepository struct {
	DB *sql.DB
}

func (r DutyRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const dutySelect = `
	SELECT d.id, d.company_id, d.person_id, p.name, p.mobile, p.is_freelancer,
		d.car_number, DATE_FORMAT(d.duty_date, '%Y-%m-%d'),
		d.punch_in_time, d.punch_in_km, d.punch_out_time, d.punch_out_km,
		d.daily_wage, d.fuel_amount, d.parking_amount,
		d.pick_up_location, d.drop_location, d.created_at
	FROM duty_records d
	LEFT JOIN persons p ON p.id = d.person_id AND p.company_id = d.company_id`

func scanDuty(row interface{ Scan(dest ...any) error }) (models.DutyRecord, error) {
	var (
		d                   models.DutyRecord
		personID            string
		name, mobile        sql.NullString
		freelancer          sql.NullBool
		inKM, outKM         sql.NullFloat64
		outTime             sql.NullString
		wage, fuel, parking float64
	)
	if err := row.Scan(&d.ID, &d.CompanyID, &personID, &name, &mobile, &freelancer,
		&d.Vehicle, &d.Date,
		&d.PunchIn.Time, &inKM, &outTime, &outKM,
		&wage, &fuel, &parking,
		&d.PickUpLocation, &d.DropLocation, &d.CreatedAt); err != nil {
		return models.DutyRecord{}, err
	}

	if name.Valid {
		d.Driver = domain.RefEmbedded(domain.PersonSummary{
			ID: personID, Name: name.String, Mobile: mobile.String, IsFreelancer: freelancer.Bool,
		})
	} else {
		d.Driver = domain.RefByID(personID)
	}
	d.PunchIn.KM = amountPtr(inKM)
	if outTime.Valid && outTime.String != "" {
		d.PunchOut = &models.PunchPoint{Time: outTime.String, KM: amountPtr(outKM)}
	}
	d.DailyWage = domain.Amount(wage)
	d.FuelAmount = domain.Amount(fuel)
	d.ParkingAmount = domain.Amount(parking)
	return d, nil
}

func amountPtr(v sql.NullFloat64) *domain.Amount {
	if !v.Valid {
		return nil
	}
	a := domain.Amount(v.Float64)
	return &a
}

func kmArg(a *domain.Amount) any {
	if a == nil {
		return nil
	}
	return a.Float()
}

// List returns duties of a company, newest first.
func (r DutyRepository) List(ctx context.Context, companyID string, f models.DutyFilter) ([]models.DutyRecord, error) {
	db := r.db()
	if db == nil {
		return nil, domain.InternalError{Msg: "database not connected"}
	}

	where := []string{"d.company_id = ?"}
	args := []any{companyID}
	if f.Range.From != "" {
		where = append(where, "d.duty_date >= ?")
		args = append(args, f.Range.From)
	}
	if f.Range.To != "" {
		where = append(where, "d.duty_date <= ?")
		args = append(args, f.Range.To)
	}
	if f.PersonID != "" && f.PersonID != domain.ScopeAll {
		where = append(where, "d.person_id = ?")
		args = append(args, f.PersonID)
	}
	if f.Freelancer != nil {
		where = append(where, "p.is_freelancer = ?")
		args = append(args, *f.Freelancer)
	}

	rows, err := db.QueryContext(ctx, dutySelect+` WHERE `+strings.Join(where, " AND ")+
		` ORDER BY d.duty_date DESC, d.created_at DESC`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.DutyRecord{}
	for rows.Next() {
		d, err := scanDuty(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (r DutyRepository) GetByID(ctx context.Context, companyID, id string) (models.DutyRecord, error) {
	db := r.db()
	if db == nil {
		return models.DutyRecord{}, domain.InternalError{Msg: "database not connected"}
	}
	d, err := scanDuty(db.QueryRowContext(ctx, dutySelect+` WHERE d.company_id = ? AND d.id = ? LIMIT 1`, companyID, id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.DutyRecord{}, domain.NotFoundError{Resource: "duty", Err: err}
	}
	return d, err
}

// OpenFor returns the id of the person's open duty, or "" when none.
func (r DutyRepository) OpenFor(ctx context.Context, companyID, personID string) (string, error) {
	db := r.db()
	if db == nil {
		return "", domain.InternalError{Msg: "database not connected"}
	}
	var id string
	err := db.QueryRowContext(ctx, `
		SELECT id FROM duty_records
		WHERE company_id = ? AND person_id = ? AND (punch_out_time IS NULL OR punch_out_time = '')
		LIMIT 1`, companyID, personID).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	return id, err
}

// Insert stores a new duty. A nil PunchOut stores an open duty.
func (r DutyRepository) Insert(ctx context.Context, d models.DutyRecord) error {
	db := r.db()
	if db == nil {
		return domain.InternalError{Msg: "database not connected"}
	}
	var outTime, outKM any
	if d.PunchOut != nil {
		outTime = d.PunchOut.Time
		outKM = kmArg(d.PunchOut.KM)
	}
	_, err := db.ExecContext(ctx, `
		INSERT INTO duty_records (id, company_id, person_id, car_number, duty_date,
			punch_in_time, punch_in_km, punch_out_time, punch_out_km,
			daily_wage, fuel_amount, parking_amount, pick_up_location, drop_location, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		d.ID, d.CompanyID, d.Driver.ID(), d.Vehicle, d.Date,
		d.PunchIn.Time, kmArg(d.PunchIn.KM), outTime, outKM,
		d.DailyWage.Float(), d.FuelAmount.Float(), d.ParkingAmount.Float(),
		d.PickUpLocation, d.DropLocation, d.CreatedAt,
	)
	return err
}

// PunchOut completes an open duty. Closed duties are left untouched and
// reported as a conflict.
func (r DutyRepository) PunchOut(ctx context.Context, companyID, id string, out models.PunchPoint, fuel, parking domain.Amount, drop string) error {
	db := r.db()
	if db == nil {
		return domain.InternalError{Msg: "database not connected"}
	}
	res, err := db.ExecContext(ctx, `
		UPDATE duty_records
		SET punch_out_time = ?, punch_out_km = ?, fuel_amount = ?, parking_amount = ?, drop_location = ?
		WHERE company_id = ? AND id = ? AND (punch_out_time IS NULL OR punch_out_time = '')`,
		out.Time, kmArg(out.KM), fuel.Float(), parking.Float(), drop, companyID, id,
	)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ConflictError{Resource: "duty", Msg: "duty is not open"}
	}
	return nil
}

func (r DutyRepository) Delete(ctx context.Context, companyID, id string) error {
	db := r.db()
	if db == nil {
		return domain.InternalError{Msg: "database not connected"}
	}
	res, err := db.ExecContext(ctx, `DELETE FROM duty_records WHERE company_id = ? AND id = ?`, companyID, id)
	if err != nil {
		return err
	}
	return requireAffected(res, "duty")
}
