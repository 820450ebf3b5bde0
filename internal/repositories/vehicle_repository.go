package repositories

import (
	"context"
	"database/sql"
	"errors"

	intconfig "fleetops/internal/config"
	intdb "fleetops/internal/db"
	"fleetops/internal/domain"
	"fleetops/internal/domain/models"
)

type VehicleRepository struct {
	DB *sql.DB
}

func (r VehicleRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const vehicleColumns = `car_number, company_id, model, permit_type, car_type, fastag_number,
	fastag_balance, fastag_bank, duty_amount, current_driver, created_at`

func scanVehicle(row interface{ Scan(dest ...any) error }) (models.FleetVehicle, error) {
	var (
		v             models.FleetVehicle
		balance, duty float64
		driver        sql.NullString
	)
	err := row.Scan(&v.CarNumber, &v.CompanyID, &v.Model, &v.PermitType, &v.CarType, &v.FastagNumber,
		&balance, &v.FastagBank, &duty, &driver, &v.CreatedAt)
	v.FastagBalance = domain.Amount(balance)
	v.DutyAmount = domain.Amount(duty)
	if driver.Valid && driver.String != "" {
		s := driver.String
		v.CurrentDriver = &s
	}
	v.Documents = []models.VehicleDocument{}
	return v, err
}

// List returns company vehicles with their documents attached.
func (r VehicleRepository) List(ctx context.Context, companyID string) ([]models.FleetVehicle, error) {
	db := r.db()
	if db == nil {
		return nil, domain.InternalError{Msg: "database not connected"}
	}
	rows, err := db.QueryContext(ctx,
		`SELECT `+vehicleColumns+` FROM fleet_vehicles WHERE company_id = ? ORDER BY car_number`, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.FleetVehicle{}
	index := map[string]int{}
	for rows.Next() {
		v, err := scanVehicle(rows)
		if err != nil {
			return nil, err
		}
		index[v.CarNumber] = len(out)
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return out, nil
	}

	docs, err := r.documents(ctx, companyID, "")
	if err != nil {
		return nil, err
	}
	for _, d := range docs {
		if i, ok := index[d.CarNumber]; ok {
			out[i].Documents = append(out[i].Documents, d)
		}
	}
	return out, nil
}

func (r VehicleRepository) Get(ctx context.Context, companyID, plate string) (models.FleetVehicle, error) {
	db := r.db()
	if db == nil {
		return models.FleetVehicle{}, domain.InternalError{Msg: "database not connected"}
	}
	v, err := scanVehicle(db.QueryRowContext(ctx,
		`SELECT `+vehicleColumns+` FROM fleet_vehicles WHERE company_id = ? AND car_number = ? LIMIT 1`, companyID, plate))
	if errors.Is(err, sql.ErrNoRows) {
		return models.FleetVehicle{}, domain.NotFoundError{Resource: "vehicle", Err: err}
	}
	if err != nil {
		return models.FleetVehicle{}, err
	}
	docs, err := r.documents(ctx, companyID, plate)
	if err != nil {
		return models.FleetVehicle{}, err
	}
	v.Documents = append(v.Documents, docs...)
	return v, nil
}

func (r VehicleRepository) Insert(ctx context.Context, v models.FleetVehicle) error {
	db := r.db()
	if db == nil {
		return domain.InternalError{Msg: "database not connected"}
	}
	_, err := db.ExecContext(ctx, `
		INSERT INTO fleet_vehicles (car_number, company_id, model, permit_type, car_type, fastag_number,
			fastag_balance, fastag_bank, duty_amount, current_driver, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		v.CarNumber, v.CompanyID, v.Model, v.PermitType, v.CarType, v.FastagNumber,
		v.FastagBalance.Float(), v.FastagBank, v.DutyAmount.Float(), intdb.NullIfNil(v.CurrentDriver), v.CreatedAt,
	)
	if intdb.IsDuplicate(err) {
		return domain.ConflictError{Resource: "vehicle", Msg: "plate already registered", Err: err}
	}
	return err
}

func (r VehicleRepository) Update(ctx context.Context, v models.FleetVehicle) error {
	db := r.db()
	if db == nil {
		return domain.InternalError{Msg: "database not connected"}
	}
	res, err := db.ExecContext(ctx, `
		UPDATE fleet_vehicles
		SET model = ?, permit_type = ?, car_type = ?, fastag_number = ?, fastag_balance = ?,
			fastag_bank = ?, duty_amount = ?, current_driver = ?
		WHERE company_id = ? AND car_number = ?`,
		v.Model, v.PermitType, v.CarType, v.FastagNumber, v.FastagBalance.Float(),
		v.FastagBank, v.DutyAmount.Float(), intdb.NullIfNil(v.CurrentDriver),
		v.CompanyID, v.CarNumber,
	)
	if err != nil {
		return err
	}
	return requireAffected(res, "vehicle")
}

// Delete removes the vehicle and its documents.
func (r VehicleRepository) Delete(ctx context.Context, companyID, plate string) error {
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
		`DELETE FROM vehicle_documents WHERE company_id = ? AND car_number = ?`, companyID, plate); err != nil {
		return err
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM fleet_vehicles WHERE company_id = ? AND car_number = ?`, companyID, plate)
	if err != nil {
		return err
	}
	if err := requireAffected(res, "vehicle"); err != nil {
		return err
	}
	return tx.Commit()
}

func (r VehicleRepository) AddDocument(ctx context.Context, companyID string, d models.VehicleDocument) (int64, error) {
	db := r.db()
	if db == nil {
		return 0, domain.InternalError{Msg: "database not connected"}
	}
	res, err := db.ExecContext(ctx, `
		INSERT INTO vehicle_documents (company_id, car_number, document_type, image_url, expiry_date)
		VALUES (?, ?, ?, ?, ?)`,
		companyID, d.CarNumber, d.DocumentType, d.ImageURL, intdb.NullIfEmpty(d.ExpiryDate),
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// Documents lists every document of the company.
func (r VehicleRepository) Documents(ctx context.Context, companyID string) ([]models.VehicleDocument, error) {
	return r.documents(ctx, companyID, "")
}

func (r VehicleRepository) documents(ctx context.Context, companyID, plate string) ([]models.VehicleDocument, error) {
	query := `
		SELECT id, car_number, document_type, image_url, COALESCE(DATE_FORMAT(expiry_date, '%Y-%m-%d'), '')
		FROM vehicle_documents
		WHERE company_id = ?`
	args := []any{companyID}
	if plate != "" {
		query += ` AND car_number = ?`
		args = append(args, plate)
	}
	query += ` ORDER BY car_number, id`

	rows, err := r.db().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.VehicleDocument{}
	for rows.Next() {
		var d models.VehicleDocument
		if err := rows.Scan(&d.ID, &d.CarNumber, &d.DocumentType, &d.ImageURL, &d.ExpiryDate); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}
