package db

import (
	"context"
	"fmt"
)

var schema = []struct {
	table string
	ddl   string
}{
	{"persons", `CREATE TABLE IF NOT EXISTS persons (
		id            CHAR(36)      NOT NULL PRIMARY KEY,
		company_id    VARCHAR(64)   NOT NULL,
		name          VARCHAR(255)  NOT NULL,
		mobile        VARCHAR(32)   NOT NULL DEFAULT '',
		username      VARCHAR(64)   NULL,
		password_hash VARCHAR(255)  NULL,
		daily_wage    DECIMAL(12,2) NOT NULL DEFAULT 0,
		is_freelancer TINYINT(1)    NOT NULL DEFAULT 0,
		status        VARCHAR(16)   NOT NULL DEFAULT 'active',
		role          VARCHAR(32)   NOT NULL DEFAULT 'driver',
		created_at    DATETIME      NOT NULL DEFAULT CURRENT_TIMESTAMP,
		UNIQUE KEY uq_persons_username (username),
		KEY idx_persons_company (company_id)
	)`},
	{"fleet_vehicles", `CREATE TABLE IF NOT EXISTS fleet_vehicles (
		car_number     VARCHAR(32)   NOT NULL,
		company_id     VARCHAR(64)   NOT NULL,
		model          VARCHAR(128)  NOT NULL DEFAULT '',
		permit_type    VARCHAR(64)   NOT NULL DEFAULT '',
		car_type       VARCHAR(64)   NOT NULL DEFAULT '',
		fastag_number  VARCHAR(64)   NOT NULL DEFAULT '',
		fastag_balance DECIMAL(12,2) NOT NULL DEFAULT 0,
		fastag_bank    VARCHAR(64)   NOT NULL DEFAULT '',
		duty_amount    DECIMAL(12,2) NOT NULL DEFAULT 0,
		current_driver CHAR(36)      NULL,
		created_at     DATETIME      NOT NULL DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (company_id, car_number)
	)`},
	{"vehicle_documents", `CREATE TABLE IF NOT EXISTS vehicle_documents (
		id            BIGINT       NOT NULL AUTO_INCREMENT PRIMARY KEY,
		company_id    VARCHAR(64)  NOT NULL,
		car_number    VARCHAR(32)  NOT NULL,
		document_type VARCHAR(64)  NOT NULL,
		image_url     VARCHAR(512) NOT NULL DEFAULT '',
		expiry_date   DATE         NULL,
		KEY idx_vehicle_documents_car (company_id, car_number)
	)`},
	{"duty_records", `CREATE TABLE IF NOT EXISTS duty_records (
		id               CHAR(36)      NOT NULL PRIMARY KEY,
		company_id       VARCHAR(64)   NOT NULL,
		person_id        CHAR(36)      NOT NULL,
		car_number       VARCHAR(32)   NOT NULL DEFAULT '',
		duty_date        DATE          NOT NULL,
		punch_in_time    VARCHAR(32)   NOT NULL DEFAULT '',
		punch_in_km      DECIMAL(12,1) NULL,
		punch_out_time   VARCHAR(32)   NULL,
		punch_out_km     DECIMAL(12,1) NULL,
		daily_wage       DECIMAL(12,2) NOT NULL DEFAULT 0,
		fuel_amount      DECIMAL(12,2) NOT NULL DEFAULT 0,
		parking_amount   DECIMAL(12,2) NOT NULL DEFAULT 0,
		pick_up_location VARCHAR(255)  NOT NULL DEFAULT '',
		drop_location    VARCHAR(255)  NOT NULL DEFAULT '',
		created_at       DATETIME      NOT NULL DEFAULT CURRENT_TIMESTAMP,
		KEY idx_duty_company_date (company_id, duty_date),
		KEY idx_duty_person (person_id)
	)`},
	{"advance_payments", `CREATE TABLE IF NOT EXISTS advance_payments (
		id           CHAR(36)      NOT NULL PRIMARY KEY,
		company_id   VARCHAR(64)   NOT NULL,
		person_id    CHAR(36)      NULL,
		amount       DECIMAL(12,2) NOT NULL,
		advance_date DATE          NOT NULL,
		advance_type VARCHAR(16)   NOT NULL,
		given_by     VARCHAR(128)  NOT NULL DEFAULT '',
		remark       VARCHAR(512)  NOT NULL DEFAULT '',
		created_at   DATETIME      NOT NULL DEFAULT CURRENT_TIMESTAMP,
		KEY idx_advance_company_date (company_id, advance_date)
	)`},
	{"outside_duties", `CREATE TABLE IF NOT EXISTS outside_duties (
		id            CHAR(36)      NOT NULL PRIMARY KEY,
		company_id    VARCHAR(64)   NOT NULL,
		car_number    VARCHAR(96)   NOT NULL,
		plate         VARCHAR(32)   NOT NULL,
		duty_date     CHAR(10)      NOT NULL,
		suffix        CHAR(5)       NOT NULL,
		instance_id   CHAR(36)      NOT NULL,
		model         VARCHAR(128)  NOT NULL DEFAULT '',
		property      VARCHAR(255)  NOT NULL DEFAULT '',
		owner_name    VARCHAR(255)  NOT NULL DEFAULT '',
		duty_type     VARCHAR(512)  NOT NULL DEFAULT '',
		drop_location VARCHAR(1024) NOT NULL DEFAULT '',
		duty_amount   DECIMAL(12,2) NOT NULL DEFAULT 0,
		created_at    DATETIME      NOT NULL DEFAULT CURRENT_TIMESTAMP,
		UNIQUE KEY uq_outside_instance (instance_id),
		KEY idx_outside_company_date (company_id, duty_date)
	)`},
}

// Tables lists the managed tables in creation order.
func Tables() []string {
	out := make([]string, len(schema))
	for i, s := range schema {
		out[i] = s.table
	}
	return out
}

// EnsureSchema creates missing tables.
func EnsureSchema(ctx context.Context, q Querier) error {
	for _, s := range schema {
		if _, err := q.ExecContext(ctx, s.ddl); err != nil {
			return fmt.Errorf("create %s: %w", s.table, err)
		}
	}
	return nil
}
