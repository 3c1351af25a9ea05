package database

import (
	"context"
	"database/sql"
)

// schemaStatements creates the four tables the application uses.  Each
// statement is idempotent so the bootstrap can run on every startup.
// Prices use DECIMAL to keep exact scale, timestamps are DATETIME in
// UTC, and UIDs are stored as their canonical 36 character text form.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS surface (
		uid        CHAR(36)      NOT NULL PRIMARY KEY,
		name       VARCHAR(255)  NOT NULL,
		price      DECIMAL(19,4) NOT NULL,
		currency   CHAR(3)       NOT NULL,
		created_at DATETIME      NOT NULL DEFAULT CURRENT_TIMESTAMP
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS court (
		uid         CHAR(36)     NOT NULL PRIMARY KEY,
		name        VARCHAR(255) NOT NULL,
		surface_uid CHAR(36)     NOT NULL,
		created_at  DATETIME     NOT NULL DEFAULT CURRENT_TIMESTAMP,
		CONSTRAINT fk_court_surface FOREIGN KEY (surface_uid) REFERENCES surface (uid)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS user_entity (
		uid          CHAR(36)     NOT NULL PRIMARY KEY,
		first_name   VARCHAR(255) NOT NULL,
		family_name  VARCHAR(255) NOT NULL,
		phone_number VARCHAR(32)  NOT NULL,
		password     VARCHAR(100) NOT NULL,
		roles        VARCHAR(255) NOT NULL,
		created_at   DATETIME     NOT NULL DEFAULT CURRENT_TIMESTAMP,
		UNIQUE KEY uq_user_phone (phone_number)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS reservation (
		uid                  CHAR(36)      NOT NULL PRIMARY KEY,
		court_uid            CHAR(36)      NOT NULL,
		user_uid             CHAR(36)      NOT NULL,
		from_time            DATETIME      NOT NULL,
		to_time              DATETIME      NOT NULL,
		is_quad_game         TINYINT(1)    NOT NULL DEFAULT 0,
		total_price_amount   DECIMAL(19,2) NOT NULL,
		total_price_currency CHAR(3)       NOT NULL,
		created_at           DATETIME      NOT NULL DEFAULT CURRENT_TIMESTAMP,
		KEY idx_reservation_court_window (court_uid, from_time, to_time),
		CONSTRAINT fk_reservation_court FOREIGN KEY (court_uid) REFERENCES court (uid),
		CONSTRAINT fk_reservation_user FOREIGN KEY (user_uid) REFERENCES user_entity (uid)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
}

// EnsureSchema creates any missing tables.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schemaStatements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
