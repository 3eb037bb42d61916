package db

import (
	"database/sql"
	"fmt"
	"log"
	"strings"
)

type migration struct {
	version string
	sql     string
}

var migrations = []migration{
	{
		version: "000_create_accounts",
		sql: `
			CREATE TABLE IF NOT EXISTS accounts (
				id            BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
				email         VARCHAR(255) NOT NULL UNIQUE,
				password_hash VARCHAR(255) NOT NULL,
				created_at    DATETIME DEFAULT CURRENT_TIMESTAMP,
				updated_at    DATETIME DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
			)`,
	},
	{
		version: "001_create_profiles",
		sql: `
			CREATE TABLE IF NOT EXISTS profiles (
				account_id            BIGINT UNSIGNED PRIMARY KEY,
				age                   INT,
				gender                VARCHAR(10),
				height_cm             DOUBLE,
				current_weight        DOUBLE,
				goal_weight           DOUBLE,
				goal_bmi              DOUBLE,
				unit_system           VARCHAR(10) NOT NULL DEFAULT 'metric',
				dark_mode             TINYINT NOT NULL DEFAULT 0,
				notifications_enabled TINYINT NOT NULL DEFAULT 1,
				updated_at            DATETIME DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
				FOREIGN KEY (account_id) REFERENCES accounts(id) ON DELETE CASCADE
			)`,
	},
	{
		version: "002_create_measurements",
		sql: `
			CREATE TABLE IF NOT EXISTS measurements (
				id           CHAR(36) PRIMARY KEY,
				account_id   BIGINT UNSIGNED NOT NULL,
				timestamp_ms BIGINT NOT NULL,
				weight       DOUBLE NOT NULL,
				height_cm    DOUBLE NOT NULL,
				bmi          DOUBLE NOT NULL,
				category     VARCHAR(20) NOT NULL,
				note         VARCHAR(255) NOT NULL DEFAULT '',
				INDEX idx_measurements_account_ts (account_id, timestamp_ms),
				FOREIGN KEY (account_id) REFERENCES accounts(id) ON DELETE CASCADE
			)`,
	},
	{
		// Retired history schema. Kept read-only as the secondary source for
		// accounts whose data was never backfilled into measurements.
		version: "003_create_measurements_legacy",
		sql: `
			CREATE TABLE IF NOT EXISTS measurements_legacy (
				id          CHAR(36) PRIMARY KEY,
				account_id  BIGINT UNSIGNED NOT NULL,
				recorded_at DATETIME NOT NULL,
				weight      DOUBLE NOT NULL,
				height_cm   DOUBLE NOT NULL,
				bmi         DOUBLE NOT NULL,
				INDEX idx_measurements_legacy_account (account_id)
			)`,
	},
	{
		version: "004_create_goals",
		sql: `
			CREATE TABLE IF NOT EXISTS goals (
				id                BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
				account_id        BIGINT UNSIGNED NOT NULL,
				target_weight     DOUBLE NOT NULL,
				target_bmi        DOUBLE NOT NULL,
				start_weight      DOUBLE NOT NULL,
				start_bmi         DOUBLE NOT NULL,
				start_date_ms     BIGINT NOT NULL,
				target_date_ms    BIGINT NOT NULL,
				completed_date_ms BIGINT,
				status            VARCHAR(20) NOT NULL DEFAULT 'active',
				progress          DOUBLE NOT NULL DEFAULT 0,
				INDEX idx_goals_account_status (account_id, status),
				FOREIGN KEY (account_id) REFERENCES accounts(id) ON DELETE CASCADE
			)`,
	},
	{
		version: "005_create_password_reset_tokens",
		sql: `
			CREATE TABLE IF NOT EXISTS password_reset_tokens (
				id         BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
				account_id BIGINT UNSIGNED NOT NULL,
				token      VARCHAR(10) NOT NULL,
				expires_at DATETIME NOT NULL,
				used       TINYINT NOT NULL DEFAULT 0,
				FOREIGN KEY (account_id) REFERENCES accounts(id) ON DELETE CASCADE
			)`,
	},
}

func RunMigrations(db *sql.DB) error {
	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version    VARCHAR(255) PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`); err != nil {
		return fmt.Errorf("failed to create schema_migrations table: %w", err)
	}

	for _, m := range migrations {
		applied, err := isMigrationApplied(db, m.version)
		if err != nil {
			return err
		}
		if applied {
			continue
		}

		if err := executeMigration(db, m); err != nil {
			return err
		}

		log.Printf("applied migration: %s", m.version)
	}

	return nil
}

func isMigrationApplied(db *sql.DB, version string) (bool, error) {
	var count int
	err := db.QueryRow(
		"SELECT COUNT(*) FROM schema_migrations WHERE version = ?",
		version,
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check migration %s: %w", version, err)
	}
	return count > 0, nil
}

func executeMigration(db *sql.DB, m migration) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction for %s: %w", m.version, err)
	}

	for _, stmt := range strings.Split(m.sql, ";") {
		stmt = strings.TrimSpace(stmt)
		if stmt == "" {
			continue
		}
		if _, err := tx.Exec(stmt); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to execute migration %s: %w", m.version, err)
		}
	}

	if _, err := tx.Exec(
		"INSERT INTO schema_migrations (version) VALUES (?)",
		m.version,
	); err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to record migration %s: %w", m.version, err)
	}

	return tx.Commit()
}
