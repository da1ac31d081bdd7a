package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/go-sql-driver/mysql"

	"pixcheck/internal/domain"
)

const createOutcomesTable = `CREATE TABLE IF NOT EXISTS pixcheck_outcomes (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	run_id VARCHAR(64) NOT NULL,
	case_name VARCHAR(255) NOT NULL,
	status VARCHAR(16) NOT NULL,
	reason TEXT,
	mock_digest CHAR(64) NOT NULL DEFAULT '',
	difference DOUBLE NOT NULL DEFAULT 0,
	threshold DOUBLE NOT NULL DEFAULT 0,
	duration_ms BIGINT NOT NULL DEFAULT 0,
	recorded_at DATETIME NOT NULL,
	INDEX idx_case_name (case_name),
	INDEX idx_run_id (run_id)
)`

const insertOutcome = `INSERT INTO pixcheck_outcomes
	(run_id, case_name, status, reason, mock_digest, difference, threshold, duration_ms, recorded_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

// HistoryRecorder keeps every run's outcomes for trend analysis
type HistoryRecorder interface {
	Record(ctx context.Context, output *domain.RunOutput) error
	Close() error
}

// MySQLHistory records outcomes in a MySQL table
type MySQLHistory struct {
	db *sql.DB
}

// NormalizeDSN validates a MySQL DSN and forces parseTime so DATETIME columns scan into time.Time
func NormalizeDSN(dsn string) (string, error) {
	cfg, err := mysql.ParseDSN(dsn)
	if err != nil {
		return "", fmt.Errorf("invalid history dsn: %w", err)
	}
	if cfg.DBName == "" {
		return "", fmt.Errorf("invalid history dsn: database name is required")
	}
	cfg.ParseTime = true
	return cfg.FormatDSN(), nil
}

// OpenMySQLHistory connects to the database and makes sure the outcomes table exists
func OpenMySQLHistory(ctx context.Context, dsn string) (*MySQLHistory, error) {
	normalized, err := NormalizeDSN(dsn)
	if err != nil {
		return nil, err
	}
	db, err := sql.Open("mysql", normalized)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to history database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping history database: %w", err)
	}
	if _, err := db.ExecContext(ctx, createOutcomesTable); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create history table: %w", err)
	}
	return &MySQLHistory{db: db}, nil
}

// Record inserts one row per outcome in a single transaction
func (h *MySQLHistory) Record(ctx context.Context, output *domain.RunOutput) error {
	tx, err := h.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin history transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, insertOutcome)
	if err != nil {
		return fmt.Errorf("prepare history insert: %w", err)
	}
	defer stmt.Close()

	recordedAt := time.Now().UTC()
	for _, o := range output.Outcomes {
		if _, err := stmt.ExecContext(ctx,
			output.Meta.RunID,
			o.Name,
			string(o.Status),
			o.Reason,
			o.MockDigest,
			o.Difference,
			output.Meta.Threshold,
			o.Duration.Milliseconds(),
			recordedAt,
		); err != nil {
			return fmt.Errorf("insert outcome %s: %w", o.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit history: %w", err)
	}
	return nil
}

// Close releases the database handle
func (h *MySQLHistory) Close() error {
	return h.db.Close()
}
