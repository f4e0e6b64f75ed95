package storage

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
	"gopkg.in/yaml.v3"

	"foreclosure-scraper/models"
	"foreclosure-scraper/utils"
)

// PostgresWriter mirrors processed sale records into a local PostgreSQL
// archive. The hosted table remains the source of truth; the archive is an
// optional per-run artifact keyed by sheriff number.
type PostgresWriter struct {
	db     *sql.DB
	money  *utils.MoneyParser
	logger *utils.Logger
}

// NewPostgresWriter opens a connection to PostgreSQL, runs schema migrations,
// and returns a ready-to-use PostgresWriter.
func NewPostgresWriter(dsn string, logger *utils.Logger) (*PostgresWriter, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: open: %w", err)
	}

	for i := 0; i < 10; i++ {
		if err = db.Ping(); err == nil {
			break
		}
		time.Sleep(2 * time.Second)
	}
	if err != nil {
		return nil, fmt.Errorf("postgres: ping failed after retries: %w", err)
	}

	pw := &PostgresWriter{db: db, money: utils.NewMoneyParser(logger), logger: logger}
	if err := pw.migrate(); err != nil {
		return nil, fmt.Errorf("postgres: migrate: %w", err)
	}

	return pw, nil
}

func (pw *PostgresWriter) migrate() error {
	_, err := pw.db.Exec(`
		CREATE TABLE IF NOT EXISTS properties (
			id               SERIAL PRIMARY KEY,
			sheriff_number   VARCHAR(100) UNIQUE NOT NULL,
			case_number      TEXT          NOT NULL DEFAULT '',
			address          TEXT          NOT NULL DEFAULT '',
			sales_date       TEXT          NOT NULL DEFAULT '',
			plaintiff        TEXT          NOT NULL DEFAULT '',
			defendant        TEXT          NOT NULL DEFAULT '',
			description      TEXT          NOT NULL DEFAULT '',
			judgment_amount  NUMERIC(14,2) NOT NULL DEFAULT 0,
			good_faith_upset NUMERIC(14,2) NOT NULL DEFAULT 0,
			attorney         TEXT          NOT NULL DEFAULT '',
			attorney_phone   TEXT          NOT NULL DEFAULT '',
			status_history   TEXT          NOT NULL DEFAULT '',
			updated_at       TIMESTAMPTZ   NOT NULL DEFAULT NOW()
		);

		CREATE INDEX IF NOT EXISTS idx_properties_sales_date ON properties(sales_date);
	`)
	return err
}

// Write upserts each record by sheriff number. Records with no sheriff
// number are skipped; they were never accepted upstream either.
func (pw *PostgresWriter) Write(records []*models.PropertyRecord) error {
	for _, r := range records {
		sheriff := r.SheriffNumber()
		if sheriff == "" {
			pw.logger.Debug("[postgres] Skipping record without sheriff number")
			continue
		}
		if err := pw.upsert(sheriff, r); err != nil {
			return err
		}
	}
	return nil
}

func (pw *PostgresWriter) upsert(sheriff string, r *models.PropertyRecord) error {
	judgment, _ := pw.money.Parse(r.Details[models.FieldJudgmentAmount])
	upset, _ := pw.money.Parse(r.Details[models.FieldGoodFaithUpset])

	history := r.History
	if history == nil {
		history = []models.StatusEntry{}
	}
	historyText, err := yaml.Marshal(history)
	if err != nil {
		return fmt.Errorf("postgres: encode status history: %w", err)
	}

	_, err = pw.db.Exec(`
		INSERT INTO properties (
			sheriff_number, case_number, address, sales_date, plaintiff,
			defendant, description, judgment_amount, good_faith_upset,
			attorney, attorney_phone, status_history, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,NOW())
		ON CONFLICT (sheriff_number) DO UPDATE SET
			case_number      = EXCLUDED.case_number,
			address          = EXCLUDED.address,
			sales_date       = EXCLUDED.sales_date,
			plaintiff        = EXCLUDED.plaintiff,
			defendant        = EXCLUDED.defendant,
			description      = EXCLUDED.description,
			judgment_amount  = EXCLUDED.judgment_amount,
			good_faith_upset = EXCLUDED.good_faith_upset,
			attorney         = EXCLUDED.attorney,
			attorney_phone   = EXCLUDED.attorney_phone,
			status_history   = EXCLUDED.status_history,
			updated_at       = NOW()
	`,
		sheriff,
		r.Details[models.FieldCaseNumber],
		r.Details[models.FieldAddress],
		r.Details[models.FieldSalesDate],
		r.Details[models.FieldPlaintiff],
		r.Details[models.FieldDefendant],
		r.Details[models.FieldDescription],
		judgment,
		upset,
		r.Details[models.FieldAttorney],
		r.Details[models.FieldAttorneyPhone],
		string(historyText),
	)
	if err != nil {
		return fmt.Errorf("postgres: upsert %s: %w", sheriff, err)
	}
	return nil
}

// Close closes the database connection.
func (pw *PostgresWriter) Close() error {
	return pw.db.Close()
}
