package recorder

import (
	"database/sql"
	"fmt"
	"log"
	"sync"

	_ "modernc.org/sqlite"

	"PortfolioSentinel/internal/model"
)

// SQLiteRecorder persists review and rotation snapshots to a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode for better concurrent read performance (dashboards read while the bot writes).
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite recorder opened: %s", dbPath)
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS review_rows (
			id             INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp      INTEGER NOT NULL,
			ticker         TEXT NOT NULL,
			sector         TEXT,
			shares_held    REAL,
			shares_to_sell REAL,
			avg_cost       REAL,
			price          REAL,
			dma200         REAL,
			dist_pct       REAL,
			action         TEXT,
			reason         TEXT,
			index_dist     REAL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_review_ts ON review_rows(timestamp)`,
		`CREATE INDEX IF NOT EXISTS idx_review_ticker ON review_rows(ticker)`,

		`CREATE TABLE IF NOT EXISTS rotation_scores (
			id              INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp       INTEGER NOT NULL,
			ticker          TEXT NOT NULL,
			company_name    TEXT,
			sector          TEXT,
			price           REAL,
			dma200          REAL,
			dist_pct        REAL,
			action          TEXT,
			growth_pct_3y   REAL,
			ai_exposure     REAL,
			score           INTEGER,
			market_extended INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_rotation_ts ON rotation_scores(timestamp)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (r *SQLiteRecorder) RecordReview(rep *model.ReviewReport) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`INSERT INTO review_rows
		(timestamp, ticker, sector, shares_held, shares_to_sell, avg_cost,
		 price, dma200, dist_pct, action, reason, index_dist)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?)`)
	if err != nil {
		return fmt.Errorf("prepare: %w", err)
	}
	defer stmt.Close()

	ts := rep.GeneratedAt.Unix()
	for _, row := range rep.Rows {
		if _, err := stmt.Exec(ts, row.Ticker, row.Sector, row.SharesHeld, row.SharesToSell,
			row.AvgCost, row.Price, row.DMA200, row.DistPct,
			string(row.Action), row.Reason, rep.IndexDist); err != nil {
			return fmt.Errorf("insert review row %s: %w", row.Ticker, err)
		}
	}
	return tx.Commit()
}

func (r *SQLiteRecorder) RecordRotation(rep *model.RotationReport) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`INSERT INTO rotation_scores
		(timestamp, ticker, company_name, sector, price, dma200, dist_pct,
		 action, growth_pct_3y, ai_exposure, score, market_extended)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?)`)
	if err != nil {
		return fmt.Errorf("prepare: %w", err)
	}
	defer stmt.Close()

	ts := rep.GeneratedAt.Unix()
	extended := 0
	if rep.MarketExtended {
		extended = 1
	}
	for _, e := range rep.Entries {
		if _, err := stmt.Exec(ts, e.Ticker, e.CompanyName, e.Sector, e.Price, e.DMA200,
			e.DistPct, string(e.Action), e.GrowthPct3y, e.AIExposure,
			e.Score, extended); err != nil {
			return fmt.Errorf("insert rotation row %s: %w", e.Ticker, err)
		}
	}
	return tx.Commit()
}

func (r *SQLiteRecorder) Close() error {
	log.Println("[INFO] closing sqlite recorder")
	return r.db.Close()
}
