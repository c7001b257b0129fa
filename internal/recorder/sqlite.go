package recorder

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"PatternScout/internal/model"
)

// SQLiteRecorder persists scan history to a SQLite database.
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

	// WAL mode for better concurrent read performance (the API reads while
	// the scheduler writes).
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
		`CREATE TABLE IF NOT EXISTS scans (
			id           TEXT PRIMARY KEY,
			timestamp    INTEGER NOT NULL,
			symbol       TEXT NOT NULL,
			interval     TEXT,
			bar_count    INTEGER,
			close        REAL,
			sma20        REAL,
			sma50        REAL,
			sma200       REAL,
			rsi14        REAL,
			macd         REAL,
			macd_signal  REAL,
			signal       TEXT,
			confidence   REAL,
			explanation  TEXT,
			crossover    TEXT,
			match_count  INTEGER,
			chart_path   TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_scans_ts ON scans(timestamp)`,
		`CREATE INDEX IF NOT EXISTS idx_scans_symbol ON scans(symbol, timestamp)`,

		`CREATE TABLE IF NOT EXISTS pattern_matches (
			id           INTEGER PRIMARY KEY AUTOINCREMENT,
			scan_id      TEXT NOT NULL,
			timestamp    INTEGER NOT NULL,
			symbol       TEXT NOT NULL,
			pattern_type TEXT NOT NULL,
			direction    TEXT NOT NULL,
			confirmed    INTEGER NOT NULL,
			summary      TEXT,
			points       TEXT,
			targets      TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_matches_ts ON pattern_matches(timestamp)`,
		`CREATE INDEX IF NOT EXISTS idx_matches_scan ON pattern_matches(scan_id)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (r *SQLiteRecorder) RecordScan(report *model.ScanReport) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	crossover := ""
	if report.Crossover != nil {
		crossover = string(report.Crossover.Decision)
	}
	ind := report.Indicators

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(`INSERT INTO scans
		(id, timestamp, symbol, interval, bar_count, close,
		 sma20, sma50, sma200, rsi14, macd, macd_signal,
		 signal, confidence, explanation, crossover, match_count, chart_path)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		report.ID, report.CreatedAt.Unix(), report.Symbol, report.Interval,
		report.BarCount, ind.Close,
		ind.SMA20, ind.SMA50, ind.SMA200, ind.RSI14, ind.MACD, ind.MACDSignal,
		string(report.Verdict.Signal), report.Verdict.Confidence, report.Verdict.Explanation,
		crossover, len(report.Matches), report.ChartPath,
	)
	if err != nil {
		return fmt.Errorf("insert scan: %w", err)
	}

	for _, m := range report.Matches {
		points, err := json.Marshal(m.Points)
		if err != nil {
			return fmt.Errorf("marshal points: %w", err)
		}
		targets, err := json.Marshal(m.Targets)
		if err != nil {
			return fmt.Errorf("marshal targets: %w", err)
		}
		confirmed := 0
		if m.Confirmed {
			confirmed = 1
		}
		if _, err := tx.Exec(`INSERT INTO pattern_matches
			(scan_id, timestamp, symbol, pattern_type, direction, confirmed, summary, points, targets)
			VALUES (?,?,?,?,?,?,?,?,?)`,
			report.ID, report.CreatedAt.Unix(), report.Symbol,
			string(m.Type), string(m.Direction), confirmed, m.Summary,
			string(points), string(targets),
		); err != nil {
			return fmt.Errorf("insert match: %w", err)
		}
	}
	return tx.Commit()
}

func (r *SQLiteRecorder) LatestScans(limit int) ([]model.ScanReport, error) {
	return r.queryScans(`SELECT id, timestamp, symbol, interval, bar_count, close,
		sma20, sma50, sma200, rsi14, macd, macd_signal,
		signal, confidence, explanation, crossover, chart_path
		FROM scans ORDER BY timestamp DESC LIMIT ?`, limit)
}

func (r *SQLiteRecorder) ScansForSymbol(symbol string, limit int) ([]model.ScanReport, error) {
	return r.queryScans(`SELECT id, timestamp, symbol, interval, bar_count, close,
		sma20, sma50, sma200, rsi14, macd, macd_signal,
		signal, confidence, explanation, crossover, chart_path
		FROM scans WHERE symbol = ? ORDER BY timestamp DESC LIMIT ?`, symbol, limit)
}

func (r *SQLiteRecorder) queryScans(query string, args ...any) ([]model.ScanReport, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query scans: %w", err)
	}
	defer rows.Close()

	var out []model.ScanReport
	for rows.Next() {
		var rep model.ScanReport
		var ts int64
		var crossover string
		if err := rows.Scan(&rep.ID, &ts, &rep.Symbol, &rep.Interval, &rep.BarCount,
			&rep.Indicators.Close,
			&rep.Indicators.SMA20, &rep.Indicators.SMA50, &rep.Indicators.SMA200,
			&rep.Indicators.RSI14, &rep.Indicators.MACD, &rep.Indicators.MACDSignal,
			&rep.Verdict.Signal, &rep.Verdict.Confidence, &rep.Verdict.Explanation,
			&crossover, &rep.ChartPath,
		); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		rep.CreatedAt = time.Unix(ts, 0)
		if crossover != "" {
			rep.Crossover = &model.CrossoverDecision{Decision: model.Signal(crossover)}
		}
		out = append(out, rep)
	}
	return out, rows.Err()
}

func (r *SQLiteRecorder) RecentMatches(limit int) ([]model.PatternMatch, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rows, err := r.db.Query(`SELECT pattern_type, direction, confirmed, summary, points, targets
		FROM pattern_matches ORDER BY timestamp DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query matches: %w", err)
	}
	defer rows.Close()

	var out []model.PatternMatch
	for rows.Next() {
		var m model.PatternMatch
		var confirmed int
		var points, targets string
		if err := rows.Scan(&m.Type, &m.Direction, &confirmed, &m.Summary, &points, &targets); err != nil {
			return nil, fmt.Errorf("scan match row: %w", err)
		}
		m.Confirmed = confirmed != 0
		if err := json.Unmarshal([]byte(points), &m.Points); err != nil {
			log.Printf("[WARN] decode stored pattern points: %v", err)
		}
		if targets != "" && targets != "null" {
			if err := json.Unmarshal([]byte(targets), &m.Targets); err != nil {
				log.Printf("[WARN] decode stored pattern targets: %v", err)
			}
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r *SQLiteRecorder) Close() error {
	log.Println("[INFO] closing sqlite recorder")
	return r.db.Close()
}
