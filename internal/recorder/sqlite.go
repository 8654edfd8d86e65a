package recorder

import (
	"database/sql"
	"fmt"
	"log"
	"sync"
	"time"

	"wolfdice/internal/model"

	_ "modernc.org/sqlite"
)

// SQLiteRecorder persists rounds and session summaries to a SQLite database.
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

	// WAL mode so dashboards can read while the bot writes.
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
		`CREATE TABLE IF NOT EXISTS sessions (
			id           TEXT PRIMARY KEY,
			started_at   INTEGER NOT NULL,
			ended_at     INTEGER,
			currency     TEXT,
			start_balance REAL,
			profit       REAL,
			total_rounds INTEGER,
			won          INTEGER,
			lost         INTEGER,
			elapsed_sec  INTEGER,
			strategy     TEXT,
			end_reason   TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_sessions_started ON sessions(started_at)`,

		`CREATE TABLE IF NOT EXISTS rounds (
			id            INTEGER PRIMARY KEY AUTOINCREMENT,
			session_id    TEXT NOT NULL,
			timestamp     INTEGER NOT NULL,
			round         INTEGER,
			threshold     REAL,
			rule          TEXT,
			result_value  REAL,
			wager         REAL,
			next_wager    REAL,
			outcome       TEXT,
			delta_profit  REAL,
			profit        REAL,
			strategy      TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_rounds_session ON rounds(session_id)`,
		`CREATE INDEX IF NOT EXISTS idx_rounds_ts ON rounds(timestamp)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (r *SQLiteRecorder) RecordSessionStart(sum *model.SessionSummary) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO sessions
		(id, started_at, currency, start_balance, strategy)
		VALUES (?,?,?,?,?)`,
		sum.ID, time.Now().Unix(), sum.Currency, sum.StartBalance, sum.ActiveStrategy,
	)
	return err
}

func (r *SQLiteRecorder) RecordRound(evt *RoundEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec := evt.Record
	_, err := r.db.Exec(`INSERT INTO rounds
		(session_id, timestamp, round, threshold, rule, result_value,
		 wager, next_wager, outcome, delta_profit, profit, strategy)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?)`,
		evt.SessionID, time.Now().Unix(), rec.Round, rec.Threshold, string(rec.Rule),
		rec.ResultValue, rec.Wager, rec.NextWager, string(rec.Outcome),
		rec.DeltaProfit, evt.Profit, rec.Strategy,
	)
	return err
}

func (r *SQLiteRecorder) RecordSessionEnd(sum *model.SessionSummary) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`UPDATE sessions
		SET ended_at = ?, profit = ?, total_rounds = ?, won = ?, lost = ?,
		    elapsed_sec = ?, strategy = ?, end_reason = ?
		WHERE id = ?`,
		time.Now().Unix(), sum.Profit, sum.TotalRounds, sum.Won, sum.Lost,
		int(sum.Elapsed.Seconds()), sum.ActiveStrategy, string(sum.Reason), sum.ID,
	)
	return err
}

func (r *SQLiteRecorder) Close() error {
	log.Println("[INFO] closing sqlite recorder")
	return r.db.Close()
}
