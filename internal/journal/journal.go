package journal

// #region imports
import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/danielpatrickdp/adaptive-ui/go-engine/internal/action"
	"github.com/danielpatrickdp/adaptive-ui/go-engine/internal/classifier"
	"github.com/danielpatrickdp/adaptive-ui/go-engine/internal/history"
	"github.com/danielpatrickdp/adaptive-ui/go-engine/internal/store"
)

// #endregion

// #region schema
const schema = `
CREATE TABLE IF NOT EXISTS transitions (
	transition_id  TEXT PRIMARY KEY,
	previous_state TEXT NOT NULL,
	next_state     TEXT NOT NULL,
	confidence     REAL NOT NULL,
	signals_json   TEXT,
	metrics_json   TEXT,
	created_at     TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_transitions_created
ON transitions(created_at);
`

// #endregion schema

// #region store-struct

// Store is a SQLite audit trail of state transitions. It is diagnostics
// only: session history itself stays in memory and is never persisted.
type Store struct {
	db *sql.DB
}

// #endregion store-struct

// #region constructor

// NewStore opens a SQLite database and runs migrations.
func NewStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return nil, fmt.Errorf("pragma: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// #endregion constructor

// #region record

// Record writes one transition row.
func (s *Store) Record(change classifier.StateChange) error {
	signalsJSON, err := json.Marshal(change.Signals)
	if err != nil {
		return fmt.Errorf("marshal signals: %w", err)
	}
	metricsJSON, err := json.Marshal(change.Metrics)
	if err != nil {
		return fmt.Errorf("marshal metrics: %w", err)
	}

	createdAt := change.Timestamp
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	_, err = s.db.Exec(
		`INSERT INTO transitions (transition_id, previous_state, next_state, confidence, signals_json, metrics_json, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		uuid.New().String(),
		string(change.Previous),
		string(change.Next),
		change.Confidence,
		string(signalsJSON),
		string(metricsJSON),
		createdAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("insert transition: %w", err)
	}
	return nil
}

// #endregion record

// #region list

// Entry is one recorded transition.
type Entry struct {
	TransitionID string
	Previous     classifier.State
	Next         classifier.State
	Confidence   float64
	Signals      classifier.Signals
	Metrics      history.Metrics
	CreatedAt    time.Time
}

// List returns the most recent transitions, newest first.
func (s *Store) List(limit int) ([]Entry, error) {
	rows, err := s.db.Query(
		`SELECT transition_id, previous_state, next_state, confidence, signals_json, metrics_json, created_at
		 FROM transitions ORDER BY created_at DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list transitions: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var prev, next, createdStr string
		var signalsJSON, metricsJSON sql.NullString

		if err := rows.Scan(&e.TransitionID, &prev, &next, &e.Confidence, &signalsJSON, &metricsJSON, &createdStr); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		e.Previous = classifier.State(prev)
		e.Next = classifier.State(next)
		if signalsJSON.Valid {
			if err := json.Unmarshal([]byte(signalsJSON.String), &e.Signals); err != nil {
				return nil, fmt.Errorf("unmarshal signals: %w", err)
			}
		}
		if metricsJSON.Valid {
			if err := json.Unmarshal([]byte(metricsJSON.String), &e.Metrics); err != nil {
				return nil, fmt.Errorf("unmarshal metrics: %w", err)
			}
		}
		e.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdStr)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// #endregion list

// #region interceptor

// Interceptor returns a late pipeline hook that records every state-change
// it observes. A write failure is logged and absorbed; the dispatch always
// continues.
func (s *Store) Interceptor(logger *zap.Logger) store.Interceptor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(_ store.API, act action.Action, next store.Next) error {
		if act.Type == classifier.StateChangeType {
			if change, ok := act.Payload.(classifier.StateChange); ok {
				if err := s.Record(change); err != nil {
					logger.Warn("journal write failed", zap.Error(err))
				}
			}
		}
		return next(act)
	}
}

// #endregion interceptor
