package store

import (
	"database/sql"
	"fmt"
	"time"
)

// The two timer keys are always written and removed together: their
// joint presence means a timer is running, their joint absence means
// idle. A cold start must never see one without the other.
const (
	timerActiveKey = "timer_active"
	timerStartKey  = "timer_start_time"
)

// SaveTimerState durably records a running timer anchored at start.
func (s *Store) SaveTimerState(start time.Time) error {
	return s.withTx(func(tx *sql.Tx) error {
		for key, value := range map[string]string{
			timerActiveKey: "true",
			timerStartKey:  start.Format(time.RFC3339),
		} {
			_, err := tx.Exec(
				`INSERT INTO kv (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
				key, value,
			)
			if err != nil {
				return fmt.Errorf("save timer key %q: %w", key, err)
			}
		}
		return nil
	})
}

// LoadTimerState reads the persisted timer anchor. active is true only
// when both keys are present and the flag reads "true".
func (s *Store) LoadTimerState() (start time.Time, active bool, err error) {
	flag, found, err := s.Get(timerActiveKey)
	if err != nil || !found || flag != "true" {
		return time.Time{}, false, err
	}
	raw, found, err := s.Get(timerStartKey)
	if err != nil || !found {
		return time.Time{}, false, err
	}
	start, perr := time.Parse(time.RFC3339, raw)
	if perr != nil {
		return time.Time{}, false, fmt.Errorf("parse timer start: %w", perr)
	}
	return start, true, nil
}

// ClearTimerState removes both timer keys. Absence, not a falsy value,
// signals an idle timer.
func (s *Store) ClearTimerState() error {
	return s.withTx(func(tx *sql.Tx) error {
		_, err := tx.Exec(`DELETE FROM kv WHERE key IN (?, ?)`, timerActiveKey, timerStartKey)
		if err != nil {
			return fmt.Errorf("clear timer keys: %w", err)
		}
		return nil
	})
}

func (s *Store) withTx(fn func(tx *sql.Tx) error) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit()
}
