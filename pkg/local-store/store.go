package localstore

import (
	"database/sql"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	_ "modernc.org/sqlite"

	"github.com/Kleo07/MindSpaceX/pkg/assessment/types"
)

// Namespace used while no user is authenticated.
const GUEST_NAMESPACE = "guest"

const (
	markerNamespace = "_meta"
	markerKey       = "lastActiveUser"
)

// Store is the on-device assessment cache: a per-user namespaced key-value
// table over SQLite. It is a cache, not a source of truth - every operation
// fails soft, logging the error and behaving as "no data" / "best effort".
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the cache database at dbPath.
func Open(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", "file:"+dbPath+"?mode=rwc")
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}

	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS cache_entries (
		namespace TEXT NOT NULL,
		key TEXT NOT NULL,
		value TEXT NOT NULL,
		PRIMARY KEY (namespace, key)
	)`)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// ReadAll returns every cached answer field for the given namespace.
// Missing keys are simply absent from the result; read or parse failures are
// swallowed and the affected field is left unset.
func (s *Store) ReadAll(namespace string) types.AssessmentRecord {
	record := types.AssessmentRecord{}

	rows, err := s.db.Query(`SELECT key, value FROM cache_entries WHERE namespace = ?`, namespace)
	if err != nil {
		slog.Warn("local cache read failed", slog.String("namespace", namespace), slog.String("error", err.Error()))
		return record
	}
	defer rows.Close()

	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			slog.Warn("local cache row scan failed", slog.String("error", err.Error()))
			continue
		}
		applyField(&record, key, value)
	}
	if err := rows.Err(); err != nil {
		slog.Warn("local cache read failed", slog.String("namespace", namespace), slog.String("error", err.Error()))
	}
	return record
}

// HasAny reports whether the namespace holds at least one answer field.
func (s *Store) HasAny(namespace string) bool {
	var count int
	err := s.db.QueryRow(`SELECT COUNT(1) FROM cache_entries WHERE namespace = ?`, namespace).Scan(&count)
	if err != nil {
		slog.Warn("local cache lookup failed", slog.String("namespace", namespace), slog.String("error", err.Error()))
		return false
	}
	return count > 0
}

// WriteMany serializes every set field of the record and writes the batch to
// the namespace in a single transaction. Unset fields are skipped, not deleted.
func (s *Store) WriteMany(namespace string, record types.AssessmentRecord) {
	pairs := serializeFields(record)
	if len(pairs) == 0 {
		return
	}

	tx, err := s.db.Begin()
	if err != nil {
		slog.Warn("local cache write failed", slog.String("namespace", namespace), slog.String("error", err.Error()))
		return
	}
	for _, pair := range pairs {
		_, err := tx.Exec(
			`INSERT INTO cache_entries (namespace, key, value) VALUES (?, ?, ?)
			 ON CONFLICT (namespace, key) DO UPDATE SET value = excluded.value`,
			namespace, pair.key, pair.value,
		)
		if err != nil {
			slog.Warn("local cache write failed", slog.String("namespace", namespace), slog.String("key", pair.key), slog.String("error", err.Error()))
			_ = tx.Rollback()
			return
		}
	}
	if err := tx.Commit(); err != nil {
		slog.Warn("local cache commit failed", slog.String("namespace", namespace), slog.String("error", err.Error()))
	}
}

// Clear removes every known answer field for the namespace.
func (s *Store) Clear(namespace string) {
	_, err := s.db.Exec(`DELETE FROM cache_entries WHERE namespace = ?`, namespace)
	if err != nil {
		slog.Warn("local cache clear failed", slog.String("namespace", namespace), slog.String("error", err.Error()))
	}
}

// LastActiveUser returns the persisted last-active-user marker, if any.
func (s *Store) LastActiveUser() (string, bool) {
	var value string
	err := s.db.QueryRow(
		`SELECT value FROM cache_entries WHERE namespace = ? AND key = ?`,
		markerNamespace, markerKey,
	).Scan(&value)
	if err != nil {
		if err != sql.ErrNoRows {
			slog.Warn("last active user lookup failed", slog.String("error", err.Error()))
		}
		return "", false
	}
	return value, true
}

func (s *Store) SetLastActiveUser(userID string) {
	_, err := s.db.Exec(
		`INSERT INTO cache_entries (namespace, key, value) VALUES (?, ?, ?)
		 ON CONFLICT (namespace, key) DO UPDATE SET value = excluded.value`,
		markerNamespace, markerKey, userID,
	)
	if err != nil {
		slog.Warn("last active user write failed", slog.String("error", err.Error()))
	}
}

func (s *Store) ClearLastActiveUser() {
	_, err := s.db.Exec(
		`DELETE FROM cache_entries WHERE namespace = ? AND key = ?`,
		markerNamespace, markerKey,
	)
	if err != nil {
		slog.Warn("last active user clear failed", slog.String("error", err.Error()))
	}
}

type fieldPair struct {
	key   string
	value string
}

func serializeFields(record types.AssessmentRecord) []fieldPair {
	pairs := []fieldPair{}

	addStr := func(key string, value *string) {
		if value != nil {
			pairs = append(pairs, fieldPair{key: key, value: *value})
		}
	}
	addInt := func(key string, value *int) {
		if value != nil {
			pairs = append(pairs, fieldPair{key: key, value: strconv.Itoa(*value)})
		}
	}

	addStr(types.FIELD_KEY_GOAL, record.Goal)
	addStr(types.FIELD_KEY_GENDER, record.Gender)
	addInt(types.FIELD_KEY_AGE, record.Age)
	if record.Weight != nil {
		pairs = append(pairs, fieldPair{
			key:   types.FIELD_KEY_WEIGHT,
			value: strconv.FormatFloat(*record.Weight, 'f', -1, 64),
		})
	}
	addStr(types.FIELD_KEY_WEIGHT_UNIT, record.WeightUnit)
	addStr(types.FIELD_KEY_MOOD, record.Mood)
	addStr(types.FIELD_KEY_MOOD_EMOJI, record.MoodEmoji)
	addInt(types.FIELD_KEY_MOOD_INDEX, record.MoodIndex)
	addStr(types.FIELD_KEY_HELP_BEFORE, record.HelpBefore)
	addStr(types.FIELD_KEY_DISTRESS, record.Distress)
	addStr(types.FIELD_KEY_SLEEP_QUALITY, record.SleepQuality)
	addStr(types.FIELD_KEY_MEDICATION_FREQUENCY, record.MedicationFrequency)
	if record.OtherSymptoms != nil {
		serialized, err := json.Marshal(record.OtherSymptoms)
		if err == nil {
			pairs = append(pairs, fieldPair{key: types.FIELD_KEY_OTHER_SYMPTOMS, value: string(serialized)})
		} else {
			slog.Debug("could not serialize symptom list", slog.String("error", err.Error()))
		}
	}
	addInt(types.FIELD_KEY_SUPPORT_LEVEL, record.SupportLevel)
	addStr(types.FIELD_KEY_EXPRESSION_TEXT, record.ExpressionText)

	return pairs
}

func applyField(record *types.AssessmentRecord, key string, value string) {
	switch key {
	case types.FIELD_KEY_GOAL:
		record.Goal = &value
	case types.FIELD_KEY_GENDER:
		record.Gender = &value
	case types.FIELD_KEY_AGE:
		if parsed, err := strconv.Atoi(value); err == nil {
			record.Age = &parsed
		}
	case types.FIELD_KEY_WEIGHT:
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			record.Weight = &parsed
		}
	case types.FIELD_KEY_WEIGHT_UNIT:
		record.WeightUnit = &value
	case types.FIELD_KEY_MOOD:
		record.Mood = &value
	case types.FIELD_KEY_MOOD_EMOJI:
		record.MoodEmoji = &value
	case types.FIELD_KEY_MOOD_INDEX:
		if parsed, err := strconv.Atoi(value); err == nil {
			record.MoodIndex = &parsed
		}
	case types.FIELD_KEY_HELP_BEFORE:
		record.HelpBefore = &value
	case types.FIELD_KEY_DISTRESS:
		record.Distress = &value
	case types.FIELD_KEY_SLEEP_QUALITY:
		record.SleepQuality = &value
	case types.FIELD_KEY_MEDICATION_FREQUENCY:
		record.MedicationFrequency = &value
	case types.FIELD_KEY_OTHER_SYMPTOMS:
		symptoms := []string{}
		if err := json.Unmarshal([]byte(value), &symptoms); err != nil {
			// malformed entries degrade to an empty list, never an error
			symptoms = []string{}
		}
		record.OtherSymptoms = symptoms
	case types.FIELD_KEY_SUPPORT_LEVEL:
		if parsed, err := strconv.Atoi(value); err == nil {
			record.SupportLevel = &parsed
		}
	case types.FIELD_KEY_EXPRESSION_TEXT:
		record.ExpressionText = &value
	}
}
