// This file loads the JSONL files into SQLite at startup.
package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"path/filepath"
)

// loadAllJSONL reads contacts.jsonl and phones.jsonl from dataDir and inserts
// their records into SQLite. Loading is transactional: all succeed or the
// database remains empty. Malformed lines, and records missing their key
// fields, are skipped. Unknown fields are ignored. When two contacts share a
// name or ID, the later line wins.
func loadAllJSONL(db *sql.DB, dataDir string) (contacts, phones int, err error) {
	tx, err := db.Begin()
	if err != nil {
		return 0, 0, fmt.Errorf("beginning load transaction: %w", err)
	}
	defer tx.Rollback()

	contacts, err = loadJSONLInto(tx, filepath.Join(dataDir, contactsJSONL),
		`INSERT OR REPLACE INTO contacts (contact_id, name, birthday, ordinal) VALUES (?, ?, ?, ?)`,
		func(r contactRow) ([]any, bool) {
			if r.ContactID == "" || r.Name == "" {
				return nil, false
			}
			return []any{r.ContactID, r.Name, nullIfEmpty(r.Birthday), r.Ordinal}, true
		})
	if err != nil {
		return 0, 0, fmt.Errorf("loading %s: %w", contactsJSONL, err)
	}

	phones, err = loadJSONLInto(tx, filepath.Join(dataDir, phonesJSONL),
		`INSERT OR REPLACE INTO phones (contact_id, position, number) VALUES (?, ?, ?)`,
		func(r phoneRow) ([]any, bool) {
			if r.ContactID == "" {
				return nil, false
			}
			return []any{r.ContactID, r.Position, r.Number}, true
		})
	if err != nil {
		return 0, 0, fmt.Errorf("loading %s: %w", phonesJSONL, err)
	}

	if err := tx.Commit(); err != nil {
		return 0, 0, fmt.Errorf("committing load transaction: %w", err)
	}
	return contacts, phones, nil
}

// loadJSONLInto decodes each line of path into T and inserts the arguments
// produced by args. Lines that do not decode, or for which args reports
// false, are skipped. Returns the number of rows inserted.
func loadJSONLInto[T any](tx *sql.Tx, path, insertSQL string, args func(T) ([]any, bool)) (int, error) {
	records, err := readJSONL(path)
	if err != nil {
		return 0, err
	}
	if len(records) == 0 {
		return 0, nil
	}

	stmt, err := tx.Prepare(insertSQL)
	if err != nil {
		return 0, fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	n := 0
	for _, rec := range records {
		var row T
		if err := json.Unmarshal(rec, &row); err != nil {
			continue
		}
		values, ok := args(row)
		if !ok {
			continue
		}
		if _, err := stmt.Exec(values...); err != nil {
			return n, fmt.Errorf("inserting record: %w", err)
		}
		n++
	}
	return n, nil
}

func nullIfEmpty(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
