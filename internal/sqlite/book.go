package sqlite

import (
	"database/sql"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/mesh-intelligence/addressbook/pkg/types"
)

// Load rebuilds the AddressBook from the contacts and phones tables, in the
// order the contacts were saved. Every stored value goes through the
// validating constructors, so a row that fails validation is an error rather
// than a silently different book. Phones whose contact is missing are
// dropped.
func (b *Backend) Load() (*types.AddressBook, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return nil, types.ErrDetached
	}

	rows, err := b.db.Query(`SELECT contact_id, name, birthday FROM contacts ORDER BY ordinal, rowid`)
	if err != nil {
		return nil, fmt.Errorf("querying contacts: %w", err)
	}
	defer rows.Close()

	var (
		order []*types.Record
		byID  = make(map[string]*types.Record)
	)
	for rows.Next() {
		var (
			id, name string
			birthday sql.NullString
		)
		if err := rows.Scan(&id, &name, &birthday); err != nil {
			return nil, fmt.Errorf("scanning contact: %w", err)
		}
		r, err := types.NewRecord(name)
		if err != nil {
			return nil, fmt.Errorf("contact %s: %w", id, err)
		}
		if birthday.Valid && birthday.String != "" {
			if err := r.SetBirthday(birthday.String); err != nil {
				return nil, fmt.Errorf("contact %q birthday: %w", name, err)
			}
		}
		order = append(order, r)
		byID[id] = r
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating contacts: %w", err)
	}

	phoneRows, err := b.db.Query(`SELECT contact_id, number FROM phones ORDER BY contact_id, position`)
	if err != nil {
		return nil, fmt.Errorf("querying phones: %w", err)
	}
	defer phoneRows.Close()

	dropped := 0
	for phoneRows.Next() {
		var id, number string
		if err := phoneRows.Scan(&id, &number); err != nil {
			return nil, fmt.Errorf("scanning phone: %w", err)
		}
		r, ok := byID[id]
		if !ok {
			dropped++
			continue
		}
		if err := r.AddPhone(number); err != nil {
			return nil, fmt.Errorf("contact %q phone: %w", r.Name(), err)
		}
	}
	if err := phoneRows.Err(); err != nil {
		return nil, fmt.Errorf("iterating phones: %w", err)
	}

	book := types.NewAddressBook()
	for _, r := range order {
		book.AddRecord(r)
	}

	b.logger.Debug("address book loaded",
		slog.Int("contacts", book.Len()),
		slog.Int("orphan_phones", dropped),
	)
	return book, nil
}

// Save replaces the stored contacts with a snapshot of book. Both tables are
// rewritten in one transaction and then exported to their JSONL files.
// Contacts keep the contact_id they were loaded or last saved with; new
// names get a fresh UUID v7.
func (b *Backend) Save(book *types.AddressBook) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return types.ErrDetached
	}

	records := book.Records()
	ids := make(map[string]string, len(records))
	contacts := make([]contactRow, 0, len(records))
	var phones []phoneRow

	for i, r := range records {
		name := r.Name().String()
		id, ok := b.ids[name]
		if !ok {
			id = generateUUID()
		}
		ids[name] = id

		row := contactRow{ContactID: id, Name: name, Ordinal: i}
		if bd, ok := r.Birthday(); ok {
			row.Birthday = bd.String()
		}
		contacts = append(contacts, row)

		for pos, p := range r.Phones() {
			phones = append(phones, phoneRow{ContactID: id, Position: pos, Number: p.String()})
		}
	}

	if err := b.replaceRows(contacts, phones); err != nil {
		return err
	}

	if err := writeJSONL(filepath.Join(b.dataDir, contactsJSONL), contacts); err != nil {
		return fmt.Errorf("persisting %s: %w", contactsJSONL, err)
	}
	if err := writeJSONL(filepath.Join(b.dataDir, phonesJSONL), phones); err != nil {
		return fmt.Errorf("persisting %s: %w", phonesJSONL, err)
	}

	b.ids = ids
	b.logger.Debug("address book saved",
		slog.Int("contacts", len(contacts)),
		slog.Int("phones", len(phones)),
	)
	return nil
}

// replaceRows swaps the table contents for the given rows in one transaction.
func (b *Backend) replaceRows(contacts []contactRow, phones []phoneRow) error {
	tx, err := b.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning save transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM phones`); err != nil {
		return fmt.Errorf("clearing phones: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM contacts`); err != nil {
		return fmt.Errorf("clearing contacts: %w", err)
	}

	contactStmt, err := tx.Prepare(`INSERT INTO contacts (contact_id, name, birthday, ordinal) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing contact insert: %w", err)
	}
	defer contactStmt.Close()
	for _, c := range contacts {
		if _, err := contactStmt.Exec(c.ContactID, c.Name, nullIfEmpty(c.Birthday), c.Ordinal); err != nil {
			return fmt.Errorf("inserting contact %q: %w", c.Name, err)
		}
	}

	phoneStmt, err := tx.Prepare(`INSERT INTO phones (contact_id, position, number) VALUES (?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing phone insert: %w", err)
	}
	defer phoneStmt.Close()
	for _, p := range phones {
		if _, err := phoneStmt.Exec(p.ContactID, p.Position, p.Number); err != nil {
			return fmt.Errorf("inserting phone: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing save transaction: %w", err)
	}
	return nil
}
