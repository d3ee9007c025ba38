package sqlite

// Schema DDL. The database is rebuilt from the JSONL files on every Attach,
// so there is no migration path between schema versions.
const (
	createContacts = `CREATE TABLE contacts (
    contact_id TEXT PRIMARY KEY,
    name TEXT NOT NULL UNIQUE,
    birthday TEXT,
    ordinal INTEGER NOT NULL
);`

	createPhones = `CREATE TABLE phones (
    contact_id TEXT NOT NULL,
    position INTEGER NOT NULL,
    number TEXT NOT NULL,
    PRIMARY KEY (contact_id, position),
    FOREIGN KEY (contact_id) REFERENCES contacts(contact_id) ON DELETE CASCADE
);`

	idxContactsOrdinal = `CREATE INDEX idx_contacts_ordinal ON contacts(ordinal);`
)

// schemaDDL lists all statements in dependency order.
var schemaDDL = []string{
	createContacts,
	createPhones,
	idxContactsOrdinal,
}

// JSONL file names in the data directory, and the SQLite database file.
const (
	contactsJSONL = "contacts.jsonl"
	phonesJSONL   = "phones.jsonl"
	dbFileName    = "addressbook.db"
)

// contactRow is one line of contacts.jsonl and one row of the contacts table.
type contactRow struct {
	ContactID string `json:"contact_id"`
	Name      string `json:"name"`
	Birthday  string `json:"birthday,omitempty"`
	Ordinal   int    `json:"ordinal"`
}

// phoneRow is one line of phones.jsonl and one row of the phones table.
type phoneRow struct {
	ContactID string `json:"contact_id"`
	Position  int    `json:"position"`
	Number    string `json:"number"`
}
