// Package types defines the contact entities (field values, records and the
// address book), the Storage interface used to persist them, and the standard
// error kinds shared by the addressbook tool.
package types
