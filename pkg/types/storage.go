package types

import "errors"

// Storage persists an AddressBook between sessions. Callers attach to a
// backend, load the book once at startup, save it once at shutdown, and
// detach when done.
type Storage interface {
	// Attach connects the Storage to the backend described by config.
	// Creates the DataDir if it does not exist. Returns ErrAlreadyAttached
	// if called while already attached.
	Attach(config Config) error

	// Load returns the persisted AddressBook. A backend with no prior state
	// returns an empty book.
	Load() (*AddressBook, error)

	// Save replaces the persisted state with a snapshot of book.
	Save(book *AddressBook) error

	// Detach releases backend resources. Idempotent: multiple calls succeed.
	// After Detach, Load and Save return ErrDetached.
	Detach() error
}

// Storage lifecycle errors.
var (
	ErrDetached        = errors.New("storage is detached")
	ErrAlreadyAttached = errors.New("storage is already attached")
)
