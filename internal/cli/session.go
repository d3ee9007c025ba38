package cli

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/mesh-intelligence/addressbook/internal/assistant"
	"github.com/mesh-intelligence/addressbook/pkg/sqlite"
	"github.com/mesh-intelligence/addressbook/pkg/types"
)

// session is one load/command/save cycle over the stored address book.
type session struct {
	storage   types.Storage
	attachErr error
	bot       *assistant.Assistant
}

// openSession attaches the storage and loads the address book. Load never
// fails from the caller's view: missing or unreadable state yields an empty
// book and a warning.
func (a *app) openSession() *session {
	s := &session{storage: sqlite.NewBackend(a.logger)}

	book, err := s.load(types.Config{Backend: a.backend, DataDir: a.dataDir})
	if err != nil {
		a.logger.Warn("starting with an empty address book",
			slog.String("data_dir", a.dataDir),
			slog.String("error", err.Error()))
		book = types.NewAddressBook()
	}

	s.bot = assistant.New(book, a.assistantOpts...)
	return s
}

func (s *session) load(cfg types.Config) (*types.AddressBook, error) {
	if err := s.storage.Attach(cfg); err != nil {
		s.attachErr = err
		return nil, fmt.Errorf("attach storage: %w", err)
	}
	return s.storage.Load()
}

// close saves the address book and detaches the storage.
func (s *session) close() error {
	if s.attachErr != nil {
		return systemError(fmt.Errorf("save address book: storage unavailable: %w", s.attachErr))
	}
	saveErr := s.storage.Save(s.bot.Book())
	detachErr := s.storage.Detach()
	if err := errors.Join(saveErr, detachErr); err != nil {
		return systemError(fmt.Errorf("save address book: %w", err))
	}
	return nil
}
