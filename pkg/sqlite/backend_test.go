package sqlite

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/addressbook/pkg/types"
)

func TestNewBackendRoundTrip(t *testing.T) {
	cfg := types.Config{Backend: types.BackendSQLite, DataDir: t.TempDir()}

	backend := NewBackend(nil)
	require.NoError(t, backend.Attach(cfg))

	book := types.NewAddressBook()
	rec, err := types.NewRecord("Alice")
	require.NoError(t, err)
	require.NoError(t, rec.AddPhone("0123456789"))
	book.AddRecord(rec)
	require.NoError(t, backend.Save(book))
	require.NoError(t, backend.Detach())

	reopened := NewBackend(nil)
	require.NoError(t, reopened.Attach(cfg))
	defer reopened.Detach()

	loaded, err := reopened.Load()
	require.NoError(t, err)
	assert.Equal(t, book.String(), loaded.String())
}
