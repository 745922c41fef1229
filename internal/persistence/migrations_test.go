package persistence

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestListMigrationFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	for _, name := range []string{"002_invites.sql", "001_init.sql", "README.md", ".001_init.sql.swp"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("-- noop"), 0o644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "archive"), 0o755))

	files, err := listMigrationFiles(dir)
	require.NoError(t, err)
	require.Equal(t, []string{"001_init.sql", "002_invites.sql"}, files)
}

func TestListMigrationFilesMissingDir(t *testing.T) {
	t.Parallel()

	_, err := listMigrationFiles(filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
}
