package migrations_test

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smartnotes/migrations"
)

func TestNotesMigrationsArePaired(t *testing.T) {
	entries, err := fs.ReadDir(migrations.Notes, migrations.NotesDir)
	require.NoError(t, err)
	require.NotEmpty(t, entries)

	ups := map[string]bool{}
	downs := map[string]bool{}
	for _, e := range entries {
		name := e.Name()
		switch {
		case strings.HasSuffix(name, ".up.sql"):
			ups[strings.TrimSuffix(name, ".up.sql")] = true
		case strings.HasSuffix(name, ".down.sql"):
			downs[strings.TrimSuffix(name, ".down.sql")] = true
		default:
			t.Errorf("unexpected file in migrations: %s", name)
		}
	}

	assert.Equal(t, ups, downs)
}

func TestNotesTableMigration(t *testing.T) {
	data, err := fs.ReadFile(migrations.Notes, migrations.NotesDir+"/000001_create_notes_table.up.sql")
	require.NoError(t, err)

	sql := string(data)
	for _, column := range []string{"original_text", "summary", "keywords", "created_at"} {
		assert.Contains(t, sql, column)
	}
}

func TestNotesInsertionOrderMigration(t *testing.T) {
	up, err := fs.ReadFile(migrations.Notes, migrations.NotesDir+"/000003_add_insertion_order.up.sql")
	require.NoError(t, err)
	assert.Contains(t, string(up), "seq BIGSERIAL")
	assert.Contains(t, string(up), "(created_at DESC, seq DESC)")

	down, err := fs.ReadFile(migrations.Notes, migrations.NotesDir+"/000003_add_insertion_order.down.sql")
	require.NoError(t, err)
	assert.Contains(t, string(down), "DROP COLUMN IF EXISTS seq")
}
