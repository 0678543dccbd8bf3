// Package migrations встраивает SQL-миграции в бинарный файл.
package migrations

import "embed"

// Notes содержит миграции хранилища заметок.
//
//go:embed notes/*.sql
var Notes embed.FS

// NotesDir - каталог миграций заметок внутри Notes.
const NotesDir = "notes"
