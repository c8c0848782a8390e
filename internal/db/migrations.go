package db

import (
	"database/sql"
	"fmt"
	"log/slog"

	"gorm.io/gorm"
)

// Schema version tracking (PRAGMA user_version):
// 0 - empty file, or a store written before versioning
// 1 - entries table
// 2 - nullable notes column
// 3 - rows imported from the legacy time_entries table
// 4 - index on entries(date)
const currentSchemaVersion = 4

const (
	entriesTable = "entries"
	legacyTable  = "time_entries"

	createEntriesTableSQL = `
	CREATE TABLE IF NOT EXISTS entries (
		id      INTEGER PRIMARY KEY AUTOINCREMENT,
		date    TEXT NOT NULL,
		weekday TEXT NOT NULL,
		project TEXT NOT NULL,
		system  TEXT NOT NULL,
		hours   REAL NOT NULL,
		task    TEXT NOT NULL
	)`

	addNotesColumnSQL = `ALTER TABLE entries ADD COLUMN notes TEXT`

	importLegacySQL = `
	INSERT INTO entries (id, date, weekday, project, system, hours, task, notes)
	SELECT id, date, day_of_week, project, system, hours, task, %s
	FROM time_entries
	WHERE id NOT IN (SELECT id FROM entries)`

	createDateIndexSQL = `CREATE INDEX IF NOT EXISTS idx_entries_date ON entries(date)`
)

type migration struct {
	version int
	name    string
	apply   func(tx *gorm.DB, log *slog.Logger) error
}

// migrations run in order; each one is safe to re-run
var migrations = []migration{
	{1, "create entries table", migrateCreateEntries},
	{2, "add notes column", migrateAddNotes},
	{3, "import legacy time_entries", migrateImportLegacy},
	{4, "index entries by date", migrateDateIndex},
}

// migrate brings the schema up to currentSchemaVersion in a single transaction
func migrate(gdb *gorm.DB, log *slog.Logger) error {
	return gdb.Transaction(func(tx *gorm.DB) error {
		var version int
		if err := tx.Raw("PRAGMA user_version").Scan(&version).Error; err != nil {
			return fmt.Errorf("get user_version: %w", err)
		}

		if version > currentSchemaVersion {
			log.Warn("database schema is newer than this build", "version", version, "supported", currentSchemaVersion)
			return nil
		}

		for _, m := range migrations {
			if m.version <= version {
				continue
			}
			log.Debug("applying migration", "version", m.version, "name", m.name)
			if err := m.apply(tx, log); err != nil {
				return fmt.Errorf("migrate to v%d (%s): %w", m.version, m.name, err)
			}
		}

		if version == currentSchemaVersion {
			return nil
		}
		if err := tx.Exec(fmt.Sprintf("PRAGMA user_version = %d", currentSchemaVersion)).Error; err != nil {
			return fmt.Errorf("set user_version: %w", err)
		}
		log.Info("database schema migrated", "from", version, "to", currentSchemaVersion)
		return nil
	})
}

func migrateCreateEntries(tx *gorm.DB, _ *slog.Logger) error {
	return tx.Exec(createEntriesTableSQL).Error
}

// migrateAddNotes upgrades stores created before notes existed, keeping their rows
func migrateAddNotes(tx *gorm.DB, _ *slog.Logger) error {
	columns, err := columnNames(tx, entriesTable)
	if err != nil {
		return err
	}
	if columns["notes"] {
		return nil
	}
	return tx.Exec(addNotesColumnSQL).Error
}

// migrateImportLegacy copies rows from the legacy time_entries table.
// The legacy table itself is not modified.
func migrateImportLegacy(tx *gorm.DB, log *slog.Logger) error {
	if !tx.Migrator().HasTable(legacyTable) {
		return nil
	}

	columns, err := columnNames(tx, legacyTable)
	if err != nil {
		return err
	}
	notes := "''"
	if columns["notes"] {
		notes = "COALESCE(notes, '')"
	}

	result := tx.Exec(fmt.Sprintf(importLegacySQL, notes))
	if result.Error != nil {
		return result.Error
	}
	log.Info("imported legacy entries", "rows", result.RowsAffected)
	return nil
}

func migrateDateIndex(tx *gorm.DB, _ *slog.Logger) error {
	return tx.Exec(createDateIndexSQL).Error
}

// columnNames lists the columns of table as reported by PRAGMA table_info
func columnNames(tx *gorm.DB, table string) (map[string]bool, error) {
	rows, err := tx.Raw(fmt.Sprintf("PRAGMA table_info(%q)", table)).Rows()
	if err != nil {
		return nil, fmt.Errorf("inspect %s: %w", table, err)
	}
	defer rows.Close()

	columns := make(map[string]bool)
	for rows.Next() {
		var (
			cid       int
			name      string
			ctype     string
			notNull   int
			dfltValue sql.NullString
			pk        int
		)
		if err := rows.Scan(&cid, &name, &ctype, &notNull, &dfltValue, &pk); err != nil {
			return nil, fmt.Errorf("inspect %s: %w", table, err)
		}
		columns[name] = true
	}
	return columns, rows.Err()
}
