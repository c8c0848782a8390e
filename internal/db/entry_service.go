package db

import (
	"errors"
	"fmt"
	"sort"

	"gorm.io/gorm"

	"github.com/balkashynov/weeklog/internal/models"
	"github.com/balkashynov/weeklog/internal/week"
)

// entryColumns reads notes as "" for rows migrated before the column existed
const entryColumns = "id, date, weekday, project, system, hours, task, COALESCE(notes, '') AS notes"

// Add validates and inserts a new entry, returning it with its assigned id
func (s *Store) Add(entry models.Entry) (models.Entry, error) {
	if !s.Connected() {
		return models.Entry{}, ErrNotConnected
	}
	if err := entry.Validate(); err != nil {
		return models.Entry{}, err
	}

	entry.ID = 0
	if err := s.db.Create(&entry).Error; err != nil {
		return models.Entry{}, fmt.Errorf("failed to add entry: %w", err)
	}

	s.log.Debug("entry added", "id", entry.ID, "date", entry.Date, "project", entry.Project)
	return entry, nil
}

// List returns entries dated within [start, end], ordered by date ascending
func (s *Store) List(start, end string) ([]models.Entry, error) {
	entries := []models.Entry{}
	if !s.Connected() {
		return entries, ErrNotConnected
	}

	err := s.db.Model(&models.Entry{}).
		Select(entryColumns).
		Where("date BETWEEN ? AND ?", start, end).
		Order("date ASC, id ASC").
		Find(&entries).Error
	if err != nil {
		return []models.Entry{}, fmt.Errorf("failed to list entries: %w", err)
	}

	return entries, nil
}

// Get returns the entry with the given id
func (s *Store) Get(id uint) (models.Entry, error) {
	if !s.Connected() {
		return models.Entry{}, ErrNotConnected
	}

	var entry models.Entry
	err := s.db.Model(&models.Entry{}).Select(entryColumns).Where("id = ?", id).Take(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Entry{}, fmt.Errorf("%w: #%d", ErrEntryNotFound, id)
	}
	if err != nil {
		return models.Entry{}, fmt.Errorf("failed to get entry #%d: %w", id, err)
	}

	return entry, nil
}

// Summary returns hours summed per (project, weekday) for entries in [start, end].
// Rows are ordered by project, then Monday..Sunday.
func (s *Store) Summary(start, end string) ([]models.SummaryRow, error) {
	rows := []models.SummaryRow{}
	if !s.Connected() {
		return rows, ErrNotConnected
	}

	err := s.db.Model(&models.Entry{}).
		Select("project, weekday, SUM(hours) AS hours").
		Where("date BETWEEN ? AND ?", start, end).
		Group("project, weekday").
		Scan(&rows).Error
	if err != nil {
		return []models.SummaryRow{}, fmt.Errorf("failed to summarise entries: %w", err)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Project != rows[j].Project {
			return rows[i].Project < rows[j].Project
		}
		di, _ := week.WeekdayIndex(rows[i].Weekday)
		dj, _ := week.WeekdayIndex(rows[j].Weekday)
		return di < dj
	})

	return rows, nil
}

// Update overwrites every mutable field of the entry with the given id
func (s *Store) Update(id uint, entry models.Entry) (models.Entry, error) {
	if !s.Connected() {
		return models.Entry{}, ErrNotConnected
	}
	if err := entry.Validate(); err != nil {
		return models.Entry{}, err
	}

	result := s.db.Model(&models.Entry{}).Where("id = ?", id).Updates(map[string]interface{}{
		"date":    entry.Date,
		"weekday": entry.Weekday,
		"project": entry.Project,
		"system":  entry.System,
		"hours":   entry.Hours,
		"task":    entry.Task,
		"notes":   entry.Notes,
	})
	if result.Error != nil {
		return models.Entry{}, fmt.Errorf("failed to update entry #%d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 && s.missing == MissingIDReport {
		return models.Entry{}, fmt.Errorf("%w: #%d", ErrEntryNotFound, id)
	}

	entry.ID = id
	s.log.Debug("entry updated", "id", id, "rows", result.RowsAffected)
	return entry, nil
}

// Delete removes the entry with the given id
func (s *Store) Delete(id uint) error {
	if !s.Connected() {
		return ErrNotConnected
	}

	result := s.db.Delete(&models.Entry{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete entry #%d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 && s.missing == MissingIDReport {
		return fmt.Errorf("%w: #%d", ErrEntryNotFound, id)
	}

	s.log.Debug("entry deleted", "id", id, "rows", result.RowsAffected)
	return nil
}
