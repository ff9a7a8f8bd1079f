// Package history keeps a durable audit trail of every placement and
// retrieval in an embedded SQLite database.
package history

import (
	"fmt"

	"github.com/jinzhu/gorm"
	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// Event is one recorded fridge action.
type Event struct {
	gorm.Model
	Action   string `gorm:"column:action"` // "place" or "retrieve"
	ItemID   string `gorm:"column:item_id"`
	ItemName string `gorm:"column:item_name"`
	Level    int    `gorm:"column:level"`
	Section  int    `gorm:"column:section"`
}

// Store is the audit trail over a SQLite file.
type Store struct {
	db *gorm.DB
}

// Open opens (and migrates) the history database at path.
func Open(path string) (*Store, error) {
	db, err := gorm.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open history db: %w", err)
	}
	if err := db.AutoMigrate(&Event{}).Error; err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate history db: %w", err)
	}
	return &Store{db: db}, nil
}

// Record appends one event.
func (s *Store) Record(action, itemID, name string, level, section int) error {
	event := Event{
		Action:   action,
		ItemID:   itemID,
		ItemName: name,
		Level:    level,
		Section:  section,
	}
	return s.db.Create(&event).Error
}

// Recent returns the most recent events, newest first.
func (s *Store) Recent(limit int) ([]Event, error) {
	var events []Event
	err := s.db.Order("created_at desc").Limit(limit).Find(&events).Error
	return events, err
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
