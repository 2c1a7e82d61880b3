package database

import (
	"sync"

	"gorm.io/gorm"
)

// Store wraps the shared gorm handle. Reads go straight to DB(); every write
// goes through Write so at most one writer touches the store at a time.
type Store struct {
	db     *gorm.DB
	driver string
	mu     sync.Mutex
}

// NewStore wraps an already opened handle.
func NewStore(db *gorm.DB, driver string) *Store {
	return &Store{db: db, driver: driver}
}

func (s *Store) DB() *gorm.DB {
	return s.db
}

func (s *Store) Driver() string {
	return s.driver
}

// Write runs fn while holding the writer lock. fn must not call Write again.
func (s *Store) Write(fn func(tx *gorm.DB) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.db)
}

// WriteTx is Write inside a database transaction.
func (s *Store) WriteTx(fn func(tx *gorm.DB) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.Transaction(fn)
}

func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
