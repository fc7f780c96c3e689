// Package history records the digests of lockstep runs in a SQLite database,
// so that a replay on another build or machine can be checked against
// earlier runs of the same scenario.
package history

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/govalues/fixed"
	"github.com/govalues/fixed/internal/lockstep"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Entity is the primary key shared by all records.
type Entity struct {
	ID uint `gorm:"primaryKey"`
}

// Run is a recorded scenario run.
type Run struct {
	Entity

	Scenario   string `gorm:"not null;size:64;index"`
	Iterations int    `gorm:"not null"`

	// Hex digest, see lockstep.Result.DigestHex
	Digest  string `gorm:"not null;size:16"`
	Created time.Time

	Vars []*Var
}

// Var is the final value of a scenario variable.
// The value is stored as its raw integer.
type Var struct {
	Entity

	RunID uint        `gorm:"not null"`
	Name  string      `gorm:"not null;size:64"`
	Value fixed.Fixed `gorm:"type:integer;not null"`
}

// Store is a run history backed by a SQLite database.
type Store struct {
	db *gorm.DB
}

// Open opens or creates the database at path.
func Open(path string) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	err = db.AutoMigrate(&Run{}, &Var{})
	if err != nil {
		return nil, err
	}

	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Record stores the result of a run.
func (s *Store) Record(res lockstep.Result) (*Run, error) {
	run := Run{
		Scenario:   res.Name,
		Iterations: res.Iterations,
		Digest:     res.DigestHex(),
		Created:    time.Now(),
	}
	names := make([]string, 0, len(res.Vars))
	for name := range res.Vars {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		run.Vars = append(run.Vars, &Var{Name: name, Value: res.Vars[name]})
	}

	err := s.db.Create(&run).Error
	if err != nil {
		return nil, err
	}
	return &run, nil
}

// Last returns the most recent run of the scenario, or nil if there is none.
func (s *Store) Last(scenario string) (*Run, error) {
	var run Run
	err := s.db.Preload("Vars").
		Where(Run{Scenario: scenario}).
		Order("id desc").
		First(&run).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	sort.Slice(run.Vars, func(i, j int) bool {
		return run.Vars[i].Name < run.Vars[j].Name
	})
	return &run, nil
}

// Check compares the result with the most recent run of the same scenario
// and iteration count.
// It returns an error matching [lockstep.ErrDigestMismatch] if the digests
// differ.
func (s *Store) Check(res lockstep.Result) error {
	last, err := s.Last(res.Name)
	if err != nil {
		return err
	}
	if last == nil || last.Iterations != res.Iterations {
		return nil
	}
	if last.Digest != res.DigestHex() {
		return fmt.Errorf(
			"%v: got %v, run %v recorded %v: %w",
			res.Name,
			res.DigestHex(),
			last.ID,
			last.Digest,
			lockstep.ErrDigestMismatch,
		)
	}
	return nil
}
