package db

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/glebarez/sqlite"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/balkashynov/studysmart/internal/models"
)

// Table names, used to scope write locks and change notifications
const (
	TableSubjects = "subjects"
	TableTasks    = "tasks"
	TableSessions = "sessions"
)

// MemoryPath opens a private in-memory database
const MemoryPath = "file::memory:"

const queryTimeout = 5 * time.Second

// Store is the data store gateway. Writes to a table are serialized by a
// per-table lock and run in a transaction; queries subscribed to a table are
// refreshed after each committed write touching it.
type Store struct {
	db      *gorm.DB
	log     *zap.Logger
	tracker *tracker

	locks map[string]*sync.Mutex
}

// Open sets up the database connection and runs migrations. An empty path
// opens the default database file.
func Open(path string, log *zap.Logger) (*Store, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if path == "" {
		def, err := DefaultPath()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve database path: %w", err)
		}
		path = def
	}

	// Ensure the directory exists
	if err := ensureDir(path); err != nil {
		return nil, err
	}

	gormLog := logger.New(zap.NewStdLog(log.Named("gorm")), logger.Config{
		SlowThreshold:             time.Second,
		LogLevel:                  logger.Warn,
		IgnoreRecordNotFoundError: true,
		Colorful:                  false,
	})

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormLog,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// SQLite allows one writer; a single connection also keeps an in-memory
	// database alive and shared
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql handle: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetConnMaxLifetime(0)

	s := &Store{
		db:      db,
		log:     log,
		tracker: newTracker(),
		locks: map[string]*sync.Mutex{
			TableSubjects: {},
			TableTasks:    {},
			TableSessions: {},
		},
	}

	// Run auto-migrations
	if err := s.runMigrations(); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Debug("database ready", zap.String("path", path))
	return s, nil
}

// DefaultPath returns the path to the SQLite database file in the home directory
func DefaultPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".studysmart", "studysmart.db"), nil
}

// ensureDir creates the parent directory of a file database
func ensureDir(path string) error {
	if strings.Contains(path, ":memory:") || strings.Contains(path, "mode=memory") {
		return nil
	}
	clean := strings.TrimPrefix(path, "file:")
	clean = strings.Split(clean, "?")[0]
	dir := filepath.Dir(clean)
	if dir == "." || dir == "" {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create studysmart directory %q: %w", dir, err)
	}
	return nil
}

// runMigrations creates/updates the database schema
func (s *Store) runMigrations() error {
	return s.db.AutoMigrate(
		&models.Subject{},
		&models.Task{},
		&models.Session{},
	)
}

// Close closes the database connection
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Transaction runs fn in one database transaction while holding the write
// locks of every listed table. Either all of fn's writes commit or none do.
// Queries over the listed tables are refreshed only after a commit.
func (s *Store) Transaction(ctx context.Context, tables []string, fn func(tx *gorm.DB) error) error {
	unlock := s.lockTables(tables)
	err := s.db.WithContext(ctx).Transaction(fn)
	unlock()

	if err != nil {
		s.log.Warn("transaction rolled back", zap.Strings("tables", tables), zap.Error(err))
		return err
	}

	s.tracker.notify(tables...)
	return nil
}

// lockTables takes the table locks in a fixed order so that overlapping
// multi-table writes cannot deadlock
func (s *Store) lockTables(tables []string) func() {
	ordered := slices.Clone(tables)
	slices.Sort(ordered)
	ordered = slices.Compact(ordered)

	held := make([]*sync.Mutex, 0, len(ordered))
	for _, name := range ordered {
		lock, ok := s.locks[name]
		if !ok {
			continue
		}
		lock.Lock()
		held = append(held, lock)
	}

	return func() {
		for i := len(held) - 1; i >= 0; i-- {
			held[i].Unlock()
		}
	}
}

// read runs a bounded read outside of any write lock
func (s *Store) read(fn func(tx *gorm.DB) error) error {
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()
	return fn(s.db.WithContext(ctx))
}
