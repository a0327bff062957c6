// Package sqlstore persists shortcut assignments in SQLite through GORM.
package sqlstore

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/mattn/go-sqlite3"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"shortcut-recorder/internal/logging"
	"shortcut-recorder/internal/shortcut"
	"shortcut-recorder/internal/store"
)

const maxRetries = 3

// ShortcutModel is one row of the shortcuts table. An empty Binding records
// an explicit clear.
type ShortcutModel struct {
	Name      string `gorm:"primaryKey"`
	Binding   string `gorm:"not null;default:''"`
	UpdatedAt time.Time
}

// TableName specifies the table name for GORM
func (ShortcutModel) TableName() string { return "shortcuts" }

// Store implements store.Backend on a SQLite database.
type Store struct {
	db *gorm.DB
}

var _ store.Backend = (*Store)(nil)

type gormLogger struct {
	level logger.LogLevel
}

func (l *gormLogger) LogMode(level logger.LogLevel) logger.Interface {
	return &gormLogger{level: level}
}

func (l *gormLogger) Info(ctx context.Context, msg string, data ...any) {
	if l.level >= logger.Info {
		logging.Logger.Info(fmt.Sprintf(msg, data...))
	}
}

func (l *gormLogger) Warn(ctx context.Context, msg string, data ...any) {
	if l.level >= logger.Warn {
		logging.Logger.Warn(fmt.Sprintf(msg, data...))
	}
}

func (l *gormLogger) Error(ctx context.Context, msg string, data ...any) {
	if l.level >= logger.Error {
		logging.Logger.Error(fmt.Sprintf(msg, data...))
	}
}

func (l *gormLogger) Trace(ctx context.Context, begin time.Time, fc func() (sql string, rowsAffected int64), err error) {
	if l.level < logger.Info {
		return
	}
	elapsed := time.Since(begin)
	sql, rows := fc()
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		logging.Logger.Error("gorm query error", "error", err, "duration", elapsed, "sql", sql, "rows", rows)
		return
	}
	logging.Logger.Debug("gorm query", "duration", elapsed, "sql", sql, "rows", rows)
}

func newGormLogger(debug bool) logger.Interface {
	if debug {
		return (&gormLogger{}).LogMode(logger.Info)
	}
	return (&gormLogger{}).LogMode(logger.Silent)
}

// Open opens or creates the database at path. ":memory:" gives a private
// in-memory database.
func Open(path string, debug bool) (*Store, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create directory: %w", err)
		}
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		NowFunc: func() time.Time { return time.Now().UTC() },
		Logger:  newGormLogger(debug),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if path == ":memory:" {
		// every pooled connection would otherwise see its own empty database
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to get database handle: %w", err)
		}
		sqlDB.SetMaxOpenConns(1)
	} else {
		db.Exec("PRAGMA journal_mode=WAL")
		db.Exec("PRAGMA busy_timeout=5000")
	}

	if err := db.AutoMigrate(&ShortcutModel{}); err != nil {
		return nil, fmt.Errorf("failed to migrate shortcuts schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Load implements store.Backend.
func (s *Store) Load(name store.Name) (shortcut.Shortcut, bool, error) {
	var row ShortcutModel
	err := s.db.Where("name = ?", string(name)).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return shortcut.Shortcut{}, false, nil
	}
	if err != nil {
		return shortcut.Shortcut{}, false, fmt.Errorf("failed to load shortcut %q: %w", name, err)
	}
	sc, err := shortcut.Parse(row.Binding)
	if err != nil {
		logging.Logger.Warn("Ignoring stored shortcut", "name", name, "binding", row.Binding, "error", err)
		return shortcut.Shortcut{}, false, nil
	}
	return sc, true, nil
}

// Save implements store.Backend as an upsert.
func (s *Store) Save(name store.Name, sc shortcut.Shortcut) error {
	row := ShortcutModel{Name: string(name), Binding: sc.String()}
	err := withRetry(func() error {
		return s.db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoUpdates: clause.AssignmentColumns([]string{"binding", "updated_at"}),
		}).Create(&row).Error
	}, maxRetries)
	if err != nil {
		return fmt.Errorf("failed to save shortcut %q: %w", name, err)
	}
	return nil
}

// All returns every stored row ordered by name.
func (s *Store) All() ([]ShortcutModel, error) {
	var rows []ShortcutModel
	if err := s.db.Order("name").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list shortcuts: %w", err)
	}
	return rows, nil
}

// withRetry retries operations on SQLITE_BUSY with linear backoff
func withRetry(fn func() error, maxRetries int) error {
	for i := 0; i < maxRetries; i++ {
		err := fn()
		if err == nil {
			return nil
		}
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && (sqliteErr.Code == sqlite3.ErrBusy || sqliteErr.Code == sqlite3.ErrLocked) {
			time.Sleep(time.Millisecond * time.Duration(50*(i+1)))
			continue
		}
		return err
	}
	return fmt.Errorf("operation failed after %d retries", maxRetries)
}
