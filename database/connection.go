package database

import (
	"fmt"
	"os"

	_ "github.com/lib/pq" // PostgreSQL driver
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Config holds database configuration
type Config struct {
	Driver   string // "sqlite" or "postgres"
	Path     string // SQLite file, ignored for postgres
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
}

// Connect opens a read-only connection to the collector database.
// A missing SQLite file is reported as NotFoundError instead of letting
// the driver create an empty database.
func Connect(cfg Config) (*Database, error) {
	dialector, err := openDialector(cfg)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:                 logger.Default.LogMode(logger.Silent), // Silent logging for production
		SkipDefaultTransaction: true,                                  // Reads only
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database handle: %w", err)
	}

	// One short-lived reader
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)

	if err := sqlDB.Ping(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Database{db: db}, nil
}

func openDialector(cfg Config) (gorm.Dialector, error) {
	switch cfg.Driver {
	case "", "sqlite":
		if _, err := os.Stat(cfg.Path); err != nil {
			return nil, NewNotFoundErrorWithID("database file", cfg.Path)
		}
		return sqlite.Open(fmt.Sprintf("file:%s?mode=ro", cfg.Path)), nil
	case "postgres":
		dsn := fmt.Sprintf(
			"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
			cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName,
		)
		return postgres.New(postgres.Config{
			DriverName: "postgres", // lib/pq
			DSN:        dsn,
		}), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}
