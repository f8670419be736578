package gorm

import (
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"kanban-api/internal/domain/entity"
	"kanban-api/pkg/resource"
)

const (
	DriverPostgres = "postgres"
	DriverSqlite   = "sqlite"
)

// Config selects the driver and connection parameters.
type Config struct {
	Driver   string
	Host     string
	Port     string
	Username string
	Password string
	Database string
	Schema   string
	// DSN overrides the fields above for postgres and is the file path (or :memory:) for sqlite.
	DSN          string
	MaxOpenConns int
	MaxIdleConns int
	LogLevel     logger.LogLevel
}

// ConfigFromProperties reads the app.db.* properties.
func ConfigFromProperties() Config {
	return Config{
		Driver:       resource.GetStringOrDefault("app.db.driver", DriverPostgres),
		Host:         resource.GetString("app.db.host"),
		Port:         resource.GetString("app.db.port"),
		Username:     resource.GetString("app.db.username"),
		Password:     resource.GetString("app.db.password"),
		Database:     resource.GetString("app.db.database"),
		Schema:       resource.GetStringOrDefault("app.db.schema", "public"),
		DSN:          resource.GetString("app.db.dsn"),
		MaxOpenConns: resource.GetInt("app.db.max-open-conns"),
		MaxIdleConns: resource.GetInt("app.db.max-idle-conns"),
		LogLevel:     logger.Warn,
	}
}

func (c Config) dialector() (gorm.Dialector, error) {
	switch c.Driver {
	case DriverPostgres:
		dsn := c.DSN
		if dsn == "" {
			dsn = fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable search_path=%s",
				c.Host, c.Username, c.Password, c.Database, c.Port, c.Schema)
		}
		return postgres.Open(dsn), nil
	case DriverSqlite:
		dsn := c.DSN
		if dsn == "" {
			dsn = ":memory:"
		}
		return sqlite.Open(dsn), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", c.Driver)
	}
}

// Open connects, tunes the pool and creates the kanban tables when missing.
// In-memory sqlite is pinned to a single connection so every query sees the same database.
func Open(config Config) (*gorm.DB, error) {
	dialector, err := config.dialector()
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:                                   logger.Default.LogMode(config.LogLevel),
		DisableForeignKeyConstraintWhenMigrating: true,
		TranslateError:                           true,
		NowFunc:                                  func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		return nil, fmt.Errorf("connect %s database: %w", config.Driver, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if config.Driver == DriverSqlite && (config.DSN == "" || config.DSN == ":memory:") {
		sqlDB.SetMaxOpenConns(1)
	} else {
		if config.MaxOpenConns > 0 {
			sqlDB.SetMaxOpenConns(config.MaxOpenConns)
		}
		if config.MaxIdleConns > 0 {
			sqlDB.SetMaxIdleConns(config.MaxIdleConns)
		}
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate creates or widens the kanban tables.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&entity.User{}, &entity.Board{}, &entity.Task{}, &entity.Subtask{}); err != nil {
		return fmt.Errorf("migrate tables: %w", err)
	}
	return nil
}
