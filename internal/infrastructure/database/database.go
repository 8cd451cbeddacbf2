package database

import (
	"fmt"
	"time"

	"freemodels-server/services/catalog-api/internal/infrastructure/logger"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
	"gorm.io/plugin/dbresolver"
)

const tablePrefix = "catalog_api."

var SchemaRegistry []interface{}

func RegisterSchemaForAutoMigrate(models ...interface{}) {
	SchemaRegistry = append(SchemaRegistry, models...)
}

var DB *gorm.DB

// Config holds database configuration
type Config struct {
	DatabaseURL     string
	ReadDatabaseURL string
	MaxIdle         int
	MaxOpen         int
	MaxLifetime     time.Duration
	LogLevel        gormlogger.LogLevel
}

// Connect creates a new database connection with the given configuration
func Connect(cfg Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{
		NamingStrategy: schema.NamingStrategy{
			TablePrefix:   tablePrefix,
			SingularTable: false,
		},
		Logger: gormlogger.Default.LogMode(cfg.LogLevel),
	})
	if err != nil {
		log := logger.GetLogger()
		log.Error().
			Str("error_code", "0d82a7c4-5b31-4f9e-a6d8-3c94e1f7b250").
			Err(err).
			Msg("unable to connect to database")
		return nil, err
	}

	// route reads through the replica when one is configured
	if cfg.ReadDatabaseURL != "" {
		err = db.Use(dbresolver.Register(dbresolver.Config{
			Replicas:          []gorm.Dialector{postgres.Open(cfg.ReadDatabaseURL)},
			TraceResolverMode: true,
		}))
		if err != nil {
			return nil, fmt.Errorf("register read replica: %w", err)
		}
	}

	// Configure connection pool
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxIdleConns(cfg.MaxIdle)
	sqlDB.SetMaxOpenConns(cfg.MaxOpen)
	sqlDB.SetConnMaxLifetime(cfg.MaxLifetime)

	log := logger.GetLogger()
	log.Info().Msg("Successfully connected to database")
	DB = db
	return DB, nil
}

// NewDB creates a new database connection using DSN
func NewDB(dsn, readDSN string) (*gorm.DB, error) {
	return Connect(Config{
		DatabaseURL:     dsn,
		ReadDatabaseURL: readDSN,
		MaxIdle:         10,
		MaxOpen:         25,
		MaxLifetime:     1 * time.Hour,
		LogLevel:        gormlogger.Silent,
	})
}

type DatabaseMigration struct {
	gorm.Model
	Version string `gorm:"not null;uniqueIndex"`
}

func Migration(db *gorm.DB) error {
	schemaName := tablePrefix[:len(tablePrefix)-1]

	if err := db.Exec(fmt.Sprintf("CREATE SCHEMA IF NOT EXISTS %s;", schemaName)).Error; err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	if err := db.AutoMigrate(&DatabaseMigration{}); err != nil {
		return fmt.Errorf("failed to create 'database_migration' table: %w", err)
	}
	for _, model := range SchemaRegistry {
		if err := db.AutoMigrate(model); err != nil {
			log := logger.GetLogger()
			log.Error().
				Str("error_code", "6b47f1d9-e2a5-48c3-bd70-91f5c3a8e426").
				Err(err).
				Msgf("failed to auto migrate schema: %T", model)
			return err
		}
	}
	return nil
}
