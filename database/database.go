package database

import (
	"fmt"
	"log"
	"os"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"virtualab/config"
	"virtualab/models"
)

// DbInstance struct holds the database connection instance
type DbInstance struct {
	Db *gorm.DB
}

// Database is the global database instance
var Database DbInstance

// ConnectDb opens the configured database, tunes the pool and migrates the schema.
func ConnectDb() {
	db, err := Open(config.AppConfig)
	if err != nil {
		log.Fatalf("Failed to connect to %s: %v", config.AppConfig.DBDriver, err)
		os.Exit(2)
	}

	// Set up connection pooling
	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("Failed to get database instance: %v", err)
	}

	sqlDB.SetMaxOpenConns(10)   // Maximum open connections
	sqlDB.SetMaxIdleConns(5)    // Maximum idle connections
	sqlDB.SetConnMaxLifetime(0) // No timeout

	if err := RunMigrations(db); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	// Save database instance globally
	Database = DbInstance{Db: db}
}

// Open picks the GORM dialector for cfg.DBDriver.
func Open(cfg *config.Config) (*gorm.DB, error) {
	var dialector gorm.Dialector

	switch cfg.DBDriver {
	case "postgres", "":
		dialector = postgres.Open(dsnOrDefault(cfg, fmt.Sprintf(
			"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
			cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort,
		)))
	case "mysql":
		dialector = mysql.Open(dsnOrDefault(cfg, fmt.Sprintf(
			"%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
			cfg.DBUser, cfg.DBPassword, cfg.DBHost, cfg.DBPort, cfg.DBName,
		)))
	case "sqlite":
		dialector = sqlite.Open(dsnOrDefault(cfg, cfg.DBName+".db"))
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}

	// TranslateError turns unique violations into gorm.ErrDuplicatedKey for every driver.
	return gorm.Open(dialector, &gorm.Config{TranslateError: true})
}

func dsnOrDefault(cfg *config.Config, built string) string {
	if cfg.DBDSN != "" {
		return cfg.DBDSN
	}
	return built
}

// RunMigrations performs database migrations
func RunMigrations(db *gorm.DB) error {
	log.Println("Running Migrations...")

	err := db.AutoMigrate(
		&models.User{},
		&models.Teacher{},
		&models.Student{},
		&models.Material{},
		&models.ReactionArticle{},
		&models.Exercise{},
		&models.Question{},
		&models.StudentExerciseResult{},
		&models.StudentAnswer{},
		&models.Introduction{},
		&models.ReviewHistory{},
	)
	if err != nil {
		return err
	}

	log.Println("Migrations completed successfully.")
	return nil
}

// Ping checks that a pooled connection is still usable.
func Ping() error {
	return Database.Db.Exec("SELECT 1").Error
}

// Close releases the connection pool.
func Close() error {
	sqlDB, err := Database.Db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
