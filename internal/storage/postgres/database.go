package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"log"

	"github.com/VitaminP8/yatube/internal/config"
	"github.com/VitaminP8/yatube/internal/storage"
	"github.com/VitaminP8/yatube/models"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jinzhu/gorm"
	_ "github.com/jinzhu/gorm/dialects/postgres"
)

var DB *gorm.DB

// GetDB возвращает глобальную переменную DB (для тестирования)
func GetDB() *gorm.DB {
	return DB
}

// InitDB подключается к базе данных PostgreSQL через драйвер pgx и устанавливает глобальную переменную DB
func InitDB(cfg config.DBConfig) error {
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		cfg.Host,
		cfg.User,
		cfg.Password,
		cfg.Name,
		cfg.Port,
		cfg.SSLMode,
	)

	sqlDB, err := sql.Open("pgx", dsn)
	if err != nil {
		return fmt.Errorf("failed to open the database: %w", err)
	}

	// gorm пингует переданное соединение сам
	db, err := gorm.Open("postgres", sqlDB)
	if err != nil {
		sqlDB.Close()
		return fmt.Errorf("failed to connect to the database: %w", err)
	}

	DB = db
	log.Println("Successfully connected to the database.")
	return nil
}

// Migrate создает и обновляет таблицы всех моделей
func Migrate() error {
	if DB == nil {
		return errors.New("database is not initialized")
	}
	err := DB.AutoMigrate(models.All()...).Error
	if err != nil {
		return fmt.Errorf("failed to migrate database schema: %w", err)
	}
	return nil
}

// CloseDB закрывает соединение с базой данных
func CloseDB() error {
	if DB == nil {
		return nil
	}

	err := DB.Close()
	if err != nil {
		return fmt.Errorf("failed to close the database connection: %v", err)
	}

	log.Println("Database connection closed.")
	return nil
}

// InitDBWithConnection для тестирования (позволяет инъекцию соединения БД)
func InitDBWithConnection(db *gorm.DB) {
	DB = db
}

// notFound переводит ошибку gorm "record not found" в storage.ErrNotFound
func notFound(err error, what string) error {
	if gorm.IsRecordNotFoundError(err) {
		return fmt.Errorf("%s: %w", what, storage.ErrNotFound)
	}
	return fmt.Errorf("could not get %s: %w", what, err)
}

// window применяет limit/offset; limit < 0 - без ограничения
func window(db *gorm.DB, limit, offset int) *gorm.DB {
	if limit >= 0 {
		db = db.Limit(limit)
	}
	if offset > 0 {
		db = db.Offset(offset)
	}
	return db
}
