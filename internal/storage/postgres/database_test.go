package postgres

import (
	"testing"

	"github.com/VitaminP8/yatube/models"
	"github.com/jinzhu/gorm"
	_ "github.com/jinzhu/gorm/dialects/sqlite" // Импортируем драйвер SQLite
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestDB создает тестовую БД в памяти и выполняет миграции
func setupTestDB(t *testing.T) *gorm.DB {
	// Сохраняем оригинальное соединение (если оно есть)
	oldDB := GetDB()

	// Создаем SQLite в памяти
	db, err := gorm.Open("sqlite3", ":memory:")
	require.NoError(t, err, "Failed to connect to in-memory SQLite")

	// :memory: живет в рамках одного соединения
	db.DB().SetMaxOpenConns(1)
	// Включаем foreign keys в SQLite
	db.Exec("PRAGMA foreign_keys = ON")
	// Отключаем логирование запросов для тестов
	db.LogMode(false)
	// Устанавливаем SQLite в качестве глобальной DB
	InitDBWithConnection(db)
	require.NoError(t, Migrate(), "Failed to migrate database schema")

	return oldDB
}

// teardownTestDB закрывает тестовую БД и восстанавливает оригинальную
func teardownTestDB(db *gorm.DB) {
	if DB != nil {
		DB.Close()
	}
	InitDBWithConnection(db)
}

func TestGetDB(t *testing.T) {
	// Сохраняем текущее значение DB
	originalDB := DB

	testDB, err := gorm.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	defer testDB.Close()

	DB = testDB

	// Проверяем, что GetDB возвращает установленную БД
	result := GetDB()
	assert.Equal(t, DB, result)

	// Восстанавливаем исходное значение
	DB = originalDB
}

func TestInitDBWithConnection(t *testing.T) {
	originalDB := DB

	testDB, err := gorm.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	defer testDB.Close()

	InitDBWithConnection(testDB)
	assert.Equal(t, testDB, DB)

	DB = originalDB
}

func TestMigrate(t *testing.T) {
	t.Run("Creates all tables", func(t *testing.T) {
		oldDB := setupTestDB(t)
		defer teardownTestDB(oldDB)

		for _, model := range models.All() {
			assert.True(t, DB.HasTable(model), "table for %T must exist", model)
		}
	})

	t.Run("Without connection", func(t *testing.T) {
		originalDB := DB
		DB = nil
		defer func() { DB = originalDB }()

		assert.Error(t, Migrate())
	})
}

// Тест для проверки поведения CloseDB с NULL-базой данных
func TestCloseDBWithNilDB(t *testing.T) {
	originalDB := DB
	DB = nil

	// Проверяем, что CloseDB не вызывает панику и возвращает nil
	err := CloseDB()
	assert.NoError(t, err)

	DB = originalDB
}

// Примечание: InitDB с реальным подключением не тестируется, так как требует настоящую PostgreSQL базу данных.
