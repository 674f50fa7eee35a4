package tests

import (
	"fmt"
	"log"
	"os"
	"testing"

	"empdir/inner/common"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

const (
	host     = "localhost"
	port     = 5432
	user     = "testuser"
	password = "testpass"
	dbname   = "testdb"
)

var DB *sqlx.DB
var config common.Config

func init() {
	connStr := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		host, port, user, password, dbname)

	dsnStr := fmt.Sprintf("%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		host, port, user, password, dbname)
	config = common.Config{
		DbDriverName:   "postgres",
		Dsn:            dsnStr,
		AppName:        "test_app",
		AppVersion:     "1.0.0",
		LogLevel:       "DEBUG",
		LogDevelopMode: true,
	}

	var err error
	DB, err = sqlx.Connect("postgres", connStr)
	if err != nil {
		// без поднятой базы интеграционные тесты пропускаются
		log.Printf("Unable to connect to database, integration tests will be skipped: %v\n", err)
		DB = nil
		return
	}

	applyMigrations()
}

func TestMain(m *testing.M) {
	code := m.Run()
	os.Exit(code)
}

// requireDb пропускает тест, когда тестовая база не поднята
func requireDb(t *testing.T) {
	t.Helper()
	if DB == nil {
		t.Skip("database is not available")
	}
}

func applyMigrations() {
	_, err := DB.Exec(`
        CREATE TABLE IF NOT EXISTS employees (
            id BIGINT PRIMARY KEY GENERATED ALWAYS AS IDENTITY,
            first_name TEXT NOT NULL,
            last_name TEXT NOT NULL,
            email TEXT UNIQUE NOT NULL,
            phone_number TEXT NOT NULL,
            department TEXT NOT NULL,
            position TEXT NOT NULL,
            salary NUMERIC(12, 2) NOT NULL,
            date_of_joining TIMESTAMPTZ NOT NULL,
            profile_picture_url TEXT,
            created_at TIMESTAMPTZ DEFAULT NOW(),
            updated_at TIMESTAMPTZ DEFAULT NOW()
        );

        CREATE TABLE IF NOT EXISTS users (
            id BIGINT PRIMARY KEY GENERATED ALWAYS AS IDENTITY,
            username TEXT UNIQUE NOT NULL,
            email TEXT UNIQUE NOT NULL,
            password_hash TEXT NOT NULL,
            created_at TIMESTAMPTZ DEFAULT NOW(),
            updated_at TIMESTAMPTZ DEFAULT NOW()
        );
    `)
	if err != nil {
		log.Fatalf("Migration failed: %v\n", err)
	}
}

func clearTables() {
	if DB == nil {
		log.Fatal("Database connection is nil")
	}
	_, err := DB.Exec("DELETE FROM employees")
	if err != nil {
		log.Fatalf("Failed to clear employees table: %v", err)
	}
	_, err = DB.Exec("DELETE FROM users")
	if err != nil {
		log.Fatalf("Failed to clear users table: %v", err)
	}
}
