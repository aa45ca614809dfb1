package db

import (
	"log"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func NewMockDB() (*gorm.DB, sqlmock.Sqlmock) {
	conn, mock, err := sqlmock.New()
	if err != nil {
		log.Fatalf("An error '%s' was not expected when opening a stub database connection", err)
	}
	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn: conn,
	}), &gorm.Config{})
	if err != nil {
		log.Fatalf("An error '%s' was not expected when opening gorm database", err)
	}
	return gormDB, mock
}

// GetMockDB swaps the package singleton for a sqlmock-backed instance.
func GetMockDB() (*gorm.DB, sqlmock.Sqlmock) {
	gormDB, mock := NewMockDB()
	db = gormDB
	return gormDB, mock
}

func TestGetDbReturnsSingleton(t *testing.T) {
	gormDB, _ := GetMockDB()

	assert.Equal(t, "postgres", gormDB.Name())
	assert.Same(t, gormDB, GetDb())
}

func TestNewDBReplacesSingleton(t *testing.T) {
	first, _ := GetMockDB()
	second, _ := NewMockDB()
	NewDB(second)

	assert.Same(t, second, GetDb())
	assert.NotSame(t, first, GetDb())
}
