// Package mock provides test doubles for the integration suite.
package mock

import (
	"database/sql"
	"fmt"
	"sync"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/ZawaReck/household/internal/integration/persistence/model"
)

var once sync.Once
var db *Db

// Db wraps a shared in-memory SQLite database for scenario runs.
type Db struct {
	DbConn *gorm.DB
}

// NewDb opens (once) the in-memory database and migrates the schema.
func NewDb() *Db {
	once.Do(func() {
		db = open()
	})
	return db
}

func open() *Db {
	dbSQL, err := sql.Open("sqlite", "file::memory:?cache=shared")
	if err != nil {
		panic(err)
	}

	dbSQL.SetMaxOpenConns(1)

	dbConn, err := gorm.Open(sqlite.Dialector{Conn: dbSQL}, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		panic("failed to connect to database. err: " + err.Error())
	}

	if err := dbConn.AutoMigrate(&model.TransactionModel{}); err != nil {
		panic(fmt.Sprintf("failed to migrate database. err: %s", err.Error()))
	}

	return &Db{DbConn: dbConn}
}

// ClearDB empties every table between scenarios.
func (d *Db) ClearDB() error {
	if err := d.DbConn.Exec("DELETE FROM transactions").Error; err != nil {
		return fmt.Errorf("failed to clear transactions: %w", err)
	}
	return nil
}
