// Package mock provides the in-process test doubles used by the BDD
// suite: an in-memory SQLite database, a miniredis-backed cache and a
// fake exchange-rate endpoint.
package mock

import (
	"database/sql"
	"fmt"
	"sync"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/fin-mate/backend/internal/integration/persistence/model"
)

var dbOnce sync.Once
var db *Db

// Db wraps the shared in-memory SQLite database used by all scenarios.
type Db struct {
	Conn *gorm.DB
}

// NewDb returns the singleton test database, creating and migrating it
// on first use.
func NewDb() *Db {
	dbOnce.Do(func() {
		db = openDb()
	})
	return db
}

// tables lists every model in migration order, parents before children.
func tables() []any {
	return []any{
		&model.UserModel{},
		&model.AccountModel{},
		&model.CategoryModel{},
		&model.TagModel{},
		&model.TransactionModel{},
		&model.TransactionTagModel{},
		&model.BudgetModel{},
	}
}

func openDb() *Db {
	// A single shared connection keeps every gorm session on the same
	// in-memory database.
	sqlDB, err := sql.Open("sqlite", "file::memory:?cache=shared")
	if err != nil {
		panic("failed to open test database: " + err.Error())
	}
	sqlDB.SetMaxOpenConns(1)

	conn, err := gorm.Open(sqlite.Dialector{Conn: sqlDB}, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		panic("failed to connect to test database: " + err.Error())
	}

	if err := conn.AutoMigrate(tables()...); err != nil {
		panic("failed to migrate test database: " + err.Error())
	}

	return &Db{Conn: conn}
}

// Reset removes every row while keeping the schema, deleting child
// tables before their parents.
func (d *Db) Reset() error {
	models := tables()
	for i := len(models) - 1; i >= 0; i-- {
		err := d.Conn.Session(&gorm.Session{AllowGlobalUpdate: true}).
			Unscoped().
			Delete(models[i]).Error
		if err != nil {
			return fmt.Errorf("failed to reset table for %T: %w", models[i], err)
		}
	}
	return nil
}

// Count returns the number of rows in the named table.
func (d *Db) Count(table string) (int64, error) {
	var count int64
	if err := d.Conn.Table(table).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count rows in %s: %w", table, err)
	}
	return count, nil
}
