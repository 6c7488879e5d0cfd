package mock

import (
	"database/sql"
	"fmt"
	"sync"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/spendings-bot/ledger/internal/integration/persistence/model"
)

var once sync.Once
var db *Db

type Db struct {
	DbConn *gorm.DB
	models map[string]any
	order  []string // Tables in dependency order
}

// NewDb opens the shared in-memory ledger database and migrates every model.
func NewDb() *Db {
	once.Do(
		func() {
			db = open()
		},
	)

	return db
}

func open() *Db {
	dbSQL, err := sql.Open("sqlite", "file::memory:?cache=shared")
	if err != nil {
		panic(err)
	}

	// One connection keeps every session on the same in-memory database
	dbSQL.SetMaxOpenConns(1)

	dbConn, err := gorm.Open(sqlite.Dialector{Conn: dbSQL}, &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		panic("failed to connect to database. err: " + err.Error())
	}

	newDbMock := &Db{
		DbConn: dbConn,
		models: map[string]any{},
	}

	for _, m := range model.AllModels() {
		stmt := &gorm.Statement{DB: dbConn}
		if err := stmt.Parse(m); err != nil {
			panic(fmt.Sprintf("failed to parse model %T. err: %s", m, err.Error()))
		}
		newDbMock.models[stmt.Schema.Table] = m
		newDbMock.order = append(newDbMock.order, stmt.Schema.Table)
	}

	if err := dbConn.AutoMigrate(model.AllModels()...); err != nil {
		panic(fmt.Sprintf("failed to migrate database. err: %s", err.Error()))
	}

	return newDbMock
}

// ClearDB deletes every row, children first.
func (d *Db) ClearDB() error {
	for i := len(d.order) - 1; i >= 0; i-- {
		table := d.order[i]
		if err := d.DbConn.Exec("DELETE FROM " + table).Error; err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}
	return nil
}

func (d *Db) GetModel(table string) (any, bool) {
	model, ok := d.models[table]
	return model, ok
}
