package mock

import (
	"database/sql"
	"fmt"
	"sort"
	"sync"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var once sync.Once
var db *Db

// Db is the in-memory stand-in for the operations database. The dashboard
// only reads, so scenarios seed rows through Insert and ClearDB wipes them.
type Db struct {
	DbConn *gorm.DB
	models map[string]any
}

// NewDb opens the shared in-memory database once and migrates models, keyed
// by table name.
func NewDb(models map[string]any) *Db {
	once.Do(func() {
		db = open(models)
	})
	return db
}

func open(models map[string]any) *Db {
	dbSQL, err := sql.Open("sqlite", "file::memory:?cache=shared")
	if err != nil {
		panic(err)
	}
	// A single connection keeps every query on the same in-memory database.
	dbSQL.SetMaxOpenConns(1)

	dbConn, err := gorm.Open(sqlite.Dialector{Conn: dbSQL}, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		panic("failed to connect to database. err: " + err.Error())
	}

	d := &Db{DbConn: dbConn, models: models}
	if err := d.migrate(); err != nil {
		panic(fmt.Sprintf("failed to migrate database. err: %s", err.Error()))
	}
	return d
}

func (d *Db) migrate() error {
	for _, table := range d.tables() {
		model := d.models[table]
		if err := d.DbConn.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate %s: %w", table, err)
		}
		if !d.DbConn.Migrator().HasTable(model) {
			return fmt.Errorf("table %s was not created", table)
		}
	}
	return nil
}

// ClearDB deletes every row of every registered table.
func (d *Db) ClearDB() error {
	for _, table := range d.tables() {
		err := d.DbConn.Session(&gorm.Session{AllowGlobalUpdate: true}).
			Unscoped().
			Delete(d.models[table]).Error
		if err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}
	return nil
}

// Insert stores a row built from one of the registered models.
func (d *Db) Insert(value any) error {
	return d.DbConn.Create(value).Error
}

// Count returns the number of rows of table matching criteria, a column to
// value map. Empty criteria count the whole table.
func (d *Db) Count(table string, criteria map[string]any) (int64, error) {
	model, ok := d.models[table]
	if !ok {
		return 0, fmt.Errorf("table '%s' not found in models", table)
	}

	query := d.DbConn.Model(model).Unscoped()
	for column, value := range criteria {
		query = query.Where(fmt.Sprintf("%s = ?", column), value)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (d *Db) GetModel(table string) (any, bool) {
	model, ok := d.models[table]
	return model, ok
}

func (d *Db) tables() []string {
	tables := make([]string, 0, len(d.models))
	for table := range d.models {
		tables = append(tables, table)
	}
	sort.Strings(tables)
	return tables
}
