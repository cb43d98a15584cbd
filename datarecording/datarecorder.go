// Package datarecording stores simulation records in a SQLite database so
// that runs can be inspected with plain SQL afterwards.
package datarecording

import (
	"database/sql"
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/fatih/structs"

	// Need to use SQLite connections.
	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/xid"
	"github.com/tebeka/atexit"
)

// DataRecorder is a backend that can record and store data.
type DataRecorder interface {
	// CreateTable creates a new table shaped after the fields of sampleEntry.
	CreateTable(tableName string, sampleEntry any)

	// InsertData buffers one entry for a table that already exists.
	InsertData(tableName string, entry any)

	// ListTables returns the names of all created tables.
	ListTables() []string

	// Flush writes all buffered entries to the database.
	Flush()

	// Close flushes and closes the database.
	Close() error
}

// New creates a DataRecorder that writes to `<path>.sqlite3`. An empty path
// picks a unique file name. The recorder flushes itself at exit.
func New(path string) DataRecorder {
	if path == "" {
		path = "csim_run_" + xid.New().String()
	}

	filename := path + ".sqlite3"
	if _, err := os.Stat(filename); err == nil {
		panic(fmt.Errorf("file %s already exists", filename))
	}

	db, err := sql.Open("sqlite3", filename)
	if err != nil {
		panic(err)
	}

	fmt.Fprintf(os.Stderr, "Recording run data to %s\n", filename)

	r := newWithDB(db)
	atexit.Register(func() { r.Flush() })

	return r
}

// NewWithDB creates a DataRecorder over an already-open database. The caller
// keeps ownership of the connection.
func NewWithDB(db *sql.DB) DataRecorder {
	return newWithDB(db)
}

func newWithDB(db *sql.DB) *sqliteRecorder {
	return &sqliteRecorder{
		db:        db,
		batchSize: 100000,
		tables:    make(map[string]*table),
	}
}

type table struct {
	structType reflect.Type
	insertSQL  string
	entries    []any
}

// sqliteRecorder buffers entries per table and writes them out in one
// transaction per flush.
type sqliteRecorder struct {
	db *sql.DB

	tables     map[string]*table
	batchSize  int
	entryCount int
}

func (r *sqliteRecorder) CreateTable(tableName string, sampleEntry any) {
	entryType := reflect.TypeOf(sampleEntry)
	fieldsMustBeScalar(entryType)

	columns := structs.Names(sampleEntry)

	createSQL := "CREATE TABLE " + tableName +
		" (\n\t" + strings.Join(columns, ",\n\t") + "\n);"
	r.mustExecute(createSQL)

	placeholders := make([]string, len(columns))
	for i := range placeholders {
		placeholders[i] = "?"
	}

	r.tables[tableName] = &table{
		structType: entryType,
		insertSQL: "INSERT INTO " + tableName +
			" VALUES (" + strings.Join(placeholders, ", ") + ")",
	}
}

func (r *sqliteRecorder) InsertData(tableName string, entry any) {
	t, exists := r.tables[tableName]
	if !exists {
		panic(fmt.Sprintf("table %s does not exist", tableName))
	}

	if reflect.TypeOf(entry) != t.structType {
		panic(fmt.Sprintf("entry type does not match table %s", tableName))
	}

	t.entries = append(t.entries, entry)

	r.entryCount++
	if r.entryCount >= r.batchSize {
		r.Flush()
	}
}

func (r *sqliteRecorder) ListTables() []string {
	names := make([]string, 0, len(r.tables))
	for name := range r.tables {
		names = append(names, name)
	}

	return names
}

func (r *sqliteRecorder) Flush() {
	if r.entryCount == 0 {
		return
	}

	r.mustExecute("BEGIN TRANSACTION")
	defer r.mustExecute("COMMIT TRANSACTION")

	for tableName, t := range r.tables {
		if len(t.entries) == 0 {
			continue
		}

		stmt, err := r.db.Prepare(t.insertSQL)
		if err != nil {
			panic(err)
		}

		for _, entry := range t.entries {
			if _, err := stmt.Exec(fieldValues(entry)...); err != nil {
				panic(fmt.Errorf("insert into %s: %w", tableName, err))
			}
		}

		stmt.Close()
		t.entries = nil
	}

	r.entryCount = 0
}

func (r *sqliteRecorder) Close() error {
	r.Flush()
	return r.db.Close()
}

func (r *sqliteRecorder) mustExecute(query string) sql.Result {
	res, err := r.db.Exec(query)
	if err != nil {
		panic(fmt.Errorf("failed to execute %q: %w", query, err))
	}

	return res
}

func fieldValues(entry any) []any {
	value := reflect.ValueOf(entry)

	values := make([]any, 0, value.NumField())
	for i := 0; i < value.NumField(); i++ {
		values = append(values, value.Field(i).Interface())
	}

	return values
}

func fieldsMustBeScalar(entryType reflect.Type) {
	for i := 0; i < entryType.NumField(); i++ {
		switch entryType.Field(i).Type.Kind() {
		case reflect.Bool,
			reflect.Int, reflect.Int8, reflect.Int16,
			reflect.Int32, reflect.Int64,
			reflect.Uint, reflect.Uint8, reflect.Uint16,
			reflect.Uint32, reflect.Uint64,
			reflect.Float32, reflect.Float64,
			reflect.String:
		default:
			panic(fmt.Sprintf(
				"field %s is not a recordable scalar",
				entryType.Field(i).Name))
		}
	}
}
