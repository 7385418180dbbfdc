package repository

import (
	"database/sql"
	"database/sql/driver"
	"errors"

	"modernc.org/sqlite"
)

// sqlite3Driver adapts the cgo-free sqlite driver to the "sqlite3" name the
// ent SQLite dialect expects, enabling foreign keys on every connection so
// receipt deletes cascade to line items.
type sqlite3Driver struct {
	*sqlite.Driver
}

func (d sqlite3Driver) Open(name string) (driver.Conn, error) {
	conn, err := d.Driver.Open(name)
	if err != nil {
		return nil, err
	}
	c, ok := conn.(interface {
		Exec(string, []driver.Value) (driver.Result, error)
	})
	if !ok {
		_ = conn.Close()
		return nil, errors.New("sqlite conn does not support Exec")
	}
	if _, err := c.Exec("PRAGMA foreign_keys = ON;", nil); err != nil {
		_ = conn.Close()
		return nil, err
	}
	return conn, nil
}

func init() {
	sql.Register("sqlite3", sqlite3Driver{Driver: &sqlite.Driver{}})
}
