// Package vertica wraps the ODBC connection, metadata query, and row
// streaming needed to pull one table out of Vertica in NATIVE format.
// It is a thin layer over database/sql and the odbc driver — no
// connection pooling policy or retry logic beyond what database/sql
// already gives us.
package vertica

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/alexbrainman/odbc"

	"github.com/joeygibson/vxtract/pkg/verrors"
)

// Config holds everything needed to build an ODBC connection string
// for a Vertica server, per spec.md §6.
type Config struct {
	Server   string
	Port     int
	Database string
	Username string
	Password string
}

// DSN renders the ODBC connection string:
// Driver=Vertica;ServerName=<s>;Port=<p>;Database=<d>;UID=<u>[;PWD=<p>]
//
// The password segment is omitted entirely when empty rather than
// emitted as ";PWD=" — an empty-but-present PWD key causes some ODBC
// driver managers to treat the connection as anonymous-with-explicit-
// blank-password instead of falling back to prompting or to an
// unauthenticated session.
func (c Config) DSN() string {
	dsn := fmt.Sprintf("Driver=Vertica;ServerName=%s;Port=%d;Database=%s;UID=%s",
		c.Server, c.Port, c.Database, c.Username)
	if c.Password != "" {
		dsn += ";PWD=" + c.Password
	}
	return dsn
}

// Open establishes and pings a connection to the server described by
// cfg, returning the *sql.DB on success. The odbc driver is
// registered by this package's blank import.
func Open(ctx context.Context, cfg Config) (*sql.DB, error) {
	db, err := sql.Open("odbc", cfg.DSN())
	if err != nil {
		return nil, verrors.Wrap(err, verrors.ErrCodeConnectionString, "building odbc connection")
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, verrors.Wrapf(err, verrors.ErrCodeConnectFailed, "connecting to %s:%d/%s", cfg.Server, cfg.Port, cfg.Database)
	}

	return db, nil
}
