package db

import "github.com/jmoiron/sqlx"

func init() {
	// modernc registers itself as "sqlite", which sqlx does not know.
	sqlx.BindDriver(DriverSQLite, sqlx.QUESTION)
}

// dialect captures the SQL differences the repositories care about.
type dialect struct {
	name string
	// like is the case-insensitive substring match operator.
	like string
	// returning means generated ids come back through RETURNING instead of
	// LastInsertId.
	returning bool
}

func dialectFor(driver string) dialect {
	switch driver {
	case DriverPgx, DriverPostgres:
		return dialect{name: "postgresql", like: "ILIKE", returning: true}
	case DriverSQLite:
		return dialect{name: "sqlite", like: "LIKE"}
	default:
		return dialect{name: "mysql", like: "LIKE"}
	}
}
