// Package drivers registers the database/sql drivers balala configs can
// name: "postgres" (github.com/lib/pq), "mysql"
// (github.com/go-sql-driver/mysql) and "sqlite" (modernc.org/sqlite).
//
//	import _ "github.com/gopsql/balala/drivers"
package drivers

import (
	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// Names lists the registered driver names.
var Names = []string{"postgres", "mysql", "sqlite"}
