// Package balala builds SQL statements from Go structs with a fluent API
// and runs them asynchronously.
//
// # Overview
//
// Package balala maps Go structs to tables and provides builders for
// SELECT, INSERT, UPDATE and DELETE statements. Statements are rendered by
// a Dialect (MySQL, PostgreSQL, SQLite, SQL Server and Oracle are built in)
// and sent to a Client, which returns a Future. NewClient adapts any
// github.com/gopsql/db connection, so the drivers of github.com/gopsql/pq,
// github.com/gopsql/pgx and github.com/gopsql/standard can be used.
//
// Key features include:
//   - Column names from struct fields, column tags or typed accessors
//   - Query builder with AND/OR conditions, IN, ordering and paging
//   - Mutation builder for updates and deletes from explicit SET lists or
//     from the set fields of a model
//   - Batch inserts on one reserved connection
//   - Middlewares for logging, metrics and tracing of every statement
//
// # Basic Usage
//
//	type User struct {
//		Id       int
//		Username string
//		Age      *int
//	}
//
//	conn := standard.NewDB("mysql", sqlDB)
//	db := balala.Open(balala.NewClient(conn), balala.MySQL, logger.StandardLogger)
//
//	// Insert a record, key is the generated id
//	key, err := db.Save(ctx, &User{Username: "alice"}).Await(ctx)
//
//	// Find records
//	row, err := db.From(User{}).Where("username", "alice").One(ctx).Await(ctx)
//	users, err := balala.AllAs[User](ctx, db.From(User{}).Gt("age", 18).Order("id", balala.DESC)).Await(ctx)
//
//	// Update a record
//	n, err := db.Update().From(User{}).Set("age", 20).UpdateById(ctx, 1).Await(ctx)
//
//	// Delete a record
//	n, err = db.Delete().From(User{}).DeleteById(ctx, 1).Await(ctx)
//
// # Table and Column Naming
//
// Table names are derived from the struct name with DefaultTableNamer
// (User becomes user) and prefixed with the TablePrefix given to Open. You
// can customize this by:
//   - Adding a __TABLE_NAME__ field with a tag specifying the table name
//   - Implementing a TableName() string method on the struct
//   - Setting DefaultTableNamer, for example to ToPluralUnderscore
//
// Column names are derived from struct field names with
// DefaultColumnNamer, or set with the "column" struct tag. `column:"-"`
// leaves a field out, `column:"uid,pk"` marks the primary key. Without a
// PrimaryKey() string method or a pk tag the primary key is "id".
//
// # Accessors
//
// A Field[T] names a field of a model without spelling its column:
//
//	var UserFields = struct {
//		Username balala.Field[User]
//	}{
//		Username: balala.NewField[User]("Username"),
//	}
//
//	db.From(User{}).Where(UserFields.Username, "alice")
//
// The balala-gen command writes these variables for the structs of a file.
// FieldOf builds an accessor from a field address instead.
//
// # Conditions
//
// Where, And and Or take a statement with "?" placeholders or a column.
// A column with one argument becomes "column = ?", a column without
// arguments can be completed with the Is* operators:
//
//	db.From(User{}).Where("age > ?", 18).Or("username", "root")
//	db.From(User{}).Where("age").IsBetween(18, 30)
//
// # Futures
//
// Every terminal call returns a *Future. Await blocks until the statement
// completes; OnComplete, Then and Compose chain further work without
// blocking. Builders are reset when a terminal call is issued and keep only
// the model set by From.
package balala
