package balala

type (
	// SQLParams carries everything a Dialect needs to render one statement.
	// It is built by a builder for a single terminal call and is never
	// modified afterwards.
	SQLParams struct {
		Model     *ModelInfo
		TableName string
		PKName    string

		// SelectColumns is the explicit projection, empty for all columns.
		SelectColumns string
		// ExcludedColumns are left out of the projection.
		ExcludedColumns []string

		// Condition is the where fragment, it starts with " AND ".
		Condition string
		// OrderBy is the order list without the ORDER BY keyword.
		OrderBy string

		// UpdateColumns are the explicit SET entries in call order.
		UpdateColumns []SetColumn
		// InsertColumns are all mapped columns of an INSERT.
		InsertColumns []string
		// ModelColumns are the columns of the set fields of the model
		// passed to UpdateModel or DeleteModel, the primary key excluded
		// for updates.
		ModelColumns []string

		// CustomSQL replaces the generated SELECT ... FROM ... WHERE part.
		CustomSQL string
		PageRow   *PageRow

		// IsSQLLimit appends a one row limit placeholder to SELECT.
		IsSQLLimit bool
		// Returning asks for the primary key of an INSERT to come back as
		// a row on dialects that support it.
		Returning bool
	}

	// SetColumn is one "column = value" entry of an UPDATE. A String value
	// is written into the SQL as is and takes no parameter.
	SetColumn struct {
		Column string
		Value  interface{}
	}

	// String is a raw SQL expression, usable as a Set value:
	//
	//	db.Update().From(User{}).Set("login_count", balala.String("login_count + 1"))
	String string
)

// condition returns the where fragment without its leading conjunction.
func (p *SQLParams) condition() string {
	return stripConjunction(p.Condition)
}
