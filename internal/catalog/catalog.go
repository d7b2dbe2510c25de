// Package catalog defines the immutable schema snapshot consumed during
// request resolution: tables, columns, primary keys, pre-computed relations,
// and stored-procedure signatures. A catalog is built once per schema epoch
// by the introspection layer and is read-only afterwards.
package catalog

// Table identifies a database table by schema and name.
type Table struct {
	Schema     string
	Name       string
	Insertable bool
}

// QualifiedName returns schema.name.
func (t Table) QualifiedName() string {
	return t.Schema + "." + t.Name
}

// Equal reports identity equality. Only schema and name participate;
// Insertable is descriptive.
func (t Table) Equal(other Table) bool {
	return t.Schema == other.Schema && t.Name == other.Name
}

// ForeignKey describes a foreign key constraint on a column. It wraps the
// column on the other side of the key (the referenced column).
type ForeignKey struct {
	// Constraint is the FK constraint name. Columns sharing a constraint
	// form one composite key.
	Constraint string
	Column     Column
}

// Column belongs to exactly one table. Identity is (table, name); the
// remaining fields are descriptive.
type Column struct {
	Table      Table
	Name       string
	Position   int
	Nullable   bool
	Type       string
	Updatable  bool
	MaxLen     *int
	Precision  *int
	Default    *string
	Enum       []string
	ForeignKey *ForeignKey
}

// Equal reports identity equality: owning table and column name only.
func (c Column) Equal(other Column) bool {
	return c.Table.Equal(other.Table) && c.Name == other.Name
}

// PrimaryKey marks one column of a table's primary key. Composite keys are
// multiple PrimaryKey records sharing a table.
type PrimaryKey struct {
	Table Table
	Name  string
}

// Catalog aggregates everything request resolution needs to know about the
// database. It must not be mutated after construction; schema reloads
// replace the whole value.
type Catalog struct {
	Tables      []Table
	Columns     []Column
	Relations   []Relation
	PrimaryKeys []PrimaryKey
	Procs       map[string]ProcDescription
}

// New assembles a catalog. Procedure names are unique; on collision the
// last-registered procedure wins, matching catalog-load semantics.
func New(tables []Table, columns []Column, relations []Relation, pks []PrimaryKey, procs []ProcDescription) *Catalog {
	procMap := make(map[string]ProcDescription, len(procs))
	for _, p := range procs {
		procMap[p.Name] = p
	}
	return &Catalog{
		Tables:      tables,
		Columns:     columns,
		Relations:   relations,
		PrimaryKeys: pks,
		Procs:       procMap,
	}
}

// FindTable looks up a table by schema and name.
func (c *Catalog) FindTable(schema, name string) (Table, bool) {
	for _, t := range c.Tables {
		if t.Schema == schema && t.Name == name {
			return t, true
		}
	}
	return Table{}, false
}

// FindColumn looks up a column of a table by name.
func (c *Catalog) FindColumn(table Table, name string) (Column, bool) {
	for _, col := range c.Columns {
		if col.Table.Equal(table) && col.Name == name {
			return col, true
		}
	}
	return Column{}, false
}

// TableColumns returns the columns of a table in catalog order.
func (c *Catalog) TableColumns(table Table) []Column {
	var cols []Column
	for _, col := range c.Columns {
		if col.Table.Equal(table) {
			cols = append(cols, col)
		}
	}
	return cols
}

// TablePrimaryKeys returns the primary key records of a table.
func (c *Catalog) TablePrimaryKeys(table Table) []PrimaryKey {
	var pks []PrimaryKey
	for _, pk := range c.PrimaryKeys {
		if pk.Table.Equal(table) {
			pks = append(pks, pk)
		}
	}
	return pks
}

// FindProc looks up a stored procedure signature by name.
func (c *Catalog) FindProc(name string) (ProcDescription, bool) {
	p, ok := c.Procs[name]
	return p, ok
}
