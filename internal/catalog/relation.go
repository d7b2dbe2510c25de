package catalog

// RelationKind classifies how a subject table joins a related table.
// The set is closed; every consumer switches exhaustively over it so a new
// kind forces resolver and SQL-mapping updates.
type RelationKind int

const (
	// Child means the subject table holds the foreign key pointing at the
	// related table (embedding a parent row).
	Child RelationKind = iota
	// Parent means the related table holds the foreign key pointing back at
	// the subject table (embedding child rows).
	Parent
	// Many means subject and related table are connected through an
	// intermediate link table.
	Many
	// Root is the sentinel for the top-level node of a request tree,
	// which has no parent relation.
	Root
)

// String returns a human-readable representation of the relation kind.
func (k RelationKind) String() string {
	switch k {
	case Child:
		return "Child"
	case Parent:
		return "Parent"
	case Many:
		return "Many"
	case Root:
		return "Root"
	default:
		return "Unknown"
	}
}

// Relation connects a subject table to a foreign table. Column lists on
// both sides of each join are positional, so composite keys are supported:
// Columns[i] joins FColumns[i], and for Many relations Columns[i] joins
// LinkColumns[i] while FLinkColumns[i] joins FColumns[i].
type Relation struct {
	Kind     RelationKind
	Table    Table
	Columns  []Column
	FTable   Table
	FColumns []Column

	// Link fields are set only for Many relations.
	Link         *Table
	LinkColumns  []Column
	FLinkColumns []Column
}
