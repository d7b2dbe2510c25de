package catalog

import "sort"

// fkGroup is one foreign key constraint: the local columns holding the key
// and the referenced columns, positionally aligned.
type fkGroup struct {
	constraint string
	local      []Column
	foreign    []Column
}

// BuildRelations derives the relation set from foreign key metadata in
// three passes: Child relations for every FK constraint (the subject table
// holds the key), Parent relations as the reverse of every Child, and Many
// relations for every pair of tables joined through a link table. The
// computation is pure; querying the database belongs to the introspection
// layer.
func BuildRelations(tables []Table, columns []Column, pks []PrimaryKey) []Relation {
	groupsByTable := groupForeignKeys(columns)

	var relations []Relation

	// First pass: Child relations, one per FK constraint.
	for _, t := range tables {
		for _, g := range groupsByTable[t.QualifiedName()] {
			relations = append(relations, Relation{
				Kind:     Child,
				Table:    t,
				Columns:  g.local,
				FTable:   g.foreign[0].Table,
				FColumns: g.foreign,
			})
		}
	}

	// Second pass: Parent relations, the reverse direction of each Child.
	children := append([]Relation(nil), relations...)
	for _, rel := range children {
		relations = append(relations, Relation{
			Kind:     Parent,
			Table:    rel.FTable,
			Columns:  rel.FColumns,
			FTable:   rel.Table,
			FColumns: rel.Columns,
		})
	}

	// Third pass: Many relations through link tables, both directions.
	for _, t := range tables {
		link, ok := classifyLink(t, groupsByTable[t.QualifiedName()], pks)
		if !ok {
			continue
		}
		linkTable := t
		relations = append(relations,
			Relation{
				Kind:         Many,
				Table:        link.left.foreign[0].Table,
				Columns:      link.left.foreign,
				FTable:       link.right.foreign[0].Table,
				FColumns:     link.right.foreign,
				Link:         &linkTable,
				LinkColumns:  link.left.local,
				FLinkColumns: link.right.local,
			},
			Relation{
				Kind:         Many,
				Table:        link.right.foreign[0].Table,
				Columns:      link.right.foreign,
				FTable:       link.left.foreign[0].Table,
				FColumns:     link.left.foreign,
				Link:         &linkTable,
				LinkColumns:  link.right.local,
				FLinkColumns: link.left.local,
			},
		)
	}

	return relations
}

// groupForeignKeys collects FK columns per table, grouped by constraint
// name so composite keys stay together. Columns without a constraint name
// each form their own group.
func groupForeignKeys(columns []Column) map[string][]fkGroup {
	type key struct {
		table      string
		constraint string
		column     string // disambiguates unnamed constraints
	}
	grouped := make(map[key]*fkGroup)
	var order []key

	for _, col := range columns {
		if col.ForeignKey == nil {
			continue
		}
		k := key{table: col.Table.QualifiedName(), constraint: col.ForeignKey.Constraint}
		if k.constraint == "" {
			k.column = col.Name
		}
		g, ok := grouped[k]
		if !ok {
			g = &fkGroup{constraint: col.ForeignKey.Constraint}
			grouped[k] = g
			order = append(order, k)
		}
		g.local = append(g.local, col)
		g.foreign = append(g.foreign, col.ForeignKey.Column)
	}

	result := make(map[string][]fkGroup)
	for _, k := range order {
		g := grouped[k]
		sortGroup(g)
		result[k.table] = append(result[k.table], *g)
	}
	return result
}

// sortGroup orders a constraint's columns by ordinal position, keeping the
// local and foreign sides positionally aligned.
func sortGroup(g *fkGroup) {
	idx := make([]int, len(g.local))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return g.local[idx[a]].Position < g.local[idx[b]].Position
	})
	local := make([]Column, len(idx))
	foreign := make([]Column, len(idx))
	for i, j := range idx {
		local[i] = g.local[j]
		foreign[i] = g.foreign[j]
	}
	g.local = local
	g.foreign = foreign
}

type linkInfo struct {
	left  fkGroup
	right fkGroup
}

// classifyLink reports whether a table acts as a link (junction) between
// two other tables. A link table has exactly two FK constraints referencing
// distinct tables, and every FK column is part of the table's primary key.
func classifyLink(t Table, groups []fkGroup, pks []PrimaryKey) (linkInfo, bool) {
	if len(groups) != 2 {
		return linkInfo{}, false
	}

	left, right := groups[0], groups[1]
	if left.foreign[0].Table.Equal(right.foreign[0].Table) {
		return linkInfo{}, false
	}

	pkCols := make(map[string]struct{})
	for _, pk := range pks {
		if pk.Table.Equal(t) {
			pkCols[pk.Name] = struct{}{}
		}
	}
	if len(pkCols) == 0 {
		return linkInfo{}, false
	}
	for _, g := range groups {
		for _, col := range g.local {
			if _, ok := pkCols[col.Name]; !ok {
				return linkInfo{}, false
			}
		}
	}

	// Order endpoints by referenced table name for deterministic output.
	if left.foreign[0].Table.QualifiedName() > right.foreign[0].Table.QualifiedName() {
		left, right = right, left
	}
	return linkInfo{left: left, right: right}, true
}
