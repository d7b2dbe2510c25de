package request

import (
	"fmt"

	"github.com/blkpark/postgrest/internal/catalog"
	"github.com/blkpark/postgrest/internal/query"
)

// ResolveColumnRefOperand builds a cross-table filter operand after
// confirming the referenced table is reachable from the subject through a
// resolved relation. Unreachable targets surface the same error kinds as
// embed resolution.
func ResolveColumnRefOperand(cat *catalog.Catalog, subject catalog.Table, target, hint string) (query.Operand, error) {
	rel, err := ResolveRelation(cat, subject, target, hint)
	if err != nil {
		return query.Operand{}, err
	}

	fk, ok := relationForeignKey(rel)
	if !ok {
		return query.Operand{}, fmt.Errorf("relation between %q and %q carries no foreign key", subject.Name, target)
	}
	return query.NewColumnRefOperand(query.ColumnRef{Table: rel.FTable, ForeignKey: fk}), nil
}

// relationForeignKey extracts the foreign key backing a relation. The
// FK-holding side depends on the relation kind: the subject's columns for
// Child, the foreign table's columns for Parent, and the link table's
// far-side columns for Many.
func relationForeignKey(rel catalog.Relation) (catalog.ForeignKey, bool) {
	var holders []catalog.Column
	switch rel.Kind {
	case catalog.Child:
		holders = rel.Columns
	case catalog.Parent:
		holders = rel.FColumns
	case catalog.Many:
		holders = rel.FLinkColumns
	case catalog.Root:
		return catalog.ForeignKey{}, false
	}
	for _, col := range holders {
		if col.ForeignKey != nil {
			return *col.ForeignKey, true
		}
	}
	return catalog.ForeignKey{}, false
}
