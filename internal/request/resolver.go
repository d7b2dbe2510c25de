// Package request resolves embedded-resource relations against a catalog
// snapshot and builds validated read and mutate request trees. Everything
// here is a pure function of (catalog, request) and is safe to call
// concurrently against one shared, read-only snapshot.
package request

import (
	"github.com/blkpark/postgrest/internal/catalog"
)

// ResolveRelation determines the unique relation connecting the subject
// table to the requested target table, checking the Child, Parent, and
// Many directions. A hint (a foreign-key column name or link-table name)
// always narrows the candidate set, so a hint matching nothing fails even
// when the unhinted resolution would be unique. With zero candidates the
// error distinguishes an unknown table from two known but disconnected
// tables; with more than one the resolution is ambiguous.
func ResolveRelation(cat *catalog.Catalog, subject catalog.Table, target, hint string) (catalog.Relation, error) {
	candidates := collectCandidates(cat, subject, target)
	if hint != "" {
		candidates = filterByHint(candidates, hint)
	}

	switch len(candidates) {
	case 1:
		return candidates[0], nil
	case 0:
		if _, known := cat.FindTable(subject.Schema, target); !known {
			return catalog.Relation{}, &UnknownRelationError{Name: target}
		}
		return catalog.Relation{}, &NoRelationBetweenError{Subject: subject.Name, Target: target}
	default:
		return catalog.Relation{}, &AmbiguousRelationError{
			Subject:    subject.Name,
			Target:     target,
			Candidates: len(candidates),
		}
	}
}

func collectCandidates(cat *catalog.Catalog, subject catalog.Table, target string) []catalog.Relation {
	var candidates []catalog.Relation
	for _, rel := range cat.Relations {
		if rel.Kind == catalog.Root {
			continue
		}
		if rel.Table.Equal(subject) && rel.FTable.Schema == subject.Schema && rel.FTable.Name == target {
			candidates = append(candidates, rel)
		}
	}
	return candidates
}

// filterByHint keeps candidates the hint selects: relations joined through
// a link table of that name, or carrying a join column of that name on
// either side.
func filterByHint(candidates []catalog.Relation, hint string) []catalog.Relation {
	var kept []catalog.Relation
	for _, rel := range candidates {
		if matchesHint(rel, hint) {
			kept = append(kept, rel)
		}
	}
	return kept
}

func matchesHint(rel catalog.Relation, hint string) bool {
	if rel.Link != nil && rel.Link.Name == hint {
		return true
	}
	for _, col := range rel.Columns {
		if col.Name == hint {
			return true
		}
	}
	for _, col := range rel.FColumns {
		if col.Name == hint {
			return true
		}
	}
	for _, col := range rel.LinkColumns {
		if col.Name == hint {
			return true
		}
	}
	for _, col := range rel.FLinkColumns {
		if col.Name == hint {
			return true
		}
	}
	return false
}
