package request

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"

	"github.com/blkpark/postgrest/internal/catalog"
	"github.com/blkpark/postgrest/internal/query"
)

// EmbedSpec is the client-specified plan for one resource: the table to
// read, what to select, filter, and order, plus nested embeds. Hint names
// a foreign-key column or link table when the relation to the parent is
// ambiguous.
type EmbedSpec struct {
	Table   string
	Alias   string
	Hint    string
	Select  []query.SelectItem
	Filters []query.Filter
	Order   []query.OrderTerm
	Range   query.Range
	Embeds  []EmbedSpec
}

type buildOptions struct {
	limits *Limits
}

// BuildOption customizes request tree construction.
type BuildOption func(*buildOptions)

// WithLimits enforces depth and row limits while building.
func WithLimits(limits Limits) BuildOption {
	return func(o *buildOptions) {
		o.limits = &limits
	}
}

// BuildReadRequest builds the validated read-request tree for a nested
// embedding plan rooted at spec.Table within the given schema. Sibling
// order is preserved; every non-root node carries the relation resolved
// against its parent. No partial tree is returned on failure.
func BuildReadRequest(ctx context.Context, cat *catalog.Catalog, schema string, spec EmbedSpec, opts ...BuildOption) (*query.ReadRequest, error) {
	_, span := startSpan(ctx, "request.build_read",
		attribute.String("db.schema", schema),
		attribute.String("db.table", spec.Table),
	)
	defer span.End()

	options := &buildOptions{}
	for _, opt := range opts {
		opt(options)
	}

	root, ok := cat.FindTable(schema, spec.Table)
	if !ok {
		err := &UnknownRelationError{Name: spec.Table}
		recordSpanError(span, err)
		return nil, err
	}

	rootNode, err := buildNode(cat, root, spec, catalog.Relation{Kind: catalog.Root, Table: root}, 1, options)
	if err != nil {
		recordSpanError(span, err)
		return nil, err
	}
	return &query.ReadRequest{Root: rootNode}, nil
}

func buildNode(cat *catalog.Catalog, table catalog.Table, spec EmbedSpec, rel catalog.Relation, depth int, options *buildOptions) (*query.ReadNode, error) {
	if err := validateDepth(depth, options.limits); err != nil {
		return nil, err
	}

	node := &query.ReadNode{
		Query: query.ReadQuery{
			Select:  spec.Select,
			From:    spec.Table,
			Filters: spec.Filters,
			Order:   spec.Order,
			Range:   clampRange(spec.Range, options.limits),
		},
		Name:     spec.Table,
		Relation: rel,
		Alias:    spec.Alias,
	}

	// Unaliased siblings targeting the same relation would make the result
	// shape ambiguous; aliases must also be distinct among siblings.
	seen := make(map[string]struct{}, len(spec.Embeds))
	for _, child := range spec.Embeds {
		key := child.Alias
		if key == "" {
			key = child.Table + "\x00" + child.Hint
		}
		if _, dup := seen[key]; dup {
			return nil, &DuplicateEmbedError{Parent: spec.Table, Target: child.Table}
		}
		seen[key] = struct{}{}

		childRel, err := ResolveRelation(cat, table, child.Table, child.Hint)
		if err != nil {
			return nil, err
		}
		childNode, err := buildNode(cat, childRel.FTable, child, childRel, depth+1, options)
		if err != nil {
			return nil, err
		}
		node.Children = append(node.Children, childNode)
	}

	return node, nil
}

// BuildMutateRequest wraps a single mutate query, validating the payload.
// Mutations bypass the tree builder entirely and are never nested.
func BuildMutateRequest(table string, kind query.MutateKind, payload []byte, filters []query.Filter, returning []query.Field) (*query.MutateRequest, error) {
	q := query.MutateQuery{
		Kind:      kind,
		Into:      table,
		Filters:   filters,
		Returning: returning,
	}

	switch kind {
	case query.Insert:
		if len(filters) > 0 {
			return nil, fmt.Errorf("insert into %q does not accept filters", table)
		}
		parsed, err := query.ParsePayload(payload)
		if err != nil {
			return nil, err
		}
		q.Payload = parsed
	case query.Update:
		parsed, err := query.ParsePayload(payload)
		if err != nil {
			return nil, err
		}
		q.Payload = parsed
	case query.Delete:
		if len(payload) > 0 {
			return nil, fmt.Errorf("delete from %q does not accept a payload", table)
		}
	default:
		return nil, fmt.Errorf("unhandled mutate kind %d", kind)
	}

	return &query.MutateRequest{Query: q}, nil
}
